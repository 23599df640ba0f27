// Package prompt builds the coaching prompt that asks an assistant to
// interpret the scores.
package prompt

import (
	"context"
	"fmt"
	"strings"

	"github.com/somdipdey/Learning-Styles/internal/clipboard"
	"github.com/somdipdey/Learning-Styles/internal/questionnaire"
	"github.com/somdipdey/Learning-Styles/internal/scoring"
)

var preamble = []string{
	"You are an educational coach. Use my Honey & Mumford questionnaire scores as a reflection tool, not a fixed label.",
	"Important: Do not assume I learn best only in one style and do not recommend matching teaching to a style.",
	"Instead, help me build a balanced set of study strategies grounded in evidence-based learning principles (e.g., retrieval practice, spacing, interleaving, elaboration, worked examples, practice with feedback).",
}

var requests = []string{
	"1) Summarise what these scores might suggest about preferences (use probabilistic language), and note that people can be a mix and can develop across styles.",
	"2) Give 8–12 concrete, course-ready study strategies mapped to (a) my stronger tendencies and (b) the styles I scored lower on so I can strengthen them.",
	"3) Provide a 2-week experiment plan (what to try on which days), including how to measure what’s working.",
	"4) Identify 2–3 potential blind spots and how to compensate.",
	"5) Suggest how to adapt in teaching sessions that don’t align with my preferences (e.g., what I should do before/during/after class).",
}

// Build returns the prompt for name and snap. Lines are joined with "\n"
// and there is no trailing newline.
func Build(name string, snap scoring.Snapshot) string {
	lines := make([]string, 0, 20)
	lines = append(lines, preamble...)
	lines = append(lines,
		"",
		"Name: "+questionnaire.DisplayName(name),
		"Scores (out of 20 each):",
	)
	for _, c := range questionnaire.Categories() {
		lines = append(lines, fmt.Sprintf("- %s: %d", c.Label(), snap.Of(c)))
	}
	lines = append(lines,
		"",
		fmt.Sprintf("Items ticked: %d / %d", snap.Ticked, snap.Total()),
		"",
		"Please do the following:",
	)
	lines = append(lines, requests...)
	return strings.Join(lines, "\n")
}

// CopyResult is the outcome of Copy.
type CopyResult struct {
	Copied bool
	Method clipboard.Method
	Err    error
}

// Copy places text on the clipboard. Failure is reported in the result,
// never as an error.
func Copy(ctx context.Context, w clipboard.Writer, text string) CopyResult {
	if w == nil {
		return CopyResult{Err: clipboard.ErrUnsupported}
	}
	m, err := w.WriteText(ctx, text)
	if err != nil {
		return CopyResult{Err: err}
	}
	return CopyResult{Copied: true, Method: m}
}

// StatusMessage describes the copy outcome to the user.
func (r CopyResult) StatusMessage() string {
	switch {
	case !r.Copied:
		return "Clipboard copy was blocked — please copy your scores manually or try again."
	case r.Method == clipboard.MethodOSC52:
		return "Sent the prompt (including your scores) to your terminal clipboard — paste (Ctrl/Cmd+V) into your AI assistant to analyse."
	default:
		return "Copied the prompt (including your scores) to clipboard — paste (Ctrl/Cmd+V) into your AI assistant to analyse."
	}
}
