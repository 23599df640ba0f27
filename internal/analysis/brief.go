package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/somdipdey/Learning-Styles/internal/llm"
	"github.com/somdipdey/Learning-Styles/internal/prompt"
	"github.com/somdipdey/Learning-Styles/internal/scoring"
)

// Brief is a short structured reading of a profile.
type Brief struct {
	Headline   string   `json:"headline"`
	Strengths  []string `json:"strengths"`
	BlindSpots []string `json:"blind_spots"`
	NextSteps  []string `json:"next_steps"`
}

const briefSystemPrompt = "Reply with JSON only. Keep every list item under 20 words."

const briefInstruction = `Instead of the five sections above, give a compact reading:
a one-sentence headline naming my dominant style(s), up to three strengths,
up to three blind spots and up to three concrete next steps.`

func bulletList(description string) map[string]any {
	return map[string]any{
		"type":        "array",
		"description": description,
		"minItems":    1,
		"maxItems":    3,
		"items":       map[string]any{"type": "string"},
	}
}

// briefSchema is strict-mode compatible: every property is required and
// no extra keys are allowed.
var briefSchema = &llm.Schema{
	Name:        "style-brief",
	Description: "Compact reading of a Honey & Mumford learning styles profile",
	Definition: map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"required":             []any{"headline", "strengths", "blind_spots", "next_steps"},
		"properties": map[string]any{
			"headline":    map[string]any{"type": "string", "description": "One sentence naming the dominant style(s)"},
			"strengths":   bulletList("How the profile helps when learning"),
			"blind_spots": bulletList("Where the profile gets in the way"),
			"next_steps":  bulletList("Concrete actions to try this week"),
		},
	},
}

// Summarise asks for a Brief instead of the long-form analysis.
func (s *Service) Summarise(ctx context.Context, name string, snap scoring.Snapshot) (*Brief, error) {
	if !s.Available() {
		return nil, ErrUnavailable
	}
	log := s.Logger
	if log == nil {
		log = zap.NewNop()
	}

	ctx = llm.WithPurpose(ctx, llm.PurposeBrief)
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	req := llm.UserPrompt(briefSystemPrompt, prompt.Build(name, snap)+"\n\n"+briefInstruction)
	req.Schema = briefSchema
	req.MaxTokens = 1024
	req.Temperature = 0.2

	resp, err := s.Provider.Generate(ctx, req)
	if err != nil {
		log.Warn("brief failed", zap.Error(err))
		return nil, err
	}
	var b Brief
	if err := json.Unmarshal(resp.Content, &b); err != nil {
		return nil, &llm.ErrInvalidResponse{Content: resp.Content, Err: err}
	}
	log.Debug("brief completed", zap.String("model", resp.Model), zap.Int("output_tokens", resp.Usage.OutputTokens))
	return &b, nil
}

// String renders the brief as plain text for the terminal.
func (b *Brief) String() string {
	var sb strings.Builder
	sb.WriteString(b.Headline)
	sb.WriteString("\n")
	section := func(title string, items []string) {
		fmt.Fprintf(&sb, "\n%s\n", title)
		for _, it := range items {
			fmt.Fprintf(&sb, "  • %s\n", it)
		}
	}
	section("Strengths", b.Strengths)
	section("Blind spots", b.BlindSpots)
	section("Next steps", b.NextSteps)
	return sb.String()
}
