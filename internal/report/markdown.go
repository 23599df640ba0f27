// Package report renders score summaries as Markdown.
package report

import (
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/somdipdey/Learning-Styles/internal/questionnaire"
	"github.com/somdipdey/Learning-Styles/internal/scoring"
)

// Title is the heading used by every exported artefact.
const Title = "Learning Styles Outcome (Honey & Mumford)"

// Footer lines carried by every export.
var Footer = []string{
	"Honey & Mumford Questions are copyrighted by Honey & Mumford.",
	"Code copyrighted by Dr Somdip Dey, Regent European University / Regent College London / Regent Global.",
}

// Orientation describes where each style sits on the cross.
const Orientation = "Cross: Activist (top), Theorist (bottom), Reflector (left), Pragmatist (right)."

// DateLayout formats the generation timestamp (day first, 24h clock).
const DateLayout = "02/01/2006, 15:04:05"

// Data is the input of a report.
type Data struct {
	Name      string
	Snapshot  scoring.Snapshot
	Generated time.Time
}

// WriteMarkdown writes the report for d to w.
func WriteMarkdown(w io.Writer, d Data) error {
	md := markdown.NewMarkdown(w)
	name := questionnaire.DisplayName(d.Name)

	md.H1(Title)
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Name", name},
			{"Generated", d.Generated.Format(DateLayout)},
			{"Items ticked", strconv.Itoa(d.Snapshot.Ticked) + " / " + strconv.Itoa(d.Snapshot.Total())},
		},
	})
	md.PlainText("")

	md.H2("Scores")
	md.PlainText("")
	rows := make([][]string, 0, 4)
	for _, c := range questionnaire.Categories() {
		rows = append(rows, []string{c.Label(), strconv.Itoa(d.Snapshot.Of(c)) + " / " + strconv.Itoa(questionnaire.ItemsPerCategory)})
	}
	md.Table(markdown.TableSet{Header: []string{"Style", "Score"}, Rows: rows})
	md.PlainText("")

	if d.Snapshot.Ticked > 0 {
		writePieChart(md, d.Snapshot)
	}

	if dom := scoring.Dominant(d.Snapshot); len(dom) > 0 {
		labels := make([]string, len(dom))
		for i, c := range dom {
			labels[i] = c.Label()
		}
		md.Note("Highest score: " + strings.Join(labels, ", ") + ". Treat this as a reflection prompt, not a fixed label.")
		md.PlainText("")
	}

	md.PlainText(Orientation)
	md.PlainText("")
	md.BulletList(Footer...)

	return md.Build()
}

func writePieChart(md *markdown.Markdown, s scoring.Snapshot) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Score distribution"),
		piechart.WithShowData(true),
	)
	for _, c := range questionnaire.Categories() {
		if v := s.Of(c); v > 0 {
			chart.LabelAndIntValue(c.Label(), uint64(v))
		}
	}
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// Markdown returns the report as a string.
func Markdown(d Data) (string, error) {
	var b strings.Builder
	if err := WriteMarkdown(&b, d); err != nil {
		return "", err
	}
	return b.String(), nil
}
