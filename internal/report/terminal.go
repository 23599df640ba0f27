package report

import (
	"fmt"

	"github.com/charmbracelet/glamour"
)

// DefaultStyle is the glamour style used when none is configured.
const DefaultStyle = "dark"

// RenderTerminal renders Markdown for display in a terminal of the given
// width. A fixed style is used so rendering never queries the terminal.
func RenderTerminal(md string, style string, width int) (string, error) {
	if style == "" {
		style = DefaultStyle
	}
	if width <= 0 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("create markdown renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return out, nil
}
