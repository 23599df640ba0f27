package components

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/somdipdey/Learning-Styles/internal/ui/theme"
)

// ScoreBar displays a labelled horizontal bar for a value out of Max.
type ScoreBar struct {
	Label      string
	LabelWidth int
	Value      int
	Max        int
	Width      int
	Color      color.Color
}

// NewScoreBar creates a bar using the default fill colour.
func NewScoreBar(label string, value, maxValue, width int) ScoreBar {
	return ScoreBar{
		Label: label,
		Value: value,
		Max:   maxValue,
		Width: width,
		Color: theme.Secondary,
	}
}

// Filled returns the number of filled cells for a bar of barWidth cells.
func (p ScoreBar) Filled(barWidth int) int {
	if p.Max <= 0 || barWidth <= 0 {
		return 0
	}
	filled := barWidth * p.Value / p.Max
	return max(0, min(filled, barWidth))
}

// View renders the bar as "Label  ▇▇▇▇····  12 / 20".
func (p ScoreBar) View() string {
	var result string

	if p.Label != "" {
		w := max(p.LabelWidth, lipgloss.Width(p.Label))
		result += lipgloss.NewStyle().Foreground(theme.Text).Width(w).Render(p.Label) + "  "
	}

	value := fmt.Sprintf("  %2d / %d", p.Value, p.Max)
	barWidth := max(4, p.Width-lipgloss.Width(result)-lipgloss.Width(value))

	filled := p.Filled(barWidth)
	fill := p.Color
	if fill == nil {
		fill = theme.Secondary
	}

	result += lipgloss.NewStyle().Foreground(fill).Render(strings.Repeat("█", filled))
	result += lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("░", barWidth-filled))
	result += lipgloss.NewStyle().Foreground(theme.TextDim).Render(value)

	return result
}
