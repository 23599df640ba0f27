// Package layout draws the chrome around the active screen.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/somdipdey/Learning-Styles/internal/ui/theme"
)

// Smallest terminal the frame is drawn in.
const (
	MinWidth  = 80
	MinHeight = 24
)

// compactWidth is where side-by-side layouts start stacking.
const compactWidth = 100

const (
	brand     = "◆ Learning Styles"
	trailSep  = " › "
	meterCell = 10
)

// KeyHint is one entry of the footer.
type KeyHint struct {
	Key         string
	Description string
}

// IsCompactWidth reports whether width is too narrow for two columns.
func IsCompactWidth(width int) bool {
	return width < compactWidth
}

// Frame is everything the chrome shows for one render.
type Frame struct {
	Width, Height int

	// Trail holds the screen titles from the root to the active screen.
	Trail []string

	Ticked, Total int
	Hints         []KeyHint
}

// TooSmall reports whether the terminal is below MinWidth x MinHeight.
func (f Frame) TooSmall() bool {
	return f.Width < MinWidth || f.Height < MinHeight
}

// Render draws the header, the body and the footer. body receives the
// space left between header and footer.
func (f Frame) Render(body func(width, height int) string) string {
	if f.TooSmall() {
		return f.resizeNotice()
	}
	header, footer := f.Header(), f.Footer()
	h := max(0, f.Height-lipgloss.Height(header)-lipgloss.Height(footer))
	content := lipgloss.NewStyle().Width(f.Width).Height(h).MaxHeight(h).Render(body(f.Width, h))
	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (f Frame) resizeNotice() string {
	return lipgloss.NewStyle().
		Width(f.Width).
		Height(f.Height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.Text).
		Render(fmt.Sprintf("Terminal too small: %d x %d\n\nResize to at least %d x %d.",
			f.Width, f.Height, MinWidth, MinHeight))
}

// Header shows the brand, the screen trail and the tick meter. Narrow
// terminals only get the active title in the middle.
func (f Frame) Header() string {
	inner := max(0, f.Width-4)

	left := theme.Title.Render(brand)
	right := lipgloss.NewStyle().Foreground(theme.Accent).Render(f.meter())
	middle := lipgloss.NewStyle().Foreground(theme.Text).Render(f.trail())

	free := inner - lipgloss.Width(left) - lipgloss.Width(middle) - lipgloss.Width(right)
	if free < 2 {
		middle = ""
		free = max(1, inner-lipgloss.Width(left)-lipgloss.Width(right))
	}
	gapL := free / 2
	line := left + strings.Repeat(" ", gapL) + middle + strings.Repeat(" ", free-gapL) + right
	return chrome(f.Width).Render(line)
}

func (f Frame) trail() string {
	if len(f.Trail) == 0 {
		return ""
	}
	if IsCompactWidth(f.Width) {
		return f.Trail[len(f.Trail)-1]
	}
	return strings.Join(f.Trail, trailSep)
}

// meter renders Ticked/Total as a short bar plus the count.
func (f Frame) meter() string {
	filled := 0
	if f.Total > 0 {
		filled = min(meterCell, f.Ticked*meterCell/f.Total)
	}
	return strings.Repeat("▰", filled) + strings.Repeat("▱", meterCell-filled) +
		fmt.Sprintf(" %d/%d", f.Ticked, f.Total)
}

// Footer lists the key hints.
func (f Frame) Footer() string {
	keyStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	parts := make([]string, len(f.Hints))
	for i, h := range f.Hints {
		parts[i] = keyStyle.Render(h.Key) + " " + descStyle.Render(h.Description)
	}
	return chrome(f.Width).Render(" " + strings.Join(parts, "  ·  "))
}

func chrome(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Width(width).
		Background(theme.Surface).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border)
}
