// Package theme holds the TUI palette and the shared lipgloss styles.
//
// The styles are package variables rebuilt by Use, so screens read them at
// render time rather than caching copies.
package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/somdipdey/Learning-Styles/internal/questionnaire"
)

// Palette is a complete set of UI colours.
type Palette struct {
	Name      string
	Primary   color.Color
	Secondary color.Color
	Accent    color.Color
	Success   color.Color
	Error     color.Color
	Text      color.Color
	TextDim   color.Color
	Surface   color.Color
	Border    color.Color
}

// Dark matches the dark page of the exported report and is the default.
var Dark = Palette{
	Name:      "dark",
	Primary:   lipgloss.Color("#7AA2FF"),
	Secondary: lipgloss.Color("#5EEAD4"),
	Accent:    lipgloss.Color("#FBBF24"),
	Success:   lipgloss.Color("#22C55E"),
	Error:     lipgloss.Color("#F43F5E"),
	Text:      lipgloss.Color("#E9E9EE"),
	TextDim:   lipgloss.Color("#A9A9B6"),
	Surface:   lipgloss.Color("#1D2030"),
	Border:    lipgloss.Color("#2A2D3A"),
}

// Light is used when the configured theme is "light".
var Light = Palette{
	Name:      "light",
	Primary:   lipgloss.Color("#1D4ED8"),
	Secondary: lipgloss.Color("#0F766E"),
	Accent:    lipgloss.Color("#B45309"),
	Success:   lipgloss.Color("#15803D"),
	Error:     lipgloss.Color("#BE123C"),
	Text:      lipgloss.Color("#1F2937"),
	TextDim:   lipgloss.Color("#6B7280"),
	Surface:   lipgloss.Color("#F3F4F6"),
	Border:    lipgloss.Color("#D1D5DB"),
}

// Colours of the active palette.
var (
	Primary   color.Color
	Secondary color.Color
	Accent    color.Color
	Success   color.Color
	Error     color.Color
	Text      color.Color
	TextDim   color.Color
	Surface   color.Color
	Border    color.Color
)

// Styles built from the active palette.
var (
	Title      lipgloss.Style
	Subtitle   lipgloss.Style
	Body       lipgloss.Style
	Hint       lipgloss.Style
	Key        lipgloss.Style
	Card       lipgloss.Style
	Selected   lipgloss.Style
	Unselected lipgloss.Style
	Ticked     lipgloss.Style
	StatusOK   lipgloss.Style
	StatusErr  lipgloss.Style
)

func init() { apply(Dark) }

// Use activates the palette called name. Unknown names, including the
// glamour-only styles, fall back to Dark.
func Use(name string) Palette {
	p := Dark
	if name == Light.Name {
		p = Light
	}
	apply(p)
	return p
}

func apply(p Palette) {
	Primary, Secondary, Accent = p.Primary, p.Secondary, p.Accent
	Success, Error = p.Success, p.Error
	Text, TextDim, Surface, Border = p.Text, p.TextDim, p.Surface, p.Border

	Title = lipgloss.NewStyle().Bold(true).Foreground(Primary)
	Subtitle = lipgloss.NewStyle().Foreground(TextDim)
	Body = lipgloss.NewStyle().Foreground(Text)
	Hint = lipgloss.NewStyle().Foreground(TextDim).Italic(true)
	Key = lipgloss.NewStyle().Foreground(Accent).Bold(true)
	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1)
	Selected = lipgloss.NewStyle().Foreground(Primary).Bold(true)
	Unselected = Body
	Ticked = lipgloss.NewStyle().Foreground(Success).Bold(true)
	StatusOK = lipgloss.NewStyle().Foreground(Success)
	StatusErr = lipgloss.NewStyle().Foreground(Error)
}

// Category colours are fixed across palettes so the arms of the cross keep
// their identity.
var (
	ActivistColor   = lipgloss.Color("#F97316")
	ReflectorColor  = lipgloss.Color("#8B5CF6")
	TheoristColor   = lipgloss.Color("#14B8A6")
	PragmatistColor = lipgloss.Color("#EAB308")
)

// CategoryColor returns the colour used for c in tables and bars.
func CategoryColor(c questionnaire.Category) color.Color {
	switch c {
	case questionnaire.Activist:
		return ActivistColor
	case questionnaire.Reflector:
		return ReflectorColor
	case questionnaire.Theorist:
		return TheoristColor
	case questionnaire.Pragmatist:
		return PragmatistColor
	default:
		return Text
	}
}
