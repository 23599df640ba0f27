// Package screen defines what the router needs from a TUI page.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/somdipdey/Learning-Styles/internal/ui/layout"
)

// Screen is one page of the TUI. View renders the body only; the app
// draws the header and footer around it.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)
	View(width, height int) string
	// Title names the page in the header trail. Empty titles are skipped.
	Title() string
}

// KeyHintProvider replaces the default footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Leaver is notified when the router drops the screen, either by going
// back or by swapping it out. Work started by the screen that nobody will
// see any more should stop here.
type Leaver interface {
	Leave() tea.Cmd
}
