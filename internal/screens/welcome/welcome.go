// Package welcome is the splash shown before the questionnaire.
package welcome

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/somdipdey/Learning-Styles/internal/router"
	"github.com/somdipdey/Learning-Styles/internal/screen"
	"github.com/somdipdey/Learning-Styles/internal/ui/theme"
)

const frameInterval = 80 * time.Millisecond

// Animation milestones, in frames.
const (
	labelsFrame = armLen
	titleFrame  = armLen + 4
	lastFrame   = armLen + 12
)

// Tagline is shown under the wordmark.
const Tagline = "Honey & Mumford Learning Styles Questionnaire"

type frameMsg time.Time

// WelcomeScreen grows the four arms of the cross, names them, and hands
// over to the questionnaire on the first key press.
type WelcomeScreen struct {
	next  func() screen.Screen
	frame int
	done  bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that swaps itself for the screen built by next.
func New(next func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{next: next}
}

// Title is empty so the splash stays out of the breadcrumb.
func (w *WelcomeScreen) Title() string { return "" }

func (w *WelcomeScreen) Init() tea.Cmd { return nextFrame() }

func nextFrame() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return frameMsg(t) })
}

// Finished reports whether the animation has run to the end.
func (w *WelcomeScreen) Finished() bool { return w.frame >= lastFrame }

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case frameMsg:
		if w.Finished() {
			return w, nil
		}
		w.frame++
		return w, nextFrame()
	case tea.KeyPressMsg:
		if w.done {
			return w, nil
		}
		w.done = true
		return w, router.Swap(w.next())
	}
	return w, nil
}

func (w *WelcomeScreen) View(width, height int) string {
	parts := []string{renderCross(w.frame, w.frame >= labelsFrame)}
	if w.frame >= titleFrame {
		parts = append(parts, "", renderWordmark(width), "", theme.Body.Bold(true).Render(Tagline))
	}
	if w.Finished() {
		parts = append(parts, "", theme.Hint.Render("press any key to begin"))
	}
	body := lipgloss.JoinVertical(lipgloss.Center, parts...)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}
