// Package app is the root Bubble Tea model: header, footer and the screen
// router.
package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/somdipdey/Learning-Styles/internal/router"
	"github.com/somdipdey/Learning-Styles/internal/screen"
	"github.com/somdipdey/Learning-Styles/internal/screens/questions"
	"github.com/somdipdey/Learning-Styles/internal/screens/results"
	"github.com/somdipdey/Learning-Styles/internal/screens/welcome"
	"github.com/somdipdey/Learning-Styles/internal/session"
	"github.com/somdipdey/Learning-Styles/internal/ui/layout"
)

// Options configures the program.
type Options struct {
	State *session.State
	// SkipWelcome starts directly on the questionnaire.
	SkipWelcome bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	state  *session.State
	router *router.Router
	width  int
	height int
}

// NewAppModel creates the model with the welcome or questionnaire screen.
func NewAppModel(opts Options) AppModel {
	st := opts.State
	questionsScreen := func() screen.Screen {
		return questions.New(st, func() screen.Screen { return results.New(st) })
	}

	var first screen.Screen
	if opts.SkipWelcome {
		first = questionsScreen()
	} else {
		first = welcome.New(questionsScreen)
	}
	return AppModel{
		state:  st,
		router: router.New(first),
	}
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "q":
			if m.router.AtRoot() {
				return m, tea.Quit
			}
		case "esc":
			if m.router.AtRoot() {
				return m, nil
			}
			return m, router.Back()
		}
	}
	return m, m.router.Update(msg)
}

// defaultHints is the footer for screens without their own hints.
func (m AppModel) defaultHints() []layout.KeyHint {
	if m.router.AtRoot() {
		return []layout.KeyHint{{Key: "Any key", Description: "Continue"}, {Key: "Ctrl+C", Description: "Quit"}}
	}
	return []layout.KeyHint{{Key: "Esc", Description: "Back"}, {Key: "Ctrl+C", Description: "Quit"}}
}

func (m AppModel) frame() layout.Frame {
	f := layout.Frame{
		Width:  m.width,
		Height: m.height,
		Trail:  m.router.Trail(),
		Ticked: m.state.Snapshot().Ticked,
		Total:  len(m.state.Items),
		Hints:  m.defaultHints(),
	}
	if p, ok := m.router.Active().(screen.KeyHintProvider); ok {
		f.Hints = p.KeyHints()
	}
	return f
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	if m.width == 0 || m.height == 0 {
		return v
	}
	v.SetContent(m.frame().Render(m.router.View))
	return v
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(opts Options) error {
	p := tea.NewProgram(NewAppModel(opts))
	_, err := p.Run()
	return err
}
