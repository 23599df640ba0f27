// Package coach displays an AI analysis rendered for the terminal.
package coach

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/somdipdey/Learning-Styles/internal/analysis"
	"github.com/somdipdey/Learning-Styles/internal/report"
	"github.com/somdipdey/Learning-Styles/internal/screen"
	"github.com/somdipdey/Learning-Styles/internal/ui/layout"
	"github.com/somdipdey/Learning-Styles/internal/ui/theme"
)

// CoachScreen is a scrollable view of one analysis.
type CoachScreen struct {
	result *analysis.Result
	style  string

	lines         []string
	renderedWidth int
	offset        int
	page          int
}

var _ screen.Screen = (*CoachScreen)(nil)
var _ screen.KeyHintProvider = (*CoachScreen)(nil)

// New creates the screen. style is a glamour standard style name.
func New(result *analysis.Result, style string) *CoachScreen {
	return &CoachScreen{result: result, style: style, page: 10}
}

func (s *CoachScreen) Init() tea.Cmd { return nil }

func (s *CoachScreen) Title() string { return "AI Coach" }

func (s *CoachScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "PgUp/PgDn", Description: "Page"},
		{Key: "Esc", Description: "Back"},
	}
}

// Offset returns the first visible line.
func (s *CoachScreen) Offset() int { return s.offset }

func (s *CoachScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "up", "k":
		s.scrollTo(s.offset - 1)
	case "down", "j":
		s.scrollTo(s.offset + 1)
	case "pgup", "b":
		s.scrollTo(s.offset - s.page)
	case "pgdown", "f", "space":
		s.scrollTo(s.offset + s.page)
	case "home", "g":
		s.scrollTo(0)
	case "end", "G":
		s.scrollTo(len(s.lines))
	}
	return s, nil
}

func (s *CoachScreen) scrollTo(n int) {
	maxOffset := max(0, len(s.lines)-s.page)
	s.offset = max(0, min(n, maxOffset))
}

// render lays the Markdown out for width, falling back to the raw text
// if glamour cannot render it.
func (s *CoachScreen) render(width int) {
	if s.lines != nil && width == s.renderedWidth {
		return
	}
	s.renderedWidth = width
	text := ""
	if s.result != nil {
		text = s.result.Markdown
	}
	out, err := report.RenderTerminal(text, s.style, width)
	if err != nil {
		out = lipgloss.NewStyle().Width(width).Render(text)
	}
	s.lines = strings.Split(strings.TrimRight(out, "\n"), "\n")
	s.scrollTo(s.offset)
}

func (s *CoachScreen) View(width, height int) string {
	s.page = max(1, height-2)
	s.render(max(20, width-4))

	end := min(len(s.lines), s.offset+s.page)
	body := strings.Join(s.lines[s.offset:end], "\n")

	return body + "\n\n" + s.footer()
}

func (s *CoachScreen) footer() string {
	if s.result == nil {
		return ""
	}
	u := s.result.Usage
	info := fmt.Sprintf("  %s · %d in / %d out tokens · lines %d-%d of %d",
		s.result.Model, u.InputTokens, u.OutputTokens,
		min(s.offset+1, len(s.lines)), min(s.offset+s.page, len(s.lines)), len(s.lines))
	return theme.Hint.Render(info)
}
