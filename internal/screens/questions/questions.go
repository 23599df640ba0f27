// Package questions is the checklist screen: one row per statement, ticked
// with the space bar.
package questions

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/somdipdey/Learning-Styles/internal/questionnaire"
	"github.com/somdipdey/Learning-Styles/internal/router"
	"github.com/somdipdey/Learning-Styles/internal/screen"
	"github.com/somdipdey/Learning-Styles/internal/session"
	"github.com/somdipdey/Learning-Styles/internal/ui/layout"
	"github.com/somdipdey/Learning-Styles/internal/ui/theme"
)

// QuestionsScreen lists the loaded items.
type QuestionsScreen struct {
	state   *session.State
	results func() screen.Screen

	cursor int
	offset int
	rows   int
}

var _ screen.Screen = (*QuestionsScreen)(nil)
var _ screen.KeyHintProvider = (*QuestionsScreen)(nil)

// New creates the screen. results builds the screen pushed on enter.
func New(state *session.State, results func() screen.Screen) *QuestionsScreen {
	return &QuestionsScreen{state: state, results: results, rows: 10}
}

func (s *QuestionsScreen) Init() tea.Cmd { return nil }

func (s *QuestionsScreen) Title() string { return "Questionnaire" }

func (s *QuestionsScreen) KeyHints() []layout.KeyHint {
	if !s.state.Loaded() {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Results"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Move"},
		{Key: "Space", Description: "Tick"},
		{Key: "a/n", Description: "All/None"},
		{Key: "r", Description: "Random"},
		{Key: "Enter", Description: "Results"},
	}
}

// Cursor returns the index of the highlighted item.
func (s *QuestionsScreen) Cursor() int { return s.cursor }

func (s *QuestionsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}

	switch kmsg.String() {
	case "enter", "tab":
		if s.results == nil {
			return s, nil
		}
		return s, router.To(s.results())
	}

	if !s.state.Loaded() {
		return s, nil
	}
	last := len(s.state.Items) - 1

	switch kmsg.String() {
	case "up", "k":
		s.move(s.cursor - 1)
	case "down", "j":
		s.move(s.cursor + 1)
	case "pgup":
		s.move(s.cursor - s.rows)
	case "pgdown":
		s.move(s.cursor + s.rows)
	case "home", "g":
		s.move(0)
	case "end", "G":
		s.move(last)
	case "space", " ", "x":
		s.state.Answers.Toggle(s.state.Items[s.cursor].ID)
	case "a":
		s.state.Answers.SetAll(true)
	case "n":
		s.state.Answers.SetAll(false)
	case "r":
		s.state.Randomize()
	}
	return s, nil
}

func (s *QuestionsScreen) move(to int) {
	last := len(s.state.Items) - 1
	s.cursor = max(0, min(to, last))
	s.scroll()
}

// scroll keeps the cursor inside the visible window.
func (s *QuestionsScreen) scroll() {
	if s.cursor < s.offset {
		s.offset = s.cursor
	}
	if s.cursor >= s.offset+s.rows {
		s.offset = s.cursor - s.rows + 1
	}
	if s.offset < 0 {
		s.offset = 0
	}
}

func (s *QuestionsScreen) View(width, height int) string {
	if !s.state.Loaded() {
		return s.loadErrorView(width, height)
	}

	// Summary line, blank line, list.
	s.rows = max(1, height-3)
	s.scroll()

	var b strings.Builder
	b.WriteString(summaryLine(s.state))
	b.WriteString("\n\n")

	end := min(len(s.state.Items), s.offset+s.rows)
	for i := s.offset; i < end; i++ {
		it := s.state.Items[i]
		b.WriteString(s.row(it, i == s.cursor, width))
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (s *QuestionsScreen) row(it questionnaire.Item, selected bool, width int) string {
	box := "[ ]"
	boxStyle := theme.Unselected
	if s.state.Answers.Get(it.ID) {
		box = "[x]"
		boxStyle = theme.Ticked
	}

	prefix := "  "
	textStyle := theme.Unselected
	if selected {
		prefix = "▸ "
		textStyle = theme.Selected
	}

	head := fmt.Sprintf("%s#%02d ", prefix, it.ID)
	textWidth := max(1, width-lipgloss.Width(head)-lipgloss.Width(box)-2)
	text := lipgloss.NewStyle().MaxWidth(textWidth).Render(it.Text)
	gap := max(1, width-lipgloss.Width(head)-lipgloss.Width(text)-lipgloss.Width(box)-1)

	return textStyle.Render(head+text) + strings.Repeat(" ", gap) + boxStyle.Render(box)
}

func summaryLine(st *session.State) string {
	snap := st.Snapshot()
	parts := make([]string, 0, len(questionnaire.Categories())+1)
	for _, c := range questionnaire.Categories() {
		parts = append(parts, lipgloss.NewStyle().
			Foreground(theme.CategoryColor(c)).
			Render(fmt.Sprintf("%s %d", c.Label(), snap.Of(c))))
	}
	parts = append(parts, theme.Subtitle.Render(fmt.Sprintf("Ticked %d / %d", snap.Ticked, snap.Total())))
	return "  " + strings.Join(parts, theme.Subtitle.Render("  ·  "))
}

func (s *QuestionsScreen) loadErrorView(width, height int) string {
	msg := "No questions loaded."
	if s.state.LoadErr != nil {
		msg = "Failed to load questions: " + s.state.LoadErr.Error()
	}
	body := lipgloss.JoinVertical(lipgloss.Center,
		theme.StatusErr.Render(msg),
		"",
		theme.Hint.Render("Point --questions (or LSQ_QUESTIONS) at a JSON array of {\"id\", \"text\"} records."),
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().MaxWidth(width).Render(body))
}
