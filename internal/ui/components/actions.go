package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/somdipdey/Learning-Styles/internal/ui/theme"
)

// Action is one entry of an ActionList. Run is invoked on Enter or when the
// hotkey is pressed.
type Action struct {
	Key   string
	Label string
	Run   func() tea.Cmd

	// Unavailable greys the action out and skips it during navigation.
	Unavailable bool
	// Busy, when set and true, marks the action as running; it cannot be
	// triggered again until Busy reports false.
	Busy func() bool
}

func (a Action) busy() bool { return a.Busy != nil && a.Busy() }

func (a Action) usable() bool { return !a.Unavailable && a.Run != nil && !a.busy() }

// ActionList is a vertical list of hotkeyed actions with a cursor that wraps
// around the ends.
type ActionList struct {
	actions []Action
	cursor  int
}

// NewActionList returns a list with the cursor on the first available
// action.
func NewActionList(actions ...Action) ActionList {
	l := ActionList{actions: actions}
	for i, a := range actions {
		if !a.Unavailable {
			l.cursor = i
			break
		}
	}
	return l
}

// Cursor is the index of the highlighted action.
func (l ActionList) Cursor() int { return l.cursor }

// Len is the number of actions.
func (l ActionList) Len() int { return len(l.actions) }

func (l ActionList) step(dir int) int {
	n := len(l.actions)
	for i, j := 1, l.cursor; i <= n; i++ {
		j = (j + dir + n) % n
		if !l.actions[j].Unavailable {
			return j
		}
	}
	return l.cursor
}

// Update moves the cursor and runs actions.
func (l ActionList) Update(msg tea.Msg) (ActionList, tea.Cmd) {
	key, ok := msg.(tea.KeyPressMsg)
	if !ok || len(l.actions) == 0 {
		return l, nil
	}
	switch k := key.String(); k {
	case "up", "k":
		l.cursor = l.step(-1)
	case "down", "j":
		l.cursor = l.step(1)
	case "enter":
		return l, l.run(l.cursor)
	default:
		for i, a := range l.actions {
			if a.Key == k {
				l.cursor = i
				return l, l.run(i)
			}
		}
	}
	return l, nil
}

func (l ActionList) run(i int) tea.Cmd {
	if i < 0 || i >= len(l.actions) || !l.actions[i].usable() {
		return nil
	}
	return l.actions[i].Run()
}

// View renders one action per line. The cursor is drawn only when active.
func (l ActionList) View(active bool) string {
	lines := make([]string, len(l.actions))
	for i, a := range l.actions {
		marker, style := "  ", theme.Body
		switch {
		case a.Unavailable:
			style = theme.Hint
		case active && i == l.cursor:
			marker, style = "▸ ", theme.Selected
		}
		line := marker + theme.Key.Render(a.Key) + " " + style.Render(a.Label)
		if a.busy() {
			line += theme.Hint.Render("  working…")
		}
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}
