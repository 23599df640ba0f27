package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ran struct{ key string }

func press(k string) tea.KeyPressMsg {
	switch k {
	case "up":
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	}
	r := []rune(k)[0]
	return tea.KeyPressMsg{Code: r, Text: k}
}

func testActions(busy *bool) ActionList {
	run := func(key string) func() tea.Cmd {
		return func() tea.Cmd { return func() tea.Msg { return ran{key} } }
	}
	return NewActionList(
		Action{Key: "e", Label: "Download image", Run: run("e")},
		Action{Key: "h", Label: "History", Run: run("h"), Unavailable: true},
		Action{Key: "a", Label: "Ask the coach", Run: run("a"), Busy: func() bool { return *busy }},
	)
}

func TestActionListWrapsAndSkipsUnavailable(t *testing.T) {
	busy := false
	l := testActions(&busy)
	require.Equal(t, 0, l.Cursor())

	l, _ = l.Update(press("down"))
	assert.Equal(t, 2, l.Cursor())
	l, _ = l.Update(press("down"))
	assert.Equal(t, 0, l.Cursor(), "wraps past the end")
	l, _ = l.Update(press("up"))
	assert.Equal(t, 2, l.Cursor(), "wraps past the start")
}

func TestActionListRuns(t *testing.T) {
	busy := false
	l := testActions(&busy)

	_, cmd := l.Update(press("enter"))
	require.NotNil(t, cmd)
	assert.Equal(t, ran{"e"}, cmd())

	l, cmd = l.Update(press("a"))
	require.NotNil(t, cmd)
	assert.Equal(t, 2, l.Cursor())
	assert.Equal(t, ran{"a"}, cmd())

	_, cmd = l.Update(press("h"))
	assert.Nil(t, cmd, "unavailable actions never run")
}

func TestActionListBusy(t *testing.T) {
	busy := true
	l := testActions(&busy)

	_, cmd := l.Update(press("a"))
	assert.Nil(t, cmd)
	assert.Contains(t, l.View(true), "working…")

	busy = false
	_, cmd = l.Update(press("a"))
	assert.NotNil(t, cmd)
	assert.NotContains(t, l.View(true), "working…")
}

func TestActionListView(t *testing.T) {
	busy := false
	l := testActions(&busy)

	v := l.View(true)
	assert.Contains(t, v, "▸ ")
	assert.Len(t, strings.Split(v, "\n"), 3)
	assert.NotContains(t, l.View(false), "▸")
}

func TestEmptyActionList(t *testing.T) {
	l := NewActionList()
	l, cmd := l.Update(press("down"))
	assert.Nil(t, cmd)
	assert.Equal(t, 0, l.Len())
	assert.Empty(t, l.View(true))
}

func TestScoreBarFilled(t *testing.T) {
	tests := []struct {
		value, max, width, want int
	}{
		{0, 20, 20, 0},
		{10, 20, 20, 10},
		{20, 20, 40, 40},
		{25, 20, 20, 20},
		{5, 0, 20, 0},
	}
	for _, tt := range tests {
		b := NewScoreBar("x", tt.value, tt.max, 60)
		assert.Equal(t, tt.want, b.Filled(tt.width), "Filled(%d/%d, %d)", tt.value, tt.max, tt.width)
	}
}

func TestScoreBarView(t *testing.T) {
	v := NewScoreBar("Activist", 12, 20, 50).View()
	assert.Contains(t, v, "Activist")
	assert.Contains(t, v, "12 / 20")
}

func TestNameField(t *testing.T) {
	f := NewNameField("Kim", "Anonymous", 40)
	assert.Equal(t, "Kim", f.Value())
	assert.False(t, f.Editing())
	assert.Contains(t, f.View(), "tab to edit")

	f.Edit()
	require.True(t, f.Editing())
	f, _, changed := f.Update(press("o"))
	assert.True(t, changed)
	assert.Equal(t, "Kimo", f.Value())

	f, _, changed = f.Update(press(" "))
	assert.False(t, changed, "trailing space does not change the name")

	f.Done()
	assert.False(t, f.Editing())
}

func TestNameFieldPlaceholder(t *testing.T) {
	f := NewNameField("  ", "Anonymous", 40)
	assert.Contains(t, f.View(), "Anonymous")
}
