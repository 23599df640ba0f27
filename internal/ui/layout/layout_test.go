package layout

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
	"github.com/stretchr/testify/assert"
)

func TestTooSmall(t *testing.T) {
	assert.True(t, Frame{Width: 79, Height: 30}.TooSmall())
	assert.True(t, Frame{Width: 120, Height: 23}.TooSmall())
	assert.False(t, Frame{Width: MinWidth, Height: MinHeight}.TooSmall())

	out := Frame{Width: 60, Height: 10}.Render(func(int, int) string {
		t.Fatal("body must not render in a tiny terminal")
		return ""
	})
	assert.Contains(t, out, "Terminal too small: 60 x 10")
}

func TestMeter(t *testing.T) {
	assert.Equal(t, "▱▱▱▱▱▱▱▱▱▱ 0/0", Frame{}.meter())
	assert.Equal(t, "▰▰▰▱▱▱▱▱▱▱ 24/80", Frame{Ticked: 24, Total: 80}.meter())
	assert.Equal(t, "▰▰▰▰▰▰▰▰▰▰ 80/80", Frame{Ticked: 80, Total: 80}.meter())
}

func TestHeaderTrail(t *testing.T) {
	wide := Frame{Width: 140, Trail: []string{"Questionnaire", "Results", "AI Coach"}, Ticked: 3, Total: 80}
	header := wide.Header()
	assert.Contains(t, header, "Questionnaire › Results › AI Coach")
	assert.Contains(t, header, "3/80")
	assert.Contains(t, header, brand)

	narrow := wide
	narrow.Width = 90
	header = narrow.Header()
	assert.Contains(t, header, "AI Coach")
	assert.NotContains(t, header, "Questionnaire ›")
}

func TestRenderFillsHeight(t *testing.T) {
	f := Frame{
		Width: 100, Height: 30,
		Trail: []string{"Questionnaire"},
		Hints: []KeyHint{{Key: "Space", Description: "Tick"}, {Key: "Ctrl+C", Description: "Quit"}},
	}
	var gotW, gotH int
	out := f.Render(func(w, h int) string {
		gotW, gotH = w, h
		return "body"
	})

	assert.Equal(t, 100, gotW)
	assert.Equal(t, 30-lipgloss.Height(f.Header())-lipgloss.Height(f.Footer()), gotH)
	assert.Equal(t, 30, lipgloss.Height(out))
	assert.Contains(t, out, "body")
	assert.True(t, strings.Contains(out, "Space") && strings.Contains(out, "Tick"))
}

func TestIsCompactWidth(t *testing.T) {
	assert.True(t, IsCompactWidth(99))
	assert.False(t, IsCompactWidth(100))
}
