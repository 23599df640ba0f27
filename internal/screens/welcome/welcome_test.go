package welcome

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/somdipdey/Learning-Styles/internal/router"
	"github.com/somdipdey/Learning-Styles/internal/screen"
)

type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return "questions" }
func (s *stubScreen) Title() string                           { return "Questions" }

func newWelcome() (*WelcomeScreen, *int) {
	built := 0
	return New(func() screen.Screen {
		built++
		return &stubScreen{}
	}), &built
}

func advance(w *WelcomeScreen, n int) tea.Cmd {
	var cmd tea.Cmd
	for range n {
		_, cmd = w.Update(frameMsg(time.Now()))
	}
	return cmd
}

func TestAnimationMilestones(t *testing.T) {
	w, _ := newWelcome()
	require.NotNil(t, w.Init())

	v := w.View(100, 40)
	assert.NotContains(t, v, "Activist")
	assert.NotContains(t, v, Tagline)

	advance(w, labelsFrame)
	v = w.View(100, 40)
	assert.Contains(t, v, "Activist")
	assert.Contains(t, v, "Pragmatist")
	assert.NotContains(t, v, Tagline)

	advance(w, titleFrame-labelsFrame)
	assert.Contains(t, w.View(100, 40), Tagline)
	assert.NotContains(t, w.View(100, 40), "press any key")
}

func TestFramesStopAtTheEnd(t *testing.T) {
	w, _ := newWelcome()

	assert.NotNil(t, advance(w, lastFrame-1))
	assert.Nil(t, advance(w, 3))
	assert.True(t, w.Finished())
	assert.Equal(t, lastFrame, w.frame)
	assert.Contains(t, w.View(100, 40), "press any key to begin")
}

func TestKeySwapsOnce(t *testing.T) {
	w, built := newWelcome()
	advance(w, 2)

	_, cmd := w.Update(tea.KeyPressMsg{Code: ' ', Text: " "})
	require.NotNil(t, cmd)
	swap, ok := cmd().(router.SwapMsg)
	require.True(t, ok)
	assert.NotNil(t, swap.Screen)

	_, cmd = w.Update(tea.KeyPressMsg{Code: 'b', Text: "b"})
	assert.Nil(t, cmd)
	assert.Equal(t, 1, *built)
}

func TestCrossGrows(t *testing.T) {
	full := strings.Split(renderCross(armLen, false), "\n")
	require.Len(t, full, armLen+1)
	mid := full[armLen/2]
	assert.Contains(t, mid, "●")
	assert.Equal(t, 2*armLen, strings.Count(mid, "─"))

	empty := renderCross(0, false)
	assert.NotContains(t, empty, "│")
	assert.NotContains(t, empty, "─")

	assert.Len(t, strings.Split(renderCross(armLen, true), "\n"), armLen+3)
	assert.Equal(t, strings.Count(renderCross(99, false), "─"), 2*armLen, "arms are capped")
}

func TestWordmarkCompact(t *testing.T) {
	assert.Contains(t, renderWordmark(10), "L S Q")
	assert.Contains(t, renderWordmark(80), "██")
}
