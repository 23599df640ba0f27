package results

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
	"unicode"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/somdipdey/Learning-Styles/internal/analysis"
	"github.com/somdipdey/Learning-Styles/internal/clipboard"
	"github.com/somdipdey/Learning-Styles/internal/diagram"
	"github.com/somdipdey/Learning-Styles/internal/export"
	"github.com/somdipdey/Learning-Styles/internal/llm"
	"github.com/somdipdey/Learning-Styles/internal/questionnaire"
	"github.com/somdipdey/Learning-Styles/internal/router"
	"github.com/somdipdey/Learning-Styles/internal/screen"
	"github.com/somdipdey/Learning-Styles/internal/screens/coach"
	"github.com/somdipdey/Learning-Styles/internal/session"
)

type fakeClipboard struct {
	text string
	err  error
}

func (f *fakeClipboard) WriteText(_ context.Context, text string) (clipboard.Method, error) {
	if f.err != nil {
		return "", f.err
	}
	f.text = text
	return clipboard.MethodSystem, nil
}

type fixture struct {
	state *session.State
	dir   string
	clip  *fakeClipboard
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	items := make([]questionnaire.Item, 0, questionnaire.MaxItemID)
	for i := questionnaire.MinItemID; i <= questionnaire.MaxItemID; i++ {
		items = append(items, questionnaire.Item{ID: i, Text: fmt.Sprintf("Statement %d", i)})
	}
	data, err := json.Marshal(items)
	require.NoError(t, err)
	qpath := filepath.Join(t.TempDir(), "questions.json")
	require.NoError(t, os.WriteFile(qpath, data, 0o644))

	fonts, err := diagram.LoadFonts()
	require.NoError(t, err)
	t.Cleanup(func() { fonts.Close() })

	f := &fixture{dir: t.TempDir(), clip: &fakeClipboard{}}
	f.state = session.New(context.Background(), session.Options{
		QuestionsPath: qpath,
		Exporter:      export.New(f.dir, fonts, nil, nil),
		Clipboard:     f.clip,
		Theme:         "notty",
		Now:           func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) },
	})
	return f
}

func key(code rune) tea.KeyPressMsg {
	msg := tea.KeyPressMsg{Code: code}
	if unicode.IsPrint(code) {
		msg.Text = string(code)
	}
	return msg
}

// run feeds the message produced by cmd back into the screen.
func run(t *testing.T, s *ResultsScreen, cmd tea.Cmd) tea.Cmd {
	t.Helper()
	require.NotNil(t, cmd)
	_, next := s.Update(cmd())
	return next
}

func TestExportPNG(t *testing.T) {
	f := newFixture(t)
	f.state.SetName("Kim")
	s := New(f.state)

	_, cmd := s.Update(key('e'))
	assert.Contains(t, s.Status(), "Preparing download…")
	run(t, s, cmd)

	assert.Equal(t, []string{"Downloaded: Learning_Styles_Outcome_Kim.png"}, s.Status())
	assert.FileExists(t, filepath.Join(f.dir, "Learning_Styles_Outcome_Kim.png"))
}

func TestExportDocs(t *testing.T) {
	f := newFixture(t)
	s := New(f.state)

	_, cmd := s.Update(key('s'))
	run(t, s, cmd)

	assert.Equal(t, []string{"Downloaded: Learning_Styles_Outcome_Anonymous.svg, Learning_Styles_Outcome_Anonymous.md"}, s.Status())
}

func TestExportFailureStatus(t *testing.T) {
	f := newFixture(t)
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))
	f.state.Exporter.Dir = blocker
	s := New(f.state)

	_, cmd := s.Update(key('e'))
	run(t, s, cmd)

	require.Len(t, s.Status(), 1)
	assert.True(t, strings.HasPrefix(s.Status()[0], "Download failed: "), s.Status()[0])
}

func TestCopyPrompt(t *testing.T) {
	f := newFixture(t)
	f.state.Answers.Set(2, true)
	s := New(f.state)

	_, cmd := s.Update(key('c'))
	run(t, s, cmd)

	assert.Contains(t, f.clip.text, "- Activist: 1")
	require.Len(t, s.Status(), 1)
	assert.True(t, strings.HasPrefix(s.Status()[0], "Copied"), s.Status()[0])
}

func TestCopyPromptBlocked(t *testing.T) {
	f := newFixture(t)
	f.clip.err = errors.New("denied")
	s := New(f.state)

	_, cmd := s.Update(key('c'))
	run(t, s, cmd)

	require.Len(t, s.Status(), 1)
	assert.Contains(t, s.Status()[0], "blocked")
}

func TestAnalyseUnavailableStillCopies(t *testing.T) {
	f := newFixture(t)
	s := New(f.state)

	_, cmd := s.Update(key('a'))
	next := run(t, s, cmd)

	assert.Nil(t, next)
	assert.NotEmpty(t, f.clip.text)
	status := strings.Join(s.Status(), "\n")
	assert.Contains(t, status, "Copied")
	assert.Contains(t, status, "AI analysis unavailable")
}

func TestAnalysePushesCoach(t *testing.T) {
	f := newFixture(t)
	f.state.Analysis = analysis.New(llm.NewMockProvider(llm.MockText("## Balanced")), time.Second, nil)
	s := New(f.state)

	_, cmd := s.Update(key('a'))
	next := run(t, s, cmd)

	require.NotNil(t, next)
	push, ok := next().(router.ToMsg)
	require.True(t, ok)
	assert.IsType(t, &coach.CoachScreen{}, push.Screen)
	assert.Contains(t, strings.Join(s.Status(), "\n"), "Analysis ready (mock")
}

// waitingProvider blocks until the request context ends.
type waitingProvider struct{}

func (waitingProvider) Generate(ctx context.Context, _ llm.Request) (*llm.Response, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (waitingProvider) ModelID() string { return "waiting" }

func TestLeaveCancelsAnalysis(t *testing.T) {
	f := newFixture(t)
	f.state.Analysis = analysis.New(waitingProvider{}, time.Minute, nil)
	s := New(f.state)

	_, cmd := s.Update(key('a'))
	require.NotNil(t, cmd)
	require.True(t, s.Analysing())

	_, again := s.Update(key('a'))
	assert.Nil(t, again, "a second request waits for the first")

	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()

	assert.Nil(t, s.Leave())
	assert.False(t, s.Analysing())

	select {
	case msg := <-done:
		res, ok := msg.(analysisDoneMsg)
		require.True(t, ok)
		assert.ErrorIs(t, res.err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("analysis was not cancelled")
	}
}

func TestNameEditingPersistsToState(t *testing.T) {
	f := newFixture(t)
	s := New(f.state)
	assert.Equal(t, "Results", s.Title())

	s.Update(key(tea.KeyTab))
	for _, r := range "Kim" {
		s.Update(key(r))
	}
	// Hotkeys are plain text while the name has focus.
	s.Update(key('e'))
	assert.Equal(t, "Kime", f.state.Name())
	assert.Empty(t, s.Status())

	s.Update(key(tea.KeyBackspace))
	s.Update(key(tea.KeyEnter))
	assert.Equal(t, "Kim", f.state.Name())
	assert.Equal(t, "Results for Kim", s.Title())

	_, cmd := s.Update(key('c'))
	assert.NotNil(t, cmd, "hotkeys work again after leaving the name field")
}

func TestView(t *testing.T) {
	f := newFixture(t)
	f.state.SetName("Kim")
	for _, id := range questionnaire.Reflector.IDs() {
		f.state.Answers.Set(id, true)
	}
	s := New(f.state)

	v := s.View(160, 50)
	for _, want := range []string{"Results for Kim", "Reflector", "20 / 20", "Ticked 20 / 80", "Strongest: Reflector", "Download image (PNG)", "Activist 0", "Theorist 0"} {
		assert.Contains(t, v, want)
	}
}


// coverScreen stands in for history while the results screen is covered.
type coverScreen struct{ got []tea.Msg }

func (c *coverScreen) Init() tea.Cmd { return nil }
func (c *coverScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	c.got = append(c.got, msg)
	return c, nil
}
func (c *coverScreen) View(int, int) string { return "cover" }
func (c *coverScreen) Title() string        { return "History" }

func TestResultsArriveWhileCovered(t *testing.T) {
	f := newFixture(t)
	f.state.Analysis = analysis.New(llm.NewMockProvider(llm.MockText("## Balanced")), time.Second, nil)
	s := New(f.state)
	r := router.New(s)

	analyse := r.Update(key('a'))
	require.NotNil(t, analyse)
	download := r.Update(key('e'))
	require.NotNil(t, download)

	cover := &coverScreen{}
	r.Update(router.ToMsg{Screen: cover})
	require.Same(t, cover, r.Active())

	next := r.Update(analyse())
	assert.False(t, s.Analysing())
	require.NotNil(t, next)
	push, ok := next().(router.ToMsg)
	require.True(t, ok)
	assert.IsType(t, &coach.CoachScreen{}, push.Screen)

	r.Update(download())
	assert.Empty(t, cover.got, "results never reach the covering screen")

	status := strings.Join(s.Status(), "\n")
	assert.Contains(t, status, "Downloaded: Learning_Styles_Outcome_Anonymous.png")
	assert.Contains(t, status, "Analysis ready (mock")
	assert.NotContains(t, status, "Asking the AI coach")

	r.Update(router.BackMsg{})
	require.Same(t, s, r.Active())
	assert.NotNil(t, r.Update(key('a')), "the coach can be asked again")
}
