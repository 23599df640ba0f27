// Package results shows the scores, the cross and the export, prompt and
// analysis actions.
package results

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/somdipdey/Learning-Styles/internal/analysis"
	"github.com/somdipdey/Learning-Styles/internal/diagram"
	"github.com/somdipdey/Learning-Styles/internal/export"
	"github.com/somdipdey/Learning-Styles/internal/prompt"
	"github.com/somdipdey/Learning-Styles/internal/questionnaire"
	"github.com/somdipdey/Learning-Styles/internal/router"
	"github.com/somdipdey/Learning-Styles/internal/scoring"
	"github.com/somdipdey/Learning-Styles/internal/screen"
	"github.com/somdipdey/Learning-Styles/internal/screens/coach"
	"github.com/somdipdey/Learning-Styles/internal/screens/history"
	"github.com/somdipdey/Learning-Styles/internal/session"
	"github.com/somdipdey/Learning-Styles/internal/ui/components"
	"github.com/somdipdey/Learning-Styles/internal/ui/layout"
	"github.com/somdipdey/Learning-Styles/internal/ui/theme"
)

// nameLimit caps the display identity length.
const nameLimit = 60

// exportTimeout bounds one export action.
const exportTimeout = 30 * time.Second

// Status lines, one per action group.
const (
	statusDownload = iota
	statusPrompt
	statusAnalysis
	statusCount
)

// The done messages are addressed to the screen that started the work, so
// they still land here when history or the coach is open on top.

type exportDoneMsg struct {
	to      *ResultsScreen
	results []export.Result
	err     error
}

type copyDoneMsg struct {
	to     *ResultsScreen
	result prompt.CopyResult
}

type analysisDoneMsg struct {
	to     *ResultsScreen
	copy   prompt.CopyResult
	result *analysis.Result
	err    error
}

func (m exportDoneMsg) Recipient() screen.Screen   { return m.to }
func (m copyDoneMsg) Recipient() screen.Screen     { return m.to }
func (m analysisDoneMsg) Recipient() screen.Screen { return m.to }

var (
	_ router.Addressed = exportDoneMsg{}
	_ router.Addressed = copyDoneMsg{}
	_ router.Addressed = analysisDoneMsg{}
)

type status struct {
	text string
	err  bool
}

// ResultsScreen is pushed from the questionnaire.
type ResultsScreen struct {
	state   *session.State
	name    components.NameField
	actions components.ActionList

	status [statusCount]status
	// cancelAnalysis is set while an analysis is in flight.
	cancelAnalysis context.CancelFunc
}

var _ screen.Screen = (*ResultsScreen)(nil)
var _ screen.KeyHintProvider = (*ResultsScreen)(nil)
var _ screen.Leaver = (*ResultsScreen)(nil)

// New creates the results screen for state.
func New(state *session.State) *ResultsScreen {
	s := &ResultsScreen{
		state: state,
		name:  components.NewNameField(state.Name(), questionnaire.DefaultName, nameLimit),
	}
	s.actions = components.NewActionList(
		components.Action{Key: "e", Label: "Download image (PNG)", Run: s.exportPNG},
		components.Action{Key: "s", Label: "Save SVG + Markdown report", Run: s.exportDocs},
		components.Action{Key: "c", Label: "Copy coaching prompt", Run: s.copyPrompt},
		components.Action{Key: "a", Label: "Ask the AI coach", Run: s.analyse, Busy: s.Analysing},
		components.Action{Key: "h", Label: "Export and AI history", Run: s.openHistory, Unavailable: state.Events == nil},
	)
	return s
}

func (s *ResultsScreen) Init() tea.Cmd { return nil }

func (s *ResultsScreen) Title() string {
	return questionnaire.ResultTitle(s.state.Name())
}

func (s *ResultsScreen) KeyHints() []layout.KeyHint {
	if s.name.Editing() {
		return []layout.KeyHint{
			{Key: "Enter/Tab", Description: "Done"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Move"},
		{Key: "Enter", Description: "Run"},
		{Key: "Tab", Description: "Edit name"},
		{Key: "Esc", Description: "Questions"},
	}
}

// Status returns the current status line for each action group.
func (s *ResultsScreen) Status() []string {
	out := make([]string, 0, statusCount)
	for _, st := range s.status {
		if st.text != "" {
			out = append(out, st.text)
		}
	}
	return out
}

func (s *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case exportDoneMsg:
		s.setExportStatus(msg)
		return s, nil

	case copyDoneMsg:
		s.status[statusPrompt] = status{text: msg.result.StatusMessage(), err: !msg.result.Copied}
		return s, nil

	case analysisDoneMsg:
		s.finishAnalysis()
		s.status[statusPrompt] = status{text: msg.copy.StatusMessage(), err: !msg.copy.Copied}
		s.status[statusAnalysis] = status{text: analysis.StatusMessage(msg.result, msg.err), err: msg.err != nil}
		if msg.err != nil {
			return s, nil
		}
		view := coach.New(msg.result, s.state.Theme)
		return s, router.To(view)

	case tea.KeyPressMsg:
		if s.name.Editing() {
			switch msg.String() {
			case "enter", "tab":
				s.name.Done()
				return s, nil
			}
			var (
				cmd     tea.Cmd
				changed bool
			)
			s.name, cmd, changed = s.name.Update(msg)
			if changed {
				s.state.SetName(s.name.Value())
			}
			return s, cmd
		}
		if msg.String() == "tab" {
			return s, s.name.Edit()
		}
		var cmd tea.Cmd
		s.actions, cmd = s.actions.Update(msg)
		return s, cmd
	}

	if s.name.Editing() {
		var cmd tea.Cmd
		s.name, cmd, _ = s.name.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *ResultsScreen) setExportStatus(msg exportDoneMsg) {
	if msg.err != nil {
		s.status[statusDownload] = status{text: export.StatusMessage(export.Result{}, msg.err), err: true}
		return
	}
	files := make([]string, 0, len(msg.results))
	for _, r := range msg.results {
		files = append(files, r.File)
	}
	s.status[statusDownload] = status{text: "Downloaded: " + strings.Join(files, ", ")}
}

// The actions below capture everything they need from the state before
// returning, so the commands never touch it off the update loop.

func (s *ResultsScreen) exportPNG() tea.Cmd {
	return s.exportCmd([]export.Format{export.FormatPNG})
}

func (s *ResultsScreen) exportDocs() tea.Cmd {
	return s.exportCmd([]export.Format{export.FormatSVG, export.FormatMarkdown})
}

func (s *ResultsScreen) exportCmd(formats []export.Format) tea.Cmd {
	exp := s.state.Exporter
	if exp == nil {
		s.status[statusDownload] = status{text: export.StatusMessage(export.Result{}, session.ErrNoExporter), err: true}
		return nil
	}
	req := s.state.ExportRequest()
	s.status[statusDownload] = status{text: "Preparing download…"}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), exportTimeout)
		defer cancel()
		res, err := exp.ExportAll(ctx, req, formats)
		return exportDoneMsg{to: s, results: res, err: err}
	}
}

func (s *ResultsScreen) copyPrompt() tea.Cmd {
	clip := s.state.Clipboard
	text := s.state.Prompt()
	return func() tea.Msg {
		return copyDoneMsg{to: s, result: prompt.Copy(context.Background(), clip, text)}
	}
}

// analyse copies the prompt first, like the browser flow did before
// opening the assistant, then asks the configured provider.
func (s *ResultsScreen) analyse() tea.Cmd {
	if s.Analysing() {
		return nil
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.cancelAnalysis = cancel
	s.status[statusAnalysis] = status{text: "Asking the AI coach…"}

	clip := s.state.Clipboard
	svc := s.state.Analysis
	name := s.state.DisplayName()
	snap := s.state.Snapshot()
	text := prompt.Build(name, snap)
	return func() tea.Msg {
		msg := analysisDoneMsg{to: s, copy: prompt.Copy(ctx, clip, text)}
		if svc == nil {
			msg.err = analysis.ErrUnavailable
			return msg
		}
		msg.result, msg.err = svc.Analyse(ctx, name, snap)
		return msg
	}
}

func (s *ResultsScreen) finishAnalysis() {
	if s.cancelAnalysis != nil {
		s.cancelAnalysis()
		s.cancelAnalysis = nil
	}
}

// Analysing reports whether an analysis is in flight.
func (s *ResultsScreen) Analysing() bool { return s.cancelAnalysis != nil }

// Leave abandons an in-flight analysis; its result would land on another
// screen.
func (s *ResultsScreen) Leave() tea.Cmd {
	if s.cancelAnalysis != nil {
		s.finishAnalysis()
		s.status[statusAnalysis] = status{}
	}
	return nil
}

func (s *ResultsScreen) openHistory() tea.Cmd {
	view := history.New(s.state.Events)
	return router.To(view)
}

func (s *ResultsScreen) View(width, height int) string {
	snap := s.state.Snapshot()

	left := lipgloss.JoinVertical(lipgloss.Left,
		theme.Title.Render(questionnaire.ResultTitle(s.state.Name())),
		"",
		s.name.View(),
		"",
		scoreTable(snap, 44),
		"",
		s.actions.View(!s.name.Editing()),
		"",
		s.statusView(),
	)

	cross := theme.Card.Render(diagram.Terminal(snap))

	var body string
	if layout.IsCompactWidth(width) {
		body = lipgloss.JoinVertical(lipgloss.Left, left, "", cross)
	} else {
		body = lipgloss.JoinHorizontal(lipgloss.Top, left, "    ", cross)
	}
	return lipgloss.NewStyle().Padding(1, 2).MaxWidth(width).MaxHeight(height).Render(body)
}

func scoreTable(snap scoring.Snapshot, width int) string {
	lines := make([]string, 0, len(questionnaire.Categories())+2)
	for _, c := range questionnaire.Categories() {
		bar := components.NewScoreBar(c.Label(), snap.Of(c), questionnaire.ItemsPerCategory, width)
		bar.LabelWidth = len("Pragmatist")
		bar.Color = theme.CategoryColor(c)
		lines = append(lines, bar.View())
	}
	lines = append(lines, theme.Subtitle.Render(fmt.Sprintf("Ticked %d / %d", snap.Ticked, snap.Total())))
	if dom := scoring.Dominant(snap); len(dom) > 0 {
		labels := make([]string, 0, len(dom))
		for _, c := range dom {
			labels = append(labels, c.Label())
		}
		lines = append(lines, theme.Body.Render("Strongest: "+strings.Join(labels, ", ")))
	}
	return strings.Join(lines, "\n")
}

func (s *ResultsScreen) statusView() string {
	var lines []string
	for _, st := range s.status {
		if st.text == "" {
			continue
		}
		style := theme.StatusOK
		if st.err {
			style = theme.StatusErr
		}
		lines = append(lines, style.Render(st.text))
	}
	return strings.Join(lines, "\n")
}
