// Package session holds the state of one questionnaire run: the loaded
// items, the answer store, the display identity and the services the
// screens call into.
package session

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"github.com/somdipdey/Learning-Styles/internal/analysis"
	"github.com/somdipdey/Learning-Styles/internal/answers"
	"github.com/somdipdey/Learning-Styles/internal/clipboard"
	"github.com/somdipdey/Learning-Styles/internal/export"
	"github.com/somdipdey/Learning-Styles/internal/prompt"
	"github.com/somdipdey/Learning-Styles/internal/questionnaire"
	"github.com/somdipdey/Learning-Styles/internal/report"
	"github.com/somdipdey/Learning-Styles/internal/scoring"
	"github.com/somdipdey/Learning-Styles/internal/store"
)

// Options wires a State. Only QuestionsPath is required; missing
// collaborators disable the features that need them.
type Options struct {
	QuestionsPath string
	Prefs         *store.Prefs
	Events        store.EventRepo
	Exporter      *export.Exporter
	Clipboard     clipboard.Writer
	Analysis      *analysis.Service
	Logger        *zap.Logger
	Theme         string
	Rand          *rand.Rand
	Now           func() time.Time
}

// State is the explicit application state shared by the screens.
// It is only touched from the Bubble Tea update loop.
type State struct {
	Items   []questionnaire.Item
	LoadErr error
	Answers *answers.Store

	Events    store.EventRepo
	Exporter  *export.Exporter
	Clipboard clipboard.Writer
	Analysis  *analysis.Service
	Logger    *zap.Logger
	Theme     string

	name  string
	prefs *store.Prefs
	rand  *rand.Rand
	now   func() time.Time
}

// New loads the item source and restores persisted answers and name.
// A load failure is kept in LoadErr rather than returned so the shell can
// show it in place of the question list.
func New(ctx context.Context, opts Options) *State {
	s := &State{
		Events:    opts.Events,
		Exporter:  opts.Exporter,
		Clipboard: opts.Clipboard,
		Analysis:  opts.Analysis,
		Logger:    opts.Logger,
		Theme:     opts.Theme,
		prefs:     opts.Prefs,
		rand:      opts.Rand,
		now:       opts.Now,
	}
	if s.Logger == nil {
		s.Logger = zap.NewNop()
	}
	if s.rand == nil {
		s.rand = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x15c))
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.Theme == "" {
		s.Theme = report.DefaultStyle
	}

	items, err := questionnaire.LoadItems(opts.QuestionsPath)
	if err != nil {
		s.LoadErr = err
		s.Logger.Info("questions unavailable", zap.String("path", opts.QuestionsPath), zap.Error(err))
	}
	s.Items = items
	s.Answers = answers.New(items)
	s.restore(ctx)
	s.Answers.OnChange = func(*answers.Store) { s.persistAnswers() }
	return s
}

// restore reads persisted state. Corrupt or unreadable data is ignored.
func (s *State) restore(ctx context.Context) {
	if s.prefs == nil {
		return
	}
	saved, err := s.prefs.LoadAnswers(ctx)
	if err != nil {
		s.Logger.Warn("ignoring persisted answers", zap.Error(err))
	}
	s.Answers.Restore(saved)

	name, err := s.prefs.LoadName(ctx)
	if err != nil {
		s.Logger.Warn("ignoring persisted name", zap.Error(err))
	}
	s.name = name
}

func (s *State) persistAnswers() {
	if s.prefs == nil {
		return
	}
	if err := s.prefs.SaveAnswers(context.Background(), s.Answers); err != nil {
		s.Logger.Warn("persist answers", zap.Error(err))
	}
}

// Loaded reports whether the item source was read successfully.
func (s *State) Loaded() bool {
	return s.LoadErr == nil && len(s.Items) > 0
}

// Snapshot recomputes the scores from the current answers.
func (s *State) Snapshot() scoring.Snapshot {
	return scoring.Compute(s.Answers, len(s.Items))
}

// Name returns the raw display identity as entered.
func (s *State) Name() string { return s.name }

// DisplayName returns the identity used in titles and exports.
func (s *State) DisplayName() string {
	return questionnaire.DisplayName(s.name)
}

// SetName records a new identity and persists it best-effort.
func (s *State) SetName(raw string) {
	if raw == s.name {
		return
	}
	s.name = raw
	if s.prefs == nil {
		return
	}
	if err := s.prefs.SaveName(context.Background(), raw); err != nil {
		s.Logger.Warn("persist name", zap.Error(err))
	}
}

// Randomize ticks a random share of the items for a demo run.
func (s *State) Randomize() {
	s.Answers.Randomize(s.rand, answers.DefaultTickProbability)
}

// ExportRequest captures the current identity and scores for an export.
func (s *State) ExportRequest() export.Request {
	return export.NewRequest(s.DisplayName(), s.Snapshot(), s.now())
}

// Prompt builds the coaching prompt for the current scores.
func (s *State) Prompt() string {
	return prompt.Build(s.DisplayName(), s.Snapshot())
}

// ReportData returns the inputs of the Markdown report.
func (s *State) ReportData() report.Data {
	return report.Data{Name: s.DisplayName(), Snapshot: s.Snapshot(), Generated: s.now()}
}

// Reset clears every answer and the name, in memory and in storage.
func (s *State) Reset(ctx context.Context) error {
	s.Answers.Clear()
	s.name = ""
	if s.prefs == nil {
		return nil
	}
	return s.prefs.Clear(ctx)
}

// ErrNoExporter is returned when exports are requested without an exporter.
var ErrNoExporter = errors.New("export is not configured")

// Export writes the composed PNG to the export directory.
func (s *State) Export(ctx context.Context) (export.Result, error) {
	if s.Exporter == nil {
		return export.Result{}, ErrNoExporter
	}
	return s.Exporter.Export(ctx, s.ExportRequest())
}

// ExportDocs writes the SVG diagram and the Markdown report.
func (s *State) ExportDocs(ctx context.Context) ([]export.Result, error) {
	if s.Exporter == nil {
		return nil, ErrNoExporter
	}
	return s.Exporter.ExportAll(ctx, s.ExportRequest(), []export.Format{export.FormatSVG, export.FormatMarkdown})
}

// CopyPrompt copies the coaching prompt. It never fails; the result
// carries the status to show.
func (s *State) CopyPrompt(ctx context.Context) prompt.CopyResult {
	return prompt.Copy(ctx, s.Clipboard, s.Prompt())
}

// Analyse asks the configured LLM to interpret the scores.
func (s *State) Analyse(ctx context.Context) (*analysis.Result, error) {
	if s.Analysis == nil {
		return nil, analysis.ErrUnavailable
	}
	return s.Analysis.Analyse(ctx, s.DisplayName(), s.Snapshot())
}
