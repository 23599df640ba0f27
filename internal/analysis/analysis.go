// Package analysis sends the coaching prompt to an LLM and returns its
// Markdown answer.
package analysis

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/somdipdey/Learning-Styles/internal/llm"
	"github.com/somdipdey/Learning-Styles/internal/prompt"
	"github.com/somdipdey/Learning-Styles/internal/scoring"
)

const systemPrompt = "Answer in GitHub-flavoured Markdown with short headings and bullet lists. Keep the whole answer under 700 words."

// ErrUnavailable is returned when no LLM provider is configured.
var ErrUnavailable = errors.New("AI analysis unavailable: no LLM provider configured")

// Result is one completed analysis.
type Result struct {
	ID       string
	Prompt   string
	Markdown string
	Model    string
	Usage    llm.Usage
	Elapsed  time.Duration
}

// Service runs analyses. A nil Provider makes every call fail with
// ErrUnavailable.
type Service struct {
	Provider llm.Provider
	// Timeout bounds a whole analysis, retries included. Zero disables it.
	Timeout time.Duration
	Logger  *zap.Logger
}

// New creates a Service.
func New(p llm.Provider, timeout time.Duration, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{Provider: p, Timeout: timeout, Logger: logger}
}

// Available reports whether a provider is configured.
func (s *Service) Available() bool {
	return s != nil && s.Provider != nil
}

// Analyse asks the provider to interpret the scores of name.
func (s *Service) Analyse(ctx context.Context, name string, snap scoring.Snapshot) (*Result, error) {
	if !s.Available() {
		return nil, ErrUnavailable
	}
	log := s.Logger
	if log == nil {
		log = zap.NewNop()
	}

	res := &Result{ID: uuid.NewString(), Prompt: prompt.Build(name, snap)}
	log = log.With(zap.String("analysis_id", res.ID))

	ctx = llm.WithPurpose(ctx, llm.PurposeAnalysis)
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	req := llm.UserPrompt(systemPrompt, res.Prompt)
	req.Temperature = 0.3

	start := time.Now()
	resp, err := s.Provider.Generate(ctx, req)
	res.Elapsed = time.Since(start)
	if err != nil {
		log.Warn("analysis failed", zap.Error(err), zap.Duration("elapsed", res.Elapsed))
		return nil, err
	}

	res.Markdown = strings.TrimSpace(resp.Text())
	if res.Markdown == "" {
		err := &llm.ErrInvalidResponse{Content: resp.Content, Err: errors.New("empty analysis")}
		log.Warn("analysis failed", zap.Error(err))
		return nil, err
	}
	res.Model = resp.Model
	res.Usage = resp.Usage

	log.Info("analysis completed",
		zap.String("model", res.Model),
		zap.Duration("elapsed", res.Elapsed),
		zap.Int("output_tokens", res.Usage.OutputTokens),
	)
	return res, nil
}

// StatusMessage describes the outcome of an analysis for a status line.
func StatusMessage(res *Result, err error) string {
	switch {
	case errors.Is(err, ErrUnavailable):
		return "AI analysis unavailable. Set LSQ_LLM_PROVIDER and an API key, or paste the copied prompt into your assistant."
	case err != nil:
		return llm.UserMessage(err)
	case res == nil:
		return ""
	}
	return "Analysis ready (" + res.Model + ", " + res.Elapsed.Round(100*time.Millisecond).String() + ")."
}
