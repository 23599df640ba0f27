package analysis

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/somdipdey/Learning-Styles/internal/llm"
	"github.com/somdipdey/Learning-Styles/internal/questionnaire"
	"github.com/somdipdey/Learning-Styles/internal/scoring"
)

func snap() scoring.Snapshot {
	return scoring.Snapshot{
		Totals: map[questionnaire.Category]int{
			questionnaire.Activist:   5,
			questionnaire.Reflector:  17,
			questionnaire.Theorist:   12,
			questionnaire.Pragmatist: 8,
		},
		Ticked: 42,
		Items:  80,
	}
}

func TestAnalyse(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockText("  ## Summary\n\nYou reflect a lot.  "))
	svc := New(mock, time.Second, nil)

	res, err := svc.Analyse(context.Background(), "Kim", snap())
	require.NoError(t, err)
	assert.Equal(t, "## Summary\n\nYou reflect a lot.", res.Markdown)
	assert.Equal(t, "mock", res.Model)
	assert.NotEmpty(t, res.ID)

	require.Equal(t, 1, mock.CallCount())
	req := mock.Calls[0]
	require.Len(t, req.Messages, 1)
	assert.Equal(t, llm.RoleUser, req.Messages[0].Role)
	assert.Equal(t, res.Prompt, req.Messages[0].Content)
	assert.Contains(t, req.Messages[0].Content, "Name: Kim")
	assert.Contains(t, req.Messages[0].Content, "- Reflector: 17")
	assert.Nil(t, req.Schema)

	assert.True(t, strings.HasPrefix(StatusMessage(res, nil), "Analysis ready (mock"))
}

func TestAnalyse_Unavailable(t *testing.T) {
	var svc *Service
	_, err := svc.Analyse(context.Background(), "", snap())
	assert.ErrorIs(t, err, ErrUnavailable)

	_, err = New(nil, 0, nil).Analyse(context.Background(), "", snap())
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Contains(t, StatusMessage(nil, err), "unavailable")
}

func TestAnalyse_ProviderError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrRateLimit{Err: errors.New("429")}})
	_, err := New(mock, 0, nil).Analyse(context.Background(), "", snap())
	var rl *llm.ErrRateLimit
	require.True(t, errors.As(err, &rl))
	assert.Contains(t, StatusMessage(nil, err), "rate limiting")
}

func TestAnalyse_EmptyResponse(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockText("   "))
	_, err := New(mock, 0, nil).Analyse(context.Background(), "", snap())
	var inv *llm.ErrInvalidResponse
	assert.True(t, errors.As(err, &inv))
}

type purposeRecorder struct {
	llm.Provider
	purpose     llm.Purpose
	hasDeadline bool
}

func (p *purposeRecorder) Generate(ctx context.Context, req llm.Request) (*llm.Response, error) {
	p.purpose = llm.PurposeFrom(ctx)
	_, p.hasDeadline = ctx.Deadline()
	return p.Provider.Generate(ctx, req)
}

func TestAnalyse_SetsPurposeAndTimeout(t *testing.T) {
	rec := &purposeRecorder{Provider: llm.NewMockProvider(llm.MockText("ok"))}
	_, err := New(rec, time.Minute, nil).Analyse(context.Background(), "", snap())
	require.NoError(t, err)
	assert.Equal(t, llm.PurposeAnalysis, rec.purpose)
	assert.True(t, rec.hasDeadline)
}

func TestSummarise(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockJSON(map[string]any{
		"headline":    "A strong Reflector who likes to think before acting.",
		"strengths":   []string{"Careful listening"},
		"blind_spots": []string{"Slow to start", "Avoids the spotlight"},
		"next_steps":  []string{"Volunteer first once per session"},
	}))
	svc := New(mock, time.Second, nil)

	b, err := svc.Summarise(context.Background(), "Kim", snap())
	require.NoError(t, err)
	assert.Equal(t, "A strong Reflector who likes to think before acting.", b.Headline)
	assert.Equal(t, []string{"Slow to start", "Avoids the spotlight"}, b.BlindSpots)

	req := mock.Calls[0]
	require.NotNil(t, req.Schema)
	assert.Equal(t, "style-brief", req.Schema.Name)
	assert.Contains(t, req.Messages[0].Content, "- Reflector: 17")
	assert.Contains(t, req.Messages[0].Content, "compact reading")

	out := b.String()
	assert.True(t, strings.HasPrefix(out, "A strong Reflector"))
	assert.Contains(t, out, "Blind spots\n  • Slow to start\n  • Avoids the spotlight\n")
}

func TestSummarise_RejectsOffSchemaAnswer(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockJSON(map[string]any{"headline": "missing lists"}))
	_, err := New(mock, time.Second, nil).Summarise(context.Background(), "", snap())

	var inv *llm.ErrInvalidResponse
	require.ErrorAs(t, err, &inv)
	assert.Equal(t, "The AI service returned an unusable response.", llm.UserMessage(err))
}

func TestSummarise_Unavailable(t *testing.T) {
	_, err := New(nil, 0, nil).Summarise(context.Background(), "", snap())
	assert.ErrorIs(t, err, ErrUnavailable)
}
