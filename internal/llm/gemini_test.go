package llm

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestGeminiModelMapping(t *testing.T) {
	assert.Equal(t, "gemini-2.5-flash", resolveModel("gemini-flash", geminiModels))
	assert.Equal(t, "gemini-2.5-pro", resolveModel("gemini-pro", geminiModels))
	assert.Equal(t, "gemini-2.0-flash", resolveModel("gemini-2.0-flash", geminiModels))
}

func TestGeminiSchema(t *testing.T) {
	s := geminiSchema(briefLikeSchema)

	assert.Equal(t, genai.TypeObject, s.Type)
	assert.Equal(t, []string{"headline", "tips", "tone"}, s.PropertyOrdering)
	assert.Equal(t, []string{"headline", "tips"}, s.Required)

	assert.Equal(t, genai.TypeString, s.Properties["headline"].Type)
	assert.Equal(t, []string{"warm", "direct"}, s.Properties["tone"].Enum)

	tips := s.Properties["tips"]
	require.NotNil(t, tips.Items)
	assert.Equal(t, genai.TypeArray, tips.Type)
	assert.Equal(t, genai.TypeString, tips.Items.Type)
	require.NotNil(t, tips.MinItems)
	require.NotNil(t, tips.MaxItems)
	assert.EqualValues(t, 1, *tips.MinItems)
	assert.EqualValues(t, 3, *tips.MaxItems)
}

var briefLikeSchema = map[string]any{
	"type":                 "object",
	"additionalProperties": false,
	"required":             []any{"headline", "tips"},
	"properties": map[string]any{
		"headline": map[string]any{"type": "string", "description": "one line"},
		"tips": map[string]any{
			"type":     "array",
			"items":    map[string]any{"type": "string"},
			"minItems": 1,
			"maxItems": float64(3),
		},
		"tone": map[string]any{"type": "string", "enum": []string{"warm", "direct"}},
	},
}

func TestGeminiSchema_UnknownTypeFallsBackToString(t *testing.T) {
	s := geminiSchema(map[string]any{"type": "null"})
	assert.Equal(t, genai.TypeString, s.Type)
	assert.Nil(t, s.Properties)
}

func TestGeminiConfig(t *testing.T) {
	cfg := geminiConfig(Request{System: "coach", Temperature: 0.2, MaxTokens: 512, Schema: scoresSchema})
	assert.EqualValues(t, 512, cfg.MaxOutputTokens)
	require.NotNil(t, cfg.Temperature)
	assert.InDelta(t, 0.2, *cfg.Temperature, 1e-6)
	require.NotNil(t, cfg.SystemInstruction)
	assert.Equal(t, "coach", cfg.SystemInstruction.Parts[0].Text)
	assert.Equal(t, "application/json", cfg.ResponseMIMEType)
	assert.NotNil(t, cfg.ResponseSchema)

	plain := geminiConfig(UserPrompt("", "hi"))
	assert.Nil(t, plain.Temperature)
	assert.Nil(t, plain.SystemInstruction)
	assert.Empty(t, plain.ResponseMIMEType)
}

func TestGeminiContents(t *testing.T) {
	contents := geminiContents([]Message{
		{Role: RoleUser, Content: "scores"},
		{Role: RoleAssistant, Content: "Pragmatist."},
	})
	require.Len(t, contents, 2)
	assert.Equal(t, genai.RoleUser, contents[0].Role)
	assert.Equal(t, genai.RoleModel, contents[1].Role)
	assert.Equal(t, "Pragmatist.", contents[1].Parts[0].Text)
}

func TestGeminiResult(t *testing.T) {
	r := &genai.GenerateContentResponse{
		ModelVersion: "gemini-2.5-flash-001",
		Candidates: []*genai.Candidate{{
			Content:      genai.NewContentFromText("Lean into reflection.", genai.RoleModel),
			FinishReason: genai.FinishReasonMaxTokens,
		}},
		UsageMetadata: &genai.GenerateContentResponseUsageMetadata{
			PromptTokenCount:     10,
			CandidatesTokenCount: 5,
			TotalTokenCount:      15,
		},
	}
	resp := geminiResult("gemini-2.5-flash", r)
	assert.Equal(t, "Lean into reflection.", resp.Text())
	assert.Equal(t, "gemini-2.5-flash-001", resp.Model)
	assert.Equal(t, StopMaxTokens, resp.StopReason)
	assert.Equal(t, Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}, resp.Usage)
}

func TestGeminiError(t *testing.T) {
	var rl *ErrRateLimit
	assert.ErrorAs(t, geminiError(&genai.APIError{Code: http.StatusTooManyRequests}), &rl)

	var rej *ErrRejected
	require.ErrorAs(t, geminiError(&genai.APIError{Code: http.StatusForbidden}), &rej)
	assert.True(t, rej.Auth())

	var unavail *ErrProviderUnavailable
	assert.ErrorAs(t, geminiError(errors.New("dial tcp: refused")), &unavail)
}
