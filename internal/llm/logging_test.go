package llm

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/somdipdey/Learning-Styles/internal/store"
)

func openEventRepo(t *testing.T) store.EventRepo {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "llm.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s.EventRepo()
}

func TestLoggingProvider_RecordsEvents(t *testing.T) {
	repo := openEventRepo(t)
	core, logs := observer.New(zap.InfoLevel)

	mock := NewMockProvider(
		MockResponse{Content: []byte("Reflective profile."), Usage: Usage{InputTokens: 12, OutputTokens: 4}},
		MockResponse{Err: &ErrRateLimit{Err: errors.New("slow down")}},
	)
	p := WithLogging(mock, ProviderMock, repo, zap.New(core))
	ctx := WithPurpose(context.Background(), "analysis")

	if _, err := p.Generate(ctx, UserPrompt("coach", "my scores")); err != nil {
		t.Fatalf("first call: %v", err)
	}
	if _, err := p.Generate(ctx, UserPrompt("coach", "again")); err == nil {
		t.Fatal("expected error on second call")
	}

	events, err := repo.QueryLLMEvents(context.Background(), store.QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("events = %d, want 2", len(events))
	}

	failed, ok := events[0], events[1]
	if !ok.Success || ok.Provider != ProviderMock || ok.Purpose != "analysis" || ok.InputTokens != 12 {
		t.Errorf("success event = %+v", ok)
	}
	if ok.ResponseBody != "Reflective profile." {
		t.Errorf("response body = %q", ok.ResponseBody)
	}
	if !strings.Contains(ok.RequestBody, "[system]\ncoach") || !strings.Contains(ok.RequestBody, "[user]\nmy scores") {
		t.Errorf("request body = %q", ok.RequestBody)
	}
	if failed.Success || !strings.Contains(failed.ErrorMessage, "slow down") {
		t.Errorf("failed event = %+v", failed)
	}

	if logs.FilterMessage("llm request").Len() != 1 {
		t.Errorf("expected one info log, got %v", logs.All())
	}
	if logs.FilterMessage("llm request failed").Len() != 1 {
		t.Errorf("expected one warn log, got %v", logs.All())
	}
}

func TestLoggingProvider_NilRepo(t *testing.T) {
	p := WithLogging(NewMockProvider(MockText("ok")), ProviderMock, nil, nil)
	resp, err := p.Generate(context.Background(), UserPrompt("", "hi"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text() != "ok" {
		t.Fatalf("text = %q", resp.Text())
	}
}

func TestNewProvider_Mock(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = ProviderMock
	p, err := NewProvider(context.Background(), cfg, nil, nil)
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}
	for i := 0; i < 2; i++ {
		resp, err := p.Generate(context.Background(), UserPrompt("", "hi"))
		if err != nil {
			t.Fatalf("generate %d: %v", i, err)
		}
		if !strings.Contains(resp.Text(), "mock provider") {
			t.Fatalf("text = %q", resp.Text())
		}
	}
}

func TestNewProvider_InvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Anthropic.APIKey = ""
	if _, err := NewProvider(context.Background(), cfg, nil, nil); err == nil {
		t.Fatal("expected error without API key")
	}
}

func TestResolveConfig_EnvDiscovery(t *testing.T) {
	for _, k := range []string{"LSQ_LLM_PROVIDER", "LSQ_ANTHROPIC_API_KEY", "GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY"} {
		t.Setenv(k, "")
	}

	if _, ok := ResolveConfig(); ok {
		t.Fatal("expected no provider without keys")
	}

	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("LSQ_LLM_TIMEOUT", "5s")
	cfg, ok := ResolveConfig()
	if !ok || cfg.Provider != ProviderOpenAI || cfg.OpenAI.APIKey != "sk-test" {
		t.Fatalf("discovered config = %+v, %v", cfg, ok)
	}
	if cfg.Timeout.String() != "5s" {
		t.Errorf("timeout = %v", cfg.Timeout)
	}

	t.Setenv("LSQ_LLM_PROVIDER", ProviderMock)
	cfg, ok = ResolveConfig()
	if !ok || cfg.Provider != ProviderMock {
		t.Fatalf("explicit config = %+v, %v", cfg, ok)
	}
}
