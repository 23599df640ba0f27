package history

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/somdipdey/Learning-Styles/internal/router"
	"github.com/somdipdey/Learning-Styles/internal/store"
)

func seededRepo(t *testing.T) store.EventRepo {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	repo := st.EventRepo()
	ctx := context.Background()

	if err := repo.AppendExport(ctx, store.ExportEventData{
		ExportID: "a", Format: "png", Name: "Kim", Path: "/tmp/a.png", Bytes: 2048, Success: true,
	}); err != nil {
		t.Fatal(err)
	}
	if err := repo.AppendLLMRequest(ctx, store.LLMRequestEventData{
		Provider: "openai", Model: "gpt-4.1-mini", Purpose: "analysis",
		InputTokens: 300, OutputTokens: 200, LatencyMs: 900, Success: true,
	}); err != nil {
		t.Fatal(err)
	}
	if err := repo.AppendExport(ctx, store.ExportEventData{
		ExportID: "b", Format: "svg", Name: "Kim", Success: false, ErrorMessage: "disk full",
	}); err != nil {
		t.Fatal(err)
	}
	return repo
}

func TestLoadMergesNewestFirst(t *testing.T) {
	entries, err := Load(context.Background(), seededRepo(t))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	kinds := []string{entries[0].Kind, entries[1].Kind, entries[2].Kind}
	if strings.Join(kinds, ",") != "export,ai,export" {
		t.Errorf("unexpected order %v", kinds)
	}
	if entries[0].Success || entries[0].Detail != "disk full" {
		t.Errorf("failed export should carry its error, got %+v", entries[0])
	}
	if !strings.Contains(entries[1].Summary, "openai/gpt-4.1-mini") || !strings.Contains(entries[1].Summary, "$") {
		t.Errorf("unexpected ai summary %q", entries[1].Summary)
	}
	if !strings.Contains(entries[2].Summary, "2.0 KB") {
		t.Errorf("expected size in export summary, got %q", entries[2].Summary)
	}
}

func TestLoadNilRepo(t *testing.T) {
	entries, err := Load(context.Background(), nil)
	if err != nil || entries != nil {
		t.Fatalf("expected nothing for a nil repo, got %v, %v", entries, err)
	}
}

func TestScreenFlow(t *testing.T) {
	s := New(seededRepo(t))
	if !strings.Contains(s.View(100, 30), "Loading") {
		t.Error("expected loading message before data arrives")
	}

	msg := s.Init()()
	s.Update(msg)
	v := s.View(100, 30)
	if !strings.Contains(v, "SVG") || !strings.Contains(v, "PNG") {
		t.Errorf("expected both exports listed:\n%s", v)
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if !strings.Contains(s.View(100, 30), "disk full") {
		t.Error("expected detail after expanding")
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if s.selected != 2 {
		t.Errorf("selection should stop at the last entry, got %d", s.selected)
	}

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if _, ok := cmd().(router.BackMsg); !ok {
		t.Error("esc should pop the screen")
	}
}

func TestEmpty(t *testing.T) {
	s := New(nil)
	s.Update(s.Init()())
	if !strings.Contains(s.View(100, 30), "Nothing yet") {
		t.Error("expected empty message")
	}
}
