// Package history lists past exports and AI coach requests.
package history

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/somdipdey/Learning-Styles/internal/llm"
	"github.com/somdipdey/Learning-Styles/internal/router"
	"github.com/somdipdey/Learning-Styles/internal/screen"
	"github.com/somdipdey/Learning-Styles/internal/store"
	"github.com/somdipdey/Learning-Styles/internal/ui/layout"
	"github.com/somdipdey/Learning-Styles/internal/ui/theme"
)

// Limit is the number of events of each kind loaded.
const Limit = 50

// Entry is one row of the merged timeline.
type Entry struct {
	Sequence  int64
	Timestamp time.Time
	Kind      string // "export" or "ai"
	Summary   string
	Detail    string
	Success   bool
}

type historyLoadedMsg struct {
	Entries []Entry
	Err     error
}

// HistoryScreen displays export and LLM events newest first.
type HistoryScreen struct {
	eventRepo store.EventRepo
	entries   []Entry
	selected  int
	expanded  map[int]bool
	loaded    bool
	errMsg    string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(eventRepo store.EventRepo) *HistoryScreen {
	return &HistoryScreen{
		eventRepo: eventRepo,
		expanded:  make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.eventRepo
	return func() tea.Msg {
		entries, err := Load(context.Background(), repo)
		return historyLoadedMsg{Entries: entries, Err: err}
	}
}

// Load merges the latest export and LLM events into one timeline ordered
// by global sequence, newest first.
func Load(ctx context.Context, repo store.EventRepo) ([]Entry, error) {
	if repo == nil {
		return nil, nil
	}
	exports, err := repo.QueryExports(ctx, store.QueryOpts{Limit: Limit})
	if err != nil {
		return nil, fmt.Errorf("query exports: %w", err)
	}
	calls, err := repo.QueryLLMEvents(ctx, store.QueryOpts{Limit: Limit})
	if err != nil {
		return nil, fmt.Errorf("query llm events: %w", err)
	}

	entries := make([]Entry, 0, len(exports)+len(calls))
	for _, e := range exports {
		entry := Entry{
			Sequence:  e.Sequence,
			Timestamp: e.Timestamp,
			Kind:      "export",
			Summary:   fmt.Sprintf("%s  %s", strings.ToUpper(e.Format), e.Name),
			Detail:    e.Path,
			Success:   e.Success,
		}
		if e.Success {
			entry.Summary += fmt.Sprintf("  %s", byteSize(e.Bytes))
		} else {
			entry.Detail = e.ErrorMessage
		}
		entries = append(entries, entry)
	}
	for _, c := range calls {
		summary := fmt.Sprintf("%s/%s  %d+%d tokens", c.Provider, c.Model, c.InputTokens, c.OutputTokens)
		if usd, ok := llm.EstimateCost(c.Model, c.InputTokens, c.OutputTokens); ok {
			summary += "  " + llm.FormatCost(usd)
		}
		entry := Entry{
			Sequence:  c.Sequence,
			Timestamp: c.Timestamp,
			Kind:      "ai",
			Summary:   summary,
			Detail:    fmt.Sprintf("%s, %dms", c.Purpose, c.LatencyMs),
			Success:   c.Success,
		}
		if !c.Success {
			entry.Detail = c.ErrorMessage
		}
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Sequence > entries[j].Sequence })
	return entries, nil
}

func byteSize(n int) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.entries = msg.Entries
		}
		s.loaded = true
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "esc":
			return s, router.Back()
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.entries)-1 {
				s.selected++
			}
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	if s.errMsg != "" {
		return center.Foreground(theme.Error).Render("\n\nError: " + s.errMsg)
	}
	if !s.loaded {
		return center.Foreground(theme.TextDim).Render("\n\n  Loading history...")
	}
	if len(s.entries) == 0 {
		return center.Foreground(theme.TextDim).Italic(true).
			Render("\n\n  Nothing yet. Exports and AI coach requests show up here.")
	}

	var b strings.Builder
	b.WriteString("\n")
	for i, e := range s.entries {
		prefix := "  "
		if i == s.selected {
			prefix = "▸ "
		}
		mark := theme.StatusOK.Render("✓")
		if !e.Success {
			mark = theme.StatusErr.Render("✗")
		}
		line := fmt.Sprintf("%s%s  %-6s %s", prefix, e.Timestamp.Local().Format("Jan 02 15:04"), e.Kind, e.Summary)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = theme.Selected
		}
		b.WriteString(style.MaxWidth(max(1, width-4)).Render(line) + " " + mark + "\n")

		if s.expanded[i] && e.Detail != "" {
			b.WriteString(theme.Hint.MaxWidth(max(1, width-4)).Render("      "+e.Detail) + "\n")
		}
	}
	return b.String()
}
