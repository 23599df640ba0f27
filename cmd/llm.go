package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/spf13/cobra"

	"github.com/somdipdey/Learning-Styles/internal/llm"
	"github.com/somdipdey/Learning-Styles/internal/store"
)

const timeLayout = "2006-01-02 15:04:05"

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect recorded AI coach requests",
	Long: `Every request sent to an LLM provider is stored with its prompt, the
answer, token counts and latency. These commands read that log.`,
}

var llmListFlags struct {
	limit   int
	purpose string
	json    bool
}

var llmListCmd = &cobra.Command{
	Use:         "list",
	Short:       "List recent LLM requests, newest first",
	Annotations: map[string]string{runtimeAnnotation: runtimeCLI},
	RunE: func(cmd *cobra.Command, args []string) error {
		if p := llmListFlags.purpose; p != "" {
			if _, err := llm.ParsePurpose(p); err != nil {
				return err
			}
		}
		rt := runtimeFrom(cmd)

		events, err := rt.store.EventRepo().QueryLLMEvents(cmd.Context(), store.QueryOpts{
			Limit:   llmListFlags.limit,
			Purpose: llmListFlags.purpose,
		})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}

		out := cmd.OutOrStdout()
		if llmListFlags.json {
			if events == nil {
				events = []store.LLMRequestRecord{}
			}
			return writeJSON(out, events)
		}
		if len(events) == 0 {
			fmt.Fprintln(out, "No LLM events found.")
			return nil
		}

		t := newTable("ID", "Time", "Purpose", "Model", "In", "Out", "Ms", "OK")
		for _, e := range events {
			t.Row(
				strconv.Itoa(e.ID),
				e.Timestamp.Local().Format(timeLayout),
				e.Purpose,
				ellipsize(e.Model, 28),
				strconv.Itoa(e.InputTokens),
				strconv.Itoa(e.OutputTokens),
				strconv.FormatInt(e.LatencyMs, 10),
				tick(e.Success),
			)
		}
		fmt.Fprintln(out, t.String())
		return nil
	},
}

var llmViewJSON bool

var llmViewCmd = &cobra.Command{
	Use:         "view <id>",
	Short:       "Show the full prompt and answer of one request",
	Annotations: map[string]string{runtimeAnnotation: runtimeCLI},
	Args:        cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil || id <= 0 {
			return fmt.Errorf("invalid event id %q", args[0])
		}

		rt := runtimeFrom(cmd)

		e, err := rt.store.EventRepo().GetLLMEvent(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}
		if e == nil {
			return fmt.Errorf("event %d not found", id)
		}

		out := cmd.OutOrStdout()
		if llmViewJSON {
			return writeJSON(out, e)
		}

		fields := [][2]string{
			{"ID", strconv.Itoa(e.ID)},
			{"Time", e.Timestamp.Local().Format(timeLayout)},
			{"Provider", e.Provider},
			{"Model", e.Model},
			{"Purpose", e.Purpose},
			{"Tokens", fmt.Sprintf("%d in / %d out", e.InputTokens, e.OutputTokens)},
			{"Latency", fmt.Sprintf("%dms", e.LatencyMs)},
			{"Success", strconv.FormatBool(e.Success)},
		}
		if usd, ok := llm.EstimateCost(e.Model, e.InputTokens, e.OutputTokens); ok {
			fields = append(fields, [2]string{"Cost", llm.FormatCost(usd)})
		}
		if e.ErrorMessage != "" {
			fields = append(fields, [2]string{"Error", e.ErrorMessage})
		}
		for _, f := range fields {
			fmt.Fprintf(out, "%-10s %s\n", f[0]+":", f[1])
		}

		section(out, "REQUEST", e.RequestBody)
		section(out, "RESPONSE", e.ResponseBody)
		return nil
	},
}

var llmStatsCmd = &cobra.Command{
	Use:         "stats",
	Short:       "Summarise token usage and estimated cost",
	Annotations: map[string]string{runtimeAnnotation: runtimeCLI},
	RunE: func(cmd *cobra.Command, args []string) error {
		rt := runtimeFrom(cmd)

		ctx := cmd.Context()
		repo := rt.store.EventRepo()
		out := cmd.OutOrStdout()

		byPurpose, err := repo.LLMUsageByPurpose(ctx)
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}
		if len(byPurpose) == 0 {
			fmt.Fprintln(out, "No LLM usage recorded yet.")
			return nil
		}
		byModel, err := repo.LLMUsageByModel(ctx)
		if err != nil {
			return fmt.Errorf("query model usage: %w", err)
		}

		fmt.Fprintln(out, heading("Usage by purpose"))
		fmt.Fprintln(out, purposeTable(byPurpose).String())
		fmt.Fprintln(out)
		fmt.Fprintln(out, heading("Estimated cost (USD)"))
		costs, unpriced := costTable(byModel)
		fmt.Fprintln(out, costs.String())
		if len(unpriced) > 0 {
			fmt.Fprintf(out, "\nNo pricing for: %s\n", strings.Join(unpriced, ", "))
		}
		return nil
	},
}

func purposeTable(stats []store.LLMUsageStats) *table.Table {
	t := newTable("Purpose", "Calls", "Input", "Output", "Total", "Avg ms")
	var calls, in, outTok int
	for _, s := range stats {
		t.Row(s.Purpose, strconv.Itoa(s.Calls), strconv.Itoa(s.InputTokens), strconv.Itoa(s.OutputTokens),
			strconv.Itoa(s.InputTokens+s.OutputTokens), strconv.FormatInt(s.AvgLatencyMs, 10))
		calls += s.Calls
		in += s.InputTokens
		outTok += s.OutputTokens
	}
	t.Row("TOTAL", strconv.Itoa(calls), strconv.Itoa(in), strconv.Itoa(outTok), strconv.Itoa(in+outTok), "")
	return t
}

// costTable prices each model. Models without a price are listed in the
// table with "?" and returned so the total can be marked partial.
func costTable(usage []store.LLMModelUsage) (*table.Table, []string) {
	t := newTable("Model", "Calls", "Input", "Output", "Cost")
	var (
		total    float64
		unpriced []string
	)
	for _, u := range usage {
		cost := "?"
		if usd, ok := llm.EstimateCost(u.Model, u.InputTokens, u.OutputTokens); ok {
			total += usd
			cost = llm.FormatCost(usd)
		} else {
			unpriced = append(unpriced, u.Model)
		}
		t.Row(ellipsize(u.Model, 32), strconv.Itoa(u.Calls), strconv.Itoa(u.InputTokens), strconv.Itoa(u.OutputTokens), cost)
	}
	label := "TOTAL"
	if len(unpriced) > 0 {
		label = "TOTAL (partial)"
	}
	t.Row(label, "", "", "", llm.FormatCost(total))
	return t, unpriced
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderColumn(false).
		BorderRow(false).
		Headers(headers...)
}

func heading(title string) string {
	return lipgloss.NewStyle().Bold(true).Render(title)
}

func section(w io.Writer, title, body string) {
	rule := strings.Repeat("─", 60)
	if body == "" {
		body = "(not captured)"
	}
	fmt.Fprintf(w, "\n%s\n%s\n%s\n%s\n", rule, title, rule, body)
}

func tick(ok bool) string {
	if ok {
		return "✓"
	}
	return "✗"
}

// ellipsize shortens s to at most n runes.
func ellipsize(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	llmListCmd.Flags().IntVarP(&llmListFlags.limit, "limit", "n", 20, "number of events to show (0 for all)")
	llmListCmd.Flags().StringVarP(&llmListFlags.purpose, "purpose", "p", "", "only show one purpose (analysis, brief)")
	llmListCmd.Flags().BoolVar(&llmListFlags.json, "json", false, "print the events as JSON")
	llmViewCmd.Flags().BoolVar(&llmViewJSON, "json", false, "print the event as JSON")

	llmCmd.AddCommand(llmListCmd, llmViewCmd, llmStatsCmd)
}
