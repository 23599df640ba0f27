package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/somdipdey/Learning-Styles/internal/screens/history"
)

var historyCmd = &cobra.Command{
	Use:         "history",
	Short:       "List recent exports and AI analyses",
	Annotations: map[string]string{runtimeAnnotation: runtimeCLI},
	RunE: func(cmd *cobra.Command, args []string) error {
		rt := runtimeFrom(cmd)

		entries, err := history.Load(cmd.Context(), rt.store.EventRepo())
		if err != nil {
			return fmt.Errorf("load history: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(entries) == 0 {
			fmt.Fprintln(out, "No exports or analyses recorded yet.")
			return nil
		}

		limit, _ := cmd.Flags().GetInt("limit")
		if limit > 0 && len(entries) > limit {
			entries = entries[:limit]
		}
		fmt.Fprintf(out, "%-19s  %-6s  %-2s  %s\n", "Timestamp", "Kind", "OK", "Summary")
		fmt.Fprintln(out, strings.Repeat("─", 72))
		for _, e := range entries {
			ok := "✓"
			if !e.Success {
				ok = "✗"
			}
			fmt.Fprintf(out, "%-19s  %-6s  %-2s  %s\n",
				e.Timestamp.Local().Format(timeLayout), e.Kind, ok, e.Summary)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of entries to show")
}
