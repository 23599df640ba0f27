package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/somdipdey/Learning-Styles/internal/diagram"
	"github.com/somdipdey/Learning-Styles/internal/questionnaire"
	"github.com/somdipdey/Learning-Styles/internal/scoring"
)

var scoreCmd = &cobra.Command{
	Use:         "score",
	Short:       "Print the current scores and the learning styles cross",
	Annotations: map[string]string{runtimeAnnotation: runtimeCLI},
	RunE: func(cmd *cobra.Command, args []string) error {
		rt := runtimeFrom(cmd)

		st := rt.session(cmd.Context())
		snap := st.Snapshot()
		out := cmd.OutOrStdout()

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return writeScoreJSON(out, st.DisplayName(), snap)
		}

		fmt.Fprintln(out, questionnaire.ResultTitle(st.Name()))
		fmt.Fprintln(out)
		writeScoreTable(out, snap)
		fmt.Fprintln(out)
		fmt.Fprintln(out, diagram.Terminal(snap))
		return nil
	},
}

type scoreJSON struct {
	Name     string         `json:"name"`
	Scores   map[string]int `json:"scores"`
	Ticked   int            `json:"ticked"`
	Items    int            `json:"items"`
	Dominant []string       `json:"dominant"`
}

func writeScoreJSON(w io.Writer, name string, snap scoring.Snapshot) error {
	doc := scoreJSON{
		Name:     name,
		Scores:   make(map[string]int, 4),
		Ticked:   snap.Ticked,
		Items:    snap.Total(),
		Dominant: []string{},
	}
	for _, c := range questionnaire.Categories() {
		doc.Scores[string(c)] = snap.Of(c)
	}
	for _, c := range scoring.Dominant(snap) {
		doc.Dominant = append(doc.Dominant, string(c))
	}
	return writeJSON(w, doc)
}

func writeScoreTable(w io.Writer, snap scoring.Snapshot) {
	fmt.Fprintf(w, "%-12s  %5s\n", "Style", "Score")
	fmt.Fprintln(w, strings.Repeat("─", 19))
	for _, c := range questionnaire.Categories() {
		fmt.Fprintf(w, "%-12s  %2d/%2d\n", c.Label(), snap.Of(c), questionnaire.ItemsPerCategory)
	}
	fmt.Fprintln(w, strings.Repeat("─", 19))
	fmt.Fprintf(w, "Ticked %d / %d\n", snap.Ticked, snap.Total())

	if dom := scoring.Dominant(snap); len(dom) > 0 {
		labels := make([]string, len(dom))
		for i, c := range dom {
			labels[i] = c.Label()
		}
		fmt.Fprintf(w, "Strongest: %s\n", strings.Join(labels, ", "))
	}
}

func init() {
	scoreCmd.Flags().Bool("json", false, "Print scores as JSON")
}
