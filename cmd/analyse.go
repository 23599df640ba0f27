package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/somdipdey/Learning-Styles/internal/report"
)

var analyseCmd = &cobra.Command{
	Use:         "analyse",
	Aliases:     []string{"analyze"},
	Short:       "Ask the configured LLM to interpret the current scores",
	Annotations: map[string]string{runtimeAnnotation: runtimeCLI},
	Long: `Send the coaching prompt to the LLM provider configured through the
environment (LSQ_LLM_PROVIDER and the provider's API key) and print the answer.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt := runtimeFrom(cmd)

		ctx := cmd.Context()
		st := rt.session(ctx)
		st.Analysis = rt.analysisService(ctx)
		out := cmd.OutOrStdout()

		if brief, _ := cmd.Flags().GetBool("brief"); brief {
			b, err := st.Analysis.Summarise(ctx, st.DisplayName(), st.Snapshot())
			if err != nil {
				return err
			}
			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				return writeJSON(out, b)
			}
			fmt.Fprint(out, b.String())
			return nil
		}

		res, err := st.Analyse(ctx)
		if err != nil {
			return err
		}

		if raw, _ := cmd.Flags().GetBool("raw"); raw {
			fmt.Fprintln(out, res.Markdown)
			return nil
		}
		style, _ := cmd.Flags().GetString("style")
		width, _ := cmd.Flags().GetInt("width")
		rendered, err := report.RenderTerminal(res.Markdown, style, width)
		if err != nil {
			rt.logger.Debug("render analysis failed, printing raw markdown")
			rendered = res.Markdown
		}
		fmt.Fprint(out, rendered)
		fmt.Fprintf(out, "\n%s · %d in / %d out tokens · %s\n",
			res.Model, res.Usage.InputTokens, res.Usage.OutputTokens, res.Elapsed.Round(time.Millisecond))
		return nil
	},
}

func init() {
	f := analyseCmd.Flags()
	f.Bool("brief", false, "Ask for a short structured reading instead")
	f.Bool("json", false, "With --brief, print the reading as JSON")
	f.Bool("raw", false, "Print the Markdown answer without rendering")
	f.String("style", "dark", "Glamour style: dark, light, notty or auto")
	f.Int("width", 100, "Wrap width for the rendered answer")
}
