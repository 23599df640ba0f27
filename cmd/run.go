package cmd

import (
	"github.com/spf13/cobra"

	"github.com/somdipdey/Learning-Styles/internal/app"
	"github.com/somdipdey/Learning-Styles/internal/ui/theme"
)

var runCmd = &cobra.Command{
	Use:         "run",
	Short:       "Open the interactive questionnaire",
	Annotations: map[string]string{runtimeAnnotation: runtimeTUI},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func init() {
	runCmd.Flags().Bool("no-welcome", false, "Skip the welcome screen")
}

// runApp builds the session on the opened runtime and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	rt := runtimeFrom(cmd)

	st := rt.session(ctx)
	if st.LoadErr != nil {
		cmd.PrintErrln(st.LoadErr)
	}
	exp, err := rt.exporter()
	if err != nil {
		// The questionnaire still works; exports report the missing exporter.
		cmd.PrintErrln(err)
	} else {
		st.Exporter = exp
	}
	st.Clipboard = defaultClipboard()
	st.Analysis = rt.analysisService(ctx)

	theme.Use(st.Theme)
	skip, _ := cmd.Flags().GetBool("no-welcome")
	return app.Run(app.Options{State: st, SkipWelcome: skip})
}
