package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "lsq",
	Short: "Honey & Mumford learning styles questionnaire",
	Long: `lsq — tick the statements you agree with, see your Activist, Reflector,
Theorist and Pragmatist scores on the cross, and export the outcome.

Running lsq without a subcommand opens the questionnaire.`,
	SilenceUsage:      true,
	Annotations:       map[string]string{runtimeAnnotation: runtimeTUI},
	PersistentPreRunE: setupRuntime,
	PersistentPostRun: teardownRuntime,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

// Execute runs the root command.
func Execute() error {
	defer teardownRuntime(nil, nil)
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Path to the YAML config file (overrides LSQ_CONFIG)")
	pf.String("db", "", "Path to SQLite database file (overrides LSQ_DB)")
	pf.String("questions", "", "Path to the questions JSON file (overrides LSQ_QUESTIONS)")
	pf.StringP("out", "o", "", "Directory for exported files (overrides LSQ_EXPORT_DIR)")
	pf.Bool("debug", false, "Enable debug logging")

	rootCmd.Flags().Bool("no-welcome", false, "Skip the welcome screen")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(answerCmd)
	rootCmd.AddCommand(nameCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(promptCmd)
	rootCmd.AddCommand(analyseCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}
