package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var promptCmd = &cobra.Command{
	Use:         "prompt",
	Short:       "Print the AI coaching prompt for the current scores",
	Annotations: map[string]string{runtimeAnnotation: runtimeCLI},
	RunE: func(cmd *cobra.Command, args []string) error {
		rt := runtimeFrom(cmd)

		st := rt.session(cmd.Context())
		if cp, _ := cmd.Flags().GetBool("copy"); cp {
			st.Clipboard = defaultClipboard()
			res := st.CopyPrompt(cmd.Context())
			cmd.PrintErrln(res.StatusMessage())
			if res.Copied {
				return nil
			}
		}
		fmt.Fprintln(cmd.OutOrStdout(), st.Prompt())
		return nil
	},
}

func init() {
	promptCmd.Flags().BoolP("copy", "c", false, "Copy the prompt to the clipboard instead of printing it")
}
