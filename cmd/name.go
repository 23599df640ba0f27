package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var nameCmd = &cobra.Command{
	Use:         "name [name]",
	Short:       "Show or set the name used in titles and exports",
	Annotations: map[string]string{runtimeAnnotation: runtimeCLI},
	Args:        cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		clear, _ := cmd.Flags().GetBool("clear")

		rt := runtimeFrom(cmd)

		st := rt.session(cmd.Context())
		out := cmd.OutOrStdout()
		switch {
		case clear:
			st.SetName("")
		case len(args) == 1:
			st.SetName(strings.TrimSpace(args[0]))
		}
		fmt.Fprintln(out, st.DisplayName())
		return nil
	},
}

func init() {
	nameCmd.Flags().Bool("clear", false, "Forget the stored name")
}
