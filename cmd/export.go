package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/somdipdey/Learning-Styles/internal/export"
)

var exportCmd = &cobra.Command{
	Use:         "export",
	Short:       "Write the results as PNG, SVG or Markdown",
	Annotations: map[string]string{runtimeAnnotation: runtimeCLI},
	Long: `Write the results page into the export directory (--out, default the
current directory). File names follow Learning_Styles_Outcome_<Name>.<ext>.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		formatFlag, _ := cmd.Flags().GetString("format")
		formats, err := export.ParseFormats(formatFlag)
		if err != nil {
			return err
		}

		rt := runtimeFrom(cmd)

		exp, err := rt.exporter()
		if err != nil {
			return err
		}
		st := rt.session(cmd.Context())
		results, err := exp.ExportAll(cmd.Context(), st.ExportRequest(), formats)
		out := cmd.OutOrStdout()
		for _, res := range results {
			if res.Bytes == 0 {
				continue
			}
			fmt.Fprintf(out, "%s (%d bytes)\n", export.StatusMessage(res, nil), res.Bytes)
		}
		return err
	},
}

func init() {
	exportCmd.Flags().StringP("format", "f", "png", "Output format: png, svg, md or all")
}
