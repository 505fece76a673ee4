package cli

import (
	"github.com/spf13/cobra"

	"github.com/bjaus/spatialout"
)

func newInspectCommand(a *app) *cobra.Command {
	var (
		rows     int
		format   string
		markdown bool
		ascii    bool
		maxWidth int
	)

	cmd := &cobra.Command{
		Use:   "inspect FILE",
		Short: "Print the first rows of a written table",
		Long: `Print the first rows of a written table:
  spatialout inspect cell_metadata.csv.gz
  spatialout inspect counts.parquet --rows 5 --markdown
  `,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := spatialout.ParseFormat(format)
			if err != nil {
				return err
			}
			p, err := spatialout.ReadPreview(a.fs, args[0], f, rows)
			if err != nil {
				return err
			}
			opts := spatialout.RenderOptions{Markdown: markdown, MaxWidth: maxWidth}
			if ascii {
				opts.Border = spatialout.BorderASCII
			}
			return spatialout.RenderPreview(a.stdout, p, opts)
		},
	}

	cmd.Flags().IntVarP(&rows, "rows", "n", 10, "number of rows to show")
	cmd.Flags().StringVarP(&format, "format", "f", string(spatialout.Infer), "table format, or infer to use the file name")
	cmd.Flags().BoolVar(&markdown, "markdown", false, "render a Markdown table")
	cmd.Flags().BoolVar(&ascii, "ascii", false, "draw borders with ASCII characters")
	cmd.Flags().IntVar(&maxWidth, "max-width", 40, "truncate cells wider than this (0 for no limit)")
	return cmd
}
