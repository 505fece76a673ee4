package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/bjaus/spatialout"
)

func newFormatsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List the supported table formats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := &spatialout.Preview{Header: []string{"format", "extension", "compressed"}}
			for _, f := range spatialout.Formats() {
				p.Rows = append(p.Rows, []string{f.String(), f.Extension(), strconv.FormatBool(f.Compressed())})
			}
			p.TotalRows = int64(len(p.Rows))
			return spatialout.RenderPreview(a.stdout, p, spatialout.RenderOptions{Border: spatialout.BorderNone})
		},
	}
}
