package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bjaus/spatialout"
)

func newInferCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "infer FILE...",
		Short: "Print the table format inferred from each file name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range args {
				f, err := spatialout.InferFormat(name)
				if err != nil {
					return err
				}
				if _, err := fmt.Fprintf(a.stdout, "%s\t%s\n", name, f); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
