package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/banshee-data/cellmeasure/internal/report"
)

func newColumnsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "columns",
		Short: "List the measurement columns the configured run writes",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			components, err := buildComponents(cfg)
			if err != nil {
				return err
			}
			for _, c := range components {
				if err := c.Validate(); err != nil {
					return fmt.Errorf("%s: %w", c.Name(), err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\n%s\n", c.Name(), report.ColumnsTable(c.MeasurementColumns()))
			}
			return nil
		},
	}
}
