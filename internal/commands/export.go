package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/snidget-dev/snidget/internal/render"
)

func newExportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [format]",
		Short: "Write the filtered ledger in an export format (csv)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format := "csv"
			if len(args) > 0 {
				format = args[0]
			}
			if format != "csv" {
				return fmt.Errorf("format %q not supported", format)
			}

			a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			applyFilterFlags(cmd, a)

			totalValue, _ := cmd.Flags().GetBool("value")
			err = render.Table(cmd.OutOrStdout(), a.ledger, a.settings, render.Options{
				TotalValue: totalValue != a.settings.TotalValues,
				MaxPrint:   a.ledger.Filters.MaxPrint,
				CSV:        true,
			})
			reportAdvisory(cmd, err)
			return nil
		},
	}

	addFilterFlags(cmd)
	cmd.Flags().BoolP("value", "v", false, "flip between per-account columns and one value column")
	return cmd
}
