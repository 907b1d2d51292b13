package commands

import (
	"github.com/spf13/cobra"

	"github.com/snidget-dev/snidget/internal/render"
)

func newShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the filtered ledger as a table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			applyFilterFlags(cmd, a)

			totalValue, _ := cmd.Flags().GetBool("value")
			running, _ := cmd.Flags().GetBool("running")

			err = render.Table(cmd.OutOrStdout(), a.ledger, a.settings, render.Options{
				TotalValue:      totalValue != a.settings.TotalValues,
				RunningBalances: running,
				MaxPrint:        a.ledger.Filters.MaxPrint,
			})
			reportAdvisory(cmd, err)
			return nil
		},
	}

	addFilterFlags(cmd)
	cmd.Flags().BoolP("value", "v", false, "flip between per-account columns and one value column")
	cmd.Flags().BoolP("running", "q", false, "include running balances per account")
	return cmd
}
