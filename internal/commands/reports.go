package commands

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/snidget-dev/snidget/internal/codec"
	"github.com/snidget-dev/snidget/internal/ledger"
)

func newTypesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "types",
		Short: "Break visible records down by type",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRollup(cmd, func(a *app) ([]ledger.Rollup, error) {
				return a.ledger.BalancesByType()
			})
		},
	}
	addFilterFlags(cmd)
	return cmd
}

func newRecipientsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recipients",
		Short: "Break visible records down by destination",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRollup(cmd, func(a *app) ([]ledger.Rollup, error) {
				return a.ledger.BalancesByRecipient()
			})
		},
	}
	addFilterFlags(cmd)
	return cmd
}

func runRollup(cmd *cobra.Command, rollup func(*app) ([]ledger.Rollup, error)) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	applyFilterFlags(cmd, a)

	rows, ferr := rollup(a)
	reportAdvisory(cmd, ferr)

	out := cmd.OutOrStdout()
	total := decimal.Zero
	for _, r := range rows {
		total = total.Add(r.Amount)
		fmt.Fprintf(out, "  %-35s %9s\n", r.Name, r.Formatted())
	}
	fmt.Fprintln(out, "  =============================================")
	fmt.Fprintf(out, "  %35s %9s\n", "", total.StringFixed(2))
	return nil
}

func newHistoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Print account balances per day over the filtered range",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			applyFilterFlags(cmd, a)

			everything, _ := cmd.Flags().GetBool("everything")
			rows, ferr := a.ledger.IntegrateDeltas(!everything)
			reportAdvisory(cmd, ferr)

			out := cmd.OutOrStdout()
			for _, row := range rows {
				line := row.Date.Format(codec.DateFormat) + " "
				for _, key := range a.settings.AccountKeys() {
					line += fmt.Sprintf("%9.2f ", row.Accounts[key].InexactFloat64())
				}
				line += fmt.Sprintf("%9.2f ", row.Total.InexactFloat64())
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}
	addFilterFlags(cmd)
	cmd.Flags().Bool("everything", false, "integrate all records, not just visible ones")
	return cmd
}

func newWindowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "window",
		Short: "Print values summed over a trailing window of days",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			applyFilterFlags(cmd, a)

			days, _ := cmd.Flags().GetInt("days")
			if days < 1 {
				return fmt.Errorf("window must be at least one day, got %d", days)
			}
			independent, _ := cmd.Flags().GetBool("independent")
			everything, _ := cmd.Flags().GetBool("everything")

			points, ferr := a.ledger.Integrate(days, !everything, independent)
			reportAdvisory(cmd, ferr)

			out := cmd.OutOrStdout()
			total := decimal.Zero
			for _, p := range points {
				total = total.Add(p.Sum)
				fmt.Fprintf(out, "%s %s\n", p.Date.Format(codec.DateFormat), p.Sum.StringFixed(2))
			}
			average := decimal.Zero
			if len(points) > 0 {
				average = total.Div(decimal.NewFromInt(int64(len(points))))
			}
			fmt.Fprintf(out, "# Average: %s\n", average.StringFixed(2))
			return nil
		},
	}
	addFilterFlags(cmd)
	cmd.Flags().IntP("days", "d", 7, "window size in days")
	cmd.Flags().Bool("independent", false, "emit non-overlapping windows only")
	cmd.Flags().Bool("everything", false, "integrate all records, not just visible ones")
	return cmd
}
