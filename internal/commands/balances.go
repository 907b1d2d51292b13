package commands

import (
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/snidget-dev/snidget/internal/ledger"
)

func newBalancesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "balances",
		Short: "Print the current balance of every account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}

			report, ferr := a.ledger.Balances()
			reportAdvisory(cmd, ferr)

			out := cmd.OutOrStdout()
			for _, key := range a.settings.AccountKeys() {
				if a.settings.IsDeleted(key) {
					continue
				}
				name, _ := a.settings.AccountName(key)
				balance := report.All[key]
				if a.settings.IsForeign(key) {
					converted := balance.Mul(a.settings.ExchangeRate(key))
					fmt.Fprintf(out, "%-15s %14s = %14s\n", name,
						formatMoney(balance, currencyOf(a, key)),
						formatMoney(converted, a.settings.DefaultCurrency))
				} else {
					fmt.Fprintf(out, "%-15s %14s   %14s\n", name, "",
						formatMoney(balance, a.settings.DefaultCurrency))
				}
			}
			fmt.Fprintf(out, "%-15s %14s   ==============\n", "", "")
			fmt.Fprintf(out, "%-15s %14s   %14s\n", "Total", "",
				formatMoney(report.All[ledger.SumKey], a.settings.DefaultCurrency))
			return nil
		},
	}
}

func currencyOf(a *app, key string) string {
	for _, acc := range a.settings.Accounts {
		if acc.Key == key && acc.Currency != "" {
			return acc.Currency
		}
	}
	return a.settings.DefaultCurrency
}

// formatMoney renders an amount with its currency's own symbol and grouping.
func formatMoney(d decimal.Decimal, code string) string {
	cur := money.New(0, code).Currency()
	return cur.Formatter().Format(d.Shift(int32(cur.Fraction)).IntPart())
}
