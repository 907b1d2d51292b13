package commands

import (
	"github.com/spf13/cobra"

	"github.com/snidget-dev/snidget/internal/settings"
)

// addFilterFlags attaches the shared filter dimension flags to a reporting
// command. Flags left unset fall through to the defaults in snidget.yaml.
func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("dates", "D", "", "date filter: 'W<n>' or 'start[,end]' (YYYY-MM-DD)")
	cmd.Flags().StringP("account", "A", "", "only records with a nonzero delta in every named account")
	cmd.Flags().StringP("columns", "C", "", "account columns to render ('all', 'none', or names)")
	cmd.Flags().StringP("only", "B", "", "shorthand for --account NAME --columns NAME")
	cmd.Flags().StringP("type", "T", "", "only records of these types")
	cmd.Flags().StringP("not-type", "F", "", "exclude records of these types")
	cmd.Flags().BoolP("expenses", "E", false, "only expense-like types")
	cmd.Flags().StringP("recipient", "L", "", "only records with these destinations")
	cmd.Flags().StringP("contains", "S", "", "only records whose description or destination contains this")
	cmd.Flags().StringP("values", "V", "", "value range 'min[,max]'")
	cmd.Flags().StringP("exclude", "X", "", "uids to hide")
	cmd.Flags().BoolP("week", "W", false, "only the trailing week")
	cmd.Flags().IntP("max", "N", 0, "print at most the last n visible rows")
	cmd.Flags().BoolP("all", "a", false, "no row cap")
	cmd.Flags().BoolP("reset", "R", false, "ignore the default filters from snidget.yaml")
}

// applyFilterFlags folds set flags into the ledger's filter specification on
// top of (or instead of, with --reset) the configured defaults.
func applyFilterFlags(cmd *cobra.Command, a *app) {
	f := cmd.Flags()
	spec := &a.ledger.Filters

	if reset, _ := f.GetBool("reset"); reset {
		*spec = settings.Filters{}
	}

	if f.Changed("dates") {
		spec.Dates, _ = f.GetString("dates")
	}
	if week, _ := f.GetBool("week"); week {
		spec.Dates = "W1"
	}
	if f.Changed("account") {
		spec.Accounts, _ = f.GetString("account")
	}
	if f.Changed("columns") {
		spec.Columns, _ = f.GetString("columns")
	}
	if f.Changed("only") {
		only, _ := f.GetString("only")
		spec.Accounts = only
		spec.Columns = only
	}
	if f.Changed("type") {
		spec.Types, _ = f.GetString("type")
	}
	if f.Changed("not-type") {
		not, _ := f.GetString("not-type")
		spec.Types = a.settings.NotCharacter() + not
	}
	if expenses, _ := f.GetBool("expenses"); expenses {
		spec.Types = a.settings.ExpenseTypesSpec()
	}
	if f.Changed("recipient") {
		spec.Recipients, _ = f.GetString("recipient")
	}
	if f.Changed("contains") {
		spec.Substring, _ = f.GetString("contains")
	}
	if f.Changed("values") {
		spec.Values, _ = f.GetString("values")
	}
	if f.Changed("exclude") {
		spec.UIDs, _ = f.GetString("exclude")
	}
	if f.Changed("max") {
		spec.MaxPrint, _ = f.GetInt("max")
	}
	if all, _ := f.GetBool("all"); all {
		spec.MaxPrint = 0
	}
}
