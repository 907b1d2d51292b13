package commands

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/snidget-dev/snidget/internal/settings"
)

func newConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and edit the account and type registries",
	}
	cmd.AddCommand(
		newConfigShowCommand(),
		newConfigAccountCommand(),
		newConfigTypeCommand(),
		newConfigRateCommand(),
	)
	return cmd
}

// editSettings loads snidget.yaml, applies fn, and saves it back when fn
// succeeds. Registry edits never touch the ledger file.
func editSettings(cmd *cobra.Command, fn func(*settings.Settings) error) error {
	dir := dataDir(cmd)
	path := filepath.Join(dir, ConfigFile)
	st, err := settings.Load(path)
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}
	if err := fn(st); err != nil {
		return err
	}
	return settings.Save(path, st)
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the account and type registries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := settings.Load(filepath.Join(dataDir(cmd), ConfigFile))
			if err != nil {
				return fmt.Errorf("loading settings: %w", err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%-12s %-4s %-9s %10s\n", "Name", "ID", "Currency", "Exchange")
			for _, a := range st.Accounts {
				currency := a.Currency
				rate := a.Rate
				if !st.IsForeign(a.Key) {
					currency = st.DefaultCurrency
					rate = 1
				}
				fmt.Fprintf(out, "%-12s %-4s %-9s %10f", a.Name, a.Key, currency, rate)
				if a.Deleted {
					fmt.Fprint(out, "   (hidden)")
				}
				fmt.Fprintln(out)
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Types:")
			for _, t := range st.Types {
				kind := "expense"
				if t.Positive {
					kind = "positive"
				}
				fmt.Fprintf(out, "  %-12s %s\n", t.Name, kind)
			}
			return nil
		},
	}
}

func newConfigAccountCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Edit the account registry",
	}

	var currency string
	var rate float64
	add := &cobra.Command{
		Use:   "add <name>",
		Short: "Register a new account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editSettings(cmd, func(st *settings.Settings) error {
				var key string
				var err error
				if currency != "" {
					key, err = st.AddForeignAccount(args[0], currency, rate)
				} else {
					key, err = st.AddAccount(args[0])
				}
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), key)
				return nil
			})
		},
	}
	add.Flags().StringVar(&currency, "currency", "", "foreign currency code")
	add.Flags().Float64Var(&rate, "rate", 0, "exchange rate to the default currency")

	del := &cobra.Command{
		Use:   "delete <name>",
		Short: "Hide an account (its history keeps decoding)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editSettings(cmd, func(st *settings.Settings) error {
				return st.DeleteAccount(args[0])
			})
		},
	}

	undelete := &cobra.Command{
		Use:   "undelete <name>",
		Short: "Unhide a deleted account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editSettings(cmd, func(st *settings.Settings) error {
				return st.UndeleteAccount(args[0])
			})
		},
	}

	rename := &cobra.Command{
		Use:   "rename <old> <new>",
		Short: "Rename an account, keeping its key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editSettings(cmd, func(st *settings.Settings) error {
				return st.RenameAccount(args[0], args[1])
			})
		},
	}

	cmd.AddCommand(add, del, undelete, rename)
	return cmd
}

func newConfigTypeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "type",
		Short: "Edit the type registry",
	}

	var positive bool
	add := &cobra.Command{
		Use:   "add <name>",
		Short: "Register a new type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editSettings(cmd, func(st *settings.Settings) error {
				return st.AddType(args[0], positive)
			})
		},
	}
	add.Flags().BoolVar(&positive, "positive", false, "deltas of this type add to balances")

	del := &cobra.Command{
		Use:   "delete <name>",
		Short: "Remove an expense-like type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editSettings(cmd, func(st *settings.Settings) error {
				return st.DeleteType(args[0])
			})
		},
	}

	cmd.AddCommand(add, del)
	return cmd
}

func newConfigRateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rate <currency> <rate>",
		Short: "Set the exchange rate for a currency",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rate, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("parsing rate %q: %w", args[1], err)
			}
			return editSettings(cmd, func(st *settings.Settings) error {
				if n := st.SetExchangeRate(args[0], rate); n == 0 {
					return fmt.Errorf("no accounts held in %s", args[0])
				}
				return nil
			})
		},
	}
}
