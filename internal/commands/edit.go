package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/snidget-dev/snidget/internal/codec"
	"github.com/snidget-dev/snidget/internal/model"
	"github.com/snidget-dev/snidget/internal/uid"
)

func newAddCommand() *cobra.Command {
	var (
		dateStr     string
		typeName    string
		destination string
		description string
		externalID  string
		deltas      []string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a record to the ledger",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}

			date := a.settings.Today
			if dateStr != "" {
				date, err = time.Parse(codec.DateFormat, dateStr)
				if err != nil {
					return fmt.Errorf("parsing date: %w", err)
				}
			}

			t := model.Transaction{
				Date:        date,
				Type:        typeName,
				Destination: destination,
				Description: description,
				Deltas:      make(map[string]decimal.Decimal),
				ExternalID:  externalID,
				UID:         uid.New(),
			}
			for _, pair := range deltas {
				name, amount, ok := strings.Cut(pair, "=")
				if !ok {
					return fmt.Errorf("delta %q: want account=amount", pair)
				}
				key := name
				if !a.settings.Has(key) {
					key, ok = a.settings.AccountKey(name)
					if !ok {
						return fmt.Errorf("delta %q: account %q does not exist", pair, name)
					}
				}
				value, err := decimal.NewFromString(amount)
				if err != nil {
					return fmt.Errorf("delta %q: %w", pair, err)
				}
				t.Deltas[key] = value
			}

			a.ledger.Add(t)
			if err := a.ledger.Save(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), t.UID)
			return nil
		},
	}

	cmd.Flags().StringVar(&dateStr, "date", "", "record date YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&typeName, "type", "", "record type")
	cmd.Flags().StringVar(&destination, "dest", "", "destination/location")
	cmd.Flags().StringVar(&description, "desc", "", "description")
	cmd.Flags().StringVar(&externalID, "id", "", "optional external identifier")
	cmd.Flags().StringArrayVar(&deltas, "delta", nil, "account=amount, repeatable; amounts are signed")
	_ = cmd.MarkFlagRequired("type")
	return cmd
}

func newDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <uid>[,<uid>...]",
		Short: "Delete records by uid",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			removed := 0
			for _, arg := range args {
				for _, id := range strings.Split(arg, ",") {
					removed += a.ledger.Delete(id)
				}
			}
			if removed == 0 {
				return fmt.Errorf("no records matched")
			}
			if err := a.ledger.Save(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %d record(s)\n", removed)
			return nil
		},
	}
}

func newSortCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sort",
		Short: "Sort the ledger chronologically and rewrite it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			a.ledger.Sort(true)
			return a.ledger.Save()
		},
	}
}

func newUIDCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "uid",
		Short: "Print a fresh record uid",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), uid.New())
		},
	}
}

func newPredictCommand() *cobra.Command {
	var typeName, destination string

	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Suggest destinations or descriptions from history",
		Long: "With only --type, suggests recent destinations for that type.\n" +
			"With --dest, suggests recent descriptions for that destination\n" +
			"(optionally narrowed by --type).",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}

			n := a.settings.NumberToPredict()
			var suggestions []string
			if destination != "" {
				suggestions = a.ledger.PredictDescriptions(destination, typeName, n)
			} else {
				suggestions = a.ledger.PredictDestinations(typeName, n)
			}
			for _, s := range suggestions {
				fmt.Fprintln(cmd.OutOrStdout(), s)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&typeName, "type", "", "record type to match")
	cmd.Flags().StringVar(&destination, "dest", "", "destination to suggest descriptions for")
	return cmd
}
