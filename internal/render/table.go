// Package render turns the ledger engine's query output into the text table
// and CSV forms the CLI prints.
package render

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/snidget-dev/snidget/internal/codec"
	"github.com/snidget-dev/snidget/internal/ledger"
	"github.com/snidget-dev/snidget/internal/model"
	"github.com/snidget-dev/snidget/internal/settings"
)

// Options controls the table renderer.
type Options struct {
	// TotalValue prints one VALUE column in the default currency instead of
	// a column per account.
	TotalValue bool
	// RunningBalances adds a balance column after each account column.
	RunningBalances bool
	// MaxPrint caps output to the last n visible rows; zero or less prints
	// everything.
	MaxPrint int
	// CSV switches from the aligned table to CSV rows.
	CSV bool
}

// Table writes the visible records plus a totals footer. Balances are
// computed first so running-balance snapshots are fresh; the advisory filter
// error, if any, is returned after the table is written.
func Table(w io.Writer, l *ledger.Ledger, st *settings.Settings, opts Options) error {
	balances, ferr := l.Balances()

	var rows []int // indices of the rows to print
	for i := 0; i < l.Len(); i++ {
		if l.Visible(i) {
			rows = append(rows, i)
		}
	}
	allVisible := len(rows)
	if opts.MaxPrint > 0 && len(rows) > opts.MaxPrint {
		rows = rows[len(rows)-opts.MaxPrint:]
	}

	cols := printableColumns(l, st)
	records := l.Records()

	printID := false
	wType, wDest, wDesc := 4, 8, 11
	for _, i := range rows {
		t := records[i]
		wType = max(wType, len(t.Type))
		wDest = max(wDest, len(t.Destination))
		wDesc = max(wDesc, len(t.Description))
		if t.ExternalID != "" {
			printID = true
		}
	}

	if opts.CSV {
		err := writeCSV(w, l, st, records, rows, cols, opts, printID)
		if err != nil {
			return err
		}
		return ferr
	}

	lineFormat := fmt.Sprintf("%%-10s  %%-%ds  %%-%ds  %%-%ds  ", wType, wDest, wDesc)
	header := fmt.Sprintf(lineFormat, "DATE", "TYPE", "LOCATION", "DESCRIPTION")
	divider := fmt.Sprintf("%s  %s  %s  %s  ",
		strings.Repeat("-", 10), strings.Repeat("-", wType),
		strings.Repeat("-", wDest), strings.Repeat("-", wDesc))

	if opts.TotalValue {
		header += "  VALUE   "
		divider += "-------   "
	} else {
		for _, key := range cols {
			name, _ := st.AccountName(key)
			if len(name) > 7 {
				name = name[:7]
			}
			header += fmt.Sprintf("%7s   ", name)
			divider += "-------   "
			if opts.RunningBalances {
				header += "Balance  "
				divider += "-------  "
			}
		}
	}
	if printID {
		header += "    ID  "
		divider += "------  "
	}
	header += "   UID"
	divider += "------"
	fmt.Fprintln(w, header)
	fmt.Fprintln(w, divider)

	for n, i := range rows {
		t := records[i]
		line := fmt.Sprintf(lineFormat, t.Date.Format(codec.DateFormat), t.Type, t.Destination, t.Description)
		if opts.TotalValue {
			line += fmt.Sprintf("%9.2f ", t.Value(st).InexactFloat64())
		} else {
			for _, key := range cols {
				line += fmt.Sprintf("%9.2f ", t.Delta(key).InexactFloat64())
				if opts.RunningBalances {
					if bal, ok := l.RunningBalance(i)[key]; ok {
						line += fmt.Sprintf("%9.2f ", bal.InexactFloat64())
					} else {
						line += strings.Repeat(" ", 10)
					}
				}
			}
		}
		if printID {
			line += fmt.Sprintf("%8s", t.ExternalID)
		}
		line += fmt.Sprintf("  %6s", t.UID)
		fmt.Fprintln(w, line)
		if (n+1)%5 == 0 {
			fmt.Fprintln(w)
		}
	}
	fmt.Fprintln(w, divider)

	writeSummary(w, l, st, balances, cols, opts, allVisible)
	return ferr
}

// printableColumns returns the non-deleted account keys allowed by the
// columns filter slot, in registry order.
func printableColumns(l *ledger.Ledger, st *settings.Settings) []string {
	var cols []string
	for _, key := range st.AccountKeys() {
		if !st.IsDeleted(key) && l.IsPrintable(key) {
			cols = append(cols, key)
		}
	}
	return cols
}

func writeSummary(w io.Writer, l *ledger.Ledger, st *settings.Settings, balances ledger.BalanceReport, cols []string, opts Options, visibleCount int) {
	writeTotals := func(label string, set ledger.BalanceSet) {
		line := fmt.Sprintf("%16s  ", label)
		if opts.TotalValue {
			line += fmt.Sprintf("%9.2f ", set[ledger.SumKey].InexactFloat64())
		} else {
			for _, key := range cols {
				line += fmt.Sprintf("%9.2f ", set[key].InexactFloat64())
			}
		}
		fmt.Fprintln(w, line)
	}
	writeTotals("Total visible:", balances.Visible)
	writeTotals("Total balance:", balances.All)

	fmt.Fprintf(w, "    Visible:    %9.2f   (%d records)\n",
		balances.Visible[ledger.SumKey].InexactFloat64(), visibleCount)
	fmt.Fprintf(w, "    Balance:    %9.2f\n", balances.All[ledger.SumKey].InexactFloat64())
	if st.Allowance > 0 {
		weekly := balances.ThisWeek[ledger.SumKey]
		remaining := decimal.NewFromFloat(st.Allowance).Add(weekly)
		fmt.Fprintf(w, "    This Week:  %9.2f\n", weekly.InexactFloat64())
		fmt.Fprintf(w, "    Remaining:  %9.2f\n", remaining.InexactFloat64())
	}
}

func writeCSV(w io.Writer, l *ledger.Ledger, st *settings.Settings, records []model.Transaction, rows []int, cols []string, opts Options, printID bool) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{"DATE", "TYPE", "LOCATION", "DESCRIPTION"}
	if opts.TotalValue {
		header = append(header, "VALUE")
	} else {
		for _, key := range cols {
			name, _ := st.AccountName(key)
			header = append(header, name)
		}
	}
	if printID {
		header = append(header, "ID")
	}
	header = append(header, "UID")
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, i := range rows {
		t := records[i]
		row := []string{t.Date.Format(codec.DateFormat), t.Type, t.Destination, t.Description}
		if opts.TotalValue {
			row = append(row, t.Value(st).StringFixed(2))
		} else {
			for _, key := range cols {
				row = append(row, t.Delta(key).StringFixed(2))
			}
		}
		if printID {
			row = append(row, t.ExternalID)
		}
		row = append(row, t.UID)
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row %d: %w", i, err)
		}
	}
	return cw.Error()
}
