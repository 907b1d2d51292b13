package ledger

import (
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/snidget-dev/snidget/internal/model"
	"github.com/snidget-dev/snidget/internal/settings"
)

// SumKey is the synthetic entry carrying a balance set's total in the
// default currency. Foreign-account contributions are converted through
// their exchange rate before summing.
const SumKey = "sum"

// BalanceSet maps account keys (plus SumKey) to amounts.
type BalanceSet map[string]decimal.Decimal

// BalanceReport is the result of one Balances pass: cumulative totals over
// all records, over currently-visible records, and over visible records
// dated within the trailing week. Deleted accounts are excluded throughout.
type BalanceReport struct {
	All      BalanceSet
	Visible  BalanceSet
	ThisWeek BalanceSet
}

// Balances computes all three balance sets in one pass, recording each
// record's running per-account balance as it goes. The returned error is the
// advisory output of ApplyFilters.
func (l *Ledger) Balances() (BalanceReport, error) {
	ferr := l.ApplyFilters()

	all := make(BalanceSet)
	visible := make(BalanceSet)
	thisWeek := make(BalanceSet)
	for _, key := range l.settings.AccountKeys() {
		if !l.settings.IsDeleted(key) {
			all[key] = decimal.Zero
			visible[key] = decimal.Zero
			thisWeek[key] = decimal.Zero
		}
	}

	weekAgo := l.settings.Today.Add(-settings.OneWeek)
	l.running = make([]map[string]decimal.Decimal, len(l.records))
	for i, t := range l.records {
		l.running[i] = make(map[string]decimal.Decimal, len(t.Deltas))
		for acc, delta := range t.Deltas {
			if l.settings.IsDeleted(acc) {
				continue
			}
			all[acc] = all[acc].Add(delta)
			l.running[i][acc] = all[acc]
		}
		if !l.Visible(i) {
			continue
		}
		for acc, delta := range t.Deltas {
			if l.settings.IsDeleted(acc) {
				continue
			}
			if t.Date.After(weekAgo) {
				thisWeek[acc] = thisWeek[acc].Add(delta)
			}
			visible[acc] = visible[acc].Add(delta)
		}
	}

	for _, set := range []BalanceSet{all, visible, thisWeek} {
		sum := decimal.Zero
		for acc, value := range set {
			sum = sum.Add(value.Mul(l.settings.ExchangeRate(acc)))
		}
		set[SumKey] = sum
	}

	return BalanceReport{All: all, Visible: visible, ThisWeek: thisWeek}, ferr
}

// RunningBalance returns record i's per-account balance snapshot from the
// last Balances pass; only accounts the record touches are present.
func (l *Ledger) RunningBalance(i int) map[string]decimal.Decimal {
	if l.running == nil {
		return nil
	}
	return l.running[i]
}

// Rollup is one row of a categorical balance breakdown.
type Rollup struct {
	Name   string
	Amount decimal.Decimal
}

// Formatted returns the rollup amount as a 2-decimal string.
func (r Rollup) Formatted() string { return r.Amount.StringFixed(2) }

// BalancesByType accumulates the value of visible records by type, largest
// first.
func (l *Ledger) BalancesByType() ([]Rollup, error) {
	return l.rollup(func(t model.Transaction) string { return t.Type })
}

// BalancesByRecipient accumulates the value of visible records by
// destination, largest first.
func (l *Ledger) BalancesByRecipient() ([]Rollup, error) {
	return l.rollup(func(t model.Transaction) string { return t.Destination })
}

func (l *Ledger) rollup(key func(model.Transaction) string) ([]Rollup, error) {
	ferr := l.ApplyFilters()

	totals := make(map[string]decimal.Decimal)
	for i, t := range l.records {
		if !l.Visible(i) {
			continue
		}
		totals[key(t)] = totals[key(t)].Add(t.Value(l.settings))
	}

	rollups := make([]Rollup, 0, len(totals))
	for name, amount := range totals {
		rollups = append(rollups, Rollup{Name: name, Amount: amount})
	}
	// Descending by (value, name), i.e. the reversed natural tuple order.
	slices.SortFunc(rollups, func(a, b Rollup) int {
		if c := b.Amount.Cmp(a.Amount); c != 0 {
			return c
		}
		return strings.Compare(b.Name, a.Name)
	})
	return rollups, ferr
}
