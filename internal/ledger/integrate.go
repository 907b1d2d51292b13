package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// DailyBalances is one row of IntegrateDeltas: the cumulative per-account
// balances and running total at the end of one calendar day.
type DailyBalances struct {
	Date     time.Time
	Accounts map[string]decimal.Decimal
	Total    decimal.Decimal
}

// WindowPoint is one point of Integrate: the sum of values over the trailing
// window ending on Date.
type WindowPoint struct {
	Date time.Time
	Sum  decimal.Decimal
}

// IntegrateDeltas walks the records in chronological order and emits one row
// per calendar day from the first processed record to the last, accumulating
// per-account balances and the running total. Days with no records carry the
// previous balances forward unchanged.
func (l *Ledger) IntegrateDeltas(visibleOnly bool) ([]DailyBalances, error) {
	// Sort first: it drops derived visibility state, so filters must be
	// applied after, against the sorted order.
	l.Sort(false)
	ferr := l.ApplyFilters()

	balances := make(map[string]decimal.Decimal)
	for _, key := range l.settings.AccountKeys() {
		balances[key] = decimal.Zero
	}
	total := decimal.Zero

	var rows []DailyBalances
	var current time.Time
	started := false
	for i, t := range l.records {
		if visibleOnly && !l.Visible(i) {
			continue
		}
		if !started {
			current = t.Date
			started = true
		}
		for !t.Date.Equal(current) {
			rows = append(rows, snapshotDay(current, balances, total))
			current = current.AddDate(0, 0, 1)
		}
		for acc, delta := range t.Deltas {
			balances[acc] = balances[acc].Add(delta)
		}
		total = total.Add(t.Value(l.settings))
	}
	if started {
		rows = append(rows, snapshotDay(current, balances, total))
	}
	return rows, ferr
}

func snapshotDay(day time.Time, balances map[string]decimal.Decimal, total decimal.Decimal) DailyBalances {
	snapshot := make(map[string]decimal.Decimal, len(balances))
	for acc, value := range balances {
		snapshot[acc] = value
	}
	return DailyBalances{Date: day, Accounts: snapshot, Total: total}
}

// Integrate sums transaction values over a trailing window of windowDays
// calendar days, emitting one point per day once the first full window has
// elapsed, or only every windowDays-th point when independent is true
// (non-overlapping windows). Trailing data short of one full window after
// the last emitted point is dropped; that boundary behavior is long-standing
// and callers depend on it.
func (l *Ledger) Integrate(windowDays int, visibleOnly, independent bool) ([]WindowPoint, error) {
	// Sort first: it drops derived visibility state, so filters must be
	// applied after, against the sorted order.
	l.Sort(false)
	ferr := l.ApplyFilters()

	n := windowDays
	window := make([]decimal.Decimal, n)
	slot := 0
	days := 0
	started := false
	var current time.Time

	emit := func() bool {
		return !independent || days%n == n-1
	}
	sum := func() decimal.Decimal {
		total := decimal.Zero
		for _, v := range window {
			total = total.Add(v)
		}
		return total
	}

	var points []WindowPoint
	for i, t := range l.records {
		if visibleOnly && !l.Visible(i) {
			continue
		}
		if !started {
			current = t.Date
			started = true
		}
		if t.Date.Equal(current) {
			window[slot] = window[slot].Add(t.Value(l.settings))
			continue
		}
		for !t.Date.Equal(current) {
			if days >= n-1 && emit() {
				points = append(points, WindowPoint{Date: current, Sum: sum()})
			}
			slot = (slot + 1) % n
			current = current.AddDate(0, 0, 1)
			if !current.Equal(t.Date) {
				window[slot] = decimal.Zero
			}
			days++
		}
		window[slot] = t.Value(l.settings)
	}
	if days >= n && emit() {
		points = append(points, WindowPoint{Date: current, Sum: sum()})
	}
	return points, ferr
}
