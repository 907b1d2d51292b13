package ledger

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/snidget-dev/snidget/internal/codec"
	"github.com/snidget-dev/snidget/internal/model"
	"github.com/snidget-dev/snidget/internal/settings"
)

// ApplyFilters resets every record to visible and applies each configured
// filter dimension in fixed order: date, account, type, recipient, substring,
// value range, uid exclusion. Each dimension only narrows visibility.
// Applying the same specification twice yields the same assignment.
//
// The returned error is advisory: bad filter values (an unknown account
// name, an unparseable date) are reported and that dimension is skipped,
// while everything else still applies.
func (l *Ledger) ApplyFilters() error {
	l.visible = make([]bool, len(l.records))
	for i := range l.visible {
		l.visible[i] = true
	}

	var errs []error
	report := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}

	if l.Filters.Dates != "" {
		report(l.filterDates(l.Filters.Dates))
	}
	if l.Filters.Accounts != "" {
		report(l.filterAccounts(l.Filters.Accounts))
	}
	if l.Filters.Columns != "" {
		report(l.checkColumns(l.Filters.Columns))
	}
	if l.Filters.Types != "" {
		l.filterTypes(l.Filters.Types)
	}
	if l.Filters.Recipients != "" {
		l.filterRecipients(l.Filters.Recipients)
	}
	if l.Filters.Substring != "" {
		l.filterSubstring(l.Filters.Substring)
	}
	if l.Filters.Values != "" {
		report(l.filterValues(l.Filters.Values))
	}
	if l.Filters.UIDs != "" {
		l.filterUIDs(l.Filters.UIDs)
	}
	return errors.Join(errs...)
}

// Visible reports whether record i passed the last ApplyFilters. Records are
// visible until filters have been applied.
func (l *Ledger) Visible(i int) bool {
	if l.visible == nil {
		return true
	}
	return l.visible[i]
}

// VisibleRecords returns the records that passed the last ApplyFilters, in
// storage order.
func (l *Ledger) VisibleRecords() []model.Transaction {
	var out []model.Transaction
	for i, t := range l.records {
		if l.Visible(i) {
			out = append(out, t)
		}
	}
	return out
}

// narrow hides currently-visible records according to match: with keep true,
// matching records stay and the rest are hidden; with keep false the match
// is inverted. Records already hidden are never re-included.
func (l *Ledger) narrow(keep bool, match func(model.Transaction) bool) {
	for i, t := range l.records {
		if !l.visible[i] {
			continue
		}
		if match(t) {
			l.visible[i] = keep
		} else {
			l.visible[i] = !keep
		}
	}
}

// filterDates handles both forms of the dates slot: "W<n>" keeps the
// trailing n weeks up to today, and "start[,end]" keeps [start, end) with
// end defaulting to tomorrow.
func (l *Ledger) filterDates(spec string) error {
	if rest, ok := strings.CutPrefix(spec, "W"); ok {
		weeks, err := strconv.Atoi(rest)
		if err != nil {
			return fmt.Errorf("date filter %q: bad week count: %w", spec, err)
		}
		today := l.settings.Today
		cutoff := today.Add(-time.Duration(weeks) * settings.OneWeek)
		for i, t := range l.records {
			if !l.visible[i] {
				continue
			}
			if !t.Date.After(cutoff) || t.Date.After(today) {
				l.visible[i] = false
			}
		}
		return nil
	}

	first, second, hasEnd := strings.Cut(spec, ",")
	start, err := time.Parse(codec.DateFormat, first)
	if err != nil {
		return fmt.Errorf("date filter %q: %w", spec, err)
	}
	end := l.settings.Today.AddDate(0, 0, 1)
	if hasEnd {
		end, err = time.Parse(codec.DateFormat, second)
		if err != nil {
			return fmt.Errorf("date filter %q: %w", spec, err)
		}
	}
	l.narrow(true, func(t model.Transaction) bool {
		return !t.Date.Before(start) && t.Date.Before(end)
	})
	return nil
}

// filterAccounts requires a nonzero delta for every named account: each
// comma-separated name is an independent narrowing pass, so multiple names
// are AND semantics, not OR. An unresolvable name is reported and skipped.
func (l *Ledger) filterAccounts(spec string) error {
	var errs []error
	for _, name := range strings.Split(spec, ",") {
		key, ok := l.settings.AccountKey(name)
		if !ok {
			errs = append(errs, fmt.Errorf("account %q does not exist", name))
			continue
		}
		l.narrow(true, func(t model.Transaction) bool {
			return !t.Delta(key).IsZero()
		})
	}
	return errors.Join(errs...)
}

// filterTypes keeps records whose type is in the comma-separated list; a
// leading not-character inverts to "everything except these types".
func (l *Ledger) filterTypes(spec string) {
	keep := true
	if rest, ok := strings.CutPrefix(spec, l.settings.NotCharacter()); ok {
		keep = false
		spec = rest
	}
	types := strings.Split(spec, ",")
	l.narrow(keep, func(t model.Transaction) bool {
		return slices.Contains(types, t.Type)
	})
}

func (l *Ledger) filterRecipients(spec string) {
	recipients := strings.Split(spec, ",")
	l.narrow(true, func(t model.Transaction) bool {
		return slices.Contains(recipients, t.Destination)
	})
}

// filterSubstring keeps records whose description or destination contains
// the needle (case-sensitive); a leading not-character inverts the match.
func (l *Ledger) filterSubstring(spec string) {
	keep := true
	if rest, ok := strings.CutPrefix(spec, l.settings.NotCharacter()); ok {
		keep = false
		spec = rest
	}
	l.narrow(keep, func(t model.Transaction) bool {
		return strings.Contains(t.Description, spec) || strings.Contains(t.Destination, spec)
	})
}

// filterValues parses "min[,max]" (either side may be empty) and keeps
// records whose total value lies in [min, max]. Inverted bounds are swapped.
func (l *Ledger) filterValues(spec string) error {
	first, second, _ := strings.Cut(spec, ",")
	parse := func(s string) (*decimal.Decimal, error) {
		if s == "" {
			return nil, nil
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return nil, fmt.Errorf("value filter %q: %w", spec, err)
		}
		return &d, nil
	}
	min, err := parse(first)
	if err != nil {
		return err
	}
	max, err := parse(second)
	if err != nil {
		return err
	}
	if min == nil && max == nil {
		return nil
	}
	if min != nil && max != nil && max.LessThan(*min) {
		min, max = max, min
	}
	l.narrow(true, func(t model.Transaction) bool {
		v := t.Value(l.settings)
		if min != nil && v.LessThan(*min) {
			return false
		}
		if max != nil && v.GreaterThan(*max) {
			return false
		}
		return true
	})
	return nil
}

// filterUIDs force-hides the listed uids regardless of other filters.
func (l *Ledger) filterUIDs(spec string) {
	uids := strings.Split(spec, ",")
	for i, t := range l.records {
		if l.visible[i] && slices.Contains(uids, t.UID) {
			l.visible[i] = false
		}
	}
}

// checkColumns validates the columns slot. The slot never narrows visibility,
// but entries that resolve to no account are reported like a bad account
// filter so a typo does not silently blank a column.
func (l *Ledger) checkColumns(spec string) error {
	switch spec {
	case "All", "all", "None", "none":
		return nil
	}
	var errs []error
	for _, name := range strings.Split(spec, ",") {
		if _, ok := l.settings.AccountKey(name); !ok {
			errs = append(errs, fmt.Errorf("account %q does not exist", name))
		}
	}
	return errors.Join(errs...)
}

// IsPrintable reports whether an account column passes the columns slot.
// The slot is not a visibility filter: it only gates which account columns
// reports render. It accepts either a display name or an account key.
func (l *Ledger) IsPrintable(nameOrKey string) bool {
	spec := l.Filters.Columns
	switch spec {
	case "", "All", "all":
		return true
	case "None", "none":
		return false
	}
	allowed := strings.Split(spec, ",")
	if slices.Contains(l.settings.AccountNames(), nameOrKey) {
		return slices.Contains(allowed, nameOrKey)
	}
	if slices.Contains(l.settings.AccountKeys(), nameOrKey) {
		for _, name := range allowed {
			if key, ok := l.settings.AccountKey(name); ok && key == nameOrKey {
				return true
			}
		}
	}
	return false
}
