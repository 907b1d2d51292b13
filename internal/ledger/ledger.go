// Package ledger implements the transaction store: loading and saving the
// pipe-delimited ledger file, record mutation, the filter engine, and the
// balance and time-series aggregations consumed by reports.
package ledger

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/snidget-dev/snidget/internal/codec"
	"github.com/snidget-dev/snidget/internal/model"
	"github.com/snidget-dev/snidget/internal/settings"
)

// Ledger is the ordered collection of all transactions, tied to one backing
// file. Visibility and running balances are derived view state held in
// slices parallel to records; they are never persisted.
type Ledger struct {
	settings *settings.Settings
	path     string
	records  []model.Transaction
	visible  []bool
	running  []map[string]decimal.Decimal
	changed  bool

	// Filters is the active filter specification. Mutate the slots, then
	// call ApplyFilters (reports do so themselves).
	Filters settings.Filters
}

// Open loads the ledger at path. A missing file is not an error: it is
// created empty. Unknown account keys inside otherwise valid lines are
// dropped and reported in the returned warnings; any other malformed line
// fails the load.
func Open(path string, st *settings.Settings) (*Ledger, []string, error) {
	l := &Ledger{settings: st, path: path, Filters: st.Filters}

	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		if err := os.WriteFile(path, nil, 0o644); err != nil {
			return nil, nil, fmt.Errorf("creating ledger file: %w", err)
		}
		return l, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("opening ledger: %w", err)
	}
	defer f.Close()

	var warnings []string
	scanner := bufio.NewScanner(f)
	for n := 1; scanner.Scan(); n++ {
		line := scanner.Text()
		if line == "" {
			continue
		}
		t, warns, err := codec.Decode(line, st)
		if err != nil {
			return nil, warnings, fmt.Errorf("line %d: %w", n, err)
		}
		for _, w := range warns {
			warnings = append(warnings, fmt.Sprintf("line %d: %s", n, w))
		}
		l.records = append(l.records, t)
	}
	if err := scanner.Err(); err != nil {
		return nil, warnings, fmt.Errorf("reading ledger: %w", err)
	}
	return l, warnings, nil
}

// Records returns the underlying record slice in storage order.
func (l *Ledger) Records() []model.Transaction { return l.records }

// Len returns the number of records.
func (l *Ledger) Len() int { return len(l.records) }

// Changed reports whether the ledger differs from its backing file.
func (l *Ledger) Changed() bool { return l.changed }

// Add appends a record and marks the ledger dirty.
func (l *Ledger) Add(t model.Transaction) {
	l.records = append(l.records, t)
	l.invalidate()
	l.changed = true
}

// Delete removes every record with the given uid (at most one, given unique
// uids) and returns how many were removed. A delete that matches nothing
// leaves the ledger clean.
func (l *Ledger) Delete(uid string) int {
	before := len(l.records)
	l.records = slices.DeleteFunc(l.records, func(t model.Transaction) bool {
		return t.UID == uid
	})
	removed := before - len(l.records)
	if removed > 0 {
		l.invalidate()
		l.changed = true
	}
	return removed
}

// Find returns the record with the given uid.
func (l *Ledger) Find(uid string) (model.Transaction, bool) {
	for _, t := range l.records {
		if t.UID == uid {
			return t, true
		}
	}
	return model.Transaction{}, false
}

// Replace swaps the record with t's uid for t and marks the ledger dirty.
func (l *Ledger) Replace(t model.Transaction) bool {
	for i := range l.records {
		if l.records[i].UID == t.UID {
			l.records[i] = t
			l.invalidate()
			l.changed = true
			return true
		}
	}
	return false
}

// Sort orders the records chronologically (the full transaction ordering).
// A non-permanent sort of a clean ledger does not mark it dirty, so sorting
// for aggregation never forces an unnecessary rewrite.
func (l *Ledger) Sort(permanent bool) {
	slices.SortFunc(l.records, func(a, b model.Transaction) int {
		return a.Compare(b, l.settings)
	})
	l.invalidate()
	if !l.changed {
		l.changed = permanent
	}
}

// Save rewrites the whole backing file, one encoded record per line. The
// write goes to a temp file in the same directory and replaces the original
// by rename.
func (l *Ledger) Save() error {
	dir := filepath.Dir(l.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(l.path)+".tmp*")
	if err != nil {
		return fmt.Errorf("creating temp ledger: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := bufio.NewWriter(tmp)
	for _, t := range l.records {
		if _, err := fmt.Fprintln(w, codec.Encode(t)); err != nil {
			tmp.Close()
			return fmt.Errorf("writing ledger: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		return fmt.Errorf("writing ledger: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp ledger: %w", err)
	}
	if err := os.Rename(tmp.Name(), l.path); err != nil {
		return fmt.Errorf("replacing ledger: %w", err)
	}
	l.changed = false
	return nil
}

// invalidate drops derived view state after any mutation of the record
// sequence.
func (l *Ledger) invalidate() {
	l.visible = nil
	l.running = nil
}
