// Package codec converts between the persisted pipe-delimited line format and
// in-memory transactions. One line per record:
//
//	date|type|destination|description|deltaList|externalId|uid
//
// where deltaList is zero or more comma-separated accountKey=amount pairs.
package codec

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/snidget-dev/snidget/internal/model"
	"github.com/snidget-dev/snidget/internal/uid"
)

// DateFormat is the on-disk date layout.
const DateFormat = "2006-01-02"

const (
	numFields = 7
	colDate   = 0
	colType   = 1
	colDest   = 2
	colDesc   = 3
	colDeltas = 4
	colExtID  = 5
	colUID    = 6
)

// AccountChecker tests whether an account key exists in the registry.
// Deleted accounts still exist for decoding purposes.
type AccountChecker interface {
	Has(key string) bool
}

// Decode parses one ledger line. Malformed field counts, dates, or amounts
// are errors. An unknown account key is not fatal: the delta is dropped and
// reported in the returned warnings, and the rest of the record survives.
func Decode(line string, accounts AccountChecker) (model.Transaction, []string, error) {
	fields := strings.Split(strings.TrimRight(line, " \t\r\n"), "|")
	if len(fields) != numFields {
		return model.Transaction{}, nil, fmt.Errorf("expected %d fields, got %d", numFields, len(fields))
	}

	date, err := time.Parse(DateFormat, fields[colDate])
	if err != nil {
		return model.Transaction{}, nil, fmt.Errorf("parsing date %q: %w", fields[colDate], err)
	}

	deltas := make(map[string]decimal.Decimal)
	var warnings []string
	if fields[colDeltas] != "" {
		for _, pair := range strings.Split(fields[colDeltas], ",") {
			key, amount, ok := strings.Cut(pair, "=")
			if !ok {
				continue
			}
			value, err := decimal.NewFromString(amount)
			if err != nil {
				return model.Transaction{}, nil, fmt.Errorf("parsing delta %q: %w", pair, err)
			}
			if !accounts.Has(key) {
				warnings = append(warnings, fmt.Sprintf("unknown account key %q, delta dropped", key))
				continue
			}
			deltas[key] = value
		}
	}

	// Pre-2010 databases carried 5-character uids.
	id := fields[colUID]
	for len(id) < uid.MinLength {
		id = "0" + id
	}

	return model.Transaction{
		Date:        date,
		Type:        fields[colType],
		Destination: fields[colDest],
		Description: fields[colDesc],
		Deltas:      deltas,
		ExternalID:  fields[colExtID],
		UID:         id,
	}, warnings, nil
}

// Encode writes a transaction in the persisted line format. Only nonzero
// deltas are emitted, in account-key order, formatted to 2 decimal places.
func Encode(t model.Transaction) string {
	keys := make([]string, 0, len(t.Deltas))
	for key, delta := range t.Deltas {
		if !delta.IsZero() {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	pairs := make([]string, len(keys))
	for i, key := range keys {
		pairs[i] = fmt.Sprintf("%s=%s", key, t.Deltas[key].StringFixed(2))
	}

	return strings.Join([]string{
		t.Date.Format(DateFormat),
		t.Type,
		t.Destination,
		t.Description,
		strings.Join(pairs, ","),
		t.ExternalID,
		t.UID,
	}, "|")
}
