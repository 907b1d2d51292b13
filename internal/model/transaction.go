package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// RateProvider converts a foreign account's deltas into the default currency.
// The rate is 1 for non-foreign accounts.
type RateProvider interface {
	ExchangeRate(accountKey string) decimal.Decimal
}

// Transaction is one dated money-movement record in the ledger. Deltas map
// account keys to signed amounts; accounts with no movement are simply absent.
// UID is assigned once at creation and never regenerated; ExternalID is an
// optional user-supplied identifier, empty if unset.
type Transaction struct {
	Date        time.Time
	Type        string
	Destination string
	Description string
	Deltas      map[string]decimal.Decimal
	ExternalID  string
	UID         string
}

// Value returns the transaction's total in the default currency: the sum of
// its deltas, each converted via the account's exchange rate.
func (t Transaction) Value(rates RateProvider) decimal.Decimal {
	total := decimal.Zero
	for acc, delta := range t.Deltas {
		total = total.Add(delta.Mul(rates.ExchangeRate(acc)))
	}
	return total
}

// Delta returns the amount for one account, zero if the account is untouched.
func (t Transaction) Delta(accountKey string) decimal.Decimal {
	return t.Deltas[accountKey]
}

// Compare orders transactions by (date, type, destination, description,
// value, external id, uid). This is the canonical chronological order used by
// every time-series aggregation; the uid tiebreak makes it a total order.
func (t Transaction) Compare(o Transaction, rates RateProvider) int {
	if c := t.Date.Compare(o.Date); c != 0 {
		return c
	}
	if c := strings.Compare(t.Type, o.Type); c != 0 {
		return c
	}
	if c := strings.Compare(t.Destination, o.Destination); c != 0 {
		return c
	}
	if c := strings.Compare(t.Description, o.Description); c != 0 {
		return c
	}
	if c := t.Value(rates).Cmp(o.Value(rates)); c != 0 {
		return c
	}
	if c := strings.Compare(t.ExternalID, o.ExternalID); c != 0 {
		return c
	}
	return strings.Compare(t.UID, o.UID)
}
