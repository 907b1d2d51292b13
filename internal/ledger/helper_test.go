package ledger

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/snidget-dev/snidget/internal/model"
	"github.com/snidget-dev/snidget/internal/settings"
)

// testSettings pins Today to 2021-01-20 and clears the default filters so
// each test opts into exactly the dimensions it exercises.
func testSettings() *settings.Settings {
	s := settings.Default()
	s.Today = day("2021-01-20")
	s.Filters = settings.Filters{}
	return s
}

func testLedger(s *settings.Settings, records ...model.Transaction) *Ledger {
	l := &Ledger{settings: s, Filters: s.Filters}
	l.records = append(l.records, records...)
	return l
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

var uidSeq int

// tx builds a record with one Bank (A0) delta and a generated test uid.
func tx(date, typeName, dest, desc, amount string) model.Transaction {
	uidSeq++
	return model.Transaction{
		Date:        day(date),
		Type:        typeName,
		Destination: dest,
		Description: desc,
		Deltas:      map[string]decimal.Decimal{"A0": dec(amount)},
		UID:         fmt.Sprintf("T%05d", uidSeq),
	}
}
