package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type rates map[string]decimal.Decimal

func (r rates) ExchangeRate(key string) decimal.Decimal {
	if rate, ok := r[key]; ok {
		return rate
	}
	return decimal.NewFromInt(1)
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

func TestValue(t *testing.T) {
	tx := Transaction{
		Deltas: map[string]decimal.Decimal{
			"A0": dec("10.00"),
			"A1": dec("-2.50"),
		},
	}
	assert.True(t, tx.Value(rates{}).Equal(dec("7.50")))
}

func TestValueForeignConversion(t *testing.T) {
	tx := Transaction{
		Deltas: map[string]decimal.Decimal{
			"A0": dec("10.00"),
			"A3": dec("100.00"), // USD account
		},
	}
	r := rates{"A3": dec("1.25")}
	assert.True(t, tx.Value(r).Equal(dec("135.00")))
}

func TestCompare(t *testing.T) {
	base := Transaction{
		Date:        day("2021-01-10"),
		Type:        "Food",
		Destination: "Metro",
		Description: "Groceries",
		Deltas:      map[string]decimal.Decimal{"A0": dec("-10.00")},
		UID:         "aaaaaa",
	}

	tests := []struct {
		name   string
		mutate func(*Transaction)
	}{
		{"date", func(t *Transaction) { t.Date = day("2021-01-11") }},
		{"type", func(t *Transaction) { t.Type = "School" }},
		{"destination", func(t *Transaction) { t.Destination = "Starbucks" }},
		{"description", func(t *Transaction) { t.Description = "Lunch" }},
		{"value", func(t *Transaction) { t.Deltas = map[string]decimal.Decimal{"A0": dec("-5.00")} }},
		{"external id", func(t *Transaction) { t.ExternalID = "x" }},
		{"uid", func(t *Transaction) { t.UID = "bbbbbb" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bigger := base
			tt.mutate(&bigger)
			assert.Negative(t, base.Compare(bigger, rates{}))
			assert.Positive(t, bigger.Compare(base, rates{}))
		})
	}

	assert.Zero(t, base.Compare(base, rates{}))
}

func TestCompareDateDominates(t *testing.T) {
	earlier := Transaction{Date: day("2021-01-01"), Type: "School", UID: "zzzzzz"}
	later := Transaction{Date: day("2021-01-02"), Type: "Food", UID: "aaaaaa"}
	assert.Negative(t, earlier.Compare(later, rates{}))
}
