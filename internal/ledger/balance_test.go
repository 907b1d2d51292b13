package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snidget-dev/snidget/internal/model"
)

func TestBalancesReport(t *testing.T) {
	income := tx("2021-01-01", "Income", "Work", "Pay", "1000.00")
	bill := tx("2021-01-10", "Bill", "Hydro", "Power", "-40.00")
	edge := tx("2021-01-13", "Food", "Metro", "Groceries", "-10.00")
	recent := tx("2021-01-15", "Food", "Metro", "Groceries", "-50.00")
	l := testLedger(testSettings(), income, bill, edge, recent) // Today is 2021-01-20
	l.Filters.Types = "#Bill"

	report, err := l.Balances()
	require.NoError(t, err)

	assert.True(t, report.All["A0"].Equal(dec("900.00")))
	assert.True(t, report.Visible["A0"].Equal(dec("940.00")), "hidden bill excluded")
	assert.True(t, report.ThisWeek["A0"].Equal(dec("-50.00")),
		"only records strictly newer than a week ago count")
}

func TestBalancesSumConserved(t *testing.T) {
	a := tx("2021-01-01", "Income", "Work", "Pay", "1000.00")
	transfer := model.Transaction{
		Date: day("2021-01-05"), Type: "Transfer", Destination: "Credit",
		Deltas: map[string]decimal.Decimal{"A0": dec("-200.00"), "A1": dec("200.00")},
		UID:    "trans1",
	}
	c := tx("2021-01-10", "Food", "Metro", "Groceries", "-33.33")
	st := testSettings()
	l := testLedger(st, a, transfer, c)

	report, err := l.Balances()
	require.NoError(t, err)

	want := decimal.Zero
	for _, rec := range l.Records() {
		want = want.Add(rec.Value(st))
	}
	assert.True(t, report.All[SumKey].Equal(want))
	assert.True(t, report.All[SumKey].Equal(dec("966.67")))
}

func TestBalancesSumConvertsForeignAccounts(t *testing.T) {
	st := testSettings()
	key, err := st.AddForeignAccount("US Checking", "USD", 1.25)
	require.NoError(t, err)

	usd := model.Transaction{
		Date: day("2021-01-05"), Type: "Income", Destination: "Work",
		Deltas: map[string]decimal.Decimal{key: dec("100.00")},
		UID:    "usdpay",
	}
	l := testLedger(st, usd)

	report, rerr := l.Balances()
	require.NoError(t, rerr)
	assert.True(t, report.All[key].Equal(dec("100.00")), "per-account stays in native currency")
	assert.True(t, report.All[SumKey].Equal(dec("125.00")), "sum is in the default currency")
}

func TestBalancesSkipDeletedAccounts(t *testing.T) {
	st := testSettings()
	require.NoError(t, st.DeleteAccount("Cash"))

	cash := model.Transaction{
		Date: day("2021-01-05"), Type: "Food", Destination: "Metro",
		Deltas: map[string]decimal.Decimal{"A2": dec("-20.00")},
		UID:    "cashtx",
	}
	l := testLedger(st, tx("2021-01-01", "Income", "Work", "Pay", "100.00"), cash)

	report, err := l.Balances()
	require.NoError(t, err)
	_, ok := report.All["A2"]
	assert.False(t, ok)
	assert.True(t, report.All[SumKey].Equal(dec("100.00")))
}

func TestRunningBalances(t *testing.T) {
	a := tx("2021-01-01", "Income", "Work", "Pay", "100.00")
	b := tx("2021-01-05", "Food", "Metro", "Groceries", "-30.00")
	l := testLedger(testSettings(), a, b)

	assert.Nil(t, l.RunningBalance(0), "no snapshots before a balance pass")

	_, err := l.Balances()
	require.NoError(t, err)
	assert.True(t, l.RunningBalance(0)["A0"].Equal(dec("100.00")))
	assert.True(t, l.RunningBalance(1)["A0"].Equal(dec("70.00")))
}

func TestRollupOrdering(t *testing.T) {
	l := testLedger(testSettings(),
		tx("2021-01-01", "Income", "Alpha", "", "30.00"),
		tx("2021-01-02", "Income", "Beta", "", "20.00"),
		tx("2021-01-03", "Income", "Beta", "", "30.00"),
		tx("2021-01-04", "Income", "Gamma", "", "30.00"),
	)

	rollups, err := l.BalancesByRecipient()
	require.NoError(t, err)
	require.Len(t, rollups, 3)

	// Largest amount first; equal amounts fall back to reverse name order.
	assert.Equal(t, "Beta", rollups[0].Name)
	assert.Equal(t, "50.00", rollups[0].Formatted())
	assert.Equal(t, "Gamma", rollups[1].Name)
	assert.Equal(t, "Alpha", rollups[2].Name)
}

func TestRollupByTypeHonorsFilters(t *testing.T) {
	l := testLedger(testSettings(),
		tx("2021-01-01", "Food", "Metro", "Groceries", "-10.00"),
		tx("2021-01-02", "Food", "Metro", "Groceries", "-15.00"),
		tx("2021-01-03", "Bill", "Hydro", "Power", "-40.00"),
	)
	l.Filters.Types = "Food"

	rollups, err := l.BalancesByType()
	require.NoError(t, err)
	require.Len(t, rollups, 1)
	assert.Equal(t, "Food", rollups[0].Name)
	assert.Equal(t, "-25.00", rollups[0].Formatted())
}
