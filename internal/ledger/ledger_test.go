package ledger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenMissingFileCreatesEmptyLedger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expenses.txt")
	l, warnings, err := Open(path, testSettings())
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Zero(t, l.Len())
	assert.False(t, l.Changed())

	_, err = os.Stat(path)
	assert.NoError(t, err, "backing file should have been created")
}

func TestOpenReadsRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expenses.txt")
	content := "2021-01-01|Income|Work|Pay|A0=1000.00||aaaaa1\n" +
		"2021-01-02|Food|Metro|Groceries|A0=-50.00||aaaaa2\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	l, warnings, err := Open(path, testSettings())
	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Equal(t, 2, l.Len())
	assert.Equal(t, "aaaaa1", l.Records()[0].UID)
	assert.False(t, l.Changed(), "a freshly loaded ledger is clean")
}

func TestOpenReportsUnknownAccountWithLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expenses.txt")
	content := "2021-01-01|Income|Work|Pay|A0=1000.00||aaaaa1\n" +
		"2021-01-02|Food|Metro|Groceries|Z9=-50.00||aaaaa2\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	l, warnings, err := Open(path, testSettings())
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "line 2")
	assert.Equal(t, 2, l.Len(), "the record survives without the bad delta")
	assert.Empty(t, l.Records()[1].Deltas)
}

func TestOpenFailsOnMalformedLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expenses.txt")
	require.NoError(t, os.WriteFile(path, []byte("not a record\n"), 0o644))

	_, _, err := Open(path, testSettings())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 1")
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expenses.txt")
	st := testSettings()
	l, _, err := Open(path, st)
	require.NoError(t, err)

	l.Add(tx("2021-01-05", "Food", "Metro", "Groceries", "-12.34"))
	l.Add(tx("2021-01-06", "Income", "Work", "Pay", "500.00"))
	assert.True(t, l.Changed())
	require.NoError(t, l.Save())
	assert.False(t, l.Changed())

	reloaded, warnings, err := Open(path, st)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Equal(t, 2, reloaded.Len())
	assert.Equal(t, l.Records()[0].UID, reloaded.Records()[0].UID)
	assert.True(t, reloaded.Records()[0].Deltas["A0"].Equal(dec("-12.34")))
}

func TestDelete(t *testing.T) {
	st := testSettings()
	a := tx("2021-01-05", "Food", "Metro", "Groceries", "-12.34")
	b := tx("2021-01-06", "Income", "Work", "Pay", "500.00")
	l := testLedger(st, a, b)

	assert.Equal(t, 1, l.Delete(a.UID))
	assert.Equal(t, 0, l.Delete("nosuch"))
	require.Equal(t, 1, l.Len())
	assert.Equal(t, b.UID, l.Records()[0].UID)
	assert.True(t, l.Changed())
}

func TestDeleteNoMatchStaysClean(t *testing.T) {
	st := testSettings()
	l := testLedger(st, tx("2021-01-05", "Food", "Metro", "Groceries", "-12.34"))

	assert.Equal(t, 0, l.Delete("nosuch"))
	assert.False(t, l.Changed(), "a delete that matches nothing must not dirty the ledger")
}

func TestFindAndReplace(t *testing.T) {
	st := testSettings()
	a := tx("2021-01-05", "Food", "Metro", "Groceries", "-12.34")
	l := testLedger(st, a)

	got, ok := l.Find(a.UID)
	require.True(t, ok)
	assert.Equal(t, "Groceries", got.Description)

	got.Description = "Snacks"
	assert.True(t, l.Replace(got))
	updated, _ := l.Find(a.UID)
	assert.Equal(t, "Snacks", updated.Description)
	assert.True(t, l.Changed())

	missing := a
	missing.UID = "zzzzzz"
	assert.False(t, l.Replace(missing))
}

func TestSortOrder(t *testing.T) {
	st := testSettings()
	l := testLedger(st,
		tx("2021-01-10", "Food", "Metro", "Groceries", "-10.00"),
		tx("2021-01-01", "Income", "Work", "Pay", "100.00"),
		tx("2021-01-05", "Bill", "Hydro", "Power", "-40.00"),
		tx("2021-01-05", "Adjustment", "", "", "1.00"),
	)
	l.Sort(false)

	records := l.Records()
	for i := 0; i+1 < len(records); i++ {
		assert.LessOrEqual(t, records[i].Compare(records[i+1], st), 0,
			"records %d and %d out of order", i, i+1)
	}

	// Sorting again is a no-op on the sequence.
	before := append([]string(nil), uids(l)...)
	l.Sort(false)
	assert.Equal(t, before, uids(l))
}

func TestSortDirtyFlag(t *testing.T) {
	st := testSettings()
	l := testLedger(st,
		tx("2021-01-10", "Food", "Metro", "Groceries", "-10.00"),
		tx("2021-01-01", "Income", "Work", "Pay", "100.00"),
	)

	l.Sort(false)
	assert.False(t, l.Changed(), "non-permanent sort of a clean ledger stays clean")

	l.Sort(true)
	assert.True(t, l.Changed())
}

func uids(l *Ledger) []string {
	out := make([]string, l.Len())
	for i, t := range l.Records() {
		out[i] = t.UID
	}
	return out
}
