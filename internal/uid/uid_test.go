package uid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromTimestamp(t *testing.T) {
	tests := []struct {
		ts   int64
		want string
	}{
		// 2021-01-01T00:00:00Z: "1609459200" reversed is 29549061.
		{1609459200, "01zz3l"},
		{0, "000000"},
		{1, "000001"},
		// "10" reversed is 01, i.e. 1.
		{10, "000001"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FromTimestamp(tt.ts), "FromTimestamp(%d)", tt.ts)
	}
}

func TestNewFormat(t *testing.T) {
	id := New()
	require.GreaterOrEqual(t, len(id), MinLength)
	assert.True(t, Valid(id), "id %q should be valid base-62", id)
}

func TestNewNoSameSecondCollision(t *testing.T) {
	a := New()
	b := New()
	c := New()
	assert.NotEqual(t, a, b)
	assert.NotEqual(t, b, c)
	assert.NotEqual(t, a, c)
}

func TestNotLexicographicallyMonotonic(t *testing.T) {
	// Reversing the timestamp digits first means consecutive seconds do not
	// produce consecutive ids.
	a := FromTimestamp(1609459200)
	b := FromTimestamp(1609459201)
	assert.NotEqual(t, a, b)
	// 1609459201 reversed is 1029549061, far from 29549061.
	assert.NotEqual(t, "01zz3l", b)
}

func TestValid(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{"01zz3l", true},
		{"AAAAAA", true},
		{"0000001", true},
		{"short", false},
		{"has-dash", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Valid(tt.id), "Valid(%q)", tt.id)
	}
}
