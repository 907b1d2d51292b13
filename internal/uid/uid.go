// Package uid generates the short unique identifiers assigned to ledger
// records. An id is the current Unix timestamp with its decimal digits
// reversed, encoded in base 62. Reversing first means consecutive timestamps
// do not produce lexicographically consecutive ids.
package uid

import (
	"strings"
	"time"
)

const alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// MinLength is the minimum id length; shorter encodings are left-padded with
// zeros. Pre-2010 databases carried 5-character ids, which the codec pads on
// load.
const MinLength = 6

// lastStamp is the most recent timestamp handed to an id. Two calls within
// the same second would otherwise collide, so New bumps forward instead.
var lastStamp int64

// New returns a fresh id for the current time.
func New() string {
	now := time.Now().Unix()
	if now <= lastStamp {
		now = lastStamp + 1
	}
	lastStamp = now
	return FromTimestamp(now)
}

// FromTimestamp encodes one timestamp as an id.
func FromTimestamp(ts int64) string {
	return pad(encodeBase62(reverseDigits(ts)))
}

// Valid reports whether s looks like a generated id: at least MinLength
// characters, all from the base-62 alphabet.
func Valid(s string) bool {
	if len(s) < MinLength {
		return false
	}
	for _, r := range s {
		if !strings.ContainsRune(alphabet, r) {
			return false
		}
	}
	return true
}

func reverseDigits(n int64) int64 {
	var rev int64
	for n > 0 {
		rev = rev*10 + n%10
		n /= 10
	}
	return rev
}

func encodeBase62(n int64) string {
	if n == 0 {
		return "0"
	}
	var b []byte
	for n > 0 {
		b = append(b, alphabet[n%62])
		n /= 62
	}
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return string(b)
}

func pad(s string) string {
	for len(s) < MinLength {
		s = "0" + s
	}
	return s
}
