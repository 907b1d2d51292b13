package ledger

import "slices"

// Entry prediction scans history in reverse storage order, so the most
// recently recorded match is suggested first. Both functions return fewer
// than n items when history runs out; that is not an error.

// PredictDestinations returns up to n distinct destinations among records of
// the given type, most recent first.
func (l *Ledger) PredictDestinations(transactionType string, n int) []string {
	var out []string
	for i := len(l.records) - 1; i >= 0 && len(out) < n; i-- {
		t := l.records[i]
		if t.Type != transactionType {
			continue
		}
		if !slices.Contains(out, t.Destination) {
			out = append(out, t.Destination)
		}
	}
	return out
}

// PredictDescriptions returns up to n distinct descriptions among records
// with the given destination, most recent first. A non-empty type narrows
// the scan further.
func (l *Ledger) PredictDescriptions(destination, transactionType string, n int) []string {
	var out []string
	for i := len(l.records) - 1; i >= 0 && len(out) < n; i-- {
		t := l.records[i]
		if t.Destination != destination {
			continue
		}
		if transactionType != "" && t.Type != transactionType {
			continue
		}
		if !slices.Contains(out, t.Description) {
			out = append(out, t.Description)
		}
	}
	return out
}
