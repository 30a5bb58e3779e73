package ledger

import "time"

// LatestPrice returns the observation dated most recently at or before asOf.
// Absence is not an error: the second return is false when no usable
// observation exists, and callers fall back to cost basis (see Valuation).
//
// When several observations share the latest date, the one with the greatest
// creation timestamp wins, so repeated corrections on the same day resolve
// deterministically to the newest row.
func LatestPrice(points []PricePoint, asOf time.Time) (PricePoint, bool) {
	var best PricePoint
	found := false
	for _, p := range points {
		if p.Date.After(asOf) {
			continue
		}
		if !found {
			best, found = p, true
			continue
		}
		if p.Date.After(best.Date) || (p.Date.Equal(best.Date) && p.CreatedAt.After(best.CreatedAt)) {
			best = p
		}
	}
	return best, found
}
