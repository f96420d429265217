package analytics

import (
	"shoppulse/internal/dataset"
)

// SplitPeriods selects the records inside the boundary plus the records of
// the immediately preceding equal-length window. The comparison subset makes
// every metric period-over-period comparable without the caller supplying a
// second range; it may be empty when no earlier data exists.
func SplitPeriods(set dataset.MasterSet, b Boundary) (current, comparison dataset.MasterSet) {
	prev := b.Previous()

	for _, rec := range set {
		switch {
		case b.Contains(rec.PurchasedAt):
			current = append(current, rec)
		case prev.Contains(rec.PurchasedAt):
			comparison = append(comparison, rec)
		}
	}

	return current, comparison
}

// qualifying returns the rows metric families operate on: canceled and
// returned orders are excluded from revenue-derived metrics by policy.
func qualifying(set dataset.MasterSet) dataset.MasterSet {
	out := make(dataset.MasterSet, 0, len(set))
	for _, rec := range set {
		if !rec.Canceled {
			out = append(out, rec)
		}
	}
	return out
}

// distinctOrders counts unique order ids in the set
func distinctOrders(set dataset.MasterSet) int {
	seen := make(map[string]struct{}, len(set))
	for _, rec := range set {
		seen[rec.OrderID] = struct{}{}
	}
	return len(seen)
}
