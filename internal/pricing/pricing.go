// Package pricing computes rental totals. Pricing is linear per day: the
// inclusive day count of the claimed range times the per-day price of the
// interval covering it (summed when a claim spans several open periods).
package pricing

import "github.com/Sapatchanon-Kh/CarTentManagement/internal/pkg/daterange"

// Total returns the price of renting the whole inclusive range at the given per-day rate.
func Total(pricePerDay float64, r daterange.Range) float64 {
	return float64(r.Days()) * pricePerDay
}

// Span is one priced slice of a claim.
type Span struct {
	Range       daterange.Range
	PricePerDay float64
}

// Quote sums the spans of a claim that crosses several open periods.
func Quote(spans []Span) float64 {
	var total float64
	for _, s := range spans {
		total += Total(s.PricePerDay, s.Range)
	}
	return total
}
