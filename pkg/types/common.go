package types

import (
	"math"
	"strings"
)

// Fold is the single case folding used for brand and text comparisons.
func Fold(s string) string {
	return strings.ToLower(s)
}

// PriceRange is an inclusive [Min, Max] interval.
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

func (r PriceRange) Contains(price float64) bool {
	return r.Min <= price && price <= r.Max
}

func clamp(value, lo, hi float64) float64 {
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}

// Clamp moves both ends into bounds and swaps them if they end up inverted.
// A NaN end is treated as the corresponding bound.
func (r PriceRange) Clamp(bounds PriceRange) PriceRange {
	lo, hi := bounds.Min, bounds.Max
	if !math.IsNaN(r.Min) {
		lo = clamp(r.Min, bounds.Min, bounds.Max)
	}
	if !math.IsNaN(r.Max) {
		hi = clamp(r.Max, bounds.Min, bounds.Max)
	}
	if lo > hi {
		lo, hi = hi, lo
	}
	return PriceRange{Min: lo, Max: hi}
}
