// Package quantity scales per-person reference quantities and rounds them
// to retail-friendly increments.
package quantity

import (
	"math"

	"grocery-cost/core/types"
)

const (
	// SmallStep is the increment for bulk quantities under SmallLimit
	SmallStep = 25.0

	// LargeStep is the increment for bulk quantities at or above SmallLimit
	LargeStep = 50.0

	// SmallLimit is the first quantity rounded with LargeStep
	SmallLimit = 100.0

	// MaxQuantity caps any line, 1,000 tonnes or 1,000,000 liters or pieces
	MaxQuantity = 1e9
)

// Round applies the friendly rounding policy.
// Grams and milliliters round to 25 below 100 and to 50 from 100 up;
// counts round to the nearest integer. Halves round up.
// NaN and non-positive input yield 0; anything above MaxQuantity,
// +Inf included, yields MaxQuantity.
func Round(q float64, unit types.Unit) float64 {
	if math.IsNaN(q) || q <= 0 {
		return 0
	}
	if q > MaxQuantity {
		return MaxQuantity
	}
	if !unit.IsBulk() {
		return math.Round(q)
	}
	if q < SmallLimit {
		return math.Round(q/SmallStep) * SmallStep
	}
	return math.Round(q/LargeStep) * LargeStep
}

// Scale multiplies a per-person reference by the headcount and rounds the result.
// Headcount must be positive.
func Scale(reference float64, headcount int, unit types.Unit) float64 {
	return Round(reference*float64(headcount), unit)
}
