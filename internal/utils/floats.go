package utils

import "math"

// Clamp limits v to the inclusive range [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// FiniteOnly returns the values that are neither NaN nor infinite.
// Returns nil when nothing survives.
// Collaborators hand us breakeven arrays that legitimately contain NaN
// (positions with no zero crossing), so this runs on every auto-fit.
func FiniteOnly(values []float64) []float64 {
	var result []float64
	for _, v := range values {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			result = append(result, v)
		}
	}
	return result
}

// MinMax returns the minimum and maximum of values. ok is false for an
// empty slice.
func MinMax(values []float64) (min, max float64, ok bool) {
	if len(values) == 0 {
		return 0, 0, false
	}
	min, max = values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max, true
}
