// Package sampler provides piecewise-linear lookup over payoff curves.
// It backs the "P&L at spot" marker and the crosshair readouts for both the
// at-expiration and live-valuation curves.
package sampler

import "github.com/quantfold/optionchart/internal/domain"

// ValueAt returns the linearly interpolated Y value of curve at x.
// The curve must be strictly increasing in X (caller precondition; a
// non-monotonic curve silently produces a wrong interpolation, not an error).
// ok is false when the curve has fewer than 2 points or x lies outside the
// curve's domain; there is no extrapolation.
func ValueAt(curve domain.Curve, x float64) (value float64, ok bool) {
	if len(curve) < 2 {
		return 0, false
	}
	for i := 0; i < len(curve)-1; i++ {
		a, b := curve[i], curve[i+1]
		if x < a.X || x > b.X {
			continue
		}
		dx := b.X - a.X
		if dx == 0 {
			return a.Y, true
		}
		t := (x - a.X) / dx
		return a.Y + t*(b.Y-a.Y), true
	}
	return 0, false
}

// ZeroCrossings returns the X positions where the curve crosses zero,
// in ascending order. These are the breakevens the auto-fit treats as
// must-be-visible anchors.
func ZeroCrossings(curve domain.Curve) []float64 {
	var crossings []float64
	push := func(x float64) {
		if n := len(crossings); n > 0 && crossings[n-1] == x {
			return
		}
		crossings = append(crossings, x)
	}
	for i := 0; i < len(curve)-1; i++ {
		a, b := curve[i], curve[i+1]
		switch {
		case a.Y == 0:
			push(a.X)
		case (a.Y < 0) != (b.Y < 0):
			// Sign change inside the segment; solve the linear piece for zero.
			t := -a.Y / (b.Y - a.Y)
			push(a.X + t*(b.X-a.X))
		}
	}
	if n := len(curve); n > 0 && curve[n-1].Y == 0 {
		push(curve[n-1].X)
	}
	return crossings
}
