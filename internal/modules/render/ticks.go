package render

import "math"

// NumericTicks generates up to n tick positions spanning [min,max] using the
// 1/2/2.5/5 step ladder, so grid lines land on readable prices.
func NumericTicks(min, max float64, n int) []float64 {
	if n < 2 || math.IsNaN(min) || math.IsNaN(max) {
		return nil
	}
	if max <= min {
		max = min + 1
	}
	span := max - min
	mag := math.Pow(10, math.Floor(math.Log10(span/float64(n-1))))
	candidates := []float64{1, 2, 2.5, 5, 10}
	bestStep := mag
	bestScore := math.MaxFloat64
	for _, c := range candidates {
		step := c * mag
		count := math.Ceil(span/step) + 1
		if count < 2 {
			count = 2
		}
		diff := math.Abs(count - float64(n))
		if diff < bestScore {
			bestScore = diff
			bestStep = step
		}
	}

	var out []float64
	start := math.Ceil(min/bestStep) * bestStep
	for v := start; v <= max+bestStep*1e-9; v += bestStep {
		out = append(out, roundTick(v))
	}
	if len(out) < 2 {
		out = []float64{min, max}
	}
	return out
}

// roundTick rounds to 6 decimal places to stabilize accumulated float error
// in the tick loop.
func roundTick(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}
