// Package binning turns raw volume or gamma-exposure levels into the
// averaged histogram the profile overlays render. Binning is pure: the same
// levels and configuration always produce the same output.
package binning

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/quantfold/optionchart/internal/domain"
)

// MaxBins bounds the histogram resolution regardless of configuration.
const MaxBins = 2000

// Result holds the output of one binning run. MaxVolume feeds the
// renderer's bar-width scaling.
type Result struct {
	Levels    []domain.BinnedLevel
	MaxVolume float64
	BinSize   float64
}

// SigmaToPercentile converts a sigma threshold to the percentile of a
// standard normal distribution, e.g. 2.0 -> ~0.977.
func SigmaToPercentile(sigma float64) float64 {
	return distuv.Normal{Mu: 0, Sigma: 1}.CDF(sigma)
}

// CapOutliers clamps level volumes to the value found at the sigma-derived
// percentile of the sorted volume distribution. A single large block trade
// would otherwise compress the visual scale of the whole histogram.
// The input slice is not modified.
func CapOutliers(levels []domain.VolumeLevel, sigma float64) []domain.VolumeLevel {
	if len(levels) == 0 {
		return nil
	}
	volumes := make([]float64, len(levels))
	for i, l := range levels {
		volumes[i] = l.Volume
	}
	sort.Float64s(volumes)

	percentile := SigmaToPercentile(sigma)
	idx := int(math.Floor(float64(len(volumes)) * percentile))
	capValue := volumes[len(volumes)-1]
	if idx >= 0 && idx < len(volumes) {
		capValue = volumes[idx]
	}

	capped := make([]domain.VolumeLevel, len(levels))
	for i, l := range levels {
		capped[i] = l
		if l.Volume > capValue {
			capped[i].Volume = capValue
		}
	}
	return capped
}

// Bin aggregates levels into price bins, emitting the arithmetic mean volume
// per non-empty bin at the bin's center price. Averaging keeps bar magnitude
// independent of the configured bin count; a sum-based histogram would grow
// with bin width.
//
// In number_of_rows mode rowSize is the desired bin count and the resulting
// bin width is snapped up to a readable 1/2/2.5/5 price increment. In
// ticks_per_row mode rowSize is the requested bin width; the emitted width
// is the nearest even division of the price range at or below it, so the
// bins tile the range exactly. A non-finite rowSize degrades to 1.
func Bin(levels []domain.VolumeLevel, layout domain.RowsLayout, rowSize float64) Result {
	if math.IsNaN(rowSize) || math.IsInf(rowSize, 0) {
		rowSize = 1
	}
	if len(levels) == 0 {
		return Result{BinSize: 1}
	}

	minPrice, maxPrice := levels[0].Price, levels[0].Price
	for _, l := range levels[1:] {
		minPrice = math.Min(minPrice, l.Price)
		maxPrice = math.Max(maxPrice, l.Price)
	}
	priceRange := maxPrice - minPrice
	if priceRange <= 0 {
		// All levels at one price; nothing to aggregate.
		out := make([]domain.BinnedLevel, len(levels))
		maxVolume := 0.0
		for i, l := range levels {
			out[i] = domain.BinnedLevel{Price: l.Price, Volume: l.Volume}
			maxVolume = math.Max(maxVolume, l.Volume)
		}
		return Result{Levels: out, MaxVolume: maxVolume, BinSize: 1}
	}

	var binSize float64
	switch layout {
	case domain.RowsLayoutTicksPerRow:
		effectiveBins := math.Ceil(priceRange / math.Max(1, rowSize))
		effectiveBins = math.Min(math.Max(effectiveBins, 1), MaxBins)
		binSize = priceRange / effectiveBins
	default: // number_of_rows
		effectiveBins := math.Max(1, math.Floor(rowSize))
		effectiveBins = math.Min(effectiveBins, MaxBins)
		binSize = niceCeil(priceRange / effectiveBins)
	}

	binCount := int(math.Ceil(priceRange / binSize))
	if binCount < 1 {
		binCount = 1
	}
	if binCount > MaxBins {
		binCount = MaxBins
		binSize = priceRange / float64(binCount)
	}

	sums := make([]float64, binCount)
	counts := make([]int, binCount)
	for _, l := range levels {
		i := int((l.Price - minPrice) / binSize)
		if i < 0 {
			i = 0
		}
		if i >= binCount {
			i = binCount - 1
		}
		sums[i] += l.Volume
		counts[i]++
	}

	var out []domain.BinnedLevel
	maxVolume := 0.0
	for i := 0; i < binCount; i++ {
		if counts[i] == 0 {
			continue
		}
		mean := sums[i] / float64(counts[i])
		out = append(out, domain.BinnedLevel{
			Price:  minPrice + (float64(i)+0.5)*binSize,
			Volume: mean,
		})
		maxVolume = math.Max(maxVolume, mean)
	}
	return Result{Levels: out, MaxVolume: maxVolume, BinSize: binSize}
}

// niceCeil rounds x up to the next 1, 2, 2.5 or 5 times a power of ten.
// Same step ladder the grid ticks use, so bin edges land on readable prices.
func niceCeil(x float64) float64 {
	if x <= 0 || math.IsNaN(x) || math.IsInf(x, 0) {
		return 1
	}
	mag := math.Pow(10, math.Floor(math.Log10(x)))
	for _, c := range []float64{1, 2, 2.5, 5, 10} {
		if step := c * mag; step >= x*(1-1e-12) {
			return step
		}
	}
	return 10 * mag
}
