// Package domain provides core domain models and types shared by the chart core.
package domain

import (
	"fmt"
	"math"
	"time"
)

// Point represents a single chart sample. X is always a price; Y is the
// quantity plotted against it (P&L for payoff curves, volume for profiles).
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Curve is an ordered series of points, strictly increasing in X.
// The strict ordering is a caller precondition: samplers and renderers
// assume it and do not sort or verify.
type Curve []Point

// VolumeLevel represents raw traded volume (or gamma exposure) at a price level.
type VolumeLevel struct {
	Price  float64 `json:"price" yaml:"price"`
	Volume float64 `json:"volume" yaml:"volume"`
}

// BinnedLevel represents a post-binning density sample at a bin center price.
type BinnedLevel struct {
	Price  float64 `json:"price"`
	Volume float64 `json:"volume"`
}

// Position is the slice of an options position the chart core needs:
// which strikes must stay visible and when the position expires.
type Position struct {
	Symbol     string    `json:"symbol" yaml:"symbol"`
	Expiration time.Time `json:"expiration" yaml:"expiration"`
	Strikes    []float64 `json:"strikes" yaml:"strikes"`
}

// RowsLayout selects how the volume profile bin count is derived.
type RowsLayout string

const (
	// RowsLayoutNumberOfRows interprets RowSize as the desired bin count.
	RowsLayoutNumberOfRows RowsLayout = "number_of_rows"
	// RowsLayoutTicksPerRow interprets RowSize as the price width of one bin.
	RowsLayoutTicksPerRow RowsLayout = "ticks_per_row"
)

// ParseRowsLayout converts a string to a RowsLayout, falling back to
// number_of_rows for unknown values. Configuration input is untrusted,
// so this never errors.
func ParseRowsLayout(s string) RowsLayout {
	switch RowsLayout(s) {
	case RowsLayoutTicksPerRow:
		return RowsLayoutTicksPerRow
	default:
		return RowsLayoutNumberOfRows
	}
}

// BinningConfig holds the volume-profile binning configuration supplied by
// the settings dialog.
type BinningConfig struct {
	CappingSigma float64    `json:"capping_sigma" yaml:"capping_sigma"`
	RowsLayout   RowsLayout `json:"rows_layout" yaml:"rows_layout"`
	RowSize      float64    `json:"row_size" yaml:"row_size"`
}

// Validate checks the binning configuration for values the binner cannot
// absorb by clamping alone. The positivity checks are written so NaN fails
// them too (NaN comparisons are always false).
func (c BinningConfig) Validate() error {
	if !(c.CappingSigma > 0) || math.IsInf(c.CappingSigma, 0) {
		return fmt.Errorf("capping_sigma must be positive and finite, got %f", c.CappingSigma)
	}
	if c.RowsLayout != RowsLayoutNumberOfRows && c.RowsLayout != RowsLayoutTicksPerRow {
		return fmt.Errorf("invalid rows_layout: %s", c.RowsLayout)
	}
	if !(c.RowSize > 0) || math.IsInf(c.RowSize, 0) {
		return fmt.Errorf("row_size must be positive and finite, got %f", c.RowSize)
	}
	return nil
}
