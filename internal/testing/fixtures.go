// Package testing provides shared fixtures for chart core tests.
package testing

import (
	"time"

	"github.com/quantfold/optionchart/internal/domain"
)

// StraddleCurve returns a long-straddle expiration payoff around a 100
// strike: losses in the middle, gains in the wings, breakevens at 95/105.
func StraddleCurve() domain.Curve {
	return domain.Curve{
		{X: 70, Y: 50},
		{X: 80, Y: 30},
		{X: 90, Y: 10},
		{X: 95, Y: 0},
		{X: 100, Y: -10},
		{X: 105, Y: 0},
		{X: 110, Y: 10},
		{X: 120, Y: 30},
		{X: 130, Y: 50},
	}
}

// VolumeLevels returns raw volume levels spread over [90,110] with one
// block-trade outlier at 100.
func VolumeLevels() []domain.VolumeLevel {
	return []domain.VolumeLevel{
		{Price: 90, Volume: 120},
		{Price: 92, Volume: 150},
		{Price: 95, Volume: 180},
		{Price: 98, Volume: 210},
		{Price: 100, Volume: 50000}, // block trade
		{Price: 102, Volume: 220},
		{Price: 105, Volume: 160},
		{Price: 108, Volume: 140},
		{Price: 110, Volume: 110},
	}
}

// Positions returns two option positions expiring 2 and 10 days after the
// given time, matching the straddle fixture's strikes.
func Positions(now time.Time) []domain.Position {
	return []domain.Position{
		{Symbol: "SPY", Expiration: now.Add(48 * time.Hour), Strikes: []float64{100}},
		{Symbol: "SPY", Expiration: now.Add(240 * time.Hour), Strikes: []float64{95, 105}},
	}
}
