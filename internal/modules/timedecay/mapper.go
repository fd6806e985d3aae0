// Package timedecay maps the what-if time slider to an hours-to-expiration
// offset. A linear slider wastes resolution where gamma effects are small;
// the power curve concentrates it near expiration while staying a strictly
// monotonic, continuous bijection.
package timedecay

import (
	"math"

	"github.com/quantfold/optionchart/internal/utils"
)

// DefaultExponent is the power-curve exponent used by the dashboard slider.
const DefaultExponent = 2.5

// Mapper converts between a normalized slider position in [0,100] and an
// hours-remaining offset in [0,maxHours]. maxHours is passed per call because
// it changes whenever the position set changes; callers must re-derive it on
// every relevant data change rather than cache a stale value (a stale
// maxHours still produces a bijection, just the wrong one).
type Mapper struct {
	Exponent float64
}

// NewMapper returns a Mapper, substituting DefaultExponent for a
// non-positive exponent.
func NewMapper(exponent float64) Mapper {
	if exponent <= 0 {
		exponent = DefaultExponent
	}
	return Mapper{Exponent: exponent}
}

// HoursToSlider maps an hours offset to a slider position in [0,100].
// 0 maps to 0 and anything at or beyond maxHours maps to 100.
func (m Mapper) HoursToSlider(hours, maxHours float64) float64 {
	if maxHours <= 0 || hours <= 0 {
		return 0
	}
	if hours >= maxHours {
		return 100
	}
	return 100 * math.Pow(hours/maxHours, 1/m.Exponent)
}

// SliderToHours is the exact inverse of HoursToSlider.
func (m Mapper) SliderToHours(position, maxHours float64) float64 {
	if maxHours <= 0 {
		return 0
	}
	position = utils.Clamp(position, 0, 100)
	return maxHours * math.Pow(position/100, m.Exponent)
}
