package viewport

import (
	"math"

	"github.com/quantfold/optionchart/internal/domain"
	"github.com/quantfold/optionchart/internal/utils"
)

// Auto-fit tuning. The X padding guarantees visibility even for near-zero
// anchor spans; the Y floor prevents a visually flat P&L line.
const (
	fallbackHalfWidth = 50.0
	minXPadding       = 25.0
	xPaddingRatio     = 0.3
	minYRange         = 50.0
	forcedYRange      = 100.0
	yPaddingRatio     = 0.1
)

// AutoFit recomputes the view bounds wholesale so that every strike,
// breakeven and the spot price are visible with padding, and the P&L curve
// fills the vertical range. Called on first paint and whenever the position
// set changes; pan/zoom state in between is deliberately discarded.
//
// The X window derives from the strike/breakeven/spot anchors with a fixed
// minimum padding; the Y window derives from the P&L points that fall inside
// that X window (distant tails must not flatten the visible curve).
func (m *Model) AutoFit(points domain.Curve, strikes, breakevens []float64, spot float64) ViewState {
	anchors := make([]float64, 0, len(strikes)+len(breakevens)+1)
	anchors = append(anchors, strikes...)
	anchors = append(anchors, breakevens...)
	anchors = append(anchors, spot)
	anchors = utils.FiniteOnly(anchors)

	var xMin, xMax float64
	if len(anchors) == 0 {
		if math.IsNaN(spot) || math.IsInf(spot, 0) {
			spot = 0
		}
		xMin, xMax = spot-fallbackHalfWidth, spot+fallbackHalfWidth
	} else {
		priceMin, priceMax, _ := utils.MinMax(anchors)
		span := priceMax - priceMin
		center := (priceMin + priceMax) / 2
		minPadding := math.Max(minXPadding, span*xPaddingRatio)
		halfWidth := span/2 + minPadding
		if span == 0 {
			halfWidth = minPadding * 2
		}
		xMin, xMax = center-halfWidth, center+halfWidth
	}

	yMin, yMax := fitY(points, xMin, xMax)

	m.view = ViewState{XMin: xMin, XMax: xMax, YMin: yMin, YMax: yMax}
	m.fitted = true
	return m.view
}

// fitY computes the vertical bounds from the P&L points visible inside the
// X window, always including zero so the breakeven line stays on screen.
func fitY(points domain.Curve, xMin, xMax float64) (float64, float64) {
	var visible []float64
	for _, p := range points {
		if p.X >= xMin && p.X <= xMax {
			visible = append(visible, p.Y)
		}
	}
	if len(visible) < 2 {
		visible = visible[:0]
		for _, p := range points {
			visible = append(visible, p.Y)
		}
	}
	visible = append(visible, 0)
	visible = utils.FiniteOnly(visible)

	yMin, yMax, _ := utils.MinMax(visible)
	if yMax-yMin < minYRange {
		center := (yMin + yMax) / 2
		yMin = center - forcedYRange/2
		yMax = center + forcedYRange/2
	}
	pad := (yMax - yMin) * yPaddingRatio
	return yMin - pad, yMax + pad
}
