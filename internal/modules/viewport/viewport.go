// Package viewport owns the visible data-space rectangle of the chart and
// the affine transforms between data space and pixel space. The model is a
// mutable holder updated in place: pointer drags produce hundreds of updates
// per second, and the surrounding UI is only asked to repaint, never to
// re-derive state. Not goroutine-safe; owned by the UI event loop.
package viewport

import (
	"math"

	"github.com/rs/zerolog"
)

// Axis selects which axis an operation applies to.
type Axis string

const (
	AxisX Axis = "x"
	AxisY Axis = "y"
)

// MinSpan is the smallest data-space width either axis may reach. Zoom
// operations that would shrink an axis below it are ignored, which keeps the
// min < max invariant unconditional.
const MinSpan = 1e-9

// ViewState is the currently visible data-space rectangle.
// Invariant: XMin < XMax and YMin < YMax at all times.
type ViewState struct {
	XMin float64 `json:"x_min"`
	XMax float64 `json:"x_max"`
	YMin float64 `json:"y_min"`
	YMax float64 `json:"y_max"`
}

// Valid reports whether both axis ranges are finite and non-degenerate.
func (v ViewState) Valid() bool {
	for _, f := range []float64{v.XMin, v.XMax, v.YMin, v.YMax} {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return v.XMax-v.XMin >= MinSpan && v.YMax-v.YMin >= MinSpan
}

// Model owns the ViewState. All mutation goes through its methods.
type Model struct {
	view   ViewState
	fitted bool
	log    zerolog.Logger
}

// NewModel creates a viewport model with a neutral default window; the first
// AutoFit replaces it wholesale.
func NewModel(log zerolog.Logger) *Model {
	return &Model{
		view: ViewState{XMin: 0, XMax: 100, YMin: -50, YMax: 50},
		log:  log.With().Str("service", "viewport").Logger(),
	}
}

// View returns a snapshot of the current state, e.g. for the reset button or
// for freezing a gesture's starting view.
func (m *Model) View() ViewState {
	return m.view
}

// SetView replaces the state, repairing degenerate axes by keeping the
// previous range on that axis.
func (m *Model) SetView(v ViewState) ViewState {
	m.view = repair(v, m.view)
	return m.view
}

// Resize latches the first valid container size: it returns true exactly
// when the caller should run a full AutoFit (first paint). Later resizes
// return false so the user's pan/zoom survives container changes. Zero or
// negative sizes are skipped silently; the next resize retries.
func (m *Model) Resize(width, height float64) (needsFit bool) {
	if width <= 0 || height <= 0 {
		m.log.Debug().Float64("width", width).Float64("height", height).Msg("Skipping resize with empty viewport")
		return false
	}
	return !m.fitted
}

// Pan shifts the view by a pixel delta, converted to data units at the
// current per-axis scale. X moves opposite the drag ("drag the content");
// Y moves with it because pixel Y grows downward while data Y grows upward.
func (m *Model) Pan(dxPixels, dyPixels, width, height float64) ViewState {
	if width <= 0 || height <= 0 {
		return m.view
	}
	dx := dxPixels * (m.view.XMax - m.view.XMin) / width
	dy := dyPixels * (m.view.YMax - m.view.YMin) / height
	next := m.view
	next.XMin -= dx
	next.XMax -= dx
	next.YMin += dy
	next.YMax += dy
	m.view = repair(next, m.view)
	return m.view
}

// ZoomAxis scales one axis around an anchor data value: factor < 1 zooms in,
// factor > 1 zooms out. The anchor keeps its pixel position across the zoom,
// which is the defining property of cursor-relative zoom.
func (m *Model) ZoomAxis(axis Axis, factor, anchor float64) ViewState {
	if factor <= 0 || math.IsNaN(factor) || math.IsNaN(anchor) {
		return m.view
	}
	next := m.view
	switch axis {
	case AxisY:
		next.YMin = anchor - (anchor-next.YMin)*factor
		next.YMax = anchor + (next.YMax-anchor)*factor
	default:
		next.XMin = anchor - (anchor-next.XMin)*factor
		next.XMax = anchor + (next.XMax-anchor)*factor
	}
	m.view = repair(next, m.view)
	return m.view
}

// ZoomAxisAboutCenter scales one axis around the center of its current
// range. Axis-strip drags use this: the whole drag is a one-dimensional zoom
// of the axis, not a cursor-anchored one.
func (m *Model) ZoomAxisAboutCenter(axis Axis, factor float64) ViewState {
	switch axis {
	case AxisY:
		return m.ZoomAxis(AxisY, factor, (m.view.YMin+m.view.YMax)/2)
	default:
		return m.ZoomAxis(AxisX, factor, (m.view.XMin+m.view.XMax)/2)
	}
}

// ToPixelX maps a data X value to a pixel column inside a viewport of the
// given width with symmetric padding.
func (m *Model) ToPixelX(value, width, padding float64) float64 {
	inner := width - 2*padding
	return padding + (value-m.view.XMin)/(m.view.XMax-m.view.XMin)*inner
}

// ToDataX is the exact algebraic inverse of ToPixelX.
func (m *Model) ToDataX(pixel, width, padding float64) float64 {
	inner := width - 2*padding
	return m.view.XMin + (pixel-padding)/inner*(m.view.XMax-m.view.XMin)
}

// ToPixelY maps a data Y value to a pixel row. The axis is inverted: higher
// values render higher on screen.
func (m *Model) ToPixelY(value, height, padding float64) float64 {
	inner := height - 2*padding
	return padding + (m.view.YMax-value)/(m.view.YMax-m.view.YMin)*inner
}

// ToDataY is the exact algebraic inverse of ToPixelY.
func (m *Model) ToDataY(pixel, height, padding float64) float64 {
	inner := height - 2*padding
	return m.view.YMax - (pixel-padding)/inner*(m.view.YMax-m.view.YMin)
}

// repair returns next unless an axis came out degenerate or non-finite, in
// which case that axis reverts to its previous range.
func repair(next, prev ViewState) ViewState {
	if math.IsNaN(next.XMin) || math.IsNaN(next.XMax) || math.IsInf(next.XMin, 0) || math.IsInf(next.XMax, 0) || next.XMax-next.XMin < MinSpan {
		next.XMin, next.XMax = prev.XMin, prev.XMax
	}
	if math.IsNaN(next.YMin) || math.IsNaN(next.YMax) || math.IsInf(next.YMin, 0) || math.IsInf(next.YMax, 0) || next.YMax-next.YMin < MinSpan {
		next.YMin, next.YMax = prev.YMin, prev.YMax
	}
	return next
}
