// Package gestures classifies raw pointer and wheel input into chart
// mutations. A drag is classified exactly once, at pointer-down, from the
// pointer's position relative to the axis label strips; the resolved mode is
// frozen in the transient GestureState for the whole pointer-down→up cycle.
package gestures

import (
	"github.com/rs/zerolog"

	"github.com/quantfold/optionchart/internal/events"
	"github.com/quantfold/optionchart/internal/modules/timedecay"
	"github.com/quantfold/optionchart/internal/modules/viewport"
	"github.com/quantfold/optionchart/internal/utils"
)

// Mode is the gesture resolved at pointer-down.
type Mode string

const (
	ModeIdle  Mode = "idle"
	ModePan   Mode = "pan"
	ModeXZoom Mode = "xZoom"
	ModeYZoom Mode = "yZoom"
)

// Axis strip sizes in pixels, matching the label areas the renderer draws.
const (
	BottomStripHeight = 24.0
	LeftStripWidth    = 48.0
)

// wheelZoomStep is the per-notch zoom factor; one notch in shows 90% of the
// previous range.
const wheelZoomStep = 0.9

// Axis-drag zoom factors are clamped so a single drag cannot collapse or
// explode the range.
const (
	minDragZoom = 0.05
	maxDragZoom = 20.0
)

// PointerPosition is a pointer location in viewport pixel coordinates.
type PointerPosition struct {
	ClientX float64
	ClientY float64
}

// GestureState lives only for the duration of one pointer-down→up cycle.
// ViewAtStart snapshots the view so each move applies the gesture's total
// delta against a fixed origin instead of accumulating per-move drift.
type GestureState struct {
	Mode        Mode
	Anchor      PointerPosition
	ViewAtStart viewport.ViewState
}

// Router turns pointer and wheel events into viewport mutations and discrete
// interaction events. Single-threaded like the rest of the core.
type Router struct {
	model   *viewport.Model
	handler events.Handler
	log     zerolog.Logger

	width   float64
	height  float64
	padding float64

	state GestureState
}

// NewRouter creates a router driving the given viewport model. handler may
// be nil when no collaborator listens for interaction events. padding is the
// pixel padding the transforms use on both axes.
func NewRouter(model *viewport.Model, padding float64, handler events.Handler, log zerolog.Logger) *Router {
	return &Router{
		model:   model,
		handler: handler,
		log:     log.With().Str("service", "gestures").Logger(),
		padding: padding,
		state:   GestureState{Mode: ModeIdle},
	}
}

// Mode returns the currently active gesture mode.
func (r *Router) Mode() Mode {
	return r.state.Mode
}

// State returns the transient gesture state.
func (r *Router) State() GestureState {
	return r.state
}

// Resize records the viewport pixel size and reports whether the caller
// should run a full auto-fit (first valid size only).
func (r *Router) Resize(width, height float64) (needsFit bool) {
	needsFit = r.model.Resize(width, height)
	if width > 0 && height > 0 {
		r.width, r.height = width, height
	}
	return needsFit
}

// PointerDown classifies and starts a gesture: the bottom strip starts an
// X-axis zoom, the left strip a Y-axis zoom, the interior a pan. The mode
// does not change mid-drag.
func (r *Router) PointerDown(x, y float64) Mode {
	mode := ModePan
	switch {
	case y >= r.height-BottomStripHeight:
		mode = ModeXZoom
	case x <= LeftStripWidth:
		mode = ModeYZoom
	}
	r.state = GestureState{
		Mode:        mode,
		Anchor:      PointerPosition{ClientX: x, ClientY: y},
		ViewAtStart: r.model.View(),
	}
	return mode
}

// PointerMove applies the frozen gesture mode for the pointer's total travel
// since pointer-down. Idle moves are crosshair-only and mutate nothing.
func (r *Router) PointerMove(x, y float64) {
	if r.state.Mode == ModeIdle || r.width <= 0 || r.height <= 0 {
		return
	}
	dx := x - r.state.Anchor.ClientX
	dy := y - r.state.Anchor.ClientY

	r.model.SetView(r.state.ViewAtStart)
	switch r.state.Mode {
	case ModePan:
		r.model.Pan(dx, dy, r.width, r.height)
	case ModeXZoom:
		factor := utils.Clamp(1-(dx/r.width)*2, minDragZoom, maxDragZoom)
		r.model.ZoomAxisAboutCenter(viewport.AxisX, factor)
	case ModeYZoom:
		factor := utils.Clamp(1+(dy/r.height)*2, minDragZoom, maxDragZoom)
		r.model.ZoomAxisAboutCenter(viewport.AxisY, factor)
	}
}

// PointerUp ends the gesture, discards its state and notifies listeners of
// the settled view.
func (r *Router) PointerUp() {
	r.endGesture()
}

// PointerLeave is treated like PointerUp: a gesture never survives the
// pointer leaving the chart.
func (r *Router) PointerLeave() {
	r.endGesture()
}

func (r *Router) endGesture() {
	if r.state.Mode == ModeIdle {
		return
	}
	r.state = GestureState{Mode: ModeIdle}
	r.emit(&events.ViewChangedData{View: r.model.View()})
}

// Wheel performs a cursor-anchored zoom at the pointer's data value.
// Scrolling toward the screen zooms in. Holding shift zooms the Y axis
// instead of X.
func (r *Router) Wheel(x, y, deltaY float64, shift bool) {
	if r.width <= 0 || r.height <= 0 || deltaY == 0 {
		return
	}
	factor := wheelZoomStep
	if deltaY > 0 {
		factor = 1 / wheelZoomStep
	}
	if shift {
		anchor := r.model.ToDataY(y, r.height, r.padding)
		r.model.ZoomAxis(viewport.AxisY, factor, anchor)
	} else {
		anchor := r.model.ToDataX(x, r.width, r.padding)
		r.model.ZoomAxis(viewport.AxisX, factor, anchor)
	}
	r.emit(&events.ViewChangedData{View: r.model.View()})
}

// SlideTime resolves a what-if slider position through the decay mapper and
// notifies listeners of the new time offset. The resolved hours value is
// returned for the caller's own repaint.
func (r *Router) SlideTime(position, maxHours float64, mapper timedecay.Mapper) float64 {
	position = utils.Clamp(position, 0, 100)
	hours := mapper.SliderToHours(position, maxHours)
	r.emit(&events.TimeOffsetChangedData{Hours: hours, SliderPosition: position})
	return hours
}

// ContextPrice resolves the data price under a context-menu click. It is a
// separate, non-exclusive branch: the view is not mutated and any active
// gesture state is left alone.
func (r *Router) ContextPrice(x float64) float64 {
	return r.model.ToDataX(x, r.width, r.padding)
}

// RequestAlert emits an alert-creation request for the given direction at a
// data price, typically the price resolved by ContextPrice.
func (r *Router) RequestAlert(direction events.AlertDirection, price float64) *events.AlertRequestedData {
	data := events.NewAlertRequested(direction, price)
	r.log.Debug().Str("direction", string(direction)).Float64("price", price).Msg("Alert requested")
	r.emit(data)
	return data
}

func (r *Router) emit(data events.EventData) {
	if r.handler == nil {
		return
	}
	r.handler(events.New(data))
}
