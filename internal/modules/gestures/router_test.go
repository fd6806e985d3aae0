package gestures

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantfold/optionchart/internal/events"
	"github.com/quantfold/optionchart/internal/modules/timedecay"
	"github.com/quantfold/optionchart/internal/modules/viewport"
)

const (
	testWidth  = 800.0
	testHeight = 400.0
)

func newTestRouter(t *testing.T) (*Router, *viewport.Model, *[]events.Event) {
	t.Helper()
	model := viewport.NewModel(zerolog.Nop())
	model.SetView(viewport.ViewState{XMin: 100, XMax: 200, YMin: -50, YMax: 50})

	var emitted []events.Event
	r := NewRouter(model, 0, func(ev events.Event) { emitted = append(emitted, ev) }, zerolog.Nop())
	r.Resize(testWidth, testHeight)
	return r, model, &emitted
}

func TestRouter_PointerDown_ClassifiesByRegion(t *testing.T) {
	r, _, _ := newTestRouter(t)

	assert.Equal(t, ModePan, r.PointerDown(400, 200), "interior starts a pan")
	r.PointerUp()
	assert.Equal(t, ModeXZoom, r.PointerDown(400, testHeight-5), "bottom strip starts an x zoom")
	r.PointerUp()
	assert.Equal(t, ModeYZoom, r.PointerDown(10, 200), "left strip starts a y zoom")
	r.PointerUp()
	assert.Equal(t, ModeIdle, r.Mode())
}

func TestRouter_ModeFrozenAtDragStart(t *testing.T) {
	r, _, _ := newTestRouter(t)

	r.PointerDown(400, 200) // interior: pan
	// Moving into the bottom strip must not switch to x-zoom.
	r.PointerMove(400, testHeight-2)
	assert.Equal(t, ModePan, r.Mode())
	r.PointerUp()
}

func TestRouter_PanDrag(t *testing.T) {
	r, model, _ := newTestRouter(t)

	r.PointerDown(400, 200)
	r.PointerMove(480, 200) // 80px right = 10 data units at 100/800

	view := model.View()
	assert.InDelta(t, 90.0, view.XMin, 1e-9)
	assert.InDelta(t, 190.0, view.XMax, 1e-9)
}

func TestRouter_PanDrag_NoDriftAcrossMoves(t *testing.T) {
	r, model, _ := newTestRouter(t)

	r.PointerDown(400, 200)
	// Many small moves ending back at the anchor must restore the view.
	for _, x := range []float64{410, 450, 390, 405, 400} {
		r.PointerMove(x, 200)
	}

	view := model.View()
	assert.InDelta(t, 100.0, view.XMin, 1e-9)
	assert.InDelta(t, 200.0, view.XMax, 1e-9)
}

func TestRouter_AxisDragZoomX(t *testing.T) {
	r, model, _ := newTestRouter(t)

	r.PointerDown(400, testHeight-5)
	// Drag 200px right: factor = 1 - (200/800)*2 = 0.5 around center 150.
	r.PointerMove(600, testHeight-5)

	view := model.View()
	assert.InDelta(t, 125.0, view.XMin, 1e-9)
	assert.InDelta(t, 175.0, view.XMax, 1e-9)
	assert.InDelta(t, -50.0, view.YMin, 1e-9, "y axis untouched by x-axis drag")
}

func TestRouter_AxisDragZoomY(t *testing.T) {
	r, model, _ := newTestRouter(t)

	r.PointerDown(10, 200)
	// Drag 100px down: factor = 1 + (100/400)*2 = 1.5 around center 0.
	r.PointerMove(10, 300)

	view := model.View()
	assert.InDelta(t, -75.0, view.YMin, 1e-9)
	assert.InDelta(t, 75.0, view.YMax, 1e-9)
	assert.InDelta(t, 100.0, view.XMin, 1e-9, "x axis untouched by y-axis drag")
}

func TestRouter_AxisDragZoomFactorClamped(t *testing.T) {
	r, model, _ := newTestRouter(t)

	r.PointerDown(400, testHeight-5)
	// Dragging right by the full width would produce factor -1; it clamps.
	r.PointerMove(400+testWidth, testHeight-5)

	view := model.View()
	assert.True(t, view.Valid())
	assert.Less(t, view.XMin, view.XMax)
}

func TestRouter_PointerUp_EmitsViewChangedAndResets(t *testing.T) {
	r, _, emitted := newTestRouter(t)

	r.PointerDown(400, 200)
	r.PointerMove(480, 200)
	r.PointerUp()

	assert.Equal(t, ModeIdle, r.Mode())
	require.Len(t, *emitted, 1)
	assert.Equal(t, events.ViewChanged, (*emitted)[0].Type)

	// A second pointer-up without a gesture stays silent.
	r.PointerUp()
	assert.Len(t, *emitted, 1)
}

func TestRouter_PointerLeave_EndsGesture(t *testing.T) {
	r, _, _ := newTestRouter(t)

	r.PointerDown(400, 200)
	r.PointerLeave()
	assert.Equal(t, ModeIdle, r.Mode())

	// Moves after leave mutate nothing.
	before := r.State()
	r.PointerMove(500, 250)
	assert.Equal(t, before, r.State())
}

func TestRouter_Wheel_CursorAnchoredZoom(t *testing.T) {
	r, model, _ := newTestRouter(t)

	// Pixel 400 of 800 maps to data 150; zoom in by 0.9 around it.
	r.Wheel(400, 200, -1, false)

	view := model.View()
	assert.InDelta(t, 105.0, view.XMin, 1e-9)
	assert.InDelta(t, 195.0, view.XMax, 1e-9)
}

func TestRouter_Wheel_ShiftZoomsYOnly(t *testing.T) {
	r, model, _ := newTestRouter(t)

	r.Wheel(400, 200, -1, true)

	view := model.View()
	assert.InDelta(t, 100.0, view.XMin, 1e-9, "x axis untouched")
	assert.InDelta(t, 200.0, view.XMax, 1e-9)
	assert.InDelta(t, -45.0, view.YMin, 1e-9, "y zoomed around data value 0")
	assert.InDelta(t, 45.0, view.YMax, 1e-9)
}

func TestRouter_Wheel_ZoomOutOnPositiveDelta(t *testing.T) {
	r, model, _ := newTestRouter(t)

	r.Wheel(400, 200, 1, false)
	view := model.View()
	assert.Greater(t, view.XMax-view.XMin, 100.0, "positive delta widens the range")
}

func TestRouter_ContextPrice_DoesNotMutateView(t *testing.T) {
	r, model, _ := newTestRouter(t)
	before := model.View()

	price := r.ContextPrice(600)

	assert.InDelta(t, 175.0, price, 1e-9)
	assert.Equal(t, before, model.View())
}

func TestRouter_SlideTime_EmitsTimeOffsetChanged(t *testing.T) {
	r, _, emitted := newTestRouter(t)
	mapper := timedecay.NewMapper(0)

	hours := r.SlideTime(50, 720, mapper)

	assert.InDelta(t, mapper.SliderToHours(50, 720), hours, 1e-9)
	require.Len(t, *emitted, 1)
	assert.Equal(t, events.TimeOffsetChanged, (*emitted)[0].Type)
	payload, ok := (*emitted)[0].Data.(*events.TimeOffsetChangedData)
	require.True(t, ok)
	assert.InDelta(t, hours, payload.Hours, 1e-9)
	assert.InDelta(t, 50.0, payload.SliderPosition, 1e-9)
}

func TestRouter_SlideTime_ClampsPosition(t *testing.T) {
	r, _, emitted := newTestRouter(t)
	mapper := timedecay.NewMapper(0)

	hours := r.SlideTime(130, 720, mapper)

	assert.InDelta(t, 720.0, hours, 1e-9, "positions beyond 100 resolve to max hours")
	require.Len(t, *emitted, 1)
	payload, ok := (*emitted)[0].Data.(*events.TimeOffsetChangedData)
	require.True(t, ok)
	assert.InDelta(t, 100.0, payload.SliderPosition, 1e-9)
}

func TestRouter_RequestAlert_EmitsEvent(t *testing.T) {
	r, _, emitted := newTestRouter(t)

	data := r.RequestAlert(events.AlertPriceTouch, 123.0)

	assert.NotEmpty(t, data.ID)
	require.Len(t, *emitted, 1)
	assert.Equal(t, events.AlertRequested, (*emitted)[0].Type)
	payload, ok := (*emitted)[0].Data.(*events.AlertRequestedData)
	require.True(t, ok)
	assert.Equal(t, events.AlertPriceTouch, payload.Direction)
	assert.InDelta(t, 123.0, payload.Price, 1e-9)
}
