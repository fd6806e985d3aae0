package viewport

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantfold/optionchart/internal/domain"
)

func TestAutoFit_StrikesAndBreakevens(t *testing.T) {
	m := newTestModel()

	view := m.AutoFit(nil, []float64{90, 110}, []float64{95, 105}, 100)

	// Anchors span [90,110]: span 20, padding max(25, 6)=25, half-width 35.
	assert.InDelta(t, 65.0, view.XMin, 1e-9)
	assert.InDelta(t, 135.0, view.XMax, 1e-9)
}

func TestAutoFit_SingleAnchor(t *testing.T) {
	m := newTestModel()

	view := m.AutoFit(nil, nil, nil, 100)

	// One anchor: span 0, half-width = minPadding*2 = 50, centered on spot.
	assert.InDelta(t, 50.0, view.XMin, 1e-9)
	assert.InDelta(t, 150.0, view.XMax, 1e-9)
	assert.True(t, view.Valid())
}

func TestAutoFit_NonFiniteBreakevensExcluded(t *testing.T) {
	m := newTestModel()

	view := m.AutoFit(nil, []float64{95, 105}, []float64{math.NaN(), math.Inf(1)}, 100)

	// Only the strikes and spot anchor the window: span 10, padding 25.
	assert.InDelta(t, 70.0, view.XMin, 1e-9)
	assert.InDelta(t, 130.0, view.XMax, 1e-9)
}

func TestAutoFit_NonFiniteSpotFallsBack(t *testing.T) {
	m := newTestModel()

	view := m.AutoFit(nil, nil, nil, math.NaN())

	assert.True(t, view.Valid())
	assert.InDelta(t, -50.0, view.XMin, 1e-9, "NaN spot degrades to a zero-centered window")
	assert.InDelta(t, 50.0, view.XMax, 1e-9)
}

func TestAutoFit_YRestrictedToVisibleX(t *testing.T) {
	m := newTestModel()

	points := domain.Curve{
		{X: 0, Y: -100000}, // distant tail, outside the X window
		{X: 90, Y: -100},
		{X: 100, Y: 0},
		{X: 110, Y: 100},
		{X: 1000, Y: 100000}, // distant tail
	}

	view := m.AutoFit(points, []float64{90, 110}, nil, 100)

	// Tails at x=0 and x=1000 fall outside [65,135] and must not distort Y.
	assert.InDelta(t, -120.0, view.YMin, 1e-9, "[-100,100] plus 10%% padding")
	assert.InDelta(t, 120.0, view.YMax, 1e-9)
}

func TestAutoFit_FewVisiblePointsFallBackToFullDataset(t *testing.T) {
	m := newTestModel()

	points := domain.Curve{
		{X: 1000, Y: -200},
		{X: 1100, Y: 200},
	}

	// All points are outside the X window around spot 100.
	view := m.AutoFit(points, nil, nil, 100)

	require.True(t, view.Valid())
	assert.InDelta(t, -240.0, view.YMin, 1e-9, "full dataset [-200,200] plus padding")
	assert.InDelta(t, 240.0, view.YMax, 1e-9)
}

func TestAutoFit_FlatCurveForcedToMinimumHeight(t *testing.T) {
	m := newTestModel()

	points := domain.Curve{
		{X: 90, Y: 10},
		{X: 100, Y: 12},
		{X: 110, Y: 11},
	}

	view := m.AutoFit(points, []float64{100}, nil, 100)

	// Range [0,12] is under 50: re-centered to width 100 then padded 10%.
	assert.InDelta(t, 120.0, view.YMax-view.YMin, 1e-9)
	assert.InDelta(t, 6.0, (view.YMin+view.YMax)/2, 1e-9, "centered on the midpoint of [0,12]")
}

func TestAutoFit_EmptyEverything(t *testing.T) {
	m := newTestModel()

	view := m.AutoFit(nil, nil, nil, 250)

	assert.True(t, view.Valid())
	// Y has only the implicit zero: forced width 100 plus padding.
	assert.InDelta(t, -60.0, view.YMin, 1e-9)
	assert.InDelta(t, 60.0, view.YMax, 1e-9)
}

func TestAutoFit_BoundsInvariantAcrossInputs(t *testing.T) {
	m := newTestModel()

	cases := []struct {
		name       string
		points     domain.Curve
		strikes    []float64
		breakevens []float64
		spot       float64
	}{
		{"single strike", nil, []float64{500}, nil, 500},
		{"single point", domain.Curve{{X: 100, Y: 5}}, nil, nil, 100},
		{"negative prices", nil, []float64{-10, -5}, nil, -7},
		{"huge spread", nil, []float64{1, 100000}, nil, 5000},
		{"zero spot", nil, nil, nil, 0},
		{"nan spot with strikes", nil, []float64{90, 110}, nil, math.NaN()},
	}
	for _, tc := range cases {
		view := m.AutoFit(tc.points, tc.strikes, tc.breakevens, tc.spot)
		assert.True(t, view.Valid(), "case %q must produce valid bounds", tc.name)
		assert.Less(t, view.XMin, view.XMax, tc.name)
		assert.Less(t, view.YMin, view.YMax, tc.name)
	}
}
