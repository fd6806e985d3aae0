// Package render turns the current view and input series into pixel-space
// draw instructions. Building a frame is a pure function of its inputs, so
// redundant redraw calls are safe; the renderer that consumes frames lives
// outside this core.
package render

import (
	"math"

	"github.com/rs/zerolog"

	"github.com/quantfold/optionchart/internal/domain"
	"github.com/quantfold/optionchart/internal/modules/sampler"
	"github.com/quantfold/optionchart/internal/modules/viewport"
)

// Default tick counts per axis.
const (
	xTickTarget = 8
	yTickTarget = 6
)

// PixelPoint is a position in viewport pixel coordinates.
type PixelPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// GridLine is one grid line with its data value (for the axis label) and its
// pixel position.
type GridLine struct {
	Axis  viewport.Axis `json:"axis"`
	Value float64       `json:"value"`
	Pixel float64       `json:"pixel"`
}

// Path is a curve rendered as a pixel polyline.
type Path struct {
	Name   string       `json:"name"`
	Points []PixelPoint `json:"points"`
}

// MarkerKind identifies what a marker represents.
type MarkerKind string

const (
	MarkerStrike    MarkerKind = "strike"
	MarkerBreakeven MarkerKind = "breakeven"
	MarkerSpot      MarkerKind = "spot"
	MarkerSpotPnL   MarkerKind = "spot_pnl"
)

// Marker is a point or vertical-line annotation at a price.
type Marker struct {
	Kind  MarkerKind `json:"kind"`
	Price float64    `json:"price"`
	X     float64    `json:"x"`
	Y     float64    `json:"y,omitempty"`
	Value float64    `json:"value,omitempty"`
}

// Bar is one volume-profile bar at a bin center, with its height as a
// fraction of the tallest bin so the renderer scales bars itself.
type Bar struct {
	Price      float64 `json:"price"`
	X          float64 `json:"x"`
	HeightFrac float64 `json:"height_frac"`
}

// Readout is an interpolated curve value at the crosshair price.
type Readout struct {
	Value float64 `json:"value"`
	Y     float64 `json:"y"`
}

// Crosshair carries the pointer-position readouts for both curves. A nil
// readout means the pointer is outside that curve's domain.
type Crosshair struct {
	Price      float64  `json:"price"`
	X          float64  `json:"x"`
	Expiration *Readout `json:"expiration,omitempty"`
	Live       *Readout `json:"live,omitempty"`
}

// Frame is one complete set of draw instructions, all in pixel space.
type Frame struct {
	Grid      []GridLine `json:"grid"`
	ZeroLineY *float64   `json:"zero_line_y,omitempty"`
	Paths     []Path     `json:"paths"`
	Markers   []Marker   `json:"markers"`
	Bars      []Bar      `json:"bars"`
	Crosshair *Crosshair `json:"crosshair,omitempty"`
}

// Input bundles everything a frame depends on besides the view itself.
// PointerX, when set, is the pointer's pixel column and produces a crosshair.
type Input struct {
	Width      float64
	Height     float64
	Padding    float64
	Expiration domain.Curve
	Live       domain.Curve
	Strikes    []float64
	Breakevens []float64
	Spot       float64
	Bins       []domain.BinnedLevel
	MaxVolume  float64
	PointerX   *float64
}

// Builder builds frames against a viewport model.
type Builder struct {
	model *viewport.Model
	log   zerolog.Logger
}

// NewBuilder creates a frame builder.
func NewBuilder(model *viewport.Model, log zerolog.Logger) *Builder {
	return &Builder{
		model: model,
		log:   log.With().Str("service", "render").Logger(),
	}
}

// BuildFrame assembles the draw instructions for one repaint. A zero-size
// viewport yields nil: transient zero-size layout passes are skipped rather
// than surfaced, the next resize or data update repaints.
func (b *Builder) BuildFrame(in Input) *Frame {
	if in.Width <= 0 || in.Height <= 0 {
		b.log.Debug().Float64("width", in.Width).Float64("height", in.Height).Msg("Skipping frame for empty viewport")
		return nil
	}
	view := b.model.View()
	frame := &Frame{}

	for _, v := range NumericTicks(view.XMin, view.XMax, xTickTarget) {
		frame.Grid = append(frame.Grid, GridLine{Axis: viewport.AxisX, Value: v, Pixel: b.model.ToPixelX(v, in.Width, in.Padding)})
	}
	for _, v := range NumericTicks(view.YMin, view.YMax, yTickTarget) {
		frame.Grid = append(frame.Grid, GridLine{Axis: viewport.AxisY, Value: v, Pixel: b.model.ToPixelY(v, in.Height, in.Padding)})
	}
	if view.YMin <= 0 && view.YMax >= 0 {
		zero := b.model.ToPixelY(0, in.Height, in.Padding)
		frame.ZeroLineY = &zero
	}

	for _, c := range []struct {
		name  string
		curve domain.Curve
	}{{"expiration", in.Expiration}, {"live", in.Live}} {
		if len(c.curve) == 0 {
			continue
		}
		frame.Paths = append(frame.Paths, Path{Name: c.name, Points: b.polyline(c.curve, in)})
	}

	frame.Markers = b.markers(view, in)
	frame.Bars = b.bars(in)
	if in.PointerX != nil {
		frame.Crosshair = b.crosshair(*in.PointerX, in)
	}
	return frame
}

func (b *Builder) polyline(curve domain.Curve, in Input) []PixelPoint {
	points := make([]PixelPoint, len(curve))
	for i, p := range curve {
		points[i] = PixelPoint{
			X: b.model.ToPixelX(p.X, in.Width, in.Padding),
			Y: b.model.ToPixelY(p.Y, in.Height, in.Padding),
		}
	}
	return points
}

func (b *Builder) markers(view viewport.ViewState, in Input) []Marker {
	var markers []Marker
	add := func(kind MarkerKind, price float64) {
		if math.IsNaN(price) || math.IsInf(price, 0) || price < view.XMin || price > view.XMax {
			return
		}
		markers = append(markers, Marker{Kind: kind, Price: price, X: b.model.ToPixelX(price, in.Width, in.Padding)})
	}
	for _, s := range in.Strikes {
		add(MarkerStrike, s)
	}
	for _, be := range in.Breakevens {
		add(MarkerBreakeven, be)
	}
	add(MarkerSpot, in.Spot)

	// The "current P&L at spot" dot prefers the live valuation and falls back
	// to the expiration payoff outside the live curve's domain.
	for _, curve := range []domain.Curve{in.Live, in.Expiration} {
		if pnl, ok := sampler.ValueAt(curve, in.Spot); ok {
			markers = append(markers, Marker{
				Kind:  MarkerSpotPnL,
				Price: in.Spot,
				X:     b.model.ToPixelX(in.Spot, in.Width, in.Padding),
				Y:     b.model.ToPixelY(pnl, in.Height, in.Padding),
				Value: pnl,
			})
			break
		}
	}
	return markers
}

func (b *Builder) bars(in Input) []Bar {
	if in.MaxVolume <= 0 {
		return nil
	}
	bars := make([]Bar, 0, len(in.Bins))
	for _, bin := range in.Bins {
		bars = append(bars, Bar{
			Price:      bin.Price,
			X:          b.model.ToPixelX(bin.Price, in.Width, in.Padding),
			HeightFrac: bin.Volume / in.MaxVolume,
		})
	}
	return bars
}

func (b *Builder) crosshair(pointerX float64, in Input) *Crosshair {
	price := b.model.ToDataX(pointerX, in.Width, in.Padding)
	ch := &Crosshair{Price: price, X: pointerX}
	if v, ok := sampler.ValueAt(in.Expiration, price); ok {
		ch.Expiration = &Readout{Value: v, Y: b.model.ToPixelY(v, in.Height, in.Padding)}
	}
	if v, ok := sampler.ValueAt(in.Live, price); ok {
		ch.Live = &Readout{Value: v, Y: b.model.ToPixelY(v, in.Height, in.Padding)}
	}
	return ch
}
