// Package main is the chartcheck tool: it replays a recorded dashboard
// scenario through the chart core and prints what the UI would receive.
// Useful for verifying the numeric contracts (auto-fit bounds, binning
// output, slider mapping) against real position data without the frontend.
package main

import (
	"flag"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/quantfold/optionchart/internal/config"
	"github.com/quantfold/optionchart/internal/domain"
	"github.com/quantfold/optionchart/internal/events"
	"github.com/quantfold/optionchart/internal/modules/binning"
	"github.com/quantfold/optionchart/internal/modules/gestures"
	"github.com/quantfold/optionchart/internal/modules/render"
	"github.com/quantfold/optionchart/internal/modules/sampler"
	"github.com/quantfold/optionchart/internal/modules/timedecay"
	"github.com/quantfold/optionchart/internal/modules/viewport"
	"github.com/quantfold/optionchart/pkg/logger"
)

// Scenario is the YAML input format: the arrays a live dashboard would feed
// the core, plus the viewport size.
type Scenario struct {
	Spot            float64               `yaml:"spot"`
	Strikes         []float64             `yaml:"strikes"`
	Breakevens      []float64             `yaml:"breakevens"`
	Width           float64               `yaml:"width"`
	Height          float64               `yaml:"height"`
	Padding         float64               `yaml:"padding"`
	ExpirationCurve domain.Curve          `yaml:"expiration_curve"`
	LiveCurve       domain.Curve          `yaml:"live_curve"`
	VolumeLevels    []domain.VolumeLevel  `yaml:"volume_levels"`
	Positions       []domain.Position     `yaml:"positions"`
	Binning         *domain.BinningConfig `yaml:"binning"`
}

func main() {
	scenarioPath := flag.String("scenario", "scenario.yaml", "path to the scenario YAML file")
	flag.Parse()

	cfg := config.Load()
	log := logger.New(cfg.LogLevel)

	raw, err := os.ReadFile(*scenarioPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", *scenarioPath).Msg("Failed to read scenario")
	}
	var sc Scenario
	if err := yaml.Unmarshal(raw, &sc); err != nil {
		log.Fatal().Err(err).Msg("Failed to parse scenario")
	}
	if sc.Width <= 0 || sc.Height <= 0 {
		sc.Width, sc.Height = 800, 400
	}
	if len(sc.Breakevens) == 0 {
		sc.Breakevens = sampler.ZeroCrossings(sc.ExpirationCurve)
		log.Info().Floats64("breakevens", sc.Breakevens).Msg("Derived breakevens from expiration curve")
	}
	binCfg := cfg.Binning
	if sc.Binning != nil && sc.Binning.Validate() == nil {
		binCfg = *sc.Binning
	}

	model := viewport.NewModel(log)
	router := gestures.NewRouter(model, sc.Padding, func(ev events.Event) {
		log.Info().Str("type", string(ev.Type)).Interface("data", ev.Data).Msg("Interaction event")
	}, log)

	if router.Resize(sc.Width, sc.Height) {
		view := model.AutoFit(sc.ExpirationCurve, sc.Strikes, sc.Breakevens, sc.Spot)
		log.Info().
			Float64("x_min", view.XMin).Float64("x_max", view.XMax).
			Float64("y_min", view.YMin).Float64("y_max", view.YMax).
			Msg("Auto-fit view")
	}

	capped := binning.CapOutliers(sc.VolumeLevels, binCfg.CappingSigma)
	profile := binning.Bin(capped, binCfg.RowsLayout, binCfg.RowSize)
	log.Info().
		Int("raw_levels", len(sc.VolumeLevels)).
		Int("bins", len(profile.Levels)).
		Float64("bin_size", profile.BinSize).
		Float64("max_volume", profile.MaxVolume).
		Msg("Volume profile")

	if pnl, ok := sampler.ValueAt(sc.LiveCurve, sc.Spot); ok {
		log.Info().Float64("spot", sc.Spot).Float64("pnl", pnl).Msg("Live P&L at spot")
	} else if pnl, ok := sampler.ValueAt(sc.ExpirationCurve, sc.Spot); ok {
		log.Info().Float64("spot", sc.Spot).Float64("pnl", pnl).Msg("Expiration P&L at spot")
	}

	now := time.Now()
	if maxHours := timedecay.MaxHours(sc.Positions, now); maxHours > 0 {
		mapper := timedecay.NewMapper(cfg.DecayExponent)
		markers := mapper.ExpirationMarkers(sc.Positions, maxHours, 0, now)
		log.Info().Float64("max_hours", maxHours).Int("markers", len(markers)).Msg("Time slider scale")
		for _, mk := range markers {
			log.Info().
				Time("expiration", mk.Expiration).
				Float64("hours", mk.Hours).
				Float64("slider", mk.SliderPosition).
				Msg("Expiration marker")
		}
	}

	builder := render.NewBuilder(model, log)
	frame := builder.BuildFrame(render.Input{
		Width:      sc.Width,
		Height:     sc.Height,
		Padding:    sc.Padding,
		Expiration: sc.ExpirationCurve,
		Live:       sc.LiveCurve,
		Strikes:    sc.Strikes,
		Breakevens: sc.Breakevens,
		Spot:       sc.Spot,
		Bins:       profile.Levels,
		MaxVolume:  profile.MaxVolume,
	})
	if frame == nil {
		log.Warn().Msg("Empty viewport, no frame built")
		return
	}
	log.Info().
		Int("grid_lines", len(frame.Grid)).
		Int("paths", len(frame.Paths)).
		Int("markers", len(frame.Markers)).
		Int("bars", len(frame.Bars)).
		Msg("Frame built")
}
