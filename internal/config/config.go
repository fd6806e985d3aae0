// Package config provides configuration management functionality.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/quantfold/optionchart/internal/domain"
	"github.com/quantfold/optionchart/internal/modules/timedecay"
)

// Defaults applied when the environment leaves a value unset or unparsable.
const (
	DefaultLogLevel     = "info"
	DefaultCappingSigma = 3.0
	DefaultRowSize      = 50.0
)

// Config holds chart core configuration
type Config struct {
	LogLevel      string
	Binning       domain.BinningConfig
	DecayExponent float64
}

// Load reads configuration from environment variables. A .env file is
// loaded first when present. Invalid values fall back to defaults rather
// than failing: the chart must come up even with a broken environment.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel: getEnv("CHART_LOG_LEVEL", DefaultLogLevel),
		Binning: domain.BinningConfig{
			CappingSigma: getEnvFloat("CHART_CAPPING_SIGMA", DefaultCappingSigma),
			RowsLayout:   domain.ParseRowsLayout(getEnv("CHART_ROWS_LAYOUT", string(domain.RowsLayoutNumberOfRows))),
			RowSize:      getEnvFloat("CHART_ROW_SIZE", DefaultRowSize),
		},
		DecayExponent: getEnvFloat("CHART_DECAY_EXPONENT", timedecay.DefaultExponent),
	}

	if cfg.Binning.Validate() != nil {
		cfg.Binning = domain.BinningConfig{
			CappingSigma: DefaultCappingSigma,
			RowsLayout:   domain.RowsLayoutNumberOfRows,
			RowSize:      DefaultRowSize,
		}
	}
	if cfg.DecayExponent <= 0 {
		cfg.DecayExponent = timedecay.DefaultExponent
	}
	return cfg
}

// getEnv retrieves an environment variable value, returning a fallback if
// the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getEnvFloat retrieves a float environment variable, returning a fallback
// if the variable is not set or does not parse.
func getEnvFloat(key string, fallback float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return f
}
