package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/randalmurphal/tierpick/complexity"
	"github.com/randalmurphal/tierpick/model"
)

// Environment variables recognized by ApplyEnv.
const (
	EnvPrefix           = "TIERPICK_"
	EnvHaikuMax         = EnvPrefix + "HAIKU_MAX"
	EnvSonnetMax        = EnvPrefix + "SONNET_MAX"
	EnvDefaultModel     = EnvPrefix + "DEFAULT_MODEL"
	EnvCostOptimization = EnvPrefix + "COST_OPTIMIZATION"
)

// LookupFunc looks up an environment variable. os.LookupEnv satisfies it.
type LookupFunc func(key string) (string, bool)

// ApplyEnv overlays environment variables on cfg. Set variables take
// precedence over existing values; empty ones are ignored.
//
// Supported variables:
//   - TIERPICK_HAIKU_MAX: haiku score ceiling (float)
//   - TIERPICK_SONNET_MAX: sonnet score ceiling (float)
//   - TIERPICK_DEFAULT_MODEL: haiku, sonnet or opus (full model IDs accepted)
//   - TIERPICK_COST_OPTIMIZATION: boolean (true/false/1/0)
//
// Values that fail to parse are all reported in the returned error.
// The result is not validated.
func ApplyEnv(cfg complexity.Config, lookup LookupFunc) (complexity.Config, error) {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	cfg = cfg.Clone()

	var errs []error
	get := func(key string) (string, bool) {
		v, ok := lookup(key)
		return v, ok && v != ""
	}

	if v, ok := get(EnvHaikuMax); ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Thresholds.HaikuMax = f
		} else {
			errs = append(errs, envError(EnvHaikuMax, v, err))
		}
	}
	if v, ok := get(EnvSonnetMax); ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Thresholds.SonnetMax = f
		} else {
			errs = append(errs, envError(EnvSonnetMax, v, err))
		}
	}
	if v, ok := get(EnvDefaultModel); ok {
		if m, err := model.ParseModelName(v); err == nil {
			cfg.DefaultModel = m
		} else {
			errs = append(errs, envError(EnvDefaultModel, v, err))
		}
	}
	if v, ok := get(EnvCostOptimization); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.CostOptimization = b
		} else {
			errs = append(errs, envError(EnvCostOptimization, v, err))
		}
	}

	return cfg, errors.Join(errs...)
}

// FromEnv returns the default config with the process environment applied.
func FromEnv() (complexity.Config, error) {
	return ApplyEnv(complexity.DefaultConfig(), os.LookupEnv)
}

func envError(key, value string, err error) error {
	return fmt.Errorf("%s=%q: %w", key, value, err)
}
