package complexity

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/tierpick/model"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 30.0, cfg.Thresholds.HaikuMax)
	assert.Equal(t, 70.0, cfg.Thresholds.SonnetMax)
	assert.Equal(t, model.ModelSonnet, cfg.DefaultModel)
	assert.True(t, cfg.CostOptimization)
	assert.Nil(t, cfg.Pricing)
	assert.NoError(t, cfg.Validate())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		field   string
		message string
	}{
		{
			name:    "inverted thresholds",
			mutate:  func(c *Config) { c.Thresholds = Thresholds{HaikuMax: 80, SonnetMax: 30} },
			field:   "thresholds",
			message: "haiku_max (80) must be less than sonnet_max (30)",
		},
		{
			name:    "equal thresholds",
			mutate:  func(c *Config) { c.Thresholds = Thresholds{HaikuMax: 50, SonnetMax: 50} },
			field:   "thresholds",
			message: "must be less than",
		},
		{
			name:    "negative haiku_max",
			mutate:  func(c *Config) { c.Thresholds.HaikuMax = -1 },
			field:   "thresholds.haiku_max",
			message: "must be >= 0",
		},
		{
			name:    "sonnet_max above scale",
			mutate:  func(c *Config) { c.Thresholds.SonnetMax = 150 },
			field:   "thresholds.sonnet_max",
			message: "must be <= 100",
		},
		{
			name:    "NaN threshold",
			mutate:  func(c *Config) { c.Thresholds.HaikuMax = math.NaN() },
			field:   "thresholds",
			message: "must be less than",
		},
		{
			name:    "unknown default model",
			mutate:  func(c *Config) { c.DefaultModel = "gpt-4" },
			field:   "default_model",
			message: "must be one of haiku, sonnet, opus",
		},
		{
			name:    "empty default model",
			mutate:  func(c *Config) { c.DefaultModel = "" },
			field:   "default_model",
			message: "must be one of",
		},
		{
			name:    "unknown pricing tier",
			mutate:  func(c *Config) { c.Pricing = model.PriceTable{"gpt-4": {InputPerMillion: 1}} },
			field:   "pricing",
			message: "must be one of",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidConfig)
			assert.True(t, IsConfigError(err))
			assert.Contains(t, err.Error(), tt.message)

			var cfgErr *ConfigError
			require.True(t, errors.As(err, &cfgErr))
			found := false
			for _, e := range flatten(err) {
				var ce *ConfigError
				if errors.As(e, &ce) && strings.HasPrefix(ce.Field, tt.field) {
					found = true
				}
			}
			assert.True(t, found, "no ConfigError for field %q in %v", tt.field, err)

			_, err = NewAnalyzer(cfg)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestConfig_ValidateCollectsAll(t *testing.T) {
	cfg := Config{
		Thresholds:   Thresholds{HaikuMax: -5, SonnetMax: 200},
		DefaultModel: "nope",
	}

	errs := flatten(cfg.Validate())
	assert.Len(t, errs, 3)
}

func TestConfig_ValidBoundaries(t *testing.T) {
	valid := []Config{
		{Thresholds: Thresholds{HaikuMax: 0, SonnetMax: 100}, DefaultModel: model.ModelSonnet},
		{Thresholds: Thresholds{HaikuMax: 30, SonnetMax: 100}, DefaultModel: model.ModelOpus},
		{Thresholds: Thresholds{HaikuMax: 0, SonnetMax: 0.5}, DefaultModel: model.ModelOpus},
		{Thresholds: Thresholds{HaikuMax: 99, SonnetMax: 99.5}, DefaultModel: model.ModelHaiku},
		{
			Thresholds:   Thresholds{HaikuMax: 30, SonnetMax: 70},
			DefaultModel: model.ModelSonnet,
			Pricing:      model.PriceTable{model.ModelOpus: {InputPerMillion: 10, OutputPerMillion: 50}},
		},
	}

	for _, cfg := range valid {
		assert.NoError(t, cfg.Validate(), "%+v", cfg)
	}
}

func TestConfig_Prices(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, model.DefaultPrices(), cfg.Prices())

	cfg.Pricing = model.PriceTable{model.ModelOpus: {InputPerMillion: 10, OutputPerMillion: 50}}
	prices := cfg.Prices()
	assert.Equal(t, 10.0, prices[model.ModelOpus].InputPerMillion)
	assert.Equal(t, 3.0, prices[model.ModelSonnet].InputPerMillion)
}

func TestConfigError_Error(t *testing.T) {
	withField := &ConfigError{Field: "thresholds.haiku_max", Reason: "must be >= 0"}
	assert.Equal(t, "invalid config: thresholds.haiku_max: must be >= 0", withField.Error())

	bare := &ConfigError{Reason: "broken"}
	assert.Equal(t, "invalid config: broken", bare.Error())

	assert.False(t, IsConfigError(errors.New("other")))
}

// flatten unwraps an errors.Join tree into its leaves.
func flatten(err error) []error {
	if err == nil {
		return nil
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var out []error
		for _, e := range joined.Unwrap() {
			out = append(out, flatten(e)...)
		}
		return out
	}
	return []error{err}
}
