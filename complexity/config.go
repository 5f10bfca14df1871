package complexity

import (
	"errors"
	"fmt"
	"maps"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/randalmurphal/tierpick/model"
)

// Default threshold values.
const (
	DefaultHaikuMax  = 30.0
	DefaultSonnetMax = 70.0
)

// Thresholds are the score ceilings of the two cheaper tiers.
// Scores above SonnetMax go to opus.
type Thresholds struct {
	HaikuMax  float64 `json:"haiku_max" yaml:"haiku_max" toml:"haiku_max" mapstructure:"haiku_max" validate:"gte=0,lte=100" jsonschema:"minimum=0,maximum=100,default=30"`
	SonnetMax float64 `json:"sonnet_max" yaml:"sonnet_max" toml:"sonnet_max" mapstructure:"sonnet_max" validate:"gte=0,lte=100" jsonschema:"minimum=0,maximum=100,default=70"`
}

// Config controls how scores map to tiers. It is passed by value and
// never modified by the analyzer.
type Config struct {
	// Thresholds are the tier ceilings on the 0-100 score scale.
	Thresholds Thresholds `json:"thresholds" yaml:"thresholds" toml:"thresholds" mapstructure:"thresholds"`

	// DefaultModel is the tier recommended for a task with no keyword or
	// structural signal. It never changes the score.
	DefaultModel model.ModelName `json:"default_model" yaml:"default_model" toml:"default_model" mapstructure:"default_model" validate:"oneof=haiku sonnet opus" jsonschema:"enum=haiku,enum=sonnet,enum=opus,default=sonnet"`

	// CostOptimization moves scores just above a threshold down to the
	// cheaper adjacent tier.
	CostOptimization bool `json:"cost_optimization" yaml:"cost_optimization" toml:"cost_optimization" mapstructure:"cost_optimization"`

	// Pricing overrides the built-in per-million-token rates per tier.
	// Optional.
	Pricing model.PriceTable `json:"pricing,omitempty" yaml:"pricing,omitempty" toml:"pricing,omitempty" mapstructure:"pricing" validate:"omitempty,dive,keys,oneof=haiku sonnet opus,endkeys"`
}

// DefaultConfig returns a Config with the standard thresholds:
// haiku up to 30, sonnet up to 70, sonnet as default, cost optimization on.
func DefaultConfig() Config {
	return Config{
		Thresholds: Thresholds{
			HaikuMax:  DefaultHaikuMax,
			SonnetMax: DefaultSonnetMax,
		},
		DefaultModel:     model.ModelSonnet,
		CostOptimization: true,
	}
}

// Clone returns a deep copy of the config.
func (c Config) Clone() Config {
	if c.Pricing != nil {
		c.Pricing = maps.Clone(c.Pricing)
	}
	return c
}

// Prices returns the effective price table: defaults with overrides applied.
func (c Config) Prices() model.PriceTable {
	return model.DefaultPrices().Merge(c.Pricing)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks every rule and returns all violations joined together.
// Each violation is a *ConfigError wrapping ErrInvalidConfig.
func (c Config) Validate() error {
	var errs []error

	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return &ConfigError{Reason: err.Error()}
		}
		for _, fe := range fieldErrs {
			errs = append(errs, fieldError(fe))
		}
	}

	t := c.Thresholds
	if !(t.HaikuMax < t.SonnetMax) {
		errs = append(errs, &ConfigError{
			Field: "thresholds",
			Reason: fmt.Sprintf("haiku_max (%g) must be less than sonnet_max (%g); lower haiku_max or raise sonnet_max",
				t.HaikuMax, t.SonnetMax),
		})
	}

	return errors.Join(errs...)
}

func fieldError(fe validator.FieldError) *ConfigError {
	field := strings.TrimPrefix(fe.Namespace(), "Config.")
	var reason string
	switch fe.Tag() {
	case "gte":
		reason = fmt.Sprintf("must be >= %s, got %v", fe.Param(), fe.Value())
	case "lte":
		reason = fmt.Sprintf("must be <= %s, got %v", fe.Param(), fe.Value())
	case "oneof":
		reason = fmt.Sprintf("must be one of %s, got %q", strings.ReplaceAll(fe.Param(), " ", ", "), fmt.Sprint(fe.Value()))
	default:
		reason = fmt.Sprintf("failed %q rule", fe.Tag())
	}
	return &ConfigError{Field: field, Reason: reason}
}

// tierRange returns the score interval (lo, hi] covered by m.
// Haiku's interval is closed at zero.
func (c Config) tierRange(m model.ModelName) (lo, hi float64) {
	t := c.Thresholds
	switch m {
	case model.ModelHaiku:
		return MinScore, t.HaikuMax
	case model.ModelOpus:
		return t.SonnetMax, MaxScore
	default:
		return t.HaikuMax, t.SonnetMax
	}
}
