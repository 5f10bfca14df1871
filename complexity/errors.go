package complexity

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig indicates a configuration that cannot be used for analysis.
var ErrInvalidConfig = errors.New("invalid config")

// ConfigError describes one violated configuration rule.
type ConfigError struct {
	Field  string // Config path, e.g. "thresholds.haiku_max"
	Reason string // What is wrong and how to fix it
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%v: %s", ErrInvalidConfig, e.Reason)
	}
	return fmt.Sprintf("%v: %s: %s", ErrInvalidConfig, e.Field, e.Reason)
}

// Unwrap returns ErrInvalidConfig for errors.Is support.
func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfig
}

// IsConfigError reports whether err is (or wraps) a configuration error.
func IsConfigError(err error) bool {
	return errors.Is(err, ErrInvalidConfig)
}
