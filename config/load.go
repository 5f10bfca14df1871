package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/randalmurphal/tierpick/complexity"
	"github.com/randalmurphal/tierpick/model"
)

// ErrUnsupportedFormat is returned for config files whose format is unknown.
var ErrUnsupportedFormat = errors.New("unsupported config format")

// Format identifies a config file encoding.
type Format string

// Supported config formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFromPath picks a format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("%w: %q (want .json, .yaml, .yml or .toml)", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Load reads, decodes and validates the config file at path.
func Load(path string) (complexity.Config, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return complexity.Config{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return complexity.Config{}, fmt.Errorf("read config: %w", err)
	}

	cfg, err := Parse(data, format)
	if err != nil {
		return complexity.Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes data over complexity.DefaultConfig and validates the result.
// Unknown keys are rejected. Model names are normalized, so
// "claude-3-5-haiku-latest" is accepted as "haiku".
func Parse(data []byte, format Format) (complexity.Config, error) {
	cfg := complexity.DefaultConfig()

	if err := decode(data, format, &cfg); err != nil {
		return complexity.Config{}, err
	}
	normalize(&cfg)

	if err := cfg.Validate(); err != nil {
		return complexity.Config{}, err
	}
	return cfg, nil
}

func decode(data []byte, format Format, cfg *complexity.Config) error {
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(cfg); err != nil {
			return fmt.Errorf("parse json config: %w", err)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		// An empty document decodes to io.EOF and keeps the defaults.
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("parse yaml config: %w", err)
		}
	case FormatTOML:
		md, err := toml.Decode(string(data), cfg)
		if err != nil {
			return fmt.Errorf("parse toml config: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return fmt.Errorf("parse toml config: unknown key %q", undecoded[0].String())
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return nil
}

func normalize(cfg *complexity.Config) {
	if cfg.DefaultModel != "" {
		cfg.DefaultModel = model.NormalizeModelName(string(cfg.DefaultModel))
	}
	if len(cfg.Pricing) == 0 {
		return
	}
	prices := make(model.PriceTable, len(cfg.Pricing))
	for name, p := range cfg.Pricing {
		prices[model.NormalizeModelName(string(name))] = p
	}
	cfg.Pricing = prices
}
