package model

import (
	"fmt"
	"strings"
)

// ModelName represents a normalized model family name.
// The three Claude families double as the capability tiers a task can be routed to.
type ModelName string

// Claude model family constants, in ascending order of capability and cost.
const (
	ModelHaiku  ModelName = "haiku"
	ModelSonnet ModelName = "sonnet"
	ModelOpus   ModelName = "opus"
)

// Models lists every tier from cheapest to most capable.
var Models = []ModelName{ModelHaiku, ModelSonnet, ModelOpus}

// Valid returns true if m is one of the three tier names.
func (m ModelName) Valid() bool {
	switch m {
	case ModelHaiku, ModelSonnet, ModelOpus:
		return true
	default:
		return false
	}
}

// String returns the tier name.
func (m ModelName) String() string {
	return string(m)
}

// NormalizeModelName converts a full model identifier to its family alias.
// For example, "claude-sonnet-4-20250514" becomes "sonnet" and
// "claude-3-5-haiku-latest" becomes "haiku". Matching is case-insensitive.
// Names that do not contain a known family are returned trimmed and lowercased.
func NormalizeModelName(name string) ModelName {
	lower := strings.ToLower(strings.TrimSpace(name))
	switch ModelName(lower) {
	case ModelOpus, ModelSonnet, ModelHaiku:
		return ModelName(lower)
	}

	switch {
	case strings.Contains(lower, "opus"):
		return ModelOpus
	case strings.Contains(lower, "sonnet"):
		return ModelSonnet
	case strings.Contains(lower, "haiku"):
		return ModelHaiku
	}
	return ModelName(lower)
}

// ParseModelName normalizes name and rejects anything that is not a tier.
func ParseModelName(name string) (ModelName, error) {
	m := NormalizeModelName(name)
	if !m.Valid() {
		return "", fmt.Errorf("unknown model %q: must be one of haiku, sonnet, opus", name)
	}
	return m, nil
}
