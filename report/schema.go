package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/invopop/jsonschema"

	"github.com/randalmurphal/tierpick/batch"
	"github.com/randalmurphal/tierpick/complexity"
)

// ErrUnknownSchema is returned by SchemaFor for names it does not know.
var ErrUnknownSchema = errors.New("unknown schema")

// schemaTargets maps schema names to sample values of their types.
var schemaTargets = map[string]any{
	"analysis": complexity.TaskAnalysis{},
	"config":   complexity.Config{},
	"result":   batch.Result{},
}

// SchemaNames lists the names SchemaFor accepts, sorted.
func SchemaNames() []string {
	names := make([]string, 0, len(schemaTargets))
	for name := range schemaTargets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// SchemaFor returns the JSON Schema for a named type.
func SchemaFor(name string) ([]byte, error) {
	v, ok := schemaTargets[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w %q: must be one of %s", ErrUnknownSchema, name, strings.Join(SchemaNames(), ", "))
	}
	return Schema(v)
}

// Schema reflects v into an indented JSON Schema document.
func Schema(v any) ([]byte, error) {
	r := &jsonschema.Reflector{
		ExpandedStruct: true,
		Mapper:         mapType,
	}
	s := r.Reflect(v)

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	return data, nil
}

// mapType overrides types whose JSON form differs from their Go shape.
func mapType(t reflect.Type) *jsonschema.Schema {
	if t == reflect.TypeOf(uuid.UUID{}) {
		return &jsonschema.Schema{Type: "string", Format: "uuid"}
	}
	return nil
}
