// Package tierpick recommends the cheapest Claude tier (haiku, sonnet or
// opus) that can handle a task, from its free-text description.
//
// The module is split into small packages that can be used on their own:
//
//   - complexity: signal extraction, 0-100 scoring and tier selection
//   - model: tier names and ordering, pricing, cost aggregation
//   - tokens: character-ratio token estimates and per-tier response sizing
//   - config: JSON/YAML/TOML config files, env overrides, hot reload
//   - batch: concurrent analysis of task lists with a per-tier summary
//   - report: text, JSON and YAML output plus JSON Schema
//   - metrics: Prometheus collectors for recommendations
//
// The tierpick command in cmd/tierpick wires them into a CLI.
//
// # Quick Start
//
//	import "github.com/randalmurphal/tierpick/complexity"
//
//	result, err := complexity.Analyze("Analyze code for bugs", complexity.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	fmt.Println(result.RecommendedModel, result.ComplexityScore) // sonnet 67
//
// Analysis never calls a model API. It is a deterministic heuristic over
// the task text.
package tierpick
