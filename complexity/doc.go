// Package complexity scores free-text task descriptions and recommends the
// cheapest Claude tier likely to handle them.
//
// Analysis runs in three stages:
//
//  1. Signal extraction: word count, keyword matches from three named
//     sets (SimpleKeywords, StandardKeywords, ComplexKeywords) and clause
//     markers that indicate a multi-part task.
//  2. Score aggregation: a weighted, saturating sum around BaseScore,
//     clamped to 0-100. The score depends on the text only.
//  3. Tier selection: threshold lookup with an optional cost-optimization
//     bias near boundaries, plus confidence, token and cost estimates and a
//     human-readable reasoning string. A task with no decisive signal is
//     given the configured default model instead.
//
// # Usage
//
//	a, err := complexity.NewAnalyzer(complexity.DefaultConfig())
//	if err != nil {
//	    return err // *ConfigError, before any scoring
//	}
//	result := a.Analyze("Design scalable microservices architecture")
//	result.RecommendedModel // model.ModelOpus
//
// The analyzer performs no I/O, holds no mutable state, and may be shared
// across goroutines.
package complexity
