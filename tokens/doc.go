// Package tokens estimates token volume without a model-specific tokenizer.
//
// Counting is based on the rule-of-thumb that approximately 4 characters
// equals 1 token for English text:
//
//	counter := tokens.NewEstimatingCounter()
//	count := counter.Count("Hello, world!") // ~3 tokens
//
// For one-off counting, use the convenience function:
//
//	count := tokens.EstimateTokens("Hello, world!")
//
// # Response Estimates
//
// Estimator projects the full request size for a tier. Heavier tiers are
// assumed to produce longer responses:
//
//	est := tokens.NewEstimator(nil).Estimate(task, model.ModelOpus)
//	est.Total()
package tokens
