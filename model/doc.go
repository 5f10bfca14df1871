// Package model names the three Claude capability tiers and prices them.
//
// The tiers, cheapest first:
//   - haiku: listing, lookups, simple transforms
//   - sonnet: implementation, review, general tasks
//   - opus: architecture, planning, multi-step design
//
// # Names
//
//	m, err := model.ParseModelName("claude-sonnet-4-20250514") // model.ModelSonnet
//	m.Cheaper()                                               // model.ModelHaiku
//
// # Pricing
//
//	prices := model.DefaultPrices()
//	cost := prices[model.ModelSonnet].Cost(1000, 500) // input, output tokens
//
// # Cost Tracking
//
//	tracker := model.NewCostTracker(nil)
//	tracker.Record(model.ModelSonnet, 1000, 500)
//	total := tracker.EstimatedCost()
package model
