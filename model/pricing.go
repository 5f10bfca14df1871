package model

import "maps"

// Pricing holds per-million-token pricing for a model.
type Pricing struct {
	InputPerMillion  float64 `json:"input_per_million" yaml:"input_per_million" toml:"input_per_million" validate:"gte=0"`
	OutputPerMillion float64 `json:"output_per_million" yaml:"output_per_million" toml:"output_per_million" validate:"gte=0"`
}

// Cost returns the price of the given input and output token counts.
func (p Pricing) Cost(input, output int) float64 {
	inputCost := float64(input) / 1_000_000 * p.InputPerMillion
	outputCost := float64(output) / 1_000_000 * p.OutputPerMillion
	return inputCost + outputCost
}

// PriceTable maps tiers to their pricing.
type PriceTable map[ModelName]Pricing

var defaultPrices = PriceTable{
	ModelOpus:   {InputPerMillion: 15.0, OutputPerMillion: 75.0},
	ModelSonnet: {InputPerMillion: 3.0, OutputPerMillion: 15.0},
	ModelHaiku:  {InputPerMillion: 0.25, OutputPerMillion: 1.25},
}

// DefaultPrices returns a copy of the built-in Claude pricing (USD, as of 2025).
func DefaultPrices() PriceTable {
	return maps.Clone(defaultPrices)
}

// Lookup returns the pricing for m, falling back to the built-in table
// when t has no entry for it.
func (t PriceTable) Lookup(m ModelName) (Pricing, bool) {
	if p, ok := t[m]; ok {
		return p, true
	}
	p, ok := defaultPrices[m]
	return p, ok
}

// Merge returns a new table with overrides applied on top of t.
func (t PriceTable) Merge(overrides PriceTable) PriceTable {
	result := make(PriceTable, len(t)+len(overrides))
	maps.Copy(result, t)
	maps.Copy(result, overrides)
	return result
}
