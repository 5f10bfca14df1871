package model

import "sync"

// Usage tracks estimated token usage for a model.
type Usage struct {
	InputTokens  int
	OutputTokens int
	Requests     int
}

// Add adds the given usage to this usage.
func (u *Usage) Add(other Usage) {
	u.InputTokens += other.InputTokens
	u.OutputTokens += other.OutputTokens
	u.Requests += other.Requests
}

// TotalTokens returns the total tokens used.
func (u Usage) TotalTokens() int {
	return u.InputTokens + u.OutputTokens
}

// CostTracker aggregates estimated token usage and cost across tiers.
// It is safe for concurrent use.
type CostTracker struct {
	mu     sync.RWMutex
	prices PriceTable
	totals map[ModelName]Usage
}

// NewCostTracker creates a tracker priced with prices.
// A nil table uses DefaultPrices.
func NewCostTracker(prices PriceTable) *CostTracker {
	if prices == nil {
		prices = DefaultPrices()
	}
	return &CostTracker{
		prices: prices,
		totals: make(map[ModelName]Usage),
	}
}

// Record adds one request with the given input and output tokens.
func (t *CostTracker) Record(model ModelName, input, output int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	u := t.totals[model]
	u.Add(Usage{InputTokens: input, OutputTokens: output, Requests: 1})
	t.totals[model] = u
}

// Usage returns the usage for a specific model.
func (t *CostTracker) Usage(model ModelName) Usage {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.totals[model]
}

// Summary returns a copy of all usage totals.
func (t *CostTracker) Summary() map[ModelName]Usage {
	t.mu.RLock()
	defer t.mu.RUnlock()

	result := make(map[ModelName]Usage, len(t.totals))
	for k, v := range t.totals {
		result[k] = v
	}
	return result
}

// TotalUsage returns aggregated usage across all models.
func (t *CostTracker) TotalUsage() Usage {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var total Usage
	for _, u := range t.totals {
		total.Add(u)
	}
	return total
}

// EstimatedCost calculates the estimated cost of everything recorded.
func (t *CostTracker) EstimatedCost() float64 {
	var total float64
	for _, cost := range t.EstimatedCostByModel() {
		total += cost
	}
	return total
}

// EstimatedCostByModel returns the estimated cost for each model.
// Models without pricing are omitted.
func (t *CostTracker) EstimatedCostByModel() map[ModelName]float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()

	result := make(map[ModelName]float64, len(t.totals))
	for model, usage := range t.totals {
		prices, ok := t.prices.Lookup(model)
		if !ok {
			continue
		}
		result[model] = prices.Cost(usage.InputTokens, usage.OutputTokens)
	}
	return result
}
