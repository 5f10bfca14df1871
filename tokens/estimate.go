package tokens

import "github.com/randalmurphal/tierpick/model"

// DefaultContextOverhead approximates the system prompt and tool context that
// accompany every request, in tokens.
const DefaultContextOverhead = 500

// outputMultipliers scale the prompt size into an expected response size.
// Heavier tiers are assumed to reason longer and answer at greater length.
var outputMultipliers = map[model.ModelName]int{
	model.ModelHaiku:  2,
	model.ModelSonnet: 4,
	model.ModelOpus:   8,
}

// OutputMultiplier returns the response-size multiplier for m.
// Unknown names use the sonnet multiplier.
func OutputMultiplier(m model.ModelName) int {
	if mult, ok := outputMultipliers[m]; ok {
		return mult
	}
	return outputMultipliers[model.ModelSonnet]
}

// Estimate is the projected token volume of one request.
type Estimate struct {
	Input  int `json:"input" yaml:"input"`
	Output int `json:"output" yaml:"output"`
}

// Total returns input plus output tokens.
func (e Estimate) Total() int {
	return e.Input + e.Output
}

// Cost prices the estimate with p.
func (e Estimate) Cost(p model.Pricing) float64 {
	return p.Cost(e.Input, e.Output)
}

// Estimator projects request size for a task sent to a given tier.
type Estimator struct {
	counter  Counter
	overhead int
}

// NewEstimator creates an estimator using counter for prompt sizing.
// A nil counter uses the default EstimatingCounter.
func NewEstimator(counter Counter) *Estimator {
	if counter == nil {
		counter = NewEstimatingCounter()
	}
	return &Estimator{
		counter:  counter,
		overhead: DefaultContextOverhead,
	}
}

// Estimate returns the projected input and output tokens for text on tier m.
// Output is (input + overhead) scaled by the tier's multiplier, so both
// values are non-negative for every input.
func (e *Estimator) Estimate(text string, m model.ModelName) Estimate {
	input := e.counter.Count(text)
	if input < 0 {
		input = 0
	}
	return Estimate{
		Input:  input,
		Output: (input + e.overhead) * OutputMultiplier(m),
	}
}
