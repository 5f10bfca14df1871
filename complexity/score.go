package complexity

import "math"

// Score bounds.
const (
	MinScore = 0.0
	MaxScore = 100.0
)

// BaseScore is where every non-empty task starts before its signals are
// weighed.
const BaseScore = 50.0

// Signal weights. Each signal saturates so one kind of evidence cannot
// dominate the score on its own.
const (
	// LengthWeight is the most the word count can add.
	LengthWeight = 15.0
	// LengthSaturationWords is the word count at which LengthWeight is reached.
	LengthSaturationWords = 60

	// SimpleKeywordWeight is subtracted per simple keyword, up to MaxSimpleMatches.
	SimpleKeywordWeight = 25.0
	MaxSimpleMatches    = 2

	// StandardKeywordWeight is added per standard keyword, up to MaxStandardMatches.
	StandardKeywordWeight = 8.0
	MaxStandardMatches    = 2

	// ComplexKeywordWeight is added per complex keyword, up to MaxComplexMatches.
	ComplexKeywordWeight = 15.0
	MaxComplexMatches    = 3

	// ClauseWeight is added per clause marker, up to MaxClauses.
	ClauseWeight = 5.0
	MaxClauses   = 3
)

// contributions breaks a score down by signal.
type contributions struct {
	base      float64
	length    float64
	simple    float64 // subtracted
	standard  float64
	complex   float64
	structure float64
}

func weigh(s Signals) contributions {
	return contributions{
		base:      BaseScore,
		length:    LengthWeight * float64(min(s.Words, LengthSaturationWords)) / LengthSaturationWords,
		simple:    SimpleKeywordWeight * float64(min(len(s.SimpleKeywords), MaxSimpleMatches)),
		standard:  StandardKeywordWeight * float64(min(len(s.StandardKeywords), MaxStandardMatches)),
		complex:   ComplexKeywordWeight * float64(min(len(s.ComplexKeywords), MaxComplexMatches)),
		structure: ClauseWeight * float64(min(s.Clauses, MaxClauses)),
	}
}

// total sums the contributions, clamps to [MinScore, MaxScore] and rounds
// to two decimals.
func (c contributions) total() float64 {
	raw := c.base + c.length + c.standard + c.complex + c.structure - c.simple
	return round2(clamp(raw, MinScore, MaxScore))
}

// Score aggregates signals into a 0-100 complexity score. It depends on
// the text alone. An empty task scores MinScore.
func Score(s Signals) float64 {
	if s.Empty() {
		return MinScore
	}
	return weigh(s).total()
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
