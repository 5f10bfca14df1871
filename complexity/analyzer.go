package complexity

import (
	"fmt"
	"maps"
	"math"
	"strings"

	"github.com/randalmurphal/tierpick/model"
	"github.com/randalmurphal/tierpick/tokens"
)

// BoundaryMargin is how far above a threshold a score may sit and still be
// moved to the cheaper tier when cost optimization is on.
const BoundaryMargin = 5.0

// Confidence tuning. Confidence rises linearly from ConfidenceFloor at a
// tier boundary to 1.0 at ConfidenceSpan points away (or the tier's
// half-width, whichever is smaller).
const (
	ConfidenceFloor = 0.5
	ConfidenceSpan  = 20.0
)

// longTaskWords is the word count at which length is called out in the reasoning.
const longTaskWords = 25

// TaskAnalysis is the result of analyzing one task description.
type TaskAnalysis struct {
	ComplexityScore  float64         `json:"complexity_score" yaml:"complexity_score" jsonschema:"minimum=0,maximum=100"`
	RecommendedModel model.ModelName `json:"recommended_model" yaml:"recommended_model" jsonschema:"enum=haiku,enum=sonnet,enum=opus"`
	Reasoning        string          `json:"reasoning" yaml:"reasoning" jsonschema:"minLength=1"`
	Confidence       float64         `json:"confidence" yaml:"confidence" jsonschema:"minimum=0,maximum=1"`
	EstimatedTokens  int             `json:"estimated_tokens" yaml:"estimated_tokens" jsonschema:"minimum=0"`
	EstimatedCost    float64         `json:"estimated_cost" yaml:"estimated_cost" jsonschema:"minimum=0"`
	Signals          Signals         `json:"signals" yaml:"signals"`
}

// Analyzer scores tasks against a fixed, validated Config.
// It holds no mutable state and is safe for concurrent use.
type Analyzer struct {
	cfg       Config
	prices    model.PriceTable
	estimator *tokens.Estimator
}

// NewAnalyzer validates cfg and returns an analyzer bound to a copy of it.
// A config error is returned before any scoring can happen.
func NewAnalyzer(cfg Config) (*Analyzer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.Clone()
	return &Analyzer{
		cfg:       cfg,
		prices:    cfg.Prices(),
		estimator: tokens.NewEstimator(nil),
	}, nil
}

// Analyze validates cfg and analyzes task with it.
func Analyze(task string, cfg Config) (TaskAnalysis, error) {
	a, err := NewAnalyzer(cfg)
	if err != nil {
		return TaskAnalysis{}, err
	}
	return a.Analyze(task), nil
}

// Config returns a copy of the analyzer's configuration.
func (a *Analyzer) Config() Config {
	return a.cfg.Clone()
}

// Analyze scores task and recommends a tier. It is deterministic and
// defined for every string, including the empty one.
func (a *Analyzer) Analyze(task string) TaskAnalysis {
	signals := ExtractSignals(task)

	var c contributions
	score := MinScore
	if !signals.Empty() {
		c = weigh(signals)
		score = c.total()
	}

	natural := a.tierFor(score)
	recommended := natural
	confidence := a.confidence(score, natural)
	switch {
	case isFallback(signals):
		recommended = a.cfg.DefaultModel
		if recommended != natural {
			confidence = ConfidenceFloor
		}
	case a.shouldDowngrade(score, natural):
		recommended = natural.Cheaper()
	}

	est := a.Estimate(task, recommended)
	var cost float64
	if p, ok := a.prices.Lookup(recommended); ok {
		cost = est.Cost(p)
	}

	return TaskAnalysis{
		ComplexityScore:  score,
		RecommendedModel: recommended,
		Reasoning:        a.reasoning(signals, c, score, natural, recommended),
		Confidence:       confidence,
		EstimatedTokens:  est.Total(),
		EstimatedCost:    cost,
		Signals:          signals,
	}
}

// Estimate projects the request size of task on tier m.
func (a *Analyzer) Estimate(task string, m model.ModelName) tokens.Estimate {
	return a.estimator.Estimate(task, m)
}

// Prices returns the effective price table, defaults plus overrides.
func (a *Analyzer) Prices() model.PriceTable {
	return maps.Clone(a.prices)
}

// isFallback reports whether s carries words but nothing to decide on, in
// which case the configured default model is recommended.
func isFallback(s Signals) bool {
	return !s.Empty() && !s.Decisive()
}

// tierFor is the plain threshold lookup.
func (a *Analyzer) tierFor(score float64) model.ModelName {
	t := a.cfg.Thresholds
	switch {
	case score <= t.HaikuMax:
		return model.ModelHaiku
	case score <= t.SonnetMax:
		return model.ModelSonnet
	default:
		return model.ModelOpus
	}
}

// shouldDowngrade reports whether score sits within BoundaryMargin above
// the lower edge of tier and cost optimization is enabled.
func (a *Analyzer) shouldDowngrade(score float64, tier model.ModelName) bool {
	if !a.cfg.CostOptimization || tier == model.ModelHaiku {
		return false
	}
	lo, _ := a.cfg.tierRange(tier)
	return score <= lo+BoundaryMargin
}

// confidence grows with the distance from the nearest tier boundary.
func (a *Analyzer) confidence(score float64, tier model.ModelName) float64 {
	t := a.cfg.Thresholds
	dist := math.Min(math.Abs(score-t.HaikuMax), math.Abs(score-t.SonnetMax))

	lo, hi := a.cfg.tierRange(tier)
	halfWidth := hi - lo
	if tier == model.ModelSonnet {
		halfWidth /= 2
	}
	span := math.Min(ConfidenceSpan, halfWidth)
	if span <= 0 {
		return ConfidenceFloor
	}

	conf := ConfidenceFloor + (1-ConfidenceFloor)*math.Min(dist/span, 1)
	return clamp(conf, ConfidenceFloor, 1)
}

func (a *Analyzer) reasoning(s Signals, c contributions, score float64, natural, recommended model.ModelName) string {
	if s.Empty() {
		return fmt.Sprintf("empty task description; minimal complexity; score %.1f -> %s", score, recommended)
	}

	var parts []string
	if len(s.ComplexKeywords) > 0 {
		parts = append(parts, fmt.Sprintf("complex keywords (%s) +%.0f", strings.Join(s.ComplexKeywords, ", "), c.complex))
	}
	if len(s.StandardKeywords) > 0 {
		parts = append(parts, fmt.Sprintf("standard keywords (%s) +%.0f", strings.Join(s.StandardKeywords, ", "), c.standard))
	}
	if len(s.SimpleKeywords) > 0 {
		parts = append(parts, fmt.Sprintf("simple keywords (%s) -%.0f", strings.Join(s.SimpleKeywords, ", "), c.simple))
	}
	if s.Clauses > 0 {
		parts = append(parts, fmt.Sprintf("multi-part structure (%d %s) +%.0f", s.Clauses, plural(s.Clauses, "clause marker", "clause markers"), c.structure))
	}
	if s.Words >= longTaskWords {
		parts = append(parts, fmt.Sprintf("long description (%d words) +%.1f", s.Words, c.length))
	}
	switch {
	case isFallback(s):
		parts = append(parts, fmt.Sprintf("no decisive keywords; falling back to default model %s", a.cfg.DefaultModel))
	case recommended != natural:
		lo, _ := a.cfg.tierRange(natural)
		parts = append(parts, fmt.Sprintf("cost optimization chose %s over %s within %.0f points of the %g boundary",
			recommended, natural, BoundaryMargin, lo))
	}

	return fmt.Sprintf("%s; score %.1f -> %s", strings.Join(parts, "; "), score, recommended)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
