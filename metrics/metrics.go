package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/randalmurphal/tierpick/complexity"
	"github.com/randalmurphal/tierpick/model"
)

// Collector records one observation per analyzed task.
// It implements batch.Observer and is safe for concurrent use.
type Collector struct {
	Recommendations *prometheus.CounterVec
	ComplexityScore prometheus.Histogram
	EstimatedTokens prometheus.Histogram
	EstimatedCost   prometheus.Histogram
	Confidence      prometheus.Histogram
}

// NewCollector creates the tierpick metrics and registers them on reg.
// A nil reg creates unregistered metrics.
func NewCollector(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)

	c := &Collector{
		Recommendations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tierpick_recommendations_total",
				Help: "Total number of tier recommendations",
			},
			[]string{"model"},
		),
		ComplexityScore: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "tierpick_complexity_score",
				Help:    "Complexity score per analyzed task",
				Buckets: prometheus.LinearBuckets(10, 10, 10),
			},
		),
		EstimatedTokens: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "tierpick_estimated_tokens",
				Help:    "Estimated total tokens per analyzed task",
				Buckets: []float64{500, 1000, 2500, 5000, 10000, 50000, 100000},
			},
		),
		EstimatedCost: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "tierpick_estimated_cost_usd",
				Help:    "Estimated cost in USD per analyzed task",
				Buckets: []float64{0.001, 0.01, 0.1, 1, 10},
			},
		),
		Confidence: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "tierpick_confidence",
				Help:    "Confidence of each recommendation",
				Buckets: []float64{0.5, 0.6, 0.7, 0.8, 0.9, 1},
			},
		),
	}

	// Pre-create the tier series so every tier reports zero before its first use.
	for _, m := range model.Models {
		c.Recommendations.WithLabelValues(m.String())
	}
	return c
}

// Observe records a single analysis.
func (c *Collector) Observe(a complexity.TaskAnalysis) {
	c.Recommendations.WithLabelValues(a.RecommendedModel.String()).Inc()
	c.ComplexityScore.Observe(a.ComplexityScore)
	c.EstimatedTokens.Observe(float64(a.EstimatedTokens))
	c.EstimatedCost.Observe(a.EstimatedCost)
	c.Confidence.Observe(a.Confidence)
}
