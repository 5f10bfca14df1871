package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/randalmurphal/tierpick/complexity"
	"github.com/randalmurphal/tierpick/model"
)

// Observer receives every analysis a Runner produces. Implementations
// must be safe for concurrent use; metrics.Collector is one.
type Observer interface {
	Observe(complexity.TaskAnalysis)
}

// Item is one analyzed task.
type Item struct {
	Index    int                     `json:"index" yaml:"index"`
	Task     string                  `json:"task" yaml:"task"`
	Analysis complexity.TaskAnalysis `json:"analysis" yaml:"analysis"`
}

// Summary aggregates a batch.
// The per-tier maps always hold an entry for every tier.
type Summary struct {
	Total           int                         `json:"total" yaml:"total"`
	ByModel         map[model.ModelName]int     `json:"by_model" yaml:"by_model"`
	TokensByModel   map[model.ModelName]int     `json:"tokens_by_model" yaml:"tokens_by_model"`
	CostByModel     map[model.ModelName]float64 `json:"cost_by_model" yaml:"cost_by_model"`
	EstimatedTokens int                         `json:"estimated_tokens" yaml:"estimated_tokens"`
	EstimatedCost   float64                     `json:"estimated_cost" yaml:"estimated_cost"`
	AverageScore    float64                     `json:"average_score" yaml:"average_score"`
}

// Result is the outcome of a batch run. Items are in input order.
type Result struct {
	RunID   uuid.UUID `json:"run_id" yaml:"run_id"`
	Items   []Item    `json:"items" yaml:"items"`
	Summary Summary   `json:"summary" yaml:"summary"`
}

// Runner analyzes task lists with a bounded number of goroutines.
type Runner struct {
	Analyzer *complexity.Analyzer
	Workers  int
	Logger   *slog.Logger
	Observer Observer
}

// Option configures a Runner.
type Option func(*Runner)

// WithWorkers sets the worker limit. Values below one use GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(r *Runner) {
		r.Workers = n
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(r *Runner) {
		r.Logger = l
	}
}

// WithObserver sets an observer notified of every analysis.
func WithObserver(o Observer) Option {
	return func(r *Runner) {
		r.Observer = o
	}
}

// NewRunner creates a runner for a.
func NewRunner(a *complexity.Analyzer, opts ...Option) *Runner {
	r := &Runner{Analyzer: a}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Runner) workers() int {
	if r.Workers > 0 {
		return r.Workers
	}
	return runtime.GOMAXPROCS(0)
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.Default()
}

// Run analyzes tasks concurrently. Cancelling ctx stops the run between
// tasks and returns the context error. An empty task list yields an empty
// result.
func (r *Runner) Run(ctx context.Context, tasks []string) (*Result, error) {
	if r.Analyzer == nil {
		return nil, errors.New("batch: runner has no analyzer")
	}

	runID := uuid.New()
	log := r.logger().With(slog.String("run_id", runID.String()))
	start := time.Now()
	log.Debug("batch started", slog.Int("tasks", len(tasks)), slog.Int("workers", r.workers()))

	items := make([]Item, len(tasks))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers())

	for i, task := range tasks {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			analysis := r.Analyzer.Analyze(task)
			items[i] = Item{Index: i, Task: task, Analysis: analysis}
			if r.Observer != nil {
				r.Observer.Observe(analysis)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("batch %s: %w", runID, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("batch %s: %w", runID, err)
	}

	result := &Result{
		RunID:   runID,
		Items:   items,
		Summary: r.summarize(items),
	}

	log.Info("batch complete",
		slog.Int("tasks", result.Summary.Total),
		slog.Int("haiku", result.Summary.ByModel[model.ModelHaiku]),
		slog.Int("sonnet", result.Summary.ByModel[model.ModelSonnet]),
		slog.Int("opus", result.Summary.ByModel[model.ModelOpus]),
		slog.Float64("estimated_cost", result.Summary.EstimatedCost),
		slog.Duration("elapsed", time.Since(start)),
	)
	return result, nil
}

func (r *Runner) summarize(items []Item) Summary {
	tracker := model.NewCostTracker(r.Analyzer.Prices())

	var scores float64
	for _, it := range items {
		m := it.Analysis.RecommendedModel
		est := r.Analyzer.Estimate(it.Task, m)
		tracker.Record(m, est.Input, est.Output)
		scores += it.Analysis.ComplexityScore
	}

	usage := tracker.Summary()
	costs := tracker.EstimatedCostByModel()

	s := Summary{
		Total:           len(items),
		ByModel:         make(map[model.ModelName]int, len(model.Models)),
		TokensByModel:   make(map[model.ModelName]int, len(model.Models)),
		CostByModel:     make(map[model.ModelName]float64, len(model.Models)),
		EstimatedTokens: tracker.TotalUsage().TotalTokens(),
		EstimatedCost:   tracker.EstimatedCost(),
	}
	for _, m := range model.Models {
		s.ByModel[m] = usage[m].Requests
		s.TokensByModel[m] = usage[m].TotalTokens()
		s.CostByModel[m] = costs[m]
	}
	if len(items) > 0 {
		s.AverageScore = scores / float64(len(items))
	}
	return s
}
