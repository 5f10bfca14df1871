package batch

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/tierpick/complexity"
	"github.com/randalmurphal/tierpick/model"
)

var fixtureTasks = []string{
	"List all Python files",
	"Analyze code for security issues",
	"Design system architecture",
	"Quick bug fix",
	"Research database solutions",
}

func newAnalyzer(t *testing.T) *complexity.Analyzer {
	t.Helper()
	a, err := complexity.NewAnalyzer(complexity.DefaultConfig())
	require.NoError(t, err)
	return a
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestReadTasks(t *testing.T) {
	input := "List all Python files\r\n\n  # comment\nAnalyze code for security issues  \n\t\nDesign system architecture"

	tasks, err := ReadTasks(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []string{
		"List all Python files",
		"Analyze code for security issues",
		"Design system architecture",
	}, tasks)
}

func TestReadTasks_Empty(t *testing.T) {
	tasks, err := ReadTasks(strings.NewReader("\n\n# only comments\n"))
	require.NoError(t, err)
	assert.Empty(t, tasks)

	_, err = ReadTasks(nil)
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestReadTaskFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.txt")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(fixtureTasks, "\n")+"\n"), 0o644))

	tasks, err := ReadTaskFile(path)
	require.NoError(t, err)
	assert.Equal(t, fixtureTasks, tasks)

	_, err = ReadTaskFile(filepath.Join(t.TempDir(), "missing.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRunner_Run(t *testing.T) {
	a := newAnalyzer(t)
	r := NewRunner(a, WithWorkers(3), WithLogger(quietLogger()))

	result, err := r.Run(context.Background(), fixtureTasks)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, result.RunID)
	require.Len(t, result.Items, len(fixtureTasks))
	for i, it := range result.Items {
		assert.Equal(t, i, it.Index)
		assert.Equal(t, fixtureTasks[i], it.Task)
		assert.Equal(t, a.Analyze(fixtureTasks[i]), it.Analysis)
	}

	assert.Equal(t, model.ModelHaiku, result.Items[0].Analysis.RecommendedModel)
	assert.Equal(t, model.ModelSonnet, result.Items[1].Analysis.RecommendedModel)
	assert.Equal(t, model.ModelOpus, result.Items[2].Analysis.RecommendedModel)
	assert.Equal(t, model.ModelHaiku, result.Items[3].Analysis.RecommendedModel)
	assert.Equal(t, model.ModelSonnet, result.Items[4].Analysis.RecommendedModel)
}

func TestRunner_Summary(t *testing.T) {
	r := NewRunner(newAnalyzer(t), WithLogger(quietLogger()))

	result, err := r.Run(context.Background(), fixtureTasks)
	require.NoError(t, err)

	s := result.Summary
	assert.Equal(t, len(fixtureTasks), s.Total)
	assert.Equal(t, map[model.ModelName]int{
		model.ModelHaiku:  2,
		model.ModelSonnet: 2,
		model.ModelOpus:   1,
	}, s.ByModel)

	var tokens int
	var cost, score float64
	for _, it := range result.Items {
		tokens += it.Analysis.EstimatedTokens
		cost += it.Analysis.EstimatedCost
		score += it.Analysis.ComplexityScore
	}
	assert.Equal(t, tokens, s.EstimatedTokens)
	assert.InDelta(t, cost, s.EstimatedCost, 1e-9)
	assert.InDelta(t, score/float64(len(fixtureTasks)), s.AverageScore, 1e-9)

	tierTokens := map[model.ModelName]int{}
	tierCost := map[model.ModelName]float64{}
	for _, it := range result.Items {
		tierTokens[it.Analysis.RecommendedModel] += it.Analysis.EstimatedTokens
		tierCost[it.Analysis.RecommendedModel] += it.Analysis.EstimatedCost
	}
	for _, m := range model.Models {
		assert.Equal(t, tierTokens[m], s.TokensByModel[m], "tokens for %s", m)
		assert.InDelta(t, tierCost[m], s.CostByModel[m], 1e-12, "cost for %s", m)
	}
}

func TestRunner_SummaryUsesPricingOverrides(t *testing.T) {
	cfg := complexity.DefaultConfig()
	cfg.Pricing = model.PriceTable{model.ModelOpus: {InputPerMillion: 0, OutputPerMillion: 0}}
	a, err := complexity.NewAnalyzer(cfg)
	require.NoError(t, err)

	result, err := NewRunner(a, WithLogger(quietLogger())).Run(context.Background(), []string{"Design system architecture"})
	require.NoError(t, err)
	assert.Equal(t, 0.0, result.Summary.EstimatedCost)
	assert.Equal(t, 0.0, result.Items[0].Analysis.EstimatedCost)
}

func TestRunner_Empty(t *testing.T) {
	result, err := NewRunner(newAnalyzer(t), WithLogger(quietLogger())).Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, result.Items)
	assert.Equal(t, 0, result.Summary.Total)
	assert.Equal(t, 0.0, result.Summary.AverageScore)
	assert.Len(t, result.Summary.CostByModel, len(model.Models))
}

func TestRunner_KeepsOrderUnderLoad(t *testing.T) {
	a := newAnalyzer(t)
	tasks := make([]string, 500)
	for i := range tasks {
		tasks[i] = fixtureTasks[i%len(fixtureTasks)] + strings.Repeat(" detail", i%7)
	}

	result, err := NewRunner(a, WithWorkers(16), WithLogger(quietLogger())).Run(context.Background(), tasks)
	require.NoError(t, err)
	for i, it := range result.Items {
		require.Equal(t, tasks[i], it.Task)
		require.Equal(t, i, it.Index)
	}
}

func TestRunner_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRunner(newAnalyzer(t), WithLogger(quietLogger())).Run(ctx, fixtureTasks)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunner_NoAnalyzer(t *testing.T) {
	_, err := (&Runner{}).Run(context.Background(), fixtureTasks)
	assert.Error(t, err)
}

type recordingObserver struct {
	mu     sync.Mutex
	models []model.ModelName
}

func (o *recordingObserver) Observe(a complexity.TaskAnalysis) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.models = append(o.models, a.RecommendedModel)
}

func TestRunner_Observer(t *testing.T) {
	obs := &recordingObserver{}
	r := NewRunner(newAnalyzer(t), WithObserver(obs), WithWorkers(2), WithLogger(quietLogger()))

	_, err := r.Run(context.Background(), fixtureTasks)
	require.NoError(t, err)
	assert.ElementsMatch(t, []model.ModelName{
		model.ModelHaiku, model.ModelSonnet, model.ModelOpus, model.ModelHaiku, model.ModelSonnet,
	}, obs.models)
}

func TestRunner_DefaultWorkers(t *testing.T) {
	r := NewRunner(newAnalyzer(t), WithWorkers(0))
	assert.Positive(t, r.workers())
}
