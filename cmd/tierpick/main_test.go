package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/tierpick/complexity"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestAnalyze_Args(t *testing.T) {
	out, err := run(t, "", "analyze", "--no-color", "Design", "scalable", "microservices", "architecture")
	require.NoError(t, err)
	assert.Contains(t, out, "Model:      opus")
}

func TestAnalyze_StdinJSON(t *testing.T) {
	out, err := run(t, "List all files\n", "analyze", "-f", "json")
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "List all files", got["task"])
	assert.Equal(t, "haiku", got["recommended_model"])
}

func TestAnalyze_Empty(t *testing.T) {
	out, err := run(t, "", "analyze", "-f", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "complexity_score: 0")
	assert.Contains(t, out, "recommended_model: haiku")
}

func TestAnalyze_ConfigFile(t *testing.T) {
	path := writeTemp(t, "config.yaml", "thresholds:\n  haiku_max: 10\n  sonnet_max: 20\ncost_optimization: false\n")

	out, err := run(t, "", "analyze", "-c", path, "-f", "json", "Analyze code for bugs")
	require.NoError(t, err)
	assert.Contains(t, out, `"recommended_model": "opus"`)
}

func TestAnalyze_InvalidConfig(t *testing.T) {
	path := writeTemp(t, "config.json", `{"thresholds": {"haiku_max": 80, "sonnet_max": 30}}`)

	_, err := run(t, "", "analyze", "--config", path, "anything")
	require.Error(t, err)
	assert.ErrorIs(t, err, complexity.ErrInvalidConfig)
	assert.Equal(t, 2, exitCode(err))
}

func TestAnalyze_EnvOverride(t *testing.T) {
	t.Setenv("TIERPICK_HAIKU_MAX", "5")
	t.Setenv("TIERPICK_SONNET_MAX", "10")
	t.Setenv("TIERPICK_COST_OPTIMIZATION", "false")
	t.Setenv("TIERPICK_FORMAT", "json")

	out, err := run(t, "", "analyze", "Analyze code for bugs")
	require.NoError(t, err)
	assert.Contains(t, out, `"recommended_model": "opus"`)
}

func TestAnalyze_BadFormat(t *testing.T) {
	_, err := run(t, "", "analyze", "-f", "xml", "x")
	require.Error(t, err)
	assert.Equal(t, 1, exitCode(err))
}

func TestBatch(t *testing.T) {
	tasks := writeTemp(t, "tasks.txt", "List all Python files\nAnalyze code for security issues\n\n# skipped\nDesign system architecture\n")
	metricsFile := filepath.Join(t.TempDir(), "metrics.prom")

	out, err := run(t, "", "batch", "--no-color", "--workers", "2", "--metrics", metricsFile, tasks)
	require.NoError(t, err)
	assert.Contains(t, out, "List all Python files")
	assert.Contains(t, out, "3 tasks")

	data, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `tierpick_recommendations_total{model="opus"} 1`)
}

func TestBatch_StdinJSON(t *testing.T) {
	out, err := run(t, "Count items\nImplement authentication\n", "batch", "-f", "json", "-")
	require.NoError(t, err)

	var got struct {
		Items   []map[string]any `json:"items"`
		Summary struct {
			Total int `json:"total"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Len(t, got.Items, 2)
	assert.Equal(t, 2, got.Summary.Total)
}

func TestBatch_MissingFile(t *testing.T) {
	_, err := run(t, "", "batch", filepath.Join(t.TempDir(), "none.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSchema(t *testing.T) {
	out, err := run(t, "", "schema", "config")
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(out)))
	assert.Contains(t, out, "sonnet_max")

	_, err = run(t, "", "schema", "bogus")
	assert.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	good := writeTemp(t, "good.toml", "default_model = \"haiku\"\n")
	out, err := run(t, "", "config", "validate", good)
	require.NoError(t, err)
	assert.Contains(t, out, "ok")

	bad := writeTemp(t, "bad.json", `{"default_model": "gpt-4", "thresholds": {"haiku_max": 80, "sonnet_max": 30}}`)
	_, err = run(t, "", "config", "validate", bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "default_model")
	assert.Contains(t, err.Error(), "must be less than")
}

func TestConfigShow(t *testing.T) {
	t.Setenv("TIERPICK_HAIKU_MAX", "20")

	out, err := run(t, "", "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "haiku_max: 20")
	assert.Contains(t, out, "sonnet_max: 70")
}

func TestWatch_PrintsInitialAnalysis(t *testing.T) {
	path := writeTemp(t, "config.json", `{"default_model": "sonnet"}`)

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"watch", "--no-color", path, "List all files"})

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()
	require.NoError(t, cmd.ExecuteContext(ctx))
	assert.Contains(t, out.String(), "Model:      haiku")
}

func TestWatch_NeedsTasks(t *testing.T) {
	path := writeTemp(t, "config.json", `{}`)
	_, err := run(t, "", "watch", path)
	assert.True(t, errors.Is(err, errNoTasks))
}

func TestMustBindFlags(t *testing.T) {
	cmd := &cobra.Command{Use: "tierpick"}
	cmd.PersistentFlags().Int("workers", 0, "")
	cmd.PersistentFlags().String("format", "text", "")
	v := viper.New()

	assert.NotPanics(t, func() { mustBindFlags(v, cmd) })
	require.NoError(t, cmd.PersistentFlags().Set("workers", "7"))
	assert.Equal(t, 7, v.GetInt("workers"))
	assert.Equal(t, "text", v.GetString("format"))
}
