package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
)

func newAnalyzeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze [task...]",
		Short: "Analyze one task description",
		Long: `Analyze scores a single task and recommends a tier. The task is taken
from the arguments, joined with spaces, or read from stdin when no
arguments are given.`,
		Example: `  tierpick analyze "Design scalable microservices architecture"
  echo "List all files" | tierpick analyze -f json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			task := strings.Join(args, " ")
			if len(args) == 0 {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read task from stdin: %w", err)
				}
				task = strings.TrimSpace(string(data))
			}

			an, err := a.analyzer()
			if err != nil {
				return err
			}
			p, err := a.printer()
			if err != nil {
				return err
			}

			result := an.Analyze(task)
			a.logger.Debug("task analyzed",
				slog.Float64("score", result.ComplexityScore),
				slog.String("model", result.RecommendedModel.String()),
				slog.Int("words", result.Signals.Words),
				slog.Int("clauses", result.Signals.Clauses),
			)
			if task == "" {
				a.logger.Warn("empty task description")
			}
			return p.WriteAnalysis(cmd.OutOrStdout(), task, result)
		},
	}
}
