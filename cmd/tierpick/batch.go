package main

import (
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/randalmurphal/tierpick/batch"
	"github.com/randalmurphal/tierpick/metrics"
)

func newBatchCmd(a *app) *cobra.Command {
	var metricsOut string

	cmd := &cobra.Command{
		Use:   "batch <file>",
		Short: "Analyze a file of tasks, one per line",
		Long: `Batch analyzes every task in a file (one per line; blank lines and
lines starting with # are skipped) and prints one row per task followed by a
per-tier summary. Use "-" to read tasks from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				tasks []string
				err   error
			)
			if args[0] == "-" {
				tasks, err = batch.ReadTasks(cmd.InOrStdin())
			} else {
				tasks, err = batch.ReadTaskFile(args[0])
			}
			if err != nil {
				return err
			}

			an, err := a.analyzer()
			if err != nil {
				return err
			}
			p, err := a.printer()
			if err != nil {
				return err
			}

			reg := prometheus.NewRegistry()
			runner := batch.NewRunner(an,
				batch.WithWorkers(a.v.GetInt("workers")),
				batch.WithLogger(a.logger),
				batch.WithObserver(metrics.NewCollector(reg)),
			)

			result, err := runner.Run(cmd.Context(), tasks)
			if err != nil {
				return err
			}

			if metricsOut != "" {
				if err := prometheus.WriteToTextfile(metricsOut, reg); err != nil {
					return fmt.Errorf("write metrics: %w", err)
				}
				a.logger.Debug("metrics written", slog.String("path", metricsOut))
			}

			return p.WriteResult(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().StringVar(&metricsOut, "metrics", "", "write Prometheus metrics for the run to this file")
	return cmd
}
