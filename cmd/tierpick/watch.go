package main

import (
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/tierpick/complexity"
	"github.com/randalmurphal/tierpick/config"
)

var errNoTasks = errors.New("no tasks given")

func newWatchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch <config-file> <task...>",
		Short: "Re-analyze tasks whenever the config file changes",
		Long: `Watch loads the config file, analyzes the given tasks, and analyzes them
again after every valid edit to the file. Invalid edits are reported and
the previous config stays in effect. Stop with Ctrl-C.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks := args[1:]
			if len(tasks) == 0 {
				return errNoTasks
			}
			p, err := a.printer()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			show := func(an *complexity.Analyzer) {
				for _, task := range tasks {
					if err := p.WriteAnalysis(out, task, an.Analyze(task)); err != nil {
						a.logger.Warn("write analysis", slog.String("error", err.Error()))
					}
				}
			}

			w, err := config.NewWatcher(args[0],
				config.WithLogger(a.logger),
				config.WithEnv(os.LookupEnv),
				config.WithOnChange(show),
			)
			if err != nil {
				return err
			}
			defer w.Close()

			show(w.Current())

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a.logger.Info("watching config", slog.String("path", w.Path()))
			return w.Run(ctx)
		},
	}
}
