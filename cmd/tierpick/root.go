package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/randalmurphal/tierpick/complexity"
	"github.com/randalmurphal/tierpick/config"
	"github.com/randalmurphal/tierpick/report"
)

const envPrefix = "TIERPICK"

// app carries state shared by every subcommand.
type app struct {
	v      *viper.Viper
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New(), logger: slog.Default()}

	root := &cobra.Command{
		Use:   "tierpick",
		Short: "Recommend the cheapest Claude tier that fits a task",
		Long: `tierpick scores task descriptions for complexity (0-100) and maps the
score to haiku, sonnet or opus through configurable thresholds, with
token and cost estimates for the chosen tier.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringP("config", "c", "", "config file (.json, .yaml, .yml or .toml)")
	flags.StringP("format", "f", "text", "output format: text, json or yaml")
	flags.Int("workers", 0, "batch worker count (default GOMAXPROCS)")
	flags.Bool("no-color", false, "disable colored output")
	flags.BoolP("verbose", "v", false, "enable debug logging")
	mustBindFlags(a.v, root)

	root.AddCommand(
		newAnalyzeCmd(a),
		newBatchCmd(a),
		newSchemaCmd(a),
		newConfigCmd(a),
		newWatchCmd(a),
	)
	return root
}

// mustBindFlags exposes cmd's persistent flags through v. A failure is a
// programming error.
func mustBindFlags(v *viper.Viper, cmd *cobra.Command) {
	if err := v.BindPFlags(cmd.PersistentFlags()); err != nil {
		panic(fmt.Sprintf("bind flags of %s: %v", cmd.Name(), err))
	}
}

// init loads .env, wires environment variables and sets up logging.
func (a *app) init(cmd *cobra.Command) error {
	// A missing .env file is fine.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	a.v.SetEnvPrefix(envPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	a.v.AutomaticEnv()

	level := slog.LevelInfo
	if a.v.GetBool("verbose") {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	return nil
}

// loadConfig returns the effective config: the --config file (or the
// defaults), then TIERPICK_* environment overrides.
func (a *app) loadConfig() (complexity.Config, error) {
	cfg := complexity.DefaultConfig()
	if path := a.v.GetString("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return complexity.Config{}, err
		}
		cfg = loaded
		a.logger.Debug("config loaded", slog.String("path", path))
	}

	cfg, err := config.ApplyEnv(cfg, os.LookupEnv)
	if err != nil {
		return complexity.Config{}, err
	}
	return cfg, cfg.Validate()
}

func (a *app) analyzer() (*complexity.Analyzer, error) {
	cfg, err := a.loadConfig()
	if err != nil {
		return nil, err
	}
	return complexity.NewAnalyzer(cfg)
}

func (a *app) printer() (*report.Printer, error) {
	format, err := report.ParseFormat(a.v.GetString("format"))
	if err != nil {
		return nil, err
	}
	_, noColorEnv := os.LookupEnv("NO_COLOR")
	return report.NewPrinter(format, report.WithNoColor(a.v.GetBool("no-color") || noColorEnv)), nil
}
