package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/tierpick/config"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and validate configuration",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "validate <file>",
			Short: "Check a config file and report every problem",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if _, err := config.Load(args[0]); err != nil {
					return err
				}
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", args[0])
				return err
			},
		},
		&cobra.Command{
			Use:   "show",
			Short: "Print the effective config after file and environment overrides",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := a.loadConfig()
				if err != nil {
					return err
				}
				p, err := a.printer()
				if err != nil {
					return err
				}
				return p.WriteConfig(cmd.OutOrStdout(), cfg)
			},
		},
	)
	return cmd
}
