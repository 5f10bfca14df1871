package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/tierpick/report"
)

func newSchemaCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:       "schema [analysis|config|result]",
		Short:     "Print the JSON Schema of an output or config type",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: report.SchemaNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := "analysis"
			if len(args) == 1 {
				name = args[0]
			}
			data, err := report.SchemaFor(name)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return err
		},
	}
}
