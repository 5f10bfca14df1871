// Command tierpick recommends a Claude tier (haiku, sonnet or opus) for
// task descriptions by scoring their complexity.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/randalmurphal/tierpick/complexity"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps errors to process exit codes: 2 for configuration
// problems, 1 for everything else.
func exitCode(err error) int {
	if errors.Is(err, complexity.ErrInvalidConfig) {
		return 2
	}
	return 1
}
