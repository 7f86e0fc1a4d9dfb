package main

import (
	"context"
	"errors"
	"os"

	"github.com/spf13/cobra"

	"framealign/internal/logging"
	"framealign/internal/services"
)

func main() {
	os.Exit(run(newRootCommand()))
}

// run executes the CLI and maps failures to exit codes: 0 on success, 2 for
// bad input or configuration, 1 for tool and runtime failures. Cancellation
// exits silently.
func run(cmd *cobra.Command) int {
	err := cmd.Execute()
	if err == nil {
		return 0
	}
	if errors.Is(err, context.Canceled) {
		return 1
	}

	if logger, logErr := logging.New(logging.Options{Output: cmd.ErrOrStderr()}); logErr == nil {
		logger.Error("command failed", logging.Args(logging.Error(err))...)
	}
	if services.IsFatalInput(err) {
		return 2
	}
	return 1
}
