package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/urfave/cli/v3"
	"github.com/zhulik/fleetscaler/internal/core"
)

const (
	exitCodeUsage          = 1
	exitCodeQueryFailure   = 2
	exitCodeCommandFailure = 3
	exitCodeRunInProgress  = 4
)

func exitCode(err error) int {
	switch {
	case core.IsQueryFailure(err):
		return exitCodeQueryFailure
	case core.IsCommandFailure(err):
		return exitCodeCommandFailure
	case errors.Is(err, core.ErrRunInProgress):
		return exitCodeRunInProgress
	default:
		return exitCodeUsage
	}
}

// exitError turns a scaling error into a cli.ExitCoder. Command failures name the failed batches.
func exitError(err error) error {
	if err == nil {
		return nil
	}

	var exitCoder cli.ExitCoder
	if errors.As(err, &exitCoder) {
		return err
	}

	message := err.Error()

	if core.IsCommandFailure(err) {
		batches := lo.Map(core.FailedBatches(err), func(batch core.Batch, _ int) string {
			return batch.String()
		})
		message = fmt.Sprintf("failed batches: %s: %s", strings.Join(batches, ", "), strings.ReplaceAll(message, "\n", "; "))
	}

	return cli.Exit(message, exitCode(err))
}
