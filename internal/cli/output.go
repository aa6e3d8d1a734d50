package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
	"github.com/zhulik/fleetscaler/pkg/json"
)

func writer(cmd *cli.Command) io.Writer {
	if root := cmd.Root(); root != nil && root.Writer != nil {
		return root.Writer
	}

	return os.Stdout
}

func printJSON(cmd *cli.Command, doc any) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err //nolint:wrapcheck
	}

	_, err = fmt.Fprintln(writer(cmd), string(data))
	if err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	return nil
}
