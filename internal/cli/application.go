package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli/v3"
)

const VERSION = "0.1.0"

var cmd = &cli.Command{
	Name:    "fleetscaler",
	Usage:   "Keep the first N tagged workers running, stop the rest.",
	Version: VERSION,
	Commands: []*cli.Command{
		scaleCMD,
		planCMD,
		fleetCMD,
		serveCMD,
	},
}

func Run() {
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		var exitCoder cli.ExitCoder
		if errors.As(err, &exitCoder) {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(exitCoder.ExitCode())
		}

		log.Fatal(err)
	}
}
