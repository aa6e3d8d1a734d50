package main

import (
	"github.com/zhulik/fleetscaler/internal/cli"
)

func main() {
	cli.Run()
}
