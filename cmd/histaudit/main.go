package main

import (
	"os"

	"github.com/runnerr0/histaudit/internal/cli"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	// go-flags already printed any error.
	if err := cli.Run(version); err != nil {
		os.Exit(1)
	}
}
