package main

import (
	"os"

	"github.com/martrack-dev/martrack/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
