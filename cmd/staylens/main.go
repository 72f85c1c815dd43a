package main

import (
	"os"

	"github.com/staylens/staylens/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
