package main

import (
	"os"

	"github.com/brsteele1975/qa-artifact-compression-workflow/internal/interface/cli"
)

func main() {
	if err := cli.NewRoot().Execute(); err != nil {
		os.Exit(1)
	}
}
