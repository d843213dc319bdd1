package main

import (
	"os"

	"github.com/epinetics/netsim-core/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
