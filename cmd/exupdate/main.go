// Package main provides the CLI for the exupdate executive update extractor.
package main

import (
	"os"

	"github.com/leapstack-labs/exupdate/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
