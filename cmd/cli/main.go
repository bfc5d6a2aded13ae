// Package main is the entry point for the grocery-cost CLI.
package main

import (
	"os"

	"grocery-cost/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
