// Package main is the entry point for the dremioq CLI binary.
package main

import (
	"os"

	"dremioai/pkg/cli"
)

func main() {
	os.Exit(cli.Execute())
}
