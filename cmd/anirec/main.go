// Package main is the entry point for the anirec CLI.
package main

import (
	"os"

	"github.com/temcen/anirec/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
