// Package main is the entry point for the treecell CLI.
package main

import (
	"os"

	"github.com/treecell/treecell/cmd/treecell/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
