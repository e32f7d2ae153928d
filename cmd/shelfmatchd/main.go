// Package main is the entry point for the shelfmatch daemon.
package main

import (
	"os"

	"github.com/pantrylab/shelfmatch/cmd/shelfmatchd/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
