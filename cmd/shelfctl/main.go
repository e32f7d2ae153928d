// Package main is the entry point for the shelfctl CLI.
package main

import (
	"github.com/pantrylab/shelfmatch/cmd/shelfctl/cmd"
)

func main() {
	cmd.Execute()
}
