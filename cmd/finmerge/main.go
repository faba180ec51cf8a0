package main

import (
	"os"

	"github.com/finmerge/finmerge/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
