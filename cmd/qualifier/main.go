package main

import (
	"os"

	"github.com/loanq-dev/qualifier/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
