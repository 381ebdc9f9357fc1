package main

import (
	"os"

	"github.com/nikbrunner/bmjump/internal/commands"
)

func main() {
	if err := commands.New().Execute(); err != nil {
		os.Exit(1)
	}
}
