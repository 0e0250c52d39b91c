package main

import (
	"os"

	"github.com/cognicore/synmap/cmd/synmap/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
