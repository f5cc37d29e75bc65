package main

import (
	"os"

	"github.com/okian/enso/cmd/enso/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
