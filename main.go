package main

import (
	"os"

	"github.com/abhisek/passgate/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
