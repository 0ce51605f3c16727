package main

import (
	"os"

	"github.com/grokcon/registry-api/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
