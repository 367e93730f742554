package main

import (
	"os"

	"github.com/sauerdaniel/taskledger/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
