package main

import (
	"os"

	"github.com/mindora-app/mindora/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
