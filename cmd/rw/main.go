package main

import (
	"os"

	"github.com/kotrik/roomwatch/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
