package main

import (
	"os"

	"github.com/harun/aruna/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
