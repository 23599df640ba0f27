package main

import (
	"os"

	"github.com/somdipdey/Learning-Styles/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
