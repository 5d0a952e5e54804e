package main

import (
	"os"

	"github.com/abhisek/lifewheel/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
