package main

import (
	"os"

	"github.com/abhisek/freedomquest/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
