package main

import (
	"os"

	"github.com/itsderek23/subtle/cmd"
)

func main() {
	if err := cmd.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
