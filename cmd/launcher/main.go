package main

import (
	"context"
	"fmt"
	"os"
)

// Name of the current application. Used to load the configuration.
const APPLICATION_NAME = "equipment-tracker"

// Set via -ldflags at build time.
var version = "dev"

func main() {
	exitCode := 0
	rootCmd := newRootCmd(&exitCode)
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	os.Exit(exitCode)
}
