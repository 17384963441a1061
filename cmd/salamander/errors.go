package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

// reportError prints an error message to standard error, colorized the
// same way the teacher's cmd/error.go does for its CLI subcommands.
func reportError(err error) {
	fmt.Fprintln(os.Stderr, color.RedString("Error:"), err)
}

// reportWarning prints a non-fatal warning to standard error.
func reportWarning(message string) {
	fmt.Fprintln(color.Error, color.YellowString("Warning:"), message)
}

// fail reports err and terminates with spec.md §6's startup-failure exit
// code (1).
func fail(err error) {
	reportError(err)
	os.Exit(1)
}
