// Package main is the entry point for the snoozectl CLI
package main

import (
	"errors"
	"os"

	"github.com/snooze-project/snoozectl/cmd"
	"github.com/snooze-project/snoozectl/internal/output"
)

// version is set at build time via ldflags
var version = "dev"

func main() {
	cmd.SetVersion(version)
	if err := cmd.Execute(); err != nil {
		var cliErr *output.CLIError
		if errors.As(err, &cliErr) {
			printer := output.NewPrinter(output.ResolveColors(output.ColorAuto, true))
			printer.FormatError(cliErr)
		} else {
			os.Stderr.WriteString("Error: " + err.Error() + "\n")
		}
		os.Exit(output.ExitCodeFor(err))
	}
}
