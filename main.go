// Package main is the entry point for storyctl CLI
package main

import (
	"errors"
	"os"

	"github.com/vocal-project/storyctl/cmd"
	"github.com/vocal-project/storyctl/internal/output"
)

// version is set at build time via ldflags
var version = "dev"

func main() {
	cmd.SetVersion(version)
	if err := cmd.Execute(); err != nil {
		os.Stderr.WriteString("Error: " + err.Error() + "\n")
		var cliErr *output.CLIError
		if errors.As(err, &cliErr) && cliErr.ExitCode != 0 {
			os.Exit(cliErr.ExitCode)
		}
		os.Exit(1)
	}
}
