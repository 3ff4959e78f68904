// Package main provides the entry point for the flock CLI.
package main

import (
	"context"
	"os"

	"github.com/mrz1836/flock/internal/cli"
)

// Set at build time via ldflags.
var (
	version = "" //nolint:gochecknoglobals // Set by ldflags
	commit  = "" //nolint:gochecknoglobals // Set by ldflags
	date    = "" //nolint:gochecknoglobals // Set by ldflags
)

func main() {
	err := cli.Execute(context.Background(), cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	})
	cli.CloseLogFile()
	os.Exit(cli.ExitCodeForError(err))
}
