// Package main is the entry point for the git-flush CLI.
//
// It delegates all functionality to the internal/cli package, which defines
// the cobra command.
//
// Build-time variables (version, commit, date) are injected via ldflags
// during the release process. During development, they default to "dev",
// "none", and "unknown" respectively.
package main

import (
	"github.com/shinji-kodama/git-flush/internal/cli"
)

// version, commit, and date are set at build time via ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cli.Version = version
	cli.Commit = commit
	cli.Date = date

	// The environment is read once, here, to build the command's flag defaults.
	rootCmd := cli.NewRootCommand()
	cli.Execute(rootCmd)
}
