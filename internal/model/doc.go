// Package model defines the value types shared across the git-flush CLI.
//
// This package contains pure data structures with no external dependencies.
// Every value here is transient: it is derived from the repository at the
// start of a run and discarded when the process exits. git-flush keeps no
// state of its own on disk.
//
// The package also defines exit codes (ExitCode), a custom error type that
// carries an exit code (CLIError), and the workflow error taxonomy
// (FlushError) that the CLI layer maps onto those exit codes.
package model
