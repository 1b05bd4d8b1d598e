package model

import "fmt"

// RunContext describes where a run happens and which branch was checked out
// when it started. It is captured once, before any mutation, and only used
// for message formatting and comparisons.
type RunContext struct {
	// Directory is the working directory the run was started from.
	Directory string `json:"directory" yaml:"directory"`

	// ActiveBranch is the short name of the branch HEAD pointed to
	// (e.g., "feature-x" rather than "refs/heads/feature-x").
	ActiveBranch string `json:"activeBranch" yaml:"activeBranch"`
}

// Summary records what a successful run did to the repository.
//
// Read-only gates never appear here: a Summary only exists once every
// precondition passed, so it describes the mutation sequence that followed.
type Summary struct {
	// Directory is the working directory the run was started from.
	Directory string `json:"directory" yaml:"directory"`

	// StartBranch is the branch that was active when the run started.
	StartBranch string `json:"startBranch" yaml:"startBranch"`

	// DefaultBranch is the branch the repository ends up on.
	DefaultBranch string `json:"defaultBranch" yaml:"defaultBranch"`

	// CheckedOut is true when the run switched from StartBranch to DefaultBranch.
	CheckedOut bool `json:"checkedOut" yaml:"checkedOut"`

	// Pulled and Fetched are true once the corresponding git command succeeded.
	Pulled  bool `json:"pulled" yaml:"pulled"`
	Fetched bool `json:"fetched" yaml:"fetched"`

	// DeletedBranch is the name of the branch that was force-deleted.
	// Empty when no branch was deleted.
	DeletedBranch string `json:"deletedBranch,omitempty" yaml:"deletedBranch,omitempty"`
}

// String returns a one-line description of the run, used by verbose output.
func (s Summary) String() string {
	msg := fmt.Sprintf("flushed %s: now on %s", s.StartBranch, s.DefaultBranch)
	if s.DeletedBranch != "" {
		msg += fmt.Sprintf(", deleted %s", s.DeletedBranch)
	}
	return msg
}

// ExitCode defines the process exit codes of the CLI.
// Scripts can use them to tell which precondition stopped a run.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates an unspecified error occurred,
	// including invalid flags and arguments.
	ExitGeneralError ExitCode = 1

	// ExitNotARepository indicates the working directory is not inside
	// a git working tree.
	ExitNotARepository ExitCode = 2

	// ExitUnknownBranch indicates the configured default branch does not exist.
	ExitUnknownBranch ExitCode = 3

	// ExitDirtyWorkingTree indicates uncommitted (and optionally untracked)
	// changes are present.
	ExitDirtyWorkingTree ExitCode = 4

	// ExitUnpushedChanges indicates HEAD is not reachable from the remote
	// default branch.
	ExitUnpushedChanges ExitCode = 5

	// ExitGitError indicates a git operation (checkout, pull, fetch,
	// branch delete) failed.
	ExitGitError ExitCode = 6
)

// CLIError is a custom error type that carries an exit code.
// This allows the CLI layer to translate errors into
// appropriate process exit codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}
