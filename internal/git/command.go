package git

import (
	"context"
	"os/exec"
	"strings"

	"github.com/shinji-kodama/git-flush/internal/model"
)

// commandError carries the stderr of a failed git command. Its message is
// the stderr text when git wrote any, so users see git's own explanation.
type commandError struct {
	Stderr string
	Err    error
}

func (e *commandError) Error() string {
	if e.Stderr != "" {
		return e.Stderr
	}
	return e.Err.Error()
}

func (e *commandError) Unwrap() error {
	return e.Err
}

// runGit executes a git command with the given arguments in the specified directory.
//
// On success it returns stdout. On failure it returns a model.FlushError of
// kind VcsOperationFailed whose operation is the argument list, with git's
// stderr as the detail.
//
// The repoPath parameter is passed to git via the -C flag, so the process
// working directory is never changed.
func runGit(ctx context.Context, repoPath string, args ...string) (string, error) {
	fullArgs := append([]string{"-C", repoPath}, args...)

	// #nosec G204 — args are constructed internally, not from user input
	cmd := exec.CommandContext(ctx, "git", fullArgs...)

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", model.VcsOperationFailed(strings.Join(args, " "), &commandError{
			Stderr: strings.TrimSpace(stderr.String()),
			Err:    err,
		})
	}

	return stdout.String(), nil
}
