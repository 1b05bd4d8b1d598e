package model

import (
	"fmt"
	"strings"
)

// ErrorKind classifies why a flush stopped.
type ErrorKind string

const (
	// KindNotARepository: the working directory is not inside a git working tree.
	KindNotARepository ErrorKind = "not-a-repository"

	// KindUnknownBranch: the configured default branch is not a ref.
	KindUnknownBranch ErrorKind = "unknown-branch"

	// KindDirtyWorkingTree: uncommitted (and optionally untracked) changes exist.
	KindDirtyWorkingTree ErrorKind = "dirty-working-tree"

	// KindUnpushedChanges: HEAD is not reachable from origin/<default branch>.
	KindUnpushedChanges ErrorKind = "unpushed-changes"

	// KindVcsOperationFailed: a git command or query failed.
	KindVcsOperationFailed ErrorKind = "vcs-operation-failed"
)

// String returns the string representation of ErrorKind.
func (k ErrorKind) String() string {
	return string(k)
}

// ExitCode maps the kind onto the process exit code reported by the CLI.
func (k ErrorKind) ExitCode() ExitCode {
	switch k {
	case KindNotARepository:
		return ExitNotARepository
	case KindUnknownBranch:
		return ExitUnknownBranch
	case KindDirtyWorkingTree:
		return ExitDirtyWorkingTree
	case KindUnpushedChanges:
		return ExitUnpushedChanges
	case KindVcsOperationFailed:
		return ExitGitError
	default:
		return ExitGeneralError
	}
}

// FlushError is returned by the flush workflow. Which fields are set
// depends on Kind:
//
//	NotARepository      Path
//	UnknownBranch       Branch
//	DirtyWorkingTree    Path
//	UnpushedChanges     Path, Branch
//	VcsOperationFailed  Op, Err
//
// Err may also be set on the other kinds to keep the cause available to
// errors.Is/errors.As; it is not part of the message.
type FlushError struct {
	Kind   ErrorKind
	Path   string
	Branch string
	Op     string
	Err    error
}

// Sentinel values for errors.Is. Only the Kind is compared, so
// errors.Is(err, ErrDirtyWorkingTree) holds for any dirty-tree failure.
var (
	ErrNotARepository     = &FlushError{Kind: KindNotARepository}
	ErrUnknownBranch      = &FlushError{Kind: KindUnknownBranch}
	ErrDirtyWorkingTree   = &FlushError{Kind: KindDirtyWorkingTree}
	ErrUnpushedChanges    = &FlushError{Kind: KindUnpushedChanges}
	ErrVcsOperationFailed = &FlushError{Kind: KindVcsOperationFailed}
)

func (e *FlushError) Error() string {
	switch e.Kind {
	case KindNotARepository:
		return fmt.Sprintf("%s is not a git repository", e.Path)
	case KindUnknownBranch:
		return fmt.Sprintf("%s is not a valid branch name", e.Branch)
	case KindDirtyWorkingTree:
		return fmt.Sprintf("%s has uncommitted changes", e.Path)
	case KindUnpushedChanges:
		return fmt.Sprintf("%s has changes that have not been pushed to the remote or merged into %s.", e.Path, e.Branch)
	case KindVcsOperationFailed:
		msg := fmt.Sprintf("git %s failed", e.Op)
		if e.Err != nil {
			if detail := strings.TrimSpace(e.Err.Error()); detail != "" {
				msg = fmt.Sprintf("%s: %s", msg, detail)
			}
		}
		return msg
	default:
		return fmt.Sprintf("flush failed (%s)", e.Kind)
	}
}

// Unwrap returns the underlying cause, if any.
func (e *FlushError) Unwrap() error {
	return e.Err
}

// Is reports whether target is a FlushError of the same Kind.
func (e *FlushError) Is(target error) bool {
	t, ok := target.(*FlushError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// ExitCode returns the exit code the CLI reports for this error.
func (e *FlushError) ExitCode() ExitCode {
	return e.Kind.ExitCode()
}

// NotARepository builds a KindNotARepository error for path.
func NotARepository(path string, cause error) *FlushError {
	return &FlushError{Kind: KindNotARepository, Path: path, Err: cause}
}

// UnknownBranch builds a KindUnknownBranch error for branch.
func UnknownBranch(branch string) *FlushError {
	return &FlushError{Kind: KindUnknownBranch, Branch: branch}
}

// DirtyWorkingTree builds a KindDirtyWorkingTree error for path.
func DirtyWorkingTree(path string) *FlushError {
	return &FlushError{Kind: KindDirtyWorkingTree, Path: path}
}

// UnpushedChanges builds a KindUnpushedChanges error for path and the
// default branch HEAD should have been merged into.
func UnpushedChanges(path, branch string, cause error) *FlushError {
	return &FlushError{Kind: KindUnpushedChanges, Path: path, Branch: branch, Err: cause}
}

// VcsOperationFailed builds a KindVcsOperationFailed error for op.
func VcsOperationFailed(op string, err error) *FlushError {
	return &FlushError{Kind: KindVcsOperationFailed, Op: op, Err: err}
}
