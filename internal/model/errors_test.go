package model

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestFlushError_Error checks the user-facing message of every error kind.
func TestFlushError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *FlushError
		want string
	}{
		{
			name: "not a repository",
			err:  NotARepository("/tmp/work", nil),
			want: "/tmp/work is not a git repository",
		},
		{
			name: "unknown branch",
			err:  UnknownBranch("trunk"),
			want: "trunk is not a valid branch name",
		},
		{
			name: "dirty working tree",
			err:  DirtyWorkingTree("/src/app"),
			want: "/src/app has uncommitted changes",
		},
		{
			name: "unpushed changes",
			err:  UnpushedChanges("/src/app", "main", nil),
			want: "/src/app has changes that have not been pushed to the remote or merged into main.",
		},
		{
			name: "vcs operation with detail",
			err:  VcsOperationFailed("pull", errors.New("fatal: unable to access remote\n")),
			want: "git pull failed: fatal: unable to access remote",
		},
		{
			name: "vcs operation without detail",
			err:  VcsOperationFailed("fetch --all", nil),
			want: "git fetch --all failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

// TestFlushError_Is verifies that sentinel matching compares kinds only,
// through any amount of %w wrapping.
func TestFlushError_Is(t *testing.T) {
	err := fmt.Errorf("flush: %w", DirtyWorkingTree("/src/app"))

	assert.True(t, errors.Is(err, ErrDirtyWorkingTree))
	assert.False(t, errors.Is(err, ErrUnpushedChanges))
	assert.False(t, errors.Is(err, ErrNotARepository))

	var fe *FlushError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "/src/app", fe.Path)
}

// TestFlushError_Unwrap verifies the cause stays reachable without being
// part of the message for the precondition kinds.
func TestFlushError_Unwrap(t *testing.T) {
	cause := errors.New("repository does not exist")
	err := NotARepository("/tmp", cause)

	assert.True(t, errors.Is(err, cause))
	assert.NotContains(t, err.Error(), "does not exist")
}

// TestErrorKind_ExitCode verifies each kind maps to its own non-zero code.
func TestErrorKind_ExitCode(t *testing.T) {
	tests := []struct {
		kind ErrorKind
		want ExitCode
	}{
		{KindNotARepository, ExitNotARepository},
		{KindUnknownBranch, ExitUnknownBranch},
		{KindDirtyWorkingTree, ExitDirtyWorkingTree},
		{KindUnpushedChanges, ExitUnpushedChanges},
		{KindVcsOperationFailed, ExitGitError},
		{ErrorKind("other"), ExitGeneralError},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.kind.ExitCode())
			assert.NotEqual(t, ExitSuccess, tt.kind.ExitCode())
		})
	}

	assert.Equal(t, ExitUnpushedChanges, UnpushedChanges("/x", "main", nil).ExitCode())
}
