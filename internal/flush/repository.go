package flush

import (
	"context"
	"errors"
)

// ErrRemoteBranchMissing is wrapped by IsReachableFrom when origin/<branch>
// does not exist. The workflow reports it as unpushed changes; any other
// IsReachableFrom error is a git failure.
var ErrRemoteBranchMissing = errors.New("remote-tracking branch not found")

// Opener opens the repository containing a directory.
type Opener interface {
	// Open returns the repository whose working tree contains dir.
	// It returns a model.FlushError of kind NotARepository when there is none.
	Open(dir string) (Repository, error)
}

// Repository is the version-control capability the workflow needs.
// HasRef, IsDirty, ActiveBranch and IsReachableFrom only read; Checkout,
// Pull, FetchAll and DeleteBranch mutate the repository or talk to the
// remote.
type Repository interface {
	// HasRef reports whether a ref has name as its short name ("main",
	// "origin/main"). Full names such as "refs/heads/main" do not match.
	HasRef(name string) (bool, error)

	// IsDirty reports uncommitted changes the way `git status` sees them.
	// Untracked files only count when includeUntracked is true.
	IsDirty(ctx context.Context, includeUntracked bool) (bool, error)

	// ActiveBranch returns the short name of the checked-out branch.
	ActiveBranch() (string, error)

	// IsReachableFrom reports whether HEAD equals, or is an ancestor of,
	// the tip of origin/<branch>.
	IsReachableFrom(branch string) (bool, error)

	Checkout(ctx context.Context, branch string) error
	Pull(ctx context.Context) error
	FetchAll(ctx context.Context) error
	DeleteBranch(ctx context.Context, branch string) error
}
