package git

import (
	"context"
	"errors"
	"fmt"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/storer"

	"github.com/shinji-kodama/git-flush/internal/flush"
	"github.com/shinji-kodama/git-flush/internal/model"
)

// RemoteName is the only remote git-flush compares against.
const RemoteName = "origin"

// ErrDetachedHead is returned by ActiveBranch when HEAD does not point at a branch.
var ErrDetachedHead = errors.New("HEAD is detached; check out a branch first")

// Opener opens repositories on the local filesystem.
type Opener struct{}

// NewOpener creates an Opener.
func NewOpener() *Opener {
	return &Opener{}
}

// Open finds the repository whose working tree contains dir, walking up
// through parent directories the way git does. Linked worktrees are
// supported.
func (o *Opener) Open(dir string) (flush.Repository, error) {
	repo, err := Open(dir)
	if err != nil {
		return nil, err
	}
	return repo, nil
}

// Open is the concrete form of Opener.Open.
func Open(dir string) (*Repository, error) {
	repo, err := gogit.PlainOpenWithOptions(dir, &gogit.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: true,
	})
	if err != nil {
		if errors.Is(err, gogit.ErrRepositoryNotExists) {
			return nil, model.NotARepository(dir, err)
		}
		return nil, model.VcsOperationFailed("open", err)
	}

	// A bare repository has no working tree to flush.
	wt, err := repo.Worktree()
	if err != nil {
		return nil, model.NotARepository(dir, err)
	}

	return &Repository{repo: repo, root: wt.Filesystem.Root()}, nil
}

// Repository implements flush.Repository for a repository on disk.
type Repository struct {
	repo *gogit.Repository
	root string
}

// Root returns the top-level directory of the working tree.
func (r *Repository) Root() string {
	return r.root
}

// HasRef reports whether any ref has name as its short name, so "main"
// and "origin/main" match but "refs/heads/main" does not.
func (r *Repository) HasRef(name string) (bool, error) {
	refs, err := r.repo.References()
	if err != nil {
		return false, fmt.Errorf("list references: %w", err)
	}
	defer refs.Close()

	found := false
	err = refs.ForEach(func(ref *plumbing.Reference) error {
		if ref.Name().Short() == name {
			found = true
			return storer.ErrStop
		}
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("list references: %w", err)
	}
	return found, nil
}

// IsDirty reports staged or unstaged changes to tracked files and, when
// includeUntracked is set, untracked files that are not ignored.
//
// The answer comes from `git status` rather than go-git, so core.fileMode
// and every exclude source apply exactly as they do for the git commands
// that follow.
func (r *Repository) IsDirty(ctx context.Context, includeUntracked bool) (bool, error) {
	untracked := "--untracked-files=no"
	if includeUntracked {
		untracked = "--untracked-files=all"
	}
	out, err := runGit(ctx, r.root, "status", "--porcelain", untracked)
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(out) != "", nil
}

// ActiveBranch returns the short name of the branch HEAD points at.
func (r *Repository) ActiveBranch() (string, error) {
	head, err := r.repo.Head()
	if err != nil {
		return "", fmt.Errorf("resolve HEAD: %w", err)
	}
	if !head.Name().IsBranch() {
		return "", ErrDetachedHead
	}
	return head.Name().Short(), nil
}

// IsReachableFrom reports whether the HEAD commit is the tip of
// origin/<branch> or one of its ancestors. A missing remote-tracking
// branch is reported as flush.ErrRemoteBranchMissing.
func (r *Repository) IsReachableFrom(branch string) (bool, error) {
	remoteRef, err := r.repo.Reference(plumbing.NewRemoteReferenceName(RemoteName, branch), true)
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return false, fmt.Errorf("resolve %s/%s: %w", RemoteName, branch, flush.ErrRemoteBranchMissing)
	}
	if err != nil {
		return false, fmt.Errorf("resolve %s/%s: %w", RemoteName, branch, err)
	}
	head, err := r.repo.Head()
	if err != nil {
		return false, fmt.Errorf("resolve HEAD: %w", err)
	}

	headCommit, err := r.repo.CommitObject(head.Hash())
	if err != nil {
		return false, fmt.Errorf("load HEAD commit: %w", err)
	}
	remoteCommit, err := r.repo.CommitObject(remoteRef.Hash())
	if err != nil {
		return false, fmt.Errorf("load %s/%s commit: %w", RemoteName, branch, err)
	}

	return headCommit.IsAncestor(remoteCommit)
}

// Checkout switches the working tree to branch.
func (r *Repository) Checkout(ctx context.Context, branch string) error {
	_, err := runGit(ctx, r.root, "checkout", branch)
	return err
}

// Pull runs `git pull` for the current branch and its configured upstream.
func (r *Repository) Pull(ctx context.Context) error {
	_, err := runGit(ctx, r.root, "pull")
	return err
}

// FetchAll runs `git fetch --all`.
func (r *Repository) FetchAll(ctx context.Context) error {
	_, err := runGit(ctx, r.root, "fetch", "--all")
	return err
}

// DeleteBranch force-deletes a local branch, merged or not.
func (r *Repository) DeleteBranch(ctx context.Context, branch string) error {
	_, err := runGit(ctx, r.root, "branch", "-D", branch)
	return err
}
