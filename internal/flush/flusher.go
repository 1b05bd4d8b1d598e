package flush

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/shinji-kodama/git-flush/internal/config"
	"github.com/shinji-kodama/git-flush/internal/model"
)

// ProtectedBranch is never deleted at the end of a run. The comparison is
// against this literal name, not against the configured default branch.
const ProtectedBranch = "main"

// Flusher runs the workflow against repositories produced by an Opener and
// writes progress messages to an io.Writer.
type Flusher struct {
	opener Opener
	out    io.Writer
}

// New creates a Flusher. A nil out discards progress messages.
func New(opener Opener, out io.Writer) *Flusher {
	if out == nil {
		out = io.Discard
	}
	return &Flusher{opener: opener, out: out}
}

// Run flushes the repository containing dir according to cfg.
//
// Errors are *model.FlushError values; errors.Is against the model.Err*
// sentinels tells them apart.
func (f *Flusher) Run(ctx context.Context, dir string, cfg config.Config) (model.Summary, error) {
	summary := model.Summary{Directory: dir, DefaultBranch: cfg.DefaultBranch}

	// Step 1: open the repository.
	repo, err := f.opener.Open(dir)
	if err != nil {
		return summary, asFlushError(err, func(cause error) *model.FlushError {
			return model.NotARepository(dir, cause)
		})
	}

	// Step 2: the default branch must exist before anything else is looked at.
	exists, err := repo.HasRef(cfg.DefaultBranch)
	if err != nil {
		return summary, asVcsError("show-ref", err)
	}
	if !exists {
		return summary, model.UnknownBranch(cfg.DefaultBranch)
	}

	// Step 3: clean working tree.
	dirty, err := repo.IsDirty(ctx, cfg.UntrackedFiles)
	if err != nil {
		return summary, asVcsError("status", err)
	}
	if dirty {
		return summary, model.DirtyWorkingTree(dir)
	}

	// Step 4: record and report the branch the run starts on.
	branch, err := repo.ActiveBranch()
	if err != nil {
		return summary, asFlushError(err, func(cause error) *model.FlushError {
			return model.VcsOperationFailed("resolve active branch", cause)
		})
	}
	run := model.RunContext{Directory: dir, ActiveBranch: branch}
	summary.StartBranch = run.ActiveBranch
	f.printf("Current branch: %s\n", run.ActiveBranch)

	// Step 5: HEAD must already be on the remote default branch. This is the
	// last read-only gate.
	reachable, err := repo.IsReachableFrom(cfg.DefaultBranch)
	if errors.Is(err, ErrRemoteBranchMissing) {
		return summary, model.UnpushedChanges(run.Directory, cfg.DefaultBranch, err)
	}
	if err != nil {
		return summary, asVcsError("merge-base", err)
	}
	if !reachable {
		return summary, model.UnpushedChanges(run.Directory, cfg.DefaultBranch, nil)
	}

	// Step 6: switch to the default branch.
	if run.ActiveBranch != cfg.DefaultBranch {
		f.printf("Checking out %s branch\n", cfg.DefaultBranch)
		if err := repo.Checkout(ctx, cfg.DefaultBranch); err != nil {
			return summary, asVcsError("checkout", err)
		}
		summary.CheckedOut = true
	}

	// Step 7: pull the current branch.
	f.printf("Pulling latest changes from remote\n")
	if err := repo.Pull(ctx); err != nil {
		return summary, asVcsError("pull", err)
	}
	summary.Pulled = true

	// Step 8: fetch every remote branch.
	f.printf("Fetching all branches from remote\n")
	if err := repo.FetchAll(ctx); err != nil {
		return summary, asVcsError("fetch --all", err)
	}
	summary.Fetched = true

	// Step 9: drop the branch the run started on.
	if ShouldDelete(run.ActiveBranch, cfg) {
		f.printf("Deleting %s\n", run.ActiveBranch)
		if err := repo.DeleteBranch(ctx, run.ActiveBranch); err != nil {
			return summary, asVcsError("branch -D", err)
		}
		summary.DeletedBranch = run.ActiveBranch
	}

	return summary, nil
}

// ShouldDelete reports whether branch is deleted at the end of a run.
func ShouldDelete(branch string, cfg config.Config) bool {
	return branch != ProtectedBranch && cfg.DeleteFeatureBranch
}

func (f *Flusher) printf(format string, args ...any) {
	fmt.Fprintf(f.out, format, args...)
}

// asFlushError passes FlushErrors through unchanged and wraps anything else.
func asFlushError(err error, wrap func(error) *model.FlushError) error {
	var fe *model.FlushError
	if errors.As(err, &fe) {
		return err
	}
	return wrap(err)
}

func asVcsError(op string, err error) error {
	return asFlushError(err, func(cause error) *model.FlushError {
		return model.VcsOperationFailed(op, cause)
	})
}
