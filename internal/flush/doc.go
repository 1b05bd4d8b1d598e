// Package flush implements the git-flush workflow.
//
// A run is one forward-only chain: open the repository, check that the
// default branch exists, that the working tree is clean, and that HEAD has
// already reached origin/<default branch>; only then check out the default
// branch, pull, fetch all remotes and optionally delete the branch the run
// started on. Any failure in the read-only part leaves the repository
// untouched. Failures after that point are returned as-is, without rollback.
//
// The workflow is written against the Opener and Repository interfaces so it
// can be exercised without a repository on disk. internal/git provides the
// production implementation.
package flush
