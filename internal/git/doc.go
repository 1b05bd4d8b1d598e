// Package git is the version-control client used by the flush workflow.
//
// Repository discovery and every read-only query (refs, working tree
// status, HEAD, commit ancestry) go through go-git, which answers them
// in-process without spawning git for each check.
//
// Mutations (checkout, pull, fetch, branch deletion) shell out to the git
// binary instead. These commands talk to the remote or rewrite the working
// tree, and running the user's own git keeps credential helpers, hooks and
// pull.rebase/pull.ff settings behaving exactly as they do in the terminal.
package git
