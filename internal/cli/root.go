// Package cli implements the cobra-based command line of git-flush.
//
// git-flush has a single command and no subcommands. This file defines that
// root command, its flags, error output and exit code handling. flags.go
// holds the flag plumbing that pflag does not provide on its own.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/shinji-kodama/git-flush/internal/config"
	"github.com/shinji-kodama/git-flush/internal/flush"
	"github.com/shinji-kodama/git-flush/internal/git"
	"github.com/shinji-kodama/git-flush/internal/model"
)

// verbose enables diagnostic output on stderr. It is set from the resolved
// configuration at the start of a run.
var (
	verbose    bool
	verboseOut io.Writer = os.Stderr
)

// version, commit, and date are set at build time via ldflags.
// They are injected from the main package.
var (
	// Version is the semantic version of the binary (e.g., "1.0.0").
	Version = "dev"

	// Commit is the Git commit hash the binary was built from.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// rootFlags holds flag values that are not part of config.Config.
type rootFlags struct {
	version bool
}

// NewRootCommand creates the git-flush command, with flag defaults taken
// from the process environment and the on-disk git client.
func NewRootCommand() *cobra.Command {
	return newRootCommand(config.Load(os.LookupEnv), git.NewOpener())
}

// newRootCommand builds the command around an already loaded configuration.
// Flags are bound directly to cfg's fields, so the environment supplies the
// defaults and anything given on the command line overrides them.
func newRootCommand(cfg config.Config, opener flush.Opener) *cobra.Command {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:   "git-flush",
		Short: "Return to the default branch once a feature branch is merged",
		Long: `git-flush checks that the current branch is clean and already merged into
origin/<default branch>, then checks out the default branch, pulls, fetches
all remotes and optionally deletes the branch you were on.

Nothing is changed unless every check passes.

Environment:
  GIT_FLUSH_DEFAULT_BRANCH         default for --default-branch (main)
  GIT_FLUSH_UNTRACKED_FILES        default for --untracked-files (true)
  GIT_FLUSH_DELETE_FEATURE_BRANCH  default for --delete-feature-branch (false)

Boolean variables accept true, t, 1, yes or y in any case; anything else is
false. A variable that is set but empty is treated as unset and keeps the
built-in default.`,

		Args: cobra.NoArgs,

		// SilenceUsage prevents cobra from printing usage on every error.
		SilenceUsage: true,

		// SilenceErrors lets Execute format errors and pick the exit code.
		SilenceErrors: true,

		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.version {
				fmt.Fprintln(cmd.OutOrStdout(), Version)
				return nil
			}
			return runFlush(cmd, cfg, opener)
		},
	}

	f := rootCmd.Flags()
	f.BoolVarP(&flags.version, "version", "v", false, "Print the version and exit")
	f.BoolVarP(&cfg.Verbose, "verbose", "V", cfg.Verbose, "Print the resolved configuration before running")
	f.StringVarP(&cfg.DefaultBranch, "default-branch", "b", cfg.DefaultBranch, "Branch to validate against and check out")
	switchFlag(f, &cfg.UntrackedFiles, "untracked-files",
		"Count untracked files as uncommitted changes",
		"Ignore untracked files when checking for uncommitted changes")
	switchFlag(f, &cfg.DeleteFeatureBranch, "delete-feature-branch",
		"Delete the original branch after updating the default branch",
		"Keep the original branch")

	return rootCmd
}

// runFlush is the main logic function of the command.
func runFlush(cmd *cobra.Command, cfg config.Config, opener flush.Opener) error {
	out := cmd.OutOrStdout()
	verbose = cfg.Verbose
	verboseOut = cmd.ErrOrStderr()

	if err := cfg.Validate(); err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "invalid configuration", err)
	}

	if cfg.Verbose {
		rendered, err := cfg.YAML()
		if err != nil {
			return model.WrapCLIError(model.ExitGeneralError, "failed to render configuration", err)
		}
		fmt.Fprint(out, rendered)
	}

	VerboseLog("git-flush %s (commit: %s, built: %s)", Version, Commit, Date)

	cwd, err := os.Getwd()
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "failed to get current directory", err)
	}
	VerboseLog("Working directory: %s", cwd)

	summary, err := flush.New(opener, out).Run(cmd.Context(), cwd, cfg)
	if err != nil {
		return err
	}

	VerboseLog("%s", summary)
	return nil
}

// Execute runs the root command with os.Args and exits the process with
// the code matching the returned error.
func Execute(rootCmd *cobra.Command) {
	rootCmd.SetArgs(NormalizeArgs(os.Args[1:]))
	if err := rootCmd.Execute(); err != nil {
		os.Exit(int(reportError(os.Stderr, err)))
	}
}

// reportError prints err and returns the exit code it maps to.
// FlushError and CLIError carry their own codes; other errors, such as
// flag parsing failures from cobra, exit with ExitGeneralError.
func reportError(w io.Writer, err error) model.ExitCode {
	var flushErr *model.FlushError
	if errors.As(err, &flushErr) {
		printError(w, flushErr.Error(), nil)
		return flushErr.ExitCode()
	}

	var cliErr *model.CLIError
	if errors.As(err, &cliErr) {
		printError(w, cliErr.Message, cliErr.Err)
		return cliErr.Code
	}

	printError(w, err.Error(), nil)
	return model.ExitGeneralError
}

// errorPrefix is red when the output is a terminal. fatih/color turns
// itself off otherwise, and when NO_COLOR is set.
var errorPrefix = color.New(color.FgRed, color.Bold)

// printError writes "Error: <message>" to w.
func printError(w io.Writer, message string, underlying error) {
	prefix := errorPrefix.Sprint("Error:")
	if underlying != nil {
		fmt.Fprintf(w, "%s %s: %v\n", prefix, message, underlying)
	} else {
		fmt.Fprintf(w, "%s %s\n", prefix, message)
	}
}

// VerboseLog prints a message to stderr only when verbose mode is enabled.
func VerboseLog(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(verboseOut, "[verbose] "+format+"\n", args...)
	}
}
