// Package config resolves the git-flush configuration.
//
// Values are merged in increasing precedence: built-in defaults, then the
// GIT_FLUSH_* environment variables, then command-line flags. Load is called
// once at process start and the resulting Config is passed by value into the
// workflow, so nothing reads the environment after the run has begun.
package config

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Environment variables consulted by Load. No other variables are read.
const (
	EnvDefaultBranch       = "GIT_FLUSH_DEFAULT_BRANCH"
	EnvUntrackedFiles      = "GIT_FLUSH_UNTRACKED_FILES"
	EnvDeleteFeatureBranch = "GIT_FLUSH_DELETE_FEATURE_BRANCH"
)

// Built-in defaults, used when neither the environment nor a flag sets a value.
const (
	DefaultBranch              = "main"
	DefaultUntrackedFiles      = true
	DefaultDeleteFeatureBranch = false
)

// Config holds the resolved settings for one run.
type Config struct {
	// DefaultBranch is validated against the repository refs and checked out.
	DefaultBranch string `yaml:"default_branch"`

	// UntrackedFiles makes untracked files count as uncommitted changes.
	UntrackedFiles bool `yaml:"untracked_files"`

	// DeleteFeatureBranch force-deletes the original branch at the end of a run.
	DeleteFeatureBranch bool `yaml:"delete_feature_branch"`

	// Verbose prints the resolved configuration before running.
	Verbose bool `yaml:"verbose"`
}

// LookupFunc has the signature of os.LookupEnv. Tests pass a map-backed
// function instead of mutating the process environment.
type LookupFunc func(key string) (string, bool)

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		DefaultBranch:       DefaultBranch,
		UntrackedFiles:      DefaultUntrackedFiles,
		DeleteFeatureBranch: DefaultDeleteFeatureBranch,
	}
}

// Load returns the defaults overlaid with the environment read through lookup.
// Variables that are unset, or set to an empty or blank string, keep the default.
func Load(lookup LookupFunc) Config {
	cfg := Defaults()
	if lookup == nil {
		return cfg
	}

	if v, ok := lookupNonEmpty(lookup, EnvDefaultBranch); ok {
		cfg.DefaultBranch = v
	}
	if v, ok := lookupNonEmpty(lookup, EnvUntrackedFiles); ok {
		cfg.UntrackedFiles = ParseTruthy(v)
	}
	if v, ok := lookupNonEmpty(lookup, EnvDeleteFeatureBranch); ok {
		cfg.DeleteFeatureBranch = ParseTruthy(v)
	}

	return cfg
}

func lookupNonEmpty(lookup LookupFunc, key string) (string, bool) {
	v, ok := lookup(key)
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}

// truthyValues is the fixed set of strings ParseTruthy accepts as true.
var truthyValues = map[string]bool{
	"true": true,
	"t":    true,
	"1":    true,
	"yes":  true,
	"y":    true,
}

// ParseTruthy reports whether s is one of "true", "t", "1", "yes" or "y",
// ignoring case and surrounding whitespace. Everything else is false.
func ParseTruthy(s string) bool {
	return truthyValues[strings.ToLower(strings.TrimSpace(s))]
}

// Validate rejects configurations no run could succeed with.
func (c Config) Validate() error {
	if strings.TrimSpace(c.DefaultBranch) == "" {
		return fmt.Errorf("default branch must not be empty")
	}
	return nil
}

// YAML renders the configuration for verbose output.
func (c Config) YAML() (string, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("failed to serialize configuration: %w", err)
	}
	return string(data), nil
}
