package errors

import "fmt"

// Common error messages for the commitlog CLI.

// InvalidConfig creates an error for a configuration that failed to load.
func InvalidConfig(err error) *CLIError {
	return WrapWithMessage(err, Configuration, "invalid configuration",
		"Check .commitlog.yml or the file passed with --config",
		"Run 'commitlog config keys' to list valid keys and values",
		"Unset COMMITLOG_* variables that hold unexpected values",
	)
}

// RepositoryNotFound creates an error for a directory that is not a git repository.
func RepositoryNotFound(path string, err error) *CLIError {
	return WrapWithMessage(err, Repository, fmt.Sprintf("cannot open repository at %s", path),
		"Run commitlog inside a git working tree",
		"Or point at one with --repo <dir>",
	)
}

// CommitListFailed creates an error for a failed history read.
func CommitListFailed(err error) *CLIError {
	return WrapWithMessage(err, Repository, "failed to read commits",
		"Make sure the checkout contains the tagged history (fetch-depth: 0 on CI)",
		"Retry with --backend cli to use the git binary",
	)
}

// UnknownConfigKey creates an error for a key missing from the registry.
func UnknownConfigKey(key string) *CLIError {
	err := NewArgumentError(
		fmt.Sprintf("unknown configuration key: %s", key),
		"Run 'commitlog config keys' to list valid keys",
	)
	err.Usage = "commitlog config keys [key]"
	return err
}
