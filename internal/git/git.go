// Package git reads tag and commit history for commitlog. Repo uses the go-git
// library and needs no git binary; CLI shells out to git with the same commands
// a release script would run. Both expose the same four operations: tag sync,
// tag count, reachability-ordered tag lookup and non-merge log listing.
package git

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/plumbing/transport/http"
	"github.com/go-git/go-git/v5/plumbing/transport/ssh"
)

// debugLogger is a function that logs debug messages when debug mode is enabled.
// By default, it's a no-op. Set it via SetDebugLogger to enable debug output.
var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for git operations.
// Pass nil to disable debug logging.
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

// logDebug logs a debug message if the debug logger is set.
func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}

// ErrNoTags is returned by TagAt when no tag is reachable from the selected commit.
var ErrNoTags = errors.New("no tags can describe the commit")

// LogOptions selects and formats commits for Log.
type LogOptions struct {
	// From and To bound a symmetric range (From...To). Both empty means all
	// history reachable from HEAD.
	From string
	To   string
	// Format is a git pretty format, e.g. "%s (%cn)".
	Format string
	// DateFormat is a strftime pattern used for %ad and %cd.
	DateFormat string
}

// Bounded reports whether the options describe a tag range.
func (o LogOptions) Bounded() bool {
	return o.From != "" && o.To != ""
}

// Repo reads history through go-git.
type Repo struct {
	repo *git.Repository
}

// Open opens the repository containing path, walking up to find .git.
// An empty path means the current working directory.
func Open(path string) (*Repo, error) {
	if path == "" {
		var err error
		path, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
	}

	logDebug("[git] opening repository at %s", path)

	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", path, err)
	}

	return &Repo{repo: repo}, nil
}

// NewRepo wraps an already opened go-git repository.
func NewRepo(repo *git.Repository) *Repo {
	return &Repo{repo: repo}
}

// FetchTags fetches all tags and the given branch from remote.
// An up-to-date remote is not an error.
func (r *Repo) FetchTags(ctx context.Context, remoteName, branch string) error {
	remote, err := r.repo.Remote(remoteName)
	if err != nil {
		return fmt.Errorf("looking up remote %q: %w", remoteName, err)
	}

	remoteConfig := remote.Config()
	if len(remoteConfig.URLs) == 0 {
		return fmt.Errorf("remote %q has no URL", remoteName)
	}
	url := remoteConfig.URLs[0]

	refSpecs := []config.RefSpec{"+refs/tags/*:refs/tags/*"}
	if branch != "" {
		refSpecs = append(refSpecs, config.RefSpec(
			fmt.Sprintf("+refs/heads/%s:refs/remotes/%s/%s", branch, remoteName, branch)))
	}

	logDebug("[git] fetching tags from remote '%s' (%s)", remoteName, url)

	err = r.repo.FetchContext(ctx, &git.FetchOptions{
		RemoteName: remoteName,
		RefSpecs:   refSpecs,
		Tags:       git.AllTags,
		Auth:       getAuthForURL(url),
	})
	if err == git.NoErrAlreadyUpToDate {
		return nil
	}
	if err != nil {
		return fmt.Errorf("fetching tags from %s: %w", remoteName, err)
	}
	return nil
}

// getAuthForURL returns the appropriate authentication method for a remote URL.
// SSH URLs use SSH agent auth, HTTPS URLs use environment credentials.
func getAuthForURL(url string) transport.AuthMethod {
	if isSSHURL(url) {
		if !isSSHAgentAvailable() {
			return nil
		}
		auth, err := ssh.NewSSHAgentAuth("git")
		if err != nil {
			logDebug("[git] SSH agent auth failed: %v", err)
			return nil
		}
		return auth
	}

	username := os.Getenv("GIT_USERNAME")
	password := os.Getenv("GIT_PASSWORD")
	if username == "" {
		username = os.Getenv("GITHUB_TOKEN")
		if username != "" {
			password = "" // GitHub token can be used as username with empty password
		}
	}

	if username != "" {
		return &http.BasicAuth{
			Username: username,
			Password: password,
		}
	}

	return nil
}

// isSSHURL detects git@ (SCP-style), ssh:// and git+ssh:// remotes.
func isSSHURL(url string) bool {
	return strings.HasPrefix(url, "git@") ||
		strings.HasPrefix(url, "ssh://") ||
		strings.HasPrefix(url, "git+ssh://")
}

func isSSHAgentAvailable() bool {
	return strings.TrimSpace(os.Getenv("SSH_AUTH_SOCK")) != ""
}
