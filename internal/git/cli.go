package git

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/ariel-frischer/commitlog/internal/command"
)

// CLI reads history by running the git binary.
type CLI struct {
	dir    string
	runner command.Runner
}

// NewCLI returns a CLI backend for the repository at dir. A nil runner uses
// command.Exec.
func NewCLI(dir string, runner command.Runner) *CLI {
	if runner == nil {
		runner = command.Exec{}
	}
	return &CLI{dir: dir, runner: runner}
}

func (c *CLI) git(ctx context.Context, args ...string) (string, error) {
	logDebug("[git] git %s", strings.Join(args, " "))
	out, err := c.runner.Run(ctx, c.dir, "git", args...)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// FetchTags runs `git fetch --tags <remote> refs/heads/<branch>`.
func (c *CLI) FetchTags(ctx context.Context, remote, branch string) error {
	args := []string{"fetch", "--tags", remote}
	if branch != "" {
		args = append(args, "refs/heads/"+branch)
	}
	if _, err := c.git(ctx, args...); err != nil {
		return fmt.Errorf("fetching tags from %s: %w", remote, err)
	}
	return nil
}

// TagCount counts the lines of `git tag -l`.
func (c *CLI) TagCount(ctx context.Context) (int, error) {
	out, err := c.git(ctx, "tag", "-l")
	if err != nil {
		return 0, fmt.Errorf("listing tags: %w", err)
	}
	return len(nonEmptyLines(out)), nil
}

// TagAt runs `git rev-list --tags --skip=N --max-count=1` and describes the
// resulting commit with `git describe --abbrev=0 --tags`.
func (c *CLI) TagAt(ctx context.Context, skip int) (string, error) {
	out, err := c.git(ctx, "rev-list", "--tags", "--skip="+strconv.Itoa(skip), "--max-count=1")
	if err != nil {
		return "", fmt.Errorf("rev-list --tags --skip=%d: %w", skip, err)
	}
	commit := strings.TrimSpace(out)
	if commit == "" {
		return "", fmt.Errorf("rev-list --tags --skip=%d: %w", skip, ErrNoTags)
	}

	out, err = c.git(ctx, "describe", "--abbrev=0", "--tags", commit)
	if err != nil {
		return "", fmt.Errorf("describing %s: %w", commit, err)
	}
	return strings.TrimSpace(out), nil
}

// Log runs `git log --no-merges --pretty=format:F --date=format:D [From...To]`.
func (c *CLI) Log(ctx context.Context, opts LogOptions) ([]string, error) {
	args := []string{
		"log",
		"--no-merges",
		"--pretty=format:" + opts.Format,
		"--date=format:" + opts.DateFormat,
	}
	if opts.Bounded() {
		args = append(args, opts.From+"..."+opts.To)
	}

	out, err := c.git(ctx, args...)
	if err != nil {
		return nil, fmt.Errorf("listing commits: %w", err)
	}
	return nonEmptyLines(out), nil
}

func nonEmptyLines(s string) []string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
