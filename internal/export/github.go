package export

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
)

// EnvGitHubOutput names the file GitHub Actions reads step outputs from.
const EnvGitHubOutput = "GITHUB_OUTPUT"

// ErrNoOutputFile is returned when no GitHub output file is configured.
var ErrNoOutputFile = errors.New(EnvGitHubOutput + " is not set")

// GitHubOutput appends values to the GitHub Actions step output file using
// the multiline heredoc syntax.
type GitHubOutput struct {
	path      string
	delimiter func() string
}

// NewGitHubOutput writes to path, or to $GITHUB_OUTPUT when path is empty.
func NewGitHubOutput(path string) *GitHubOutput {
	return &GitHubOutput{
		path:      path,
		delimiter: func() string { return "ghadelimiter_" + uuid.NewString() },
	}
}

func (g *GitHubOutput) Name() string { return NameGitHub }

// Export appends "key<<DELIM\nvalue\nDELIM\n". A fresh delimiter is drawn
// until it does not occur in value.
func (g *GitHubOutput) Export(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path := g.path
	if path == "" {
		path = os.Getenv(EnvGitHubOutput)
	}
	if path == "" {
		return ErrNoOutputFile
	}

	delim := g.delimiter()
	for strings.Contains(value, delim) || strings.Contains(key, delim) {
		delim = g.delimiter()
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening output file: %w", err)
	}
	defer f.Close()

	if _, err := fmt.Fprintf(f, "%s<<%s\n%s\n%s\n", key, delim, value, delim); err != nil {
		return fmt.Errorf("writing output file: %w", err)
	}
	return nil
}
