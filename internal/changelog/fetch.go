package changelog

import (
	"context"
	"fmt"
	"time"

	"github.com/ariel-frischer/commitlog/internal/git"
)

// Source is the version-control history a changelog is built from.
// git.Repo and git.CLI both satisfy it.
type Source interface {
	FetchTags(ctx context.Context, remote, branch string) error
	TagCount(ctx context.Context) (int, error)
	TagAt(ctx context.Context, skip int) (string, error)
	Log(ctx context.Context, opts git.LogOptions) ([]string, error)
}

// Range is the pair of tags a release spans.
type Range struct {
	Latest   string
	Previous string
}

// Bounded reports whether both tags were resolved.
func (r Range) Bounded() bool {
	return r.Latest != "" && r.Previous != ""
}

// LogFormat controls how each commit is rendered into a line.
type LogFormat struct {
	Format     string
	DateFormat string
}

// SyncTags fetches tags from remote, bounded by timeout when positive.
// Callers treat the error as a warning.
func SyncTags(ctx context.Context, src Source, remote, branch string, timeout time.Duration) error {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	if err := src.FetchTags(ctx, remote, branch); err != nil {
		return fmt.Errorf("syncing tags from %s: %w", remote, err)
	}
	return nil
}

// ResolveRange selects the two most recent tags by reachability. With fewer
// than two tags the range is unbounded and no error is returned.
func ResolveRange(ctx context.Context, src Source) (Range, error) {
	count, err := src.TagCount(ctx)
	if err != nil {
		return Range{}, fmt.Errorf("counting tags: %w", err)
	}
	if count <= 1 {
		return Range{}, nil
	}

	latest, err := src.TagAt(ctx, 0)
	if err != nil {
		return Range{}, fmt.Errorf("resolving latest tag: %w", err)
	}
	previous, err := src.TagAt(ctx, 1)
	if err != nil {
		return Range{}, fmt.Errorf("resolving previous tag: %w", err)
	}

	return Range{Latest: latest, Previous: previous}, nil
}

// Fetch resolves the tag range and lists its non-merge commits, newest first.
// Without a bounded range the whole history is listed.
func Fetch(ctx context.Context, src Source, format LogFormat) (Range, []string, error) {
	rng, err := ResolveRange(ctx, src)
	if err != nil {
		return Range{}, nil, err
	}

	opts := git.LogOptions{
		Format:     format.Format,
		DateFormat: format.DateFormat,
	}
	if rng.Bounded() {
		opts.From = rng.Latest
		opts.To = rng.Previous
	}

	commits, err := src.Log(ctx, opts)
	if err != nil {
		return Range{}, nil, fmt.Errorf("fetching commits: %w", err)
	}
	return rng, commits, nil
}
