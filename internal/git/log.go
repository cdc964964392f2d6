package git

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Log lists non-merge commits newest first. Each commit's formatted text is
// split into output lines and blank lines are dropped, so multi-line formats
// (%n, %b, %B) yield the same lines as `git log`. A bounded range is symmetric (From...To): commits reachable from exactly one
// side. An unbounded range walks everything reachable from HEAD.
func (r *Repo) Log(ctx context.Context, opts LogOptions) ([]string, error) {
	pretty, err := NewPrettyFormat(opts.Format, opts.DateFormat)
	if err != nil {
		return nil, err
	}

	commits, err := r.logCommits(ctx, opts)
	if err != nil {
		return nil, err
	}

	lines := make([]string, 0, len(commits))
	for _, c := range byCommitterTime(commits) {
		if c.NumParents() > 1 {
			continue
		}
		lines = append(lines, nonEmptyLines(pretty.Expand(c))...)
	}

	logDebug("[git] Log: %d lines from %d commits", len(lines), len(commits))
	return lines, nil
}

func (r *Repo) logCommits(ctx context.Context, opts LogOptions) ([]*object.Commit, error) {
	if !opts.Bounded() {
		head, err := r.repo.Head()
		if err != nil {
			return nil, fmt.Errorf("getting HEAD reference: %w", err)
		}
		start, err := r.repo.CommitObject(head.Hash())
		if err != nil {
			return nil, fmt.Errorf("reading HEAD commit: %w", err)
		}
		return reachable(ctx, r.repo.CommitObject, start)
	}

	from, err := r.resolveCommit(opts.From)
	if err != nil {
		return nil, err
	}
	to, err := r.resolveCommit(opts.To)
	if err != nil {
		return nil, err
	}

	left, err := reachable(ctx, r.repo.CommitObject, from)
	if err != nil {
		return nil, err
	}
	right, err := reachable(ctx, r.repo.CommitObject, to)
	if err != nil {
		return nil, err
	}

	return symmetricDifference(left, right), nil
}

// resolveCommit resolves a tag name (preferred) or any revision to a commit.
func (r *Repo) resolveCommit(name string) (*object.Commit, error) {
	ref, err := r.repo.Reference(plumbing.NewTagReferenceName(name), true)
	if err == nil {
		info, ok, err := r.peel(ref)
		if err != nil {
			return nil, err
		}
		if ok {
			return info.commit, nil
		}
	} else if !errors.Is(err, plumbing.ErrReferenceNotFound) {
		return nil, fmt.Errorf("resolving tag %s: %w", name, err)
	}

	hash, err := r.repo.ResolveRevision(plumbing.Revision(name))
	if err != nil {
		return nil, fmt.Errorf("resolving revision %s: %w", name, err)
	}
	commit, err := r.repo.CommitObject(*hash)
	if err != nil {
		return nil, fmt.Errorf("reading commit %s: %w", name, err)
	}
	return commit, nil
}

// symmetricDifference keeps commits present on exactly one side, preserving
// left-then-right discovery order.
func symmetricDifference(left, right []*object.Commit) []*object.Commit {
	inLeft := make(map[plumbing.Hash]bool, len(left))
	for _, c := range left {
		inLeft[c.Hash] = true
	}
	inRight := make(map[plumbing.Hash]bool, len(right))
	for _, c := range right {
		inRight[c.Hash] = true
	}

	var out []*object.Commit
	for _, c := range left {
		if !inRight[c.Hash] {
			out = append(out, c)
		}
	}
	for _, c := range right {
		if !inLeft[c.Hash] {
			out = append(out, c)
		}
	}
	return out
}
