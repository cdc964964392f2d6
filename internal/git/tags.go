package git

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
)

// tagInfo is a tag name together with the commit it points at.
type tagInfo struct {
	name      string
	commit    *object.Commit
	annotated bool
	tagger    int64 // unix seconds, zero for lightweight tags
}

// TagCount returns the number of tag references, like `git tag -l | wc -l`.
func (r *Repo) TagCount(ctx context.Context) (int, error) {
	iter, err := r.repo.Tags()
	if err != nil {
		return 0, fmt.Errorf("listing tags: %w", err)
	}
	defer iter.Close()

	count := 0
	err = iter.ForEach(func(*plumbing.Reference) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		count++
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("counting tags: %w", err)
	}

	logDebug("[git] TagCount: %d", count)
	return count, nil
}

// TagAt mirrors `git rev-list --tags --skip=N --max-count=1` followed by
// `git describe --abbrev=0 --tags <commit>`: it takes the skip-th commit, in
// committer-date order, among all commits reachable from any tag, and returns
// the nearest tag reachable from it. Selection is by reachability, never by
// version number.
func (r *Repo) TagAt(ctx context.Context, skip int) (string, error) {
	tags, err := r.tags()
	if err != nil {
		return "", err
	}
	if len(tags) == 0 {
		return "", ErrNoTags
	}

	starts := make([]*object.Commit, 0, len(tags))
	for _, t := range tags {
		starts = append(starts, t.commit)
	}

	commits, err := reachable(ctx, r.repo.CommitObject, starts...)
	if err != nil {
		return "", err
	}
	ordered := byCommitterTime(commits)
	if skip < 0 || skip >= len(ordered) {
		return "", fmt.Errorf("rev-list --tags --skip=%d: %w", skip, ErrNoTags)
	}

	name, err := describe(ordered[skip], tags)
	if err != nil {
		return "", err
	}

	logDebug("[git] TagAt(%d): %s (%s)", skip, name, ordered[skip].Hash)
	return name, nil
}

// tags collects every tag that peels to a commit, in reference order.
func (r *Repo) tags() ([]tagInfo, error) {
	iter, err := r.repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}
	defer iter.Close()

	var tags []tagInfo
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		info, ok, err := r.peel(ref)
		if err != nil {
			return err
		}
		if ok {
			tags = append(tags, info)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("resolving tags: %w", err)
	}
	return tags, nil
}

// peel follows annotated tag objects down to a commit. Tags pointing at trees
// or blobs are skipped.
func (r *Repo) peel(ref *plumbing.Reference) (tagInfo, bool, error) {
	info := tagInfo{name: ref.Name().Short()}
	hash := ref.Hash()

	for {
		tag, err := r.repo.TagObject(hash)
		if errors.Is(err, plumbing.ErrObjectNotFound) {
			break
		}
		if err != nil {
			return info, false, fmt.Errorf("reading tag %s: %w", info.name, err)
		}
		if !info.annotated {
			info.annotated = true
			info.tagger = tag.Tagger.When.Unix()
		}
		if tag.TargetType != plumbing.TagObject && tag.TargetType != plumbing.CommitObject {
			return info, false, nil
		}
		hash = tag.Target
	}

	commit, err := r.repo.CommitObject(hash)
	if errors.Is(err, plumbing.ErrObjectNotFound) {
		return info, false, nil
	}
	if err != nil {
		return info, false, fmt.Errorf("reading commit for tag %s: %w", info.name, err)
	}
	info.commit = commit
	return info, true, nil
}

// describe returns the tag nearest to c, walking history in committer-date
// order. When several tags point at the same commit, annotated tags win, then
// the newest tagger date, then the lexically smallest name.
func describe(c *object.Commit, tags []tagInfo) (string, error) {
	byCommit := make(map[plumbing.Hash][]tagInfo)
	for _, t := range tags {
		byCommit[t.commit.Hash] = append(byCommit[t.commit.Hash], t)
	}

	var found []tagInfo
	iter := object.NewCommitIterCTime(c, nil, nil)
	defer iter.Close()

	err := iter.ForEach(func(commit *object.Commit) error {
		if candidates, ok := byCommit[commit.Hash]; ok {
			found = candidates
			return storer.ErrStop
		}
		return nil
	})
	if err != nil && !errors.Is(err, plumbing.ErrObjectNotFound) {
		return "", fmt.Errorf("describing %s: %w", c.Hash, err)
	}
	if len(found) == 0 {
		return "", fmt.Errorf("describing %s: %w", c.Hash, ErrNoTags)
	}

	sort.SliceStable(found, func(i, j int) bool {
		a, b := found[i], found[j]
		if a.annotated != b.annotated {
			return a.annotated
		}
		if a.tagger != b.tagger {
			return a.tagger > b.tagger
		}
		return a.name < b.name
	})
	return found[0].name, nil
}

// commitLookup resolves a hash to a commit.
type commitLookup func(plumbing.Hash) (*object.Commit, error)

// reachable returns every commit reachable from starts, in discovery order.
// Missing parents (shallow clones) end the walk along that line.
func reachable(ctx context.Context, lookup commitLookup, starts ...*object.Commit) ([]*object.Commit, error) {
	seen := make(map[plumbing.Hash]bool)
	var out []*object.Commit
	queue := append([]*object.Commit(nil), starts...)

	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		c := queue[0]
		queue = queue[1:]
		if seen[c.Hash] {
			continue
		}
		seen[c.Hash] = true
		out = append(out, c)

		for _, h := range c.ParentHashes {
			if seen[h] {
				continue
			}
			parent, err := lookup(h)
			if errors.Is(err, plumbing.ErrObjectNotFound) {
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("reading commit %s: %w", h, err)
			}
			queue = append(queue, parent)
		}
	}

	return out, nil
}

// byCommitterTime sorts newest first, keeping discovery order for ties.
func byCommitterTime(commits []*object.Commit) []*object.Commit {
	sorted := append([]*object.Commit(nil), commits...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Committer.When.After(sorted[j].Committer.When)
	})
	return sorted
}
