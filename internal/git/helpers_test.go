package git

import (
	"fmt"
	"testing"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/storage/memory"
	"github.com/stretchr/testify/require"
)

// testRepo builds an in-memory repository with deterministic commit times.
type testRepo struct {
	t     *testing.T
	repo  *gogit.Repository
	fs    billy.Filesystem
	clock time.Time
	n     int
}

func newTestRepo(t *testing.T) *testRepo {
	t.Helper()
	fs := memfs.New()
	repo, err := gogit.Init(memory.NewStorage(), fs)
	require.NoError(t, err)
	return &testRepo{
		t:     t,
		repo:  repo,
		fs:    fs,
		clock: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (r *testRepo) signature(name string) *object.Signature {
	return &object.Signature{Name: name, Email: name + "@example.com", When: r.clock}
}

// commit writes a unique file change and commits it one minute after the
// previous commit. Parents override HEAD as the parent list.
func (r *testRepo) commit(msg, committer string, parents ...plumbing.Hash) plumbing.Hash {
	r.t.Helper()
	r.n++
	r.clock = r.clock.Add(time.Minute)

	f, err := r.fs.Create(fmt.Sprintf("file-%d.txt", r.n))
	require.NoError(r.t, err)
	_, err = f.Write([]byte(msg))
	require.NoError(r.t, err)
	require.NoError(r.t, f.Close())

	wt, err := r.repo.Worktree()
	require.NoError(r.t, err)
	_, err = wt.Add(fmt.Sprintf("file-%d.txt", r.n))
	require.NoError(r.t, err)

	h, err := wt.Commit(msg, &gogit.CommitOptions{
		Author:    r.signature(committer),
		Committer: r.signature(committer),
		Parents:   parents,
	})
	require.NoError(r.t, err)
	return h
}

func (r *testRepo) tag(name string, h plumbing.Hash) {
	r.t.Helper()
	_, err := r.repo.CreateTag(name, h, nil)
	require.NoError(r.t, err)
}

func (r *testRepo) annotatedTag(name string, h plumbing.Hash) {
	r.t.Helper()
	r.clock = r.clock.Add(time.Second)
	_, err := r.repo.CreateTag(name, h, &gogit.CreateTagOptions{
		Tagger:  r.signature("releaser"),
		Message: "release " + name,
	})
	require.NoError(r.t, err)
}

func (r *testRepo) Repo() *Repo {
	return NewRepo(r.repo)
}
