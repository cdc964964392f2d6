package changelog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ariel-frischer/commitlog/internal/git"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSource serves canned tags and commits.
type fakeSource struct {
	tags     []string
	commits  []string
	countErr error
	tagErr   error
	logErr   error
	fetchErr error

	fetched []string
	logged  []git.LogOptions
}

func (f *fakeSource) FetchTags(ctx context.Context, remote, branch string) error {
	f.fetched = append(f.fetched, remote+" "+branch)
	if f.fetchErr != nil {
		return f.fetchErr
	}
	return ctx.Err()
}

func (f *fakeSource) TagCount(context.Context) (int, error) {
	return len(f.tags), f.countErr
}

func (f *fakeSource) TagAt(_ context.Context, skip int) (string, error) {
	if f.tagErr != nil {
		return "", f.tagErr
	}
	if skip >= len(f.tags) {
		return "", git.ErrNoTags
	}
	return f.tags[skip], nil
}

func (f *fakeSource) Log(_ context.Context, opts git.LogOptions) ([]string, error) {
	f.logged = append(f.logged, opts)
	return f.commits, f.logErr
}

func TestResolveRange(t *testing.T) {
	tests := map[string]struct {
		src         *fakeSource
		want        Range
		wantBounded bool
		wantErr     string
	}{
		"no tags": {
			src: &fakeSource{},
		},
		"one tag is unbounded": {
			src: &fakeSource{tags: []string{"v1.0.0"}},
		},
		"two tags": {
			src:         &fakeSource{tags: []string{"v1.1.0", "v1.0.0"}},
			want:        Range{Latest: "v1.1.0", Previous: "v1.0.0"},
			wantBounded: true,
		},
		"count failure": {
			src:     &fakeSource{countErr: errors.New("boom")},
			wantErr: "counting tags: boom",
		},
		"lookup failure with many tags": {
			src:     &fakeSource{tags: []string{"a", "b"}, tagErr: errors.New("bad object")},
			wantErr: "resolving latest tag: bad object",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := ResolveRange(context.Background(), tt.src)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantBounded, got.Bounded())
		})
	}
}

func TestFetch(t *testing.T) {
	format := LogFormat{Format: "%s (%cn)", DateFormat: "%Y"}

	t.Run("bounded range passes both tags", func(t *testing.T) {
		src := &fakeSource{tags: []string{"v2", "v1"}, commits: []string{"feat: a (Ann)"}}

		rng, commits, err := Fetch(context.Background(), src, format)
		require.NoError(t, err)
		assert.Equal(t, "v2", rng.Latest)
		assert.Equal(t, []string{"feat: a (Ann)"}, commits)
		require.Len(t, src.logged, 1)
		assert.Equal(t, git.LogOptions{From: "v2", To: "v1", Format: "%s (%cn)", DateFormat: "%Y"}, src.logged[0])
	})

	t.Run("single tag lists all history", func(t *testing.T) {
		src := &fakeSource{tags: []string{"v1"}, commits: []string{"init (Ann)"}}

		rng, _, err := Fetch(context.Background(), src, format)
		require.NoError(t, err)
		assert.False(t, rng.Bounded())
		require.Len(t, src.logged, 1)
		assert.False(t, src.logged[0].Bounded())
	})

	t.Run("log failure is fatal", func(t *testing.T) {
		src := &fakeSource{logErr: errors.New("not a git repository")}

		_, _, err := Fetch(context.Background(), src, format)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "fetching commits: not a git repository")
	})
}

func TestSyncTags(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		src := &fakeSource{}
		require.NoError(t, SyncTags(context.Background(), src, "origin", "main", time.Second))
		assert.Equal(t, []string{"origin main"}, src.fetched)
	})

	t.Run("failure is wrapped", func(t *testing.T) {
		src := &fakeSource{fetchErr: errors.New("no network")}
		err := SyncTags(context.Background(), src, "origin", "main", 0)
		require.Error(t, err)
		assert.Equal(t, "syncing tags from origin: no network", err.Error())
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := SyncTags(ctx, &fakeSource{}, "origin", "main", time.Second)
		require.Error(t, err)
		assert.True(t, errors.Is(err, context.Canceled))
	})
}
