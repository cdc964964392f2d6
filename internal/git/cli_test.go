package git

import (
	"context"
	"errors"
	"testing"

	"github.com/ariel-frischer/commitlog/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCLI_TagCount(t *testing.T) {
	runner := testutil.NewFakeRunnerBuilder(t).
		On("git tag -l", "v1.0.0\nv1.1.0\n\n").
		Build()

	got, err := NewCLI("/repo", runner).TagCount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, got)

	calls := runner.GetCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, "/repo", calls[0].Dir)
}

func TestCLI_TagAt(t *testing.T) {
	runner := testutil.NewFakeRunnerBuilder(t).
		On("git rev-list --tags --skip=1 --max-count=1", "abc123\n").
		On("git describe --abbrev=0 --tags abc123", "v1.0.0\n").
		Build()

	got, err := NewCLI("/repo", runner).TagAt(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "v1.0.0", got)
	assert.Equal(t, []string{
		"git rev-list --tags --skip=1 --max-count=1",
		"git describe --abbrev=0 --tags abc123",
	}, runner.CommandLines())
}

func TestCLI_TagAt_NoCommit(t *testing.T) {
	runner := testutil.NewFakeRunnerBuilder(t).On("git rev-list", "").Build()

	_, err := NewCLI("", runner).TagAt(context.Background(), 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoTags))
}

func TestCLI_Log(t *testing.T) {
	tests := map[string]struct {
		opts     LogOptions
		wantArgs []string
	}{
		"bounded": {
			opts: LogOptions{From: "v2", To: "v1", Format: "%s (%cn)", DateFormat: "%Y"},
			wantArgs: []string{
				"log", "--no-merges", "--pretty=format:%s (%cn)", "--date=format:%Y", "v2...v1",
			},
		},
		"unbounded": {
			opts: LogOptions{Format: "%s", DateFormat: "%Y"},
			wantArgs: []string{
				"log", "--no-merges", "--pretty=format:%s", "--date=format:%Y",
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			runner := testutil.NewFakeRunnerBuilder(t).
				On("git log", "feat: a (Ann)\nfix: b (Bob)").
				Build()

			got, err := NewCLI("", runner).Log(context.Background(), tt.opts)
			require.NoError(t, err)
			assert.Equal(t, []string{"feat: a (Ann)", "fix: b (Bob)"}, got)

			calls := runner.GetCalls()
			require.Len(t, calls, 1)
			assert.Equal(t, tt.wantArgs, calls[0].Args)
		})
	}
}

func TestCLI_Log_MultiLineFormatMatchesRepo(t *testing.T) {
	r := newTestRepo(t)
	r.commit("feat: add login\n\nbody text", "Ann")
	r.commit("fix: crash\n\nfeat: hidden body line", "Bob")
	opts := LogOptions{Format: "%s%n%b"}

	// git prints %b with its trailing newline, leaving blank lines between commits.
	runner := testutil.NewFakeRunnerBuilder(t).
		On("git log", "fix: crash\nfeat: hidden body line\n\nfeat: add login\nbody text\n").
		Build()

	fromCLI, err := NewCLI("", runner).Log(context.Background(), opts)
	require.NoError(t, err)
	fromRepo, err := r.Repo().Log(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, fromRepo, fromCLI)
	assert.Len(t, fromCLI, 4)
}

func TestCLI_Log_Failure(t *testing.T) {
	runner := testutil.NewFakeRunnerBuilder(t).
		OnError("git log", errors.New("fatal: bad revision")).
		Build()

	_, err := NewCLI("", runner).Log(context.Background(), LogOptions{Format: "%s"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "listing commits")
}

func TestCLI_FetchTags(t *testing.T) {
	runner := testutil.NewFakeRunnerBuilder(t).WithDefault("", nil).Build()

	require.NoError(t, NewCLI("", runner).FetchTags(context.Background(), "origin", "main"))
	assert.Equal(t, []string{"git fetch --tags origin refs/heads/main"}, runner.CommandLines())
}
