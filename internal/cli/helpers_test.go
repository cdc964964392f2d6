package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/ariel-frischer/commitlog/internal/changelog"
	"github.com/ariel-frischer/commitlog/internal/config"
	"github.com/ariel-frischer/commitlog/internal/export"
	"github.com/ariel-frischer/commitlog/internal/git"
)

// stubSource serves fixed tags and commits.
type stubSource struct {
	tags     []string
	commits  []string
	fetchErr error
	logErr   error
	fetched  int
}

func (s *stubSource) FetchTags(context.Context, string, string) error {
	s.fetched++
	return s.fetchErr
}

func (s *stubSource) TagCount(context.Context) (int, error) { return len(s.tags), nil }

func (s *stubSource) TagAt(_ context.Context, skip int) (string, error) {
	if skip >= len(s.tags) {
		return "", git.ErrNoTags
	}
	return s.tags[skip], nil
}

func (s *stubSource) Log(context.Context, git.LogOptions) ([]string, error) {
	return s.commits, s.logErr
}

// recordingExporter keeps every exported value.
type recordingExporter struct {
	values map[string]string
	failOn string
}

func (r *recordingExporter) Name() string { return "recording" }

func (r *recordingExporter) Export(_ context.Context, key, value string) error {
	if key == r.failOn {
		return errExportFailed
	}
	r.values[key] = value
	return nil
}

var errExportFailed = errors.New("envman not installed")

// resetFlags restores every flag in the command tree to its default.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// isolateConfig blanks the environment variables the config loader reads.
func isolateConfig(t *testing.T) {
	t.Helper()
	for key, schema := range config.KnownKeys {
		t.Setenv(config.EnvPrefix+strings.ToUpper(key), "")
		if schema.StepInput {
			t.Setenv(key, "")
		}
	}
}

type runResult struct {
	stdout string
	stderr string
	err    error
}

// runCLI executes the root command with stubbed history and exporter.
func runCLI(t *testing.T, src changelog.Source, exp export.Exporter, args ...string) runResult {
	t.Helper()
	isolateConfig(t)
	resetFlags(rootCmd)
	t.Cleanup(func() { resetFlags(rootCmd) })

	origSource, origExporter := newSource, newExporter
	t.Cleanup(func() { newSource, newExporter = origSource, origExporter })
	newSource = func(*config.Configuration) (changelog.Source, error) { return src, nil }
	newExporter = func(string) (export.Exporter, error) { return exp, nil }

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	rootCmd.SetArgs(append([]string{"--repo", t.TempDir()}, args...))
	err := rootCmd.ExecuteContext(context.Background())
	return runResult{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func newRecorder() *recordingExporter {
	return &recordingExporter{values: make(map[string]string)}
}

func requireExitCode(t *testing.T, err error, code int) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, code, ExitCode(err))
}
