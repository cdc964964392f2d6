package cli

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ariel-frischer/commitlog/internal/export"
)

func releaseSource() *stubSource {
	return &stubSource{
		tags: []string{"v1.1.0", "v1.0.0"},
		commits: []string{
			"fix: null pointer (Cid)",
			"feat(JRA-1): add login (Bob)",
			"docs: readme (Dee)",
		},
	}
}

func TestGenerate_PrintsTextThenMarkdown(t *testing.T) {
	rec := newRecorder()
	res := runCLI(t, releaseSource(), rec, "--no-fetch")
	require.NoError(t, res.err)

	want := "v1.1.0\n------\n\nFix: null pointer (Cid)\nFeat(JRA-1): add login (Bob)\nDocs: readme (Dee)\n" +
		"#v1.1.0\n------\n\n## 🎉 Features\n------\n - JRA-1 Add login (Bob)\n\n\n## 🐛 Bugfixes\n------\n - Null pointer (Cid)\n\n\n"
	assert.Equal(t, want, res.stdout)
}

func TestGenerate_ExportsAllVariables(t *testing.T) {
	rec := newRecorder()
	res := runCLI(t, releaseSource(), rec, "generate", "--no-fetch")
	require.NoError(t, res.err)

	assert.Len(t, rec.values, 4)
	assert.Contains(t, rec.values[export.KeyConventional], "Features\n------\nJRA-1 Add login (Bob)")
	assert.Equal(t,
		`{"features":["JRA-1 Add login (Bob)"],"fixes":["Null pointer (Cid)"],"maintenance":[],"format":[],"tests":[],"refactors":[],"documentation":["Readme (Dee)"],"other":[]}`,
		rec.values[export.KeySections])
}

func TestGenerate_SoftFailures(t *testing.T) {
	src := releaseSource()
	src.fetchErr = errors.New("could not read Username")
	rec := newRecorder()
	rec.failOn = export.KeyMarkdown

	res := runCLI(t, src, rec)
	require.NoError(t, res.err)

	assert.Equal(t, 1, src.fetched)
	assert.Contains(t, res.stderr, "failed fetching tags")
	assert.Contains(t, res.stderr, "envman not installed")
	assert.Len(t, rec.values, 3, "other variables are still exported")
	assert.NotEmpty(t, res.stdout)
}

func TestGenerate_SkipFetch(t *testing.T) {
	src := releaseSource()
	res := runCLI(t, src, newRecorder(), "--no-fetch")
	require.NoError(t, res.err)
	assert.Zero(t, src.fetched)
}

func TestGenerate_SingleTagHasNoTitle(t *testing.T) {
	src := &stubSource{tags: []string{"v1.0.0"}, commits: []string{"feat: a (Ann)", "init (Ann)"}}
	rec := newRecorder()

	res := runCLI(t, src, rec, "--no-fetch")
	require.NoError(t, res.err)
	assert.Equal(t, "Feat: a (Ann)\nInit (Ann)", rec.values[export.KeyText])
	assert.NotContains(t, res.stdout, "------\n\nFeat")
}

func TestGenerate_LogFailureExitsOne(t *testing.T) {
	src := releaseSource()
	src.logErr = errors.New("fatal: bad revision")

	res := runCLI(t, src, newRecorder(), "--no-fetch")
	requireExitCode(t, res.err, ExitFailure)
	assert.Contains(t, res.stderr, "failed to read commits")
	assert.Empty(t, res.stdout)
}

func TestGenerate_InvalidConfigExitsThree(t *testing.T) {
	res := runCLI(t, releaseSource(), newRecorder(), "--backend", "svn")
	requireExitCode(t, res.err, ExitInvalidConfig)
	assert.Contains(t, res.stderr, "Configuration Error")
}

func TestGenerate_TitleOverridesFromConfigFile(t *testing.T) {
	rec := newRecorder()
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.yml")
	require.NoError(t, os.WriteFile(path, []byte("custom_features_name: \"## New\"\n"), 0o644))

	res := runCLI(t, releaseSource(), rec, "--no-fetch", "--config", path)
	require.NoError(t, res.err)
	assert.Contains(t, rec.values[export.KeyMarkdown], "## New\n------\n - JRA-1 Add login (Bob)")
	assert.Contains(t, rec.values[export.KeyConventional], "## New\n------\nJRA-1 Add login (Bob)")
}

func TestFlagOverrides(t *testing.T) {
	resetFlags(rootCmd)
	t.Cleanup(func() { resetFlags(rootCmd) })

	require.NoError(t, rootCmd.PersistentFlags().Set("backend", "cli"))
	require.NoError(t, rootCmd.PersistentFlags().Set("no-fetch", "true"))

	got := flagOverrides(rootCmd)
	assert.Equal(t, map[string]any{"backend": "cli", "skip_fetch": true}, got)
}
