package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/ariel-frischer/commitlog/internal/config"
)

func TestConfigShow(t *testing.T) {
	res := runCLI(t, releaseSource(), newRecorder(), "config", "show", "--exporter", "github")
	require.NoError(t, res.err)

	var values map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(res.stdout), &values))
	assert.Equal(t, "github", values["exporter"])
	assert.Equal(t, "%s (%cn)", values["prettygitformat"])
	assert.Equal(t, "1m0s", values["fetch_timeout"])
}

func TestConfigKeys(t *testing.T) {
	t.Run("all keys", func(t *testing.T) {
		res := runCLI(t, releaseSource(), newRecorder(), "config", "keys")
		require.NoError(t, res.err)
		for key := range config.KnownKeys {
			assert.Contains(t, res.stdout, key)
		}
		assert.Contains(t, res.stdout, "gogit | cli")
		assert.Contains(t, res.stdout, "also read from $dateformat")
	})

	t.Run("single key", func(t *testing.T) {
		res := runCLI(t, releaseSource(), newRecorder(), "config", "keys", "exporter")
		require.NoError(t, res.err)
		assert.Contains(t, res.stdout, "envman | github | none")
		assert.NotContains(t, res.stdout, "dateformat")
	})

	t.Run("unknown key", func(t *testing.T) {
		res := runCLI(t, releaseSource(), newRecorder(), "config", "keys", "nope")
		requireExitCode(t, res.err, ExitInvalidArguments)
		assert.Contains(t, res.stderr, "unknown configuration key: nope")
	})
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "commitlog.yml")

	res := runCLI(t, releaseSource(), newRecorder(), "config", "init", "--config", path)
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Wrote "+path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, config.GetDefaultConfigTemplate(), string(data))

	res = runCLI(t, releaseSource(), newRecorder(), "config", "init", "--config", path)
	requireExitCode(t, res.err, ExitInvalidArguments)
	assert.Contains(t, res.stderr, "already exists")

	res = runCLI(t, releaseSource(), newRecorder(), "config", "init", "--config", path, "--force")
	require.NoError(t, res.err)
}

func TestConfigInit_WriteFailureExitsOne(t *testing.T) {
	isolateConfig(t)
	resetFlags(rootCmd)
	var stderr bytes.Buffer
	rootCmd.SetOut(io.Discard)
	rootCmd.SetErr(&stderr)
	t.Cleanup(func() {
		resetFlags(rootCmd)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	path := filepath.Join(t.TempDir(), "missing", "commitlog.yml")
	rootCmd.SetArgs([]string{"config", "init", "--config", path})

	assert.Equal(t, ExitFailure, Execute())
	assert.Contains(t, stderr.String(), "writing config file")
	assert.Contains(t, stderr.String(), "Runtime Error")
}
