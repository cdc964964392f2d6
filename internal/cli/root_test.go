// Package cli tests root command and global flags for commitlog.
// Related: internal/cli/root.go
// Tags: cli, root, commands, global-flags

package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	clierrors "github.com/ariel-frischer/commitlog/internal/errors"
)

func TestRootCmd_Structure(t *testing.T) {
	assert.Equal(t, "commitlog", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
	assert.NotEmpty(t, rootCmd.Example)
	assert.NotNil(t, rootCmd.RunE, "root runs generate")
}

func TestRootCmd_PersistentFlags(t *testing.T) {
	tests := map[string]struct {
		flagName string
	}{
		"config flag exists":   {flagName: "config"},
		"repo flag exists":     {flagName: "repo"},
		"debug flag exists":    {flagName: "debug"},
		"backend flag exists":  {flagName: "backend"},
		"exporter flag exists": {flagName: "exporter"},
		"remote flag exists":   {flagName: "remote"},
		"branch flag exists":   {flagName: "branch"},
		"no-fetch flag exists": {flagName: "no-fetch"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			flag := rootCmd.PersistentFlags().Lookup(tt.flagName)
			assert.NotNil(t, flag, "Flag %s should exist", tt.flagName)
		})
	}
}

func TestRootCmd_Subcommands(t *testing.T) {
	tests := map[string]struct {
		use   string
		group string
	}{
		"generate": {use: "generate", group: GroupChangelog},
		"sections": {use: "sections", group: GroupChangelog},
		"config":   {use: "config", group: GroupConfiguration},
		"version":  {use: "version", group: GroupInternal},
		"doctor":   {use: "doctor", group: GroupInternal},
	}

	registered := make(map[string]string)
	for _, c := range rootCmd.Commands() {
		registered[c.Name()] = c.GroupID
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			group, ok := registered[tt.use]
			assert.True(t, ok, "%s should be registered", tt.use)
			assert.Equal(t, tt.group, group)
		})
	}
}

func TestRootCmd_SubcommandGroups(t *testing.T) {
	groupIDs := make(map[string]bool)
	for _, g := range rootCmd.Groups() {
		groupIDs[g.ID] = true
	}

	assert.True(t, groupIDs[GroupChangelog], "Should have changelog group")
	assert.True(t, groupIDs[GroupConfiguration], "Should have configuration group")
	assert.True(t, groupIDs[GroupInternal], "Should have internal group")
}

func TestRootCmd_UnknownFlag(t *testing.T) {
	res := runCLI(t, releaseSource(), newRecorder(), "--bogus")
	assert.Error(t, res.err)
	assert.False(t, isExitError(res.err))
}

func TestExitCode(t *testing.T) {
	tests := map[string]struct {
		err  error
		want int
	}{
		"nil error":         {err: nil, want: ExitSuccess},
		"exit error 1":      {err: NewExitError(ExitFailure, nil), want: ExitFailure},
		"exit error 3":      {err: NewExitError(ExitInvalidConfig, errors.New("bad")), want: ExitInvalidConfig},
		"wrapped exit code": {err: errors.Join(errors.New("ctx"), NewExitError(ExitInvalidConfig, nil)), want: ExitInvalidConfig},
		"generic error":     {err: errors.New("some error"), want: ExitFailure},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}

func TestExitCodeForCategory(t *testing.T) {
	tests := map[string]struct {
		category clierrors.ErrorCategory
		want     int
	}{
		"argument":      {category: clierrors.Argument, want: ExitInvalidArguments},
		"configuration": {category: clierrors.Configuration, want: ExitInvalidConfig},
		"repository":    {category: clierrors.Repository, want: ExitFailure},
		"runtime":       {category: clierrors.Runtime, want: ExitFailure},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCodeForCategory(tt.category))
		})
	}
}

func TestExitError_Message(t *testing.T) {
	assert.Equal(t, "exit code 3", NewExitError(3, nil).Error())
	assert.Equal(t, "bad", NewExitError(3, errors.New("bad")).Error())
}
