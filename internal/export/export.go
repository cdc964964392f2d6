// Package export publishes rendered changelogs as named CI variables.
package export

import (
	"context"
	"fmt"

	"github.com/ariel-frischer/commitlog/internal/changelog"
	"github.com/ariel-frischer/commitlog/internal/command"
)

// Variable names read by later CI steps.
const (
	KeyText         = "COMMIT_CHANGELOG_TEXT"
	KeyConventional = "COMMIT_CHANGELOG"
	KeyMarkdown     = "COMMIT_CHANGELOG_MARKDOWN"
	KeySections     = "COMMIT_CHANGELOG_SECTIONS"
)

// Exporter names accepted by New.
const (
	NameEnvman = "envman"
	NameGitHub = "github"
	NameNone   = "none"
)

// Exporter publishes a single named value.
type Exporter interface {
	Name() string
	Export(ctx context.Context, key, value string) error
}

// Variable is a key/value pair to export.
type Variable struct {
	Key   string
	Value string
}

// Result is the outcome of exporting one variable. Err is nil on success.
type Result struct {
	Key string
	Err error
}

// New returns the exporter registered under name. The runner is used by
// exporters that shell out; nil means command.Exec.
func New(name string, runner command.Runner) (Exporter, error) {
	switch name {
	case NameEnvman, "":
		return NewEnvman(runner), nil
	case NameGitHub:
		return NewGitHubOutput(""), nil
	case NameNone:
		return None{}, nil
	default:
		return nil, fmt.Errorf("unknown exporter %q (valid: %s, %s, %s)", name, NameEnvman, NameGitHub, NameNone)
	}
}

// Variables returns the four changelog variables in export order.
func Variables(cl *changelog.Changelog) ([]Variable, error) {
	sections, err := cl.SectionsJSON()
	if err != nil {
		return nil, fmt.Errorf("encoding sections: %w", err)
	}
	return []Variable{
		{Key: KeyText, Value: cl.Text},
		{Key: KeyConventional, Value: cl.Conventional},
		{Key: KeyMarkdown, Value: cl.Markdown},
		{Key: KeySections, Value: sections},
	}, nil
}

// ExportAll attempts every variable independently and reports each outcome.
// A failed export does not stop the remaining ones.
func ExportAll(ctx context.Context, e Exporter, vars []Variable) []Result {
	results := make([]Result, 0, len(vars))
	for _, v := range vars {
		err := e.Export(ctx, v.Key, v.Value)
		if err != nil {
			err = fmt.Errorf("%s: exporting %s: %w", e.Name(), v.Key, err)
		}
		results = append(results, Result{Key: v.Key, Err: err})
	}
	return results
}

// Failed returns the results that carry an error.
func Failed(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if r.Err != nil {
			failed = append(failed, r)
		}
	}
	return failed
}

// None discards every value.
type None struct{}

func (None) Name() string                                 { return NameNone }
func (None) Export(context.Context, string, string) error { return nil }
