// Package health provides environment checks for commitlog. It validates that
// the repository is readable and that the external tools required by the
// configured backend and exporter are available, returning structured reports
// used by the 'commitlog doctor' command.
package health

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/ariel-frischer/commitlog/internal/export"
)

// TagCounter is the part of a history source the repository check needs.
type TagCounter interface {
	TagCount(ctx context.Context) (int, error)
}

// CheckResult represents the result of a single health check
type CheckResult struct {
	Name    string
	Passed  bool
	Message string
	// Optional checks never fail the report.
	Optional bool
}

// HealthReport contains all health check results
type HealthReport struct {
	Checks []CheckResult
	Passed bool
}

// Options selects which checks apply.
type Options struct {
	Backend  string
	Exporter string
	// Source is the opened history source; SourceErr is set when opening failed.
	Source    TagCounter
	SourceErr error

	// LookPath and Getenv default to exec.LookPath and os.Getenv.
	LookPath func(file string) (string, error)
	Getenv   func(key string) string
}

func (o Options) lookPath(file string) (string, error) {
	if o.LookPath != nil {
		return o.LookPath(file)
	}
	return exec.LookPath(file)
}

func (o Options) getenv(key string) string {
	if o.Getenv != nil {
		return o.Getenv(key)
	}
	return os.Getenv(key)
}

// RunHealthChecks runs all health checks and returns a report.
func RunHealthChecks(ctx context.Context, opts Options) *HealthReport {
	report := &HealthReport{
		Checks: make([]CheckResult, 0, 3),
		Passed: true,
	}

	add := func(check CheckResult) {
		report.Checks = append(report.Checks, check)
		if !check.Passed && !check.Optional {
			report.Passed = false
		}
	}

	add(CheckRepository(ctx, opts))
	add(CheckGitCLI(opts))
	if check, ok := CheckExporter(opts); ok {
		add(check)
	}

	return report
}

// CheckRepository checks that the repository opens and reports its tag count.
func CheckRepository(ctx context.Context, opts Options) CheckResult {
	result := CheckResult{Name: "Repository"}
	if opts.SourceErr != nil {
		result.Message = opts.SourceErr.Error()
		return result
	}
	if opts.Source == nil {
		result.Message = "no repository opened"
		return result
	}

	count, err := opts.Source.TagCount(ctx)
	if err != nil {
		result.Message = fmt.Sprintf("failed to list tags: %v", err)
		return result
	}

	result.Passed = true
	switch count {
	case 0:
		result.Message = "no tags, whole history will be used"
	case 1:
		result.Message = "1 tag, whole history will be used"
	default:
		result.Message = fmt.Sprintf("%d tags", count)
	}
	return result
}

// CheckGitCLI checks if the git binary is available. It is only required by
// the cli backend.
func CheckGitCLI(opts Options) CheckResult {
	result := CheckResult{Name: "Git CLI", Optional: opts.Backend != "cli"}
	if _, err := opts.lookPath("git"); err != nil {
		if result.Optional {
			result.Message = "git not found in PATH (not needed by the gogit backend)"
		} else {
			result.Message = "git not found in PATH (required by the cli backend)"
		}
		return result
	}
	result.Passed = true
	result.Message = "git found"
	return result
}

// CheckExporter checks the destination of the configured exporter. The
// second return value is false when the exporter needs nothing.
func CheckExporter(opts Options) (CheckResult, bool) {
	switch opts.Exporter {
	case "", export.NameEnvman:
		result := CheckResult{Name: "envman"}
		if _, err := opts.lookPath("envman"); err != nil {
			result.Message = "envman not found in PATH, variables will not be exported"
			return result, true
		}
		result.Passed = true
		result.Message = "envman found"
		return result, true
	case export.NameGitHub:
		result := CheckResult{Name: "GitHub output"}
		path := opts.getenv(export.EnvGitHubOutput)
		if strings.TrimSpace(path) == "" {
			result.Message = export.ErrNoOutputFile.Error()
			return result, true
		}
		result.Passed = true
		result.Message = path
		return result, true
	default:
		return CheckResult{}, false
	}
}

// FormatReport formats the health report for console output
func FormatReport(report *HealthReport) string {
	var output string
	for _, check := range report.Checks {
		switch {
		case check.Passed:
			output += fmt.Sprintf("✓ %s: %s\n", check.Name, check.Message)
		case check.Optional:
			output += fmt.Sprintf("○ %s: %s\n", check.Name, check.Message)
		default:
			output += fmt.Sprintf("✗ %s: %s\n", check.Name, check.Message)
		}
	}
	return output
}
