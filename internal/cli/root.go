// Package cli implements the commitlog command tree.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	clierrors "github.com/ariel-frischer/commitlog/internal/errors"
	"github.com/ariel-frischer/commitlog/internal/git"
)

// Command group IDs
const (
	GroupChangelog     = "changelog"
	GroupConfiguration = "configuration"
	GroupInternal      = "internal"
)

var (
	configPathFlag string
	repoFlag       string
	debugFlag      bool
)

var rootCmd = &cobra.Command{
	Use:   "commitlog",
	Short: "Generate release changelogs from conventional commits",
	Long: `commitlog builds a changelog for the latest release from git history.

Commits between the two most recent tags are classified by their
conventional-commit prefix (feat, fix, chore, refactor, format, test, docs)
and rendered three ways: a flat list, a sectioned plain-text report and a
Markdown document. The text and Markdown views are printed; all views and
the sections JSON are exported as CI variables:

  COMMIT_CHANGELOG_TEXT, COMMIT_CHANGELOG,
  COMMIT_CHANGELOG_MARKDOWN, COMMIT_CHANGELOG_SECTIONS

With fewer than two tags the whole history is used and no title is shown.
Running commitlog without a subcommand is the same as 'commitlog generate'.`,
	Example: `  # Generate and export the changelog (envman)
  commitlog

  # Publish to GitHub Actions step outputs
  commitlog --exporter github

  # Inspect the classification without exporting
  commitlog sections --no-fetch`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if debugFlag {
			git.SetDebugLogger(func(format string, args ...any) {
				fmt.Fprintf(cmd.ErrOrStderr(), "[debug] "+format+"\n", args...)
			})
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate(cmd, args)
	},
}

func init() {
	rootCmd.AddGroup(
		&cobra.Group{ID: GroupChangelog, Title: "Changelog Commands:"},
		&cobra.Group{ID: GroupConfiguration, Title: "Configuration Commands:"},
		&cobra.Group{ID: GroupInternal, Title: "Other Commands:"},
	)
	rootCmd.SetHelpCommandGroupID(GroupInternal)
	rootCmd.SetCompletionCommandGroupID(GroupInternal)

	rootCmd.PersistentFlags().StringVarP(&configPathFlag, "config", "c", "", "Path to config file (default: <repo>/.commitlog.yml)")
	rootCmd.PersistentFlags().StringVar(&repoFlag, "repo", "", "Repository directory (default: current directory)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Print git operations to stderr")

	registerSourceFlags(rootCmd)
}

// Execute runs the root command with a context cancelled on SIGINT/SIGTERM
// and returns the process exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return ExitSuccess
	}
	// Errors carrying an exit code were already reported.
	if isExitError(err) {
		return ExitCode(err)
	}
	if cliErr := clierrors.AsCLIError(err); cliErr != nil {
		clierrors.FprintError(rootCmd.ErrOrStderr(), cliErr)
		return exitCodeForCategory(cliErr.Category)
	}
	// Anything else comes from cobra: unknown flags, commands or arguments.
	fmt.Fprintf(rootCmd.ErrOrStderr(), "%s %v\n", color.RedString("Error:"), err)
	return ExitInvalidArguments
}
