package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/commitlog/internal/changelog"
	"github.com/ariel-frischer/commitlog/internal/config"
	clierrors "github.com/ariel-frischer/commitlog/internal/errors"
	"github.com/ariel-frischer/commitlog/internal/export"
)

var generateCmd = &cobra.Command{
	Use:     "generate",
	Aliases: []string{"gen"},
	Short:   "Build, print and export the release changelog (default command)",
	Long: `Build the changelog for the latest release, print the plain-text and
Markdown views to stdout and export every view as a CI variable.

Tag sync and exports are best effort: failures are reported as warnings on
stderr and the command still succeeds. Only an unreadable history (exit 1)
or an invalid configuration (exit 3) fail the run.`,
	Example: `  # Default run (same as 'commitlog')
  commitlog generate

  # Read history with the git binary and skip the tag fetch
  commitlog generate --backend cli --no-fetch

  # Write GitHub Actions step outputs instead of envman variables
  commitlog generate --exporter github`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate(cmd, args)
	},
}

func init() {
	generateCmd.GroupID = GroupChangelog
	rootCmd.AddCommand(generateCmd)
}

// newExporter returns the exporter named in the configuration.
var newExporter = func(name string) (export.Exporter, error) {
	return export.New(name, nil)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	ctx := commandContext(cmd)

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	cl, err := buildChangelog(ctx, cmd, cfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, cl.Text)
	fmt.Fprintln(out, cl.Markdown)

	exportChangelog(ctx, cmd, cfg, cl)
	return nil
}

// buildChangelog opens the history and renders every view.
func buildChangelog(ctx context.Context, cmd *cobra.Command, cfg *config.Configuration) (*changelog.Changelog, error) {
	src, err := openSource(ctx, cmd, cfg)
	if err != nil {
		return nil, err
	}

	cl, err := changelog.Build(ctx, src, changelog.Options{
		LogFormat:      cfg.LogFormat(),
		TitleOverrides: cfg.TitleOverrides(),
	})
	if err != nil {
		cliErr := clierrors.CommitListFailed(err)
		clierrors.FprintError(cmd.ErrOrStderr(), cliErr)
		return nil, NewExitError(ExitFailure, cliErr)
	}
	return cl, nil
}

// exportChangelog publishes all variables, warning on each failure.
func exportChangelog(ctx context.Context, cmd *cobra.Command, cfg *config.Configuration, cl *changelog.Changelog) {
	exp, err := newExporter(cfg.Exporter)
	if err != nil {
		warn(cmd, "%v", err)
		return
	}

	vars, err := export.Variables(cl)
	if err != nil {
		warn(cmd, "%v", err)
		return
	}

	for _, r := range export.Failed(export.ExportAll(ctx, exp, vars)) {
		warn(cmd, "%v", r.Err)
	}
}
