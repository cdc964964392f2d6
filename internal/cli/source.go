package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ariel-frischer/commitlog/internal/changelog"
	"github.com/ariel-frischer/commitlog/internal/config"
	clierrors "github.com/ariel-frischer/commitlog/internal/errors"
	"github.com/ariel-frischer/commitlog/internal/git"
	"github.com/ariel-frischer/commitlog/internal/progress"
)

var (
	backendFlag  string
	exporterFlag string
	remoteFlag   string
	branchFlag   string
	noFetchFlag  bool
)

// registerSourceFlags adds the flags that override history and export settings.
func registerSourceFlags(cmd *cobra.Command) {
	f := cmd.PersistentFlags()
	f.StringVar(&backendFlag, "backend", "", "History reader: gogit | cli")
	f.StringVar(&exporterFlag, "exporter", "", "Variable exporter: envman | github | none")
	f.StringVar(&remoteFlag, "remote", "", "Remote to fetch tags from (default: origin)")
	f.StringVar(&branchFlag, "branch", "", "Branch fetched with the tags (default: main)")
	f.BoolVar(&noFetchFlag, "no-fetch", false, "Skip fetching tags before reading history")
}

// flagOverrides returns config values for the flags set on the command line.
func flagOverrides(cmd *cobra.Command) map[string]any {
	overrides := make(map[string]any)
	set := func(flag, key string, value any) {
		if f := cmd.Flag(flag); f != nil && f.Changed {
			overrides[key] = value
		}
	}
	set("backend", "backend", backendFlag)
	set("exporter", "exporter", exporterFlag)
	set("remote", "remote", remoteFlag)
	set("branch", "branch", branchFlag)
	set("no-fetch", "skip_fetch", noFetchFlag)
	set("repo", "repo", repoFlag)
	return overrides
}

// loadConfig loads configuration, reporting failures with ExitInvalidConfig.
func loadConfig(cmd *cobra.Command) (*config.Configuration, error) {
	cfg, err := config.LoadWithOptions(config.LoadOptions{
		ConfigPath: configPathFlag,
		RepoDir:    repoFlag,
		Overrides:  flagOverrides(cmd),
	})
	if err != nil {
		clierrors.FprintError(cmd.ErrOrStderr(), clierrors.InvalidConfig(err))
		return nil, NewExitError(ExitInvalidConfig, err)
	}
	return cfg, nil
}

// newSource opens the history backend selected by cfg.Backend.
var newSource = func(cfg *config.Configuration) (changelog.Source, error) {
	if cfg.Backend == "cli" {
		return git.NewCLI(cfg.Repo, nil), nil
	}
	repo, err := git.Open(cfg.Repo)
	if err != nil {
		return nil, err
	}
	return repo, nil
}

// openSource opens the backend and syncs tags unless disabled.
func openSource(ctx context.Context, cmd *cobra.Command, cfg *config.Configuration) (changelog.Source, error) {
	src, err := newSource(cfg)
	if err != nil {
		cliErr := clierrors.RepositoryNotFound(cfg.Repo, err)
		clierrors.FprintError(cmd.ErrOrStderr(), cliErr)
		return nil, NewExitError(ExitFailure, cliErr)
	}
	if !cfg.SkipFetch {
		syncTags(ctx, cmd, src, cfg)
	}
	return src, nil
}

// syncTags fetches tags behind a spinner. Failures are warnings.
func syncTags(ctx context.Context, cmd *cobra.Command, src changelog.Source, cfg *config.Configuration) {
	sp := progress.NewSpinner(cmd.ErrOrStderr(), errCapabilities(cmd))
	sp.Start(fmt.Sprintf("Fetching tags from %s", cfg.Remote))
	err := changelog.SyncTags(ctx, src, cfg.Remote, cfg.Branch, cfg.FetchTimeout)
	sp.Stop(err)
	if err != nil {
		warn(cmd, "failed fetching tags: %v", err)
	}
}

// errCapabilities inspects the command's stderr when it is a file.
func errCapabilities(cmd *cobra.Command) progress.TerminalCapabilities {
	if f, ok := cmd.ErrOrStderr().(*os.File); ok {
		return progress.DetectTerminalCapabilities(f)
	}
	return progress.TerminalCapabilities{}
}

func warn(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.ErrOrStderr(), "%s %s\n", color.YellowString("Warning:"), fmt.Sprintf(format, args...))
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
