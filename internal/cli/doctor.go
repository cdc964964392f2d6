package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/commitlog/internal/health"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the repository and the tools the configuration needs",
	Long: `Check that the repository opens and its tags can be listed, that git is
installed when the cli backend is selected, and that the configured exporter
has somewhere to write (envman on PATH, or GITHUB_OUTPUT set).

Tags are not fetched. Exits 1 when a required check fails.`,
	Example: `  commitlog doctor
  commitlog doctor --backend cli --exporter github`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func init() {
	doctorCmd.GroupID = GroupInternal
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	opts := health.Options{Backend: cfg.Backend, Exporter: cfg.Exporter}
	src, err := newSource(cfg)
	if err != nil {
		opts.SourceErr = err
	} else {
		opts.Source = src
	}

	report := health.RunHealthChecks(commandContext(cmd), opts)
	fmt.Fprint(cmd.OutOrStdout(), health.FormatReport(report))

	if !report.Passed {
		return NewExitError(ExitFailure, errors.New("health checks failed"))
	}
	return nil
}
