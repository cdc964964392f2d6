package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/commitlog/internal/changelog"
)

var (
	sectionsPlainFlag bool
	sectionsWidthFlag int
)

var sectionsCmd = &cobra.Command{
	Use:   "sections",
	Short: "Show how commits in the release range are classified",
	Long: `Show the commits of the release range grouped by category, with
per-category colors and counts. Documentation commits are listed here even
though the exported sectioned views leave them out.

Nothing is exported.`,
	Example: `  commitlog sections
  commitlog sections --plain --no-fetch`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSections(cmd, args)
	},
}

func init() {
	sectionsCmd.GroupID = GroupChangelog
	rootCmd.AddCommand(sectionsCmd)

	sectionsCmd.Flags().BoolVar(&sectionsPlainFlag, "plain", false, "Plain text output (no colors/icons)")
	sectionsCmd.Flags().IntVar(&sectionsWidthFlag, "width", 0, "Wrap width (default: terminal width)")
}

func runSections(cmd *cobra.Command, _ []string) error {
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
	opts := changelog.FormatOptions{Plain: sectionsPlainFlag, MaxWidth: sectionsWidthFlag}

	if cl.HasTitle() {
		fmt.Fprintf(out, "%s\n\n", cl.Title)
	}
	titles := changelog.DefaultTextTitles().WithOverrides(cfg.TitleOverrides())
	if err := changelog.FormatTerminal(cl.Sections, titles, out, opts); err != nil {
		return fmt.Errorf("formatting sections: %w", err)
	}
	fmt.Fprintf(out, "\n%s\n", changelog.FormatSummary(cl.Sections, opts))
	return nil
}
