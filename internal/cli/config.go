package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ariel-frischer/commitlog/internal/config"
	clierrors "github.com/ariel-frischer/commitlog/internal/errors"
)

var configInitForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and initialize commitlog configuration",
	Long: `Inspect and initialize commitlog configuration.

Configuration is loaded with the following priority (highest to lowest):
  1. Command-line flags (--backend, --exporter, --remote, --branch, --no-fetch, --repo)
  2. Step inputs (dateformat, prettygitformat, custom_*_name)
  3. Environment variables (COMMITLOG_*)
  4. Config file (.commitlog.yml or --config)
  5. Built-in defaults`,
	Example: `  # Show the effective configuration
  commitlog config show

  # List every key
  commitlog config keys

  # Write a commented .commitlog.yml
  commitlog config init`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as YAML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		data, err := yaml.Marshal(cfg.Values())
		if err != nil {
			return fmt.Errorf("encoding configuration: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

var configKeysCmd = &cobra.Command{
	Use:   "keys [key]",
	Short: "List configuration keys",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigKeys(cmd, args)
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a commented config file to the repository",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigInit(cmd)
	},
}

func init() {
	configCmd.GroupID = GroupConfiguration
	configCmd.AddCommand(configShowCmd, configKeysCmd, configInitCmd)
	rootCmd.AddCommand(configCmd)

	configInitCmd.Flags().BoolVarP(&configInitForce, "force", "f", false, "Overwrite an existing config file")
}

func runConfigKeys(cmd *cobra.Command, args []string) error {
	keys := config.SortedKeys()
	if len(args) == 1 {
		if _, err := config.GetKeySchema(args[0]); err != nil {
			clierrors.FprintError(cmd.ErrOrStderr(), clierrors.UnknownConfigKey(args[0]))
			return NewExitError(ExitInvalidArguments, err)
		}
		keys = args
	}

	defaults := config.GetDefaults()
	width := 0
	for _, key := range keys {
		width = max(width, len(key))
	}

	out := cmd.OutOrStdout()
	bold := color.New(color.Bold).SprintFunc()
	for _, key := range keys {
		schema := config.KnownKeys[key]
		typ := schema.Type.String()
		if len(schema.AllowedValues) > 0 {
			typ = strings.Join(schema.AllowedValues, " | ")
		}
		fmt.Fprintf(out, "%s  %s\n", bold(fmt.Sprintf("%-*s", width, key)), schema.Description)
		fmt.Fprintf(out, "%-*s  type: %s, default: %q\n", width, "", typ, fmt.Sprint(defaults[key]))
		if schema.StepInput {
			fmt.Fprintf(out, "%-*s  also read from $%s\n", width, "", key)
		}
	}
	return nil
}

func runConfigInit(cmd *cobra.Command) error {
	path := configPathFlag
	if path == "" {
		path = config.ProjectConfigPath(repoFlag)
	}

	if _, err := os.Stat(path); err == nil && !configInitForce {
		cliErr := clierrors.NewConfigError(
			fmt.Sprintf("config file already exists: %s", path),
			"Use --force to overwrite it",
		)
		clierrors.FprintError(cmd.ErrOrStderr(), cliErr)
		return NewExitError(ExitInvalidArguments, cliErr)
	}

	if err := os.WriteFile(path, []byte(config.GetDefaultConfigTemplate()), 0o644); err != nil {
		return clierrors.WrapWithMessage(err, clierrors.Runtime, "writing config file")
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}
