// commitlog - Release changelog generator
// Author: Ariel Frischer
// Source: https://github.com/ariel-frischer/commitlog

// Package config provides layered configuration for commitlog using koanf.
// Configuration is loaded with priority: CLI flags > bare step inputs
// (dateformat, custom_features_name, ...) > COMMITLOG_* environment variables
// > config file (.commitlog.yml) > defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/ariel-frischer/commitlog/internal/changelog"
)

// EnvPrefix is the prefix of namespaced environment variables.
const EnvPrefix = "COMMITLOG_"

// Configuration represents the commitlog configuration
type Configuration struct {
	// DateFormat is the strftime pattern applied to %ad and %cd.
	DateFormat string `koanf:"dateformat" validate:"required"`
	// PrettyGitFormat is the git pretty format rendering each commit line.
	PrettyGitFormat string `koanf:"prettygitformat" validate:"required"`

	// Section title overrides. Empty keeps the built-in title.
	CustomFeaturesName      string `koanf:"custom_features_name"`
	CustomBugfixesName      string `koanf:"custom_bugfixes_name"`
	CustomMaintenanceName   string `koanf:"custom_maintenance_name"`
	CustomRefactorName      string `koanf:"custom_refactor_name"`
	CustomFormatName        string `koanf:"custom_format_name"`
	CustomTestName          string `koanf:"custom_test_name"`
	CustomDocumentationName string `koanf:"custom_documentation_name"`
	CustomOtherName         string `koanf:"custom_other_name"`

	Backend  string `koanf:"backend" validate:"oneof=gogit cli"`
	Exporter string `koanf:"exporter" validate:"oneof=envman github none"`

	Remote       string        `koanf:"remote"`
	Branch       string        `koanf:"branch"`
	SkipFetch    bool          `koanf:"skip_fetch"`
	FetchTimeout time.Duration `koanf:"fetch_timeout" validate:"min=0"`

	// Repo is the repository directory.
	Repo string `koanf:"repo"`
}

// LoadOptions configures how configuration is loaded
type LoadOptions struct {
	// ConfigPath overrides the config file path (default: <repo>/.commitlog.yml)
	ConfigPath string
	// RepoDir locates the default config file. Empty means the current directory.
	RepoDir string
	// Overrides are applied last, keyed by config key. Used for CLI flags.
	Overrides map[string]any
}

// Load loads configuration from defaults, the config file and the environment.
func Load(configPath string) (*Configuration, error) {
	return LoadWithOptions(LoadOptions{ConfigPath: configPath})
}

// LoadWithOptions loads configuration with custom options
func LoadWithOptions(opts LoadOptions) (*Configuration, error) {
	k := koanf.New(".")
	from := make(origins)

	loadDefaults(k)

	if err := loadConfigFile(k, opts, from); err != nil {
		return nil, err
	}

	if err := loadEnvironmentConfig(k, from); err != nil {
		return nil, err
	}

	if err := loadStepInputs(k, from); err != nil {
		return nil, err
	}

	loadOverrides(k, opts.Overrides, from)

	return finalizeConfig(k, from)
}

// loadDefaults applies default configuration values
func loadDefaults(k *koanf.Koanf) {
	for key, value := range GetDefaults() {
		k.Set(key, value)
	}
}

// configFilePath returns the explicit config path or the project default.
func configFilePath(opts LoadOptions) string {
	if opts.ConfigPath != "" {
		return opts.ConfigPath
	}
	return ProjectConfigPath(opts.RepoDir)
}

// loadConfigFile loads the config file. A missing default file is skipped;
// a missing explicit file is an error.
func loadConfigFile(k *koanf.Koanf, opts LoadOptions, from origins) error {
	path := configFilePath(opts)
	if !fileExists(path) {
		if opts.ConfigPath != "" {
			return &ValidationError{Source: path, Message: "config file not found"}
		}
		return nil
	}

	fk := koanf.New(".")
	if strings.EqualFold(filepath.Ext(path), ".json") {
		if err := fk.Load(file.Provider(path), json.Parser()); err != nil {
			return fmt.Errorf("failed to load config %s: %w", path, err)
		}
		if err := validateKnownKeys(path, fk.Keys()); err != nil {
			return fmt.Errorf("validating config keys: %w", err)
		}
	} else {
		if err := ValidateYAMLFile(path); err != nil {
			return fmt.Errorf("validating YAML: %w", err)
		}
		if err := fk.Load(file.Provider(path), yaml.Parser()); err != nil {
			return fmt.Errorf("failed to load config %s: %w", path, err)
		}
	}

	from.record(path, fk.Keys()...)
	return k.Merge(fk)
}

// loadEnvironmentConfig loads COMMITLOG_* overrides. Empty values are
// treated as unset.
func loadEnvironmentConfig(k *koanf.Koanf, from origins) error {
	provider := env.ProviderWithValue(EnvPrefix, ".", func(key, value string) (string, interface{}) {
		if value == "" {
			return "", nil
		}
		name := envTransform(key)
		if name != "" {
			from.record(key, name)
		}
		return name, value
	})
	if err := k.Load(provider, nil); err != nil {
		return fmt.Errorf("failed to load environment config: %w", err)
	}
	return nil
}

// loadStepInputs loads the unprefixed step input names. Empty values are
// treated as unset.
func loadStepInputs(k *koanf.Koanf, from origins) error {
	provider := env.ProviderWithValue("", ".", func(key, value string) (string, interface{}) {
		schema, ok := KnownKeys[key]
		if !ok || !schema.StepInput || value == "" {
			return "", nil
		}
		from.record(key, key)
		return key, value
	})
	if err := k.Load(provider, nil); err != nil {
		return fmt.Errorf("failed to load step inputs: %w", err)
	}
	return nil
}

// loadOverrides applies CLI flag values
func loadOverrides(k *koanf.Koanf, overrides map[string]any, from origins) {
	for key, value := range overrides {
		k.Set(key, value)
		from.record(SourceFlags, key)
	}
}

// finalizeConfig unmarshals, validates, and applies final transformations
func finalizeConfig(k *koanf.Koanf, from origins) (*Configuration, error) {
	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := ValidateConfigValues(&cfg, from.sourceOf); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if cfg.Repo == "" {
		cfg.Repo = "."
	}

	return &cfg, nil
}

// fileExists returns true if the file exists and is readable
func fileExists(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// envTransform converts environment variable names to config keys
// Example: COMMITLOG_FETCH_TIMEOUT -> fetch_timeout
func envTransform(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	if _, ok := KnownKeys[key]; !ok {
		return ""
	}
	return key
}

// TitleOverrides maps the custom_*_name settings to their categories.
func (c *Configuration) TitleOverrides() map[changelog.Category]string {
	return map[changelog.Category]string{
		changelog.Features:      c.CustomFeaturesName,
		changelog.Fixes:         c.CustomBugfixesName,
		changelog.Maintenance:   c.CustomMaintenanceName,
		changelog.Refactors:     c.CustomRefactorName,
		changelog.Format:        c.CustomFormatName,
		changelog.Tests:         c.CustomTestName,
		changelog.Documentation: c.CustomDocumentationName,
		changelog.Other:         c.CustomOtherName,
	}
}

// LogFormat returns the commit line format settings.
func (c *Configuration) LogFormat() changelog.LogFormat {
	return changelog.LogFormat{
		Format:     c.PrettyGitFormat,
		DateFormat: c.DateFormat,
	}
}

// Values returns the effective settings keyed by config key. Durations are
// rendered as strings.
func (c *Configuration) Values() map[string]any {
	values := make(map[string]any)
	v := reflect.ValueOf(c).Elem()
	t := v.Type()
	for i := range t.NumField() {
		key, _, _ := strings.Cut(t.Field(i).Tag.Get("koanf"), ",")
		if key == "" {
			continue
		}
		field := v.Field(i).Interface()
		if d, ok := field.(time.Duration); ok {
			field = d.String()
		}
		values[key] = field
	}
	return values
}
