package config

import "time"

// GetDefaultConfigTemplate returns a fully commented config template
// that helps users understand all available options
func GetDefaultConfigTemplate() string {
	return `# commitlog configuration
# See 'commitlog config keys' for all options

# Commit line formatting
dateformat: "%Y-%m-%d %H:%M:%S"       # strftime pattern for %ad and %cd
prettygitformat: "%s (%cn)"           # git pretty format for each commit line

# Section title overrides (empty = built-in title)
custom_features_name: ""
custom_bugfixes_name: ""
custom_maintenance_name: ""
custom_refactor_name: ""
custom_format_name: ""
custom_test_name: ""
custom_documentation_name: ""
custom_other_name: ""

# History source
backend: gogit                        # gogit | cli
repo: .                               # Repository directory

# Tag sync before reading history
remote: origin                        # Remote to fetch tags from
branch: main                          # Branch fetched with the tags
skip_fetch: false                     # Skip the tag fetch
fetch_timeout: 60s                    # Max fetch duration (e.g., '30s', '2m')

# Variable export
exporter: envman                      # envman | github | none
`
}

// GetDefaults returns the default configuration values
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"dateformat":      "%Y-%m-%d %H:%M:%S",
		"prettygitformat": "%s (%cn)",
		// Title overrides default to empty so the renderer keeps its own
		// per-view titles.
		"custom_features_name":      "",
		"custom_bugfixes_name":      "",
		"custom_maintenance_name":   "",
		"custom_refactor_name":      "",
		"custom_format_name":        "",
		"custom_test_name":          "",
		"custom_documentation_name": "",
		"custom_other_name":         "",
		// backend: "gogit" reads the repository in-process, "cli" shells out to git.
		"backend":       "gogit",
		"exporter":      "envman",
		"remote":        "origin",
		"branch":        "main",
		"skip_fetch":    false,
		"fetch_timeout": (60 * time.Second).String(),
		"repo":          ".",
	}
}
