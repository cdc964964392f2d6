package config

import (
	"sort"
)

// ConfigValueType defines the expected type for a configuration value.
type ConfigValueType int

const (
	TypeBool ConfigValueType = iota
	TypeDuration
	TypeString
	TypeEnum
)

// String returns the string representation of ConfigValueType.
func (t ConfigValueType) String() string {
	switch t {
	case TypeBool:
		return "bool"
	case TypeDuration:
		return "duration"
	case TypeString:
		return "string"
	case TypeEnum:
		return "enum"
	default:
		return "unknown"
	}
}

// ConfigKeySchema defines a known configuration key with its expected type and validation rules.
type ConfigKeySchema struct {
	Path          string          // Key name (e.g., "fetch_timeout")
	Type          ConfigValueType // Expected value type
	AllowedValues []string        // Valid values for enum types (empty for non-enums)
	Description   string          // Human-readable description for help text
	// StepInput marks keys also read from the unprefixed environment
	// variable of the same name.
	StepInput bool
}

// KnownKeys is the registry of all known configuration keys with their schemas.
var KnownKeys = map[string]ConfigKeySchema{
	"dateformat": {
		Path:        "dateformat",
		Type:        TypeString,
		Description: "strftime pattern for commit dates",
		StepInput:   true,
	},
	"prettygitformat": {
		Path:        "prettygitformat",
		Type:        TypeString,
		Description: "git pretty format for each commit line",
		StepInput:   true,
	},
	"custom_features_name": {
		Path:        "custom_features_name",
		Type:        TypeString,
		Description: "Title of the features section",
		StepInput:   true,
	},
	"custom_bugfixes_name": {
		Path:        "custom_bugfixes_name",
		Type:        TypeString,
		Description: "Title of the bugfixes section",
		StepInput:   true,
	},
	"custom_maintenance_name": {
		Path:        "custom_maintenance_name",
		Type:        TypeString,
		Description: "Title of the maintenance section",
		StepInput:   true,
	},
	"custom_refactor_name": {
		Path:        "custom_refactor_name",
		Type:        TypeString,
		Description: "Title of the refactors section",
		StepInput:   true,
	},
	"custom_format_name": {
		Path:        "custom_format_name",
		Type:        TypeString,
		Description: "Title of the formatting section",
		StepInput:   true,
	},
	"custom_test_name": {
		Path:        "custom_test_name",
		Type:        TypeString,
		Description: "Title of the tests section",
		StepInput:   true,
	},
	"custom_documentation_name": {
		Path:        "custom_documentation_name",
		Type:        TypeString,
		Description: "Title of the documentation section",
		StepInput:   true,
	},
	"custom_other_name": {
		Path:        "custom_other_name",
		Type:        TypeString,
		Description: "Title of the other changes section",
		StepInput:   true,
	},
	"backend": {
		Path:          "backend",
		Type:          TypeEnum,
		AllowedValues: []string{"gogit", "cli"},
		Description:   "History reader: in-process go-git or the git binary",
	},
	"exporter": {
		Path:          "exporter",
		Type:          TypeEnum,
		AllowedValues: []string{"envman", "github", "none"},
		Description:   "Where changelog variables are published",
	},
	"remote": {
		Path:        "remote",
		Type:        TypeString,
		Description: "Remote to fetch tags from",
	},
	"branch": {
		Path:        "branch",
		Type:        TypeString,
		Description: "Branch fetched along with the tags",
	},
	"skip_fetch": {
		Path:        "skip_fetch",
		Type:        TypeBool,
		Description: "Skip the tag fetch before reading history",
	},
	"fetch_timeout": {
		Path:        "fetch_timeout",
		Type:        TypeDuration,
		Description: "Maximum duration of the tag fetch",
	},
	"repo": {
		Path:        "repo",
		Type:        TypeString,
		Description: "Repository directory",
	},
}

// ErrUnknownKey is returned when trying to access an unknown configuration key.
type ErrUnknownKey struct {
	Key string
}

func (e ErrUnknownKey) Error() string {
	return "unknown configuration key: " + e.Key
}

// GetKeySchema returns the schema for a known configuration key.
// Returns ErrUnknownKey if the key is not in the registry.
func GetKeySchema(path string) (ConfigKeySchema, error) {
	schema, ok := KnownKeys[path]
	if !ok {
		return ConfigKeySchema{}, ErrUnknownKey{Key: path}
	}
	return schema, nil
}

// SortedKeys returns the known key names in alphabetical order.
func SortedKeys() []string {
	keys := make([]string, 0, len(KnownKeys))
	for k := range KnownKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
