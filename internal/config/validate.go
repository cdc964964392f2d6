package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// SourceDefaults and SourceFlags name the layers that are not files or
// environment variables.
const (
	SourceDefaults = "defaults"
	SourceFlags    = "command line"
)

// ValidationError describes one bad setting. Source is where the value came
// from: a config file path, an environment variable name, SourceFlags or
// SourceDefaults.
type ValidationError struct {
	Source  string
	Line    int
	Column  int
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s", e.Source, e.Line, e.Column, e.Message)
	}
	if e.Field != "" {
		return fmt.Sprintf("%s: %s %s", e.Source, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Source, e.Message)
}

// origins records which layer last set each key.
type origins map[string]string

func (o origins) record(source string, keys ...string) {
	for _, key := range keys {
		o[key] = source
	}
}

func (o origins) sourceOf(key string) string {
	if source, ok := o[key]; ok {
		return source
	}
	return SourceDefaults
}

// ValidateYAMLFile checks the syntax of a YAML config file and rejects
// top-level keys commitlog does not know, reporting their line and column.
// A missing or empty file is valid.
func ValidateYAMLFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		if os.IsPermission(err) {
			return &ValidationError{Source: path, Message: "permission denied"}
		}
		return &ValidationError{Source: path, Message: err.Error()}
	}

	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		var typeError *yaml.TypeError
		if errors.As(err, &typeError) {
			return &ValidationError{Source: path, Message: strings.Join(typeError.Errors, "; ")}
		}
		line, column := extractLineColumn(err.Error())
		return &ValidationError{Source: path, Line: line, Column: column, Message: cleanYAMLError(err.Error())}
	}

	if len(doc.Content) == 0 {
		return nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return &ValidationError{Source: path, Line: root.Line, Column: root.Column, Message: "expected a mapping of settings"}
	}

	var problems []error
	for i := 0; i < len(root.Content); i += 2 {
		key := root.Content[i]
		if _, ok := KnownKeys[key.Value]; !ok {
			problems = append(problems, unknownKeyError(path, key.Value, key.Line, key.Column))
		}
	}
	return errors.Join(problems...)
}

// validateKnownKeys rejects keys loaded from a source without position
// information, such as a JSON file.
func validateKnownKeys(source string, keys []string) error {
	var problems []error
	for _, key := range keys {
		if _, ok := KnownKeys[key]; !ok {
			problems = append(problems, unknownKeyError(source, key, 0, 0))
		}
	}
	return errors.Join(problems...)
}

func unknownKeyError(source, key string, line, column int) *ValidationError {
	msg := fmt.Sprintf("unknown key %q", key)
	if suggestion := closestKey(key); suggestion != "" {
		msg += fmt.Sprintf(" (did you mean %q?)", suggestion)
	}
	return &ValidationError{Source: source, Line: line, Column: column, Field: key, Message: msg}
}

// closestKey returns the known key sharing the longest prefix with key, if
// the shared prefix covers at least half of it.
func closestKey(key string) string {
	best, bestLen := "", 0
	for _, known := range SortedKeys() {
		n := commonPrefixLen(key, known)
		if n > bestLen {
			best, bestLen = known, n
		}
	}
	if bestLen*2 < len(key) {
		return ""
	}
	return best
}

func commonPrefixLen(a, b string) int {
	n := 0
	for n < len(a) && n < len(b) && a[n] == b[n] {
		n++
	}
	return n
}

// ValidateConfigValues checks the merged configuration against its struct
// tags. Every failing field is reported, attributed to the layer that set it.
func ValidateConfigValues(cfg *Configuration, sourceOf func(key string) string) error {
	validate := validator.New()
	validate.RegisterTagNameFunc(koanfFieldName)

	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return &ValidationError{Source: SourceDefaults, Message: err.Error()}
	}

	problems := make([]error, 0, len(fieldErrs))
	for _, fieldErr := range fieldErrs {
		problems = append(problems, &ValidationError{
			Source:  sourceOf(fieldErr.Field()),
			Field:   fieldErr.Field(),
			Message: formatValidationError(fieldErr),
		})
	}
	return errors.Join(problems...)
}

// extractLineColumn pulls the position out of a yaml.v3 error message.
// Returns 0, 0 if unable to extract.
func extractLineColumn(errMsg string) (line, column int) {
	var l, c int
	if n, _ := fmt.Sscanf(errMsg, "yaml: line %d: column %d:", &l, &c); n == 2 {
		return l, c
	}
	if n, _ := fmt.Sscanf(errMsg, "yaml: line %d:", &l); n == 1 {
		return l, 1
	}
	return 0, 0
}

// cleanYAMLError drops the "yaml: line X:" prefix.
func cleanYAMLError(errMsg string) string {
	if idx := strings.LastIndex(errMsg, ": "); idx > 0 && strings.HasPrefix(errMsg, "yaml:") {
		return errMsg[idx+2:]
	}
	return errMsg
}

func formatValidationError(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "must not be empty"
	case "min":
		return fmt.Sprintf("must be at least %s (got %v)", fieldErr.Param(), fieldErr.Value())
	case "oneof":
		return fmt.Sprintf("must be one of: %s (got %q)", strings.Join(strings.Fields(fieldErr.Param()), ", "), fieldErr.Value())
	default:
		return fmt.Sprintf("failed validation: %s", fieldErr.Tag())
	}
}

// koanfFieldName reports struct fields by their config key.
func koanfFieldName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("koanf"), ",")
	if name == "" {
		return fld.Name
	}
	return name
}
