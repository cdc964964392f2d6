package changelog

import (
	"bytes"
	"encoding/json"
)

// Category identifies a changelog section.
type Category string

const (
	Features      Category = "features"
	Fixes         Category = "fixes"
	Maintenance   Category = "maintenance"
	Refactors     Category = "refactors"
	Format        Category = "format"
	Tests         Category = "tests"
	Documentation Category = "documentation"
	Other         Category = "other"
)

// Categories returns every category in classification priority order.
func Categories() []Category {
	return []Category{Features, Fixes, Maintenance, Refactors, Format, Tests, Documentation, Other}
}

// SectionOrder returns the categories emitted by the sectioned renderers, in
// display order. Documentation is classified but not part of this order.
func SectionOrder() []Category {
	return []Category{Features, Fixes, Maintenance, Refactors, Format, Tests, Other}
}

// jsonOrder is the key order of the exported sections object.
var jsonOrder = []Category{Features, Fixes, Maintenance, Format, Tests, Refactors, Documentation, Other}

// Sections holds the classified entries of every category.
// The zero value is empty and ready to use.
type Sections struct {
	entries map[Category][]string
}

// NewSections returns an empty Sections.
func NewSections() *Sections {
	return &Sections{entries: make(map[Category][]string)}
}

// Add appends an entry to category.
func (s *Sections) Add(category Category, entry string) {
	if s.entries == nil {
		s.entries = make(map[Category][]string)
	}
	s.entries[category] = append(s.entries[category], entry)
}

// Entries returns the entries of category in insertion order.
func (s *Sections) Entries(category Category) []string {
	if s == nil {
		return nil
	}
	return s.entries[category]
}

// Len returns the number of entries in category.
func (s *Sections) Len(category Category) int {
	return len(s.Entries(category))
}

// Count returns the total number of entries across all categories.
func (s *Sections) Count() int {
	if s == nil {
		return 0
	}
	total := 0
	for _, entries := range s.entries {
		total += len(entries)
	}
	return total
}

// IsEmpty returns true if no category has entries.
func (s *Sections) IsEmpty() bool {
	return s.Count() == 0
}

// MarshalJSON encodes every category as a key, in a fixed order, with empty
// categories as empty arrays.
func (s *Sections) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, category := range jsonOrder {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := marshalNoEscape(string(category))
		if err != nil {
			return nil, err
		}
		entries := s.Entries(category)
		if entries == nil {
			entries = []string{}
		}
		value, err := marshalNoEscape(entries)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Changelog is the rendered result of one run. It is built once and not
// modified afterwards.
type Changelog struct {
	// Title is the latest tag, empty when no tag range was resolved.
	Title string
	// Commits are the formatted log lines in log order.
	Commits []string
	// Sections are the classified commits.
	Sections *Sections
	// Text is the flat capitalized commit list.
	Text string
	// Conventional is the sectioned plain-text report.
	Conventional string
	// Markdown is the sectioned Markdown document.
	Markdown string
}

// HasTitle reports whether a release title was resolved.
func (c *Changelog) HasTitle() bool {
	return c.Title != ""
}

// SectionsJSON returns the JSON form of the classified sections.
func (c *Changelog) SectionsJSON() (string, error) {
	data, err := marshalNoEscape(c.Sections)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// marshalNoEscape encodes v without escaping <, > and &, so commit text
// reaches CI variables unchanged.
func marshalNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
