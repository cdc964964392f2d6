package changelog

import (
	"io"
	"strings"
)

// Divider separates a title from the lines below it.
const Divider = "------"

// sectionBreak is appended after each section. Joined with newlines it leaves
// two blank lines between sections.
const sectionBreak = "\n"

// markdownItemPrefix turns an entry into a Markdown list item.
const markdownItemPrefix = " - "

// Titles maps each category to its section heading.
type Titles map[Category]string

// DefaultTextTitles returns the plain-text section headings.
func DefaultTextTitles() Titles {
	return Titles{
		Features:      "Features",
		Fixes:         "Bugfixes",
		Maintenance:   "Maintenance",
		Refactors:     "Refactors",
		Format:        "Formatting",
		Tests:         "Tests",
		Documentation: "Documentation",
		Other:         "Other changes",
	}
}

// DefaultMarkdownTitles returns the Markdown section headings.
func DefaultMarkdownTitles() Titles {
	return Titles{
		Features:      "## 🎉 Features",
		Fixes:         "## 🐛 Bugfixes",
		Maintenance:   "## 🔨Maintenance",
		Refactors:     "## 🧹 Refactors",
		Format:        "## 📋 Formatting",
		Tests:         "## 📝 Tests",
		Documentation: "## 📄 Documentation",
		Other:         "## 📚 Other changes",
	}
}

// WithOverrides returns a copy of t where every non-empty override replaces
// the default heading.
func (t Titles) WithOverrides(overrides map[Category]string) Titles {
	out := make(Titles, len(t))
	for k, v := range t {
		out[k] = v
	}
	for k, v := range overrides {
		if v != "" {
			out[k] = v
		}
	}
	return out
}

// titleBlock returns the release heading lines, or nothing without a title.
func titleBlock(title, prefix string) []string {
	if title == "" {
		return nil
	}
	return []string{prefix + title, Divider, ""}
}

// RenderText writes every commit line, capitalized, in log order. The
// classification is ignored.
func RenderText(title string, commits []string, w io.Writer) error {
	lines := titleBlock(title, "")
	for _, commit := range commits {
		lines = append(lines, Capitalize(commit))
	}
	return writeLines(lines, w)
}

// RenderConventional writes each non-empty section with its heading, a
// divider and one entry per line.
func RenderConventional(title string, s *Sections, titles Titles, w io.Writer) error {
	lines := titleBlock(title, "")
	lines = appendSections(lines, s, titles, "")
	return writeLines(lines, w)
}

// RenderMarkdown writes the same structure as RenderConventional with
// Markdown list items and a "#" release heading.
func RenderMarkdown(title string, s *Sections, titles Titles, w io.Writer) error {
	lines := titleBlock(title, "#")
	lines = appendSections(lines, s, titles, markdownItemPrefix)
	return writeLines(lines, w)
}

// RenderTextString is a convenience function that renders to a string.
func RenderTextString(title string, commits []string) string {
	var b strings.Builder
	_ = RenderText(title, commits, &b)
	return b.String()
}

// RenderConventionalString is a convenience function that renders to a string.
func RenderConventionalString(title string, s *Sections, titles Titles) string {
	var b strings.Builder
	_ = RenderConventional(title, s, titles, &b)
	return b.String()
}

// RenderMarkdownString is a convenience function that renders to a string.
func RenderMarkdownString(title string, s *Sections, titles Titles) string {
	var b strings.Builder
	_ = RenderMarkdown(title, s, titles, &b)
	return b.String()
}

func appendSections(lines []string, s *Sections, titles Titles, itemPrefix string) []string {
	for _, category := range SectionOrder() {
		entries := s.Entries(category)
		if len(entries) == 0 {
			continue
		}
		lines = append(lines, titles[category], Divider)
		for _, entry := range entries {
			lines = append(lines, itemPrefix+entry)
		}
		lines = append(lines, sectionBreak)
	}
	return lines
}

func writeLines(lines []string, w io.Writer) error {
	_, err := io.WriteString(w, strings.Join(lines, "\n"))
	return err
}
