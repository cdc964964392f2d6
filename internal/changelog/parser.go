package changelog

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Rule matches one category's commit prefixes. Patterns are anchored at the
// start of the line, case-sensitive, and expose the named groups ticket1,
// ticket2 and message.
type Rule struct {
	Category Category
	Pattern  *regexp.Regexp
}

// space is the whitespace accepted before the colon and trimmed from
// messages: ASCII \t through \r, Unicode space separators, the line and
// paragraph separators and the byte order mark.
const space = `[\x09-\x0D\p{Zs}\x{2028}\x{2029}\x{FEFF}]`

// rules are checked in order; the first match wins.
var rules = []Rule{
	newRule(Features, `feat\((?P<ticket1>.*)\)|feat|feature|feature\((?P<ticket2>.*)\)`),
	newRule(Fixes, `fix\((?P<ticket1>.*)\)|fix|bugfix|bugfix\((?P<ticket2>.*)\)`),
	newRule(Maintenance, `chore\((?P<ticket1>.*)\)|chore|build|build\((?P<ticket2>.*)\)`),
	newRule(Refactors, `refactor\((?P<ticket1>.*)\)|refactor`),
	newRule(Format, `format\((?P<ticket1>.*)\)|format`),
	newRule(Tests, `test\((?P<ticket1>.*)\)|test|tests|tests\((?P<ticket2>.*)\)`),
	newRule(Documentation, `docs\((?P<ticket1>.*)\)|docs|doc|doc\((?P<ticket2>.*)\)`),
}

// newRule anchors the prefix alternatives, allows one space before the colon
// and captures the rest of the line as the message.
func newRule(category Category, prefixes string) Rule {
	return Rule{
		Category: category,
		Pattern:  regexp.MustCompile(`^(` + prefixes + `)` + space + `?:(?P<message>.*)$`),
	}
}

// Rules returns the classification rules in priority order.
func Rules() []Rule {
	return append([]Rule(nil), rules...)
}

// Result is the outcome of parsing one commit line.
type Result struct {
	Category Category
	// Ticket is the parenthesized identifier, empty when none was captured.
	Ticket string
	// Message is the trimmed, capitalized message. For Other it is the whole
	// line, capitalized.
	Message string
}

// Entry formats the result as it appears in a section: "<ticket> <message>"
// or just the message.
func (r Result) Entry() string {
	if r.Ticket != "" {
		return r.Ticket + " " + r.Message
	}
	return r.Message
}

// Parse classifies a single commit line.
func Parse(line string) Result {
	for _, rule := range rules {
		match := rule.Pattern.FindStringSubmatch(line)
		if match == nil {
			continue
		}
		return Result{
			Category: rule.Category,
			Ticket:   ticket(rule.Pattern, match),
			Message:  Capitalize(strings.TrimFunc(group(rule.Pattern, match, "message"), isSpace)),
		}
	}
	return Result{Category: Other, Message: Capitalize(line)}
}

// Classify files every commit into exactly one category, preserving order
// within each category.
func Classify(commits []string) *Sections {
	sections := NewSections()
	for _, commit := range commits {
		result := Parse(commit)
		sections.Add(result.Category, result.Entry())
	}
	return sections
}

// ticket returns the first non-empty ticket capture.
func ticket(re *regexp.Regexp, match []string) string {
	if t := group(re, match, "ticket1"); t != "" {
		return t
	}
	return group(re, match, "ticket2")
}

func group(re *regexp.Regexp, match []string, name string) string {
	idx := re.SubexpIndex(name)
	if idx < 0 || idx >= len(match) {
		return ""
	}
	return match[idx]
}

// Capitalize upper-cases the first letter of s using the full Unicode
// mapping, so a leading "ß" becomes "SS".
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return cases.Upper(language.Und).String(s[:size]) + s[size:]
}

// isSpace reports whether r belongs to the space class.
func isSpace(r rune) bool {
	switch {
	case r >= '\t' && r <= '\r':
		return true
	case r == '\u2028', r == '\u2029', r == '\uFEFF':
		return true
	}
	return unicode.Is(unicode.Zs, r)
}
