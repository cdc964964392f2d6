package git

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/lestrrat-go/strftime"
)

// abbrevLen matches git's default core.abbrev.
const abbrevLen = 7

// PrettyFormat expands git --pretty=format: placeholders for a commit.
// Supported: %H %h %T %t %P %p %an %ae %ad %cn %ce %cd %s %b %B %n %%.
// Unknown placeholders are copied through unchanged, as git does.
type PrettyFormat struct {
	format string
	date   *strftime.Strftime
}

// NewPrettyFormat compiles the date pattern used by %ad and %cd.
func NewPrettyFormat(format, dateFormat string) (*PrettyFormat, error) {
	if dateFormat == "" {
		dateFormat = "%Y-%m-%d %H:%M:%S"
	}
	date, err := strftime.New(dateFormat)
	if err != nil {
		return nil, fmt.Errorf("parsing date format %q: %w", dateFormat, err)
	}
	return &PrettyFormat{format: format, date: date}, nil
}

// Expand renders the format for c.
func (p *PrettyFormat) Expand(c *object.Commit) string {
	var b strings.Builder
	f := p.format

	for i := 0; i < len(f); i++ {
		if f[i] != '%' || i+1 >= len(f) {
			b.WriteByte(f[i])
			continue
		}

		next := f[i+1]
		if (next == 'a' || next == 'c') && i+2 < len(f) {
			sig := c.Author
			if next == 'c' {
				sig = c.Committer
			}
			if v, ok := p.signature(sig, f[i+2]); ok {
				b.WriteString(v)
				i += 2
				continue
			}
		}

		if v, ok := p.single(c, next); ok {
			b.WriteString(v)
			i++
			continue
		}

		b.WriteByte('%')
	}

	return b.String()
}

func (p *PrettyFormat) signature(sig object.Signature, field byte) (string, bool) {
	switch field {
	case 'n':
		return sig.Name, true
	case 'e':
		return sig.Email, true
	case 'd':
		return p.formatDate(sig.When), true
	}
	return "", false
}

func (p *PrettyFormat) single(c *object.Commit, field byte) (string, bool) {
	switch field {
	case 'H':
		return c.Hash.String(), true
	case 'h':
		return abbrev(c.Hash), true
	case 'T':
		return c.TreeHash.String(), true
	case 't':
		return abbrev(c.TreeHash), true
	case 'P':
		return joinHashes(c.ParentHashes, false), true
	case 'p':
		return joinHashes(c.ParentHashes, true), true
	case 's':
		subject, _ := splitMessage(c.Message)
		return subject, true
	case 'b':
		_, body := splitMessage(c.Message)
		return body, true
	case 'B':
		return c.Message, true
	case 'n':
		return "\n", true
	case '%':
		return "%", true
	}
	return "", false
}

// formatDate renders t in its own zone, matching --date=format:.
func (p *PrettyFormat) formatDate(t time.Time) string {
	return p.date.FormatString(t)
}

func abbrev(h plumbing.Hash) string {
	return h.String()[:abbrevLen]
}

func joinHashes(hashes []plumbing.Hash, short bool) string {
	parts := make([]string, len(hashes))
	for i, h := range hashes {
		if short {
			parts[i] = abbrev(h)
		} else {
			parts[i] = h.String()
		}
	}
	return strings.Join(parts, " ")
}

// splitMessage separates the subject (first paragraph, lines joined by a
// space) from the body (everything after the first blank line).
func splitMessage(msg string) (subject, body string) {
	msg = strings.TrimLeft(strings.ReplaceAll(msg, "\r\n", "\n"), "\n")

	head, rest, found := strings.Cut(msg, "\n\n")
	lines := strings.Split(strings.TrimRight(head, "\n"), "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}
	subject = strings.Join(lines, " ")

	if found {
		body = strings.TrimLeft(rest, "\n")
	}
	return subject, body
}
