package changelog

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

// CategoryStyle defines the color and icon for a changelog category.
type CategoryStyle struct {
	Color *color.Color
	Icon  string
}

// categoryStyles maps categories to their terminal styling.
var categoryStyles = map[Category]CategoryStyle{
	Features:      {Color: color.New(color.FgGreen), Icon: "✓"},
	Fixes:         {Color: color.New(color.FgYellow), Icon: "⚡"},
	Maintenance:   {Color: color.New(color.FgBlue), Icon: "⚙"},
	Refactors:     {Color: color.New(color.FgCyan), Icon: "~"},
	Format:        {Color: color.New(color.FgWhite), Icon: "¶"},
	Tests:         {Color: color.New(color.FgMagenta), Icon: "✎"},
	Documentation: {Color: color.New(color.FgHiBlue), Icon: "📄"},
	Other:         {Color: color.New(color.FgHiBlack), Icon: "•"},
}

// FormatOptions controls the terminal output formatting.
type FormatOptions struct {
	Plain    bool // Disable colors and icons
	MaxWidth int  // Maximum line width (0 = auto-detect)
}

// FormatTerminal writes every non-empty category, documentation included,
// with color-coded headers and wrapped entries.
func FormatTerminal(s *Sections, titles Titles, w io.Writer, opts FormatOptions) error {
	if s.IsEmpty() {
		_, err := fmt.Fprintln(w, "No commits found.")
		return err
	}

	width := resolveWidth(opts.MaxWidth)

	first := true
	for _, category := range Categories() {
		entries := s.Entries(category)
		if len(entries) == 0 {
			continue
		}
		if !first {
			fmt.Fprintln(w)
		}
		first = false
		if err := writeCategorySection(category, titles[category], entries, w, opts, width); err != nil {
			return fmt.Errorf("formatting %s: %w", category, err)
		}
	}

	return nil
}

// writeCategorySection writes a single category with its entries.
func writeCategorySection(category Category, title string, entries []string, w io.Writer, opts FormatOptions, width int) error {
	style := categoryStyles[category]

	if err := writeCategoryHeader(title, len(entries), style, w, opts); err != nil {
		return err
	}

	for _, entry := range entries {
		if err := writeEntry(entry, style, w, opts, width); err != nil {
			return err
		}
	}

	return nil
}

// writeCategoryHeader writes the category header line.
func writeCategoryHeader(title string, count int, style CategoryStyle, w io.Writer, opts FormatOptions) error {
	if opts.Plain {
		_, err := fmt.Fprintf(w, "%s (%d)\n", title, count)
		return err
	}

	colored := style.Color.SprintFunc()
	bold := color.New(color.Bold).SprintFunc()
	_, err := fmt.Fprintf(w, "%s %s (%d)\n", colored(style.Icon), bold(colored(title)), count)
	return err
}

// writeEntry writes a single entry with optional wrapping.
func writeEntry(entry string, style CategoryStyle, w io.Writer, opts FormatOptions, width int) error {
	prefix := "  - "

	if opts.Plain {
		_, err := fmt.Fprintf(w, "%s%s\n", prefix, entry)
		return err
	}

	wrapped := wrapText(entry, width-len(prefix), "    ")

	colored := style.Color.SprintFunc()
	_, err := fmt.Fprintf(w, "%s%s\n", prefix, colored(wrapped))
	return err
}

// FormatSummary returns a one-line count of entries per non-empty category.
func FormatSummary(s *Sections, opts FormatOptions) string {
	var parts []string
	for _, category := range Categories() {
		n := s.Len(category)
		if n == 0 {
			continue
		}
		part := fmt.Sprintf("%d %s", n, category)
		if !opts.Plain {
			part = categoryStyles[category].Color.Sprint(part)
		}
		parts = append(parts, part)
	}

	total := s.Count()
	noun := "commits"
	if total == 1 {
		noun = "commit"
	}
	if len(parts) == 0 {
		return fmt.Sprintf("%d %s", total, noun)
	}
	return fmt.Sprintf("%d %s: %s", total, noun, strings.Join(parts, ", "))
}

// displayWidth measures columns with ambiguous-width runes as narrow,
// regardless of the locale.
var displayWidth = func() *runewidth.Condition {
	c := runewidth.NewCondition()
	c.EastAsianWidth = false
	return c
}()

// resolveWidth determines the terminal width to use.
func resolveWidth(maxWidth int) int {
	if maxWidth > 0 {
		return maxWidth
	}
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}

// wrapText wraps text to fit within maxWidth display columns, using indent
// for continuation lines. Lines break on rune boundaries.
func wrapText(text string, maxWidth int, indent string) string {
	if maxWidth <= 0 || displayWidth.StringWidth(text) <= maxWidth {
		return text
	}

	var lines []string
	remaining := []rune(text)

	for displayWidth.StringWidth(string(remaining)) > maxWidth {
		fit := fitRunes(remaining, maxWidth)

		// Find the last space within the fitting prefix
		breakPoint := fit
		for i := fit - 1; i > 0; i-- {
			if remaining[i] == ' ' {
				breakPoint = i
				break
			}
		}

		lines = append(lines, string(remaining[:breakPoint]))
		remaining = trimLeadingSpaces(remaining[breakPoint:])
	}

	if len(remaining) > 0 {
		lines = append(lines, string(remaining))
	}

	return strings.Join(lines, "\n"+indent)
}

// fitRunes returns how many leading runes fit in maxWidth columns, at least one.
func fitRunes(runes []rune, maxWidth int) int {
	n, width := 0, 0
	for n < len(runes) {
		w := displayWidth.RuneWidth(runes[n])
		if width+w > maxWidth {
			break
		}
		width += w
		n++
	}
	if n == 0 {
		return 1
	}
	return n
}

func trimLeadingSpaces(runes []rune) []rune {
	for len(runes) > 0 && runes[0] == ' ' {
		runes = runes[1:]
	}
	return runes
}
