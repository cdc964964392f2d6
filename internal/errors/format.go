package errors

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/ariel-frischer/commitlog/internal/progress"
)

// palette paints the parts of a formatted error.
type palette struct {
	label    func(a ...any) string
	message  func(a ...any) string
	category func(a ...any) string
	usage    func(a ...any) string
	fix      func(a ...any) string
	bullet   func(a ...any) string
}

func newPalette(colors bool) palette {
	if !colors {
		return palette{fmt.Sprint, fmt.Sprint, fmt.Sprint, fmt.Sprint, fmt.Sprint, fmt.Sprint}
	}
	// The caller already decided on colors; ignore color's stdout detection.
	paint := func(attrs ...color.Attribute) func(a ...any) string {
		c := color.New(attrs...)
		c.EnableColor()
		return c.SprintFunc()
	}
	return palette{
		label:    paint(color.FgRed, color.Bold),
		message:  paint(color.FgRed),
		category: paint(color.FgYellow),
		usage:    paint(color.FgCyan),
		fix:      paint(color.FgGreen, color.Bold),
		bullet:   paint(color.FgGreen),
	}
}

// FormatError renders err as a header line, an optional usage line and the
// remediation steps. Continuation lines of a multi-line message are indented.
func FormatError(err *CLIError, colors bool) string {
	if err == nil {
		return ""
	}
	p := newPalette(colors)

	var sb strings.Builder
	message := strings.ReplaceAll(strings.TrimRight(err.Message, "\n"), "\n", "\n  ")
	fmt.Fprintf(&sb, "%s [%s]: %s\n", p.label("Error"), p.category(err.Category.String()), p.message(message))

	if err.Usage != "" {
		fmt.Fprintf(&sb, "\n%s %s\n", p.usage("Usage:"), p.usage(err.Usage))
	}

	if len(err.Remediation) > 0 {
		fmt.Fprintf(&sb, "\n%s\n", p.fix("To fix this:"))
		for _, step := range err.Remediation {
			fmt.Fprintf(&sb, "  %s %s\n", p.bullet("•"), step)
		}
	}

	return sb.String()
}

// FprintError writes err to w, in color only when w is a terminal that
// accepts colors.
func FprintError(w io.Writer, err *CLIError) {
	if err == nil {
		return
	}
	fmt.Fprint(w, FormatError(err, supportsColor(w)))
}

func supportsColor(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && progress.DetectTerminalCapabilities(f).SupportsColor
}
