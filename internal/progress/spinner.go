package progress

import (
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
)

// Spinner wraps a terminal spinner. On a non-terminal writer it is silent
// until Stop, which prints a single result line.
type Spinner struct {
	w       io.Writer
	caps    TerminalCapabilities
	symbols ProgressSymbols
	s       *spinner.Spinner
	message string
}

// NewSpinner returns a spinner writing to w with the given capabilities.
func NewSpinner(w io.Writer, caps TerminalCapabilities) *Spinner {
	return &Spinner{w: w, caps: caps, symbols: SelectSymbols(caps)}
}

// Start begins animating with message as the suffix.
func (p *Spinner) Start(message string) {
	p.message = message
	if !p.caps.IsTTY {
		return
	}
	p.s = spinner.New(spinner.CharSets[p.symbols.SpinnerSet], 100*time.Millisecond, spinner.WithWriter(p.w))
	p.s.Suffix = " " + message
	if p.caps.SupportsColor {
		_ = p.s.Color("cyan")
	}
	p.s.Start()
}

// Stop ends the animation and prints the outcome of the step. Failures are
// not printed on non-terminals; callers report them as warnings.
func (p *Spinner) Stop(err error) {
	if p.s != nil {
		p.s.Stop()
		p.s = nil
	}
	if !p.caps.IsTTY {
		return
	}

	mark := p.symbols.Checkmark
	paint := color.New(color.FgGreen).SprintFunc()
	if err != nil {
		mark = p.symbols.Failure
		paint = color.New(color.FgYellow).SprintFunc()
	}
	if !p.caps.SupportsColor {
		paint = fmt.Sprint
	}
	fmt.Fprintf(p.w, "%s %s\n", paint(mark), p.message)
}
