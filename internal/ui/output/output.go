// Package output provides the user-facing terminal printer with consistent
// color profile and TTY handling.
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/muesli/termenv"

	"go.trai.ch/sift/internal/ui/style"
)

// ColorProfile returns the color profile to use. NO_COLOR disables color
// entirely; otherwise the terminal's capabilities are detected.
func ColorProfile() termenv.Profile {
	if os.Getenv("NO_COLOR") != "" {
		return termenv.Ascii
	}
	return termenv.EnvColorProfile()
}

// New creates a new termenv.Output with the shared profile logic.
func New(w io.Writer, opts ...termenv.OutputOption) *termenv.Output {
	if w == nil {
		w = os.Stderr
	}

	opts = append(opts,
		termenv.WithProfile(ColorProfile()),
		termenv.WithTTY(true),
	)

	return termenv.NewOutput(w, opts...)
}

// Printer renders watch loop messages to the terminal.
type Printer struct {
	out *termenv.Output
}

// NewPrinter creates a printer writing to w, stderr when nil.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{out: New(w)}
}

// Notice prints a highlighted user-facing notice.
func (p *Printer) Notice(msg string) {
	fmt.Fprintln(p.out, style.Notice.Render(style.Warning+" "+msg))
}

// Pass prints a success line.
func (p *Printer) Pass(msg string) {
	fmt.Fprintln(p.out, style.Pass.Render(style.Check+" "+msg))
}

// Fail prints a failure line.
func (p *Printer) Fail(msg string) {
	fmt.Fprintln(p.out, style.Fail.Render(style.Cross+" "+msg))
}

// Info prints a secondary information line.
func (p *Printer) Info(msg string) {
	fmt.Fprintln(p.out, style.Muted.Render(msg))
}
