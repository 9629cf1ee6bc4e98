package ui

import (
	"fmt"
	"io"
	"os"
)

var (
	reset = "\033[0m"
	bold  = "\033[1m"

	fgGray   = "\033[90m"
	fgGreen  = "\033[32m"
	fgYellow = "\033[33m"
	fgBlue   = "\033[34m"
	fgRed    = "\033[31m"
)

// Printer writes themed status lines. Out and Err default to the
// process's stdout and stderr.
type Printer struct {
	Out, Err io.Writer
	Color    bool
}

// NewPrinter returns a Printer coloring output only when stdout is a
// terminal and the theme allows it.
func NewPrinter() *Printer {
	return &Printer{Out: os.Stdout, Err: os.Stderr, Color: isTTY() && !current.NoColor}
}

func isTTY() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}

// C wraps s in color when coloring is on.
func (p *Printer) C(color, s string) string {
	if !p.Color || color == "" {
		return s
	}
	return color + s + reset
}

func (p *Printer) OK(msg string) {
	fmt.Fprintln(p.Out, p.C(current.Success, current.SymOK+" "+msg))
}

func (p *Printer) Fail(msg string) {
	fmt.Fprintln(p.Err, p.C(current.Error, current.SymFail+" "+msg))
}

// Hint prints a muted line to stderr.
func (p *Printer) Hint(msg string) {
	fmt.Fprintln(p.Err, p.C(current.Muted, msg))
}
