// Package console prints operator-facing progress lines.
package console

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

type Printer struct {
	out io.Writer

	step *color.Color
	ok   *color.Color
	warn *color.Color
	fail *color.Color
	bold *color.Color
}

// New returns a Printer writing to out, or to color.Output when out is nil.
func New(out io.Writer) *Printer {
	if out == nil {
		out = color.Output
	}
	return &Printer{
		out:  out,
		step: color.New(color.FgHiYellow),
		ok:   color.New(color.FgHiGreen),
		warn: color.New(color.FgYellow),
		fail: color.New(color.FgHiRed),
		bold: color.New(color.FgHiGreen, color.Bold),
	}
}

// SetColor forces colored output on or off for every Printer.
func SetColor(enabled bool) {
	color.NoColor = !enabled
}

func (p *Printer) Banner(format string, args ...any) {
	p.bold.Fprintln(p.out, fmt.Sprintf(format, args...))
}

func (p *Printer) Step(format string, args ...any) {
	p.step.Fprintln(p.out, "» "+fmt.Sprintf(format, args...))
}

func (p *Printer) OK(format string, args ...any) {
	p.ok.Fprintln(p.out, "✔ "+fmt.Sprintf(format, args...))
}

func (p *Printer) Warn(format string, args ...any) {
	p.warn.Fprintln(p.out, "! "+fmt.Sprintf(format, args...))
}

func (p *Printer) Fail(format string, args ...any) {
	p.fail.Fprintln(p.out, "✘ "+fmt.Sprintf(format, args...))
}
