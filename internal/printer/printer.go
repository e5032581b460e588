// Package printer writes styled status lines for CLI commands.
package printer

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hay-kot/omiquji/internal/core/styles"
)

type ctxKey struct{}

// Printer writes human-facing command output. Successes and info go to
// the output writer; warnings and errors go to the error writer.
type Printer struct {
	out io.Writer
	err io.Writer
}

// New returns a Printer writing to out and errOut.
func New(out, errOut io.Writer) *Printer {
	return &Printer{out: out, err: errOut}
}

// WithPrinter stores p in ctx.
func WithPrinter(ctx context.Context, p *Printer) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// Ctx returns the Printer stored in ctx, or one bound to stdout and
// stderr.
func Ctx(ctx context.Context) *Printer {
	if p, ok := ctx.Value(ctxKey{}).(*Printer); ok && p != nil {
		return p
	}
	return New(os.Stdout, os.Stderr)
}

// Out returns the output writer.
func (p *Printer) Out() io.Writer {
	return p.out
}

func (p *Printer) line(w io.Writer, style lipgloss.Style, icon, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if icon != "" {
		msg = style.Render(icon) + " " + msg
	}
	_, _ = fmt.Fprintln(w, msg)
}

func (p *Printer) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(p.out, format+"\n", args...)
}

func (p *Printer) Successf(format string, args ...any) {
	p.line(p.out, styles.SuccessStyle, styles.IconCheck, format, args...)
}

func (p *Printer) Infof(format string, args ...any) {
	p.line(p.out, styles.InfoStyle, styles.IconInfo, format, args...)
}

func (p *Printer) Warnf(format string, args ...any) {
	p.line(p.err, styles.WarningStyle, styles.IconWarning, format, args...)
}

func (p *Printer) Errorf(format string, args ...any) {
	p.line(p.err, styles.ErrorStyle, styles.IconCross, format, args...)
}

// Header prints a bold section title.
func (p *Printer) Header(title string) {
	_, _ = fmt.Fprintln(p.out, styles.HeaderStyle.Render(title))
}

// Entry prints one numbered list entry. Continuation lines of multi-line
// text are indented under the first.
func (p *Printer) Entry(index int, text string) {
	prefix := styles.IndexStyle.Render(fmt.Sprint(index)) + "  "
	indent := strings.Repeat(" ", lipgloss.Width(prefix))

	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	for i, l := range lines {
		lead := indent
		if i == 0 {
			lead = prefix
		}
		_, _ = fmt.Fprintln(p.out, lead+l)
	}
}
