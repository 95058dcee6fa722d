// Package printer writes styled, human facing command output.
package printer

import (
	"context"
	"fmt"
	"io"
	"os"

	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/pencil/internal/core/styles"
)

type ctxKey struct{}

// Printer writes status lines to an output stream.
type Printer struct {
	w io.Writer
}

// New returns a printer writing to w.
func New(w io.Writer) *Printer {
	return &Printer{w: w}
}

// NewContext stores p in ctx.
func NewContext(ctx context.Context, p *Printer) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// Ctx returns the printer stored in ctx, or a printer writing to stdout.
func Ctx(ctx context.Context) *Printer {
	if p, ok := ctx.Value(ctxKey{}).(*Printer); ok {
		return p
	}
	return New(os.Stdout)
}

func (p *Printer) line(prefix string, style lipgloss.Style, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if prefix != "" {
		msg = style.Render(prefix) + " " + msg
	}
	_, _ = fmt.Fprintln(p.w, msg)
}

// Printf writes a plain line.
func (p *Printer) Printf(format string, args ...any) {
	p.line("", lipgloss.Style{}, format, args...)
}

// Successf writes a line prefixed with a check mark.
func (p *Printer) Successf(format string, args ...any) {
	p.line("✔", lipgloss.NewStyle().Foreground(styles.ColorSuccess), format, args...)
}

// Infof writes an informational line.
func (p *Printer) Infof(format string, args ...any) {
	p.line("•", lipgloss.NewStyle().Foreground(styles.ColorPrimary), format, args...)
}

// Warnf writes a warning line.
func (p *Printer) Warnf(format string, args ...any) {
	p.line("!", lipgloss.NewStyle().Foreground(styles.ColorWarning).Bold(true), format, args...)
}

// Errorf writes an error line.
func (p *Printer) Errorf(format string, args ...any) {
	p.line("✘", lipgloss.NewStyle().Foreground(styles.ColorError).Bold(true), format, args...)
}

// Section writes a bold heading.
func (p *Printer) Section(title string) {
	_, _ = fmt.Fprintln(p.w, styles.TextForegroundBoldStyle.Render(title))
}
