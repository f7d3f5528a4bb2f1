package view

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/jsamuelsen/quotebox/internal/domain"
	"github.com/jsamuelsen/quotebox/internal/ports"
)

// Terminal renders the widget to a terminal. Quotes go to out, successes are
// printed in green to out, failures in red to errOut.
type Terminal struct {
	out         io.Writer
	errOut      io.Writer
	showOptions bool

	quote   *color.Color
	success *color.Color
	failure *color.Color
}

// TerminalOption configures a Terminal.
type TerminalOption func(*Terminal)

// WithCategoryOptions prints the category options whenever they are rendered.
func WithCategoryOptions() TerminalOption {
	return func(t *Terminal) {
		t.showOptions = true
	}
}

// WithoutColor disables ANSI colors.
func WithoutColor() TerminalOption {
	return func(t *Terminal) {
		t.quote.DisableColor()
		t.success.DisableColor()
		t.failure.DisableColor()
	}
}

// NewTerminal creates a terminal surface.
func NewTerminal(out, errOut io.Writer, opts ...TerminalOption) *Terminal {
	t := &Terminal{
		out:     out,
		errOut:  errOut,
		quote:   color.New(color.FgCyan),
		success: color.New(color.FgGreen),
		failure: color.New(color.FgRed, color.Bold),
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// Display implements ports.Surface.
func (t *Terminal) Display(text string) {
	_, _ = t.quote.Fprintln(t.out, text)
}

// SetCategoryOptions implements ports.Surface.
func (t *Terminal) SetCategoryOptions(options []string) {
	if !t.showOptions {
		return
	}

	_, _ = fmt.Fprintln(t.out, strings.Join(options, "\n"))
}

// ClearInputs implements ports.Surface. Command arguments have nothing to clear.
func (t *Terminal) ClearInputs() {}

// Notify implements ports.Surface.
func (t *Terminal) Notify(n domain.Notification) {
	if n.Severity == domain.SeverityError {
		_, _ = t.failure.Fprintln(t.errOut, n.Message)

		return
	}

	_, _ = t.success.Fprintln(t.out, n.Message)
}

var _ ports.Surface = (*Terminal)(nil)
