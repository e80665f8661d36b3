// Package ui renders the explorer's terminal output. Plain text goes to the
// output stream, labelled failures to the error stream. Styling is applied
// only when the stream is a terminal and color is enabled, so pipes and test
// buffers always receive the bare text.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"fexp/internal/config"
)

// RuleWidth is the width of the dashed separator around listings.
const RuleWidth = 80

// Theme holds the styles for one named palette.
type Theme struct {
	Name     string
	Header   lipgloss.Style
	Success  lipgloss.Style
	Warning  lipgloss.Style
	Error    lipgloss.Style
	Info     lipgloss.Style
	Emphasis lipgloss.Style
}

// NewTheme builds a Theme from the palette returned by config.GetTheme.
func NewTheme(r *lipgloss.Renderer, name string) Theme {
	palette := config.GetTheme(name)
	color := func(key string) lipgloss.Style {
		return r.NewStyle().Foreground(lipgloss.Color(palette[key]))
	}
	return Theme{
		Name:     name,
		Header:   color("primary").Bold(true),
		Success:  color("success"),
		Warning:  color("warning"),
		Error:    color("error"),
		Info:     color("info"),
		Emphasis: color("emphasis").Bold(true),
	}
}

// Printer writes explorer output.
type Printer struct {
	out      io.Writer
	errOut   io.Writer
	renderer *lipgloss.Renderer
	theme    Theme
	color    bool
	terminal bool
}

// Option configures a Printer
type Option func(*Printer)

// WithTheme selects a palette by name.
func WithTheme(name string) Option {
	return func(p *Printer) {
		p.theme = NewTheme(p.renderer, name)
	}
}

// WithColor enables or disables styling.
func WithColor(enabled bool) Option {
	return func(p *Printer) {
		p.color = enabled
	}
}

// New creates a Printer for the given streams.
func New(out, errOut io.Writer, opts ...Option) *Printer {
	r := lipgloss.NewRenderer(out)
	p := &Printer{
		out:      out,
		errOut:   errOut,
		renderer: r,
		theme:    NewTheme(r, "default"),
		color:    true,
		terminal: IsTerminal(out),
	}
	for _, opt := range opts {
		opt(p)
	}
	if !p.styled() {
		r.SetColorProfile(termenv.Ascii)
	}
	return p
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Terminal reports whether output goes to a terminal.
func (p *Printer) Terminal() bool {
	return p.terminal
}

func (p *Printer) styled() bool {
	return p.color && p.terminal
}

func (p *Printer) render(style lipgloss.Style, s string) string {
	if !p.styled() || s == "" {
		return s
	}
	return style.Render(s)
}

// Println writes a plain line.
func (p *Printer) Println(a ...interface{}) {
	fmt.Fprintln(p.out, a...)
}

// Printf writes formatted plain text.
func (p *Printer) Printf(format string, a ...interface{}) {
	fmt.Fprintf(p.out, format, a...)
}

// Prompt writes text without a trailing newline.
func (p *Printer) Prompt(text string) {
	fmt.Fprint(p.out, p.render(p.theme.Emphasis, text))
}

// Header prints a blank line and "=== title ===".
func (p *Printer) Header(title string) {
	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, p.render(p.theme.Header, "=== "+title+" ==="))
}

// Rule prints the dashed separator.
func (p *Printer) Rule() {
	fmt.Fprintln(p.out, strings.Repeat("-", RuleWidth))
}

// Success prints a success message.
func (p *Printer) Success(msg string) {
	fmt.Fprintln(p.out, p.render(p.theme.Success, msg))
}

// Warning prints a warning or refusal to the output stream.
func (p *Printer) Warning(msg string) {
	fmt.Fprintln(p.out, p.render(p.theme.Warning, msg))
}

// Info prints an informational message.
func (p *Printer) Info(msg string) {
	fmt.Fprintln(p.out, p.render(p.theme.Info, msg))
}

// Error prints msg to the error stream.
func (p *Printer) Error(msg string) {
	fmt.Fprintln(p.errOut, p.render(p.theme.Error, msg))
}

// Fail prints "label: err" to the error stream.
func (p *Printer) Fail(label string, err error) {
	p.Error(fmt.Sprintf("%s: %v", label, err))
}
