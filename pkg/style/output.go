// Package style renders dotf's terminal output: status glyphs, headers,
// paths and messages. Styling is only applied when the destination is a
// colour-capable terminal and NO_COLOR is unset; otherwise output is plain
// text so that it can be piped and tested.
package style

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Output writes optionally styled text to a writer
type Output struct {
	w     io.Writer
	color bool

	header  lipgloss.Style
	path    lipgloss.Style
	success lipgloss.Style
	warning lipgloss.Style
	err     lipgloss.Style
	muted   lipgloss.Style
	bold    lipgloss.Style
}

// NewOutput creates an Output that styles text when w is a colour terminal
func NewOutput(w io.Writer) *Output {
	return newOutput(w, DetectColor(w))
}

// NewPlainOutput creates an Output that never styles text
func NewPlainOutput(w io.Writer) *Output {
	return newOutput(w, false)
}

func newOutput(w io.Writer, color bool) *Output {
	r := lipgloss.NewRenderer(w)
	return &Output{
		w:       w,
		color:   color,
		header:  r.NewStyle().Foreground(HeadingColor).Bold(true),
		path:    r.NewStyle().Foreground(PrimaryColor),
		success: r.NewStyle().Foreground(SuccessColor),
		warning: r.NewStyle().Foreground(WarningColor),
		err:     r.NewStyle().Foreground(ErrorColor).Bold(true),
		muted:   r.NewStyle().Foreground(MutedColor),
		bold:    r.NewStyle().Bold(true),
	}
}

// DetectColor reports whether styled output should be written to w
func DetectColor(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}

	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	if !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
		return false
	}

	return termenv.NewOutput(f).ColorProfile() != termenv.Ascii
}

// Writer returns the underlying writer
func (o *Output) Writer() io.Writer { return o.w }

// Color reports whether styling is applied
func (o *Output) Color() bool { return o.color }

func (o *Output) render(s lipgloss.Style, text string) string {
	if !o.color {
		return text
	}
	return s.Render(text)
}

func (o *Output) Header(text string) string  { return o.render(o.header, text) }
func (o *Output) Path(text string) string    { return o.render(o.path, text) }
func (o *Output) Success(text string) string { return o.render(o.success, text) }
func (o *Output) Warning(text string) string { return o.render(o.warning, text) }
func (o *Output) Error(text string) string   { return o.render(o.err, text) }
func (o *Output) Muted(text string) string   { return o.render(o.muted, text) }
func (o *Output) Bold(text string) string    { return o.render(o.bold, text) }

// Printf writes formatted text
func (o *Output) Printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(o.w, format, args...)
}

// Println writes a line
func (o *Output) Println(args ...interface{}) {
	_, _ = fmt.Fprintln(o.w, args...)
}
