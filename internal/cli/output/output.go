// Package output renders command results for terminals, pipes and machines.
//
// The renderer picks a mode once: styled text on a terminal, markdown when
// piped, or JSON when asked. Commands branch on EffectiveMode.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// OutputMode selects how results are rendered.
type OutputMode string

// Mode converts a configured string into an OutputMode.
func Mode(s string) OutputMode {
	return OutputMode(strings.ToLower(strings.TrimSpace(s)))
}

// Output modes.
const (
	ModeAuto     OutputMode = "auto"
	ModeText     OutputMode = "text"
	ModeMarkdown OutputMode = "markdown"
	ModeJSON     OutputMode = "json"
)

// Modes lists the accepted mode names.
var Modes = []OutputMode{ModeAuto, ModeText, ModeMarkdown, ModeJSON}

// UnmarshalText decodes a configured mode, rejecting unknown names.
func (m *OutputMode) UnmarshalText(b []byte) error {
	mode := Mode(string(b))
	if !mode.Valid() {
		return fmt.Errorf("unknown output mode %q (want one of %v)", string(b), Modes)
	}
	*m = mode
	return nil
}

// Valid reports whether m is a known mode. The empty mode counts as auto.
func (m OutputMode) Valid() bool {
	if m == "" {
		return true
	}
	for _, known := range Modes {
		if m == known {
			return true
		}
	}
	return false
}

// Renderer writes results to stdout and diagnostics to stderr.
type Renderer struct {
	out    io.Writer
	errOut io.Writer
	isTTY  bool
	mode   OutputMode
	styles styles
}

type styles struct {
	header  lipgloss.Style
	success lipgloss.Style
	warning lipgloss.Style
	err     lipgloss.Style
	muted   lipgloss.Style
	key     lipgloss.Style
}

// NewRenderer creates a renderer, detecting whether out is a terminal.
func NewRenderer(out, errOut io.Writer, mode OutputMode) *Renderer {
	return NewRendererWithTTY(out, errOut, isTerminal(out), mode)
}

// NewRendererWithTTY creates a renderer with an explicit terminal flag.
func NewRendererWithTTY(out, errOut io.Writer, isTTY bool, mode OutputMode) *Renderer {
	lr := lipgloss.NewRenderer(out)
	if !isTTY {
		lr.SetColorProfile(termenv.Ascii)
	}

	return &Renderer{
		out:    out,
		errOut: errOut,
		isTTY:  isTTY,
		mode:   mode,
		styles: styles{
			header:  lr.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
			success: lr.NewStyle().Foreground(lipgloss.Color("10")),
			warning: lr.NewStyle().Foreground(lipgloss.Color("11")),
			err:     lr.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
			muted:   lr.NewStyle().Foreground(lipgloss.Color("8")),
			key:     lr.NewStyle().Bold(true),
		},
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd())) //nolint:gosec // fd fits in int
}

// EffectiveMode resolves auto: text on a terminal, markdown otherwise.
func (r *Renderer) EffectiveMode() OutputMode {
	switch r.mode {
	case ModeText, ModeMarkdown, ModeJSON:
		return r.mode
	default:
		if r.isTTY {
			return ModeText
		}
		return ModeMarkdown
	}
}

// Out returns the stdout writer.
func (r *Renderer) Out() io.Writer {
	return r.out
}

// Println writes a line to stdout.
func (r *Renderer) Println(s string) {
	_, _ = fmt.Fprintln(r.out, s)
}

// Printf writes formatted text to stdout.
func (r *Renderer) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.out, format, args...)
}

// Header writes a styled heading.
func (r *Renderer) Header(level int, text string) {
	if r.EffectiveMode() == ModeMarkdown {
		r.Println(FormatHeader(level, text))
		return
	}
	r.Println(r.styles.header.Render(text))
}

// Success writes a confirmation line to stdout.
func (r *Renderer) Success(msg string) {
	r.Println(r.styles.success.Render("✓ " + msg))
}

// Muted writes a low-emphasis line to stdout.
func (r *Renderer) Muted(msg string) {
	r.Println(r.styles.muted.Render(msg))
}

// KeyValue writes "key: value" to stdout.
func (r *Renderer) KeyValue(key string, value any) {
	if r.EffectiveMode() == ModeMarkdown {
		r.Println(FormatKeyValue(key, fmt.Sprint(value)))
		return
	}
	r.Printf("%s %v\n", r.styles.key.Render(key+":"), value)
}

// Warning writes a warning to stderr.
func (r *Renderer) Warning(msg string) {
	_, _ = fmt.Fprintln(r.errOut, r.styles.warning.Render("Warning: "+msg))
}

// Error writes an error to stderr.
func (r *Renderer) Error(msg string) {
	_, _ = fmt.Fprintln(r.errOut, r.styles.err.Render("Error: "+msg))
}

// JSON writes v as indented JSON to stdout.
func (r *Renderer) JSON(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// FormatHeader returns a markdown heading.
func FormatHeader(level int, text string) string {
	level = max(1, min(level, 6))
	return strings.Repeat("#", level) + " " + text
}

// FormatKeyValue returns a bold markdown key with its value.
func FormatKeyValue(key, value string) string {
	return fmt.Sprintf("**%s:** %s", key, value)
}
