// Package output writes command results in the selected format and shows
// notifications to the user.
package output

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/danielolaszy/boardctl/internal/api"
	"github.com/danielolaszy/boardctl/internal/render"
)

// Format selects how results are written.
type Format string

const (
	FormatHuman Format = "human"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// ParseFormat validates a --output value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatHuman, FormatJSON, FormatYAML:
		return f, nil
	case "":
		return FormatHuman, nil
	default:
		return "", fmt.Errorf("invalid output format %q: expected human, json or yaml", s)
	}
}

// ErrorCode represents a machine-readable error classification.
type ErrorCode string

// Error code constants.
const (
	ErrGeneral      ErrorCode = "GENERAL_ERROR"
	ErrNotFound     ErrorCode = "NOT_FOUND"
	ErrValidation   ErrorCode = "VALIDATION_ERROR"
	ErrUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrNetwork      ErrorCode = "NETWORK_ERROR"
)

// Exit code constants.
const (
	ExitSuccess      = 0
	ExitGeneral      = 1
	ExitNotFound     = 2
	ExitValidation   = 3
	ExitUnauthorized = 4
)

// ValidationError carries the per-field messages of a rejected form.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", name, e.Fields[name]))
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

// CodeForError classifies err for the JSON envelope and the exit code.
func CodeForError(err error) ErrorCode {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		return ErrValidation
	case api.IsNotFound(err):
		return ErrNotFound
	case api.IsUnauthorized(err), api.IsForbidden(err):
		return ErrUnauthorized
	case api.IsNetworkError(err):
		return ErrNetwork
	default:
		return ErrGeneral
	}
}

// ExitCodeForError maps an ErrorCode to its corresponding exit code.
func ExitCodeForError(code ErrorCode) int {
	switch code {
	case ErrNotFound:
		return ExitNotFound
	case ErrValidation:
		return ExitValidation
	case ErrUnauthorized:
		return ExitUnauthorized
	default:
		return ExitGeneral
	}
}

// Writer handles output for a command, dispatching between structured and
// human-readable formats.
type Writer struct {
	Format Format
	Stdout io.Writer
	Stderr io.Writer
}

func (w *Writer) structured() bool {
	return w.Format == FormatJSON || w.Format == FormatYAML
}

// Result writes data. Structured formats encode data in a success envelope;
// the human format prints the text returned by human.
func (w *Writer) Result(data any, human func() string) error {
	switch w.Format {
	case FormatJSON:
		return writeJSONSuccess(w.Stdout, data, "")
	case FormatYAML:
		return writeYAMLSuccess(w.Stdout, data, "")
	default:
		writeHumanSuccess(w.Stdout, human())
		return nil
	}
}

// Success reports a completed mutation with an optional payload.
func (w *Writer) Success(data any, message string) error {
	switch w.Format {
	case FormatJSON:
		return writeJSONSuccess(w.Stdout, data, message)
	case FormatYAML:
		return writeYAMLSuccess(w.Stdout, data, message)
	default:
		writeHumanSuccess(w.Stdout, message)
		return nil
	}
}

// Error renders an error and returns the exit code for it. Structured
// formats write an error envelope to Stdout; the human format prints to
// Stderr.
func (w *Writer) Error(err error) int {
	code := CodeForError(err)
	switch w.Format {
	case FormatJSON:
		writeJSONError(w.Stdout, err, code)
	case FormatYAML:
		writeYAMLError(w.Stdout, err, code)
	default:
		writeHumanError(w.Stderr, err)
	}
	return ExitCodeForError(code)
}

// Info writes an informational message to Stderr. It is a no-op in
// structured formats.
func (w *Writer) Info(format string, args ...any) {
	if w.structured() {
		return
	}
	msg := fmt.Sprintf(format, args...)
	if render.ColorsEnabled() {
		icon := lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render("ℹ")
		text := lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render(msg)
		fmt.Fprintf(w.Stderr, "%s %s\n", icon, text)
	} else {
		fmt.Fprintln(w.Stderr, msg)
	}
}

// Warn writes a warning to Stderr. Warnings go to Stderr in every format so
// structured Stdout stays parseable.
func (w *Writer) Warn(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if render.ColorsEnabled() {
		icon := lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true).Render("⚠")
		label := lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true).Render("Warning:")
		fmt.Fprintf(w.Stderr, "%s %s %s\n", icon, label, msg)
	} else {
		fmt.Fprintf(w.Stderr, "Warning: %s\n", msg)
	}
}

// Notifier returns the api.Notifier that shows request failures to the user.
func (w *Writer) Notifier() api.Notifier {
	return notifier{w: w}
}

type notifier struct {
	w *Writer
}

func (n notifier) Warning(msg string) {
	n.w.Warn("%s", msg)
}

func (n notifier) Error(msg string) {
	writeHumanNotice(n.w.Stderr, msg)
}
