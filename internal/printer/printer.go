// Package printer renders CLI output with status colors.
package printer

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/ashita-ai/cohumain/internal/model"
)

var (
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed, color.Bold)
	cyan   = color.New(color.FgCyan)
)

// Printer writes human-oriented output. Color is disabled automatically when
// NO_COLOR is set or stdout is not a terminal.
type Printer struct {
	out    io.Writer
	errOut io.Writer
}

// New creates a Printer writing normal output to out and errors to errOut.
func New(out, errOut io.Writer) *Printer {
	return &Printer{out: out, errOut: errOut}
}

// Success prints a message in green with a checkmark prefix.
func (p *Printer) Success(format string, a ...any) {
	msg := fmt.Sprintf(format, a...)
	if !strings.HasPrefix(msg, "✓") {
		msg = "✓ " + msg
	}
	green.Fprint(p.out, msg)
}

// Info prints a message in the default color.
func (p *Printer) Info(format string, a ...any) {
	fmt.Fprintf(p.out, format, a...)
}

// Warning prints a message in yellow with a warning prefix.
func (p *Printer) Warning(format string, a ...any) {
	msg := fmt.Sprintf(format, a...)
	if !strings.HasPrefix(msg, "⚠️") {
		msg = "⚠️  " + msg
	}
	yellow.Fprint(p.out, msg)
}

// Step prints a step marker in cyan.
func (p *Printer) Step(format string, a ...any) {
	cyan.Fprintf(p.out, "→ %s", fmt.Sprintf(format, a...))
}

// Error prints a titled error with explanation and suggestions to the error
// writer and returns an error carrying only the title, for Cobra.
func (p *Printer) Error(title, explanation string, suggestions []string) error {
	red.Fprintf(p.errOut, "%s\n\n", title)
	if explanation != "" {
		fmt.Fprintf(p.errOut, "%s\n", explanation)
	}
	switch len(suggestions) {
	case 0:
	case 1:
		fmt.Fprintf(p.errOut, "\n%s\n", suggestions[0])
	default:
		fmt.Fprintf(p.errOut, "\nEither:\n")
		for i, s := range suggestions {
			fmt.Fprintf(p.errOut, "  %d. %s\n", i+1, s)
		}
	}
	return fmt.Errorf("%s", title)
}

// Status returns the status label colored by severity.
func Status(s model.SafetyStatus) string {
	label := strings.ToUpper(string(s))
	switch s {
	case model.StatusSafe:
		return green.Sprint(label)
	case model.StatusWarning:
		return yellow.Sprint(label)
	case model.StatusCritical:
		return red.Sprint(label)
	default:
		return label
	}
}

// TaskSummary prints a one-line outcome for a task result.
func (p *Printer) TaskSummary(r model.TaskResult) {
	fmt.Fprintf(p.out, "%s  %s  automation=%s confidence=%.3f review=%t  %s\n",
		Status(r.SafetyAssessment.Status), r.ID, r.AutomationLevel,
		r.CalibratedConfidence, r.RequiresHumanReview, r.Task)
}
