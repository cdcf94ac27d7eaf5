// Package display prints the drill transcript as plain lines.
package display

import (
	"fmt"
	"io"
	"strings"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/abhisek/keydrill/internal/keys"
	"github.com/abhisek/keydrill/internal/session"
	"github.com/abhisek/keydrill/internal/terminal"
	"github.com/abhisek/keydrill/internal/ui/theme"
)

// Display writes to a terminal or any other writer.
type Display struct {
	w     io.Writer
	color bool
}

// New creates a Display. With color false no styling is emitted.
func New(w io.Writer, color bool) *Display {
	return &Display{w: w, color: color}
}

func (d *Display) render(s lipgloss.Style, text string) string {
	if !d.color || text == "" {
		return text
	}
	return s.Render(text)
}

func (d *Display) printf(format string, args ...any) {
	fmt.Fprintf(d.w, format, args...)
}

// Clear erases the screen.
func (d *Display) Clear() {
	io.WriteString(d.w, terminal.Clear)
}

// Stats prints the running totals banner.
func (d *Display) Stats(correct, incorrect int, avg time.Duration) {
	line := fmt.Sprintf("Correct: %d\tIncorrect: %d\tAvg reaction time: %.2f",
		correct, incorrect, avg.Seconds())
	d.printf("%s\n\n", d.render(theme.Stats, line))
}

// Ordinal prints the question number prefix.
func (d *Display) Ordinal(n int) {
	d.printf("%s", d.render(theme.Title, fmt.Sprintf("%d. ", n)))
}

// Question prints the drill prompt.
func (d *Display) Question(text string) {
	d.printf("%s\n", d.render(theme.Body, text))
}

// Echo shows a key as it is typed.
func (d *Display) Echo(k keys.Key) {
	d.printf("%s", d.render(theme.Key, k.Display()))
	if k == keys.CtrlW {
		d.printf("\n")
	}
}

// Mismatch reports a wrong key and the full expected input.
func (d *Display) Mismatch(got keys.Key, expected string) {
	d.printf("\n%s\n", d.render(theme.Incorrect, fmt.Sprintf("%q is incorrect.", string(got))))
	d.printf("\n%s\n", d.render(theme.Hint, fmt.Sprintf("Expected input: %q.", expected)))
}

// PressAnyKey prints the acknowledgement prompt.
func (d *Display) PressAnyKey() {
	d.printf("\n%s\n", d.render(theme.Hint, "Press any key to continue..."))
}

// Praise prints an encouragement after a correct answer.
func (d *Display) Praise(phrase string) {
	d.printf("\n%s\n\n", d.render(theme.Correct, phrase))
}

// Summary prints the end-of-session report.
func (d *Display) Summary(s *session.Summary) {
	if s.Complete() {
		d.printf("%s\n", d.render(theme.Title, "All drills mastered!"))
	} else {
		d.printf("%s\n", d.render(theme.Title, fmt.Sprintf("Stopped with %d drills left.", s.Remaining)))
	}
	d.printf("Attempts: %d\tMastered: %d\tMistakes: %d\n", s.Attempts, s.Mastered, s.Failed)
	d.printf("Avg reaction time: %.2f\tTotal time: %s\n", s.Mean.Seconds(), s.Duration.Round(time.Second))
	if len(s.Hardest) > 0 {
		d.printf("\n%s\n", d.render(theme.Hint, "Needed the most attempts:"))
		for _, h := range s.Hardest {
			d.printf("  %dx  %s\n", h.Failures, strings.TrimSpace(h.Prompt))
		}
	}
}

// KeyReport prints one decoded key with its raw bytes.
func (d *Display) KeyReport(k keys.Key) {
	name := fmt.Sprintf("%-12s", k.Display())
	d.printf("%s %s\n", d.render(theme.Key, name), d.render(theme.Hint, fmt.Sprintf("%q", string(k))))
}
