package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/depgraphs/pkg/errors"
	"github.com/matzehuels/depgraphs/pkg/pipeline"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleSuccess for success messages.
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconWarning = "⚠️"
	iconArrow   = "→"
)

// =============================================================================
// Status Output
// =============================================================================

// printSaved prints the line for a written diagram.
func printSaved(w io.Writer, path string) {
	fmt.Fprintln(w, StyleSuccess.Render("Graph saved:")+" "+StyleValue.Render(path))
}

// printWarning prints a warning line.
func printWarning(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, iconWarning+" "+StyleWarning.Render(msg))
}

// printDone prints the completion line.
func printDone(w io.Writer) {
	fmt.Fprintln(w, StyleTitle.Render("All dependency graphs generated successfully!"))
}

// printDetail prints a detail line (indented).
func printDetail(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, "  "+StyleDim.Render(msg))
}

// printFile prints a file output line.
func printFile(w io.Writer, path string) {
	fmt.Fprintln(w, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

// =============================================================================
// Console Reporter
// =============================================================================

// consoleReporter prints pipeline progress as console lines.
type consoleReporter struct {
	w io.Writer

	// published lists uploaded object keys, printed after the run.
	published []string
}

func newConsoleReporter(w io.Writer) *consoleReporter {
	return &consoleReporter{w: w}
}

func (r *consoleReporter) Saved(_, path string) {
	printSaved(r.w, path)
}

func (r *consoleReporter) Failed(f pipeline.Failure) {
	switch f.Stage {
	case pipeline.StagePublish:
		printWarning(r.w, "Error publishing %s: %s", f.Package, errors.UserMessage(f.Err))
	default:
		printWarning(r.w, "Error processing %s: %s", f.Package, errors.UserMessage(f.Err))
	}
}

func (r *consoleReporter) Done(*pipeline.Result) {
	printDone(r.w)
	if len(r.published) == 0 {
		return
	}
	printDetail(r.w, "published %d diagrams", len(r.published))
	for _, key := range r.published {
		printFile(r.w, key)
	}
}

var _ pipeline.Reporter = (*consoleReporter)(nil)
