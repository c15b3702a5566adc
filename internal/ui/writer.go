// Package ui provides formatted console output for patch runs.
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// Color definitions for consistent output
var (
	// Brown for startup info
	brownColor = color.New(color.FgYellow, color.Faint)

	// Gray for progress notices
	grayColor = color.New(color.FgWhite, color.Faint)

	// Green for applied hunks
	okColor = color.New(color.FgGreen)

	// Yellow for warnings (skipped or moved hunks)
	warnColor = color.New(color.FgYellow)

	// Red for errors
	errorColor = color.New(color.FgRed)
)

// Writer provides formatted output with consistent prefixes and colors.
type Writer struct {
	quiet   bool
	verbose bool
	stdout  io.Writer
}

// NewWriter creates a Writer for stdout.
func NewWriter() *Writer {
	return &Writer{stdout: os.Stdout}
}

// SetQuiet suppresses everything except errors and the final summary.
func (w *Writer) SetQuiet(quiet bool) {
	w.quiet = quiet
}

// SetVerbose enables detail notices (per-file change statistics).
func (w *Writer) SetVerbose(verbose bool) {
	w.verbose = verbose
}

// SetOutput redirects output, for tests.
func (w *Writer) SetOutput(out io.Writer) {
	w.stdout = out
}

// StartupInfo prints run setup information in brown.
func (w *Writer) StartupInfo(msg string) {
	if w.quiet {
		return
	}
	brownColor.Fprintln(w.stdout, msg)
}

// File prints the file currently being patched.
func (w *Writer) File(path string) {
	if w.quiet {
		return
	}
	grayColor.Fprintf(w.stdout, "patching: %s\n", path)
}

// Info prints a progress notice in gray.
func (w *Writer) Info(msg string) {
	if w.quiet {
		return
	}
	grayColor.Fprintf(w.stdout, "  %s\n", msg)
}

// Ok prints a per-hunk success notice in green.
func (w *Writer) Ok(msg string) {
	if w.quiet {
		return
	}
	okColor.Fprintf(w.stdout, "  ✓ %s\n", msg)
}

// Warn prints a per-hunk warning in yellow.
func (w *Writer) Warn(msg string) {
	if w.quiet {
		return
	}
	warnColor.Fprintf(w.stdout, "  ⚠ %s\n", msg)
}

// Error prints an error notice in red. Not suppressed by quiet mode.
func (w *Writer) Error(msg string) {
	errorColor.Fprintf(w.stdout, "✗ %s\n", msg)
}

// Detail prints extra statistics, only in verbose mode.
func (w *Writer) Detail(msg string) {
	if w.quiet || !w.verbose {
		return
	}
	grayColor.Fprintf(w.stdout, "    %s\n", msg)
}

// Summary prints a summary line. Never suppressed.
func (w *Writer) Summary(msg string) {
	fmt.Fprintln(w.stdout, msg)
}
