package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Adaptive colors that work in both light and dark terminals.
var (
	ColorSuccess = lipgloss.AdaptiveColor{Dark: "#22c55e", Light: "#16a34a"} // green
	ColorError   = lipgloss.AdaptiveColor{Dark: "#ef4444", Light: "#dc2626"} // red
	ColorWarning = lipgloss.AdaptiveColor{Dark: "#f59e0b", Light: "#d97706"} // amber
	ColorMuted   = lipgloss.AdaptiveColor{Dark: "#6b7280", Light: "#9ca3af"} // gray
	ColorAccent  = lipgloss.AdaptiveColor{Dark: "#a78bfa", Light: "#7c3aed"} // palette ids
)

var (
	StyleSuccess = lipgloss.NewStyle().Foreground(ColorSuccess)
	StyleError   = lipgloss.NewStyle().Foreground(ColorError)
	StyleWarning = lipgloss.NewStyle().Foreground(ColorWarning)
	StyleMuted   = lipgloss.NewStyle().Foreground(ColorMuted)
	StyleID      = lipgloss.NewStyle().Foreground(ColorAccent)
	StyleBold    = lipgloss.NewStyle().Bold(true)
)

const (
	IconSuccess = "✓"
	IconError   = "✗"
	IconWarning = "!"
	IconInfo    = "→"
)

// Status lines go to stdout; problems go to stderr so piped output
// (list --json, export -) stays parseable.
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

func status(w io.Writer, icon string, format string, args []any) {
	fmt.Fprintf(w, "%s %s\n", icon, fmt.Sprintf(format, args...))
}

// PrintSuccess prints a message after a green checkmark.
func PrintSuccess(format string, args ...any) {
	status(stdout, StyleSuccess.Render(IconSuccess), format, args)
}

// PrintError prints a message after a red cross, to stderr.
func PrintError(format string, args ...any) {
	status(stderr, StyleError.Render(IconError), format, args)
}

// PrintWarning prints a message after an amber bang, to stderr.
func PrintWarning(format string, args ...any) {
	status(stderr, StyleWarning.Render(IconWarning), format, args)
}

// PrintInfo prints a message after a muted arrow.
func PrintInfo(format string, args ...any) {
	status(stdout, StyleMuted.Render(IconInfo), format, args)
}

func RenderID(id string) string {
	return StyleID.Render(id)
}

func RenderMuted(text string) string {
	return StyleMuted.Render(text)
}

func RenderBold(text string) string {
	return StyleBold.Render(text)
}
