// Package styles provides shared lipgloss styles for tint's CLI output.
package styles

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Message styles.
var (
	SuccessStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#9ece6a"))
	WarnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#e0af68"))
	MutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#565f89"))
)

// Swatch renders name as a color chip using the entry's own colors.
func Swatch(name, background, foreground string) string {
	return lipgloss.NewStyle().
		Background(lipgloss.Color(background)).
		Foreground(lipgloss.Color(foreground)).
		Padding(0, 1).
		Render(name)
}

// IsTTY reports whether f is attached to a terminal. Swatches and styled
// messages are suppressed for piped output.
func IsTTY(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
