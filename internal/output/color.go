// Package output provides styled terminal rendering helpers for ga-extractor.
package output

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Color constants for consistent styling across the CLI.
var (
	// ColorPrimary is used for headers and emphasis.
	ColorPrimary = lipgloss.Color("#64b5f6")

	// ColorSuccess is used for positive indicators.
	ColorSuccess = lipgloss.Color("#66bb6a")

	// ColorError is used for failures.
	ColorError = lipgloss.Color("#ef5350")

	// ColorMuted is used for secondary text.
	ColorMuted = lipgloss.Color("#888888")
)

// Styles provides reusable lipgloss styles.
var (
	// StyleHeader is used for section headers.
	StyleHeader = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	// StyleSuccess is used for positive values.
	StyleSuccess = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	// StyleError is used for negative values.
	StyleError = lipgloss.NewStyle().
			Foreground(ColorError)

	// StyleMuted is used for de-emphasized text.
	StyleMuted = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// StyleLabel is used for summary labels.
	StyleLabel = lipgloss.NewStyle().
			Width(18)

	// StyleValue is used for summary values.
	StyleValue = lipgloss.NewStyle().
			Bold(true)
)

// SetNoColor disables color output globally by reassigning the package
// styles to unstyled renderers.
func SetNoColor(disabled bool) {
	if !disabled {
		return
	}
	plain := lipgloss.NewStyle()
	StyleHeader = plain
	StyleSuccess = plain
	StyleError = plain
	StyleMuted = plain
	StyleLabel = plain.Width(18)
	StyleValue = plain
}

// StdoutIsTerminal reports whether stdout is attached to a terminal. Color
// is disabled automatically when it is not.
func StdoutIsTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Section renders a section header.
func Section(title string) string {
	return StyleHeader.Render(title)
}
