// Package ui provides styled terminal output using lipgloss.
package ui

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	// AccentColor is the main theme color.
	AccentColor = lipgloss.Color("#5FAFD7")
	// SuccessColor marks completed operations.
	SuccessColor = lipgloss.Color("#4ECDC4")
	// WarningColor marks changes that did not fully succeed.
	WarningColor = lipgloss.Color("#FFE66D")
	// ErrorColor marks failures.
	ErrorColor = lipgloss.Color("#FF6B6B")
	// SubtleColor marks secondary text.
	SubtleColor = lipgloss.Color("#808080")

	// TitleStyle is used for report section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(AccentColor)

	// HeaderStyle is used for table headers.
	HeaderStyle = lipgloss.NewStyle().
			Bold(true)

	SuccessStyle = lipgloss.NewStyle().Foreground(SuccessColor)
	WarningStyle = lipgloss.NewStyle().Foreground(WarningColor)
	ErrorStyle   = lipgloss.NewStyle().Foreground(ErrorColor)
	SubtleStyle  = lipgloss.NewStyle().Foreground(SubtleColor)
)

// Icons.
const (
	SuccessIcon = "✓"
	ErrorIcon   = "✗"
	WarningIcon = "!"
)

// FormatTitle formats a section title.
func FormatTitle(title string) string {
	return TitleStyle.Render(title)
}

// FormatSuccess formats a success message with icon.
func FormatSuccess(message string) string {
	return SuccessStyle.Render(SuccessIcon + " " + message)
}

// FormatWarning formats a warning message with icon.
func FormatWarning(message string) string {
	return WarningStyle.Render(WarningIcon + " " + message)
}

// FormatError formats an error message with icon.
func FormatError(message string) string {
	return ErrorStyle.Render(ErrorIcon + " " + message)
}

// FormatSubtle dims text such as empty-state hints.
func FormatSubtle(text string) string {
	return SubtleStyle.Render(text)
}

// FormatHeader formats a table header cell.
func FormatHeader(text string) string {
	return HeaderStyle.Render(text)
}
