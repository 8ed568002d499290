package fancy

import (
	"github.com/charmbracelet/lipgloss"
)

// Common styles that can be used across the application
var (
	RootStyle = lipgloss.NewStyle().
			Foreground(ColorBlue).
			Bold(true)

	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorWhite).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(ColorGray).
			Italic(true)

	BranchStyle = lipgloss.NewStyle().
			Foreground(ColorDarkGray)

	ComponentStyle = lipgloss.NewStyle().
			Foreground(ColorCyan)

	ServerStyle = lipgloss.NewStyle().
			Foreground(ColorOrange)

	CommandStyle = lipgloss.NewStyle().
			Foreground(ColorGreen)

	VariableStyle = lipgloss.NewStyle().
			Foreground(ColorYellow)

	SecretStyle = lipgloss.NewStyle().
			Foreground(ColorMagenta)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorRed)
)

// ServerText styles a server name
func ServerText(text string) string {
	return ServerStyle.Render(text)
}

// CommandText styles a launch command
func CommandText(text string) string {
	return CommandStyle.Render(text)
}

// VariableText styles a variable name
func VariableText(text string) string {
	return VariableStyle.Render(text)
}

// SecretText styles a masked secret placeholder
func SecretText(text string) string {
	return SecretStyle.Render(text)
}

// ValidText styles valid status text (green)
func ValidText(text string) string {
	return CommandStyle.Render(text)
}

// ErrorText styles error text (red)
func ErrorText(text string) string {
	return ErrorStyle.Render(text)
}

// PathText styles file paths (gray)
func PathText(text string) string {
	return InfoStyle.Render(text)
}

// CountText styles count numbers (cyan)
func CountText(text string) string {
	return ComponentStyle.Render(text)
}
