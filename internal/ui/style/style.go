// Package style holds the colors and markers used for terminal diagnostics.
package style

import "github.com/charmbracelet/lipgloss"

// Colors by severity.
var (
	Slate  = lipgloss.Color("#667085")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
)

// Markers prefixed to log lines.
const (
	Cross   = "✗"
	Warning = "!"
	Tilde   = "~"
)
