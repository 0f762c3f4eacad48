// Package style provides shared UI styling primitives including colors and
// icons for consistent visual presentation across the CLI.
package style

import "github.com/charmbracelet/lipgloss"

// Colors.
var (
	Teal   = lipgloss.Color("#14B8A6")
	Slate  = lipgloss.Color("#667085")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Dot     = "●"
	Circle  = "○"
)

// Notice renders a user-facing watch notice.
var Notice = lipgloss.NewStyle().Foreground(Yellow).Bold(true)

// Pass renders a successful case or run summary.
var Pass = lipgloss.NewStyle().Foreground(Green)

// Fail renders a failed case or diagnostic.
var Fail = lipgloss.NewStyle().Foreground(Red)

// Muted renders secondary information like paths and counts.
var Muted = lipgloss.NewStyle().Foreground(Slate)
