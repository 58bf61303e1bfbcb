// Package theme holds the terminal colors and shared styles.
package theme

import (
	"charm.land/lipgloss/v2"
)

// Palette
var (
	Primary   = lipgloss.Color("#8B5CF6") // Violet
	Secondary = lipgloss.Color("#0EA5E9") // Sky
	Accent    = lipgloss.Color("#FBBF24") // Yellow
	Success   = lipgloss.Color("#10B981") // Emerald
	Error     = lipgloss.Color("#EF4444") // Red
	Text      = lipgloss.Color("#F1F5F9")
	TextDim   = lipgloss.Color("#64748B")
	BgCard    = lipgloss.Color("#18181B")
	Border    = lipgloss.Color("#3F3F46")
)

var (
	// Title is used for question prompts and the score line.
	Title = lipgloss.NewStyle().Bold(true).Foreground(Primary)
	Body  = lipgloss.NewStyle().Foreground(Text)
	Hint  = lipgloss.NewStyle().Italic(true).Foreground(TextDim)

	Focused   = lipgloss.NewStyle().Bold(true).Foreground(Primary)
	Unfocused = lipgloss.NewStyle().Foreground(Text)

	// Correct and Incorrect mark graded answers.
	Correct   = lipgloss.NewStyle().Bold(true).Foreground(Success)
	Incorrect = lipgloss.NewStyle().Bold(true).Foreground(Error)

	ButtonActive   = lipgloss.NewStyle().Bold(true).Padding(0, 2).Foreground(Text).Background(Primary)
	ButtonInactive = lipgloss.NewStyle().Padding(0, 2).Foreground(TextDim).Background(BgCard)
)
