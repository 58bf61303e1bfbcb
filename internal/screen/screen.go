// Package screen defines what the router stacks.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizbox/internal/ui/layout"
)

// Screen is one page of the terminal UI. The router calls Init when the
// screen is pushed and forwards every message it does not handle itself.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View draws the body between the header and footer. width and height
	// are the space left for it.
	View(width, height int) string

	// Title is shown in the header.
	Title() string
}

// KeyHintProvider lets a screen replace the default footer hints. An empty
// result falls back to the defaults.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}
