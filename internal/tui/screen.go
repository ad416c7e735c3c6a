// Package tui is the interactive practice screen built on Bubble Tea.
package tui

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/interview-practice/internal/ui/layout"
)

// Screen is one full-window view of the application.
type Screen interface {
	// Init returns an initial command when the screen becomes active.
	Init() tea.Cmd

	// Update handles messages and returns the screen to show next.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string

	// KeyHints lists the keys shown in the footer.
	KeyHints() []layout.KeyHint
}
