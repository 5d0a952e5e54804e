package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lifewheel/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// InputCapturer is an optional interface for screens that are editing
// text. While CapturesInput is true the app forwards Esc to the screen
// instead of popping it.
type InputCapturer interface {
	CapturesInput() bool
}

// MessageOwner is an optional interface for screens whose asynchronous
// results must reach them even when another screen is on top. The
// router hands a message to the topmost screen below the active one
// that owns it.
type MessageOwner interface {
	Owns(msg tea.Msg) bool
}
