package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mathctx/internal/ui/layout"
)

// Screen defines the interface for all studio screens.
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

// Capturing is implemented by screens that are editing text. While
// CapturesKeys reports true, the app passes Esc and letter keys to the
// screen instead of treating them as navigation.
type Capturing interface {
	CapturesKeys() bool
}
