package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mastermind/internal/ui/layout"
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

// InputCapturer is implemented by screens that sometimes own every key,
// for example while a text field has focus. Global shortcuts are skipped
// while CapturesInput returns true.
type InputCapturer interface {
	CapturesInput() bool
}

// SizeMsg reports the size of the content area the active screen is drawn
// into. The app sends it on resize and whenever a view is opened.
type SizeMsg struct {
	Width  int
	Height int
}
