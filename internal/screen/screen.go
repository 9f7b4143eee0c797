package screen

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/freedomquest/internal/session"
	"github.com/abhisek/freedomquest/internal/ui/layout"
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

// ContinuationMsg delivers a delayed session transition once its delay
// has passed. The app root hands it to session.Machine.Fire.
type ContinuationMsg struct {
	C session.Continuation
}

// Schedule waits out c's delay and then emits a ContinuationMsg. A nil
// continuation schedules nothing.
func Schedule(c *session.Continuation) tea.Cmd {
	if c == nil {
		return nil
	}
	cont := *c
	return tea.Tick(cont.Delay, func(time.Time) tea.Msg {
		return ContinuationMsg{C: cont}
	})
}

// OpenHelpMsg asks the app to show the help overlay.
type OpenHelpMsg struct{}

// OpenSettingsMsg asks the app to show the settings overlay.
type OpenSettingsMsg struct{}

// OpenHistoryMsg asks the app to show the attempt history overlay.
type OpenHistoryMsg struct{}
