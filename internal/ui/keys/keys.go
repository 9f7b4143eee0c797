// Package keys holds the key bindings shared by the screens.
package keys

import (
	"charm.land/bubbles/v2/key"

	"github.com/abhisek/freedomquest/internal/ui/layout"
)

var (
	Up = key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑", "Up"),
	)
	Down = key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓", "Down"),
	)
	Select = key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("Enter", "Select"),
	)
	Advance = key.NewBinding(
		key.WithKeys("enter", "space", "right", "l"),
		key.WithHelp("Enter", "Next"),
	)
	Back = key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "Back"),
	)
	Quit = key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("Ctrl+C", "Quit"),
	)
	Help = key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "Help"),
	)
	Settings = key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("Tab", "Settings"),
	)
	History = key.NewBinding(
		key.WithKeys("h"),
		key.WithHelp("H", "History"),
	)
	Toggle = key.NewBinding(
		key.WithKeys("enter", "space"),
		key.WithHelp("Space", "Toggle"),
	)

	// Answer and Next mirror the quiz shortcuts handled by the session.
	Answer = key.NewBinding(
		key.WithKeys("1", "2", "3", "4"),
		key.WithHelp("1-4", "Answer"),
	)
	Next = key.NewBinding(
		key.WithKeys("n", "N"),
		key.WithHelp("N", "Next question"),
	)

	OptionA = key.NewBinding(
		key.WithKeys("a", "A"),
		key.WithHelp("A", "Option A"),
	)
	OptionB = key.NewBinding(
		key.WithKeys("b", "B"),
		key.WithHelp("B", "Option B"),
	)
)

// Hints converts bindings into footer hints.
func Hints(bindings ...key.Binding) []layout.KeyHint {
	hints := make([]layout.KeyHint, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, layout.KeyHint{Key: h.Key, Description: h.Desc})
	}
	return hints
}
