package settings

import (
	"context"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/freedomquest/internal/router"
	"github.com/abhisek/freedomquest/internal/screen"
	"github.com/abhisek/freedomquest/internal/session"
	"github.com/abhisek/freedomquest/internal/ui/keys"
	"github.com/abhisek/freedomquest/internal/ui/layout"
	"github.com/abhisek/freedomquest/internal/ui/theme"
)

// SettingsScreen is the settings overlay: the sound toggle and the
// player's totals.
type SettingsScreen struct {
	machine *session.Machine
}

var _ screen.Screen = (*SettingsScreen)(nil)
var _ screen.KeyHintProvider = (*SettingsScreen)(nil)

// New creates the settings overlay.
func New(m *session.Machine) *SettingsScreen {
	return &SettingsScreen{machine: m}
}

func (s *SettingsScreen) Init() tea.Cmd {
	return nil
}

func (s *SettingsScreen) Title() string {
	return "Settings"
}

func (s *SettingsScreen) KeyHints() []layout.KeyHint {
	return keys.Hints(
		key.NewBinding(key.WithKeys("space"), key.WithHelp("Space", "Toggle sound")),
		keys.Back,
	)
}

func (s *SettingsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}
	switch {
	case key.Matches(kmsg, keys.Toggle):
		on := !s.machine.Record().Sound
		s.machine.ToggleSound(context.Background(), on)
	case key.Matches(kmsg, keys.Settings):
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return s, nil
}

func (s *SettingsScreen) View(width, height int) string {
	rec := s.machine.Record()
	total := len(s.machine.Tables().Characters())

	toggle := theme.Incorrect.Render("[ OFF ]")
	if rec.Sound {
		toggle = theme.Correct.Render("[ ON ]")
	}

	heading := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	lines := []string{
		theme.Title.Render("Settings"),
		"",
		heading.Render("Sound Effects"),
		"Play sounds for correct and incorrect answers  " + toggle,
		"",
		heading.Render("Game Progress"),
		fmt.Sprintf("Total XP: %d", rec.XP),
		fmt.Sprintf("Characters Unlocked: %d of %d", rec.UnlockedCount(), total),
		fmt.Sprintf("Quests Completed: %d", rec.CompletedCount()),
	}
	return layout.Center(theme.Dialog.Render(theme.Body.Render(strings.Join(lines, "\n"))), width, height)
}
