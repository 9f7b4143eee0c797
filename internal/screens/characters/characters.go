package characters

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/freedomquest/internal/content"
	"github.com/abhisek/freedomquest/internal/progress"
	"github.com/abhisek/freedomquest/internal/screen"
	"github.com/abhisek/freedomquest/internal/session"
	"github.com/abhisek/freedomquest/internal/ui/components"
	"github.com/abhisek/freedomquest/internal/ui/keys"
	"github.com/abhisek/freedomquest/internal/ui/layout"
	"github.com/abhisek/freedomquest/internal/ui/theme"
)

const defaultLockedMessage = "Complete an earlier quest to unlock"

// CharacterScreen lists the leaders. Locked leaders stay visible with
// their unlock condition.
type CharacterScreen struct {
	machine *session.Machine
	chars   []content.Character
	menu    components.Menu
	notice  string
}

var _ screen.Screen = (*CharacterScreen)(nil)
var _ screen.KeyHintProvider = (*CharacterScreen)(nil)

// New creates the character selection screen.
func New(m *session.Machine) *CharacterScreen {
	s := &CharacterScreen{
		machine: m,
		chars:   m.Tables().Characters(),
	}
	s.menu = components.NewMenu(s.items())
	return s
}

func (s *CharacterScreen) items() []components.MenuItem {
	rec := s.machine.Record()
	items := make([]components.MenuItem, 0, len(s.chars))
	for _, c := range s.chars {
		items = append(items, components.MenuItem{
			Label:  c.Name,
			Detail: status(rec, c.ID),
			Action: s.chooser(c),
		})
	}
	return items
}

func (s *CharacterScreen) chooser(c content.Character) func() tea.Cmd {
	return func() tea.Cmd {
		if s.machine.SelectCharacter(context.Background(), c.ID) {
			s.notice = ""
			return nil
		}
		s.notice = lockedMessage(c)
		return nil
	}
}

func status(rec progress.Record, id string) string {
	if !rec.IsUnlocked(id) {
		return "🔒 Locked"
	}
	c, ok := rec.Completion(id)
	switch {
	case ok && c.Perfect:
		return "★ Perfect"
	case ok && c.Completed:
		return "✓ Completed"
	}
	return ""
}

func lockedMessage(c content.Character) string {
	if c.UnlockMessage != "" {
		return c.UnlockMessage
	}
	return defaultLockedMessage
}

func (s *CharacterScreen) Init() tea.Cmd {
	return nil
}

func (s *CharacterScreen) Title() string {
	return "Choose Your Leader"
}

func (s *CharacterScreen) KeyHints() []layout.KeyHint {
	return keys.Hints(keys.Up, keys.Down, keys.Select, keys.Back)
}

func (s *CharacterScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if _, ok := msg.(tea.KeyPressMsg); ok {
		s.notice = ""
	}
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *CharacterScreen) View(width, height int) string {
	cw := layout.ContentWidth(width)

	if len(s.chars) == 0 {
		return layout.Center(theme.Hint.Render("No leaders available"), width, height)
	}

	parts := []string{
		theme.Title.Width(cw).Render("Choose Your Leader"),
		theme.Subtitle.Width(cw).Render("Select a freedom fighter to begin their story"),
		"",
		strings.TrimRight(s.menu.View(), "\n"),
		"",
		s.renderCard(cw),
	}
	if s.notice != "" {
		parts = append(parts, "", lipgloss.NewStyle().Foreground(theme.Error).Render("🔒 "+s.notice))
	}
	return layout.Center(strings.Join(parts, "\n"), width, height)
}

// renderCard shows the highlighted leader.
func (s *CharacterScreen) renderCard(cw int) string {
	c := s.chars[s.menu.Selected]
	rec := s.machine.Record()

	name := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(c.Name)
	title := lipgloss.NewStyle().Foreground(theme.Secondary).Render(c.Title)
	desc := theme.Body.Render(c.Description)

	lines := []string{name, title, "", desc}
	if !rec.IsUnlocked(c.ID) {
		lines = append(lines, "", theme.Locked.Render("🔒 "+lockedMessage(c)))
	} else if st := status(rec, c.ID); st != "" {
		lines = append(lines, "", theme.Badge.Render(st))
	}

	return theme.Card.Width(cw).Render(strings.Join(lines, "\n"))
}
