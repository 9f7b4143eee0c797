package menu

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/freedomquest/internal/screen"
	"github.com/abhisek/freedomquest/internal/session"
	"github.com/abhisek/freedomquest/internal/ui/components"
	"github.com/abhisek/freedomquest/internal/ui/keys"
	"github.com/abhisek/freedomquest/internal/ui/layout"
	"github.com/abhisek/freedomquest/internal/ui/theme"
)

const banner = `╔═╗╦═╗╔═╗╔═╗╔╦╗╔═╗╔╦╗  ╔═╗ ╦ ╦╔═╗╔═╗╔╦╗
╠╣ ╠╦╝║╣ ║╣  ║║║ ║║║║  ║═╬╗║ ║║╣ ╚═╗ ║
╚  ╩╚═╚═╝╚═╝═╩╝╚═╝╩ ╩  ╚═╝╚╚═╝╚═╝╚═╝ ╩ `

const bannerCompact = "F R E E D O M   Q U E S T"

const tagline = "Journey through India's freedom struggle with interactive stories\nand quizzes featuring legendary heroes."

const motto = `"Freedom is not worth having if it does not include the freedom to make mistakes." - Gandhi`

// MenuScreen is the title screen.
type MenuScreen struct {
	machine *session.Machine
	menu    components.Menu
}

var _ screen.Screen = (*MenuScreen)(nil)
var _ screen.KeyHintProvider = (*MenuScreen)(nil)

// New creates the title screen.
func New(m *session.Machine) *MenuScreen {
	s := &MenuScreen{machine: m}
	s.menu = components.NewMenu([]components.MenuItem{
		{Label: "Start Quest", Action: s.start},
		{Label: "How to Play", Action: func() tea.Cmd { return emit(screen.OpenHelpMsg{}) }},
		{Label: "Settings", Action: func() tea.Cmd { return emit(screen.OpenSettingsMsg{}) }},
		{Label: "History", Action: func() tea.Cmd { return emit(screen.OpenHistoryMsg{}) }},
		{Label: "Exit", Action: func() tea.Cmd { return tea.Quit }},
	})
	return s
}

func emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

func (s *MenuScreen) start() tea.Cmd {
	s.machine.Start()
	return nil
}

func (s *MenuScreen) Init() tea.Cmd {
	return nil
}

func (s *MenuScreen) Title() string {
	return "Main Menu"
}

func (s *MenuScreen) KeyHints() []layout.KeyHint {
	return keys.Hints(keys.Up, keys.Down, keys.Select)
}

func (s *MenuScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *MenuScreen) View(width, height int) string {
	cw := layout.ContentWidth(width)

	title := banner
	if layout.IsCompactHeight(height) || lipgloss.Width(banner) > cw {
		title = bannerCompact
	}

	rec := s.machine.Record()
	stats := fmt.Sprintf("★ %d XP   ✓ %d quests completed   ⚑ %d leaders unlocked",
		rec.XP, rec.CompletedCount(), rec.UnlockedCount())

	center := lipgloss.NewStyle().Width(cw).Align(lipgloss.Center)
	parts := []string{
		center.Render(theme.Title.Render(title)),
		center.Render(theme.Subtitle.Render(tagline)),
		"",
		center.Render(lipgloss.NewStyle().Foreground(theme.Accent).Render(stats)),
		"",
		lipgloss.PlaceHorizontal(cw, lipgloss.Center, strings.TrimRight(s.menu.View(), "\n")),
		"",
		center.Render(theme.Hint.Width(cw).Render(motto)),
	}
	return layout.Center(strings.Join(parts, "\n"), width, height)
}
