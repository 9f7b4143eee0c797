package report

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/freedomquest/internal/content"
	"github.com/abhisek/freedomquest/internal/screen"
	"github.com/abhisek/freedomquest/internal/session"
	"github.com/abhisek/freedomquest/internal/ui/keys"
	"github.com/abhisek/freedomquest/internal/ui/layout"
	"github.com/abhisek/freedomquest/internal/ui/theme"
)

// ReportScreen summarizes a completed quest. Long reports scroll.
type ReportScreen struct {
	machine *session.Machine
	vp      viewport.Model
	width   int
}

var _ screen.Screen = (*ReportScreen)(nil)
var _ screen.KeyHintProvider = (*ReportScreen)(nil)

// New creates the report screen for the machine's current report.
func New(m *session.Machine) *ReportScreen {
	return &ReportScreen{
		machine: m,
		vp:      viewport.New(),
	}
}

func (s *ReportScreen) Init() tea.Cmd {
	return nil
}

func (s *ReportScreen) Title() string {
	return "Quest Report"
}

// KeyHints offers "Meet your new leader" only when this completion
// unlocked someone. Replaying a quest whose unlock was already earned
// deliberately shows no unlock banner and continues to the menu.
func (s *ReportScreen) KeyHints() []layout.KeyHint {
	cont := key.NewBinding(key.WithKeys("enter"), key.WithHelp("Enter", "Continue"))
	if r, ok := s.machine.Report(); ok && r.ContinueTarget() == session.ScreenCharacterSelect {
		cont = key.NewBinding(key.WithKeys("enter"), key.WithHelp("Enter", "Meet your new leader"))
	}
	return keys.Hints(cont, keys.Up, keys.Down, keys.Back)
}

func (s *ReportScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok && key.Matches(kmsg, keys.Select) {
		s.machine.Continue()
		return s, nil
	}

	var cmd tea.Cmd
	s.vp, cmd = s.vp.Update(msg)
	return s, cmd
}

func (s *ReportScreen) View(width, height int) string {
	r, ok := s.machine.Report()
	if !ok {
		return ""
	}

	cw := layout.ContentWidth(width)
	if cw != s.width {
		s.width = cw
		s.vp.SetContent(s.render(r, cw))
	}
	s.vp.SetWidth(cw)
	s.vp.SetHeight(height)

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, s.vp.View())
}

func (s *ReportScreen) render(r session.ReportState, cw int) string {
	tables := s.machine.Tables()
	rec := s.machine.Record()
	details, _ := tables.ReportByCharacterID(r.CharacterID)

	center := lipgloss.NewStyle().Width(cw).Align(lipgloss.Center)

	var badges []string
	if r.Completion.Completed {
		badges = append(badges, theme.Badge.Render("✓ Completed"))
	}
	if r.Completion.Perfect {
		badges = append(badges, theme.XPChip.Render("★ Perfect"))
	}

	parts := []string{
		center.Render(theme.Title.Render("Quest Complete!")),
		center.Render(theme.Subtitle.Render(tables.Name(r.CharacterID))),
		"",
		center.Render(strings.Join(badges, " ")),
		"",
		center.Render(renderTotals(rec.XP, rec.CompletedCount(), rec.UnlockedCount())),
	}

	if len(r.NewlyUnlocked) > 0 {
		parts = append(parts, "", renderUnlocks(tables, r.NewlyUnlocked, cw))
	}
	if len(details.Events) > 0 {
		parts = append(parts, "", renderList("Historical Events Covered", details.Events, cw))
	}
	if len(details.Learnings) > 0 {
		parts = append(parts, "", renderList("What You've Learned", details.Learnings, cw))
	}
	if details.Quote != "" {
		parts = append(parts, "", center.Render(theme.Quote.Render(fmt.Sprintf("%q", details.Quote))))
	}
	return strings.Join(parts, "\n")
}

func renderTotals(xp, completed, unlocked int) string {
	stat := func(value int, label string) string {
		return lipgloss.JoinVertical(lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(fmt.Sprint(value)),
			lipgloss.NewStyle().Foreground(theme.TextDim).Render(label),
		)
	}
	gap := "    "
	return lipgloss.JoinHorizontal(lipgloss.Top,
		stat(xp, "Total XP Earned"), gap,
		stat(completed, "Quests Completed"), gap,
		stat(unlocked, "Leaders Unlocked"),
	)
}

func renderUnlocks(tables *content.Tables, ids []string, cw int) string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		names = append(names, tables.Name(id))
	}
	body := lipgloss.JoinVertical(lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render("🎉 New Leader Unlocked!"),
		theme.Body.Render("You've unlocked "+strings.Join(names, ", ")+"!"),
	)
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Accent).
		Render(body)
}

func renderList(title string, items []string, cw int) string {
	lines := []string{lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(title)}
	for _, item := range items {
		lines = append(lines, theme.Body.Render("• "+item))
	}
	return theme.Card.Width(cw).Render(strings.Join(lines, "\n"))
}
