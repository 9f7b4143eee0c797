package help

import (
	"fmt"
	"image/color"
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

type step struct {
	title string
	text  string
}

var steps = []step{
	{"Choose Your Leader", "Select a freedom fighter and watch their story unfold through interactive cutscenes."},
	{"Make Decisions", "Choose how your leader responds to historical challenges and see the consequences."},
	{"Answer Quizzes", fmt.Sprintf("Test your knowledge with historical questions. Correct answers give +%d XP. Wrong answers reset your XP and restart the quiz.", session.XPPerCorrect)},
}

var tips = []string{
	"Use keyboard numbers 1-4 to select quiz options quickly",
	"Press 'N' to advance to the next question",
	"Complete Gandhi's arc perfectly to unlock Netaji",
	"Learn from mistakes - the quiz restarts if you get an answer wrong",
}

// HelpScreen is the quick guide overlay, shown automatically on the
// first visit.
type HelpScreen struct{}

var _ screen.Screen = (*HelpScreen)(nil)
var _ screen.KeyHintProvider = (*HelpScreen)(nil)

// New creates the help overlay.
func New() *HelpScreen {
	return &HelpScreen{}
}

func (s *HelpScreen) Init() tea.Cmd {
	return nil
}

func (s *HelpScreen) Title() string {
	return "How to Play"
}

func (s *HelpScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{{Key: "Enter/Esc", Description: "Got it"}}
}

func (s *HelpScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok && key.Matches(kmsg, keys.Select, keys.Help) {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return s, nil
}

func (s *HelpScreen) View(width, height int) string {
	cw := layout.ContentWidth(width) - 8
	colors := []color.Color{theme.Primary, theme.Secondary, theme.Accent}

	var lines []string
	lines = append(lines, theme.Title.Render("How to Play - Quick Guide"), "")
	for i, st := range steps {
		num := lipgloss.NewStyle().
			Foreground(theme.BgDark).
			Background(colors[i%len(colors)]).
			Bold(true).
			Padding(0, 1).
			Render(fmt.Sprint(i + 1))
		text := lipgloss.JoinVertical(lipgloss.Left,
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(st.title),
			lipgloss.NewStyle().Foreground(theme.TextDim).Width(cw-6).Render(st.text),
		)
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, num, "  ", text), "")
	}

	lines = append(lines, lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render("Pro Tips"))
	for _, tip := range tips {
		lines = append(lines, theme.Hint.Width(cw).Render("• "+tip))
	}

	return layout.Center(theme.Dialog.Render(strings.Join(lines, "\n")), width, height)
}
