package components

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/freedomquest/internal/ui/keys"
	"github.com/abhisek/freedomquest/internal/ui/theme"
)

// MultiChoice renders numbered answer choices and tracks a cursor. It
// never decides correctness itself: the caller reveals the result with
// Reveal once the answer has been judged.
type MultiChoice struct {
	Question     string
	Options      []string
	Cursor       int
	ChosenIndex  int // -1 until revealed
	CorrectIndex int
	Revealed     bool
}

// NewMultiChoice creates a new multiple-choice component.
func NewMultiChoice(question string, options []string) MultiChoice {
	return MultiChoice{
		Question:     question,
		Options:      options,
		ChosenIndex:  -1,
		CorrectIndex: -1,
	}
}

// Update moves the cursor. It reports the cursor index when Enter is
// pressed, or -1.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, int) {
	if m.Revealed {
		return m, -1
	}
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, -1
	}

	switch {
	case key.Matches(kmsg, keys.Up):
		if m.Cursor > 0 {
			m.Cursor--
		}
	case key.Matches(kmsg, keys.Down):
		if m.Cursor < len(m.Options)-1 {
			m.Cursor++
		}
	case key.Matches(kmsg, keys.Select):
		return m, m.Cursor
	}
	return m, -1
}

// Reveal marks chosen as the player's answer and correct as the right one.
func (m *MultiChoice) Reveal(chosen, correct int) {
	m.Revealed = true
	m.ChosenIndex = chosen
	m.CorrectIndex = correct
	m.Cursor = chosen
}

// View renders the question and its choices.
func (m MultiChoice) View() string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(m.Question))
	b.WriteString("\n\n")

	for i, opt := range m.Options {
		prefix := "  "
		if i == m.Cursor && !m.Revealed {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%d)  %s", prefix, i+1, opt)

		var style lipgloss.Style
		switch {
		case m.Revealed && i == m.CorrectIndex:
			style = theme.Correct
			line += "  ✓"
		case m.Revealed && i == m.ChosenIndex:
			style = theme.Incorrect
			line += "  ✗"
		case m.Revealed:
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		case i == m.Cursor:
			style = theme.Selected
		default:
			style = theme.Unselected
		}
		b.WriteString(style.Render(line) + "\n")
	}
	return b.String()
}
