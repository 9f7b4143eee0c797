package story

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/freedomquest/internal/screen"
	"github.com/abhisek/freedomquest/internal/session"
	"github.com/abhisek/freedomquest/internal/ui/keys"
	"github.com/abhisek/freedomquest/internal/ui/layout"
	"github.com/abhisek/freedomquest/internal/ui/theme"
)

// StoryScreen plays a leader's cutscene slides and the decision that
// follows them.
type StoryScreen struct {
	machine *session.Machine
	cursor  session.DecisionOption
}

var _ screen.Screen = (*StoryScreen)(nil)
var _ screen.KeyHintProvider = (*StoryScreen)(nil)

// New creates the story screen for the machine's current story.
func New(m *session.Machine) *StoryScreen {
	return &StoryScreen{machine: m, cursor: session.OptionA}
}

func (s *StoryScreen) Init() tea.Cmd {
	return nil
}

func (s *StoryScreen) Title() string {
	st, ok := s.machine.Story()
	if !ok {
		return "Story"
	}
	return s.machine.Tables().Name(st.CharacterID)
}

func (s *StoryScreen) KeyHints() []layout.KeyHint {
	st, _ := s.machine.Story()
	switch {
	case !st.HasContent:
		return keys.Hints(keys.Back)
	case st.Chosen != session.OptionNone:
		return []layout.KeyHint{{Key: "…", Description: "Heading to the quiz"}}
	case st.ShowingDecision:
		return keys.Hints(keys.OptionA, keys.OptionB, keys.Up, keys.Down, keys.Select, keys.Back)
	}
	return keys.Hints(keys.Advance, keys.Back)
}

func (s *StoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}
	st, ok := s.machine.Story()
	if !ok {
		return s, nil
	}

	if !st.ShowingDecision {
		if key.Matches(kmsg, keys.Advance) {
			s.machine.AdvanceSlide()
		}
		return s, nil
	}

	switch {
	case key.Matches(kmsg, keys.OptionA):
		return s, s.choose(session.OptionA)
	case key.Matches(kmsg, keys.OptionB):
		return s, s.choose(session.OptionB)
	case key.Matches(kmsg, keys.Up):
		s.cursor = session.OptionA
	case key.Matches(kmsg, keys.Down):
		s.cursor = session.OptionB
	case key.Matches(kmsg, keys.Select):
		return s, s.choose(s.cursor)
	}
	return s, nil
}

func (s *StoryScreen) choose(opt session.DecisionOption) tea.Cmd {
	c, ok := s.machine.ChooseDecision(opt)
	if !ok {
		return nil
	}
	s.cursor = opt
	return screen.Schedule(c)
}

func (s *StoryScreen) View(width, height int) string {
	st, ok := s.machine.Story()
	if !ok || !st.HasContent {
		return layout.Center(theme.Hint.Render("No story available yet. Press Esc to go back."), width, height)
	}

	cw := layout.ContentWidth(width)
	var body string
	if st.ShowingDecision {
		body = s.renderDecision(st, cw)
	} else {
		body = renderSlide(st, cw)
	}
	return layout.Center(body, width, height)
}

func renderSlide(st session.StoryState, cw int) string {
	slide, _ := st.CurrentSlide()

	var parts []string
	if slide.Image != "" {
		frame := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Accent).
			Foreground(theme.TextDim).
			Padding(1, 4).
			Render("[ " + slide.Image + " ]")
		parts = append(parts, lipgloss.PlaceHorizontal(cw, lipgloss.Center, frame), "")
	}

	parts = append(parts,
		theme.Card.Width(cw).Render(theme.Body.Render(slide.Text)),
		"",
		theme.Subtitle.Width(cw).Render(fmt.Sprintf("Slide %d of %d", st.SlideIndex+1, len(st.Story.Slides))),
	)
	return strings.Join(parts, "\n")
}

func (s *StoryScreen) renderDecision(st session.StoryState, cw int) string {
	d := st.Story.Decision

	parts := []string{
		theme.Title.Width(cw).Render("Decision Time"),
		"",
		theme.Card.Width(cw).Render(theme.Body.Render(d.Scenario)),
		"",
		s.renderOption("A", session.OptionA, d.A.Text, d.A.Correct, st),
		s.renderOption("B", session.OptionB, d.B.Text, d.B.Correct, st),
	}

	if chosen, ok := st.ChosenOption(); ok {
		verdict := theme.Correct.Render("✓ A wise choice!")
		if !chosen.Correct {
			verdict = theme.Incorrect.Render("✗ History took another path")
		}
		parts = append(parts,
			"",
			verdict,
			theme.Body.Width(cw).Render(st.Feedback),
			"",
			theme.Hint.Render("Heading to the quiz…"),
		)
	}
	return strings.Join(parts, "\n")
}

func (s *StoryScreen) renderOption(label string, opt session.DecisionOption, text string, correct bool, st session.StoryState) string {
	line := fmt.Sprintf("%s. %s", label, text)

	if st.Chosen == session.OptionNone {
		if opt == s.cursor {
			return theme.Selected.Render("▸ " + line)
		}
		return theme.Unselected.Render("  " + line)
	}

	switch {
	case opt == st.Chosen && correct:
		return theme.Correct.Render("▸ " + line + "  ✓")
	case opt == st.Chosen:
		return theme.Incorrect.Render("▸ " + line + "  ✗")
	}
	return theme.Locked.Render("  " + line)
}
