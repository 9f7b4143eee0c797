package quiz

import (
	"context"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/freedomquest/internal/screen"
	"github.com/abhisek/freedomquest/internal/session"
	"github.com/abhisek/freedomquest/internal/ui/components"
	"github.com/abhisek/freedomquest/internal/ui/keys"
	"github.com/abhisek/freedomquest/internal/ui/layout"
	"github.com/abhisek/freedomquest/internal/ui/theme"
)

// QuizScreen asks a leader's quiz questions.
type QuizScreen struct {
	machine *session.Machine
	cursor  int

	// seenIndex and seenAnswered detect question changes made by the
	// machine, including delayed restarts, so the cursor can reset.
	seenIndex    int
	seenAnswered bool
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)

// New creates the quiz screen for the machine's current quiz.
func New(m *session.Machine) *QuizScreen {
	return &QuizScreen{machine: m}
}

func (s *QuizScreen) Init() tea.Cmd {
	return nil
}

func (s *QuizScreen) Title() string {
	q, ok := s.machine.Quiz()
	if !ok {
		return "Quiz"
	}
	return s.machine.Tables().Name(q.CharacterID) + " · Quiz"
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	q, _ := s.machine.Quiz()
	switch {
	case !q.HasContent():
		return keys.Hints(keys.Back)
	case q.CanAdvance():
		return keys.Hints(keys.Next, keys.Back)
	case q.Answered:
		return []layout.KeyHint{{Key: "…", Description: "Restarting"}}
	}
	return keys.Hints(keys.Answer, keys.Up, keys.Down, keys.Select, keys.Back)
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}
	q, ok := s.machine.Quiz()
	if !ok {
		return s, nil
	}
	s.observe(q)

	ctx := context.Background()

	if key.Matches(kmsg, keys.Answer, keys.Next) {
		c, _ := s.machine.HandleKey(ctx, kmsg.String())
		s.afterKey()
		return s, screen.Schedule(c)
	}

	mc := s.choices(q)
	mc, picked := mc.Update(kmsg)
	s.cursor = mc.Cursor
	if picked < 0 {
		return s, nil
	}
	c, _ := s.machine.SelectAnswer(ctx, picked)
	s.afterKey()
	return s, screen.Schedule(c)
}

// observe resets the cursor when the machine moved to another question
// or restarted the current one.
func (s *QuizScreen) observe(q session.QuizState) {
	if q.QuestionIndex != s.seenIndex || (s.seenAnswered && !q.Answered) {
		s.cursor = 0
	}
	s.seenIndex = q.QuestionIndex
	s.seenAnswered = q.Answered
}

func (s *QuizScreen) afterKey() {
	if q, ok := s.machine.Quiz(); ok {
		if q.Answered {
			s.cursor = q.Selected
		}
		s.observe(q)
	}
}

func (s *QuizScreen) choices(q session.QuizState) components.MultiChoice {
	question, _ := q.CurrentQuestion()
	mc := components.NewMultiChoice(question.Text, question.Choices)
	mc.Cursor = s.cursor
	if q.Answered {
		mc.Reveal(q.Selected, question.Answer)
	}
	return mc
}

func (s *QuizScreen) View(width, height int) string {
	q, ok := s.machine.Quiz()
	if !ok || !q.HasContent() {
		return layout.Center(theme.Hint.Render("No quiz available yet. Press Esc to go back."), width, height)
	}
	s.observe(q)

	cw := layout.ContentWidth(width)
	total := len(q.Questions)

	header := fmt.Sprintf("Question %d of %d", q.QuestionIndex+1, total)
	bar := components.NewProgressBar(header, float64(q.QuestionIndex)/float64(total), false, cw)

	parts := []string{
		bar.View(),
		"",
		theme.Card.Width(cw).Render(s.choices(q).View()),
	}
	if q.Answered {
		parts = append(parts, "", s.renderFeedback(q, cw))
	} else {
		parts = append(parts, "", theme.Hint.Render("Tip: press 1-4 to answer quickly"))
	}
	return layout.Center(strings.Join(parts, "\n"), width, height)
}

func (s *QuizScreen) renderFeedback(q session.QuizState, cw int) string {
	question, _ := q.CurrentQuestion()
	explanation := theme.Body.Width(cw).Render(question.Explanation)

	if q.LastCorrect {
		next := "Press N for the next question"
		if q.IsLastQuestion() {
			next = "Press N to complete the quiz"
		}
		return strings.Join([]string{
			theme.Correct.Render(fmt.Sprintf("✓ Correct!  +%d XP", session.XPPerCorrect)),
			explanation,
			"",
			theme.Hint.Render(next),
		}, "\n")
	}

	return strings.Join([]string{
		theme.Incorrect.Render("✗ Incorrect"),
		explanation,
		"",
		theme.Incorrect.Render(fmt.Sprintf("XP reset to starting level (%d). Quiz will restart…", q.CheckpointXP)),
	}, "\n")
}
