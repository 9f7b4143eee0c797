package history

import (
	"context"
	"fmt"
	"strings"
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/freedomquest/internal/screen"
	"github.com/abhisek/freedomquest/internal/store"
	"github.com/abhisek/freedomquest/internal/ui/keys"
	"github.com/abhisek/freedomquest/internal/ui/layout"
	"github.com/abhisek/freedomquest/internal/ui/theme"
)

// eventLimit caps how many attempt events are read for the list.
const eventLimit = 200

// Source reads the attempt log.
type Source interface {
	RecentAttemptEvents(ctx context.Context, limit int) ([]store.AttemptEvent, error)
}

// Attempt is one quiz run, from entering the quiz until leaving it.
type Attempt struct {
	ID          string
	CharacterID string
	Started     time.Time
	Events      []store.AttemptEvent // oldest first
}

// Completed reports whether the run reached the report.
func (a Attempt) Completed() bool {
	for _, ev := range a.Events {
		if ev.Action == store.ActionComplete {
			return true
		}
	}
	return false
}

// Restarts counts the rollbacks in the run.
func (a Attempt) Restarts() int {
	n := 0
	for _, ev := range a.Events {
		if ev.Action == store.ActionRestart {
			n++
		}
	}
	return n
}

// CorrectAnswers counts correct answers across all restarts.
func (a Attempt) CorrectAnswers() int {
	n := 0
	for _, ev := range a.Events {
		if ev.Action == store.ActionAnswer && ev.Correct {
			n++
		}
	}
	return n
}

// FinalXP is the XP after the last recorded step.
func (a Attempt) FinalXP() int {
	if len(a.Events) == 0 {
		return 0
	}
	return a.Events[len(a.Events)-1].XP
}

// Group folds newest-first events into attempts, newest first.
func Group(events []store.AttemptEvent) []Attempt {
	var attempts []Attempt
	index := make(map[string]int)
	for i := len(events) - 1; i >= 0; i-- {
		ev := events[i]
		pos, ok := index[ev.AttemptID]
		if !ok {
			pos = len(attempts)
			index[ev.AttemptID] = pos
			attempts = append(attempts, Attempt{
				ID:          ev.AttemptID,
				CharacterID: ev.CharacterID,
				Started:     ev.Timestamp,
			})
		}
		attempts[pos].Events = append(attempts[pos].Events, ev)
	}
	for i, j := 0, len(attempts)-1; i < j; i, j = i+1, j-1 {
		attempts[i], attempts[j] = attempts[j], attempts[i]
	}
	return attempts
}

type historyLoadedMsg struct {
	Attempts []Attempt
	Err      error
}

// HistoryScreen lists past quiz attempts with expandable step details.
type HistoryScreen struct {
	source   Source
	names    func(id string) string
	attempts []Attempt
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a HistoryScreen. A nil source means nothing is saved.
// names maps a character id to its display name.
func New(source Source, names func(id string) string) *HistoryScreen {
	if names == nil {
		names = func(id string) string { return id }
	}
	return &HistoryScreen{
		source:   source,
		names:    names,
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	if s.source == nil {
		s.loaded = true
		return nil
	}
	source := s.source
	return func() tea.Msg {
		events, err := source.RecentAttemptEvents(context.Background(), eventLimit)
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		return historyLoadedMsg{Attempts: Group(events)}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return append(
		[]layout.KeyHint{{Key: "Enter", Description: "Details"}, {Key: "↑↓", Description: "Navigate"}},
		keys.Hints(keys.Back)...,
	)
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.attempts = msg.Attempts
		}
		s.loaded = true
		return s, nil

	case tea.KeyPressMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if s.selected > 0 {
				s.selected--
			}
		case key.Matches(msg, keys.Down):
			if s.selected < len(s.attempts)-1 {
				s.selected++
			}
		case key.Matches(msg, keys.Select):
			if len(s.attempts) > 0 {
				s.expanded[s.selected] = !s.expanded[s.selected]
			}
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	centered := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	if s.errMsg != "" {
		return centered.Foreground(theme.Error).Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return centered.Foreground(theme.TextDim).Render("\n\n  Loading history...")
	}
	if s.source == nil {
		return centered.Foreground(theme.TextDim).Italic(true).
			Render("\n\n  History is not saved in this mode.")
	}
	if len(s.attempts) == 0 {
		return centered.Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No quests attempted yet. Pick a leader to begin!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, a := range s.attempts {
		outcome := "… Unfinished"
		if a.Completed() {
			outcome = "✓ Completed"
		}

		prefix := "  "
		if i == s.selected {
			prefix = "▸ "
		}

		line := fmt.Sprintf("%s%s  %-24s  %-13s  %d correct  %d restarts  %d XP",
			prefix, a.Started.Local().Format("Jan 02 15:04"), truncate(s.names(a.CharacterID), 24),
			outcome, a.CorrectAnswers(), a.Restarts(), a.FinalXP())

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			for _, ev := range a.Events {
				b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
					stepStyle(ev).Render("    "+describe(ev))))
				b.WriteString("\n")
			}
		}
	}

	return b.String()
}

func describe(ev store.AttemptEvent) string {
	switch ev.Action {
	case store.ActionStart:
		return fmt.Sprintf("Entered the quiz at %d XP", ev.XP)
	case store.ActionAnswer:
		if ev.Correct {
			return fmt.Sprintf("Question %d answered correctly, %d XP", ev.QuestionIndex+1, ev.XP)
		}
		return fmt.Sprintf("Question %d missed, XP back to %d", ev.QuestionIndex+1, ev.XP)
	case store.ActionRestart:
		return "Quiz restarted from question 1"
	case store.ActionComplete:
		return fmt.Sprintf("Quest complete with %d XP", ev.XP)
	}
	return ev.Action
}

func stepStyle(ev store.AttemptEvent) lipgloss.Style {
	switch {
	case ev.Action == store.ActionComplete:
		return lipgloss.NewStyle().Foreground(theme.Success)
	case ev.Action == store.ActionAnswer && !ev.Correct:
		return lipgloss.NewStyle().Foreground(theme.Error)
	}
	return lipgloss.NewStyle().Foreground(theme.TextDim)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
