package session

import (
	"time"

	"github.com/abhisek/freedomquest/internal/content"
	"github.com/abhisek/freedomquest/internal/progress"
)

// XPPerCorrect is awarded for every correct quiz answer.
const XPPerCorrect = 50

// DefaultFeedbackDelay is how long decision feedback and wrong-answer
// feedback stay visible before the delayed transition fires.
const DefaultFeedbackDelay = 2000 * time.Millisecond

// Screen is the top-level state of the game.
type Screen int

const (
	ScreenMenu Screen = iota
	ScreenCharacterSelect
	ScreenStory
	ScreenQuiz
	ScreenReport
)

func (s Screen) String() string {
	switch s {
	case ScreenMenu:
		return "menu"
	case ScreenCharacterSelect:
		return "character-select"
	case ScreenStory:
		return "story"
	case ScreenQuiz:
		return "quiz"
	case ScreenReport:
		return "report"
	}
	return "unknown"
}

// DecisionOption identifies one side of a story decision.
type DecisionOption int

const (
	OptionNone DecisionOption = iota
	OptionA
	OptionB
)

func (o DecisionOption) String() string {
	switch o {
	case OptionA:
		return "A"
	case OptionB:
		return "B"
	}
	return ""
}

// StoryState is the sub-state of ScreenStory.
type StoryState struct {
	CharacterID string

	// Story is only meaningful when HasContent is true. A character with
	// no story, or a story with no slides, renders a placeholder.
	Story      content.Story
	HasContent bool

	SlideIndex int

	// ShowingDecision is true once the player advanced past the last slide.
	ShowingDecision bool

	// Chosen is the decision option picked on this visit, or OptionNone.
	Chosen DecisionOption

	// Feedback is the explanation of the chosen option.
	Feedback string
}

// CurrentSlide returns the slide being shown.
func (s StoryState) CurrentSlide() (content.Slide, bool) {
	if !s.HasContent || s.SlideIndex >= len(s.Story.Slides) {
		return content.Slide{}, false
	}
	return s.Story.Slides[s.SlideIndex], true
}

// IsLastSlide reports whether advancing leads to the decision.
func (s StoryState) IsLastSlide() bool {
	return s.SlideIndex >= len(s.Story.Slides)-1
}

// ChosenOption returns the option picked on this visit.
func (s StoryState) ChosenOption() (content.Option, bool) {
	switch s.Chosen {
	case OptionA:
		return s.Story.Decision.A, true
	case OptionB:
		return s.Story.Decision.B, true
	}
	return content.Option{}, false
}

// QuizState is the sub-state of ScreenQuiz.
type QuizState struct {
	CharacterID string
	Questions   []content.Question

	QuestionIndex int

	// Selected is the chosen answer index, or -1 while unanswered.
	Selected int
	Answered bool

	// LastCorrect is only meaningful when Answered is true.
	LastCorrect bool

	// Restarting is set after a wrong answer until the restart fires.
	Restarting bool

	// CheckpointXP is the experience total when the quiz was entered.
	// A wrong answer rolls back to it.
	CheckpointXP int

	// AttemptID identifies this quiz visit in the attempt log.
	AttemptID string
}

// HasContent reports whether there is anything to answer.
func (q QuizState) HasContent() bool {
	return len(q.Questions) > 0
}

// CurrentQuestion returns the question being shown.
func (q QuizState) CurrentQuestion() (content.Question, bool) {
	if q.QuestionIndex < 0 || q.QuestionIndex >= len(q.Questions) {
		return content.Question{}, false
	}
	return q.Questions[q.QuestionIndex], true
}

// IsLastQuestion reports whether the current question is the final one.
func (q QuizState) IsLastQuestion() bool {
	return q.QuestionIndex >= len(q.Questions)-1
}

// CanAdvance reports whether Next moves forward: the current question
// was answered correctly.
func (q QuizState) CanAdvance() bool {
	return q.Answered && q.LastCorrect
}

// ReportState is the sub-state of ScreenReport.
type ReportState struct {
	CharacterID string
	Completion  progress.Completion

	// NewlyUnlocked lists the characters this completion unlocked.
	NewlyUnlocked []string
}

// ContinueTarget is where Continue leads from the report.
func (r ReportState) ContinueTarget() Screen {
	if len(r.NewlyUnlocked) > 0 {
		return ScreenCharacterSelect
	}
	return ScreenMenu
}
