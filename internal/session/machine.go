package session

import (
	"context"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/freedomquest/internal/content"
	"github.com/abhisek/freedomquest/internal/logging"
	"github.com/abhisek/freedomquest/internal/progress"
	"github.com/abhisek/freedomquest/internal/store"
)

// Cues receives sound cue requests. Calls are fire-and-forget and only
// made while the player has sound enabled.
type Cues interface {
	PlayCorrect()
	PlayIncorrect()
	PlayXPGain()
}

// Options configures a Machine. Zero values pick defaults.
type Options struct {
	// FeedbackDelay overrides DefaultFeedbackDelay. Zero or negative
	// means the default.
	FeedbackDelay time.Duration

	// Cues plays sound cues. Nil means silent.
	Cues Cues

	// Events records quiz attempts. Nil disables the attempt log.
	Events store.EventRepo

	Logger *logging.Logger

	// NewAttemptID overrides the attempt id generator.
	NewAttemptID func() string
}

// Machine drives the screen flow of one game session. It is not safe
// for concurrent use; the UI loop owns it.
//
// Intents that are not valid in the current state are ignored and
// report false. Nothing here fails: persistence problems are logged by
// the progress store and missing content is an empty state.
type Machine struct {
	store  *progress.Store
	tables *content.Tables
	opts   Options
	log    *logging.Logger

	screen Screen
	story  StoryState
	quiz   QuizState
	report ReportState

	// generation changes on every transition that invalidates pending
	// continuations.
	generation uint64
}

// New returns a machine on the menu screen.
func New(st *progress.Store, tables *content.Tables, opts Options) *Machine {
	if opts.FeedbackDelay <= 0 {
		opts.FeedbackDelay = DefaultFeedbackDelay
	}
	if opts.NewAttemptID == nil {
		opts.NewAttemptID = func() string { return uuid.New().String() }
	}
	log := opts.Logger
	if log == nil {
		log = logging.Nop()
	}
	return &Machine{
		store:  st,
		tables: tables,
		opts:   opts,
		log:    log.With("component", "session"),
		screen: ScreenMenu,
	}
}

// Screen returns the current top-level state.
func (m *Machine) Screen() Screen { return m.screen }

// Record returns the current progression record.
func (m *Machine) Record() progress.Record { return m.store.Record() }

// Tables returns the content the machine plays.
func (m *Machine) Tables() *content.Tables { return m.tables }

// FeedbackDelay returns the delay used for scheduled continuations.
func (m *Machine) FeedbackDelay() time.Duration { return m.opts.FeedbackDelay }

// Story returns the story sub-state while on ScreenStory.
func (m *Machine) Story() (StoryState, bool) {
	if m.screen != ScreenStory {
		return StoryState{}, false
	}
	return m.story, true
}

// Quiz returns the quiz sub-state while on ScreenQuiz.
func (m *Machine) Quiz() (QuizState, bool) {
	if m.screen != ScreenQuiz {
		return QuizState{}, false
	}
	q := m.quiz
	q.Questions = slices.Clone(q.Questions)
	return q, true
}

// Report returns the report sub-state while on ScreenReport.
func (m *Machine) Report() (ReportState, bool) {
	if m.screen != ScreenReport {
		return ReportState{}, false
	}
	r := m.report
	r.NewlyUnlocked = slices.Clone(r.NewlyUnlocked)
	return r, true
}

// Start moves from the menu to character selection.
func (m *Machine) Start() bool {
	if m.screen != ScreenMenu {
		return false
	}
	m.enter(ScreenCharacterSelect)
	return true
}

// SelectCharacter starts the story of an unlocked character. Selecting a
// locked character does nothing.
func (m *Machine) SelectCharacter(ctx context.Context, id string) bool {
	if m.screen != ScreenCharacterSelect {
		return false
	}
	if !m.store.Record().IsUnlocked(id) {
		m.log.Debug("ignoring locked character", "character", id)
		return false
	}

	m.store.Apply(ctx, progress.Partial{CurrentCharacter: progress.String(id)})

	story, ok := m.tables.StoryByCharacterID(id)
	m.enter(ScreenStory)
	m.story = StoryState{
		CharacterID: id,
		Story:       story,
		HasContent:  ok && len(story.Slides) > 0,
	}
	return true
}

// AdvanceSlide shows the next slide, or the decision after the last one.
func (m *Machine) AdvanceSlide() bool {
	if m.screen != ScreenStory || !m.story.HasContent || m.story.ShowingDecision {
		return false
	}
	if m.story.IsLastSlide() {
		m.story.ShowingDecision = true
	} else {
		m.story.SlideIndex++
	}
	return true
}

// ChooseDecision records the player's decision and returns the delayed
// move to the quiz. Only the first choice of a story visit counts; the
// option's correctness is shown but never scored.
func (m *Machine) ChooseDecision(opt DecisionOption) (*Continuation, bool) {
	if m.screen != ScreenStory || !m.story.ShowingDecision || m.story.Chosen != OptionNone {
		return nil, false
	}
	if opt != OptionA && opt != OptionB {
		return nil, false
	}

	m.story.Chosen = opt
	chosen, _ := m.story.ChosenOption()
	m.story.Feedback = chosen.Explanation

	return m.schedule(ContinueToQuiz, m.story.CharacterID, 0), true
}

// SelectAnswer answers the current question. A correct answer awards
// XPPerCorrect. A wrong answer rolls XP back to the checkpoint and
// returns the delayed quiz restart. Each question takes one answer per
// attempt.
func (m *Machine) SelectAnswer(ctx context.Context, choice int) (*Continuation, bool) {
	if m.screen != ScreenQuiz || m.quiz.Answered || m.quiz.Restarting {
		return nil, false
	}
	q, ok := m.quiz.CurrentQuestion()
	if !ok || choice < 0 || choice >= len(q.Choices) {
		return nil, false
	}

	m.quiz.Selected = choice
	m.quiz.Answered = true
	m.quiz.LastCorrect = q.IsCorrect(choice)

	sound := m.store.Record().Sound
	if m.quiz.LastCorrect {
		rec := m.store.Record()
		rec = m.store.Apply(ctx, progress.Partial{XP: progress.Int(rec.XP + XPPerCorrect)})
		if sound {
			m.cues().PlayCorrect()
			m.cues().PlayXPGain()
		}
		m.recordAttempt(ctx, store.ActionAnswer, true, rec.XP)
		return nil, true
	}

	rec := m.store.Apply(ctx, progress.Partial{XP: progress.Int(m.quiz.CheckpointXP)})
	if sound {
		m.cues().PlayIncorrect()
	}
	m.recordAttempt(ctx, store.ActionAnswer, false, rec.XP)
	m.quiz.Restarting = true
	return m.schedule(RestartQuiz, m.quiz.CharacterID, m.quiz.QuestionIndex), true
}

// Next moves past a correctly answered question. Past the last question
// it records a perfect completion, applies unlocks and shows the report.
func (m *Machine) Next(ctx context.Context) bool {
	if m.screen != ScreenQuiz || !m.quiz.CanAdvance() {
		return false
	}
	if !m.quiz.IsLastQuestion() {
		m.quiz.QuestionIndex++
		m.clearAnswer()
		return true
	}
	m.complete(ctx)
	return true
}

// Continue leaves the report: to character selection when the
// completion unlocked someone, otherwise to the menu.
func (m *Machine) Continue() bool {
	if m.screen != ScreenReport {
		return false
	}
	target := m.report.ContinueTarget()
	m.enter(target)
	return true
}

// Back returns to the menu from any other screen, discarding all
// in-progress story and quiz state.
func (m *Machine) Back() bool {
	if m.screen == ScreenMenu {
		return false
	}
	m.enter(ScreenMenu)
	return true
}

// ToggleSound stores the player's sound preference.
func (m *Machine) ToggleSound(ctx context.Context, on bool) {
	m.store.Apply(ctx, progress.Partial{Sound: progress.Bool(on)})
}

// Fire runs a continuation returned earlier. It returns false and does
// nothing when the continuation is stale.
func (m *Machine) Fire(ctx context.Context, c Continuation) bool {
	if c.generation != m.generation {
		m.log.Debug("discarding stale continuation", "kind", c.Kind.String())
		return false
	}

	switch c.Kind {
	case ContinueToQuiz:
		if m.screen != ScreenStory || m.story.CharacterID != c.characterID || m.story.Chosen == OptionNone {
			return false
		}
		m.enterQuiz(ctx, c.characterID)
		return true

	case RestartQuiz:
		if m.screen != ScreenQuiz || m.quiz.CharacterID != c.characterID ||
			m.quiz.QuestionIndex != c.questionIndex || !m.quiz.Restarting {
			return false
		}
		m.generation++
		m.quiz.QuestionIndex = 0
		m.clearAnswer()
		m.recordAttempt(ctx, store.ActionRestart, false, m.store.Record().XP)
		return true
	}
	return false
}

func (m *Machine) enterQuiz(ctx context.Context, characterID string) {
	quiz, _ := m.tables.QuizByCharacterID(characterID)
	m.enter(ScreenQuiz)
	m.quiz = QuizState{
		CharacterID:  characterID,
		Questions:    quiz.Questions,
		Selected:     -1,
		CheckpointXP: m.store.Record().XP,
		AttemptID:    m.opts.NewAttemptID(),
	}
	m.recordAttempt(ctx, store.ActionStart, false, m.quiz.CheckpointXP)
}

func (m *Machine) complete(ctx context.Context) {
	id := m.quiz.CharacterID
	rec := m.store.Record()

	done := progress.Completion{Completed: true, Perfect: true}
	p := progress.Partial{Progress: rec.Progress}
	p.Progress[id] = done

	var newly []string
	if c, ok := m.tables.CharacterByID(id); ok && len(c.Unlocks) > 0 {
		p.Unlocked = rec.Unlocked
		for _, target := range c.Unlocks {
			if !rec.IsUnlocked(target) {
				newly = append(newly, target)
			}
			p.Unlocked[target] = true
		}
	}

	rec = m.store.Apply(ctx, p)
	m.recordAttempt(ctx, store.ActionComplete, true, rec.XP)
	m.log.Info("quiz completed", "character", id, "xp", rec.XP, "unlocked", newly)

	m.enter(ScreenReport)
	m.report = ReportState{
		CharacterID:   id,
		Completion:    done,
		NewlyUnlocked: newly,
	}
}

// enter switches screens and drops all sub-state.
func (m *Machine) enter(s Screen) {
	m.generation++
	m.screen = s
	m.story = StoryState{}
	m.quiz = QuizState{}
	m.report = ReportState{}
}

func (m *Machine) clearAnswer() {
	m.quiz.Selected = -1
	m.quiz.Answered = false
	m.quiz.LastCorrect = false
	m.quiz.Restarting = false
}

func (m *Machine) schedule(kind ContinuationKind, characterID string, questionIndex int) *Continuation {
	return &Continuation{
		Kind:          kind,
		Delay:         m.opts.FeedbackDelay,
		generation:    m.generation,
		characterID:   characterID,
		questionIndex: questionIndex,
	}
}

func (m *Machine) cues() Cues {
	if m.opts.Cues == nil {
		return silent{}
	}
	return m.opts.Cues
}

func (m *Machine) recordAttempt(ctx context.Context, action string, correct bool, xp int) {
	if m.opts.Events == nil {
		return
	}
	err := m.opts.Events.AppendAttemptEvent(ctx, store.AttemptEventData{
		AttemptID:     m.quiz.AttemptID,
		CharacterID:   m.quiz.CharacterID,
		Action:        action,
		QuestionIndex: m.quiz.QuestionIndex,
		Correct:       correct,
		XP:            xp,
	})
	if err != nil {
		m.log.Warn("failed to record attempt event", "action", action, "error", err)
	}
}

type silent struct{}

func (silent) PlayCorrect()   {}
func (silent) PlayIncorrect() {}
func (silent) PlayXPGain()    {}
