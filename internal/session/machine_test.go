package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/freedomquest/internal/content"
	"github.com/abhisek/freedomquest/internal/progress"
	"github.com/abhisek/freedomquest/internal/store"
)

// recordingCues counts cue requests.
type recordingCues struct {
	correct, incorrect, xp int
}

func (r *recordingCues) PlayCorrect()   { r.correct++ }
func (r *recordingCues) PlayIncorrect() { r.incorrect++ }
func (r *recordingCues) PlayXPGain()    { r.xp++ }

// mockEventRepo implements store.EventRepo for testing.
type mockEventRepo struct {
	events []store.AttemptEventData
	err    error
}

func (m *mockEventRepo) AppendAttemptEvent(_ context.Context, data store.AttemptEventData) error {
	m.events = append(m.events, data)
	return m.err
}
func (m *mockEventRepo) RecentAttemptEvents(context.Context, int) ([]store.AttemptEvent, error) {
	return nil, nil
}
func (m *mockEventRepo) CountAttemptEvents(context.Context, string, string) (int, error) {
	return 0, nil
}

type fixture struct {
	m       *Machine
	store   *progress.Store
	backend *progress.MemoryBackend
	cues    *recordingCues
	events  *mockEventRepo
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	tables, err := content.Default()
	require.NoError(t, err)
	return newFixtureWithTables(t, tables)
}

func newFixtureWithTables(t *testing.T, tables *content.Tables) *fixture {
	t.Helper()
	backend := progress.NewMemoryBackend()
	st := progress.NewStore(backend, nil)
	st.Load(context.Background())
	f := &fixture{
		store:   st,
		backend: backend,
		cues:    &recordingCues{},
		events:  &mockEventRepo{},
	}
	ids := 0
	f.m = New(st, tables, Options{
		Cues:   f.cues,
		Events: f.events,
		NewAttemptID: func() string {
			ids++
			return "attempt-" + string(rune('0'+ids))
		},
	})
	return f
}

// toQuiz walks from the menu to the first quiz question of id.
func (f *fixture) toQuiz(t *testing.T, id string, opt DecisionOption) {
	t.Helper()
	ctx := context.Background()
	require.True(t, f.m.Start())
	require.True(t, f.m.SelectCharacter(ctx, id))
	require.True(t, f.m.AdvanceSlide())
	c, ok := f.m.ChooseDecision(opt)
	require.True(t, ok)
	require.NotNil(t, c)
	require.True(t, f.m.Fire(ctx, *c))
	require.Equal(t, ScreenQuiz, f.m.Screen())
}

func (f *fixture) answer(t *testing.T, choice int) *Continuation {
	t.Helper()
	c, ok := f.m.SelectAnswer(context.Background(), choice)
	require.True(t, ok)
	return c
}

func TestInitialState(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, ScreenMenu, f.m.Screen())
	assert.Equal(t, DefaultFeedbackDelay, f.m.FeedbackDelay())
	_, ok := f.m.Story()
	assert.False(t, ok)
	_, ok = f.m.Quiz()
	assert.False(t, ok)
	_, ok = f.m.Report()
	assert.False(t, ok)
}

func TestStartOnlyFromMenu(t *testing.T) {
	f := newFixture(t)

	assert.True(t, f.m.Start())
	assert.Equal(t, ScreenCharacterSelect, f.m.Screen())
	assert.False(t, f.m.Start())
}

func TestSelectCharacter(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.m.Start()

	require.True(t, f.m.SelectCharacter(ctx, "gandhi"))

	assert.Equal(t, ScreenStory, f.m.Screen())
	assert.Equal(t, "gandhi", f.store.Record().CurrentCharacter)
	s, ok := f.m.Story()
	require.True(t, ok)
	assert.Equal(t, "gandhi", s.CharacterID)
	assert.True(t, s.HasContent)
	assert.Equal(t, 0, s.SlideIndex)
	assert.False(t, s.ShowingDecision)
	slide, ok := s.CurrentSlide()
	require.True(t, ok)
	assert.Contains(t, slide.Text, "salt tax")
}

func TestSelectLockedCharacterIsNoop(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.m.Start()
	before, _, _ := f.backend.Get(ctx, progress.StateKey)

	assert.False(t, f.m.SelectCharacter(ctx, "netaji"))

	assert.Equal(t, ScreenCharacterSelect, f.m.Screen())
	assert.Equal(t, "", f.store.Record().CurrentCharacter)
	after, _, _ := f.backend.Get(ctx, progress.StateKey)
	assert.Equal(t, before, after, "no store mutation")
}

func TestSelectCharacterOutsideSelectScreen(t *testing.T) {
	f := newFixture(t)

	assert.False(t, f.m.SelectCharacter(context.Background(), "gandhi"))
	assert.Equal(t, ScreenMenu, f.m.Screen())
}

func TestAdvanceSlideReachesDecision(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.m.Start()
	f.m.SelectCharacter(ctx, "gandhi")

	require.True(t, f.m.AdvanceSlide())
	s, _ := f.m.Story()
	assert.True(t, s.ShowingDecision)
	assert.Equal(t, ScreenStory, f.m.Screen(), "decision is a sub-state of the story")

	assert.False(t, f.m.AdvanceSlide(), "no slides past the decision")
}

func TestAdvanceSlideThroughSeveralSlides(t *testing.T) {
	tables, err := content.Parse([]byte(`
characters:
  - id: gandhi
    name: Mahatma Gandhi
    title: t
    description: d
    seed: true
    story:
      slides:
        - text: one
        - text: two
        - text: three
      decision:
        scenario: s
        a: {text: a, correct: false, explanation: ea}
        b: {text: b, correct: true, explanation: eb}
`))
	require.NoError(t, err)
	f := newFixtureWithTables(t, tables)
	ctx := context.Background()
	f.m.Start()
	f.m.SelectCharacter(ctx, "gandhi")

	for want := 1; want <= 2; want++ {
		require.True(t, f.m.AdvanceSlide())
		s, _ := f.m.Story()
		assert.Equal(t, want, s.SlideIndex)
		assert.False(t, s.ShowingDecision)
	}
	require.True(t, f.m.AdvanceSlide())
	s, _ := f.m.Story()
	assert.True(t, s.ShowingDecision)
	assert.Equal(t, 2, s.SlideIndex)
}

func TestChooseDecisionOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.m.Start()
	f.m.SelectCharacter(ctx, "gandhi")

	_, ok := f.m.ChooseDecision(OptionB)
	assert.False(t, ok, "decision is not offered before the last slide")

	f.m.AdvanceSlide()
	c, ok := f.m.ChooseDecision(OptionA)
	require.True(t, ok)
	require.NotNil(t, c)
	assert.Equal(t, ContinueToQuiz, c.Kind)
	assert.Equal(t, DefaultFeedbackDelay, c.Delay)

	s, _ := f.m.Story()
	assert.Equal(t, OptionA, s.Chosen)
	assert.Equal(t, "Accepting would not build the movement or challenge unjust law.", s.Feedback)

	again, ok := f.m.ChooseDecision(OptionB)
	assert.False(t, ok)
	assert.Nil(t, again)
	s, _ = f.m.Story()
	assert.Equal(t, OptionA, s.Chosen, "second choice is ignored")
}

func TestDecisionCorrectnessDoesNotScore(t *testing.T) {
	for _, opt := range []DecisionOption{OptionA, OptionB} {
		t.Run(opt.String(), func(t *testing.T) {
			f := newFixture(t)
			f.toQuiz(t, "gandhi", opt)

			rec := f.store.Record()
			assert.Equal(t, 0, rec.XP)
			assert.False(t, rec.IsUnlocked("netaji"))
		})
	}
}

func TestChooseDecisionRejectsNone(t *testing.T) {
	f := newFixture(t)
	f.m.Start()
	f.m.SelectCharacter(context.Background(), "gandhi")
	f.m.AdvanceSlide()

	_, ok := f.m.ChooseDecision(OptionNone)
	assert.False(t, ok)
}

func TestContinueToQuizSnapshotsCheckpoint(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.store.Apply(ctx, progress.Partial{XP: progress.Int(200)})

	f.toQuiz(t, "gandhi", OptionB)

	q, ok := f.m.Quiz()
	require.True(t, ok)
	assert.Equal(t, "gandhi", q.CharacterID)
	assert.Equal(t, 0, q.QuestionIndex)
	assert.Equal(t, 200, q.CheckpointXP)
	assert.Equal(t, -1, q.Selected)
	assert.Equal(t, "attempt-1", q.AttemptID)
	assert.Len(t, q.Questions, 3)
}

func TestXPMonotonicThenReset(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.toQuiz(t, "gandhi", OptionB)

	assert.Nil(t, f.answer(t, 1))
	assert.Equal(t, 50, f.store.Record().XP)
	require.True(t, f.m.Next(ctx))

	c := f.answer(t, 0)
	require.NotNil(t, c)
	assert.Equal(t, RestartQuiz, c.Kind)
	assert.Equal(t, 0, f.store.Record().XP, "rolled back to the checkpoint immediately")

	q, _ := f.m.Quiz()
	assert.Equal(t, 1, q.QuestionIndex, "restart waits for the delay")
	assert.True(t, q.Restarting)

	require.True(t, f.m.Fire(ctx, *c))
	q, _ = f.m.Quiz()
	assert.Equal(t, 0, q.QuestionIndex)
	assert.False(t, q.Answered)
	assert.Equal(t, -1, q.Selected)
	assert.False(t, q.Restarting)
	assert.Equal(t, 0, q.CheckpointXP, "restart reuses the checkpoint")
	assert.Equal(t, 0, f.store.Record().XP)
}

func TestRollbackKeepsPriorXP(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.store.Apply(ctx, progress.Partial{XP: progress.Int(150)})
	f.toQuiz(t, "gandhi", OptionB)

	f.answer(t, 1)
	f.m.Next(ctx)
	f.answer(t, 1)
	assert.Equal(t, 250, f.store.Record().XP)
	f.m.Next(ctx)

	c := f.answer(t, 3)
	assert.Equal(t, 150, f.store.Record().XP)
	require.True(t, f.m.Fire(ctx, *c))

	// Second run after the restart.
	f.answer(t, 1)
	assert.Equal(t, 200, f.store.Record().XP)
}

func TestSingleFireAnswerGuard(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.toQuiz(t, "gandhi", OptionB)

	f.answer(t, 1)
	c, ok := f.m.SelectAnswer(ctx, 0)
	assert.False(t, ok)
	assert.Nil(t, c)

	q, _ := f.m.Quiz()
	assert.Equal(t, 1, q.Selected)
	assert.True(t, q.LastCorrect)
	assert.Equal(t, 50, f.store.Record().XP)
	assert.Equal(t, 1, f.cues.correct)
	assert.Equal(t, 0, f.cues.incorrect)
}

func TestAnswerIgnoredWhileRestartPending(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.toQuiz(t, "gandhi", OptionB)

	f.answer(t, 0)
	_, ok := f.m.SelectAnswer(ctx, 1)
	assert.False(t, ok)
	assert.False(t, f.m.Next(ctx), "cannot advance past a wrong answer")
	assert.Equal(t, 1, f.cues.incorrect)
}

func TestSelectAnswerOutOfRange(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.toQuiz(t, "gandhi", OptionB)

	for _, choice := range []int{-1, 4, 9} {
		_, ok := f.m.SelectAnswer(ctx, choice)
		assert.False(t, ok, "choice %d", choice)
	}
	q, _ := f.m.Quiz()
	assert.False(t, q.Answered)
}

func TestNextRequiresCorrectAnswer(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.toQuiz(t, "gandhi", OptionB)

	assert.False(t, f.m.Next(ctx), "unanswered")
	f.answer(t, 1)
	require.True(t, f.m.Next(ctx))

	q, _ := f.m.Quiz()
	assert.Equal(t, 1, q.QuestionIndex)
	assert.False(t, q.Answered)
	assert.Equal(t, -1, q.Selected)
}

func TestPerfectCompletionUnlocksNetaji(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.toQuiz(t, "gandhi", OptionB)

	for i := 0; i < 3; i++ {
		f.answer(t, 1)
		require.True(t, f.m.Next(ctx))
	}

	rec := f.store.Record()
	c, ok := rec.Completion("gandhi")
	require.True(t, ok)
	assert.Equal(t, progress.Completion{Completed: true, Perfect: true}, c)
	assert.True(t, rec.IsUnlocked("netaji"))
	assert.Equal(t, 150, rec.XP)

	assert.Equal(t, ScreenReport, f.m.Screen())
	r, ok := f.m.Report()
	require.True(t, ok)
	assert.Equal(t, "gandhi", r.CharacterID)
	assert.Equal(t, []string{"netaji"}, r.NewlyUnlocked)
	assert.Equal(t, ScreenCharacterSelect, r.ContinueTarget())
}

func TestCompletionRecordAbsentUntilPassed(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.toQuiz(t, "gandhi", OptionB)

	f.answer(t, 1)
	f.m.Next(ctx)
	f.answer(t, 1)
	f.m.Next(ctx)

	_, ok := f.store.Record().Completion("gandhi")
	assert.False(t, ok)
}

func TestReportContinueBranches(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	complete := func() {
		for i := 0; i < 3; i++ {
			f.answer(t, 1)
			require.True(t, f.m.Next(ctx))
		}
	}

	f.toQuiz(t, "gandhi", OptionB)
	complete()
	require.True(t, f.m.Continue())
	assert.Equal(t, ScreenCharacterSelect, f.m.Screen())

	// Replaying gandhi unlocks nothing new.
	require.True(t, f.m.SelectCharacter(ctx, "gandhi"))
	f.m.AdvanceSlide()
	c, _ := f.m.ChooseDecision(OptionB)
	require.True(t, f.m.Fire(ctx, *c))
	complete()

	r, _ := f.m.Report()
	assert.Empty(t, r.NewlyUnlocked)
	require.True(t, f.m.Continue())
	assert.Equal(t, ScreenMenu, f.m.Screen())
	assert.Equal(t, 300, f.store.Record().XP)
}

func TestNetajiCompletionUnlocksNothing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.store.Apply(ctx, progress.Partial{Unlocked: map[string]bool{"gandhi": true, "netaji": true}})
	f.toQuiz(t, "netaji", OptionA)

	for _, choice := range []int{1, 2, 2} {
		f.answer(t, choice)
		require.True(t, f.m.Next(ctx))
	}

	r, ok := f.m.Report()
	require.True(t, ok)
	assert.Empty(t, r.NewlyUnlocked)
	c, _ := f.store.Record().Completion("netaji")
	assert.True(t, c.Perfect)
	assert.True(t, f.m.Continue())
	assert.Equal(t, ScreenMenu, f.m.Screen())
}

func TestBackDiscardsSubState(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.toQuiz(t, "gandhi", OptionB)
	f.answer(t, 1)

	require.True(t, f.m.Back())
	assert.Equal(t, ScreenMenu, f.m.Screen())
	assert.False(t, f.m.Back(), "already on the menu")
	assert.Equal(t, "gandhi", f.store.Record().CurrentCharacter, "current character survives navigation")
	assert.Equal(t, 50, f.store.Record().XP)

	// Re-entering starts from scratch.
	f.m.Start()
	f.m.SelectCharacter(ctx, "gandhi")
	s, _ := f.m.Story()
	assert.Equal(t, 0, s.SlideIndex)
	assert.Equal(t, OptionNone, s.Chosen)
}

func TestBackCancelsPendingDecisionContinuation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.m.Start()
	f.m.SelectCharacter(ctx, "gandhi")
	f.m.AdvanceSlide()
	c, _ := f.m.ChooseDecision(OptionB)

	f.m.Back()
	assert.False(t, f.m.Fire(ctx, *c))
	assert.Equal(t, ScreenMenu, f.m.Screen())

	// Even after coming back to the same story.
	f.m.Start()
	f.m.SelectCharacter(ctx, "gandhi")
	assert.False(t, f.m.Fire(ctx, *c))
	assert.Equal(t, ScreenStory, f.m.Screen())
}

func TestBackCancelsPendingRestart(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.toQuiz(t, "gandhi", OptionB)
	c := f.answer(t, 2)

	f.m.Back()
	assert.False(t, f.m.Fire(ctx, *c))
	assert.Equal(t, ScreenMenu, f.m.Screen())
}

func TestContinuationFiresOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.toQuiz(t, "gandhi", OptionB)
	c := f.answer(t, 0)

	require.True(t, f.m.Fire(ctx, *c))
	f.answer(t, 1)
	assert.False(t, f.m.Fire(ctx, *c), "a second fire must not restart again")

	q, _ := f.m.Quiz()
	assert.True(t, q.Answered)
}

func TestSoundGatesCues(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.m.ToggleSound(ctx, false)
	assert.False(t, f.store.Record().Sound)

	f.toQuiz(t, "gandhi", OptionB)
	f.answer(t, 1)
	f.m.Next(ctx)
	f.answer(t, 0)

	assert.Zero(t, *f.cues)

	f.m.ToggleSound(ctx, true)
	f.m.Back()
	f.toQuiz(t, "gandhi", OptionB)
	f.answer(t, 1)
	assert.Equal(t, recordingCues{correct: 1, xp: 1}, *f.cues)
}

func TestAttemptEvents(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.toQuiz(t, "gandhi", OptionB)
	f.answer(t, 1)
	f.m.Next(ctx)
	c := f.answer(t, 0)
	f.m.Fire(ctx, *c)

	var actions []string
	for _, ev := range f.events.events {
		actions = append(actions, ev.Action)
		assert.Equal(t, "attempt-1", ev.AttemptID)
		assert.Equal(t, "gandhi", ev.CharacterID)
	}
	assert.Equal(t, []string{
		store.ActionStart, store.ActionAnswer, store.ActionAnswer, store.ActionRestart,
	}, actions)
	assert.True(t, f.events.events[1].Correct)
	assert.Equal(t, 50, f.events.events[1].XP)
	assert.Equal(t, 1, f.events.events[2].QuestionIndex)
	assert.False(t, f.events.events[2].Correct)
}

func TestAttemptEventFailureIsIgnored(t *testing.T) {
	f := newFixture(t)
	f.events.err = errors.New("db locked")

	f.toQuiz(t, "gandhi", OptionB)
	f.answer(t, 1)

	assert.Equal(t, 50, f.store.Record().XP)
}

func TestMissingContentIsEmptyState(t *testing.T) {
	tables, err := content.Parse([]byte(`
characters:
  - id: gandhi
    name: Mahatma Gandhi
    title: t
    description: d
    seed: true
    story:
      slides: []
      decision:
        scenario: s
        a: {text: a, correct: false, explanation: ea}
        b: {text: b, correct: true, explanation: eb}
`))
	require.NoError(t, err)
	f := newFixtureWithTables(t, tables)
	ctx := context.Background()
	f.m.Start()

	require.True(t, f.m.SelectCharacter(ctx, "gandhi"))
	s, ok := f.m.Story()
	require.True(t, ok)
	assert.False(t, s.HasContent)
	_, ok = s.CurrentSlide()
	assert.False(t, ok)
	assert.False(t, f.m.AdvanceSlide())
	_, ok = f.m.ChooseDecision(OptionA)
	assert.False(t, ok)

	assert.True(t, f.m.Back())
}

func TestEmptyQuizIsEmptyState(t *testing.T) {
	tables, err := content.Parse([]byte(`
characters:
  - id: gandhi
    name: Mahatma Gandhi
    title: t
    description: d
    seed: true
    story:
      slides:
        - text: one
      decision:
        scenario: s
        a: {text: a, correct: false, explanation: ea}
        b: {text: b, correct: true, explanation: eb}
`))
	require.NoError(t, err)
	f := newFixtureWithTables(t, tables)
	ctx := context.Background()
	f.toQuiz(t, "gandhi", OptionB)

	q, ok := f.m.Quiz()
	require.True(t, ok)
	assert.False(t, q.HasContent())
	_, ok = q.CurrentQuestion()
	assert.False(t, ok)

	_, ok = f.m.SelectAnswer(ctx, 0)
	assert.False(t, ok)
	assert.False(t, f.m.Next(ctx))
	_, handled := f.m.HandleKey(ctx, "1")
	assert.False(t, handled)
}

func TestCustomFeedbackDelay(t *testing.T) {
	tables, err := content.Default()
	require.NoError(t, err)
	st := progress.NewStore(progress.NewMemoryBackend(), nil)
	m := New(st, tables, Options{FeedbackDelay: 10 * time.Millisecond})
	ctx := context.Background()

	m.Start()
	m.SelectCharacter(ctx, "gandhi")
	m.AdvanceSlide()
	c, _ := m.ChooseDecision(OptionB)
	assert.Equal(t, 10*time.Millisecond, c.Delay)
}

// TestEndToEnd walks the full happy path from a fresh save.
func TestEndToEnd(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.True(t, f.m.Start())
	require.True(t, f.m.SelectCharacter(ctx, "gandhi"))
	require.True(t, f.m.AdvanceSlide())
	c, ok := f.m.ChooseDecision(OptionB)
	require.True(t, ok)
	s, _ := f.m.Story()
	assert.Equal(t, "The Salt March was a pivotal non-violent protest that mobilized the nation.", s.Feedback)
	require.True(t, f.m.Fire(ctx, *c))

	for i, wantXP := range []int{50, 100, 150} {
		_, ok := f.m.SelectAnswer(ctx, 1)
		require.True(t, ok, "question %d", i+1)
		assert.Equal(t, wantXP, f.store.Record().XP)
		require.True(t, f.m.Next(ctx))
	}

	assert.Equal(t, ScreenReport, f.m.Screen())
	rec := progress.NewStore(f.backend, nil).Load(ctx)
	c2, ok := rec.Completion("gandhi")
	require.True(t, ok)
	assert.True(t, c2.Completed)
	assert.True(t, c2.Perfect)
	assert.True(t, rec.IsUnlocked("netaji"))
	assert.Equal(t, 150, rec.XP)

	r, _ := f.m.Report()
	assert.NotEmpty(t, r.NewlyUnlocked)
}

// TestFailureRetry answers the first question wrong from a fresh save.
func TestFailureRetry(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.toQuiz(t, "gandhi", OptionB)

	c := f.answer(t, 0)
	assert.Equal(t, 0, f.store.Record().XP)
	q, _ := f.m.Quiz()
	assert.True(t, q.Answered)
	assert.False(t, q.LastCorrect)

	require.True(t, f.m.Fire(ctx, *c))
	q, _ = f.m.Quiz()
	assert.Equal(t, 0, q.QuestionIndex)
	assert.False(t, q.Answered)
}
