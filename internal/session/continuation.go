package session

import "time"

// ContinuationKind names a delayed transition.
type ContinuationKind int

const (
	// ContinueToQuiz moves from the story decision to the quiz.
	ContinueToQuiz ContinuationKind = iota + 1

	// RestartQuiz restarts the quiz after a wrong answer.
	RestartQuiz
)

func (k ContinuationKind) String() string {
	switch k {
	case ContinueToQuiz:
		return "continue-to-quiz"
	case RestartQuiz:
		return "restart-quiz"
	}
	return "unknown"
}

// Continuation is a transition scheduled to run after Delay. The host
// waits Delay and then hands it back to Machine.Fire. It carries the
// generation it was scheduled in; if anything moved the machine on in
// the meantime, Fire discards it.
type Continuation struct {
	Kind  ContinuationKind
	Delay time.Duration

	generation    uint64
	characterID   string
	questionIndex int
}
