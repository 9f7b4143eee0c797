package session

import "context"

// HandleKey applies the quiz keyboard shortcuts: "1" to "4" pick an
// answer while the question is open, "n" or "N" moves on once a correct
// answer's feedback is showing. Other keys, and any key outside the
// quiz, are ignored. handled reports whether the key did something.
func (m *Machine) HandleKey(ctx context.Context, key string) (c *Continuation, handled bool) {
	if m.screen != ScreenQuiz {
		return nil, false
	}

	switch key {
	case "1", "2", "3", "4":
		if m.quiz.Answered {
			return nil, false
		}
		return m.SelectAnswer(ctx, int(key[0]-'1'))
	case "n", "N":
		return nil, m.Next(ctx)
	}
	return nil, false
}
