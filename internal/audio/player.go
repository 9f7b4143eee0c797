// Package audio plays the game's sound cues. A terminal cannot synthesize
// the cue tones, so each cue rings the terminal bell once; the tone
// sequences are kept so the log shows what would have played.
package audio

import (
	"io"
	"sync"
	"time"

	"github.com/abhisek/freedomquest/internal/logging"
)

const bell = "\a"

// Player rings the bell for cues. It satisfies session.Cues. Playback is
// fire-and-forget: write errors are logged and otherwise ignored.
type Player struct {
	mu      sync.Mutex
	w       io.Writer
	enabled bool
	log     *logging.Logger

	// afterFunc schedules delayed cues; replaced in tests.
	afterFunc func(time.Duration, func())
}

// NewPlayer returns a player writing to w. A disabled player only logs.
func NewPlayer(w io.Writer, enabled bool, log *logging.Logger) *Player {
	if log == nil {
		log = logging.Nop()
	}
	return &Player{
		w:       w,
		enabled: enabled,
		log:     log.With("component", "audio"),
		afterFunc: func(d time.Duration, f func()) {
			time.AfterFunc(d, f)
		},
	}
}

// PlayCorrect plays CorrectCue.
func (p *Player) PlayCorrect() { p.Play(CorrectCue) }

// PlayIncorrect plays IncorrectCue.
func (p *Player) PlayIncorrect() { p.Play(IncorrectCue) }

// PlayXPGain plays XPGainCue after XPGainDelay so it follows the
// correct-answer cue instead of overlapping it.
func (p *Player) PlayXPGain() {
	p.afterFunc(XPGainDelay, func() { p.Play(XPGainCue) })
}

// Play rings the bell once for c.
func (p *Player) Play(c Cue) {
	freqs := make([]float64, len(c.Tones))
	for i, t := range c.Tones {
		freqs[i] = t.Frequency
	}
	p.log.Debug("sound cue", "cue", c.Name, "frequencies", freqs, "length", c.Length())

	if !p.enabled || p.w == nil {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if _, err := io.WriteString(p.w, bell); err != nil {
		p.log.Warn("failed to play sound cue", "cue", c.Name, "error", err)
	}
}
