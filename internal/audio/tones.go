package audio

import "time"

// Wave is the oscillator shape of a tone.
type Wave int

const (
	Sine Wave = iota
	Sawtooth
)

func (w Wave) String() string {
	if w == Sawtooth {
		return "sawtooth"
	}
	return "sine"
}

// Tone is one note of a cue, started At after the cue begins.
type Tone struct {
	Frequency float64 // Hz
	Duration  time.Duration
	At        time.Duration
	Wave      Wave
	Volume    float64
}

// Cue is a named sequence of tones.
type Cue struct {
	Name  string
	Tones []Tone
}

// Length is the time from the start of the cue until its last tone ends.
func (c Cue) Length() time.Duration {
	var end time.Duration
	for _, t := range c.Tones {
		end = max(end, t.At+t.Duration)
	}
	return end
}

// XPGainDelay separates the correct-answer cue from the XP chime.
const XPGainDelay = 300 * time.Millisecond

// CorrectCue is an ascending C major arpeggio.
var CorrectCue = Cue{
	Name: "correct",
	Tones: []Tone{
		{Frequency: 523.25, Duration: 400 * time.Millisecond, At: 0, Wave: Sine, Volume: 0.25},
		{Frequency: 659.25, Duration: 400 * time.Millisecond, At: 80 * time.Millisecond, Wave: Sine, Volume: 0.25},
		{Frequency: 783.99, Duration: 400 * time.Millisecond, At: 160 * time.Millisecond, Wave: Sine, Volume: 0.25},
	},
}

// IncorrectCue is a descending buzz.
var IncorrectCue = Cue{
	Name: "incorrect",
	Tones: []Tone{
		{Frequency: 400, Duration: 300 * time.Millisecond, At: 0, Wave: Sawtooth, Volume: 0.3},
		{Frequency: 300, Duration: 300 * time.Millisecond, At: 100 * time.Millisecond, Wave: Sawtooth, Volume: 0.25},
		{Frequency: 200, Duration: 400 * time.Millisecond, At: 200 * time.Millisecond, Wave: Sawtooth, Volume: 0.2},
	},
}

// XPGainCue is a short two-note chime.
var XPGainCue = Cue{
	Name: "xp-gain",
	Tones: []Tone{
		{Frequency: 800, Duration: 200 * time.Millisecond, At: 0, Wave: Sine, Volume: 0.2},
		{Frequency: 1000, Duration: 200 * time.Millisecond, At: 100 * time.Millisecond, Wave: Sine, Volume: 0.15},
	},
}
