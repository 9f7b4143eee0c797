package progress

import "maps"

// SeedCharacter is always unlocked and can never be locked again.
const SeedCharacter = "gandhi"

// Completion marks a character's quiz as finished.
type Completion struct {
	Completed bool `json:"completed"`
	Perfect   bool `json:"perfect"`
}

// Record is the persisted progression state of the single local player.
type Record struct {
	XP               int
	Unlocked         map[string]bool
	Progress         map[string]Completion
	Sound            bool
	CurrentCharacter string // "" when no character has been picked yet
}

// Default returns the state of a first-time player.
func Default() Record {
	return Record{
		XP:       0,
		Unlocked: map[string]bool{SeedCharacter: true, "netaji": false},
		Progress: map[string]Completion{},
		Sound:    true,
	}
}

// Partial is a sparse update. Nil fields are left untouched by Merge.
// Maps are replaced wholesale, never merged key by key.
type Partial struct {
	XP               *int
	Unlocked         map[string]bool
	Progress         map[string]Completion
	Sound            *bool
	CurrentCharacter *string
}

// Int, Bool and String build pointer fields for a Partial.
func Int(v int) *int          { return &v }
func Bool(v bool) *bool       { return &v }
func String(v string) *string { return &v }

// Merge returns a copy of r with every field present in p applied on top.
func (r Record) Merge(p Partial) Record {
	out := r.Clone()
	if p.XP != nil {
		out.XP = *p.XP
	}
	if p.Unlocked != nil {
		out.Unlocked = maps.Clone(p.Unlocked)
	}
	if p.Progress != nil {
		out.Progress = maps.Clone(p.Progress)
	}
	if p.Sound != nil {
		out.Sound = *p.Sound
	}
	if p.CurrentCharacter != nil {
		out.CurrentCharacter = *p.CurrentCharacter
	}
	out.ensureSeed()
	return out
}

// Clone returns a deep copy of r.
func (r Record) Clone() Record {
	out := r
	out.Unlocked = maps.Clone(r.Unlocked)
	out.Progress = maps.Clone(r.Progress)
	if out.Unlocked == nil {
		out.Unlocked = map[string]bool{}
	}
	if out.Progress == nil {
		out.Progress = map[string]Completion{}
	}
	return out
}

// IsUnlocked reports whether the character can be selected.
func (r Record) IsUnlocked(id string) bool {
	return r.Unlocked[id]
}

// Completion returns the completion record for a character, if any.
func (r Record) Completion(id string) (Completion, bool) {
	c, ok := r.Progress[id]
	return c, ok
}

// UnlockedCount is the number of selectable characters.
func (r Record) UnlockedCount() int {
	n := 0
	for _, ok := range r.Unlocked {
		if ok {
			n++
		}
	}
	return n
}

// CompletedCount is the number of characters whose quiz has been completed.
func (r Record) CompletedCount() int {
	n := 0
	for _, c := range r.Progress {
		if c.Completed {
			n++
		}
	}
	return n
}

// ensureSeed re-asserts that the seed character is unlocked.
func (r *Record) ensureSeed() {
	if r.Unlocked == nil {
		r.Unlocked = map[string]bool{}
	}
	r.Unlocked[SeedCharacter] = true
}
