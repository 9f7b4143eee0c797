package content

import (
	_ "embed"
	"fmt"
	"slices"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed content.yaml
var defaultContent []byte

// Tables holds the read-only game content. Lookups of an unknown
// character return ok == false; that is a valid "no content" result.
type Tables struct {
	order      []string
	characters map[string]Character
	stories    map[string]Story
	quizzes    map[string]Quiz
	reports    map[string]Report
}

type document struct {
	Characters []characterDoc `yaml:"characters"`
}

type characterDoc struct {
	Character `yaml:",inline"`
	Story     *Story     `yaml:"story"`
	Quiz      []Question `yaml:"quiz"`
	Report    *Report    `yaml:"report"`
}

var loadDefault = sync.OnceValues(func() (*Tables, error) {
	return Parse(defaultContent)
})

// Default returns the built-in content, parsed once per process.
func Default() (*Tables, error) {
	return loadDefault()
}

// Parse decodes and validates a YAML content document.
func Parse(data []byte) (*Tables, error) {
	if err := validateSchema(data); err != nil {
		return nil, err
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode content: %w", err)
	}

	t := &Tables{
		characters: make(map[string]Character),
		stories:    make(map[string]Story),
		quizzes:    make(map[string]Quiz),
		reports:    make(map[string]Report),
	}
	for _, cd := range doc.Characters {
		if _, dup := t.characters[cd.ID]; dup {
			return nil, fmt.Errorf("duplicate character %q", cd.ID)
		}
		t.order = append(t.order, cd.ID)
		t.characters[cd.ID] = cd.Character
		if cd.Story != nil {
			t.stories[cd.ID] = *cd.Story
		}
		if cd.Quiz != nil {
			t.quizzes[cd.ID] = Quiz{Questions: cd.Quiz}
		}
		if cd.Report != nil {
			t.reports[cd.ID] = *cd.Report
		}
	}

	if err := t.validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Characters returns all characters in display order.
func (t *Tables) Characters() []Character {
	out := make([]Character, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, t.characters[id])
	}
	return out
}

// CharacterByID looks up a character.
func (t *Tables) CharacterByID(id string) (Character, bool) {
	c, ok := t.characters[id]
	if ok {
		c.Unlocks = slices.Clone(c.Unlocks)
	}
	return c, ok
}

// StoryByCharacterID looks up a character's story.
func (t *Tables) StoryByCharacterID(id string) (Story, bool) {
	s, ok := t.stories[id]
	if ok {
		s.Slides = slices.Clone(s.Slides)
	}
	return s, ok
}

// QuizByCharacterID looks up a character's quiz.
func (t *Tables) QuizByCharacterID(id string) (Quiz, bool) {
	q, ok := t.quizzes[id]
	if ok {
		q.Questions = slices.Clone(q.Questions)
	}
	return q, ok
}

// ReportByCharacterID looks up a character's report material.
func (t *Tables) ReportByCharacterID(id string) (Report, bool) {
	r, ok := t.reports[id]
	return r, ok
}

// Name returns the display name of a character, or "Unknown".
func (t *Tables) Name(id string) string {
	if c, ok := t.characters[id]; ok {
		return c.Name
	}
	return "Unknown"
}
