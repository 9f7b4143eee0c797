package content

// Character is a selectable historical figure.
type Character struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Title       string `yaml:"title"`
	Portrait    string `yaml:"portrait"`
	Description string `yaml:"description"`

	// Seed marks the starting character. New-player defaults come from
	// progress.Default, so the seed must be progress.SeedCharacter; Parse
	// rejects content that disagrees.
	Seed bool `yaml:"seed"`

	// Unlocks lists characters unlocked by a perfect quiz completion.
	Unlocks []string `yaml:"unlocks"`

	// UnlockMessage tells the player how to unlock a gated character.
	UnlockMessage string `yaml:"unlock_message"`
}

// Slide is one illustrated step of a story.
type Slide struct {
	Image string `yaml:"image"`
	Text  string `yaml:"text"`
}

// Option is one side of a story decision.
type Option struct {
	Text        string `yaml:"text"`
	Correct     bool   `yaml:"correct"`
	Explanation string `yaml:"explanation"`
}

// Decision is the binary choice at the end of a story.
type Decision struct {
	Scenario string `yaml:"scenario"`
	A        Option `yaml:"a"`
	B        Option `yaml:"b"`
}

// Story is the ordered slides of a character followed by one decision.
type Story struct {
	Slides   []Slide  `yaml:"slides"`
	Decision Decision `yaml:"decision"`
}

// Question is a multiple-choice quiz question. Answer indexes Choices.
type Question struct {
	Text        string   `yaml:"question"`
	Choices     []string `yaml:"choices"`
	Answer      int      `yaml:"answer"`
	Explanation string   `yaml:"explanation"`
}

// IsCorrect reports whether choice is the right answer.
func (q Question) IsCorrect(choice int) bool {
	return choice == q.Answer
}

// Quiz is the ordered question list of a character.
type Quiz struct {
	Questions []Question
}

// Len returns the number of questions.
func (q Quiz) Len() int {
	return len(q.Questions)
}

// Report is the summary material shown after a completed quiz.
type Report struct {
	Events    []string `yaml:"events"`
	Learnings []string `yaml:"learnings"`
	Quote     string   `yaml:"quote"`
}
