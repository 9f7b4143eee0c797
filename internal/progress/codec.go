package progress

import (
	"encoding/json"
	"fmt"
	"sort"
)

// blob is the on-disk shape. quizIndex is a legacy key: it is never read
// back and always written as zero.
type blob struct {
	XP               int                   `json:"xp"`
	Unlocked         map[string]bool       `json:"unlocked"`
	Progress         map[string]Completion `json:"progress"`
	Sound            bool                  `json:"sound"`
	CurrentCharacter *string               `json:"currentCharacter"`
	QuizIndex        int                   `json:"quizIndex"`
}

func encode(r Record) (string, error) {
	b := blob{
		XP:       r.XP,
		Unlocked: r.Unlocked,
		Progress: r.Progress,
		Sound:    r.Sound,
	}
	if r.CurrentCharacter != "" {
		b.CurrentCharacter = &r.CurrentCharacter
	}
	data, err := json.Marshal(b)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// FieldError reports a stored field that could not be decoded and was
// left at its default.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %q: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

// decode shallow-merges the stored JSON object over base. It fails only
// when raw is not a JSON object at all. Individual fields that do not
// decode are skipped and reported in fieldErrs.
func decode(raw string, base Record) (rec Record, fieldErrs []error, err error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return base, nil, fmt.Errorf("decode game state: %w", err)
	}
	if fields == nil {
		return base, nil, fmt.Errorf("decode game state: not a JSON object")
	}

	var p Partial
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		msg := fields[key]
		var ferr error
		switch key {
		case "xp":
			var v int
			if ferr = json.Unmarshal(msg, &v); ferr == nil {
				p.XP = &v
			}
		case "unlocked":
			var v map[string]bool
			if ferr = json.Unmarshal(msg, &v); ferr == nil {
				if v == nil {
					v = map[string]bool{}
				}
				p.Unlocked = v
			}
		case "progress":
			var v map[string]Completion
			if ferr = json.Unmarshal(msg, &v); ferr == nil {
				if v == nil {
					v = map[string]Completion{}
				}
				p.Progress = v
			}
		case "sound":
			var v bool
			if ferr = json.Unmarshal(msg, &v); ferr == nil {
				p.Sound = &v
			}
		case "currentCharacter":
			var v *string
			if ferr = json.Unmarshal(msg, &v); ferr == nil {
				s := ""
				if v != nil {
					s = *v
				}
				p.CurrentCharacter = &s
			}
		default:
			// quizIndex and unknown keys are ignored.
		}
		if ferr != nil {
			fieldErrs = append(fieldErrs, &FieldError{Field: key, Err: ferr})
		}
	}

	return base.Merge(p), fieldErrs, nil
}
