package content

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/freedomquest/internal/progress"
)

//go:embed schema.json
var schemaJSON []byte

const schemaURL = "schema://freedomquest/content.json"

var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
	if err != nil {
		return nil, fmt.Errorf("parse schema: %w", err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(schemaURL, doc); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	return c.Compile(schemaURL)
})

// validateSchema checks the structure of a YAML content document.
func validateSchema(data []byte) error {
	sch, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("compile content schema: %w", err)
	}

	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode content: %w", err)
	}

	// The validator wants JSON values (json.Number, map[string]any), so
	// round-trip the YAML tree through JSON.
	j, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("convert content to JSON: %w", err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(j))
	if err != nil {
		return fmt.Errorf("convert content to JSON: %w", err)
	}

	if err := sch.Validate(inst); err != nil {
		return fmt.Errorf("content schema validation failed: %w", err)
	}
	return nil
}

// validate checks the rules a schema cannot express.
func (t *Tables) validate() error {
	var errs []error
	seeds := 0
	for _, id := range t.order {
		c := t.characters[id]
		if c.Seed {
			seeds++
			if id != progress.SeedCharacter {
				errs = append(errs, fmt.Errorf("seed character is %q, want %q", id, progress.SeedCharacter))
			}
		}
		for _, target := range c.Unlocks {
			if _, ok := t.characters[target]; !ok {
				errs = append(errs, fmt.Errorf("character %q unlocks unknown character %q", id, target))
			}
			if target == id {
				errs = append(errs, fmt.Errorf("character %q unlocks itself", id))
			}
		}
		for i, q := range t.quizzes[id].Questions {
			if q.Answer < 0 || q.Answer >= len(q.Choices) {
				errs = append(errs, fmt.Errorf("character %q question %d: answer %d out of range", id, i+1, q.Answer))
			}
		}
	}
	if seeds != 1 {
		errs = append(errs, fmt.Errorf("want exactly one seed character, got %d", seeds))
	}
	return errors.Join(errs...)
}
