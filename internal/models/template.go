package models

import "fmt"

// Template is a named prompt category with its declarative question schema.
// Templates are immutable catalog data: the id selects which synthesis
// strategy applies and the questions drive the dynamic form.
type Template struct {
	ID          string     `yaml:"id"`
	Name        string     `yaml:"name"`
	Description string     `yaml:"description,omitempty"`
	Questions   []Question `yaml:"questions"`

	// FilePath is set for templates loaded from the library directory
	FilePath string `yaml:"-"`
}

// Question returns the question with the given id, if any
func (t *Template) Question(id string) (Question, bool) {
	for _, q := range t.Questions {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}

// Validate checks the schema invariants: a non-empty id, unique question ids,
// and options present on the question types that require them
func (t *Template) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("template has no id")
	}
	seen := make(map[string]bool, len(t.Questions))
	for _, q := range t.Questions {
		if q.ID == "" {
			return fmt.Errorf("template %q has a question with no id", t.ID)
		}
		if seen[q.ID] {
			return fmt.Errorf("template %q has duplicate question id %q", t.ID, q.ID)
		}
		seen[q.ID] = true
		if q.NeedsOptions() && len(q.Options) == 0 {
			return fmt.Errorf("template %q question %q is type %s but has no options", t.ID, q.ID, q.Type)
		}
	}
	return nil
}
