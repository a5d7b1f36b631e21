// Package session owns the state of one active questionnaire: the chosen
// template and the answers collected so far. There is exactly one active
// session at a time and it is passed explicitly; nothing in the application
// reads answer state from anywhere else.
package session

import (
	"fmt"

	"github.com/promptfoundry/prompt-foundry/internal/models"
)

// Session holds the active template and its answer set. Switching templates
// discards every previous answer, so stale keys from another schema can never
// leak into synthesis.
type Session struct {
	template *models.Template
	answers  *models.AnswerSet
}

// New creates a session with no active template
func New() *Session {
	return &Session{
		answers: models.NewAnswerSet(),
	}
}

// Start activates a template and clears all previous answers
func (s *Session) Start(tmpl *models.Template) {
	s.template = tmpl
	s.answers = models.NewAnswerSet()
}

// Reset discards the active template and all answers
func (s *Session) Reset() {
	s.template = nil
	s.answers = models.NewAnswerSet()
}

// Active reports whether a template is currently being answered
func (s *Session) Active() bool {
	return s.template != nil
}

// Template returns the active template, or nil
func (s *Session) Template() *models.Template {
	return s.template
}

// Answers returns the live answer set of the active session
func (s *Session) Answers() *models.AnswerSet {
	return s.answers
}

// UpdateAnswer overwrites the answer for a question id. The id must belong to
// the active template's schema; anything else indicates a wiring bug in the
// caller.
func (s *Session) UpdateAnswer(questionID string, value interface{}) error {
	if s.template == nil {
		return fmt.Errorf("no active template")
	}
	if _, ok := s.template.Question(questionID); !ok {
		return fmt.Errorf("question %q is not part of template %q", questionID, s.template.ID)
	}
	s.answers.Set(questionID, value)
	return nil
}

// Snapshot returns a deep copy of the current answers. Saved prompts hold a
// snapshot, so later edits to the live session never touch them.
func (s *Session) Snapshot() *models.AnswerSet {
	return s.answers.Snapshot()
}
