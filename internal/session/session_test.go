package session

import (
	"testing"

	"github.com/promptfoundry/prompt-foundry/internal/models"
)

func testTemplate(id string, questionIDs ...string) *models.Template {
	tmpl := &models.Template{ID: id, Name: id}
	for _, qid := range questionIDs {
		tmpl.Questions = append(tmpl.Questions, models.Question{
			ID: qid, Type: models.QuestionText, Label: qid,
		})
	}
	return tmpl
}

func TestUpdateAnswerRequiresActiveTemplate(t *testing.T) {
	s := New()
	if err := s.UpdateAnswer("foo", "bar"); err == nil {
		t.Error("expected error updating answer with no active template")
	}
}

func TestUpdateAnswerRejectsForeignKey(t *testing.T) {
	s := New()
	s.Start(testTemplate("custom-x", "foo"))

	if err := s.UpdateAnswer("not-in-schema", "x"); err == nil {
		t.Error("expected error for a question id outside the template schema")
	}
	if err := s.UpdateAnswer("foo", "bar"); err != nil {
		t.Errorf("unexpected error for a valid question id: %v", err)
	}
}

func TestTemplateSwitchClearsAnswers(t *testing.T) {
	s := New()
	s.Start(testTemplate("first", "alpha"))
	if err := s.UpdateAnswer("alpha", "value"); err != nil {
		t.Fatalf("UpdateAnswer failed: %v", err)
	}

	s.Start(testTemplate("second", "beta"))
	if s.Answers().Len() != 0 {
		t.Errorf("answers must be cleared on template switch, got %d entries", s.Answers().Len())
	}
	if s.Answers().Get("alpha") != nil {
		t.Error("stale key from previous template survived the switch")
	}
}

func TestResetDiscardsSession(t *testing.T) {
	s := New()
	s.Start(testTemplate("custom-x", "foo"))
	s.UpdateAnswer("foo", "bar")

	s.Reset()
	if s.Active() {
		t.Error("session should be inactive after reset")
	}
	if s.Answers().Len() != 0 {
		t.Error("answers should be empty after reset")
	}
}

func TestSnapshotIsIndependent(t *testing.T) {
	s := New()
	s.Start(testTemplate("custom-x", "foo", "list"))
	s.UpdateAnswer("foo", "original")
	s.UpdateAnswer("list", []string{"a", "b"})

	snap := s.Snapshot()

	s.UpdateAnswer("foo", "mutated")
	if got := snap.Get("foo"); got != "original" {
		t.Errorf("snapshot changed after live update: %v", got)
	}

	live := s.Answers().Get("list").([]string)
	live[0] = "mutated"
	if got := snap.Get("list").([]string)[0]; got != "a" {
		t.Errorf("snapshot shares slice storage with live answers: %v", got)
	}
}

func TestUpdateAnswerOverwrites(t *testing.T) {
	s := New()
	s.Start(testTemplate("custom-x", "foo"))

	s.UpdateAnswer("foo", "first")
	s.UpdateAnswer("foo", "second")
	if got := s.Answers().Get("foo"); got != "second" {
		t.Errorf("expected total overwrite, got %v", got)
	}
	if s.Answers().Len() != 1 {
		t.Errorf("overwrite must not duplicate keys, len = %d", s.Answers().Len())
	}
}
