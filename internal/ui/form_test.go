package ui

import (
	"reflect"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/promptfoundry/prompt-foundry/internal/models"
)

func floatPtr(v float64) *float64 { return &v }

func testTemplate() *models.Template {
	return &models.Template{
		ID:   "demo",
		Name: "Demo",
		Questions: []models.Question{
			{ID: "subject", Type: models.QuestionText, Label: "Subject", Required: true},
			{ID: "style", Type: models.QuestionRadio, Label: "Style", Options: []models.Option{
				{Value: "realistic", Label: "Realistic"},
				{Value: "abstract", Label: "Abstract"},
			}},
			{ID: "effects", Type: models.QuestionCheckbox, Label: "Effects", Options: []models.Option{
				{Value: "glow", Label: "Glow"},
				{Value: "blur", Label: "Blur"},
			}},
			{ID: "tests", Type: models.QuestionCheckbox, Label: "Include tests"},
			{ID: "duration", Type: models.QuestionSlider, Label: "Duration",
				Min: floatPtr(10), Max: floatPtr(60), Step: floatPtr(5)},
		},
	}
}

func newTestForm(t *testing.T) (*QuestionnaireForm, *models.AnswerSet) {
	t.Helper()
	answers := models.NewAnswerSet()
	f := NewQuestionnaireForm(testTemplate(), answers, func(id string, value interface{}) {
		answers.Set(id, value)
	})
	return f, answers
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestFormTextCommitsOnKeystroke(t *testing.T) {
	f, answers := newTestForm(t)

	f.Update(keyMsg("G"))
	f.Update(keyMsg("o"))

	if got := answers.Get("subject"); got != "Go" {
		t.Errorf("subject = %v, want Go", got)
	}
}

func TestFormSingleChoiceSelection(t *testing.T) {
	f, answers := newTestForm(t)

	f.Update(keyMsg("tab")) // focus style
	f.Update(keyMsg("right"))
	f.Update(keyMsg("enter"))

	if got := answers.Get("style"); got != "abstract" {
		t.Errorf("style = %v, want abstract", got)
	}
}

func TestFormMultiChoiceToggles(t *testing.T) {
	f, answers := newTestForm(t)

	f.Update(keyMsg("tab"))
	f.Update(keyMsg("tab")) // focus effects
	f.Update(keyMsg("enter"))
	f.Update(keyMsg("right"))
	f.Update(keyMsg("enter"))

	want := []string{"glow", "blur"}
	if got := answers.Get("effects"); !reflect.DeepEqual(got, want) {
		t.Errorf("effects = %v, want %v", got, want)
	}

	// Toggling an already-selected value removes it
	f.Update(keyMsg("left"))
	f.Update(keyMsg("enter"))
	want = []string{"blur"}
	if got := answers.Get("effects"); !reflect.DeepEqual(got, want) {
		t.Errorf("effects after toggle = %v, want %v", got, want)
	}
}

func TestFormToggleFlips(t *testing.T) {
	f, answers := newTestForm(t)

	for i := 0; i < 3; i++ {
		f.Update(keyMsg("tab"))
	}

	f.Update(keyMsg("enter"))
	if got := answers.Get("tests"); got != true {
		t.Errorf("tests = %v, want true", got)
	}
	f.Update(keyMsg("enter"))
	if got := answers.Get("tests"); got != false {
		t.Errorf("tests = %v, want false", got)
	}
}

func TestFormSliderStepsWithinBounds(t *testing.T) {
	f, answers := newTestForm(t)

	for i := 0; i < 4; i++ {
		f.Update(keyMsg("tab"))
	}

	f.Update(keyMsg("right"))
	if got := answers.Get("duration"); got != 15.0 {
		t.Errorf("duration = %v, want 15", got)
	}

	// Stepping below the minimum clamps
	f.Update(keyMsg("left"))
	f.Update(keyMsg("left"))
	if got := answers.Get("duration"); got != 10.0 {
		t.Errorf("duration = %v, want 10", got)
	}
}

func TestFormCanSubmitRequiresAnswers(t *testing.T) {
	f, answers := newTestForm(t)

	ok, missing := f.CanSubmit()
	if ok {
		t.Fatal("unanswered required question should block submit")
	}
	if len(missing) != 1 || missing[0] != "subject" {
		t.Errorf("missing = %v", missing)
	}

	answers.Set("subject", "A forest at dawn")
	if ok, _ := f.CanSubmit(); !ok {
		t.Error("submit should be allowed once required answers are present")
	}
}
