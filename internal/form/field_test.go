package form

import (
	"reflect"
	"testing"

	"github.com/promptfoundry/prompt-foundry/internal/models"
)

func TestResolveAffordances(t *testing.T) {
	tests := []struct {
		question models.Question
		want     Affordance
	}{
		{models.Question{Type: models.QuestionText}, AffordanceTextInput},
		{models.Question{Type: models.QuestionTextarea}, AffordanceTextArea},
		{models.Question{Type: models.QuestionSelect}, AffordanceChoiceSingle},
		{models.Question{Type: models.QuestionRadio}, AffordanceChoiceSingle},
		{models.Question{Type: models.QuestionCheckbox}, AffordanceToggle},
		{models.Question{Type: models.QuestionCheckbox,
			Options: []models.Option{{Value: "a", Label: "A"}}}, AffordanceChoiceMulti},
		{models.Question{Type: models.QuestionSlider}, AffordanceNumericRange},
		{models.Question{Type: models.QuestionColor}, AffordanceColor},
		{models.Question{Type: "hologram"}, AffordanceUnsupported},
		{models.Question{}, AffordanceUnsupported},
	}

	for _, tt := range tests {
		if got := Resolve(tt.question); got != tt.want {
			t.Errorf("Resolve(%q) = %v, want %v", tt.question.Type, got, tt.want)
		}
	}
}

func TestUnknownTypeIsNoOp(t *testing.T) {
	q := models.Question{ID: "future", Type: "hologram"}
	answers := models.NewAnswerSet()

	if v := Value(q, answers); v != nil {
		t.Errorf("unsupported question should have no value, got %v", v)
	}
	if v := Apply(q, nil, "anything"); v != nil {
		t.Errorf("unsupported question must ignore input, got %v", v)
	}
}

func TestValueDefaults(t *testing.T) {
	answers := models.NewAnswerSet()

	min := 10.0
	tests := []struct {
		name     string
		question models.Question
		want     interface{}
	}{
		{"text", models.Question{ID: "t", Type: models.QuestionText}, ""},
		{"toggle", models.Question{ID: "c", Type: models.QuestionCheckbox}, false},
		{"slider default min", models.Question{ID: "s", Type: models.QuestionSlider}, 0.0},
		{"slider custom min", models.Question{ID: "s2", Type: models.QuestionSlider, Min: &min}, 10.0},
		{"color", models.Question{ID: "col", Type: models.QuestionColor}, "#000000"},
	}

	for _, tt := range tests {
		got := Value(tt.question, answers)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("%s: default = %v, want %v", tt.name, got, tt.want)
		}
	}

	multi := models.Question{ID: "m", Type: models.QuestionCheckbox,
		Options: []models.Option{{Value: "a", Label: "A"}}}
	if got, ok := Value(multi, answers).([]string); !ok || len(got) != 0 {
		t.Errorf("multi-select default should be an empty set, got %v", Value(multi, answers))
	}
}

func TestValuePrefersStoredAnswer(t *testing.T) {
	answers := models.NewAnswerSet()
	answers.Set("s", float64(42))

	q := models.Question{ID: "s", Type: models.QuestionSlider}
	if got := Value(q, answers); got != float64(42) {
		t.Errorf("stored answer should win over default, got %v", got)
	}
}

func TestApplyToggle(t *testing.T) {
	q := models.Question{ID: "c", Type: models.QuestionCheckbox}

	if got := Apply(q, false, ""); got != true {
		t.Errorf("toggle from false = %v, want true", got)
	}
	if got := Apply(q, true, ""); got != false {
		t.Errorf("toggle from true = %v, want false", got)
	}
	// Absent: treated as false, toggles on
	if got := Apply(q, nil, ""); got != true {
		t.Errorf("toggle from absent = %v, want true", got)
	}
}

func TestApplyMultiSelectRoundTrip(t *testing.T) {
	q := models.Question{ID: "m", Type: models.QuestionCheckbox,
		Options: []models.Option{
			{Value: "a", Label: "A"},
			{Value: "b", Label: "B"},
			{Value: "c", Label: "C"},
		}}

	original := []string{"a", "b", "c"}
	toggled := Apply(q, original, "b").([]string)
	if !reflect.DeepEqual(toggled, []string{"a", "c"}) {
		t.Errorf("toggle off = %v, want [a c]", toggled)
	}

	back := Apply(q, toggled, "b").([]string)
	if !reflect.DeepEqual(back, []string{"a", "c", "b"}) {
		t.Errorf("toggle on appends = %v, want [a c b]", back)
	}

	// Off again restores the original relative order of remaining items
	off := Apply(q, back, "b").([]string)
	if !reflect.DeepEqual(off, []string{"a", "c"}) {
		t.Errorf("round trip = %v, want [a c]", off)
	}
}

func TestApplyMultiSelectNoDuplicates(t *testing.T) {
	q := models.Question{ID: "m", Type: models.QuestionCheckbox,
		Options: []models.Option{{Value: "a", Label: "A"}}}

	v := Apply(q, nil, "a")
	v = Apply(q, v, "a")
	if got := v.([]string); len(got) != 0 {
		t.Errorf("double toggle must remove, got %v", got)
	}
}

func TestApplySliderClamping(t *testing.T) {
	min, max, step := 10.0, 20.0, 2.0
	q := models.Question{ID: "s", Type: models.QuestionSlider, Min: &min, Max: &max, Step: &step}

	tests := []struct {
		raw  string
		want float64
	}{
		{"15", 16}, // snapped to nearest step from min
		{"14", 14},
		{"5", 10},
		{"25", 20},
		{"not-a-number", 10},
		{"10", 10},
		{"20", 20},
	}

	for _, tt := range tests {
		if got := Apply(q, nil, tt.raw); got != tt.want {
			t.Errorf("Apply(slider, %q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}

func TestApplyStoresRawText(t *testing.T) {
	q := models.Question{ID: "t", Type: models.QuestionText}
	// Partial and odd input is stored as-is, never rejected
	if got := Apply(q, "", "  half-typed "); got != "  half-typed " {
		t.Errorf("raw text should be stored untouched, got %q", got)
	}
}

func TestCanSubmit(t *testing.T) {
	tmpl := &models.Template{
		ID: "custom-x",
		Questions: []models.Question{
			{ID: "name", Type: models.QuestionText, Label: "Name", Required: true},
			{ID: "notes", Type: models.QuestionTextarea, Label: "Notes"},
		},
	}

	answers := models.NewAnswerSet()
	ok, missing := CanSubmit(tmpl, answers)
	if ok || len(missing) != 1 || missing[0] != "name" {
		t.Errorf("expected name to be missing, got ok=%v missing=%v", ok, missing)
	}

	// Empty string does not satisfy a required question
	answers.Set("name", "")
	if ok, _ := CanSubmit(tmpl, answers); ok {
		t.Error("empty string must not satisfy a required question")
	}

	answers.Set("name", "Ada")
	if ok, missing := CanSubmit(tmpl, answers); !ok {
		t.Errorf("expected submit to be allowed, still missing %v", missing)
	}
}
