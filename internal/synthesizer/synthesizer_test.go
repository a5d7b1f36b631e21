package synthesizer

import (
	"strings"
	"testing"

	"github.com/promptfoundry/prompt-foundry/internal/models"
)

func codeTemplate() *models.Template {
	return &models.Template{
		ID:   TemplateCodeGeneration,
		Name: "Code Generation",
		Questions: []models.Question{
			{ID: "programming-language", Type: models.QuestionText, Label: "Programming Language"},
			{ID: "framework", Type: models.QuestionText, Label: "Framework"},
			{ID: "task-description", Type: models.QuestionTextarea, Label: "Task Description"},
			{ID: "requirements", Type: models.QuestionTextarea, Label: "Requirements"},
			{ID: "include-tests", Type: models.QuestionCheckbox, Label: "Include unit tests"},
			{ID: "include-examples", Type: models.QuestionCheckbox, Label: "Include usage examples"},
		},
	}
}

func TestSynthesizeCodeGeneration(t *testing.T) {
	answers := models.NewAnswerSet()
	answers.Set("programming-language", "Go")
	answers.Set("include-tests", true)

	output := Synthesize(codeTemplate(), answers, "")

	if !strings.Contains(output, "Language: Go\n") {
		t.Errorf("expected Language line, got:\n%s", output)
	}
	if !strings.Contains(output, "- Include unit tests\n") {
		t.Errorf("expected include-tests bullet, got:\n%s", output)
	}
	if strings.Contains(output, "Framework:") {
		t.Errorf("Framework line should be omitted when unanswered, got:\n%s", output)
	}
	if !strings.HasPrefix(output, "# Code Generation Request\n\n") {
		t.Errorf("expected heading prefix, got:\n%s", output)
	}
}

func TestSynthesizeInstructionsAlwaysPresent(t *testing.T) {
	output := Synthesize(codeTemplate(), models.NewAnswerSet(), "")

	wantBullets := []string{
		"- Please provide well-documented code\n",
		"- Include comments explaining complex logic\n",
		"- Ensure the code is efficient and follows best practices\n",
	}
	for _, bullet := range wantBullets {
		if !strings.Contains(output, bullet) {
			t.Errorf("missing fixed instruction bullet %q in:\n%s", bullet, output)
		}
	}
	if strings.Contains(output, "- Include unit tests") {
		t.Errorf("include-tests bullet must be gated on a true answer:\n%s", output)
	}
}

func TestSynthesizeBooleanGateIsStrict(t *testing.T) {
	answers := models.NewAnswerSet()
	answers.Set("include-tests", "true") // string, not bool

	output := Synthesize(codeTemplate(), answers, "")
	if strings.Contains(output, "- Include unit tests") {
		t.Errorf("string %q must not satisfy a boolean gate:\n%s", "true", output)
	}
}

func TestSynthesizeDeterministic(t *testing.T) {
	answers := models.NewAnswerSet()
	answers.Set("programming-language", "Go")
	answers.Set("task-description", "Build a CLI")
	answers.Set("include-examples", true)

	first := Synthesize(codeTemplate(), answers, "Context here")
	second := Synthesize(codeTemplate(), answers, "Context here")
	if first != second {
		t.Errorf("synthesis is not deterministic:\n%q\nvs\n%q", first, second)
	}
}

func TestSynthesizeSectionOrderFixed(t *testing.T) {
	tmpl := codeTemplate()

	forward := models.NewAnswerSet()
	forward.Set("task-description", "Build a CLI")
	forward.Set("requirements", "Fast startup")

	reversed := models.NewAnswerSet()
	reversed.Set("requirements", "Fast startup")
	reversed.Set("task-description", "Build a CLI")

	a := Synthesize(tmpl, forward, "")
	b := Synthesize(tmpl, reversed, "")
	if a != b {
		t.Errorf("answer entry order changed category output:\n%q\nvs\n%q", a, b)
	}

	taskIdx := strings.Index(a, "## Task Description")
	reqIdx := strings.Index(a, "## Requirements")
	if taskIdx == -1 || reqIdx == -1 || taskIdx > reqIdx {
		t.Errorf("section order is wrong:\n%s", a)
	}
}

func TestSynthesizeSectionFormatting(t *testing.T) {
	answers := models.NewAnswerSet()
	answers.Set("task-description", "Build a CLI")
	answers.Set("requirements", "Fast startup")

	output := Synthesize(codeTemplate(), answers, "")

	want := "\n## Task Description\nBuild a CLI\n\n## Requirements\nFast startup\n\n"
	if !strings.Contains(output, want) {
		t.Errorf("section block mismatch.\nwant substring %q\ngot:\n%q", want, output)
	}
}

func TestSynthesizeGenericFallback(t *testing.T) {
	tmpl := &models.Template{
		ID:   "custom-x",
		Name: "Custom",
		Questions: []models.Question{
			{ID: "foo", Type: models.QuestionText, Label: "Foo"},
		},
	}
	answers := models.NewAnswerSet()
	answers.Set("foo", "bar")

	output := Synthesize(tmpl, answers, "")
	want := "# AI Tool Prompt\n\nFoo: bar\n"
	if output != want {
		t.Errorf("generic fallback mismatch.\nwant %q\ngot  %q", want, output)
	}
}

func TestSynthesizeGenericSkipsUnknownKeys(t *testing.T) {
	tmpl := &models.Template{
		ID: "custom-x",
		Questions: []models.Question{
			{ID: "foo", Type: models.QuestionText, Label: "Foo"},
		},
	}
	answers := models.NewAnswerSet()
	answers.Set("stale-key", "leftover")
	answers.Set("foo", "bar")

	output := Synthesize(tmpl, answers, "")
	if strings.Contains(output, "leftover") {
		t.Errorf("answer without a schema question leaked into output:\n%s", output)
	}
}

func TestSynthesizeGenericFormatting(t *testing.T) {
	tmpl := &models.Template{
		ID: "custom-x",
		Questions: []models.Question{
			{ID: "wants-music", Type: models.QuestionCheckbox, Label: "Background Music"},
			{ID: "moods", Type: models.QuestionCheckbox, Label: "Moods",
				Options: []models.Option{{Value: "calm", Label: "Calm"}, {Value: "epic", Label: "Epic"}}},
			{ID: "intensity", Type: models.QuestionSlider, Label: "Intensity"},
		},
	}
	answers := models.NewAnswerSet()
	answers.Set("wants-music", true)
	answers.Set("moods", []string{"calm", "epic"})
	answers.Set("intensity", float64(0))

	output := Synthesize(tmpl, answers, "")

	if !strings.Contains(output, "Background Music: Yes\n") {
		t.Errorf("boolean must render as Yes, got:\n%s", output)
	}
	if !strings.Contains(output, "Moods: calm, epic\n") {
		t.Errorf("sequence must render comma-joined, got:\n%s", output)
	}
	// Zero is a legitimate slider answer and must not be suppressed
	if !strings.Contains(output, "Intensity: 0\n") {
		t.Errorf("numeric zero must be emitted, got:\n%s", output)
	}
}

func TestSynthesizeGenericPreservesEntryOrder(t *testing.T) {
	tmpl := &models.Template{
		ID: "custom-x",
		Questions: []models.Question{
			{ID: "a", Type: models.QuestionText, Label: "A"},
			{ID: "b", Type: models.QuestionText, Label: "B"},
		},
	}
	answers := models.NewAnswerSet()
	answers.Set("b", "second question, first answer")
	answers.Set("a", "first question, second answer")

	output := Synthesize(tmpl, answers, "")
	bIdx := strings.Index(output, "B:")
	aIdx := strings.Index(output, "A:")
	if bIdx == -1 || aIdx == -1 || bIdx > aIdx {
		t.Errorf("generic output must follow answer entry order, got:\n%s", output)
	}
}

func TestSynthesizeInitialTextPrefix(t *testing.T) {
	templates := []*models.Template{
		{ID: TemplateCodeGeneration},
		{ID: TemplateContentCreation},
		{ID: TemplateImageGeneration},
		{ID: TemplateTextToVideo},
		{ID: "custom-x"},
	}

	for _, tmpl := range templates {
		output := Synthesize(tmpl, models.NewAnswerSet(), "Context here")
		if !strings.HasPrefix(output, "Context here\n\n") {
			t.Errorf("template %s: initial text prefix missing, got:\n%q", tmpl.ID, output)
		}
	}
}

func TestSynthesizePresenceGating(t *testing.T) {
	tmpl := &models.Template{
		ID: TemplateContentCreation,
	}
	answers := models.NewAnswerSet()
	answers.Set("content-type", "")
	answers.Set("tone", "Casual")

	output := Synthesize(tmpl, answers, "")
	if strings.Contains(output, "Content Type:") {
		t.Errorf("empty string answer must be omitted:\n%s", output)
	}
	if !strings.Contains(output, "Tone: Casual\n") {
		t.Errorf("expected Tone line, got:\n%s", output)
	}
}

func TestSynthesizeAllCategories(t *testing.T) {
	tests := []struct {
		templateID string
		key        string
		want       string
		heading    string
	}{
		{TemplateContentCreation, "content-type", "Content Type: Blog Post\n", "# Content Creation Request"},
		{TemplateImageGeneration, "image-subject", "Subject: Blog Post\n", "# Image Generation Request"},
		{TemplateTextToVideo, "video-concept", "Concept: Blog Post\n", "# Text-to-Video Generation Request"},
	}

	for _, tt := range tests {
		answers := models.NewAnswerSet()
		answers.Set(tt.key, "Blog Post")
		output := Synthesize(&models.Template{ID: tt.templateID}, answers, "")

		if !strings.HasPrefix(output, tt.heading+"\n\n") {
			t.Errorf("%s: wrong heading, got:\n%s", tt.templateID, output)
		}
		if !strings.Contains(output, tt.want) {
			t.Errorf("%s: missing %q in:\n%s", tt.templateID, tt.want, output)
		}
	}
}

func TestSynthesizeNilTemplateUsesGeneric(t *testing.T) {
	output := Synthesize(nil, models.NewAnswerSet(), "")
	if output != "# AI Tool Prompt\n\n" {
		t.Errorf("nil template must fall back to the generic heading, got %q", output)
	}
}

func TestSynthesizeJSONWrapsPrompt(t *testing.T) {
	answers := models.NewAnswerSet()
	answers.Set("programming-language", "Go")

	out, err := SynthesizeJSON(codeTemplate(), answers, "")
	if err != nil {
		t.Fatalf("SynthesizeJSON failed: %v", err)
	}
	if !strings.Contains(out, `"role": "user"`) {
		t.Errorf("expected user role message, got:\n%s", out)
	}
	if !strings.Contains(out, "Language: Go") {
		t.Errorf("expected prompt content in message, got:\n%s", out)
	}
}
