package synthesizer

import (
	"strings"

	"github.com/promptfoundry/prompt-foundry/internal/models"
)

// Template ids with a dedicated synthesis strategy
const (
	TemplateCodeGeneration  = "code-generation"
	TemplateContentCreation = "content-creation"
	TemplateImageGeneration = "image-generation"
	TemplateTextToVideo     = "text-to-video"
)

// strategies maps template ids to their emission plans. Keeping the rule
// lists as ordered data means adding a category never touches the others.
var strategies = map[string]strategy{
	TemplateCodeGeneration: {
		heading: "# Code Generation Request",
		rules: []rule{
			{key: "programming-language", label: "Language"},
			{key: "framework", label: "Framework"},
			{key: "task-description", label: "Task Description", section: true, leadBreak: true},
			{key: "requirements", label: "Requirements", section: true},
			{key: "input-output", label: "Expected Input/Output", section: true},
			{key: "code-style", label: "Code Style Preferences", section: true},
			{key: "additional-context", label: "Additional Context", section: true},
		},
		trailer: codeInstructions,
	},
	TemplateContentCreation: {
		heading: "# Content Creation Request",
		rules: []rule{
			{key: "content-type", label: "Content Type"},
			{key: "target-audience", label: "Target Audience"},
			{key: "tone", label: "Tone"},
			{key: "main-topic", label: "Main Topic", section: true, leadBreak: true},
			{key: "key-points", label: "Key Points to Include", section: true},
			{key: "content-length", label: "Desired Length", section: true},
			{key: "seo-keywords", label: "SEO Keywords", section: true},
			{key: "additional-instructions", label: "Additional Instructions", section: true},
		},
	},
	TemplateImageGeneration: {
		heading: "# Image Generation Request",
		rules: []rule{
			{key: "image-subject", label: "Subject"},
			{key: "image-style", label: "Style"},
			{key: "image-mood", label: "Mood"},
			{key: "color-palette", label: "Color Palette"},
			{key: "detailed-description", label: "Detailed Description", section: true, leadBreak: true},
			{key: "composition", label: "Composition", section: true},
			{key: "lighting", label: "Lighting", section: true},
			{key: "avoid-elements", label: "Elements to Avoid", section: true},
			{key: "reference-images", label: "Reference Images", section: true},
		},
	},
	TemplateTextToVideo: {
		heading: "# Text-to-Video Generation Request",
		rules: []rule{
			{key: "video-concept", label: "Concept"},
			{key: "video-style", label: "Style"},
			{key: "video-duration", label: "Duration"},
			{key: "scene-description", label: "Scene Description", section: true, leadBreak: true},
			{key: "characters", label: "Characters", section: true},
			{key: "camera-movements", label: "Camera Movements", section: true},
			{key: "audio-description", label: "Audio/Music", section: true},
			{key: "transitions", label: "Transitions", section: true},
			{key: "special-effects", label: "Special Effects", section: true},
		},
	},
}

// codeInstructions writes the fixed closing block of the code-generation
// strategy. The two optional bullets are gated on answers that must be
// strictly boolean true.
func codeInstructions(b *strings.Builder, answers *models.AnswerSet) {
	b.WriteString("## Instructions\n")
	b.WriteString("- Please provide well-documented code\n")
	b.WriteString("- Include comments explaining complex logic\n")
	b.WriteString("- Ensure the code is efficient and follows best practices\n")

	if boolAnswer(answers, "include-tests") {
		b.WriteString("- Include unit tests\n")
	}
	if boolAnswer(answers, "include-examples") {
		b.WriteString("- Include usage examples\n")
	}
}
