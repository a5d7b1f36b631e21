package synthesizer

import (
	"encoding/json"
	"fmt"

	"github.com/promptfoundry/prompt-foundry/internal/models"
)

// Message represents a chat message for LLM APIs
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Messages wraps a generated document as a single-turn message array
func Messages(text string) []Message {
	return []Message{
		{
			Role:    "user",
			Content: text,
		},
	}
}

// SynthesizeJSON renders the prompt as a JSON message array for LLM APIs
func SynthesizeJSON(tmpl *models.Template, answers *models.AnswerSet, initialText string) (string, error) {
	text := Synthesize(tmpl, answers, initialText)

	jsonBytes, err := json.MarshalIndent(Messages(text), "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal to JSON: %w", err)
	}

	return string(jsonBytes), nil
}
