package models

import (
	"strings"
	"time"
)

// SavedPrompt is a persisted snapshot of a synthesized prompt: the template
// it came from, the generated text, and the answers that produced it. Saved
// prompts are immutable after creation; deletion is the only mutation.
type SavedPrompt struct {
	// Frontmatter fields
	ID         string     `yaml:"id"`
	TemplateID string     `yaml:"template"`
	Name       string     `yaml:"name"`
	Answers    *AnswerSet `yaml:"answers"`
	CreatedAt  time.Time  `yaml:"created_at"`

	// Content fields
	Prompt   string `yaml:"-"` // The generated prompt text after frontmatter
	FilePath string `yaml:"-"` // Path to the file
}

// Implement list.Item interface for bubbles list component

// FilterValue returns the value used for filtering in lists
func (p SavedPrompt) FilterValue() string {
	return cleanString(p.Name)
}

// Title satisfies the list.Item interface
func (p SavedPrompt) Title() string {
	if p.Name != "" {
		return cleanString(p.Name)
	}
	return cleanString(p.ID)
}

// Description satisfies the list.Item interface
func (p SavedPrompt) Description() string {
	var parts []string

	if !p.CreatedAt.IsZero() {
		parts = append(parts, "Created: "+p.CreatedAt.Format("2006-01-02 15:04"))
	}

	if p.TemplateID != "" {
		parts = append(parts, "Template: "+p.TemplateID)
	}

	// First line of the prompt body, truncated
	if p.Prompt != "" {
		preview := cleanString(p.Prompt)
		maxPreviewLength := 60
		if len(preview) > maxPreviewLength {
			preview = preview[:maxPreviewLength-3] + "..."
		}
		if preview != "" {
			parts = append(parts, preview)
		}
	}

	result := strings.Join(parts, " • ")

	// Final truncation so the row never exceeds terminal width
	maxTotalLength := 100
	if len(result) > maxTotalLength {
		result = result[:maxTotalLength-3] + "..."
	}

	return cleanString(result)
}

// cleanString removes control characters that might cause rendering issues
func cleanString(s string) string {
	if s == "" {
		return ""
	}

	cleaned := strings.Map(func(r rune) rune {
		if r == '\n' || r == '\r' || r == '\t' {
			return ' '
		}
		if r < 32 || r == 127 {
			return -1
		}
		return r
	}, s)

	// Collapse multiple spaces
	for strings.Contains(cleaned, "  ") {
		cleaned = strings.ReplaceAll(cleaned, "  ", " ")
	}

	return strings.TrimSpace(cleaned)
}
