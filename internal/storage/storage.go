// Package storage persists saved prompts as markdown files with YAML
// frontmatter in the library directory. The frontmatter carries the metadata
// and answer snapshot; the body is the generated prompt text itself, so a
// saved prompt stays readable with any text editor.
package storage

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/promptfoundry/prompt-foundry/internal/models"
	"gopkg.in/yaml.v3"
)

// Storage handles all file system operations for the saved prompt library
type Storage struct {
	rootPath string
}

// NewStorage creates a new storage instance. An empty rootPath falls back to
// PROMPT_FOUNDRY_DIR, then ~/.prompt-foundry.
func NewStorage(rootPath string) (*Storage, error) {
	if rootPath == "" {
		rootPath = os.Getenv("PROMPT_FOUNDRY_DIR")
	}
	if rootPath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		rootPath = filepath.Join(homeDir, ".prompt-foundry")
	}

	return &Storage{rootPath: rootPath}, nil
}

// InitLibrary creates the directory structure for a prompt library
func (s *Storage) InitLibrary() error {
	dirs := []string{
		s.rootPath,
		filepath.Join(s.rootPath, "prompts"),
		filepath.Join(s.rootPath, "templates"),
		filepath.Join(s.rootPath, "queue"),
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}

// GetBaseDir returns the root path of the storage
func (s *Storage) GetBaseDir() string {
	return s.rootPath
}

// TemplatesDir returns the directory user-defined templates are read from
func (s *Storage) TemplatesDir() string {
	return filepath.Join(s.rootPath, "templates")
}

// Create persists a new saved prompt. The id must be unique; writing over an
// existing saved prompt is refused because saved prompts are immutable.
func (s *Storage) Create(prompt *models.SavedPrompt) error {
	if prompt.ID == "" {
		return fmt.Errorf("saved prompt has no id")
	}

	fullPath := s.promptPath(prompt.ID)
	if _, err := os.Stat(fullPath); err == nil {
		return fmt.Errorf("saved prompt %s already exists", prompt.ID)
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	content, err := serializeSavedPrompt(prompt)
	if err != nil {
		return fmt.Errorf("failed to serialize saved prompt: %w", err)
	}

	if err := os.WriteFile(fullPath, content, 0644); err != nil {
		return fmt.Errorf("failed to write saved prompt file: %w", err)
	}

	prompt.FilePath = fullPath
	return nil
}

// Get loads a single saved prompt by id
func (s *Storage) Get(id string) (*models.SavedPrompt, error) {
	fullPath := s.promptPath(id)

	content, err := os.ReadFile(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("saved prompt %s not found", id)
		}
		return nil, fmt.Errorf("failed to read saved prompt file: %w", err)
	}

	prompt, err := parseSavedPromptFile(content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse saved prompt %s: %w", id, err)
	}

	prompt.FilePath = fullPath
	return prompt, nil
}

// List returns all saved prompts, newest first by creation time
func (s *Storage) List() ([]*models.SavedPrompt, error) {
	promptsDir := filepath.Join(s.rootPath, "prompts")
	if _, err := os.Stat(promptsDir); os.IsNotExist(err) {
		return []*models.SavedPrompt{}, nil
	}

	var prompts []*models.SavedPrompt
	err := filepath.Walk(promptsDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if !info.IsDir() && strings.HasSuffix(path, ".md") {
			content, err := os.ReadFile(path)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to read saved prompt %s: %v\n", path, err)
				return nil
			}
			prompt, err := parseSavedPromptFile(content)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to parse saved prompt %s: %v\n", path, err)
				return nil
			}
			prompt.FilePath = path
			prompts = append(prompts, prompt)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(prompts, func(i, j int) bool {
		return prompts[i].CreatedAt.After(prompts[j].CreatedAt)
	})

	return prompts, nil
}

// Delete removes a saved prompt by id. Deleting an id that does not exist is
// not an error.
func (s *Storage) Delete(id string) error {
	fullPath := s.promptPath(id)

	if err := os.Remove(fullPath); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to delete saved prompt: %w", err)
	}

	return nil
}

func (s *Storage) promptPath(id string) string {
	return filepath.Join(s.rootPath, "prompts", id+".md")
}

// Helper functions

func parseSavedPromptFile(content []byte) (*models.SavedPrompt, error) {
	scanner := bufio.NewScanner(bytes.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	// Check for frontmatter delimiter
	if !scanner.Scan() || scanner.Text() != "---" {
		return nil, fmt.Errorf("missing frontmatter delimiter")
	}

	// Read frontmatter
	var frontmatterLines []string
	for scanner.Scan() {
		line := scanner.Text()
		if line == "---" {
			break
		}
		frontmatterLines = append(frontmatterLines, line)
	}

	// Parse YAML frontmatter
	frontmatter := strings.Join(frontmatterLines, "\n")
	var prompt models.SavedPrompt
	if err := yaml.Unmarshal([]byte(frontmatter), &prompt); err != nil {
		return nil, fmt.Errorf("failed to parse frontmatter: %w", err)
	}

	// Read remaining content
	var contentLines []string
	for scanner.Scan() {
		contentLines = append(contentLines, scanner.Text())
	}
	prompt.Prompt = strings.Join(contentLines, "\n")
	// Trim only the blank separator line after the frontmatter
	prompt.Prompt = strings.TrimLeft(prompt.Prompt, "\n")
	// Serialization guarantees a trailing newline; restore it so the stored
	// prompt text round-trips byte for byte
	if prompt.Prompt != "" {
		prompt.Prompt += "\n"
	}

	return &prompt, nil
}

func serializeSavedPrompt(prompt *models.SavedPrompt) ([]byte, error) {
	var buf bytes.Buffer

	// Write frontmatter delimiter
	buf.WriteString("---\n")

	// Serialize metadata to YAML
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(prompt); err != nil {
		return nil, fmt.Errorf("failed to encode frontmatter: %w", err)
	}

	// Write closing delimiter
	buf.WriteString("---\n")

	// Write prompt text with proper spacing
	if prompt.Prompt != "" {
		buf.WriteString("\n")
		buf.WriteString(prompt.Prompt)
		// Ensure file ends with newline
		if !strings.HasSuffix(prompt.Prompt, "\n") {
			buf.WriteString("\n")
		}
	}

	return buf.Bytes(), nil
}
