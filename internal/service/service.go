// Package service provides the business logic for prompt generation: it owns
// the template catalog, the active questionnaire session, the saved prompt
// library, and the offline sync queue, and exposes the operations the TUI,
// CLI and HTTP API are built on.
package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/promptfoundry/prompt-foundry/internal/catalog"
	"github.com/promptfoundry/prompt-foundry/internal/clipboard"
	"github.com/promptfoundry/prompt-foundry/internal/models"
	"github.com/promptfoundry/prompt-foundry/internal/session"
	"github.com/promptfoundry/prompt-foundry/internal/storage"
	"github.com/promptfoundry/prompt-foundry/internal/syncq"
	"github.com/promptfoundry/prompt-foundry/internal/synthesizer"
	"github.com/sahilm/fuzzy"
)

// SyncFunc delivers one queued entry to the remote side. The default does
// nothing but report success; a real transport can be plugged in without
// touching the queue semantics.
type SyncFunc func(entry syncq.Entry) error

// Service provides business logic for prompt generation and the saved
// prompt library
type Service struct {
	catalog *catalog.Catalog
	storage *storage.Storage
	queue   *syncq.Queue
	monitor *syncq.Monitor
	session *session.Session
	syncFn  SyncFunc
}

// NewService creates a service rooted at the given library directory. An
// empty rootPath falls back to PROMPT_FOUNDRY_DIR and then the home library.
func NewService(rootPath string) (*Service, error) {
	store, err := storage.NewStorage(rootPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	cat, err := catalog.LoadWithUserTemplates(store.TemplatesDir())
	if err != nil {
		return nil, fmt.Errorf("failed to load template catalog: %w", err)
	}

	svc := &Service{
		catalog: cat,
		storage: store,
		queue:   syncq.NewQueue(store.GetBaseDir()),
		monitor: syncq.NewMonitor(),
		session: session.New(),
		syncFn: func(entry syncq.Entry) error {
			// No remote transport is configured; draining the queue marks
			// the entry as reconciled.
			return nil
		},
	}

	return svc, nil
}

// SetMonitor replaces the connectivity monitor, used by --offline and tests
func (s *Service) SetMonitor(m *syncq.Monitor) {
	s.monitor = m
}

// SetSyncFunc replaces the queue delivery function
func (s *Service) SetSyncFunc(fn SyncFunc) {
	s.syncFn = fn
}

// InitLibrary initializes the prompt library directory structure
func (s *Service) InitLibrary() error {
	return s.storage.InitLibrary()
}

// BaseDir returns the library root directory
func (s *Service) BaseDir() string {
	return s.storage.GetBaseDir()
}

// Templates returns the catalog in its fixed order
func (s *Service) Templates() []*models.Template {
	return s.catalog.Templates()
}

// Template returns one template by id
func (s *Service) Template(id string) (*models.Template, error) {
	tmpl, ok := s.catalog.Get(id)
	if !ok {
		return nil, fmt.Errorf("template not found: %s", id)
	}
	return tmpl, nil
}

// Session returns the active questionnaire session
func (s *Service) Session() *session.Session {
	return s.session
}

// StartSession activates a template, discarding any previous answers
func (s *Service) StartSession(templateID string) (*models.Template, error) {
	tmpl, err := s.Template(templateID)
	if err != nil {
		return nil, err
	}
	s.session.Start(tmpl)
	return tmpl, nil
}

// EndSession discards the active session without saving anything
func (s *Service) EndSession() {
	s.session.Reset()
}

// UpdateAnswer overwrites one answer in the active session
func (s *Service) UpdateAnswer(questionID string, value interface{}) error {
	return s.session.UpdateAnswer(questionID, value)
}

// GeneratePrompt synthesizes the document for the active session. It is safe
// to call on every answer change; the output depends only on the current
// session state.
func (s *Service) GeneratePrompt(initialText string) (string, error) {
	if !s.session.Active() {
		return "", fmt.Errorf("no active template")
	}
	return synthesizer.Synthesize(s.session.Template(), s.session.Answers(), initialText), nil
}

// GeneratePromptFor synthesizes a document for explicit inputs, bypassing the
// session. Used by the HTTP API and the headless CLI.
func (s *Service) GeneratePromptFor(templateID string, answers *models.AnswerSet, initialText string) (string, error) {
	tmpl, err := s.Template(templateID)
	if err != nil {
		return "", err
	}
	return synthesizer.Synthesize(tmpl, answers, initialText), nil
}

// SavePrompt persists the active session's generated document as a new saved
// prompt and returns it. When offline, the generated text is also placed on
// the sync queue; the save itself never waits for connectivity.
func (s *Service) SavePrompt(name, initialText string) (*models.SavedPrompt, error) {
	if !s.session.Active() {
		return nil, fmt.Errorf("no active template")
	}

	return s.savePrompt(s.session.Template(), name, s.session.Snapshot(), initialText)
}

// SavePromptFor persists a prompt built from explicit inputs, bypassing the
// session. Used by the HTTP API.
func (s *Service) SavePromptFor(templateID, name string, answers *models.AnswerSet, initialText string) (*models.SavedPrompt, error) {
	tmpl, err := s.Template(templateID)
	if err != nil {
		return nil, err
	}
	return s.savePrompt(tmpl, name, answers.Snapshot(), initialText)
}

func (s *Service) savePrompt(tmpl *models.Template, name string, answers *models.AnswerSet, initialText string) (*models.SavedPrompt, error) {
	text := synthesizer.Synthesize(tmpl, answers, initialText)

	if name == "" {
		name = fmt.Sprintf("%s Prompt %s", tmpl.Name, time.Now().Format("2006-01-02 15:04:05"))
	}

	saved := &models.SavedPrompt{
		ID:         uuid.New().String(),
		TemplateID: tmpl.ID,
		Name:       name,
		Answers:    answers,
		CreatedAt:  time.Now(),
		Prompt:     text,
	}

	if err := s.storage.Create(saved); err != nil {
		return nil, fmt.Errorf("failed to save prompt: %w", err)
	}

	if !s.monitor.IsOnline() {
		if err := s.queue.Enqueue(saved.ID, text); err != nil {
			// The local save succeeded; a queue failure must not undo it
			log.Printf("Warning: failed to queue prompt for sync: %v", err)
		}
	}

	return saved, nil
}

// ListSaved returns all saved prompts, newest first
func (s *Service) ListSaved() ([]*models.SavedPrompt, error) {
	return s.storage.List()
}

// GetSaved returns one saved prompt by id
func (s *Service) GetSaved(id string) (*models.SavedPrompt, error) {
	return s.storage.Get(id)
}

// DeleteSaved removes a saved prompt; unknown ids are not an error
func (s *Service) DeleteSaved(id string) error {
	return s.storage.Delete(id)
}

// SearchSaved performs a fuzzy search over saved prompt names and text
func (s *Service) SearchSaved(query string) ([]*models.SavedPrompt, error) {
	prompts, err := s.storage.List()
	if err != nil {
		return nil, err
	}

	if query == "" {
		return prompts, nil
	}

	var searchStrings []string
	for _, p := range prompts {
		searchStr := fmt.Sprintf("%s %s %s", p.Name, p.TemplateID, firstLine(p.Prompt))
		searchStrings = append(searchStrings, searchStr)
	}

	matches := fuzzy.Find(query, searchStrings)

	var results []*models.SavedPrompt
	for _, match := range matches {
		results = append(results, prompts[match.Index])
	}

	return results, nil
}

// CopyPrompt places text on the system clipboard and returns the
// confirmation message to show the user
func (s *Service) CopyPrompt(text string) (string, error) {
	return clipboard.CopyWithFallback(text)
}

// SharePrompt hands a titled text to the platform share route, falling back
// to the clipboard when no share mechanism is available
func (s *Service) SharePrompt(title, text string) (string, error) {
	return clipboard.ShareWithFallback(title, text)
}

// IsOnline reports the last observed connectivity state
func (s *Service) IsOnline() bool {
	return s.monitor.IsOnline()
}

// PendingSync reports whether queued saves are waiting for connectivity
func (s *Service) PendingSync() bool {
	return s.queue.Len() > 0
}

// Monitor returns the connectivity monitor for subscription
func (s *Service) Monitor() *syncq.Monitor {
	return s.monitor
}

// StartSync begins connectivity monitoring and drains the offline queue on
// every transition back online
func (s *Service) StartSync(ctx context.Context, interval time.Duration) {
	s.monitor.Subscribe(func(online bool) {
		if !online {
			return
		}
		n, err := s.queue.Flush(s.syncFn)
		if err != nil {
			log.Printf("Warning: offline queue flush incomplete: %v", err)
			return
		}
		if n > 0 {
			log.Printf("Synced %d queued prompt(s)", n)
		}
	})
	s.monitor.Start(ctx, interval)
}

// FlushQueue drains the offline queue immediately, regardless of monitor state
func (s *Service) FlushQueue() (int, error) {
	return s.queue.Flush(s.syncFn)
}

func firstLine(text string) string {
	if idx := strings.IndexByte(text, '\n'); idx >= 0 {
		return text[:idx]
	}
	return text
}
