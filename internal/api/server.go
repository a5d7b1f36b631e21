// Package api provides the RESTful HTTP interface for prompt-foundry.
//
// It exposes the template catalog, stateless prompt synthesis, and the saved
// prompt library over a versioned JSON API with a small middleware stack
// (logging, CORS, content type, panic recovery). Synthesis through the API is
// stateless: every request carries the template id and the full answer set,
// so the server never holds questionnaire state between requests.
//
// ENDPOINT STRUCTURE:
// - /api/v1/templates: Template catalog listing and retrieval
// - /api/v1/synthesize: Stateless prompt synthesis
// - /api/v1/prompts: Saved prompt CRUD operations
// - /api/v1/search: Fuzzy search over saved prompts
// - /api/v1/health: System health and sync status
// - /api/docs: Interactive API documentation
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/promptfoundry/prompt-foundry/internal/errors"
	"github.com/promptfoundry/prompt-foundry/internal/models"
	"github.com/promptfoundry/prompt-foundry/internal/service"
	"github.com/promptfoundry/prompt-foundry/internal/synthesizer"
)

// APIServer provides the HTTP API with middleware support
type APIServer struct {
	service      *service.Service
	errorHandler *errors.HTTPErrorHandler
	port         int
	server       *http.Server
	ctx          context.Context
	cancel       context.CancelFunc
}

// NewAPIServer creates a new API server instance
func NewAPIServer(svc *service.Service, port int) *APIServer {
	ctx, cancel := context.WithCancel(context.Background())

	return &APIServer{
		service:      svc,
		errorHandler: errors.NewHTTPErrorHandler(true),
		port:         port,
		ctx:          ctx,
		cancel:       cancel,
	}
}

// Handler returns the fully wired route multiplexer. Exposed separately from
// Start so tests can drive it through httptest.
func (s *APIServer) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/v1/templates", s.withMiddleware(s.handleTemplates))
	mux.HandleFunc("/api/v1/templates/", s.withMiddleware(s.handleTemplateByID))
	mux.HandleFunc("/api/v1/synthesize", s.withMiddleware(s.handleSynthesize))
	mux.HandleFunc("/api/v1/prompts", s.withMiddleware(s.handlePrompts))
	mux.HandleFunc("/api/v1/prompts/", s.withMiddleware(s.handlePromptsWithID))
	mux.HandleFunc("/api/v1/search", s.withMiddleware(s.handleSearch))
	mux.HandleFunc("/api/v1/health", s.withMiddleware(s.handleHealth))

	// OpenAPI documentation
	mux.HandleFunc("/api/docs", s.withMiddleware(s.handleOpenAPI))
	mux.HandleFunc("/api/openapi.json", s.withMiddleware(s.handleOpenAPISpec))

	return mux
}

// Start begins serving HTTP requests with middleware
func (s *APIServer) Start() error {
	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Connectivity monitoring drains the offline queue whenever the
	// connection comes back
	s.service.StartSync(s.ctx, 30*time.Second)

	log.Printf("API server starting on http://localhost:%d", s.port)
	log.Printf("OpenAPI documentation: http://localhost:%d/api/docs", s.port)

	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server
func (s *APIServer) Stop(ctx context.Context) error {
	s.cancel()
	return s.server.Shutdown(ctx)
}

// withMiddleware applies middleware to HTTP handlers
func (s *APIServer) withMiddleware(handler http.HandlerFunc) http.HandlerFunc {
	return s.loggingMiddleware(
		s.corsMiddleware(
			s.contentTypeMiddleware(
				s.errorMiddleware(handler),
			),
		),
	)
}

// loggingMiddleware logs HTTP requests
func (s *APIServer) loggingMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next(w, r)
		duration := time.Since(start)
		log.Printf("[%s] %s %s - %v", r.Method, r.URL.Path, r.RemoteAddr, duration)
	}
}

// corsMiddleware handles CORS headers
func (s *APIServer) corsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Max-Age", "86400")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next(w, r)
	}
}

// contentTypeMiddleware sets default content type
func (s *APIServer) contentTypeMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next(w, r)
	}
}

// errorMiddleware handles panics and errors
func (s *APIServer) errorMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				log.Printf("Panic in handler: %v", err)
				appErr := errors.InternalError("Internal server error")
				s.errorHandler.WriteHTTPError(w, appErr)
			}
		}()
		next(w, r)
	}
}

// APIResponse represents a standardized API response
type APIResponse struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data,omitempty"`
	Message   string      `json:"message,omitempty"`
	Error     interface{} `json:"error,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// writeResponse writes a standardized JSON response
func (s *APIServer) writeResponse(w http.ResponseWriter, data interface{}, message string, statusCode int) {
	response := APIResponse{
		Success:   statusCode < 400,
		Data:      data,
		Message:   message,
		Timestamp: time.Now(),
	}

	w.WriteHeader(statusCode)

	jsonData, err := json.MarshalIndent(response, "", "  ")
	if err != nil {
		json.NewEncoder(w).Encode(response)
		return
	}

	w.Write(jsonData)
}

// writeError writes an error response using the error handler
func (s *APIServer) writeError(w http.ResponseWriter, err error) {
	s.errorHandler.WriteHTTPError(w, err)
}

func methodNotAllowed() *errors.AppError {
	return errors.NewAppError(errors.ErrCodeInvalidInput, "Method not allowed")
}

// handleTemplates handles GET /api/v1/templates
func (s *APIServer) handleTemplates(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		s.writeError(w, methodNotAllowed())
		return
	}

	templates := s.service.Templates()
	s.writeResponse(w, templates, fmt.Sprintf("Found %d templates", len(templates)), http.StatusOK)
}

// handleTemplateByID handles GET /api/v1/templates/{id}
func (s *APIServer) handleTemplateByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		s.writeError(w, methodNotAllowed())
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/v1/templates/")
	if id == "" {
		s.writeError(w, errors.ValidationError("Template ID is required"))
		return
	}

	tmpl, err := s.service.Template(id)
	if err != nil {
		s.writeError(w, errors.NotFoundError("template "+id))
		return
	}

	s.writeResponse(w, tmpl, "", http.StatusOK)
}

// SynthesizeRequest is the request body for POST /api/v1/synthesize
type SynthesizeRequest struct {
	Template    string            `json:"template"`
	Answers     *models.AnswerSet `json:"answers"`
	InitialText string            `json:"initialText,omitempty"`
	Format      string            `json:"format,omitempty"`
}

// SynthesizeResponse carries the generated document
type SynthesizeResponse struct {
	Template string `json:"template"`
	Prompt   string `json:"prompt"`
}

// handleSynthesize handles POST /api/v1/synthesize. The answers object keeps
// its JSON key order, which drives the output for templates without a
// dedicated strategy.
func (s *APIServer) handleSynthesize(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		s.writeError(w, methodNotAllowed())
		return
	}

	var req SynthesizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, errors.ValidationError("Invalid JSON body: "+err.Error()))
		return
	}
	if req.Template == "" {
		s.writeError(w, errors.ValidationError("Field 'template' is required"))
		return
	}
	if req.Answers == nil {
		req.Answers = models.NewAnswerSet()
	}

	text, err := s.service.GeneratePromptFor(req.Template, req.Answers, req.InitialText)
	if err != nil {
		s.writeError(w, errors.NotFoundError("template "+req.Template))
		return
	}

	if req.Format == "messages" {
		s.writeResponse(w, synthesizer.Messages(text), "", http.StatusOK)
		return
	}

	s.writeResponse(w, SynthesizeResponse{Template: req.Template, Prompt: text}, "", http.StatusOK)
}

// handlePrompts handles /api/v1/prompts
func (s *APIServer) handlePrompts(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case "GET":
		s.handleListPrompts(w, r)
	case "POST":
		s.handleCreatePrompt(w, r)
	default:
		s.writeError(w, methodNotAllowed())
	}
}

// handlePromptsWithID handles /api/v1/prompts/{id}
func (s *APIServer) handlePromptsWithID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/v1/prompts/")
	if id == "" {
		s.writeError(w, errors.ValidationError("Prompt ID is required"))
		return
	}

	switch r.Method {
	case "GET":
		s.handleGetPrompt(w, r, id)
	case "DELETE":
		s.handleDeletePrompt(w, r, id)
	default:
		s.writeError(w, methodNotAllowed())
	}
}

// handleListPrompts handles GET /api/v1/prompts
func (s *APIServer) handleListPrompts(w http.ResponseWriter, r *http.Request) {
	prompts, err := s.service.ListSaved()
	if err != nil {
		s.writeError(w, errors.StorageError("list prompts", err))
		return
	}

	if tmpl := r.URL.Query().Get("template"); tmpl != "" {
		filtered := prompts[:0]
		for _, p := range prompts {
			if p.TemplateID == tmpl {
				filtered = append(filtered, p)
			}
		}
		prompts = filtered
	}

	s.writeResponse(w, prompts, fmt.Sprintf("Found %d prompts", len(prompts)), http.StatusOK)
}

// CreatePromptRequest is the request body for POST /api/v1/prompts
type CreatePromptRequest struct {
	Template    string            `json:"template"`
	Name        string            `json:"name,omitempty"`
	Answers     *models.AnswerSet `json:"answers"`
	InitialText string            `json:"initialText,omitempty"`
}

// handleCreatePrompt handles POST /api/v1/prompts
func (s *APIServer) handleCreatePrompt(w http.ResponseWriter, r *http.Request) {
	var req CreatePromptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, errors.ValidationError("Invalid JSON body: "+err.Error()))
		return
	}
	if req.Template == "" {
		s.writeError(w, errors.ValidationError("Field 'template' is required"))
		return
	}
	if req.Answers == nil {
		req.Answers = models.NewAnswerSet()
	}

	saved, err := s.service.SavePromptFor(req.Template, req.Name, req.Answers, req.InitialText)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			s.writeError(w, errors.NotFoundError("template "+req.Template))
		} else {
			s.writeError(w, errors.StorageError("save prompt", err))
		}
		return
	}

	s.writeResponse(w, saved, "Prompt saved", http.StatusCreated)
}

// handleGetPrompt handles GET /api/v1/prompts/{id}
func (s *APIServer) handleGetPrompt(w http.ResponseWriter, r *http.Request, id string) {
	prompt, err := s.service.GetSaved(id)
	if err != nil {
		s.writeError(w, errors.NotFoundError("prompt "+id))
		return
	}

	s.writeResponse(w, prompt, "", http.StatusOK)
}

// handleDeletePrompt handles DELETE /api/v1/prompts/{id}
func (s *APIServer) handleDeletePrompt(w http.ResponseWriter, r *http.Request, id string) {
	if err := s.service.DeleteSaved(id); err != nil {
		s.writeError(w, errors.StorageError("delete prompt", err))
		return
	}

	s.writeResponse(w, nil, "Prompt deleted", http.StatusOK)
}

// handleSearch handles GET /api/v1/search
func (s *APIServer) handleSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		s.writeError(w, methodNotAllowed())
		return
	}

	query := r.URL.Query().Get("q")
	if query == "" {
		s.writeError(w, errors.ValidationError("Search query 'q' parameter is required"))
		return
	}

	results, err := s.service.SearchSaved(query)
	if err != nil {
		s.writeError(w, errors.StorageError("search prompts", err))
		return
	}

	s.writeResponse(w, results, fmt.Sprintf("Found %d matches", len(results)), http.StatusOK)
}

// handleHealth handles GET /api/v1/health
func (s *APIServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		s.writeError(w, methodNotAllowed())
		return
	}

	health := map[string]interface{}{
		"status":      "ok",
		"templates":   len(s.service.Templates()),
		"online":      s.service.IsOnline(),
		"pendingSync": s.service.PendingSync(),
	}

	s.writeResponse(w, health, "", http.StatusOK)
}
