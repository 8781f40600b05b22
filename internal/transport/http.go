// Package transport exposes the brand services as a JSON HTTP API.
package transport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"brandsmith/internal/media"
	"brandsmith/internal/services"
)

// Config wires the router.
type Config struct {
	Projects      services.ProjectService
	Conversations services.ConversationService
	Users         UserResolver
	AuthEnabled   bool
	// LocalUserID is the caller of every request when auth is disabled.
	LocalUserID uint
	// Media serves stored moodboards under /media/. Optional.
	Media http.Handler
	// MCP is mounted at /mcp when set.
	MCP    http.Handler
	Logger *slog.Logger
}

// Server holds the HTTP handlers.
type Server struct {
	projects      services.ProjectService
	conversations services.ConversationService
	log           *slog.Logger
}

// NewServer creates the HTTP router with middleware.
func NewServer(cfg Config) *chi.Mux {
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	srv := &Server{projects: cfg.Projects, conversations: cfg.Conversations, log: log}

	auth := LocalUserMiddleware(cfg.LocalUserID)
	if cfg.AuthEnabled {
		auth = AuthMiddleware(cfg.Users)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/health", srv.handleHealth)
	if cfg.Media != nil {
		r.Handle(media.PathPrefix+"*", cfg.Media)
	}
	if cfg.MCP != nil {
		r.Handle("/mcp", cfg.MCP)
		r.Handle("/mcp/*", cfg.MCP)
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(auth)
		r.Get("/projects", srv.listProjects)
		r.Post("/projects", srv.createProject)
		r.Route("/projects/{projectID}", func(r chi.Router) {
			r.Get("/", srv.getProject)
			r.Delete("/", srv.deleteProject)
			r.Put("/phase", srv.setPhase)
			r.Get("/messages", srv.listMessages)
			r.Post("/messages", srv.submitMessage)
			r.Get("/concepts", srv.listConcepts)
			r.Post("/concepts/{conceptID}/select", srv.selectConcept)
			r.Get("/progress", srv.progress)
			r.Get("/toolkit", srv.toolkit)
			r.Get("/toolkit.md", srv.toolkitMarkdown)
		})
	})
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
