// Package api exposes the context-assembly engine over HTTP for the
// generation pipeline and its UI collaborators.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dgallion1/orgcontext/internal/assemble"
	"github.com/dgallion1/orgcontext/internal/config"
)

// Server is the HTTP API server for orgcontext.
type Server struct {
	router    chi.Router
	assembler *assemble.Assembler
	log       *slog.Logger
	cfg       config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(assembler *assemble.Assembler, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		assembler: assembler,
		log:       log,
		cfg:       cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	// Authenticated endpoints.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.APIKey, s.log))

		r.Post("/api/context", s.handleAssemble)
		r.Get("/api/units", s.handleListUnits)
		r.Get("/api/tree", s.handleTree)
		r.Get("/api/coverage", s.handleCoverage)
		r.Get("/api/stats", s.handleStats)
		r.Post("/api/reload", s.handleReload)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
