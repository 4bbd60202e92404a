package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dgallion1/papergest/internal/config"
	"github.com/dgallion1/papergest/internal/index"
	"github.com/dgallion1/papergest/internal/paper"
	"github.com/dgallion1/papergest/internal/source"
)

// Ingester runs the ingestion pipeline for one descriptor.
type Ingester interface {
	Ingest(ctx context.Context, d source.Descriptor) (*paper.Document, error)
}

// Server is the HTTP API for papergest.
type Server struct {
	router chi.Router
	pipe   Ingester
	idx    *index.Index // optional
	log    *slog.Logger
	cfg    config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(pipe Ingester, idx *index.Index, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		pipe: pipe,
		idx:  idx,
		log:  log,
		cfg:  cfg,
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

	r.Get("/health", s.handleHealth)

	r.Group(func(r chi.Router) {
		if s.cfg.APIKey != "" {
			r.Use(AuthMiddleware(s.cfg.APIKey))
		}
		r.Post("/api/papers", s.handleIngest)
		r.Get("/api/papers", s.handleList)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
