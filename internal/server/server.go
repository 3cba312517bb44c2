// internal/server/server.go

// Package server exposes loaded reference sequences over HTTP for
// per-position STR queries.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
)

// Server is a thin wrapper over chi + the stdlib http.Server.
type Server struct {
	idx *Index
	log zerolog.Logger
	srv *http.Server
}

// New wires routes and middleware over a loaded index.
func New(idx *Index, listen string, corsOrigins []string, log zerolog.Logger) *Server {
	s := &Server{idx: idx, log: log}

	r := chi.NewRouter()
	r.Use(withRequestID)
	r.Use(accessLog(log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: corsOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
	}))

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/references", s.handleListReferences)
		r.Get("/references/{id}/sites", s.handleSiteRange)
		r.Get("/references/{id}/sites/{position}", s.handleSiteAt)
	})

	s.srv = &http.Server{
		Addr:              listen,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the routed handler (used by tests).
func (s *Server) Handler() http.Handler { return s.srv.Handler }

// Run starts the server and blocks until it is shut down or fails.
func (s *Server) Run() error {
	s.log.Info().Str("addr", s.srv.Addr).Int("references", len(s.idx.IDs())).Msg("http listening")
	err := s.srv.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
