// Package httpapi serves the session catalog as a read-only JSON API.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/jwulff/summit/internal/catalog"
	"github.com/jwulff/summit/internal/logger"
	"github.com/jwulff/summit/internal/source"
)

// Options configures the API.
type Options struct {
	Addr        string
	CORSOrigins []string
	Language    catalog.Language
	SearchDate  bool
}

// Server is a thin wrapper over chi and net/http.
type Server struct {
	addr   string
	router chi.Router
	srv    *http.Server
}

// New builds the router for src.
func New(src *source.Loaded, opt Options) *Server {
	h := &handlers{src: src, lang: opt.Language, searchDate: opt.SearchDate}
	if h.lang != catalog.English {
		h.lang = catalog.Japanese
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(accessLog)
	r.Use(recoverJSON)
	if len(opt.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: opt.CORSOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
			ExposedHeaders: []string{"X-Request-ID"},
			MaxAge:         300,
		}))
	}

	r.Get("/healthz", h.health)
	r.Route("/api", func(r chi.Router) {
		r.Get("/sessions", h.sessions)
		r.Get("/facets", h.facets)
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusNotFound, errors.New("no such route"))
	})

	return &Server{
		addr:   opt.Addr,
		router: r,
		srv: &http.Server{
			Addr:              opt.Addr,
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Handler returns the router.
func (s *Server) Handler() http.Handler { return s.router }

// Addr returns the listening address.
func (s *Server) Addr() string { return s.addr }

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	log := logger.Named("http")
	errc := make(chan error, 1)
	go func() {
		log.Info().Str("addr", s.addr).Msg("http listening")
		err := s.srv.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		errc <- err
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errc
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
