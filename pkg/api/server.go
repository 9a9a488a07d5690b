// Package api serves the solver, the renderers and the favorites store over
// HTTP.
//
// Routes:
//
//	GET    /healthz
//	POST   /v1/solve
//	POST   /v1/render
//	GET    /v1/favorites
//	POST   /v1/favorites
//	GET    /v1/favorites/{id}
//	DELETE /v1/favorites/{id}
//
// Errors are JSON objects carrying the machine-readable code from
// [github.com/matzehuels/shelfmount/pkg/errors]:
//
//	{"error": {"code": "UNPARSEABLE_LENGTH", "message": "..."}}
package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/shelfmount/pkg/favorites"
	"github.com/matzehuels/shelfmount/pkg/fixture"
	"github.com/matzehuels/shelfmount/pkg/pipeline"
)

// Server holds the collaborators shared by all handlers.
type Server struct {
	geometry fixture.Geometry
	base     fixture.Spacing
	defaults pipeline.Options
	runner   *pipeline.Runner
	store    favorites.Store
	logger   *log.Logger
	router   chi.Router
}

// Option configures a [Server].
type Option func(*Server)

// WithGeometry sets the fixture geometry every request is solved against.
func WithGeometry(g fixture.Geometry) Option { return func(s *Server) { s.geometry = g } }

// WithBaseSpacing sets the spacing that request fields are applied over.
func WithBaseSpacing(sp fixture.Spacing) Option { return func(s *Server) { s.base = sp } }

// WithDefaults sets render defaults (policy, depth mode, viewport) for
// fields a request leaves empty.
func WithDefaults(o pipeline.Options) Option {
	return func(s *Server) {
		s.defaults = pipeline.Options{
			Policy:       o.Policy,
			DepthMode:    o.DepthMode,
			Label:        o.Label,
			View:         o.View,
			Width:        o.Width,
			Height:       o.Height,
			Padding:      o.Padding,
			ShelfOpacity: o.ShelfOpacity,
			Scale:        o.Scale,
		}
	}
}

// WithRunner sets the pipeline runner, and with it the artifact cache.
func WithRunner(r *pipeline.Runner) Option { return func(s *Server) { s.runner = r } }

// WithStore enables the favorites routes.
func WithStore(st favorites.Store) Option { return func(s *Server) { s.store = st } }

// WithLogger sets the request logger.
func WithLogger(l *log.Logger) Option { return func(s *Server) { s.logger = l } }

// New builds a server. Without options it solves against
// [fixture.Default], caches nothing and answers favorites routes with
// UNSUPPORTED.
func New(opts ...Option) *Server {
	s := &Server{
		geometry: fixture.Default(),
		base:     fixture.DefaultSpacingInput(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if s.runner == nil {
		s.runner = pipeline.NewRunner(nil, nil, s.logger)
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/solve", s.handleSolve)
		r.Post("/render", s.handleRender)
		r.Route("/favorites", func(r chi.Router) {
			r.Get("/", s.handleListFavorites)
			r.Post("/", s.handleSaveFavorite)
			r.Get("/{id}", s.handleGetFavorite)
			r.Delete("/{id}", s.handleDeleteFavorite)
		})
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, errNotFound(r.URL.Path))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, errMethod(r.Method, r.URL.Path))
	})
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenConfig holds the HTTP server settings.
type ListenConfig struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// ListenAndServe serves h until ctx is cancelled, then shuts down
// gracefully.
func ListenAndServe(ctx context.Context, cfg ListenConfig, h http.Handler, logger *log.Logger) error {
	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      h,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", cfg.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
