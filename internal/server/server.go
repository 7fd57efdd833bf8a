// Package server serves the poster form, download endpoints and JSON API.
//
// Routes:
//
//	GET  /                          HTML form
//	GET  /poster.{format}           render and download (query parameters)
//	GET  /preview.png               thumbnail for the form
//	POST /api/posters               render and store for a short handoff
//	GET  /api/posters/{id}.{format} fetch a stored export
//	GET  /api/presets               preset list
//	GET  /healthz                   liveness and build info
//
// Errors are JSON objects {code, message}. Validation codes map to 400,
// NOT_FOUND to 404, UNSUPPORTED to 501 and everything else to 500.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/matzehuels/blobposter/pkg/cache"
	"github.com/matzehuels/blobposter/pkg/observability"
	"github.com/matzehuels/blobposter/pkg/pipeline"
)

// Timeouts for the HTTP server.
const (
	readHeaderTimeout = 5 * time.Second
	renderTimeout     = 60 * time.Second
	shutdownTimeout   = 10 * time.Second
)

// Server renders posters over HTTP.
type Server struct {
	runner  *pipeline.Runner
	exports cache.Cache
	keyer   cache.Keyer
	logger  *log.Logger

	now   func() time.Time
	newID func() string
}

// New creates a server. Exports are stored in exports (a MemoryCache or a
// shared RedisCache); a nil exports cache keeps them in process memory.
func New(runner *pipeline.Runner, exports cache.Cache, logger *log.Logger) *Server {
	if exports == nil {
		exports = cache.NewMemoryCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		runner:  runner,
		exports: exports,
		keyer:   runner.Keyer,
		logger:  logger,
		now:     time.Now,
		newID:   func() string { return uuid.NewString() },
	}
}

// Handler returns the router with all routes and middleware.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(hooksMiddleware)
	r.Use(middleware.Timeout(renderTimeout))

	r.Get("/", s.handleForm)
	r.Get("/poster", s.handlePoster)
	r.Get("/poster.{format}", s.handlePoster)
	r.Get("/preview.png", s.handlePreview)
	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/presets", s.handlePresets)
		r.Post("/posters", s.handleCreateExport)
		r.Get("/posters/{id}.{format}", s.handleGetExport)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, errNotFound("no route for %s", r.URL.Path))
	})
	return r
}

// ListenAndServe runs the HTTP server until the context ends.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	serveErr := make(chan error, 1)
	s.logger.Info("listening", "addr", addr)
	go func() {
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		err := srv.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		s.logger.Info("server stopped")
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}

// hooksMiddleware reports requests to the registered HTTP hooks, keyed by
// the matched route pattern so ids do not explode metric cardinality.
func hooksMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hooks := observability.HTTP()
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		hooks.OnRequest(r.Context(), r.Method, route)
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		hooks.OnResponse(r.Context(), r.Method, route, status, time.Since(start))
	})
}
