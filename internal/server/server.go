// Package server exposes the component registry over HTTP/JSON.
//
// Routing is done with chi. Every response carries permissive CORS headers,
// an X-Request-ID, and is counted in Prometheus when metrics are enabled.
// When tracing is enabled each request gets a server span from the configured
// OpenTelemetry tracer provider, the global one unless WithTracerProvider is
// given.
package server

import (
	"context"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/grokcon/registry-api/internal/config"
	"github.com/grokcon/registry-api/internal/errors"
	"github.com/grokcon/registry-api/internal/logging"
	"github.com/grokcon/registry-api/internal/registry"
)

// ServiceName and ServiceVersion are reported by /health.
const (
	ServiceName    = "GROKcon Component Registry API"
	ServiceVersion = "1.0.0"
)

// Catalog is the read-only query surface served over HTTP. *registry.Store
// satisfies it.
type Catalog interface {
	ListComponents() []registry.Summary
	GetComponent(name string) (registry.ComponentRecord, error)
	Search(params registry.SearchParams) registry.SearchResult
	ListCategories() []string
	ListTags() []string
	SimulateInstall(name string) (registry.InstallResult, error)
	Count() int
}

// Server is the registry HTTP server.
type Server struct {
	config       *config.Config
	catalog      Catalog
	logger       logging.Logger
	errorHandler *errors.ErrorHandler

	registry *prometheus.Registry
	metrics  *httpMetrics

	tracerProvider trace.TracerProvider
	propagator     propagation.TextMapPropagator

	router chi.Router

	httpServer   *http.Server
	serverMutex  sync.RWMutex
	shutdownOnce sync.Once
}

// Option configures a Server.
type Option func(*Server)

// WithMetricsRegistry replaces the private Prometheus registry, mainly so
// tests can inspect what was collected.
func WithMetricsRegistry(reg *prometheus.Registry) Option {
	return func(s *Server) {
		s.registry = reg
	}
}

// WithTracerProvider sets the tracer provider and propagator used when
// tracing is enabled.
func WithTracerProvider(tp trace.TracerProvider, propagator propagation.TextMapPropagator) Option {
	return func(s *Server) {
		s.tracerProvider = tp
		s.propagator = propagator
	}
}

// New builds a server for catalog. A nil logger discards output.
func New(cfg *config.Config, catalog Catalog, logger logging.Logger, opts ...Option) *Server {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = logging.Discard()
	}
	logger = logger.WithComponent("server")

	s := &Server{
		config:       cfg,
		catalog:      catalog,
		logger:       logger,
		errorHandler: errors.NewErrorHandler(logger),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.tracerProvider == nil {
		s.tracerProvider = otel.GetTracerProvider()
	}
	if s.propagator == nil {
		s.propagator = otel.GetTextMapPropagator()
	}

	if cfg.Metrics.Enabled {
		if s.registry == nil {
			s.registry = prometheus.NewRegistry()
			s.registry.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)
		}
		s.metrics = newHTTPMetrics(defaultMetricsConfig(s.registry))
		s.metrics.componentsAvailable.Set(float64(catalog.Count()))
	}

	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(requestIDMiddleware)
	if s.config.Tracing.Enabled {
		r.Use(tracingMiddleware(s.tracerProvider, s.propagator, s.config.Tracing.Name))
	}
	r.Use(corsMiddleware(s.config.Server.AllowedOrigins))
	r.Use(s.loggingMiddleware)
	r.Use(s.recoverMiddleware)

	r.NotFound(s.handleNotFound)
	r.MethodNotAllowed(s.handleMethodNotAllowed)

	r.Get("/components", s.handleListComponents)
	r.Get("/components/{name}", s.handleGetComponent)
	r.Post("/components/{name}/install", s.handleInstall)
	r.Get("/search", s.handleSearch)
	r.Get("/categories", s.handleCategories)
	r.Get("/tags", s.handleTags)
	r.Get("/health", s.handleHealth)

	if s.metrics != nil {
		r.Method(http.MethodGet, s.config.Metrics.Path,
			promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{Registry: s.registry}))
	}

	return r
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start listens on the configured address and serves until ctx is done.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Server.Addr())
	if err != nil {
		return errors.NewInternalError(errors.ErrCodeInternalError, "cannot listen", err).
			WithContext("addr", s.config.Server.Addr())
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is done, then shuts down within
// server.shutdown_timeout.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	s.serverMutex.Lock()
	s.httpServer = srv
	s.serverMutex.Unlock()

	s.logger.Info(ctx, "Registry server listening",
		"addr", ln.Addr().String(),
		"components", s.catalog.Count(),
		"metrics", s.config.Metrics.Enabled,
		"tracing", s.config.Tracing.Enabled)

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Serve(ln)
	}()

	select {
	case err := <-serveErr:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.Server.ShutdownTimeout)
		defer cancel()
		return s.Shutdown(shutdownCtx)
	}
}

// Shutdown gracefully stops the HTTP server. It is safe to call more than
// once; only the first call has an effect.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.logger.Info(ctx, "Shutting down server...")

		s.serverMutex.RLock()
		srv := s.httpServer
		s.serverMutex.RUnlock()

		if srv != nil {
			shutdownErr = srv.Shutdown(ctx)
		}
	})

	return shutdownErr
}
