// Package api exposes the engine over HTTP.
package api

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"queuecalc/internal/queueing"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

// MaxBatchSize caps the number of requests accepted by POST /api/batch.
const MaxBatchSize = 1000

// Options configures a Server.
type Options struct {
	Version      string
	CORSOrigin   string
	BatchWorkers int
	// Registry receives the solve metrics and backs /metrics. Nil means a
	// fresh registry.
	Registry *prometheus.Registry
}

// Server routes HTTP requests to the engine.
type Server struct {
	engine  *queueing.Engine
	opts    Options
	metrics *metrics
	router  *mux.Router
}

// New builds a server with all routes registered.
func New(engine *queueing.Engine, opts Options) *Server {
	if opts.Registry == nil {
		opts.Registry = prometheus.NewRegistry()
	}
	s := &Server{
		engine:  engine,
		opts:    opts,
		metrics: newMetrics(opts.Registry),
		router:  mux.NewRouter(),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	r := s.router
	r.Use(requestID, accessLog, cors(s.opts.CORSOrigin))

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/models", s.handleModels).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/calculate", s.handleCalculate).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/calculate/{model}", s.handleCalculateModel).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/batch", s.handleBatch).Methods(http.MethodPost, http.MethodOptions)

	r.Handle("/metrics", promhttp.HandlerFor(s.opts.Registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Run listens on addr until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	log.Info().Str("addr", ln.Addr().String()).Msg("HTTP server listening")

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("Shutting down HTTP server gracefully")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	log.Info().Msg("HTTP server stopped")
	return nil
}
