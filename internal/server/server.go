// Package server exposes live visualizations over HTTP.
//
// Every session holds one visualization of the loaded network. Clients
// create a session, post input events to it and fetch the resulting frame:
//
//	POST   /sessions                  create a session
//	GET    /sessions/{id}/frame.png   current frame as PNG
//	GET    /sessions/{id}/frame.svg   current frame as SVG
//	POST   /sessions/{id}/events      apply a JSON array of events
//	GET    /sessions/{id}/state       selection, highlight and transform
//	DELETE /sessions/{id}             drop the session
//	GET    /metrics                   Prometheus metrics, when enabled
//
// Requests for one session are serialized by the session lock. SetNetwork
// swaps the network for sessions created afterwards; live sessions keep
// the network they were created with.
package server

import (
	"context"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/netcanvas/pkg/metrics"
	"github.com/matzehuels/netcanvas/pkg/network"
	"github.com/matzehuels/netcanvas/pkg/session"
	"github.com/matzehuels/netcanvas/pkg/viz"
)

const (
	maxEventBody    = 1 << 20
	shutdownTimeout = 10 * time.Second
	janitorInterval = time.Minute
)

// Config configures a Server.
type Config struct {
	Addr          string
	Width, Height int
	Options       viz.Options
	Tolerance     float64
	SessionTTL    time.Duration
	Logger        *log.Logger

	// Metrics, when set, is served on /metrics and records every request.
	Metrics *metrics.Registry
}

// Server serves visualizations of one network.
type Server struct {
	mu     sync.RWMutex
	net    *network.Network
	cfg    Config
	store  *session.MemoryStore
	logger *log.Logger
	router chi.Router
}

// New returns a server for net.
func New(net *network.Network, cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	s := &Server{
		net:    net,
		cfg:    cfg,
		store:  session.NewMemoryStore(cfg.SessionTTL),
		logger: cfg.Logger,
	}
	s.router = s.routes()
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// Network returns the network new sessions are created from.
func (s *Server) Network() *network.Network {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.net
}

// SetNetwork replaces the network for sessions created from now on.
func (s *Server) SetNetwork(net *network.Network) {
	s.mu.Lock()
	s.net = net
	s.mu.Unlock()
	s.logger.Info("network replaced", "nodes", len(net.Nodes), "links", len(net.Links))
}

// Sessions returns the session store.
func (s *Server) Sessions() session.Store { return s.store }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)
	if s.cfg.Metrics != nil {
		r.Use(s.recordRequests)
		r.Method(http.MethodGet, "/metrics", s.cfg.Metrics.Handler())
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/network", s.handleNetwork)

	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", s.handleCreate)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/frame.png", s.handleFramePNG)
			r.Get("/frame.svg", s.handleFrameSVG)
			r.Post("/events", s.handleEvents)
			r.Get("/state", s.handleState)
			r.Delete("/", s.handleDelete)
		})
	})
	return r
}

// Run serves on the configured address until ctx is canceled, then shuts
// down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go s.store.Janitor(ctx, janitorInterval, func(n int) {
		s.logger.Info("expired sessions removed", "count", n)
		if s.cfg.Metrics != nil {
			s.cfg.Metrics.SessionsActive.Set(float64(s.store.Len()))
		}
	})

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, stop := context.WithTimeout(context.Background(), shutdownTimeout)
	defer stop()
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

func (s *Server) recordRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		s.cfg.Metrics.RecordHTTPRequest(r.Method, route, status, time.Since(start))
		s.cfg.Metrics.SessionsActive.Set(float64(s.store.Len()))
	})
}
