// Package server exposes the game over HTTP: a landmark ingest that a
// browser-side estimator posts to, start and restart controls, a JSON
// snapshot, an SSE event stream and a small status page.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/lixenwraith/princess-guard/config"
	"github.com/lixenwraith/princess-guard/engine"
	"github.com/lixenwraith/princess-guard/perception"
	"github.com/lixenwraith/princess-guard/session"
	"github.com/lixenwraith/princess-guard/status"
)

const (
	httpSource = "http"

	maxBodyBytes    = 1 << 20
	requestTimeout  = 15 * time.Second
	shutdownTimeout = 5 * time.Second
	keepAlivePeriod = 25 * time.Second
)

// Game is the part of the session the HTTP API drives
type Game interface {
	Publish(perception.Frame) bool
	Start() error
	Restart() error
	Snapshot() engine.Snapshot
}

// Server routes HTTP requests to the game
type Server struct {
	cfg       config.ServerConfig
	game      Game
	hub       *Broadcaster
	metrics   *status.Registry
	log       *zap.Logger
	router    chi.Router
	keepAlive time.Duration
}

// New builds the router; call Run to listen. A nil metrics registry gets a
// private one.
func New(cfg config.ServerConfig, game Game, hub *Broadcaster, metrics *status.Registry, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	if metrics == nil {
		metrics = status.NewRegistry()
	}
	s := &Server{
		cfg:       cfg,
		game:      game,
		hub:       hub,
		metrics:   metrics,
		log:       log,
		keepAlive: keepAlivePeriod,
	}
	s.router = s.routes()
	return s
}

// Handler returns the root handler
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	// The event stream stays open, so it sits outside the timeout group
	r.Get("/api/events", s.events)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(requestTimeout))
		r.Get("/", s.statusPage)
		r.Route("/api", func(r chi.Router) {
			r.Post("/landmarks", s.landmarks)
			r.Post("/start", s.start)
			r.Post("/restart", s.restart)
			r.Get("/state", s.state)
			r.Get("/metrics", s.metricsJSON)
		})
	})
	return r
}

// Run listens until ctx is done, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Listen)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.cfg.Listen, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is done
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		// No WriteTimeout: it would cut the SSE stream
		IdleTimeout: 60 * time.Second,
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("http server listening", zap.String("addr", ln.Addr().String()))
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	s.log.Info("http server stopped")
	return nil
}

// requestLogger logs each request through zap
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		// Landmark posts arrive at camera frame rate
		level := zap.InfoLevel
		if r.URL.Path == "/api/landmarks" && ww.Status() < http.StatusBadRequest {
			level = zap.DebugLevel
		}
		s.log.Log(level, "http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("elapsed", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())))
	})
}

// statusFor maps a control error to a response code
func statusFor(err error) int {
	switch {
	case errors.Is(err, engine.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, engine.ErrNotReady):
		return http.StatusPreconditionFailed
	case errors.Is(err, engine.ErrSchedulerStopped), errors.Is(err, session.ErrNoGame):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
