// Package server exposes the equity engine over HTTP and a websocket
// progress stream.
package server

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"

	"github.com/cynthiacxzhang/range-equity-agent/sdk/analysis"
)

// Options configures a Server.
type Options struct {
	Addr string
	// Defaults fill in fields a request leaves zero.
	Defaults Defaults
	Presets  *analysis.PresetBook
	Logger   *log.Logger
	// Clock drives websocket pings and elapsed times; nil uses the real clock.
	Clock quartz.Clock
}

// Defaults are the simulation settings used when a request omits them.
type Defaults struct {
	Iterations int
	ChunkSize  int
	Workers    int
	Players    int
}

// Server serves the JSON API and the websocket endpoint.
type Server struct {
	addr     string
	defaults Defaults
	presets  *analysis.PresetBook
	logger   *log.Logger
	clock    quartz.Clock
	upgrader websocket.Upgrader
	router   chi.Router

	// websocket connections derive from ctx and are tracked by conns;
	// closed stops new ones from being added once Close has begun
	ctx    context.Context
	stop   context.CancelFunc
	mu     sync.Mutex
	closed bool
	conns  sync.WaitGroup
}

// New creates a server. It does not start listening.
func New(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Clock == nil {
		opts.Clock = quartz.NewReal()
	}
	if opts.Presets == nil {
		opts.Presets = analysis.NewPresetBook(nil)
	}
	d := &opts.Defaults
	if d.Iterations <= 0 {
		d.Iterations = 10000
	}
	if d.ChunkSize <= 0 {
		d.ChunkSize = analysis.DefaultChunkSize
	}
	if d.Workers <= 0 {
		d.Workers = 1
	}
	if d.Players <= 0 {
		d.Players = analysis.MinPlayers
	}

	ctx, stop := context.WithCancel(context.Background())
	s := &Server{
		ctx:      ctx,
		stop:     stop,
		addr:     opts.Addr,
		defaults: opts.Defaults,
		presets:  opts.Presets,
		logger:   opts.Logger.WithPrefix("server"),
		clock:    opts.Clock,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// the API is meant for local tools
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/health", s.handleHealth)
	r.Get("/ws", s.handleWebSocket)
	r.Route("/api", func(r chi.Router) {
		r.Get("/presets", s.handlePresets)
		r.Post("/range", s.handleRange)
		r.Post("/equity", s.handleEquity)
		r.Post("/outs", s.handleOuts)
		r.Post("/potodds", s.handlePotOdds)
	})
	return r
}

// Handler returns the HTTP handler, for embedding or tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run listens on the configured address until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting server", "addr", s.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err := srv.Shutdown(shutdownCtx)
		s.Close()
		return err
	}
}

// Close ends every websocket connection and waits for them to finish.
func (s *Server) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	s.stop()
	s.conns.Wait()
}

// track registers a websocket connection, failing once Close has begun.
func (s *Server) track() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	s.conns.Add(1)
	return true
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := s.clock.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("Request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", s.clock.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
