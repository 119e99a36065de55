// Package webserver is the HTTP transport that request handlers attach to.
//
// A Server owns the listener and an ordered handler chain. Every request the
// backend does not serve itself (/health, /metrics) is offered to the chain;
// the first handler whose CanHandle returns true produces the response.
// Unclaimed requests get a 404 JSON error.
//
// Two backends are built in: "chi" (router with the full middleware stack,
// rate limiting and Prometheus metrics) and "std" (plain net/http).
//
//	srv, err := webserver.New(deps)
//	srv.AddHandler(h)
//	srv.Start(ctx)
//	defer srv.Close()
//
// Thread Safety: All methods are safe for concurrent use from multiple goroutines.
package webserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/nerrad567/gray-logic-components/internal/infrastructure/config"
	"github.com/nerrad567/gray-logic-components/internal/infrastructure/logging"
)

// gracefulShutdownTimeout is the maximum time to wait for in-flight requests
// to complete during shutdown.
const gracefulShutdownTimeout = 10 * time.Second

// Deps holds the dependencies required by the web server.
type Deps struct {
	Config   config.WebServerConfig
	Security config.SecurityConfig
	Logger   *logging.Logger
	Gatherer prometheus.Gatherer // optional; enables /metrics on the chi backend
	Version  string
}

// Server is the HTTP transport.
type Server struct {
	cfg      config.WebServerConfig
	secCfg   config.SecurityConfig
	logger   *logging.Logger
	gatherer prometheus.Gatherer
	version  string
	backend  string

	mu       sync.RWMutex
	handlers []Handler
	server   *http.Server
	listener net.Listener
	done     chan struct{}
}

// New creates a web server with the given dependencies.
// An empty backend name selects chi.
//
// The server is not started until Start() is called.
func New(deps Deps) (*Server, error) {
	if deps.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	backend := deps.Config.Backend
	if backend == "" {
		backend = config.BackendChi
	}
	if !IsSupportedBackend(backend) {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedBackend, backend)
	}

	return &Server{
		cfg:      deps.Config,
		secCfg:   deps.Security,
		logger:   deps.Logger,
		gatherer: deps.Gatherer,
		version:  deps.Version,
		backend:  backend,
	}, nil
}

// Backend returns the name of the active backend.
func (s *Server) Backend() string {
	return s.backend
}

// AddHandler appends h to the handler chain. Handlers may be added before or
// after Start; earlier handlers take precedence.
func (s *Server) AddHandler(h Handler) {
	if h == nil {
		return
	}
	s.mu.Lock()
	s.handlers = append(s.handlers, h)
	s.mu.Unlock()
}

// HandlerCount returns the number of handlers in the chain.
func (s *Server) HandlerCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.handlers)
}

// Handler returns the root http.Handler for the active backend. Start serves
// this handler; tests may drive it through httptest directly.
func (s *Server) Handler() http.Handler {
	return s.buildHandler()
}

// Start binds the listener and serves in a background goroutine.
//
// Returns:
//   - error: If the listener cannot be bound (port in use, etc.)
func (s *Server) Start(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.server != nil {
		return nil
	}

	addr := net.JoinHostPort(s.cfg.Host, fmt.Sprintf("%d", s.cfg.Port))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}

	s.listener = ln
	s.done = make(chan struct{})
	s.server = &http.Server{
		Handler:           s.buildHandler(),
		ReadTimeout:       time.Duration(s.cfg.Timeouts.Read) * time.Second,
		ReadHeaderTimeout: time.Duration(s.cfg.Timeouts.Read) * time.Second,
		WriteTimeout:      time.Duration(s.cfg.Timeouts.Write) * time.Second,
		IdleTimeout:       time.Duration(s.cfg.Timeouts.Idle) * time.Second,
	}

	srv, done := s.server, s.done
	go func() {
		defer close(done)
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("web server error", "error", err)
		}
	}()

	s.logger.Info("web server started", "address", ln.Addr().String(), "backend", s.backend)
	return nil
}

// Addr returns the bound listener address, or "" before Start.
func (s *Server) Addr() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Close gracefully shuts down the server, waiting up to 10 seconds for
// in-flight requests.
func (s *Server) Close() error {
	s.mu.Lock()
	srv, done := s.server, s.done
	s.server, s.listener, s.done = nil, nil, nil
	s.mu.Unlock()

	if srv == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
	defer cancel()

	s.logger.Info("web server shutting down")
	err := srv.Shutdown(ctx)
	<-done
	if err != nil {
		return fmt.Errorf("shutting down web server: %w", err)
	}
	return nil
}

// HealthCheck verifies the server has been started.
func (s *Server) HealthCheck(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("webserver health check: %w", ctx.Err())
	default:
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.server == nil {
		return ErrNotStarted
	}
	return nil
}

// dispatch offers the request to the handler chain in order.
func (s *Server) dispatch(w http.ResponseWriter, r *http.Request) {
	req := fromHTTP(r)

	s.mu.RLock()
	handlers := make([]Handler, len(s.handlers))
	copy(handlers, s.handlers)
	s.mu.RUnlock()

	for _, h := range handlers {
		if !h.CanHandle(req) {
			continue
		}
		resp := &httpResponder{w: w}
		h.HandleRequest(req, resp)
		if !resp.sent {
			s.logger.Error("handler returned without responding",
				"method", req.Method,
				"path", req.Path,
				"request_id", req.RequestID,
			)
			writeError(w, http.StatusInternalServerError, ErrCodeInternal, "handler produced no response")
		}
		return
	}

	writeError(w, http.StatusNotFound, ErrCodeNotFound, "no handler for "+req.Path)
}

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"backend": s.backend,
		"version": s.version,
	})
}
