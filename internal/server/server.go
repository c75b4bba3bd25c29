// Package server exposes the multiplication engines over HTTP.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"

	"github.com/agbru/nttmul/internal/config"
	apperrors "github.com/agbru/nttmul/internal/errors"
	"github.com/agbru/nttmul/internal/logging"
	"github.com/agbru/nttmul/internal/multiply"
)

// Server serves the multiplication API.
type Server struct {
	factory        multiply.Factory
	cfg            config.AppConfig
	options        multiply.Options
	httpServer     *http.Server
	logger         logging.Logger
	rateLimiter    *RateLimiter
	securityConfig SecurityConfig
	metrics        *Metrics
	timeouts       Timeouts
	// warmBuffers pre-allocates transform buffers before the first request.
	warmBuffers func(maxDigits int)
}

// NewServer builds a server for the engines of factory. cfg supplies the
// port, the default engine and the engine options.
func NewServer(factory multiply.Factory, cfg config.AppConfig, opts ...Option) *Server {
	s := &Server{
		factory:        factory,
		cfg:            cfg,
		options:        cfg.ToOptions().Normalize(),
		logger:         logging.NewLogger(os.Stderr, "server"),
		securityConfig: DefaultSecurityConfig(),
		metrics:        NewMetrics(),
		timeouts:       DefaultServerTimeouts(),
		warmBuffers:    multiply.EnsureBuffersWarmed,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rateLimiter == nil {
		s.rateLimiter = NewRateLimiter(DefaultRateLimiterConfig())
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/multiply", s.wrapWithMiddleware("/multiply", s.handleMultiply))
	mux.HandleFunc("/engines", s.wrapWithMiddleware("/engines", s.handleEngines))
	mux.HandleFunc("/health", s.wrapWithMiddleware("/health", s.handleHealth))
	mux.HandleFunc("/metrics", s.wrapWithMiddleware("/metrics", s.handleMetrics))

	s.httpServer = &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           mux,
		ReadHeaderTimeout: s.timeouts.ReadTimeout,
		ReadTimeout:       s.timeouts.ReadTimeout,
		WriteTimeout:      s.timeouts.WriteTimeout,
		IdleTimeout:       s.timeouts.IdleTimeout,
	}
	return s
}

// Handler returns the routed middleware chain.
func (s *Server) Handler() http.Handler { return s.httpServer.Handler }

// wrapWithMiddleware applies, outermost first: security headers and body
// limit, rate limiting, logging, metrics.
func (s *Server) wrapWithMiddleware(route string, handler http.HandlerFunc) http.HandlerFunc {
	wrapped := s.metricsMiddleware(route, handler)
	wrapped = s.loggingMiddleware(wrapped)
	wrapped = RateLimitMiddleware(s.rateLimiter, wrapped)
	wrapped = SecurityMiddleware(s.securityConfig, wrapped)
	return wrapped
}

// Start serves until ctx is done, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return apperrors.ServerError{Op: "listen", Cause: err}
	}
	return s.Serve(ctx, ln)
}

// Serve is Start on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	defer s.rateLimiter.Stop()
	s.warmBuffers(s.options.MaxDigits)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening",
			logging.String("addr", ln.Addr().String()),
			logging.String("default_engine", s.cfg.Engine),
			logging.Int("max_digits", s.options.MaxDigits))
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("shutdown requested, draining connections")
	case err, ok := <-errCh:
		if ok {
			return apperrors.ServerError{Op: "serve", Cause: err}
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.timeouts.ShutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return apperrors.ServerError{Op: "shutdown", Cause: err}
	}
	s.logger.Info("server stopped")
	return nil
}
