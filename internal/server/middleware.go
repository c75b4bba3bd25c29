package server

import (
	"net/http"
	"time"

	"github.com/agbru/nttmul/internal/logging"
)

// loggingMiddleware logs each request with its duration.
func (s *Server) loggingMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next(w, r)
		s.logger.Info("request served",
			logging.String("method", r.Method),
			logging.String("path", r.URL.Path),
			logging.String("remote", r.RemoteAddr),
			logging.Duration("duration", time.Since(start)))
	}
}
