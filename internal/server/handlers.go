package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/agbru/nttmul/internal/config"
	"github.com/agbru/nttmul/internal/digits"
	apperrors "github.com/agbru/nttmul/internal/errors"
	"github.com/agbru/nttmul/internal/logging"
)

// requestError carries the status a parse failure maps to.
type requestError struct {
	status  int
	message string
}

func (e requestError) Error() string { return e.message }

// handleHealth responds to health check requests.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	s.writeJSONResponse(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
	})
}

// handleEngines lists the registered engines and the default one.
func (s *Server) handleEngines(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	s.writeJSONResponse(w, http.StatusOK, EnginesResponse{
		Engines: s.factory.List(),
		Default: s.defaultEngine(),
	})
}

// handleMultiply multiplies the operands a and b, given either as query
// parameters of a GET or as a JSON body of a POST.
func (s *Server) handleMultiply(w http.ResponseWriter, r *http.Request) {
	req, err := decodeMultiplyRequest(r)
	if err != nil {
		var reqErr requestError
		if errors.As(err, &reqErr) {
			s.writeErrorResponse(w, reqErr.status, reqErr.message)
			return
		}
		s.writeErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	engineName := req.Engine
	if engineName == "" {
		engineName = s.defaultEngine()
	}
	engine, err := s.factory.Get(engineName)
	if err != nil {
		s.writeErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	a, err := digits.ParseWithCapacity(req.A, s.options.MaxDigits)
	if err != nil {
		s.writeErrorResponse(w, statusForError(err), fmt.Sprintf("operand 'a': %v", err))
		return
	}
	b, err := digits.ParseWithCapacity(req.B, s.options.MaxDigits)
	if err != nil {
		s.writeErrorResponse(w, statusForError(err), fmt.Sprintf("operand 'b': %v", err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeouts.RequestTimeout)
	defer cancel()

	start := time.Now()
	product, err := engine.Multiply(ctx, a, b, s.options, nil)
	duration := time.Since(start)
	if err != nil {
		s.logger.Warn("multiplication failed",
			logging.String("engine", engineName),
			logging.Int("len_a", a.Len()),
			logging.Int("len_b", b.Len()),
			logging.Err(err))
		s.writeErrorResponse(w, statusForError(err), err.Error())
		return
	}

	text := digits.Format(product)
	s.writeJSONResponse(w, http.StatusOK, MultiplyResponse{
		Product:    text,
		Digits:     len(text),
		Engine:     engineName,
		Duration:   duration.String(),
		DurationNs: duration.Nanoseconds(),
	})
}

// decodeMultiplyRequest reads the operands from the query or the body.
func decodeMultiplyRequest(r *http.Request) (MultiplyRequest, error) {
	var req MultiplyRequest
	switch r.Method {
	case http.MethodGet:
		q := r.URL.Query()
		req = MultiplyRequest{A: q.Get("a"), B: q.Get("b"), Engine: q.Get("engine")}
	case http.MethodPost:
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				return req, requestError{http.StatusRequestEntityTooLarge,
					fmt.Sprintf("request body exceeds %d bytes", maxErr.Limit)}
			}
			return req, requestError{http.StatusBadRequest, "Invalid JSON body: " + err.Error()}
		}
	default:
		return req, requestError{http.StatusMethodNotAllowed, "Method not allowed"}
	}

	if req.A == "" {
		return req, requestError{http.StatusBadRequest, "Missing 'a' parameter"}
	}
	if req.B == "" {
		return req, requestError{http.StatusBadRequest, "Missing 'b' parameter"}
	}
	return req, nil
}

// statusForError maps a parse or engine failure to an HTTP status.
func statusForError(err error) int {
	switch {
	case errors.Is(err, digits.ErrInputOverflow), apperrors.IsCapacityError(err):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, digits.ErrInvalidDigit):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) defaultEngine() string {
	if s.cfg.Engine == "" || s.cfg.Engine == config.EngineAll {
		return config.DefaultEngine
	}
	return s.cfg.Engine
}

// writeJSONResponse writes data as JSON with the given status.
func (s *Server) writeJSONResponse(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("encoding JSON response", err)
	}
}

// writeErrorResponse writes a standardized error body.
func (s *Server) writeErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	s.writeJSONResponse(w, statusCode, ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	})
}
