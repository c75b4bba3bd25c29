package server

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"

	"github.com/agbru/nttmul/internal/multiply"
	"github.com/agbru/nttmul/internal/multiply/mocks"
)

// multiplyBody is a POST /multiply document for operands of the given size.
func multiplyBody(aDigits, bDigits int) string {
	return `{"a":"` + strings.Repeat("9", aDigits) + `","b":"` + strings.Repeat("9", bDigits) + `"}`
}

func TestDefaultSecurityConfig_FitsLargestOperands(t *testing.T) {
	config := DefaultSecurityConfig()
	body := multiplyBody(multiply.MaxOperandDigits, multiply.MaxOperandDigits)
	if config.MaxBodyBytes < int64(len(body)) {
		t.Errorf("MaxBodyBytes = %d, a body with two %d-digit operands needs %d",
			config.MaxBodyBytes, multiply.MaxOperandDigits, len(body))
	}
	if !config.EnableCORS {
		t.Error("CORS should be enabled by default")
	}
}

func TestMultiplyRoute_SecurityHeaders(t *testing.T) {
	s := newTestServer(t, multiply.NewDefaultFactory())
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/multiply?a=12&b=12", http.NoBody))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	for header, want := range map[string]string{
		"X-Content-Type-Options":  "nosniff",
		"X-Frame-Options":         "DENY",
		"Referrer-Policy":         "strict-origin-when-cross-origin",
		"Content-Security-Policy": "default-src 'none'; frame-ancestors 'none'",
	} {
		if got := rec.Header().Get(header); got != want {
			t.Errorf("%s = %q, want %q", header, got, want)
		}
	}
}

func TestSecurityMiddleware_CORS(t *testing.T) {
	tests := []struct {
		name    string
		allowed []string
		enabled bool
		origin  string
		want    string
	}{
		{"disabled", []string{"*"}, false, "http://calc.example", ""},
		{"wildcard", []string{"*"}, true, "http://calc.example", "*"},
		{"listed origin", []string{"http://a.example", "http://calc.example"}, true, "http://calc.example", "http://calc.example"},
		{"unlisted origin", []string{"http://a.example"}, true, "http://calc.example", ""},
		{"no origin header", []string{"http://a.example"}, true, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := SecurityConfig{EnableCORS: tt.enabled, AllowedOrigins: tt.allowed, AllowedMethods: []string{"GET", "POST"}}
			handler := SecurityMiddleware(config, func(http.ResponseWriter, *http.Request) {})

			req := httptest.NewRequest(http.MethodGet, "/multiply", http.NoBody)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			rec := httptest.NewRecorder()
			handler(rec, req)

			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.want {
				t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, tt.want)
			}
			if tt.want != "" && rec.Header().Get("Access-Control-Allow-Methods") != "GET, POST" {
				t.Errorf("Access-Control-Allow-Methods = %q", rec.Header().Get("Access-Control-Allow-Methods"))
			}
		})
	}
}

func TestMultiplyRoute_PreflightSkipsEngine(t *testing.T) {
	ctrl := gomock.NewController(t)
	engine := mocks.NewMockEngine(ctrl)
	engine.EXPECT().Name().Return(multiply.EngineNTT).AnyTimes()
	// No Multiply expectation: a preflight that reached the engine fails the test.

	s := newTestServer(t, mapFactory{multiply.EngineNTT: engine})
	req := httptest.NewRequest(http.MethodOptions, "/multiply", http.NoBody)
	req.Header.Set("Origin", "http://calc.example")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("preflight response should carry CORS headers")
	}
}

func TestMultiplyRoute_BodyLimitBoundary(t *testing.T) {
	body := multiplyBody(40, 30)
	tests := []struct {
		name   string
		limit  int64
		status int
	}{
		{"exactly at limit", int64(len(body)), http.StatusOK},
		{"one byte over", int64(len(body)) - 1, http.StatusRequestEntityTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			security := DefaultSecurityConfig()
			security.MaxBodyBytes = tt.limit
			s := newTestServer(t, multiply.NewDefaultFactory(), WithSecurityConfig(security))

			rec := httptest.NewRecorder()
			s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/multiply", strings.NewReader(body)))
			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, tt.status, rec.Body.String())
			}
		})
	}
}

func TestSecurityMiddleware_BodyLimit(t *testing.T) {
	var readErr error
	handler := SecurityMiddleware(SecurityConfig{MaxBodyBytes: 8}, func(w http.ResponseWriter, r *http.Request) {
		_, readErr = io.ReadAll(r.Body)
	})
	handler(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/multiply", strings.NewReader("0123456789")))

	var maxErr *http.MaxBytesError
	if !errors.As(readErr, &maxErr) {
		t.Fatalf("read error = %v, want *http.MaxBytesError", readErr)
	}
	if maxErr.Limit != 8 {
		t.Errorf("limit = %d, want 8", maxErr.Limit)
	}
}
