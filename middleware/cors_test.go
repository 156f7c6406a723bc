package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func serveCORS(t *testing.T, allowedOrigins []string, method, origin string) *httptest.ResponseRecorder {
	t.Helper()

	handler := NewCORSMiddleware(allowedOrigins)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(method, "/ask", nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestCORSMiddleware_AllowedOrigin(t *testing.T) {
	rec := serveCORS(t, []string{"http://localhost:3000"}, http.MethodPost, "http://localhost:3000")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
	assert.Equal(t, "Origin", rec.Header().Get("Vary"))
}

func TestCORSMiddleware_TrailingSlashNormalized(t *testing.T) {
	rec := serveCORS(t, []string{"https://vikesh2608.github.io/"}, http.MethodPost, "https://vikesh2608.github.io")

	assert.Equal(t, "https://vikesh2608.github.io", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSMiddleware_DisallowedOrigin(t *testing.T) {
	rec := serveCORS(t, []string{"http://localhost:3000"}, http.MethodPost, "https://evil.example.com")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "Origin", rec.Header().Get("Vary"), "Vary is set even for disallowed origins")
}

func TestCORSMiddleware_Preflight(t *testing.T) {
	rec := serveCORS(t, []string{"http://localhost:3000"}, http.MethodOptions, "http://localhost:3000")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "PATCH")
	assert.Equal(t, "86400", rec.Header().Get("Access-Control-Max-Age"))
}

func TestCORSMiddleware_NoOriginHeader(t *testing.T) {
	rec := serveCORS(t, []string{"http://localhost:3000"}, http.MethodGet, "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, rec.Header().Get("Vary"))
}

func TestCORSMiddleware_MaxAgeFromEnv(t *testing.T) {
	t.Setenv("CORS_MAX_AGE", "3600")
	rec := serveCORS(t, []string{"http://localhost:3000"}, http.MethodOptions, "http://localhost:3000")
	assert.Equal(t, "3600", rec.Header().Get("Access-Control-Max-Age"))

	t.Setenv("CORS_MAX_AGE", "not-a-number")
	rec = serveCORS(t, []string{"http://localhost:3000"}, http.MethodOptions, "http://localhost:3000")
	assert.Equal(t, "86400", rec.Header().Get("Access-Control-Max-Age"))
}
