package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/doodlemate-companion/internal/config"
	"github.com/doodlemate-companion/internal/infrastructure/backend"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newTestRouter() http.Handler {
	cfg := &config.Config{AllowedOrigins: []string{"*"}}
	return NewRouter(cfg, &Deps{
		Backend: backend.NewClient("http://backend.invalid", "key"),
		Gateway: nil, // push signing unconfigured
		Logger:  zap.NewNop(),
	})
}

func TestRouter_PushMethodNotAllowed(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/push", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRouter_DeleteUserCORSPreflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/v1/delete-user", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")

	rec := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_DeleteUserPlainOptions(t *testing.T) {
	// An OPTIONS without preflight headers reaches the handler, which also
	// answers 200 unconditionally.
	rec := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/v1/delete-user", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_HealthCheck(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/health-check/ping", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
