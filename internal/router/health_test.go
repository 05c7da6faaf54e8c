package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"medsaver/internal/app"
	"medsaver/internal/config"
	"medsaver/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Default()
	cfg.JWTSecret = "test-secret"
	cfg.Storage.Driver = config.StorageMemory

	a, err := app.New(cfg, nil, app.MemoryRepos(), storage.NewMemoryStore("medicine-scans"))
	require.NoError(t, err)
	return a.Router()
}

func TestHealthCheck(t *testing.T) {
	r := newRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestProtectedRoutesNeedToken(t *testing.T) {
	r := newRouter(t)

	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/dashboard"},
		{http.MethodGet, "/profile"},
		{http.MethodPost, "/scans"},
		{http.MethodPost, "/medicines/search"},
		{http.MethodGet, "/reminders"},
		{http.MethodGet, "/history"},
		{http.MethodPost, "/admin/reminders/dispatch"},
	} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(route.method, route.path, nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code, route.path)
	}
}

func TestCORSPreflight(t *testing.T) {
	r := newRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/auth/login", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
}
