package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"medsaver/internal/auth"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

var testTokens = auth.NewTokens("test-secret-key-for-testing-only")

func newTestRouter(mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(mw...)
	router.GET("/test", func(c *gin.Context) {
		userID, _ := CurrentUser(c)
		c.JSON(http.StatusOK, gin.H{
			"userID":    userID,
			"userEmail": CurrentEmail(c),
		})
	})
	return router
}

func serve(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// TestAuthMiddleware_MissingAuthHeader tests the middleware with missing Authorization header
func TestAuthMiddleware_MissingAuthHeader(t *testing.T) {
	w := serve(newTestRouter(AuthMiddleware(testTokens)), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// TestAuthMiddleware_InvalidAuthFormat tests the middleware with invalid Bearer format
func TestAuthMiddleware_InvalidAuthFormat(t *testing.T) {
	w := serve(newTestRouter(AuthMiddleware(testTokens)), "InvalidFormat")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// TestAuthMiddleware_InvalidToken tests the middleware with an invalid token
func TestAuthMiddleware_InvalidToken(t *testing.T) {
	w := serve(newTestRouter(AuthMiddleware(testTokens)), "Bearer invalid_token_xyz")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// TestAuthMiddleware_ValidToken tests the middleware with a valid token
func TestAuthMiddleware_ValidToken(t *testing.T) {
	token, err := testTokens.Generate("test-user-id", "test@example.com", auth.RoleUser)
	require.NoError(t, err)

	w := serve(newTestRouter(AuthMiddleware(testTokens)), "Bearer "+token)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "test-user-id")
	assert.Contains(t, w.Body.String(), "test@example.com")
}

func TestRequireRole(t *testing.T) {
	userToken, err := testTokens.Generate("u1", "u@example.com", auth.RoleUser)
	require.NoError(t, err)
	adminToken, err := testTokens.Generate("a1", "a@example.com", auth.RoleAdmin)
	require.NoError(t, err)

	router := newTestRouter(AuthMiddleware(testTokens), RequireRole(auth.RoleAdmin))

	assert.Equal(t, http.StatusForbidden, serve(router, "Bearer "+userToken).Code)
	assert.Equal(t, http.StatusOK, serve(router, "Bearer "+adminToken).Code)
}

func TestRequireRole_WithoutAuth(t *testing.T) {
	router := newTestRouter(RequireRole(auth.RoleAdmin))
	assert.Equal(t, http.StatusForbidden, serve(router, "").Code)
}

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)

	token, err := testTokens.Generate("u1", "u@example.com", auth.RoleUser)
	require.NoError(t, err)

	router := newTestRouter(RequestLogger(zap.New(core)), AuthMiddleware(testTokens))
	serve(router, "Bearer "+token)
	serve(router, "")

	entries := logs.All()
	require.Len(t, entries, 2)

	assert.Equal(t, "u1", entries[0].ContextMap()["user_id"])
	assert.EqualValues(t, http.StatusOK, entries[0].ContextMap()["status"])
	assert.EqualValues(t, http.StatusUnauthorized, entries[1].ContextMap()["status"])
}
