package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hospital-appointment-api/internal/auth"
	"hospital-appointment-api/internal/middleware"
	"hospital-appointment-api/internal/model"
)

const secret = "test-secret"

func router(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	chain := append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"username": middleware.Username(c)})
	})
	r.GET("/protected", chain...)
	return r
}

func get(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestAuthRejectsMissingToken(t *testing.T) {
	r := router(middleware.Auth(secret))
	rec := get(r, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthRejectsGarbageToken(t *testing.T) {
	r := router(middleware.Auth(secret))
	rec := get(r, "not.a.token")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthRejectsWrongSecret(t *testing.T) {
	tok, err := auth.MakeToken("mallory", model.RolePatient, "other-secret")
	require.NoError(t, err)

	r := router(middleware.Auth(secret))
	rec := get(r, tok)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthSetsIdentity(t *testing.T) {
	tok, err := auth.MakeToken("alice", model.RolePatient, secret)
	require.NoError(t, err)

	r := router(middleware.Auth(secret))
	rec := get(r, tok)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "alice")
}

func TestRequireRoleForbidsWrongRole(t *testing.T) {
	tok, err := auth.MakeToken("alice", model.RolePatient, secret)
	require.NoError(t, err)

	r := router(middleware.Auth(secret), middleware.RequireRole(model.RoleDoctor))
	rec := get(r, tok)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireRoleAllowsMatchingRole(t *testing.T) {
	tok, err := auth.MakeToken("drbob", model.RoleDoctor, secret)
	require.NoError(t, err)

	r := router(middleware.Auth(secret), middleware.RequireRole(model.RoleDoctor))
	rec := get(r, tok)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimit(t *testing.T) {
	rl := middleware.NewRateLimiter(1, 2)
	r := router(middleware.RateLimit(rl))

	// burst of 2 allowed, third refused
	assert.Equal(t, http.StatusOK, get(r, "").Code)
	assert.Equal(t, http.StatusOK, get(r, "").Code)
	assert.Equal(t, http.StatusTooManyRequests, get(r, "").Code)
}
