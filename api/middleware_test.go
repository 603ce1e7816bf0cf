package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-admin-secret"

func signToken(t *testing.T, secret string, method jwt.SigningMethod, expiresIn time.Duration) string {
	t.Helper()

	token := jwt.NewWithClaims(method, jwt.RegisteredClaims{
		Subject:   "owner",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t, nil, nil)

	rec := env.do(t, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decodeBody[HealthResponse](t, rec).Status)
}

func TestUnknownRoute(t *testing.T) {
	env := newTestEnv(t, nil, nil)

	rec := env.do(t, http.MethodGet, "/api/unknown", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, RouteErrorResponse{Error: "Route not found", Path: "/api/unknown", Method: "GET"},
		decodeBody[RouteErrorResponse](t, rec))

	rec = env.do(t, http.MethodGet, "/nowhere", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMethodNotAllowed(t *testing.T) {
	env := newTestEnv(t, nil, nil)

	rec := env.do(t, http.MethodPatch, "/api/skills", map[string]any{})
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	body := decodeBody[RouteErrorResponse](t, rec)
	assert.Equal(t, "PATCH", body.Method)
	assert.Equal(t, "/api/skills", body.Path)
}

func TestAdminAuth(t *testing.T) {
	env := newTestEnv(t, map[string]string{"ADMIN_JWT_SECRET": testSecret}, nil)

	// public routes stay open
	assert.Equal(t, http.StatusOK, env.do(t, http.MethodGet, "/api/skills", nil).Code)
	assert.Equal(t, http.StatusCreated, env.do(t, http.MethodPost, "/api/messages", map[string]any{
		"name": "Ada", "email": "ada@example.com", "message": "Hello",
	}).Code)

	rec := env.do(t, http.MethodPost, "/api/skills", skillBody(80))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "authorization", decodeBody[ErrorResponse](t, rec).Field)

	assert.Equal(t, http.StatusUnauthorized, env.do(t, http.MethodGet, "/api/messages", nil).Code)

	wrongKey := signToken(t, "another-secret", jwt.SigningMethodHS256, time.Hour)
	rec = env.do(t, http.MethodPost, "/api/skills", skillBody(80), "Authorization", "Bearer "+wrongKey)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	expired := signToken(t, testSecret, jwt.SigningMethodHS256, -time.Hour)
	rec = env.do(t, http.MethodPost, "/api/skills", skillBody(80), "Authorization", "Bearer "+expired)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	wrongAlg := signToken(t, testSecret, jwt.SigningMethodHS512, time.Hour)
	rec = env.do(t, http.MethodPost, "/api/skills", skillBody(80), "Authorization", "Bearer "+wrongAlg)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	valid := signToken(t, testSecret, jwt.SigningMethodHS256, time.Hour)
	rec = env.do(t, http.MethodPost, "/api/skills", skillBody(80), "Authorization", "Bearer "+valid)
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, http.StatusOK, env.do(t, http.MethodGet, "/api/messages", nil, "Authorization", "Bearer "+valid).Code)
}

func TestRateLimit(t *testing.T) {
	limiter := NewMemoryRateLimiter(2, time.Minute)
	env := newTestEnv(t, nil, func(d *Dependencies) { d.Limiter = limiter })

	for i := 0; i < 2; i++ {
		rec := env.do(t, http.MethodGet, "/api/skills", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "2", rec.Header().Get("RateLimit-Limit"))
	}

	rec := env.do(t, http.MethodGet, "/api/skills", nil)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "Too many requests, please try again later.", decodeBody[ErrorResponse](t, rec).Error)
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))

	// health is outside the limited API
	assert.Equal(t, http.StatusOK, env.do(t, http.MethodGet, "/health", nil).Code)

	// another client has its own window
	rec = env.do(t, http.MethodGet, "/api/skills", nil, "X-Forwarded-For", "203.0.113.9")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCORS(t *testing.T) {
	env := newTestEnv(t, map[string]string{"ACCEPTED_ORIGINS": "https://me.dev"}, nil)

	req := httptest.NewRequest(http.MethodOptions, "/api/skills", nil)
	req.Header.Set("Origin", "https://me.dev")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	assert.Equal(t, "https://me.dev", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/api/skills", nil)
	req.Header.Set("Origin", "https://evil.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec = httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestLogInternalServerErrors_RecoversPanics(t *testing.T) {
	handler := LogInternalServerErrors(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeBody[ErrorResponse](t, rec)
	assert.Equal(t, "Internal Server Error", body.Error)
	assert.NotContains(t, rec.Body.String(), "boom")
}
