package middleware_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/dual_price_app/internal/core/domain"
	"github.com/SscSPs/dual_price_app/internal/middleware"
	"github.com/SscSPs/dual_price_app/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-that-is-long-enough"

type principal struct {
	UserID string   `json:"userId"`
	Caps   []string `json:"caps"`
}

func whoAmI(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)
	c.JSON(http.StatusOK, principal{UserID: userID, Caps: middleware.CapabilitiesFromCtx(c.Request.Context())})
}

func newRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", append(handlers, whoAmI)...)
	return r
}

func get(r *gin.Engine, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	r := newRouter(middleware.AuthMiddleware(testSecret))

	valid, err := utils.GenerateJWT("user-1", []string{domain.CapabilityManageOptions}, testSecret, time.Hour, "test")
	require.NoError(t, err)
	expired, err := utils.GenerateJWT("user-1", nil, testSecret, -time.Minute, "test")
	require.NoError(t, err)
	otherKey, err := utils.GenerateJWT("user-1", nil, "another-secret", time.Hour, "test")
	require.NoError(t, err)
	noSubject, err := utils.GenerateJWT("", nil, testSecret, time.Hour, "test")
	require.NoError(t, err)

	tests := []struct {
		name    string
		header  string
		code    int
		message string
	}{
		{name: "missing header", header: "", code: http.StatusUnauthorized, message: "Authorization header required"},
		{name: "wrong scheme", header: "Basic " + valid, code: http.StatusUnauthorized, message: "Authorization header format must be Bearer {token}"},
		{name: "expired", header: "Bearer " + expired, code: http.StatusUnauthorized, message: "Token has expired"},
		{name: "bad signature", header: "Bearer " + otherKey, code: http.StatusUnauthorized, message: "Invalid token"},
		{name: "no subject", header: "Bearer " + noSubject, code: http.StatusUnauthorized, message: "Invalid token claims"},
		{name: "valid", header: "Bearer " + valid, code: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			headers := map[string]string{}
			if tt.header != "" {
				headers["Authorization"] = tt.header
			}
			w := get(r, headers)
			assert.Equal(t, tt.code, w.Code)
			if tt.message != "" {
				var body map[string]string
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
				assert.Equal(t, tt.message, body["error"])
			}
		})
	}

	w := get(r, map[string]string{"Authorization": "Bearer " + valid})
	var got principal
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, principal{UserID: "user-1", Caps: []string{domain.CapabilityManageOptions}}, got)
}

func TestAPIKeyAuth(t *testing.T) {
	hash, err := utils.HashAPIKey("secret-key")
	require.NoError(t, err)
	r := newRouter(middleware.APIKeyAuth(hash), middleware.AuthMiddleware(testSecret))

	t.Run("valid key skips bearer auth", func(t *testing.T) {
		w := get(r, map[string]string{"x-api-key": "secret-key"})
		require.Equal(t, http.StatusOK, w.Code)
		var got principal
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, "api-key", got.UserID)
		assert.Equal(t, []string{domain.CapabilityManageOptions}, got.Caps)
	})

	t.Run("invalid key falls through to bearer auth", func(t *testing.T) {
		w := get(r, map[string]string{"x-api-key": "guess"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("no configured hash", func(t *testing.T) {
		r := newRouter(middleware.APIKeyAuth(""), middleware.AuthMiddleware(testSecret))
		w := get(r, map[string]string{"x-api-key": "secret-key"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRateLimit(t *testing.T) {
	_, err := middleware.NewRateLimiter("lots")
	assert.Error(t, err)

	rl, err := middleware.NewRateLimiter("1-H")
	require.NoError(t, err)
	r := newRouter(middleware.RateLimit(rl))

	assert.Equal(t, http.StatusOK, get(r, nil).Code)
	assert.Equal(t, http.StatusTooManyRequests, get(r, nil).Code)
}

func TestStructuredLoggingMiddleware(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger))
	r.GET("/ping", func(c *gin.Context) {
		middleware.GetLoggerFromContext(c).Info("handling")
		c.Status(http.StatusAccepted)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	requestID := w.Header().Get("X-Request-ID")
	require.NotEmpty(t, requestID)

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)
	var completed map[string]any
	require.NoError(t, json.Unmarshal(lines[1], &completed))
	assert.Equal(t, "Request completed", completed["msg"])
	assert.Equal(t, requestID, completed["request_id"])
	assert.Equal(t, "/ping", completed["path"])
	assert.Equal(t, float64(http.StatusAccepted), completed["status"])
}

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	_, ok := middleware.GetUserIDFromCtx(ctx)
	assert.False(t, ok)
	assert.False(t, middleware.HasCapability(ctx, domain.CapabilityManageOptions))
	assert.Equal(t, slog.Default(), middleware.GetLoggerFromCtx(ctx))

	ctx = middleware.WithPrincipal(ctx, "user-1", []string{"read", domain.CapabilityManageOptions})
	userID, ok := middleware.GetUserIDFromCtx(ctx)
	assert.True(t, ok)
	assert.Equal(t, "user-1", userID)
	assert.True(t, middleware.HasCapability(ctx, domain.CapabilityManageOptions))
	assert.False(t, middleware.HasCapability(ctx, "delete"))

	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	assert.Same(t, logger, middleware.GetLoggerFromCtx(middleware.WithLogger(ctx, logger)))
}
