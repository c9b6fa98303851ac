package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/nekogravitycat/shareit-backend/internal/auth"
	"github.com/nekogravitycat/shareit-backend/internal/metrics"
	"github.com/nekogravitycat/shareit-backend/internal/user"
)

const (
	adminID  = "11111111-1111-4111-8111-111111111111"
	memberID = "22222222-2222-4222-8222-222222222222"
)

type stubUsers map[string]*user.User

func (s stubUsers) GetByID(ctx context.Context, id string) (*user.User, error) {
	if u, ok := s[id]; ok {
		return u, nil
	}
	return nil, user.ErrNotFound
}

func newTestRouter(health func(ctx context.Context) error, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.TestMode)
	metrics.Register()
	return NewRouter(Config{
		Logger:            logger,
		Health:            health,
		JWTManager:        auth.NewJWTManager("secret", 0),
		TrustSharerHeader: true,
		Users: stubUsers{
			adminID:  {ID: adminID, IsSystemAdmin: true, IsActive: true},
			memberID: {ID: memberID, IsActive: true},
		},
	})
}

func get(r *gin.Engine, path, userID string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if userID != "" {
		req.Header.Set(auth.SharerHeader, userID)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealthz(t *testing.T) {
	r := newTestRouter(nil, nil)
	w := get(r, "/healthz", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	r = newTestRouter(func(ctx context.Context) error { return errors.New("db down") }, nil)
	w = get(r, "/healthz", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	r := newTestRouter(nil, nil)
	get(r, "/healthz", "")

	w := get(r, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "shareit_http_requests_total")
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	r := newTestRouter(nil, nil)

	for _, path := range []string{"/v1/me", "/v1/items", "/v1/requests", "/v1/bookings", "/v1/users"} {
		w := get(r, path, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func TestRequireSystemAdmin(t *testing.T) {
	r := newTestRouter(nil, nil)

	w := get(r, "/v1/users", memberID)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = get(r, "/v1/users", "33333333-3333-4333-8333-333333333333")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	r := newTestRouter(func(ctx context.Context) error { return errors.New("db down") }, zap.New(core))

	get(r, "/healthz", "")
	get(r, "/v1/bookings", "")

	entries := logs.All()
	require.Len(t, entries, 2)

	assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
	assert.Equal(t, "/healthz", entries[0].ContextMap()["path"])
	assert.Contains(t, entries[0].ContextMap()["errors"], "db down")

	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.EqualValues(t, http.StatusUnauthorized, entries[1].ContextMap()["status"])
}

func TestCORSConfig(t *testing.T) {
	cfg := corsConfig(true, " https://a.example, ,https://b.example")
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowOrigins)

	cfg = corsConfig(true, "")
	assert.NotEmpty(t, cfg.AllowOrigins)

	cfg = corsConfig(false, "https://ignored.example")
	assert.Contains(t, cfg.AllowOrigins, "http://localhost:3000")
	assert.Contains(t, cfg.AllowHeaders, auth.SharerHeader)
}
