package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/erpsuite/backend/internal/infrastructure/config"
	"github.com/erpsuite/backend/internal/infrastructure/telemetry"
	"github.com/erpsuite/backend/internal/interfaces/http/dto"
	"github.com/erpsuite/backend/internal/interfaces/http/handler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestEngineConfig() *config.Config {
	return &config.Config{
		App:     config.AppConfig{Name: "erp-test", Env: "test"},
		HTTP:    config.HTTPConfig{MaxBodySize: 1 << 20},
		Metrics: config.MetricsConfig{Enabled: true, Path: "/metrics"},
	}
}

func TestNewEngine_OperationalRoutes(t *testing.T) {
	cfg := newTestEngineConfig()
	h := Handlers{System: handler.NewSystemHandler("erp-test", "test", nil)}

	engine, err := NewEngine(cfg, h, Guards{}, telemetry.NewRegistry(), zap.NewNop())
	require.NoError(t, err)

	t.Run("health", func(t *testing.T) {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	})

	t.Run("ping under api prefix", func(t *testing.T) {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/ping/", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("metrics exposes http counters", func(t *testing.T) {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "http_requests_total")
	})

	t.Run("swagger disabled", func(t *testing.T) {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("unknown route uses error envelope", func(t *testing.T) {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/nowhere", nil))
		require.Equal(t, http.StatusNotFound, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.Success)
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeNotFound, resp.Error.Code)
		assert.NotEmpty(t, resp.Error.RequestID)
	})
}

func TestNewEngine_RejectsBadTrustedProxy(t *testing.T) {
	cfg := newTestEngineConfig()
	cfg.HTTP.TrustedProxies = []string{"not-an-ip"}

	_, err := NewEngine(cfg, Handlers{}, Guards{}, nil, zap.NewNop())
	assert.Error(t, err)
}
