package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) PingContext(ctx context.Context) error { return f(ctx) }

func TestSystemHandler_Health(t *testing.T) {
	tests := []struct {
		name       string
		db         HealthChecker
		wantStatus int
		wantState  string
		wantDB     string
	}{
		{"without database", nil, http.StatusOK, "healthy", ""},
		{"database reachable", pingFunc(func(context.Context) error { return nil }), http.StatusOK, "healthy", "ok"},
		{"database down", pingFunc(func(context.Context) error { return errors.New("dial tcp: refused") }),
			http.StatusServiceUnavailable, "unhealthy", "dial tcp: refused"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewSystemHandler("erp-test", "1.2.3", tt.db)
			c, w := newTestContext(http.MethodGet, "/health", "")

			h.Health(c)

			assert.Equal(t, tt.wantStatus, w.Code)
			resp := decodeResponse(t, w)
			raw, err := json.Marshal(resp.Data)
			require.NoError(t, err)
			var health HealthResponse
			require.NoError(t, json.Unmarshal(raw, &health))
			assert.Equal(t, tt.wantState, health.Status)
			assert.Equal(t, "1.2.3", health.Version)
			assert.Equal(t, tt.wantDB, health.Checks["database"])
		})
	}
}

func TestSystemHandler_Ping(t *testing.T) {
	h := NewSystemHandler("erp-test", "dev", nil)
	c, w := newTestContext(http.MethodGet, "/ping", "")

	h.Ping(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"message":"pong"`)
}
