package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/erpsuite/backend/internal/domain/shared"
	"github.com/erpsuite/backend/internal/infrastructure/auth"
	"github.com/erpsuite/backend/internal/infrastructure/logger"
	"github.com/erpsuite/backend/internal/interfaces/http/dto"
	"github.com/erpsuite/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

// setClaims simulates JWTAuth having accepted a token
func setClaims(c *gin.Context, tenantID, userID uuid.UUID) {
	c.Set(middleware.JWTClaimsKey, &auth.Claims{
		TenantID: tenantID.String(),
		UserID:   userID.String(),
	})
}

func newTestContext(method, target string, body string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	c.Request = req
	return c, w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestGetRequestID(t *testing.T) {
	c, _ := newTestContext(http.MethodGet, "/", "")
	assert.Empty(t, getRequestID(c))

	c.Set(logger.GinRequestIDKey, "req-123")
	assert.Equal(t, "req-123", getRequestID(c))
}

func TestBaseHandlerSuccessWithMeta(t *testing.T) {
	h := &BaseHandler{}
	c, w := newTestContext(http.MethodGet, "/", "")

	h.SuccessWithMeta(c, []string{"a", "b"}, 45, 0, 0)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(45), resp.Meta.Total)
	assert.Equal(t, 1, resp.Meta.Page)
	assert.Equal(t, 20, resp.Meta.PageSize)
	assert.Equal(t, 3, resp.Meta.TotalPages)
}

func TestBaseHandlerCreated(t *testing.T) {
	h := &BaseHandler{}
	c, w := newTestContext(http.MethodPost, "/", "")

	h.Created(c, map[string]string{"id": "123"})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, decodeResponse(t, w).Success)
}

func TestBaseHandlerHandleError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{"not found", shared.ErrNotFound, http.StatusNotFound, dto.ErrCodeNotFound, "Resource not found"},
		{"already exists variant", shared.Errorf(shared.ErrAlreadyExists, "product with SKU X already exists"),
			http.StatusConflict, dto.ErrCodeConflict, "product with SKU X already exists"},
		{"validation", shared.ErrValidation, http.StatusBadRequest, dto.ErrCodeValidation, "Validation failed"},
		{"invalid input", shared.ErrInvalidInput, http.StatusBadRequest, dto.ErrCodeValidation, "Invalid input provided"},
		{"unauthorized", shared.ErrUnauthorized, http.StatusUnauthorized, dto.ErrCodeUnauthorized, ""},
		{"forbidden", shared.ErrForbidden, http.StatusForbidden, dto.ErrCodeForbidden, ""},
		{"invalid state", shared.ErrInvalidState, http.StatusUnprocessableEntity, dto.ErrCodeBusinessRule, ""},
		{"insufficient stock", shared.ErrInsufficientStock, http.StatusUnprocessableEntity, dto.ErrCodeBusinessRule, ""},
		{"wrapped domain error", fmt.Errorf("saving: %w", shared.ErrNotFound), http.StatusNotFound, dto.ErrCodeNotFound, ""},
		{"internal", errors.New("connection reset"), http.StatusInternalServerError, dto.ErrCodeInternal,
			"An unexpected error occurred"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &BaseHandler{}
			c, w := newTestContext(http.MethodGet, "/", "")
			c.Set(logger.GinRequestIDKey, "req-1")

			h.HandleError(c, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			resp := decodeResponse(t, w)
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
			assert.Equal(t, "req-1", resp.Error.RequestID)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, resp.Error.Message)
			}
		})
	}
}

func TestBaseHandlerPrincipal(t *testing.T) {
	h := &BaseHandler{}

	t.Run("missing claims", func(t *testing.T) {
		c, w := newTestContext(http.MethodGet, "/", "")
		_, _, ok := h.Principal(c)
		assert.False(t, ok)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed tenant", func(t *testing.T) {
		c, w := newTestContext(http.MethodGet, "/", "")
		c.Set(middleware.JWTClaimsKey, &auth.Claims{TenantID: "bogus", UserID: uuid.NewString()})
		_, _, ok := h.Principal(c)
		assert.False(t, ok)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid", func(t *testing.T) {
		tenantID, userID := uuid.New(), uuid.New()
		c, _ := newTestContext(http.MethodGet, "/", "")
		setClaims(c, tenantID, userID)
		gotTenant, gotUser, ok := h.Principal(c)
		require.True(t, ok)
		assert.Equal(t, tenantID, gotTenant)
		assert.Equal(t, userID, gotUser)
	})
}

func TestBaseHandlerPathID(t *testing.T) {
	h := &BaseHandler{}

	c, w := newTestContext(http.MethodGet, "/", "")
	c.Params = gin.Params{{Key: "id", Value: "not-a-uuid"}}
	_, ok := h.PathID(c, "id")
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)
	require.Len(t, resp.Error.Details, 1)
	assert.Equal(t, "id", resp.Error.Details[0].Field)

	id := uuid.New()
	c, _ = newTestContext(http.MethodGet, "/", "")
	c.Params = gin.Params{{Key: "id", Value: id.String()}}
	got, ok := h.PathID(c, "id")
	assert.True(t, ok)
	assert.Equal(t, id, got)
}

type queryIDsFilter struct {
	Page       int        `form:"page" binding:"omitempty,min=1"`
	ProductID  *uuid.UUID `form:"-" query:"product_id"`
	LocationID *uuid.UUID `form:"-" query:"location_id"`
}

func TestBaseHandlerBindQuery(t *testing.T) {
	h := &BaseHandler{}

	t.Run("binds uuid pointers", func(t *testing.T) {
		id := uuid.New()
		c, _ := newTestContext(http.MethodGet, "/?page=2&product_id="+id.String(), "")
		var f queryIDsFilter
		require.True(t, h.BindQuery(c, &f))
		assert.Equal(t, 2, f.Page)
		require.NotNil(t, f.ProductID)
		assert.Equal(t, id, *f.ProductID)
		assert.Nil(t, f.LocationID)
	})

	t.Run("rejects malformed uuid", func(t *testing.T) {
		c, w := newTestContext(http.MethodGet, "/?location_id=xyz", "")
		var f queryIDsFilter
		assert.False(t, h.BindQuery(c, &f))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeResponse(t, w)
		require.NotNil(t, resp.Error)
		require.Len(t, resp.Error.Details, 1)
		assert.Equal(t, "location_id", resp.Error.Details[0].Field)
	})

	t.Run("validates bound fields", func(t *testing.T) {
		c, w := newTestContext(http.MethodGet, "/?page=0", "")
		var f queryIDsFilter
		// page=0 is omitted by omitempty, so it passes
		assert.True(t, h.BindQuery(c, &f))
		assert.Equal(t, http.StatusOK, w.Code)

		c, w = newTestContext(http.MethodGet, "/?page=abc", "")
		assert.False(t, h.BindQuery(c, &f))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

type bindBody struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"omitempty,email"`
}

func TestBaseHandlerBindJSON(t *testing.T) {
	h := &BaseHandler{}

	t.Run("field details use json names", func(t *testing.T) {
		c, w := newTestContext(http.MethodPost, "/", `{"email":"nope"}`)
		var body bindBody
		assert.False(t, h.BindJSON(c, &body))
		assert.Equal(t, http.StatusBadRequest, w.Code)

		resp := decodeResponse(t, w)
		require.NotNil(t, resp.Error)
		fields := map[string]bool{}
		for _, d := range resp.Error.Details {
			fields[d.Field] = true
		}
		assert.True(t, fields["name"])
		assert.True(t, fields["email"])
	})

	t.Run("malformed json", func(t *testing.T) {
		c, w := newTestContext(http.MethodPost, "/", `{"name":`)
		var body bindBody
		assert.False(t, h.BindJSON(c, &body))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeValidation, decodeResponse(t, w).Error.Code)
	})

	t.Run("body too large", func(t *testing.T) {
		c, w := newTestContext(http.MethodPost, "/", `{"name":"a very long name indeed"}`)
		c.Request.Body = http.MaxBytesReader(w, c.Request.Body, 8)
		var body bindBody
		assert.False(t, h.BindJSON(c, &body))
		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	})
}
