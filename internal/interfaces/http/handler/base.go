package handler

import (
	"errors"
	"net/http"
	"reflect"

	"github.com/erpsuite/backend/internal/domain/shared"
	"github.com/erpsuite/backend/internal/infrastructure/logger"
	"github.com/erpsuite/backend/internal/interfaces/http/dto"
	"github.com/erpsuite/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

func getRequestID(c *gin.Context) string {
	return c.GetString(logger.GinRequestIDKey)
}

// Principal returns the tenant and user of the authenticated request. It
// writes a 401 and returns false when the claims are missing or malformed.
func (h *BaseHandler) Principal(c *gin.Context) (tenantID, userID uuid.UUID, ok bool) {
	claims, found := middleware.GetClaims(c)
	if !found {
		h.Unauthorized(c, "Authentication required")
		return uuid.Nil, uuid.Nil, false
	}
	tenantID, err := claims.TenantUUID()
	if err != nil {
		h.Unauthorized(c, "Invalid token subject")
		return uuid.Nil, uuid.Nil, false
	}
	userID, err = claims.UserUUID()
	if err != nil {
		h.Unauthorized(c, "Invalid token subject")
		return uuid.Nil, uuid.Nil, false
	}
	return tenantID, userID, true
}

// PathID parses the named path parameter as a UUID, writing a 400 when it
// is malformed
func (h *BaseHandler) PathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		h.ValidationError(c, "Invalid "+name+" format", []dto.ValidationDetail{{Field: name, Message: "Invalid UUID format"}})
		return uuid.Nil, false
	}
	return id, true
}

// BindJSON binds and validates the request body
func (h *BaseHandler) BindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		h.bindError(c, err)
		return false
	}
	return true
}

// BindQuery binds and validates the query string. Fields of type
// *uuid.UUID are read from their `query` tag, since the form binder cannot
// decode them.
func (h *BaseHandler) BindQuery(c *gin.Context, obj any) bool {
	if err := c.ShouldBindQuery(obj); err != nil {
		h.bindError(c, err)
		return false
	}
	if details := bindQueryIDs(c, reflect.ValueOf(obj)); len(details) > 0 {
		h.ValidationError(c, "Request validation failed", details)
		return false
	}
	return true
}

var uuidPtrType = reflect.TypeOf((*uuid.UUID)(nil))

func bindQueryIDs(c *gin.Context, v reflect.Value) []dto.ValidationDetail {
	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil
	}
	var details []dto.ValidationDetail
	t := v.Type()
	for i := range t.NumField() {
		field := t.Field(i)
		if field.Anonymous {
			details = append(details, bindQueryIDs(c, v.Field(i))...)
			continue
		}
		name := field.Tag.Get("query")
		if name == "" || field.Type != uuidPtrType {
			continue
		}
		raw := c.Query(name)
		if raw == "" {
			continue
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			details = append(details, dto.ValidationDetail{Field: name, Message: "Invalid UUID format"})
			continue
		}
		v.Field(i).Set(reflect.ValueOf(&id))
	}
	return details
}

func (h *BaseHandler) bindError(c *gin.Context, err error) {
	var maxBytes *http.MaxBytesError
	if errors.As(err, &maxBytes) {
		h.Error(c, http.StatusRequestEntityTooLarge, dto.ErrCodeTooLarge, "Request body exceeds maximum allowed size")
		return
	}
	if details := middleware.ValidationDetails(err); len(details) > 0 {
		h.ValidationError(c, "Request validation failed", details)
		return
	}
	h.ValidationError(c, "Malformed request: "+err.Error(), nil)
}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessWithMeta sends a page of results. Page and page size are reported
// as the repository applied them.
func (h *BaseHandler) SuccessWithMeta(c *gin.Context, data any, total int64, page, pageSize int) {
	f := shared.Filter{Page: page, PageSize: pageSize}.Normalize()
	c.JSON(http.StatusOK, dto.NewSuccessResponseWithMeta(data, total, f.Page, f.PageSize))
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// Error sends an error envelope with an explicit status
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, dto.NewErrorResponse(code, message, getRequestID(c)))
}

// Unauthorized sends a 401 response
func (h *BaseHandler) Unauthorized(c *gin.Context, message string) {
	h.Error(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, message)
}

// ValidationError sends a 400 response with field details
func (h *BaseHandler) ValidationError(c *gin.Context, message string, details []dto.ValidationDetail) {
	c.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(message, getRequestID(c), details))
}

// HandleError converts service errors to responses. Domain errors keep
// their message; anything else is logged and hidden behind a 500.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		code := dto.NormalizeErrorCode(domainErr.Code)
		h.Error(c, dto.GetHTTPStatus(code), code, domainErr.Message)
		return
	}

	_ = c.Error(err)
	logger.FromContext(c.Request.Context()).Error("request failed", zap.Error(err))
	h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, "An unexpected error occurred")
}
