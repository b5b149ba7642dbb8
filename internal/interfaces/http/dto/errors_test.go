package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeErrorCode(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{"VALIDATION_ERROR", ErrCodeValidation},
		{"INVALID_INPUT", ErrCodeValidation},
		{"UNAUTHORIZED", ErrCodeUnauthorized},
		{"NOT_FOUND", ErrCodeNotFound},
		{"ALREADY_EXISTS", ErrCodeConflict},
		{"INVALID_STATE", ErrCodeBusinessRule},
		{"INSUFFICIENT_STOCK", ErrCodeBusinessRule},
		{ErrCodeConflict, ErrCodeConflict},
		{"SOMETHING_ELSE", ErrCodeInternal},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeErrorCode(tt.code))
		})
	}
}

func TestGetHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, GetHTTPStatus(ErrCodeValidation))
	assert.Equal(t, http.StatusUnauthorized, GetHTTPStatus(ErrCodeUnauthorized))
	assert.Equal(t, http.StatusNotFound, GetHTTPStatus(ErrCodeNotFound))
	assert.Equal(t, http.StatusConflict, GetHTTPStatus(ErrCodeConflict))
	assert.Equal(t, http.StatusUnprocessableEntity, GetHTTPStatus(ErrCodeBusinessRule))
	assert.Equal(t, http.StatusInternalServerError, GetHTTPStatus(ErrCodeInternal))
	assert.Equal(t, http.StatusInternalServerError, GetHTTPStatus("ERR_WHATEVER"))
}

func TestNewMeta(t *testing.T) {
	assert.Equal(t, &Meta{Total: 0, Page: 1, PageSize: 20, TotalPages: 0}, NewMeta(0, 1, 20))
	assert.Equal(t, 3, NewMeta(41, 1, 20).TotalPages)
	assert.Equal(t, 2, NewMeta(40, 2, 20).TotalPages)
}

func TestNewValidationErrorResponse(t *testing.T) {
	resp := NewValidationErrorResponse("Request validation failed", "req-1", []ValidationDetail{{Field: "code", Message: "This field is required"}})
	assert.False(t, resp.Success)
	assert.Equal(t, ErrCodeValidation, resp.Error.Code)
	assert.Equal(t, "req-1", resp.Error.RequestID)
	assert.Len(t, resp.Error.Details, 1)
}
