package handler

import "github.com/erpsuite/backend/internal/interfaces/http/dto"

// Envelope types referenced by the swag annotations. Handlers build the
// actual payloads through dto.Response.

// APIResponse is the envelope with a typed data field
// @Description Response envelope; meta is present on list endpoints
type APIResponse[T any] struct {
	Success bool           `json:"success"`
	Data    T              `json:"data,omitempty"`
	Error   *dto.ErrorInfo `json:"error,omitempty"`
	Meta    *dto.Meta      `json:"meta,omitempty"`
}

// ErrorResponse is the envelope of every failed request
// @Description Error envelope with ERR_* code, request id and field details
type ErrorResponse struct {
	Success bool           `json:"success" example:"false"`
	Error   *dto.ErrorInfo `json:"error,omitempty"`
}

// SuccessResponse acknowledges a command that returns no data
type SuccessResponse struct {
	Success bool `json:"success" example:"true"`
}
