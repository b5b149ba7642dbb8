// Package common holds request types shared by the application services.
package common

import (
	"github.com/erpsuite/backend/internal/domain/shared"
)

// PageQuery holds the search, ordering and pagination parameters accepted
// by every list endpoint
type PageQuery struct {
	Search   string `form:"search" binding:"max=200"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc ASC DESC"`
}

// Filter converts the query into a normalized repository filter
func (q PageQuery) Filter() shared.Filter {
	return shared.Filter{
		Page:     q.Page,
		PageSize: q.PageSize,
		OrderBy:  q.OrderBy,
		OrderDir: q.OrderDir,
		Search:   q.Search,
	}.Normalize()
}
