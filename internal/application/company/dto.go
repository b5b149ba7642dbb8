package company

import (
	"time"

	"github.com/erpsuite/backend/internal/domain/company"
	"github.com/google/uuid"
)

// CreateCompanyRequest is the payload for creating a company
type CreateCompanyRequest struct {
	Code     string `json:"code" binding:"required,min=1,max=50"`
	Name     string `json:"name" binding:"required,min=1,max=200"`
	TaxID    string `json:"tax_id" binding:"max=50"`
	Currency string `json:"currency" binding:"omitempty,len=3"`
}

// UpdateCompanyRequest carries the fields to change; nil means unchanged
type UpdateCompanyRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=1,max=200"`
	TaxID    *string `json:"tax_id" binding:"omitempty,max=50"`
	Currency *string `json:"currency" binding:"omitempty,len=3"`
	IsActive *bool   `json:"is_active"`
}

// CompanyListFilter holds list query parameters
type CompanyListFilter struct {
	Search   string `form:"search"`
	IsActive *bool  `form:"is_active"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// CompanyResponse is the API representation of a company
type CompanyResponse struct {
	ID        uuid.UUID `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	TaxID     string    `json:"tax_id"`
	Currency  string    `json:"currency"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToCompanyResponse maps the domain company
func ToCompanyResponse(c *company.Company) CompanyResponse {
	return CompanyResponse{
		ID:        c.ID,
		Code:      c.Code,
		Name:      c.Name,
		TaxID:     c.TaxID,
		Currency:  c.Currency,
		IsActive:  c.IsActive,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
