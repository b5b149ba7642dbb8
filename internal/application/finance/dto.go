package finance

import (
	"time"

	"github.com/erpsuite/backend/internal/application/common"
	"github.com/erpsuite/backend/internal/domain/finance"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateInvoiceRequest bills a sales order
type CreateInvoiceRequest struct {
	SalesOrderID uuid.UUID  `json:"sales_order_id" binding:"required"`
	IssueDate    *time.Time `json:"issue_date"`
	Notes        string     `json:"notes" binding:"max=1000"`
}

// SetStatusRequest assigns an invoice status
type SetStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// InvoiceLineResponse is the API representation of an invoice line
type InvoiceLineResponse struct {
	ID          uuid.UUID       `json:"id"`
	LineNumber  int             `json:"line_number"`
	ProductID   uuid.UUID       `json:"product_id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TaxRate     decimal.Decimal `json:"tax_rate"`
	TaxAmount   decimal.Decimal `json:"tax_amount"`
	Total       decimal.Decimal `json:"total"`
}

// InvoiceResponse is the API representation of an invoice
type InvoiceResponse struct {
	ID             uuid.UUID             `json:"id"`
	Number         string                `json:"number"`
	SalesOrderID   uuid.UUID             `json:"sales_order_id"`
	CustomerID     uuid.UUID             `json:"customer_id"`
	IssueDate      time.Time             `json:"issue_date"`
	DueDate        time.Time             `json:"due_date"`
	Status         string                `json:"status"`
	IsOverdue      bool                  `json:"is_overdue"`
	Currency       string                `json:"currency"`
	Subtotal       decimal.Decimal       `json:"subtotal"`
	DiscountAmount decimal.Decimal       `json:"discount_amount"`
	TaxAmount      decimal.Decimal       `json:"tax_amount"`
	Total          decimal.Decimal       `json:"total"`
	Notes          string                `json:"notes"`
	Lines          []InvoiceLineResponse `json:"lines"`
	CreatedBy      *uuid.UUID            `json:"created_by,omitempty"`
	CreatedAt      time.Time             `json:"created_at"`
	UpdatedAt      time.Time             `json:"updated_at"`
}

// InvoiceListFilter lists invoices
type InvoiceListFilter struct {
	common.PageQuery
	Status       string     `form:"status" binding:"omitempty,oneof=draft issued paid cancelled"`
	CustomerID   *uuid.UUID `form:"-" query:"customer_id"`
	SalesOrderID *uuid.UUID `form:"-" query:"sales_order_id"`
}

// ToInvoiceResponse converts a domain invoice; overdue is evaluated at now
func ToInvoiceResponse(inv *finance.Invoice, now time.Time) InvoiceResponse {
	lines := make([]InvoiceLineResponse, len(inv.Lines))
	for i, l := range inv.Lines {
		lines[i] = InvoiceLineResponse{
			ID:          l.ID,
			LineNumber:  l.LineNumber,
			ProductID:   l.ProductID,
			Description: l.Description,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			TaxRate:     l.TaxRate,
			TaxAmount:   l.TaxAmount,
			Total:       l.Total,
		}
	}
	return InvoiceResponse{
		ID:             inv.ID,
		Number:         inv.Number,
		SalesOrderID:   inv.SalesOrderID,
		CustomerID:     inv.CustomerID,
		IssueDate:      inv.IssueDate,
		DueDate:        inv.DueDate,
		Status:         string(inv.Status),
		IsOverdue:      inv.IsOverdue(now),
		Currency:       inv.Currency,
		Subtotal:       inv.Subtotal,
		DiscountAmount: inv.DiscountAmount,
		TaxAmount:      inv.TaxAmount,
		Total:          inv.Total,
		Notes:          inv.Notes,
		Lines:          lines,
		CreatedBy:      inv.CreatedBy,
		CreatedAt:      inv.CreatedAt,
		UpdatedAt:      inv.UpdatedAt,
	}
}
