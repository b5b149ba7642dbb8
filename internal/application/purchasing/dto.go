package purchasing

import (
	"time"

	"github.com/erpsuite/backend/internal/application/common"
	"github.com/erpsuite/backend/internal/domain/purchasing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =============================================================================
// Supplier DTOs
// =============================================================================

// CreateSupplierCategoryRequest is the payload for creating a supplier category
type CreateSupplierCategoryRequest struct {
	Code        string `json:"code" binding:"required,min=1,max=50"`
	Name        string `json:"name" binding:"required,min=1,max=200"`
	Description string `json:"description" binding:"max=1000"`
}

// UpdateSupplierCategoryRequest changes a supplier category
type UpdateSupplierCategoryRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=200"`
	Description *string `json:"description" binding:"omitempty,max=1000"`
	IsActive    *bool   `json:"is_active"`
}

// SupplierCategoryResponse is the API representation of a supplier category
type SupplierCategoryResponse struct {
	ID          uuid.UUID `json:"id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// SupplierCategoryListFilter lists supplier categories
type SupplierCategoryListFilter struct {
	common.PageQuery
	IsActive *bool `form:"is_active"`
}

// CreateSupplierRequest is the payload for creating a supplier
type CreateSupplierRequest struct {
	Code             string     `json:"code" binding:"required,min=1,max=50"`
	Name             string     `json:"name" binding:"required,min=1,max=200"`
	TaxID            string     `json:"tax_id" binding:"max=50"`
	ContactName      string     `json:"contact_name" binding:"max=200"`
	Email            string     `json:"email" binding:"omitempty,email"`
	Phone            string     `json:"phone" binding:"max=50"`
	Address          string     `json:"address" binding:"max=500"`
	CategoryID       *uuid.UUID `json:"category_id"`
	PaymentTermsDays int        `json:"payment_terms_days" binding:"min=0,max=365"`
}

// UpdateSupplierRequest changes a supplier; a nil uuid category_id clears it
type UpdateSupplierRequest struct {
	Name             *string    `json:"name" binding:"omitempty,min=1,max=200"`
	TaxID            *string    `json:"tax_id" binding:"omitempty,max=50"`
	ContactName      *string    `json:"contact_name" binding:"omitempty,max=200"`
	Email            *string    `json:"email" binding:"omitempty,email"`
	Phone            *string    `json:"phone" binding:"omitempty,max=50"`
	Address          *string    `json:"address" binding:"omitempty,max=500"`
	CategoryID       *uuid.UUID `json:"category_id"`
	PaymentTermsDays *int       `json:"payment_terms_days" binding:"omitempty,min=0,max=365"`
	IsActive         *bool      `json:"is_active"`
}

// SupplierResponse is the API representation of a supplier
type SupplierResponse struct {
	ID               uuid.UUID  `json:"id"`
	Code             string     `json:"code"`
	Name             string     `json:"name"`
	TaxID            string     `json:"tax_id"`
	ContactName      string     `json:"contact_name"`
	Email            string     `json:"email"`
	Phone            string     `json:"phone"`
	Address          string     `json:"address"`
	CategoryID       *uuid.UUID `json:"category_id,omitempty"`
	PaymentTermsDays int        `json:"payment_terms_days"`
	IsActive         bool       `json:"is_active"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// SupplierListFilter lists suppliers
type SupplierListFilter struct {
	common.PageQuery
	CategoryID *uuid.UUID `form:"-" query:"category_id"`
	IsActive   *bool      `form:"is_active"`
}

// =============================================================================
// Purchase order DTOs
// =============================================================================

// OrderLineRequest is one product line of a purchase order. Product code
// and name are copied from the catalog.
type OrderLineRequest struct {
	ProductID uuid.UUID       `json:"product_id" binding:"required"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	TaxRate   decimal.Decimal `json:"tax_rate"`
}

// CreatePurchaseOrderRequest is the payload for creating a purchase order
type CreatePurchaseOrderRequest struct {
	SupplierID   uuid.UUID          `json:"supplier_id" binding:"required"`
	WarehouseID  *uuid.UUID         `json:"warehouse_id"`
	OrderDate    *time.Time         `json:"order_date"`
	ExpectedDate *time.Time         `json:"expected_date"`
	Notes        string             `json:"notes" binding:"max=1000"`
	Lines        []OrderLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// UpdatePurchaseOrderRequest changes the header and, when Lines is
// non-empty, replaces every line
type UpdatePurchaseOrderRequest struct {
	SupplierID   *uuid.UUID         `json:"supplier_id"`
	WarehouseID  *uuid.UUID         `json:"warehouse_id"`
	OrderDate    *time.Time         `json:"order_date"`
	ExpectedDate *time.Time         `json:"expected_date"`
	Notes        *string            `json:"notes" binding:"omitempty,max=1000"`
	Lines        []OrderLineRequest `json:"lines" binding:"omitempty,dive"`
}

// SetStatusRequest assigns a document status
type SetStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// PurchaseOrderLineResponse is the API representation of an order line
type PurchaseOrderLineResponse struct {
	ID               uuid.UUID       `json:"id"`
	LineNumber       int             `json:"line_number"`
	ProductID        uuid.UUID       `json:"product_id"`
	ProductCode      string          `json:"product_code"`
	ProductName      string          `json:"product_name"`
	Quantity         decimal.Decimal `json:"quantity"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
	TaxRate          decimal.Decimal `json:"tax_rate"`
	TaxAmount        decimal.Decimal `json:"tax_amount"`
	Total            decimal.Decimal `json:"total"`
	ReceivedQuantity decimal.Decimal `json:"received_quantity"`
	PendingQuantity  decimal.Decimal `json:"pending_quantity"`
}

// PurchaseOrderResponse is the API representation of a purchase order
type PurchaseOrderResponse struct {
	ID           uuid.UUID                   `json:"id"`
	Number       string                      `json:"number"`
	SupplierID   uuid.UUID                   `json:"supplier_id"`
	WarehouseID  *uuid.UUID                  `json:"warehouse_id,omitempty"`
	OrderDate    time.Time                   `json:"order_date"`
	ExpectedDate *time.Time                  `json:"expected_date,omitempty"`
	Status       string                      `json:"status"`
	Notes        string                      `json:"notes"`
	Subtotal     decimal.Decimal             `json:"subtotal"`
	TaxAmount    decimal.Decimal             `json:"tax_amount"`
	Total        decimal.Decimal             `json:"total"`
	Lines        []PurchaseOrderLineResponse `json:"lines"`
	CreatedBy    *uuid.UUID                  `json:"created_by,omitempty"`
	CreatedAt    time.Time                   `json:"created_at"`
	UpdatedAt    time.Time                   `json:"updated_at"`
}

// PurchaseOrderListFilter lists purchase orders
type PurchaseOrderListFilter struct {
	common.PageQuery
	Status     string     `form:"status"`
	SupplierID *uuid.UUID `form:"-" query:"supplier_id"`
}

// =============================================================================
// Goods receipt DTOs
// =============================================================================

// ReceiptLineRequest receives quantity against one purchase order line
type ReceiptLineRequest struct {
	PurchaseOrderLineID uuid.UUID       `json:"purchase_order_line_id" binding:"required"`
	Quantity            decimal.Decimal `json:"quantity"`
}

// CreateGoodsReceiptRequest is the payload for creating a goods receipt.
// warehouse_id defaults to the order's warehouse.
type CreateGoodsReceiptRequest struct {
	PurchaseOrderID uuid.UUID            `json:"purchase_order_id" binding:"required"`
	WarehouseID     *uuid.UUID           `json:"warehouse_id"`
	ReceiptDate     *time.Time           `json:"receipt_date"`
	Notes           string               `json:"notes" binding:"max=1000"`
	Lines           []ReceiptLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// GoodsReceiptLineResponse is the API representation of a receipt line
type GoodsReceiptLineResponse struct {
	ID                  uuid.UUID       `json:"id"`
	PurchaseOrderLineID uuid.UUID       `json:"purchase_order_line_id"`
	ProductID           uuid.UUID       `json:"product_id"`
	Quantity            decimal.Decimal `json:"quantity"`
}

// GoodsReceiptResponse is the API representation of a goods receipt
type GoodsReceiptResponse struct {
	ID              uuid.UUID                  `json:"id"`
	Number          string                     `json:"number"`
	PurchaseOrderID uuid.UUID                  `json:"purchase_order_id"`
	WarehouseID     uuid.UUID                  `json:"warehouse_id"`
	ReceiptDate     time.Time                  `json:"receipt_date"`
	Status          string                     `json:"status"`
	Notes           string                     `json:"notes"`
	CompletedAt     *time.Time                 `json:"completed_at,omitempty"`
	Lines           []GoodsReceiptLineResponse `json:"lines"`
	CreatedBy       *uuid.UUID                 `json:"created_by,omitempty"`
	CreatedAt       time.Time                  `json:"created_at"`
	UpdatedAt       time.Time                  `json:"updated_at"`
}

// GoodsReceiptListFilter lists goods receipts
type GoodsReceiptListFilter struct {
	common.PageQuery
	PurchaseOrderID *uuid.UUID `form:"-" query:"purchase_order_id"`
	Status          string     `form:"status" binding:"omitempty,oneof=pending completed"`
}

// =============================================================================
// Mappers
// =============================================================================

// ToSupplierCategoryResponse converts a domain supplier category
func ToSupplierCategoryResponse(c *purchasing.SupplierCategory) SupplierCategoryResponse {
	return SupplierCategoryResponse{
		ID:          c.ID,
		Code:        c.Code,
		Name:        c.Name,
		Description: c.Description,
		IsActive:    c.IsActive,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// ToSupplierResponse converts a domain supplier
func ToSupplierResponse(s *purchasing.Supplier) SupplierResponse {
	return SupplierResponse{
		ID:               s.ID,
		Code:             s.Code,
		Name:             s.Name,
		TaxID:            s.TaxID,
		ContactName:      s.ContactName,
		Email:            s.Email,
		Phone:            s.Phone,
		Address:          s.Address,
		CategoryID:       s.CategoryID,
		PaymentTermsDays: s.PaymentTermsDays,
		IsActive:         s.IsActive,
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
	}
}

// ToPurchaseOrderResponse converts a domain purchase order with its lines
func ToPurchaseOrderResponse(o *purchasing.PurchaseOrder) PurchaseOrderResponse {
	lines := make([]PurchaseOrderLineResponse, len(o.Lines))
	for i := range o.Lines {
		l := &o.Lines[i]
		lines[i] = PurchaseOrderLineResponse{
			ID:               l.ID,
			LineNumber:       l.LineNumber,
			ProductID:        l.ProductID,
			ProductCode:      l.ProductCode,
			ProductName:      l.ProductName,
			Quantity:         l.Quantity,
			UnitPrice:        l.UnitPrice,
			TaxRate:          l.TaxRate,
			TaxAmount:        l.TaxAmount,
			Total:            l.Total,
			ReceivedQuantity: l.ReceivedQuantity,
			PendingQuantity:  l.PendingQuantity(),
		}
	}
	return PurchaseOrderResponse{
		ID:           o.ID,
		Number:       o.Number,
		SupplierID:   o.SupplierID,
		WarehouseID:  o.WarehouseID,
		OrderDate:    o.OrderDate,
		ExpectedDate: o.ExpectedDate,
		Status:       o.Status.String(),
		Notes:        o.Notes,
		Subtotal:     o.Subtotal,
		TaxAmount:    o.TaxAmount,
		Total:        o.Total,
		Lines:        lines,
		CreatedBy:    o.CreatedBy,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
	}
}

// ToGoodsReceiptResponse converts a domain goods receipt with its lines
func ToGoodsReceiptResponse(r *purchasing.GoodsReceipt) GoodsReceiptResponse {
	lines := make([]GoodsReceiptLineResponse, len(r.Lines))
	for i, l := range r.Lines {
		lines[i] = GoodsReceiptLineResponse{
			ID:                  l.ID,
			PurchaseOrderLineID: l.PurchaseOrderLineID,
			ProductID:           l.ProductID,
			Quantity:            l.Quantity,
		}
	}
	return GoodsReceiptResponse{
		ID:              r.ID,
		Number:          r.Number,
		PurchaseOrderID: r.PurchaseOrderID,
		WarehouseID:     r.WarehouseID,
		ReceiptDate:     r.ReceiptDate,
		Status:          string(r.Status),
		Notes:           r.Notes,
		CompletedAt:     r.CompletedAt,
		Lines:           lines,
		CreatedBy:       r.CreatedBy,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}
