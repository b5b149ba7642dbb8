package sales

import (
	"time"

	"github.com/erpsuite/backend/internal/application/common"
	"github.com/erpsuite/backend/internal/domain/sales"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateCustomerGroupRequest is the payload for creating a customer group
type CreateCustomerGroupRequest struct {
	Code             string          `json:"code" binding:"required,min=1,max=50"`
	Name             string          `json:"name" binding:"required,min=1,max=200"`
	DiscountRate     decimal.Decimal `json:"discount_rate"`
	PaymentTermsDays int             `json:"payment_terms_days" binding:"min=0,max=365"`
}

// UpdateCustomerGroupRequest changes a customer group
type UpdateCustomerGroupRequest struct {
	Name             *string          `json:"name" binding:"omitempty,min=1,max=200"`
	DiscountRate     *decimal.Decimal `json:"discount_rate"`
	PaymentTermsDays *int             `json:"payment_terms_days" binding:"omitempty,min=0,max=365"`
	IsActive         *bool            `json:"is_active"`
}

// CustomerGroupResponse is the API representation of a customer group
type CustomerGroupResponse struct {
	ID               uuid.UUID       `json:"id"`
	Code             string          `json:"code"`
	Name             string          `json:"name"`
	DiscountRate     decimal.Decimal `json:"discount_rate"`
	PaymentTermsDays int             `json:"payment_terms_days"`
	IsActive         bool            `json:"is_active"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// CustomerGroupListFilter lists customer groups
type CustomerGroupListFilter struct {
	common.PageQuery
	IsActive *bool `form:"is_active"`
}

// CreateCustomerRequest is the payload for creating a customer
type CreateCustomerRequest struct {
	Code        string          `json:"code" binding:"required,min=1,max=50"`
	Name        string          `json:"name" binding:"required,min=1,max=200"`
	TaxID       string          `json:"tax_id" binding:"max=50"`
	Email       string          `json:"email" binding:"omitempty,email"`
	Phone       string          `json:"phone" binding:"max=50"`
	Address     string          `json:"address" binding:"max=500"`
	GroupID     *uuid.UUID      `json:"group_id"`
	CreditLimit decimal.Decimal `json:"credit_limit"`
	CreditUsed  decimal.Decimal `json:"credit_used"`
}

// UpdateCustomerRequest changes a customer; a nil uuid group_id clears it
type UpdateCustomerRequest struct {
	Name        *string          `json:"name" binding:"omitempty,min=1,max=200"`
	TaxID       *string          `json:"tax_id" binding:"omitempty,max=50"`
	Email       *string          `json:"email" binding:"omitempty,email"`
	Phone       *string          `json:"phone" binding:"omitempty,max=50"`
	Address     *string          `json:"address" binding:"omitempty,max=500"`
	GroupID     *uuid.UUID       `json:"group_id"`
	CreditLimit *decimal.Decimal `json:"credit_limit"`
	CreditUsed  *decimal.Decimal `json:"credit_used"`
	IsActive    *bool            `json:"is_active"`
}

// CustomerResponse is the API representation of a customer
type CustomerResponse struct {
	ID              uuid.UUID       `json:"id"`
	Code            string          `json:"code"`
	Name            string          `json:"name"`
	TaxID           string          `json:"tax_id"`
	Email           string          `json:"email"`
	Phone           string          `json:"phone"`
	Address         string          `json:"address"`
	GroupID         *uuid.UUID      `json:"group_id,omitempty"`
	CreditLimit     decimal.Decimal `json:"credit_limit"`
	CreditUsed      decimal.Decimal `json:"credit_used"`
	AvailableCredit decimal.Decimal `json:"available_credit"`
	IsActive        bool            `json:"is_active"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// CustomerListFilter lists customers
type CustomerListFilter struct {
	common.PageQuery
	GroupID  *uuid.UUID `form:"-" query:"group_id"`
	IsActive *bool      `form:"is_active"`
}

// OrderLineRequest is one product line of a sales order. A missing
// discount_rate falls back to the customer's group discount.
type OrderLineRequest struct {
	ProductID    uuid.UUID        `json:"product_id" binding:"required"`
	Quantity     decimal.Decimal  `json:"quantity"`
	UnitPrice    *decimal.Decimal `json:"unit_price"`
	DiscountRate *decimal.Decimal `json:"discount_rate"`
	TaxRate      decimal.Decimal  `json:"tax_rate"`
}

// CreateSalesOrderRequest is the payload for creating a sales order
type CreateSalesOrderRequest struct {
	CustomerID  uuid.UUID          `json:"customer_id" binding:"required"`
	WarehouseID *uuid.UUID         `json:"warehouse_id"`
	OrderDate   *time.Time         `json:"order_date"`
	Notes       string             `json:"notes" binding:"max=1000"`
	Lines       []OrderLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// UpdateSalesOrderRequest changes the header and, when Lines is non-empty,
// replaces every line
type UpdateSalesOrderRequest struct {
	CustomerID  *uuid.UUID         `json:"customer_id"`
	WarehouseID *uuid.UUID         `json:"warehouse_id"`
	OrderDate   *time.Time         `json:"order_date"`
	Notes       *string            `json:"notes" binding:"omitempty,max=1000"`
	Lines       []OrderLineRequest `json:"lines" binding:"omitempty,dive"`
}

// SetStatusRequest assigns a document status
type SetStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// SalesOrderLineResponse is the API representation of a sales order line
type SalesOrderLineResponse struct {
	ID             uuid.UUID       `json:"id"`
	LineNumber     int             `json:"line_number"`
	ProductID      uuid.UUID       `json:"product_id"`
	ProductCode    string          `json:"product_code"`
	ProductName    string          `json:"product_name"`
	Quantity       decimal.Decimal `json:"quantity"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	DiscountRate   decimal.Decimal `json:"discount_rate"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	TaxRate        decimal.Decimal `json:"tax_rate"`
	TaxAmount      decimal.Decimal `json:"tax_amount"`
	Total          decimal.Decimal `json:"total"`
}

// SalesOrderResponse is the API representation of a sales order
type SalesOrderResponse struct {
	ID             uuid.UUID                `json:"id"`
	Number         string                   `json:"number"`
	CustomerID     uuid.UUID                `json:"customer_id"`
	WarehouseID    *uuid.UUID               `json:"warehouse_id,omitempty"`
	OrderDate      time.Time                `json:"order_date"`
	Status         string                   `json:"status"`
	Notes          string                   `json:"notes"`
	Subtotal       decimal.Decimal          `json:"subtotal"`
	DiscountAmount decimal.Decimal          `json:"discount_amount"`
	TaxAmount      decimal.Decimal          `json:"tax_amount"`
	Total          decimal.Decimal          `json:"total"`
	Lines          []SalesOrderLineResponse `json:"lines"`
	CreatedBy      *uuid.UUID               `json:"created_by,omitempty"`
	CreatedAt      time.Time                `json:"created_at"`
	UpdatedAt      time.Time                `json:"updated_at"`
}

// SalesOrderListFilter lists sales orders
type SalesOrderListFilter struct {
	common.PageQuery
	Status     string     `form:"status" binding:"omitempty,oneof=draft confirmed cancelled"`
	CustomerID *uuid.UUID `form:"-" query:"customer_id"`
}

// ToCustomerGroupResponse converts a domain customer group
func ToCustomerGroupResponse(g *sales.CustomerGroup) CustomerGroupResponse {
	return CustomerGroupResponse{
		ID:               g.ID,
		Code:             g.Code,
		Name:             g.Name,
		DiscountRate:     g.DiscountRate,
		PaymentTermsDays: g.PaymentTermsDays,
		IsActive:         g.IsActive,
		CreatedAt:        g.CreatedAt,
		UpdatedAt:        g.UpdatedAt,
	}
}

// ToCustomerResponse converts a domain customer
func ToCustomerResponse(c *sales.Customer) CustomerResponse {
	return CustomerResponse{
		ID:              c.ID,
		Code:            c.Code,
		Name:            c.Name,
		TaxID:           c.TaxID,
		Email:           c.Email,
		Phone:           c.Phone,
		Address:         c.Address,
		GroupID:         c.GroupID,
		CreditLimit:     c.CreditLimit,
		CreditUsed:      c.CreditUsed,
		AvailableCredit: c.AvailableCredit(),
		IsActive:        c.IsActive,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}

// ToSalesOrderResponse converts a domain sales order with its lines
func ToSalesOrderResponse(o *sales.SalesOrder) SalesOrderResponse {
	lines := make([]SalesOrderLineResponse, len(o.Lines))
	for i := range o.Lines {
		l := &o.Lines[i]
		lines[i] = SalesOrderLineResponse{
			ID:             l.ID,
			LineNumber:     l.LineNumber,
			ProductID:      l.ProductID,
			ProductCode:    l.ProductCode,
			ProductName:    l.ProductName,
			Quantity:       l.Quantity,
			UnitPrice:      l.UnitPrice,
			DiscountRate:   l.DiscountRate,
			DiscountAmount: l.DiscountAmount(),
			TaxRate:        l.TaxRate,
			TaxAmount:      l.TaxAmount,
			Total:          l.Total,
		}
	}
	return SalesOrderResponse{
		ID:             o.ID,
		Number:         o.Number,
		CustomerID:     o.CustomerID,
		WarehouseID:    o.WarehouseID,
		OrderDate:      o.OrderDate,
		Status:         o.Status.String(),
		Notes:          o.Notes,
		Subtotal:       o.Subtotal,
		DiscountAmount: o.DiscountAmount,
		TaxAmount:      o.TaxAmount,
		Total:          o.Total,
		Lines:          lines,
		CreatedBy:      o.CreatedBy,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}
}
