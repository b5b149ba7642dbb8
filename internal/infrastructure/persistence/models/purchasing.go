package models

import (
	"time"

	"github.com/erpsuite/backend/internal/domain/purchasing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SupplierCategoryModel is the persistence model for supplier categories
type SupplierCategoryModel struct {
	TenantAggregateModel
	Code        string `gorm:"type:varchar(50);not null;index"`
	Name        string `gorm:"type:varchar(200);not null"`
	Description string `gorm:"type:text"`
	IsActive    bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (SupplierCategoryModel) TableName() string {
	return "supplier_categories"
}

// ToDomain converts the persistence model to a domain SupplierCategory
func (m *SupplierCategoryModel) ToDomain() *purchasing.SupplierCategory {
	return &purchasing.SupplierCategory{
		TenantAggregateRoot: m.ToTenantAggregateRoot(),
		Code:                m.Code,
		Name:                m.Name,
		Description:         m.Description,
		IsActive:            m.IsActive,
	}
}

// SupplierCategoryModelFromDomain creates a persistence model from a domain SupplierCategory
func SupplierCategoryModelFromDomain(c *purchasing.SupplierCategory) *SupplierCategoryModel {
	m := &SupplierCategoryModel{
		Code:        c.Code,
		Name:        c.Name,
		Description: c.Description,
		IsActive:    c.IsActive,
	}
	m.FromDomainTenantAggregateRoot(c.TenantAggregateRoot)
	return m
}

// SupplierModel is the persistence model for suppliers
type SupplierModel struct {
	TenantAggregateModel
	Code             string     `gorm:"type:varchar(50);not null;index"`
	Name             string     `gorm:"type:varchar(200);not null"`
	TaxID            string     `gorm:"type:varchar(50)"`
	ContactName      string     `gorm:"type:varchar(100)"`
	Email            string     `gorm:"type:varchar(200)"`
	Phone            string     `gorm:"type:varchar(50)"`
	Address          string     `gorm:"type:text"`
	CategoryID       *uuid.UUID `gorm:"type:uuid;index"`
	PaymentTermsDays int        `gorm:"not null;default:0"`
	IsActive         bool       `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (SupplierModel) TableName() string {
	return "suppliers"
}

// ToDomain converts the persistence model to a domain Supplier
func (m *SupplierModel) ToDomain() *purchasing.Supplier {
	return &purchasing.Supplier{
		TenantAggregateRoot: m.ToTenantAggregateRoot(),
		Code:                m.Code,
		Name:                m.Name,
		TaxID:               m.TaxID,
		ContactName:         m.ContactName,
		Email:               m.Email,
		Phone:               m.Phone,
		Address:             m.Address,
		CategoryID:          m.CategoryID,
		PaymentTermsDays:    m.PaymentTermsDays,
		IsActive:            m.IsActive,
	}
}

// SupplierModelFromDomain creates a persistence model from a domain Supplier
func SupplierModelFromDomain(s *purchasing.Supplier) *SupplierModel {
	m := &SupplierModel{
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
	}
	m.FromDomainTenantAggregateRoot(s.TenantAggregateRoot)
	return m
}

// PurchaseOrderModel is the persistence model for the PurchaseOrder aggregate
type PurchaseOrderModel struct {
	TenantAggregateModel
	Number       string                         `gorm:"type:varchar(50);not null;index"`
	SupplierID   uuid.UUID                      `gorm:"type:uuid;not null;index"`
	WarehouseID  *uuid.UUID                     `gorm:"type:uuid"`
	OrderDate    time.Time                      `gorm:"not null"`
	ExpectedDate *time.Time
	Status       purchasing.PurchaseOrderStatus `gorm:"type:varchar(30);not null;default:'draft';index"`
	Notes        string                         `gorm:"type:text"`
	Subtotal     decimal.Decimal                `gorm:"type:decimal(18,4);not null;default:0"`
	TaxAmount    decimal.Decimal                `gorm:"type:decimal(18,4);not null;default:0"`
	Total        decimal.Decimal                `gorm:"type:decimal(18,4);not null;default:0"`
	Lines        []PurchaseOrderLineModel       `gorm:"foreignKey:OrderID;references:ID"`
}

// TableName returns the table name for GORM
func (PurchaseOrderModel) TableName() string {
	return "purchase_orders"
}

// ToDomain converts the persistence model to a domain PurchaseOrder
func (m *PurchaseOrderModel) ToDomain() *purchasing.PurchaseOrder {
	order := &purchasing.PurchaseOrder{
		TenantAggregateRoot: m.ToTenantAggregateRoot(),
		Number:              m.Number,
		SupplierID:          m.SupplierID,
		WarehouseID:         m.WarehouseID,
		OrderDate:           m.OrderDate,
		ExpectedDate:        m.ExpectedDate,
		Status:              m.Status,
		Notes:               m.Notes,
		Subtotal:            m.Subtotal,
		TaxAmount:           m.TaxAmount,
		Total:               m.Total,
		Lines:               make([]purchasing.PurchaseOrderLine, len(m.Lines)),
	}
	for i := range m.Lines {
		order.Lines[i] = m.Lines[i].ToDomain()
	}
	return order
}

// PurchaseOrderModelFromDomain creates a persistence model from a domain PurchaseOrder
func PurchaseOrderModelFromDomain(o *purchasing.PurchaseOrder) *PurchaseOrderModel {
	m := &PurchaseOrderModel{
		Number:       o.Number,
		SupplierID:   o.SupplierID,
		WarehouseID:  o.WarehouseID,
		OrderDate:    o.OrderDate,
		ExpectedDate: o.ExpectedDate,
		Status:       o.Status,
		Notes:        o.Notes,
		Subtotal:     o.Subtotal,
		TaxAmount:    o.TaxAmount,
		Total:        o.Total,
		Lines:        make([]PurchaseOrderLineModel, len(o.Lines)),
	}
	m.FromDomainTenantAggregateRoot(o.TenantAggregateRoot)
	for i := range o.Lines {
		m.Lines[i] = PurchaseOrderLineModelFromDomain(o.ID, &o.Lines[i])
	}
	return m
}

// PurchaseOrderLineModel is the persistence model for purchase order lines
type PurchaseOrderLineModel struct {
	ID               uuid.UUID       `gorm:"type:uuid;primary_key"`
	OrderID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	LineNumber       int             `gorm:"not null"`
	ProductID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductCode      string          `gorm:"type:varchar(50)"`
	ProductName      string          `gorm:"type:varchar(200);not null"`
	Quantity         decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitPrice        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	TaxRate          decimal.Decimal `gorm:"type:decimal(7,4);not null;default:0"`
	TaxAmount        decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Total            decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	ReceivedQuantity decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (PurchaseOrderLineModel) TableName() string {
	return "purchase_order_lines"
}

// ToDomain converts the persistence model to a domain PurchaseOrderLine
func (m *PurchaseOrderLineModel) ToDomain() purchasing.PurchaseOrderLine {
	return purchasing.PurchaseOrderLine{
		ID:               m.ID,
		OrderID:          m.OrderID,
		LineNumber:       m.LineNumber,
		ProductID:        m.ProductID,
		ProductCode:      m.ProductCode,
		ProductName:      m.ProductName,
		Quantity:         m.Quantity,
		UnitPrice:        m.UnitPrice,
		TaxRate:          m.TaxRate,
		TaxAmount:        m.TaxAmount,
		Total:            m.Total,
		ReceivedQuantity: m.ReceivedQuantity,
	}
}

// PurchaseOrderLineModelFromDomain creates a line model owned by orderID
func PurchaseOrderLineModelFromDomain(orderID uuid.UUID, l *purchasing.PurchaseOrderLine) PurchaseOrderLineModel {
	return PurchaseOrderLineModel{
		ID:               l.ID,
		OrderID:          orderID,
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
	}
}

// GoodsReceiptModel is the persistence model for the GoodsReceipt aggregate
type GoodsReceiptModel struct {
	TenantAggregateModel
	Number          string                        `gorm:"type:varchar(50);not null;index"`
	PurchaseOrderID uuid.UUID                     `gorm:"type:uuid;not null;index"`
	WarehouseID     uuid.UUID                     `gorm:"type:uuid;not null"`
	ReceiptDate     time.Time                     `gorm:"not null"`
	Status          purchasing.GoodsReceiptStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
	Notes           string                        `gorm:"type:text"`
	CompletedAt     *time.Time
	Lines           []GoodsReceiptLineModel `gorm:"foreignKey:ReceiptID;references:ID"`
}

// TableName returns the table name for GORM
func (GoodsReceiptModel) TableName() string {
	return "goods_receipts"
}

// ToDomain converts the persistence model to a domain GoodsReceipt
func (m *GoodsReceiptModel) ToDomain() *purchasing.GoodsReceipt {
	r := &purchasing.GoodsReceipt{
		TenantAggregateRoot: m.ToTenantAggregateRoot(),
		Number:              m.Number,
		PurchaseOrderID:     m.PurchaseOrderID,
		WarehouseID:         m.WarehouseID,
		ReceiptDate:         m.ReceiptDate,
		Status:              m.Status,
		Notes:               m.Notes,
		CompletedAt:         m.CompletedAt,
		Lines:               make([]purchasing.GoodsReceiptLine, len(m.Lines)),
	}
	for i, l := range m.Lines {
		r.Lines[i] = purchasing.GoodsReceiptLine{
			ID:                  l.ID,
			ReceiptID:           l.ReceiptID,
			PurchaseOrderLineID: l.PurchaseOrderLineID,
			ProductID:           l.ProductID,
			Quantity:            l.Quantity,
		}
	}
	return r
}

// GoodsReceiptModelFromDomain creates a persistence model from a domain GoodsReceipt
func GoodsReceiptModelFromDomain(r *purchasing.GoodsReceipt) *GoodsReceiptModel {
	m := &GoodsReceiptModel{
		Number:          r.Number,
		PurchaseOrderID: r.PurchaseOrderID,
		WarehouseID:     r.WarehouseID,
		ReceiptDate:     r.ReceiptDate,
		Status:          r.Status,
		Notes:           r.Notes,
		CompletedAt:     r.CompletedAt,
		Lines:           make([]GoodsReceiptLineModel, len(r.Lines)),
	}
	m.FromDomainTenantAggregateRoot(r.TenantAggregateRoot)
	for i, l := range r.Lines {
		m.Lines[i] = GoodsReceiptLineModel{
			ID:                  l.ID,
			ReceiptID:           r.ID,
			PurchaseOrderLineID: l.PurchaseOrderLineID,
			ProductID:           l.ProductID,
			Quantity:            l.Quantity,
		}
	}
	return m
}

// GoodsReceiptLineModel is the persistence model for goods receipt lines
type GoodsReceiptLineModel struct {
	ID                  uuid.UUID       `gorm:"type:uuid;primary_key"`
	ReceiptID           uuid.UUID       `gorm:"type:uuid;not null;index"`
	PurchaseOrderLineID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID           uuid.UUID       `gorm:"type:uuid;not null"`
	Quantity            decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (GoodsReceiptLineModel) TableName() string {
	return "goods_receipt_lines"
}
