package models

import (
	"time"

	"github.com/erpsuite/backend/internal/domain/sales"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CustomerGroupModel is the persistence model for customer groups
type CustomerGroupModel struct {
	TenantAggregateModel
	Code             string          `gorm:"type:varchar(50);not null;index"`
	Name             string          `gorm:"type:varchar(200);not null"`
	DiscountRate     decimal.Decimal `gorm:"type:decimal(7,4);not null;default:0"`
	PaymentTermsDays int             `gorm:"not null;default:0"`
	IsActive         bool            `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (CustomerGroupModel) TableName() string {
	return "customer_groups"
}

// ToDomain converts the persistence model to a domain CustomerGroup
func (m *CustomerGroupModel) ToDomain() *sales.CustomerGroup {
	return &sales.CustomerGroup{
		TenantAggregateRoot: m.ToTenantAggregateRoot(),
		Code:                m.Code,
		Name:                m.Name,
		DiscountRate:        m.DiscountRate,
		PaymentTermsDays:    m.PaymentTermsDays,
		IsActive:            m.IsActive,
	}
}

// CustomerGroupModelFromDomain creates a persistence model from a domain CustomerGroup
func CustomerGroupModelFromDomain(g *sales.CustomerGroup) *CustomerGroupModel {
	m := &CustomerGroupModel{
		Code:             g.Code,
		Name:             g.Name,
		DiscountRate:     g.DiscountRate,
		PaymentTermsDays: g.PaymentTermsDays,
		IsActive:         g.IsActive,
	}
	m.FromDomainTenantAggregateRoot(g.TenantAggregateRoot)
	return m
}

// CustomerModel is the persistence model for customers. Available credit
// is derived and not stored.
type CustomerModel struct {
	TenantAggregateModel
	Code        string          `gorm:"type:varchar(50);not null;index"`
	Name        string          `gorm:"type:varchar(200);not null"`
	TaxID       string          `gorm:"type:varchar(50)"`
	Email       string          `gorm:"type:varchar(200)"`
	Phone       string          `gorm:"type:varchar(50)"`
	Address     string          `gorm:"type:text"`
	GroupID     *uuid.UUID      `gorm:"type:uuid;index"`
	CreditLimit decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	CreditUsed  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	IsActive    bool            `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts the persistence model to a domain Customer
func (m *CustomerModel) ToDomain() *sales.Customer {
	return &sales.Customer{
		TenantAggregateRoot: m.ToTenantAggregateRoot(),
		Code:                m.Code,
		Name:                m.Name,
		TaxID:               m.TaxID,
		Email:               m.Email,
		Phone:               m.Phone,
		Address:             m.Address,
		GroupID:             m.GroupID,
		CreditLimit:         m.CreditLimit,
		CreditUsed:          m.CreditUsed,
		IsActive:            m.IsActive,
	}
}

// CustomerModelFromDomain creates a persistence model from a domain Customer
func CustomerModelFromDomain(c *sales.Customer) *CustomerModel {
	m := &CustomerModel{
		Code:        c.Code,
		Name:        c.Name,
		TaxID:       c.TaxID,
		Email:       c.Email,
		Phone:       c.Phone,
		Address:     c.Address,
		GroupID:     c.GroupID,
		CreditLimit: c.CreditLimit,
		CreditUsed:  c.CreditUsed,
		IsActive:    c.IsActive,
	}
	m.FromDomainTenantAggregateRoot(c.TenantAggregateRoot)
	return m
}

// SalesOrderModel is the persistence model for the SalesOrder aggregate
type SalesOrderModel struct {
	TenantAggregateModel
	Number         string                 `gorm:"type:varchar(50);not null;index"`
	CustomerID     uuid.UUID              `gorm:"type:uuid;not null;index"`
	WarehouseID    *uuid.UUID             `gorm:"type:uuid"`
	OrderDate      time.Time              `gorm:"not null"`
	Status         sales.SalesOrderStatus `gorm:"type:varchar(20);not null;default:'draft';index"`
	Notes          string                 `gorm:"type:text"`
	Subtotal       decimal.Decimal        `gorm:"type:decimal(18,4);not null;default:0"`
	DiscountAmount decimal.Decimal        `gorm:"type:decimal(18,4);not null;default:0"`
	TaxAmount      decimal.Decimal        `gorm:"type:decimal(18,4);not null;default:0"`
	Total          decimal.Decimal        `gorm:"type:decimal(18,4);not null;default:0"`
	Lines          []SalesOrderLineModel  `gorm:"foreignKey:OrderID;references:ID"`
}

// TableName returns the table name for GORM
func (SalesOrderModel) TableName() string {
	return "sales_orders"
}

// ToDomain converts the persistence model to a domain SalesOrder
func (m *SalesOrderModel) ToDomain() *sales.SalesOrder {
	order := &sales.SalesOrder{
		TenantAggregateRoot: m.ToTenantAggregateRoot(),
		Number:              m.Number,
		CustomerID:          m.CustomerID,
		WarehouseID:         m.WarehouseID,
		OrderDate:           m.OrderDate,
		Status:              m.Status,
		Notes:               m.Notes,
		Subtotal:            m.Subtotal,
		DiscountAmount:      m.DiscountAmount,
		TaxAmount:           m.TaxAmount,
		Total:               m.Total,
		Lines:               make([]sales.SalesOrderLine, len(m.Lines)),
	}
	for i, l := range m.Lines {
		order.Lines[i] = sales.SalesOrderLine{
			ID:           l.ID,
			OrderID:      l.OrderID,
			LineNumber:   l.LineNumber,
			ProductID:    l.ProductID,
			ProductCode:  l.ProductCode,
			ProductName:  l.ProductName,
			Quantity:     l.Quantity,
			UnitPrice:    l.UnitPrice,
			DiscountRate: l.DiscountRate,
			TaxRate:      l.TaxRate,
			TaxAmount:    l.TaxAmount,
			Total:        l.Total,
		}
	}
	return order
}

// SalesOrderModelFromDomain creates a persistence model from a domain SalesOrder
func SalesOrderModelFromDomain(o *sales.SalesOrder) *SalesOrderModel {
	m := &SalesOrderModel{
		Number:         o.Number,
		CustomerID:     o.CustomerID,
		WarehouseID:    o.WarehouseID,
		OrderDate:      o.OrderDate,
		Status:         o.Status,
		Notes:          o.Notes,
		Subtotal:       o.Subtotal,
		DiscountAmount: o.DiscountAmount,
		TaxAmount:      o.TaxAmount,
		Total:          o.Total,
		Lines:          make([]SalesOrderLineModel, len(o.Lines)),
	}
	m.FromDomainTenantAggregateRoot(o.TenantAggregateRoot)
	for i, l := range o.Lines {
		m.Lines[i] = SalesOrderLineModel{
			ID:           l.ID,
			OrderID:      o.ID,
			LineNumber:   l.LineNumber,
			ProductID:    l.ProductID,
			ProductCode:  l.ProductCode,
			ProductName:  l.ProductName,
			Quantity:     l.Quantity,
			UnitPrice:    l.UnitPrice,
			DiscountRate: l.DiscountRate,
			TaxRate:      l.TaxRate,
			TaxAmount:    l.TaxAmount,
			Total:        l.Total,
		}
	}
	return m
}

// SalesOrderLineModel is the persistence model for sales order lines
type SalesOrderLineModel struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key"`
	OrderID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	LineNumber   int             `gorm:"not null"`
	ProductID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductCode  string          `gorm:"type:varchar(50)"`
	ProductName  string          `gorm:"type:varchar(200);not null"`
	Quantity     decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitPrice    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	DiscountRate decimal.Decimal `gorm:"type:decimal(7,4);not null;default:0"`
	TaxRate      decimal.Decimal `gorm:"type:decimal(7,4);not null;default:0"`
	TaxAmount    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Total        decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (SalesOrderLineModel) TableName() string {
	return "sales_order_lines"
}
