package sales

import (
	"strings"
	"time"

	"github.com/erpsuite/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SalesOrderStatus is the lifecycle label of a sales order.
// Any known value may be assigned from any other.
type SalesOrderStatus string

const (
	SalesOrderStatusDraft     SalesOrderStatus = "draft"
	SalesOrderStatusConfirmed SalesOrderStatus = "confirmed"
	SalesOrderStatusCancelled SalesOrderStatus = "cancelled"
)

// IsValid reports whether s is a known status
func (s SalesOrderStatus) IsValid() bool {
	switch s {
	case SalesOrderStatusDraft, SalesOrderStatusConfirmed, SalesOrderStatusCancelled:
		return true
	}
	return false
}

func (s SalesOrderStatus) String() string {
	return string(s)
}

// LineInput carries the caller-supplied part of a sales order line
type LineInput struct {
	ProductID    uuid.UUID
	ProductCode  string
	ProductName  string
	Quantity     decimal.Decimal
	UnitPrice    decimal.Decimal
	DiscountRate decimal.Decimal
	TaxRate      decimal.Decimal
}

// SalesOrderLine is one product line of a sales order
type SalesOrderLine struct {
	ID           uuid.UUID
	OrderID      uuid.UUID
	LineNumber   int
	ProductID    uuid.UUID
	ProductCode  string
	ProductName  string
	Quantity     decimal.Decimal
	UnitPrice    decimal.Decimal
	DiscountRate decimal.Decimal
	TaxRate      decimal.Decimal
	TaxAmount    decimal.Decimal
	Total        decimal.Decimal
}

// Gross is quantity * unit price rounded to MoneyPlaces
func (l *SalesOrderLine) Gross() decimal.Decimal {
	return l.Quantity.Mul(l.UnitPrice).Round(shared.MoneyPlaces)
}

// DiscountAmount is gross * discount_rate / 100
func (l *SalesOrderLine) DiscountAmount() decimal.Decimal {
	return shared.Percent(l.Gross(), l.DiscountRate)
}

// Net is gross less discount
func (l *SalesOrderLine) Net() decimal.Decimal {
	return l.Gross().Sub(l.DiscountAmount())
}

func (l *SalesOrderLine) calculate() {
	net := l.Net()
	l.TaxAmount = shared.Percent(net, l.TaxRate)
	l.Total = net.Add(l.TaxAmount)
}

// SalesOrder is a customer's order for goods
type SalesOrder struct {
	shared.TenantAggregateRoot
	Number         string
	CustomerID     uuid.UUID
	WarehouseID    *uuid.UUID
	OrderDate      time.Time
	Status         SalesOrderStatus
	Notes          string
	Subtotal       decimal.Decimal
	DiscountAmount decimal.Decimal
	TaxAmount      decimal.Decimal
	Total          decimal.Decimal
	Lines          []SalesOrderLine
}

// NewSalesOrder creates a draft order with a caller-assigned unique number
func NewSalesOrder(tenantID uuid.UUID, number string, customerID uuid.UUID, orderDate time.Time, lines []LineInput) (*SalesOrder, error) {
	if strings.TrimSpace(number) == "" {
		return nil, shared.Errorf(shared.ErrValidation, "order number is required")
	}
	if customerID == uuid.Nil {
		return nil, shared.Errorf(shared.ErrValidation, "customer_id is required")
	}
	if orderDate.IsZero() {
		orderDate = time.Now()
	}
	o := &SalesOrder{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Number:              number,
		CustomerID:          customerID,
		OrderDate:           orderDate,
		Status:              SalesOrderStatusDraft,
	}
	if err := o.SetLines(lines); err != nil {
		return nil, err
	}
	return o, nil
}

// SetHeader updates the editable header fields
func (o *SalesOrder) SetHeader(customerID uuid.UUID, warehouseID *uuid.UUID, orderDate time.Time, notes string) error {
	if customerID == uuid.Nil {
		return shared.Errorf(shared.ErrValidation, "customer_id is required")
	}
	o.CustomerID = customerID
	o.WarehouseID = warehouseID
	if !orderDate.IsZero() {
		o.OrderDate = orderDate
	}
	o.Notes = strings.TrimSpace(notes)
	o.IncrementVersion()
	return nil
}

// SetLines replaces every line and recomputes totals
func (o *SalesOrder) SetLines(inputs []LineInput) error {
	if len(inputs) == 0 {
		return shared.Errorf(shared.ErrValidation, "order must have at least one line")
	}
	lines := make([]SalesOrderLine, 0, len(inputs))
	for i, in := range inputs {
		if in.ProductID == uuid.Nil {
			return shared.Errorf(shared.ErrValidation, "product_id is required")
		}
		if strings.TrimSpace(in.ProductName) == "" {
			return shared.Errorf(shared.ErrValidation, "product_name is required")
		}
		if err := shared.RequirePositive("quantity", in.Quantity); err != nil {
			return err
		}
		if err := shared.RequireNonNegative("unit_price", in.UnitPrice); err != nil {
			return err
		}
		if err := requireRate("discount_rate", in.DiscountRate); err != nil {
			return err
		}
		if err := shared.RequireNonNegative("tax_rate", in.TaxRate); err != nil {
			return err
		}
		line := SalesOrderLine{
			ID:           uuid.New(),
			OrderID:      o.ID,
			LineNumber:   i + 1,
			ProductID:    in.ProductID,
			ProductCode:  strings.TrimSpace(in.ProductCode),
			ProductName:  strings.TrimSpace(in.ProductName),
			Quantity:     in.Quantity,
			UnitPrice:    in.UnitPrice,
			DiscountRate: in.DiscountRate,
			TaxRate:      in.TaxRate,
		}
		line.calculate()
		lines = append(lines, line)
	}
	o.Lines = lines
	o.recalculate()
	o.IncrementVersion()
	return nil
}

// recalculate sums gross into subtotal and the line discounts, taxes and
// totals into the header, so subtotal - discount + tax = total
func (o *SalesOrder) recalculate() {
	o.Subtotal = decimal.Zero
	o.DiscountAmount = decimal.Zero
	o.TaxAmount = decimal.Zero
	o.Total = decimal.Zero
	for i := range o.Lines {
		l := &o.Lines[i]
		o.Subtotal = o.Subtotal.Add(l.Gross())
		o.DiscountAmount = o.DiscountAmount.Add(l.DiscountAmount())
		o.TaxAmount = o.TaxAmount.Add(l.TaxAmount)
		o.Total = o.Total.Add(l.Total)
	}
}

// SetStatus assigns any known status
func (o *SalesOrder) SetStatus(status SalesOrderStatus) error {
	status = SalesOrderStatus(strings.ToLower(strings.TrimSpace(string(status))))
	if !status.IsValid() {
		return shared.Errorf(shared.ErrValidation, "unknown sales order status %q", status)
	}
	o.Status = status
	o.IncrementVersion()
	return nil
}
