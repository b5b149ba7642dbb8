package purchasing

import (
	"strings"
	"time"

	"github.com/erpsuite/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PurchaseOrderStatus is the lifecycle label of a purchase order.
// Any known value may be assigned from any other.
type PurchaseOrderStatus string

const (
	PurchaseOrderStatusDraft             PurchaseOrderStatus = "draft"
	PurchaseOrderStatusSent              PurchaseOrderStatus = "sent"
	PurchaseOrderStatusConfirmed         PurchaseOrderStatus = "confirmed"
	PurchaseOrderStatusPartiallyReceived PurchaseOrderStatus = "partially_received"
	PurchaseOrderStatusReceived          PurchaseOrderStatus = "received"
	PurchaseOrderStatusCancelled         PurchaseOrderStatus = "cancelled"
)

// PurchaseOrderStatuses lists every known purchase order status
var PurchaseOrderStatuses = []PurchaseOrderStatus{
	PurchaseOrderStatusDraft,
	PurchaseOrderStatusSent,
	PurchaseOrderStatusConfirmed,
	PurchaseOrderStatusPartiallyReceived,
	PurchaseOrderStatusReceived,
	PurchaseOrderStatusCancelled,
}

// IsValid reports whether s is a known status
func (s PurchaseOrderStatus) IsValid() bool {
	for _, known := range PurchaseOrderStatuses {
		if s == known {
			return true
		}
	}
	return false
}

func (s PurchaseOrderStatus) String() string {
	return string(s)
}

// LineInput carries the caller-supplied part of an order line.
// Product code and name are snapshots taken when the line is written.
type LineInput struct {
	ProductID   uuid.UUID
	ProductCode string
	ProductName string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	TaxRate     decimal.Decimal
}

func (in LineInput) validate() error {
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
	if err := shared.RequireNonNegative("tax_rate", in.TaxRate); err != nil {
		return err
	}
	return nil
}

// PurchaseOrderLine is one product line of a purchase order
type PurchaseOrderLine struct {
	ID               uuid.UUID
	OrderID          uuid.UUID
	LineNumber       int
	ProductID        uuid.UUID
	ProductCode      string
	ProductName      string
	Quantity         decimal.Decimal
	UnitPrice        decimal.Decimal
	TaxRate          decimal.Decimal
	TaxAmount        decimal.Decimal
	Total            decimal.Decimal
	ReceivedQuantity decimal.Decimal
}

// Subtotal is quantity * unit price before tax, rounded to MoneyPlaces
func (l *PurchaseOrderLine) Subtotal() decimal.Decimal {
	return l.Quantity.Mul(l.UnitPrice).Round(shared.MoneyPlaces)
}

// PendingQuantity is the quantity not yet received
func (l *PurchaseOrderLine) PendingQuantity() decimal.Decimal {
	return l.Quantity.Sub(l.ReceivedQuantity)
}

// IsFullyReceived reports whether nothing remains pending
func (l *PurchaseOrderLine) IsFullyReceived() bool {
	return !l.PendingQuantity().IsPositive()
}

func (l *PurchaseOrderLine) calculate() {
	sub := l.Subtotal()
	l.TaxAmount = shared.Percent(sub, l.TaxRate)
	l.Total = sub.Add(l.TaxAmount)
}

// PurchaseOrder is a request to a supplier for goods
type PurchaseOrder struct {
	shared.TenantAggregateRoot
	Number       string
	SupplierID   uuid.UUID
	WarehouseID  *uuid.UUID
	OrderDate    time.Time
	ExpectedDate *time.Time
	Status       PurchaseOrderStatus
	Notes        string
	Subtotal     decimal.Decimal
	TaxAmount    decimal.Decimal
	Total        decimal.Decimal
	Lines        []PurchaseOrderLine
}

// NewPurchaseOrder creates a draft order. number is assigned by the caller
// and must already be unique.
func NewPurchaseOrder(tenantID uuid.UUID, number string, supplierID uuid.UUID, orderDate time.Time, lines []LineInput) (*PurchaseOrder, error) {
	if strings.TrimSpace(number) == "" {
		return nil, shared.Errorf(shared.ErrValidation, "order number is required")
	}
	if supplierID == uuid.Nil {
		return nil, shared.Errorf(shared.ErrValidation, "supplier_id is required")
	}
	if orderDate.IsZero() {
		orderDate = time.Now()
	}
	o := &PurchaseOrder{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Number:              number,
		SupplierID:          supplierID,
		OrderDate:           orderDate,
		Status:              PurchaseOrderStatusDraft,
	}
	if err := o.SetLines(lines); err != nil {
		return nil, err
	}
	return o, nil
}

// SetHeader updates the editable header fields
func (o *PurchaseOrder) SetHeader(supplierID uuid.UUID, warehouseID *uuid.UUID, orderDate time.Time, expectedDate *time.Time, notes string) error {
	if supplierID == uuid.Nil {
		return shared.Errorf(shared.ErrValidation, "supplier_id is required")
	}
	if expectedDate != nil && !orderDate.IsZero() && expectedDate.Before(orderDate) {
		return shared.Errorf(shared.ErrValidation, "expected_date cannot be before order_date")
	}
	o.SupplierID = supplierID
	o.WarehouseID = warehouseID
	if !orderDate.IsZero() {
		o.OrderDate = orderDate
	}
	o.ExpectedDate = expectedDate
	o.Notes = strings.TrimSpace(notes)
	o.IncrementVersion()
	return nil
}

// SetLines replaces every line and recomputes totals. Lines cannot be
// replaced once any quantity has been received.
func (o *PurchaseOrder) SetLines(inputs []LineInput) error {
	if len(inputs) == 0 {
		return shared.Errorf(shared.ErrValidation, "order must have at least one line")
	}
	if o.HasReceipts() {
		return shared.Errorf(shared.ErrInvalidState, "lines of a received order cannot be replaced")
	}
	lines := make([]PurchaseOrderLine, 0, len(inputs))
	for i, in := range inputs {
		if err := in.validate(); err != nil {
			return err
		}
		line := PurchaseOrderLine{
			ID:               uuid.New(),
			OrderID:          o.ID,
			LineNumber:       i + 1,
			ProductID:        in.ProductID,
			ProductCode:      strings.TrimSpace(in.ProductCode),
			ProductName:      strings.TrimSpace(in.ProductName),
			Quantity:         in.Quantity,
			UnitPrice:        in.UnitPrice,
			TaxRate:          in.TaxRate,
			ReceivedQuantity: decimal.Zero,
		}
		line.calculate()
		lines = append(lines, line)
	}
	o.Lines = lines
	o.recalculate()
	o.IncrementVersion()
	return nil
}

func (o *PurchaseOrder) recalculate() {
	o.Subtotal = decimal.Zero
	o.TaxAmount = decimal.Zero
	o.Total = decimal.Zero
	for i := range o.Lines {
		o.Subtotal = o.Subtotal.Add(o.Lines[i].Subtotal())
		o.TaxAmount = o.TaxAmount.Add(o.Lines[i].TaxAmount)
		o.Total = o.Total.Add(o.Lines[i].Total)
	}
}

// SetStatus assigns any known status
func (o *PurchaseOrder) SetStatus(status PurchaseOrderStatus) error {
	status = PurchaseOrderStatus(strings.ToLower(strings.TrimSpace(string(status))))
	if !status.IsValid() {
		return shared.Errorf(shared.ErrValidation, "unknown purchase order status %q", status)
	}
	o.Status = status
	o.IncrementVersion()
	return nil
}

// Line returns the line with the given id
func (o *PurchaseOrder) Line(lineID uuid.UUID) (*PurchaseOrderLine, error) {
	for i := range o.Lines {
		if o.Lines[i].ID == lineID {
			return &o.Lines[i], nil
		}
	}
	return nil, shared.Errorf(shared.ErrNotFound, "purchase order line %s not found", lineID)
}

// HasReceipts reports whether any line has received quantity
func (o *PurchaseOrder) HasReceipts() bool {
	for i := range o.Lines {
		if o.Lines[i].ReceivedQuantity.IsPositive() {
			return true
		}
	}
	return false
}

// Receive adds quantity to a line's received quantity
func (o *PurchaseOrder) Receive(lineID uuid.UUID, quantity decimal.Decimal) error {
	if err := shared.RequirePositive("quantity", quantity); err != nil {
		return err
	}
	line, err := o.Line(lineID)
	if err != nil {
		return err
	}
	if quantity.GreaterThan(line.PendingQuantity()) {
		return shared.Errorf(shared.ErrValidation,
			"line %d: receive quantity %s exceeds pending %s",
			line.LineNumber, quantity.String(), line.PendingQuantity().String())
	}
	line.ReceivedQuantity = line.ReceivedQuantity.Add(quantity)
	o.IncrementVersion()
	return nil
}

// RefreshReceiptStatus derives received / partially_received from the lines
func (o *PurchaseOrder) RefreshReceiptStatus() {
	if !o.HasReceipts() {
		return
	}
	all := true
	for i := range o.Lines {
		if !o.Lines[i].IsFullyReceived() {
			all = false
			break
		}
	}
	if all {
		o.Status = PurchaseOrderStatusReceived
	} else {
		o.Status = PurchaseOrderStatusPartiallyReceived
	}
	o.IncrementVersion()
}
