package purchasing

import (
	"strings"
	"time"

	"github.com/erpsuite/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// GoodsReceiptStatus is pending until the receipt is completed
type GoodsReceiptStatus string

const (
	GoodsReceiptStatusPending   GoodsReceiptStatus = "pending"
	GoodsReceiptStatusCompleted GoodsReceiptStatus = "completed"
)

// IsValid reports whether s is a known status
func (s GoodsReceiptStatus) IsValid() bool {
	return s == GoodsReceiptStatusPending || s == GoodsReceiptStatusCompleted
}

// ReceiptLineInput names the order line being received and how much of it
type ReceiptLineInput struct {
	PurchaseOrderLineID uuid.UUID
	Quantity            decimal.Decimal
}

// GoodsReceiptLine records quantity physically received for one order line
type GoodsReceiptLine struct {
	ID                  uuid.UUID
	ReceiptID           uuid.UUID
	PurchaseOrderLineID uuid.UUID
	ProductID           uuid.UUID
	Quantity            decimal.Decimal
}

// GoodsReceipt records goods arriving against a purchase order
type GoodsReceipt struct {
	shared.TenantAggregateRoot
	Number          string
	PurchaseOrderID uuid.UUID
	WarehouseID     uuid.UUID
	ReceiptDate     time.Time
	Status          GoodsReceiptStatus
	Notes           string
	CompletedAt     *time.Time
	Lines           []GoodsReceiptLine
}

// NewGoodsReceipt creates a pending receipt for order. Quantities are
// checked against what is still pending per order line, summing repeated
// references to the same line.
func NewGoodsReceipt(
	tenantID uuid.UUID,
	number string,
	order *PurchaseOrder,
	warehouseID uuid.UUID,
	receiptDate time.Time,
	inputs []ReceiptLineInput,
) (*GoodsReceipt, error) {
	if strings.TrimSpace(number) == "" {
		return nil, shared.Errorf(shared.ErrValidation, "receipt number is required")
	}
	if order == nil {
		return nil, shared.Errorf(shared.ErrValidation, "purchase_order_id is required")
	}
	if warehouseID == uuid.Nil {
		return nil, shared.Errorf(shared.ErrValidation, "warehouse_id is required")
	}
	if order.Status == PurchaseOrderStatusCancelled {
		return nil, shared.Errorf(shared.ErrInvalidState, "cannot receive goods for a cancelled order")
	}
	if len(inputs) == 0 {
		return nil, shared.Errorf(shared.ErrValidation, "receipt must have at least one line")
	}
	if receiptDate.IsZero() {
		receiptDate = time.Now()
	}

	r := &GoodsReceipt{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Number:              number,
		PurchaseOrderID:     order.ID,
		WarehouseID:         warehouseID,
		ReceiptDate:         receiptDate,
		Status:              GoodsReceiptStatusPending,
	}

	requested := make(map[uuid.UUID]decimal.Decimal, len(inputs))
	for _, in := range inputs {
		if err := shared.RequirePositive("quantity", in.Quantity); err != nil {
			return nil, err
		}
		line, err := order.Line(in.PurchaseOrderLineID)
		if err != nil {
			return nil, shared.Errorf(shared.ErrValidation, "purchase_order_line_id %s does not belong to order %s", in.PurchaseOrderLineID, order.Number)
		}
		sum := requested[line.ID].Add(in.Quantity)
		if sum.GreaterThan(line.PendingQuantity()) {
			return nil, shared.Errorf(shared.ErrValidation,
				"line %d: quantity %s exceeds pending %s",
				line.LineNumber, sum.String(), line.PendingQuantity().String())
		}
		requested[line.ID] = sum
		r.Lines = append(r.Lines, GoodsReceiptLine{
			ID:                  uuid.New(),
			ReceiptID:           r.ID,
			PurchaseOrderLineID: line.ID,
			ProductID:           line.ProductID,
			Quantity:            in.Quantity,
		})
	}
	return r, nil
}

// SetNotes sets free-form notes
func (r *GoodsReceipt) SetNotes(notes string) {
	r.Notes = strings.TrimSpace(notes)
	r.IncrementVersion()
}

// IsCompleted reports whether the receipt has been posted
func (r *GoodsReceipt) IsCompleted() bool {
	return r.Status == GoodsReceiptStatusCompleted
}

// Complete posts the receipt against order: received quantities are added
// to the order lines and the order status is refreshed. A receipt can be
// completed only once.
func (r *GoodsReceipt) Complete(order *PurchaseOrder) error {
	if r.IsCompleted() {
		return shared.Errorf(shared.ErrInvalidState, "goods receipt %s is already completed", r.Number)
	}
	if order == nil || order.ID != r.PurchaseOrderID {
		return shared.Errorf(shared.ErrInvalidInput, "purchase order does not match receipt")
	}
	for _, line := range r.Lines {
		if err := order.Receive(line.PurchaseOrderLineID, line.Quantity); err != nil {
			return err
		}
	}
	order.RefreshReceiptStatus()

	now := time.Now()
	r.Status = GoodsReceiptStatusCompleted
	r.CompletedAt = &now
	r.IncrementVersion()
	r.AddDomainEvent(NewGoodsReceiptCompletedEvent(r, order))
	return nil
}
