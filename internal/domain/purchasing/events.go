package purchasing

import (
	"github.com/erpsuite/backend/internal/domain/shared"
	"github.com/google/uuid"
)

const (
	AggregateTypeGoodsReceipt = "GoodsReceipt"

	EventTypeGoodsReceiptCompleted = "GoodsReceiptCompleted"
)

// GoodsReceiptCompletedEvent is raised once a receipt has been posted
type GoodsReceiptCompletedEvent struct {
	shared.BaseDomainEvent
	ReceiptNumber   string              `json:"receipt_number"`
	PurchaseOrderID uuid.UUID           `json:"purchase_order_id"`
	OrderNumber     string              `json:"order_number"`
	OrderStatus     PurchaseOrderStatus `json:"order_status"`
	WarehouseID     uuid.UUID           `json:"warehouse_id"`
	LineCount       int                 `json:"line_count"`
}

// NewGoodsReceiptCompletedEvent builds the event for r posted against order
func NewGoodsReceiptCompletedEvent(r *GoodsReceipt, order *PurchaseOrder) *GoodsReceiptCompletedEvent {
	return &GoodsReceiptCompletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeGoodsReceiptCompleted, AggregateTypeGoodsReceipt, r.ID, r.TenantID),
		ReceiptNumber:   r.Number,
		PurchaseOrderID: order.ID,
		OrderNumber:     order.Number,
		OrderStatus:     order.Status,
		WarehouseID:     r.WarehouseID,
		LineCount:       len(r.Lines),
	}
}
