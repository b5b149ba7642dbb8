package purchasing

import (
	"context"
	"fmt"

	"github.com/erpsuite/backend/internal/domain/purchasing"
	"github.com/erpsuite/backend/internal/domain/shared"
	"github.com/erpsuite/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// GoodsReceiptCompletedHandler records completed receipts in the log
type GoodsReceiptCompletedHandler struct {
	logger *zap.Logger
}

// NewGoodsReceiptCompletedHandler creates the handler
func NewGoodsReceiptCompletedHandler(log *zap.Logger) *GoodsReceiptCompletedHandler {
	return &GoodsReceiptCompletedHandler{logger: log}
}

// EventTypes returns the event types this handler consumes
func (h *GoodsReceiptCompletedHandler) EventTypes() []string {
	return []string{purchasing.EventTypeGoodsReceiptCompleted}
}

// Handle logs the receipt and the resulting order status
func (h *GoodsReceiptCompletedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	e, ok := event.(*purchasing.GoodsReceiptCompletedEvent)
	if !ok {
		return fmt.Errorf("unexpected event type %T", event)
	}
	logger.FromContextOr(ctx, h.logger).Info("purchase order received",
		zap.String("tenant_id", e.TenantID().String()),
		zap.String("receipt_number", e.ReceiptNumber),
		zap.String("order_number", e.OrderNumber),
		zap.String("order_status", e.OrderStatus.String()),
		zap.String("warehouse_id", e.WarehouseID.String()),
		zap.Int("lines", e.LineCount),
	)
	return nil
}
