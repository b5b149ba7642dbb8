package inventory

import (
	"context"
	"fmt"

	"github.com/erpsuite/backend/internal/domain/inventory"
	"github.com/erpsuite/backend/internal/domain/shared"
	"github.com/erpsuite/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// StockBelowThresholdHandler logs a warning for every stock row that drops
// to or below its product's minimum stock
type StockBelowThresholdHandler struct {
	logger *zap.Logger
}

// NewStockBelowThresholdHandler creates the handler
func NewStockBelowThresholdHandler(log *zap.Logger) *StockBelowThresholdHandler {
	return &StockBelowThresholdHandler{logger: log}
}

// EventTypes returns the event types this handler consumes
func (h *StockBelowThresholdHandler) EventTypes() []string {
	return []string{inventory.EventTypeStockBelowThreshold}
}

// Handle logs the low-stock alert
func (h *StockBelowThresholdHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	e, ok := event.(*inventory.StockBelowThresholdEvent)
	if !ok {
		return fmt.Errorf("unexpected event type %T", event)
	}
	alert := "low_stock"
	if !e.Quantity.IsPositive() {
		alert = "out_of_stock"
	}
	logger.FromContextOr(ctx, h.logger).Warn("stock below threshold",
		zap.String("alert", alert),
		zap.String("tenant_id", e.TenantID().String()),
		zap.String("stock_id", e.AggregateID().String()),
		zap.String("product_id", e.ProductID.String()),
		zap.String("sku", e.ProductSKU),
		zap.String("warehouse_id", e.WarehouseID.String()),
		zap.String("quantity", e.Quantity.String()),
		zap.String("min_stock", e.MinStock.String()),
	)
	return nil
}
