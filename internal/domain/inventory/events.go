package inventory

import (
	"github.com/erpsuite/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	AggregateTypeStock = "Stock"

	EventTypeStockBelowThreshold = "StockBelowThreshold"
)

// StockBelowThresholdEvent is raised when an outbound movement leaves a
// stock row at or below the product's minimum stock
type StockBelowThresholdEvent struct {
	shared.BaseDomainEvent
	ProductID   uuid.UUID       `json:"product_id"`
	ProductSKU  string          `json:"product_sku"`
	WarehouseID uuid.UUID       `json:"warehouse_id"`
	Quantity    decimal.Decimal `json:"quantity"`
	MinStock    decimal.Decimal `json:"min_stock"`
}

// NewStockBelowThresholdEvent builds the event for stock and its product
func NewStockBelowThresholdEvent(s *Stock, p *Product) *StockBelowThresholdEvent {
	return &StockBelowThresholdEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockBelowThreshold, AggregateTypeStock, s.ID, s.TenantID),
		ProductID:       p.ID,
		ProductSKU:      p.SKU,
		WarehouseID:     s.WarehouseID,
		Quantity:        s.Quantity,
		MinStock:        p.MinStock,
	}
}
