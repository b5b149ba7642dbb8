package inventory

import (
	"context"
	"testing"

	"github.com/erpsuite/backend/internal/domain/inventory"
	"github.com/erpsuite/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestStockBelowThresholdHandler(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	h := NewStockBelowThresholdHandler(zap.New(core))
	assert.Equal(t, []string{inventory.EventTypeStockBelowThreshold}, h.EventTypes())

	tenantID := uuid.New()
	stock, err := inventory.NewStock(tenantID, uuid.New(), uuid.New(), nil)
	require.NoError(t, err)
	product, err := inventory.NewProduct(tenantID, "GEAR", "Gear", decimal.NewFromInt(2), decimal.NewFromInt(1))
	require.NoError(t, err)
	require.NoError(t, product.SetMinStock(decimal.NewFromInt(3)))

	require.NoError(t, h.Handle(context.Background(), inventory.NewStockBelowThresholdEvent(stock, product)))

	entries := logs.FilterMessage("stock below threshold").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "out_of_stock", fields["alert"])
	assert.Equal(t, "GEAR", fields["sku"])
	assert.Equal(t, "3", fields["min_stock"])
}

type otherEvent struct{ shared.BaseDomainEvent }

func TestStockBelowThresholdHandler_RejectsOtherEvents(t *testing.T) {
	h := NewStockBelowThresholdHandler(zap.NewNop())
	err := h.Handle(context.Background(), &otherEvent{shared.NewBaseDomainEvent("Other", "X", uuid.New(), uuid.New())})
	assert.Error(t, err)
}
