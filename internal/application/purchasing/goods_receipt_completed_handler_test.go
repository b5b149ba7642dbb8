package purchasing

import (
	"context"
	"testing"
	"time"

	"github.com/erpsuite/backend/internal/domain/purchasing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestGoodsReceiptCompletedHandler(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	h := NewGoodsReceiptCompletedHandler(zap.New(core))

	tenantID := uuid.New()
	order, err := purchasing.NewPurchaseOrder(tenantID, "PO-2026-00001", uuid.New(), time.Now(), []purchasing.LineInput{
		{ProductID: uuid.New(), ProductName: "Widget", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(5)},
	})
	require.NoError(t, err)
	receipt, err := purchasing.NewGoodsReceipt(tenantID, "GR-2026-00001", order, uuid.New(), time.Now(),
		[]purchasing.ReceiptLineInput{{PurchaseOrderLineID: order.Lines[0].ID, Quantity: decimal.NewFromInt(2)}})
	require.NoError(t, err)
	require.NoError(t, receipt.Complete(order))

	events := receipt.GetDomainEvents()
	require.Len(t, events, 1)
	assert.Contains(t, h.EventTypes(), events[0].EventType())
	require.NoError(t, h.Handle(context.Background(), events[0]))

	entries := logs.FilterMessage("purchase order received").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "PO-2026-00001", fields["order_number"])
	assert.Equal(t, "received", fields["order_status"])
}
