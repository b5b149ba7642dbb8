package purchasing_test

import (
	"context"
	"testing"

	apppur "github.com/erpsuite/backend/internal/application/purchasing"
	"github.com/erpsuite/backend/internal/domain/inventory"
	"github.com/erpsuite/backend/internal/domain/purchasing"
	"github.com/erpsuite/backend/internal/domain/shared"
	"github.com/erpsuite/backend/internal/infrastructure/persistence"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type capturePublisher struct {
	events []shared.DomainEvent
}

func (p *capturePublisher) Publish(_ context.Context, events ...shared.DomainEvent) error {
	p.events = append(p.events, events...)
	return nil
}

type fixture struct {
	ctx       context.Context
	tenantID  uuid.UUID
	userID    uuid.UUID
	db        *persistence.Database
	suppliers *apppur.SupplierService
	orders    *apppur.PurchaseOrderService
	receipts  *apppur.GoodsReceiptService
	events    *capturePublisher

	supplier  *apppur.SupplierResponse
	warehouse *inventory.Warehouse
	bolt      *inventory.Product
	nut       *inventory.Product
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := persistence.NewSQLiteDatabase("file::memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	supplierRepo := persistence.NewGormSupplierRepository(db.DB)
	orderRepo := persistence.NewGormPurchaseOrderRepository(db.DB)
	receiptRepo := persistence.NewGormGoodsReceiptRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	warehouseRepo := persistence.NewGormWarehouseRepository(db.DB)
	events := &capturePublisher{}

	f := &fixture{
		ctx:       context.Background(),
		tenantID:  uuid.New(),
		userID:    uuid.New(),
		db:        db,
		suppliers: apppur.NewSupplierService(persistence.NewGormSupplierCategoryRepository(db.DB), supplierRepo),
		orders:    apppur.NewPurchaseOrderService(orderRepo, supplierRepo, productRepo, warehouseRepo),
		receipts: apppur.NewGoodsReceiptService(receiptRepo, orderRepo, warehouseRepo,
			persistence.NewGormPurchasingScope(db.DB), events, zap.NewNop()),
		events: events,
	}

	f.supplier, err = f.suppliers.Create(f.ctx, f.tenantID, f.userID, apppur.CreateSupplierRequest{Code: "ACME", Name: "Acme Supplies"})
	require.NoError(t, err)

	f.warehouse, err = inventory.NewWarehouse(f.tenantID, "MAIN", "Main warehouse")
	require.NoError(t, err)
	require.NoError(t, warehouseRepo.Save(f.ctx, f.warehouse))

	f.bolt, err = inventory.NewProduct(f.tenantID, "BOLT-10", "Bolt 10mm", decimal.NewFromInt(3), decimal.NewFromInt(2))
	require.NoError(t, err)
	require.NoError(t, productRepo.Save(f.ctx, f.bolt))
	f.nut, err = inventory.NewProduct(f.tenantID, "NUT-10", "Nut 10mm", decimal.NewFromInt(1), decimal.RequireFromString("0.5"))
	require.NoError(t, err)
	require.NoError(t, productRepo.Save(f.ctx, f.nut))
	return f
}

func (f *fixture) order(t *testing.T) *apppur.PurchaseOrderResponse {
	t.Helper()
	o, err := f.orders.Create(f.ctx, f.tenantID, f.userID, apppur.CreatePurchaseOrderRequest{
		SupplierID:  f.supplier.ID,
		WarehouseID: &f.warehouse.ID,
		Lines: []apppur.OrderLineRequest{
			{ProductID: f.bolt.ID, Quantity: decimal.NewFromInt(10), UnitPrice: decimal.NewFromInt(2), TaxRate: decimal.NewFromInt(16)},
			{ProductID: f.nut.ID, Quantity: decimal.NewFromInt(4), UnitPrice: decimal.RequireFromString("0.5"), TaxRate: decimal.Zero},
		},
	})
	require.NoError(t, err)
	return o
}

func TestSupplierService(t *testing.T) {
	f := newFixture(t)

	_, err := f.suppliers.Create(f.ctx, f.tenantID, f.userID, apppur.CreateSupplierRequest{Code: "acme", Name: "Dup"})
	assert.ErrorIs(t, err, shared.ErrAlreadyExists)

	cat, err := f.suppliers.CreateCategory(f.ctx, f.tenantID, f.userID, apppur.CreateSupplierCategoryRequest{Code: "RAW", Name: "Raw materials"})
	require.NoError(t, err)

	missing := uuid.New()
	_, err = f.suppliers.Update(f.ctx, f.tenantID, f.supplier.ID, apppur.UpdateSupplierRequest{CategoryID: &missing})
	assert.ErrorIs(t, err, shared.ErrValidation)

	terms := 30
	updated, err := f.suppliers.Update(f.ctx, f.tenantID, f.supplier.ID, apppur.UpdateSupplierRequest{CategoryID: &cat.ID, PaymentTermsDays: &terms})
	require.NoError(t, err)
	assert.Equal(t, &cat.ID, updated.CategoryID)
	assert.Equal(t, 30, updated.PaymentTermsDays)

	list, total, err := f.suppliers.List(f.ctx, f.tenantID, apppur.SupplierListFilter{CategoryID: &cat.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "ACME", list[0].Code)
}

func TestPurchaseOrderService_Create(t *testing.T) {
	f := newFixture(t)
	o := f.order(t)

	assert.Regexp(t, `^PO-\d{4}-00001$`, o.Number)
	assert.Equal(t, "draft", o.Status)
	require.Len(t, o.Lines, 2)
	assert.Equal(t, "BOLT-10", o.Lines[0].ProductCode)
	assert.Equal(t, "Bolt 10mm", o.Lines[0].ProductName)
	assert.True(t, decimal.RequireFromString("3.2").Equal(o.Lines[0].TaxAmount))
	assert.True(t, decimal.RequireFromString("22").Equal(o.Subtotal))
	assert.True(t, decimal.RequireFromString("3.2").Equal(o.TaxAmount))
	assert.True(t, decimal.RequireFromString("25.2").Equal(o.Total))
	assert.True(t, decimal.NewFromInt(10).Equal(o.Lines[0].PendingQuantity))

	second := f.order(t)
	assert.Regexp(t, `^PO-\d{4}-00002$`, second.Number)

	_, err := f.orders.Create(f.ctx, f.tenantID, f.userID, apppur.CreatePurchaseOrderRequest{
		SupplierID: uuid.New(),
		Lines:      []apppur.OrderLineRequest{{ProductID: f.bolt.ID, Quantity: decimal.NewFromInt(1)}},
	})
	assert.ErrorIs(t, err, shared.ErrValidation)

	_, err = f.orders.Create(f.ctx, f.tenantID, f.userID, apppur.CreatePurchaseOrderRequest{
		SupplierID: f.supplier.ID,
		Lines:      []apppur.OrderLineRequest{{ProductID: uuid.New(), Quantity: decimal.NewFromInt(1)}},
	})
	assert.ErrorIs(t, err, shared.ErrValidation)
}

func TestPurchaseOrderService_SetStatusAndList(t *testing.T) {
	f := newFixture(t)
	o := f.order(t)
	f.order(t)

	sent, err := f.orders.SetStatus(f.ctx, f.tenantID, o.ID, apppur.SetStatusRequest{Status: "sent"})
	require.NoError(t, err)
	assert.Equal(t, "sent", sent.Status)

	_, err = f.orders.SetStatus(f.ctx, f.tenantID, o.ID, apppur.SetStatusRequest{Status: "shipped"})
	assert.ErrorIs(t, err, shared.ErrValidation)

	back, err := f.orders.SetStatus(f.ctx, f.tenantID, o.ID, apppur.SetStatusRequest{Status: "draft"})
	require.NoError(t, err)
	assert.Equal(t, "draft", back.Status)

	_, total, err := f.orders.List(f.ctx, f.tenantID, apppur.PurchaseOrderListFilter{SupplierID: &f.supplier.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}

func TestGoodsReceiptService_Complete(t *testing.T) {
	f := newFixture(t)
	o := f.order(t)

	_, err := f.receipts.Create(f.ctx, f.tenantID, f.userID, apppur.CreateGoodsReceiptRequest{
		PurchaseOrderID: o.ID,
		Lines:           []apppur.ReceiptLineRequest{{PurchaseOrderLineID: o.Lines[0].ID, Quantity: decimal.NewFromInt(11)}},
	})
	assert.ErrorIs(t, err, shared.ErrValidation)

	gr, err := f.receipts.Create(f.ctx, f.tenantID, f.userID, apppur.CreateGoodsReceiptRequest{
		PurchaseOrderID: o.ID,
		Lines:           []apppur.ReceiptLineRequest{{PurchaseOrderLineID: o.Lines[0].ID, Quantity: decimal.NewFromInt(6)}},
	})
	require.NoError(t, err)
	assert.Regexp(t, `^GR-\d{4}-00001$`, gr.Number)
	assert.Equal(t, "pending", gr.Status)
	assert.Equal(t, f.warehouse.ID, gr.WarehouseID)

	done, err := f.receipts.Complete(f.ctx, f.tenantID, f.userID, gr.ID)
	require.NoError(t, err)
	assert.Equal(t, "completed", done.Status)
	assert.NotNil(t, done.CompletedAt)

	order, err := f.orders.GetByID(f.ctx, f.tenantID, o.ID)
	require.NoError(t, err)
	assert.Equal(t, "partially_received", order.Status)
	assert.True(t, decimal.NewFromInt(6).Equal(order.Lines[0].ReceivedQuantity))
	assert.True(t, decimal.NewFromInt(4).Equal(order.Lines[0].PendingQuantity))

	stock, err := persistence.NewGormStockRepository(f.db.DB).FindByKey(f.ctx, f.tenantID, f.bolt.ID, f.warehouse.ID, nil)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(6).Equal(stock.Quantity))

	txns, err := persistence.NewGormInventoryTransactionRepository(f.db.DB).FindAllForTenant(f.ctx, f.tenantID,
		shared.Filter{Filters: map[string]any{"reference": gr.Number}}.Normalize())
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, inventory.TransactionTypeIn, txns[0].Type)

	require.Len(t, f.events.events, 1)
	assert.Equal(t, purchasing.EventTypeGoodsReceiptCompleted, f.events.events[0].EventType())

	_, err = f.receipts.Complete(f.ctx, f.tenantID, f.userID, gr.ID)
	assert.ErrorIs(t, err, shared.ErrInvalidState)

	_, err = f.orders.Update(f.ctx, f.tenantID, o.ID, apppur.UpdatePurchaseOrderRequest{
		Lines: []apppur.OrderLineRequest{{ProductID: f.nut.ID, Quantity: decimal.NewFromInt(1)}},
	})
	assert.ErrorIs(t, err, shared.ErrInvalidState)
}

func TestGoodsReceiptService_FullReceipt(t *testing.T) {
	f := newFixture(t)
	o := f.order(t)

	gr, err := f.receipts.Create(f.ctx, f.tenantID, f.userID, apppur.CreateGoodsReceiptRequest{
		PurchaseOrderID: o.ID,
		Lines: []apppur.ReceiptLineRequest{
			{PurchaseOrderLineID: o.Lines[0].ID, Quantity: decimal.NewFromInt(10)},
			{PurchaseOrderLineID: o.Lines[1].ID, Quantity: decimal.NewFromInt(4)},
		},
	})
	require.NoError(t, err)
	_, err = f.receipts.Complete(f.ctx, f.tenantID, f.userID, gr.ID)
	require.NoError(t, err)

	order, err := f.orders.GetByID(f.ctx, f.tenantID, o.ID)
	require.NoError(t, err)
	assert.Equal(t, "received", order.Status)

	list, total, err := f.receipts.List(f.ctx, f.tenantID, apppur.GoodsReceiptListFilter{PurchaseOrderID: &o.ID, Status: "completed"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, list[0].Lines, 2)
}

func TestGoodsReceiptService_RequiresWarehouse(t *testing.T) {
	f := newFixture(t)
	o, err := f.orders.Create(f.ctx, f.tenantID, f.userID, apppur.CreatePurchaseOrderRequest{
		SupplierID: f.supplier.ID,
		Lines:      []apppur.OrderLineRequest{{ProductID: f.bolt.ID, Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(1)}},
	})
	require.NoError(t, err)

	_, err = f.receipts.Create(f.ctx, f.tenantID, f.userID, apppur.CreateGoodsReceiptRequest{
		PurchaseOrderID: o.ID,
		Lines:           []apppur.ReceiptLineRequest{{PurchaseOrderLineID: o.Lines[0].ID, Quantity: decimal.NewFromInt(1)}},
	})
	assert.ErrorIs(t, err, shared.ErrValidation)
}

// racingScope fails the first n units of work after they ran, as when a
// concurrent movement inserted the same stock row first
type racingScope struct {
	inner apppur.TransactionScope
	n     int
	calls int
}

func (s *racingScope) Execute(ctx context.Context, fn func(repos apppur.TransactionalRepositories) error) error {
	s.calls++
	return s.inner.Execute(ctx, func(repos apppur.TransactionalRepositories) error {
		if err := fn(repos); err != nil {
			return err
		}
		if s.n > 0 {
			s.n--
			return shared.Errorf(shared.ErrAlreadyExists, "stock already exists")
		}
		return nil
	})
}

func (f *fixture) receiptServiceWith(scope apppur.TransactionScope) *apppur.GoodsReceiptService {
	return apppur.NewGoodsReceiptService(
		persistence.NewGormGoodsReceiptRepository(f.db.DB),
		persistence.NewGormPurchaseOrderRepository(f.db.DB),
		persistence.NewGormWarehouseRepository(f.db.DB),
		scope, f.events, zap.NewNop())
}

func TestGoodsReceiptService_CompleteRetriesStockRace(t *testing.T) {
	f := newFixture(t)
	o := f.order(t)
	gr, err := f.receipts.Create(f.ctx, f.tenantID, f.userID, apppur.CreateGoodsReceiptRequest{
		PurchaseOrderID: o.ID,
		Lines:           []apppur.ReceiptLineRequest{{PurchaseOrderLineID: o.Lines[0].ID, Quantity: decimal.NewFromInt(6)}},
	})
	require.NoError(t, err)

	scope := &racingScope{inner: persistence.NewGormPurchasingScope(f.db.DB), n: 1}
	done, err := f.receiptServiceWith(scope).Complete(f.ctx, f.tenantID, f.userID, gr.ID)

	require.NoError(t, err)
	assert.Equal(t, 2, scope.calls)
	assert.Equal(t, "completed", done.Status)

	// the rolled back attempt left nothing behind
	stock, err := persistence.NewGormStockRepository(f.db.DB).FindByKey(f.ctx, f.tenantID, f.bolt.ID, f.warehouse.ID, nil)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(6).Equal(stock.Quantity), "quantity %s", stock.Quantity)

	order, err := f.orders.GetByID(f.ctx, f.tenantID, o.ID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(6).Equal(order.Lines[0].ReceivedQuantity))
	assert.Len(t, f.events.events, 1)
}

func TestGoodsReceiptService_CompleteGivesUpAfterRetries(t *testing.T) {
	f := newFixture(t)
	o := f.order(t)
	gr, err := f.receipts.Create(f.ctx, f.tenantID, f.userID, apppur.CreateGoodsReceiptRequest{
		PurchaseOrderID: o.ID,
		Lines:           []apppur.ReceiptLineRequest{{PurchaseOrderLineID: o.Lines[0].ID, Quantity: decimal.NewFromInt(6)}},
	})
	require.NoError(t, err)

	scope := &racingScope{inner: persistence.NewGormPurchasingScope(f.db.DB), n: 5}
	_, err = f.receiptServiceWith(scope).Complete(f.ctx, f.tenantID, f.userID, gr.ID)

	assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	assert.Equal(t, 2, scope.calls)

	pending, err := f.receipts.GetByID(f.ctx, f.tenantID, gr.ID)
	require.NoError(t, err)
	assert.Equal(t, "pending", pending.Status)
	assert.Empty(t, f.events.events)
}
