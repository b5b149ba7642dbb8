package sales_test

import (
	"context"
	"testing"

	appsales "github.com/erpsuite/backend/internal/application/sales"
	"github.com/erpsuite/backend/internal/domain/inventory"
	"github.com/erpsuite/backend/internal/domain/shared"
	"github.com/erpsuite/backend/internal/infrastructure/persistence"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type orderFixture struct {
	ctx       context.Context
	tenantID  uuid.UUID
	userID    uuid.UUID
	customers *appsales.CustomerService
	orders    *appsales.SalesOrderService
	product   *inventory.Product
}

func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()
	db, err := persistence.NewSQLiteDatabase("file::memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	groupRepo := persistence.NewGormCustomerGroupRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)

	f := &orderFixture{
		ctx:       context.Background(),
		tenantID:  uuid.New(),
		userID:    uuid.New(),
		customers: appsales.NewCustomerService(groupRepo, customerRepo),
		orders: appsales.NewSalesOrderService(persistence.NewGormSalesOrderRepository(db.DB), customerRepo, groupRepo,
			productRepo, persistence.NewGormWarehouseRepository(db.DB)),
	}
	f.product, err = inventory.NewProduct(f.tenantID, "LAMP", "Desk lamp", decimal.NewFromInt(50), decimal.NewFromInt(30))
	require.NoError(t, err)
	require.NoError(t, productRepo.Save(f.ctx, f.product))
	return f
}

func TestSalesOrderService_LineMath(t *testing.T) {
	f := newOrderFixture(t)
	customer, err := f.customers.Create(f.ctx, f.tenantID, f.userID, appsales.CreateCustomerRequest{Code: "C1", Name: "Customer"})
	require.NoError(t, err)

	discount := decimal.NewFromInt(10)
	price := decimal.NewFromInt(100)
	o, err := f.orders.Create(f.ctx, f.tenantID, f.userID, appsales.CreateSalesOrderRequest{
		CustomerID: customer.ID,
		Lines: []appsales.OrderLineRequest{{
			ProductID: f.product.ID, Quantity: decimal.NewFromInt(2), UnitPrice: &price,
			DiscountRate: &discount, TaxRate: decimal.NewFromInt(16),
		}},
	})
	require.NoError(t, err)

	assert.Regexp(t, `^SO-\d{4}-00001$`, o.Number)
	assert.Equal(t, "draft", o.Status)
	assert.True(t, decimal.NewFromInt(200).Equal(o.Subtotal))
	assert.True(t, decimal.NewFromInt(20).Equal(o.DiscountAmount))
	assert.True(t, decimal.RequireFromString("28.8").Equal(o.TaxAmount))
	assert.True(t, decimal.RequireFromString("208.8").Equal(o.Total))
	assert.Equal(t, "LAMP", o.Lines[0].ProductCode)
}

func TestSalesOrderService_DefaultsFromCatalogAndGroup(t *testing.T) {
	f := newOrderFixture(t)
	group, err := f.customers.CreateGroup(f.ctx, f.tenantID, f.userID, appsales.CreateCustomerGroupRequest{
		Code: "WHOLESALE", Name: "Wholesale", DiscountRate: decimal.NewFromInt(5),
	})
	require.NoError(t, err)
	customer, err := f.customers.Create(f.ctx, f.tenantID, f.userID, appsales.CreateCustomerRequest{Code: "C2", Name: "Shop", GroupID: &group.ID})
	require.NoError(t, err)

	o, err := f.orders.Create(f.ctx, f.tenantID, f.userID, appsales.CreateSalesOrderRequest{
		CustomerID: customer.ID,
		Lines:      []appsales.OrderLineRequest{{ProductID: f.product.ID, Quantity: decimal.NewFromInt(1)}},
	})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(50).Equal(o.Lines[0].UnitPrice))
	assert.True(t, decimal.NewFromInt(5).Equal(o.Lines[0].DiscountRate))
	assert.True(t, decimal.RequireFromString("47.5").Equal(o.Total))
}

func TestSalesOrderService_StatusAndValidation(t *testing.T) {
	f := newOrderFixture(t)
	customer, err := f.customers.Create(f.ctx, f.tenantID, f.userID, appsales.CreateCustomerRequest{Code: "C1", Name: "Customer"})
	require.NoError(t, err)

	_, err = f.orders.Create(f.ctx, f.tenantID, f.userID, appsales.CreateSalesOrderRequest{
		CustomerID: uuid.New(),
		Lines:      []appsales.OrderLineRequest{{ProductID: f.product.ID, Quantity: decimal.NewFromInt(1)}},
	})
	assert.ErrorIs(t, err, shared.ErrValidation)

	o, err := f.orders.Create(f.ctx, f.tenantID, f.userID, appsales.CreateSalesOrderRequest{
		CustomerID: customer.ID,
		Lines:      []appsales.OrderLineRequest{{ProductID: f.product.ID, Quantity: decimal.NewFromInt(1)}},
	})
	require.NoError(t, err)

	confirmed, err := f.orders.SetStatus(f.ctx, f.tenantID, o.ID, appsales.SetStatusRequest{Status: "CONFIRMED"})
	require.NoError(t, err)
	assert.Equal(t, "confirmed", confirmed.Status)

	_, err = f.orders.SetStatus(f.ctx, f.tenantID, o.ID, appsales.SetStatusRequest{Status: "shipped"})
	assert.ErrorIs(t, err, shared.ErrValidation)

	items, total, err := f.orders.List(f.ctx, f.tenantID, appsales.SalesOrderListFilter{Status: "confirmed"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, o.Number, items[0].Number)

	notes := "call before delivery"
	updated, err := f.orders.Update(f.ctx, f.tenantID, o.ID, appsales.UpdateSalesOrderRequest{
		Notes: &notes,
		Lines: []appsales.OrderLineRequest{{ProductID: f.product.ID, Quantity: decimal.NewFromInt(3)}},
	})
	require.NoError(t, err)
	assert.Equal(t, notes, updated.Notes)
	assert.True(t, decimal.NewFromInt(150).Equal(updated.Total))
}
