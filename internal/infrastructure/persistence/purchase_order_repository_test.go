package persistence

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/erpsuite/backend/internal/domain/purchasing"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormGoodsReceiptRepository_FindByIDForUpdate(t *testing.T) {
	db, mock, mockDB := newMockGormDB(t)
	defer mockDB.Close()
	repo := NewGormGoodsReceiptRepository(db)

	tenantID := uuid.New()
	id := uuid.New()
	rows := sqlmock.NewRows([]string{"id", "tenant_id", "number", "status"}).
		AddRow(id.String(), tenantID.String(), "GR-2026-00001", "pending")

	mock.ExpectQuery(`SELECT \* FROM "goods_receipts" WHERE tenant_id = \$1 AND id = \$2 ORDER BY "goods_receipts"."id" LIMIT \$3 FOR UPDATE`).
		WithArgs(tenantID, id, 1).
		WillReturnRows(rows)
	mock.ExpectQuery(`SELECT \* FROM "goods_receipt_lines"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "receipt_id"}))

	receipt, err := repo.FindByIDForUpdate(context.Background(), tenantID, id)

	require.NoError(t, err)
	assert.Equal(t, id, receipt.ID)
	assert.Equal(t, purchasing.GoodsReceiptStatus("pending"), receipt.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormPurchaseOrderRepository_Locking(t *testing.T) {
	tenantID := uuid.New()
	id := uuid.New()
	empty := func() *sqlmock.Rows { return sqlmock.NewRows([]string{"id"}) }

	t.Run("for update locks the header row", func(t *testing.T) {
		db, mock, mockDB := newMockGormDB(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "purchase_orders" WHERE tenant_id = \$1 AND id = \$2 ORDER BY "purchase_orders"."id" LIMIT \$3 FOR UPDATE`).
			WithArgs(tenantID, id, 1).
			WillReturnRows(empty())

		_, err := NewGormPurchaseOrderRepository(db).FindByIDForUpdate(context.Background(), tenantID, id)

		assert.EqualError(t, err, "purchase order not found")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("plain read takes no lock", func(t *testing.T) {
		db, mock, mockDB := newMockGormDB(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "purchase_orders" WHERE tenant_id = \$1 AND id = \$2 ORDER BY "purchase_orders"."id" LIMIT \$3$`).
			WithArgs(tenantID, id, 1).
			WillReturnRows(empty())

		_, err := NewGormPurchaseOrderRepository(db).FindByIDForTenant(context.Background(), tenantID, id)

		assert.EqualError(t, err, "purchase order not found")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
