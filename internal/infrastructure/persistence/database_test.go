package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/erpsuite/backend/internal/domain/inventory"
	"github.com/erpsuite/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockDatabase creates a Database instance with a mocked SQL connection
func newMockDatabase(t *testing.T) (*Database, sqlmock.Sqlmock, *sql.DB) {
	gormDB, mock, mockDB := newMockGormDB(t)
	return &Database{DB: gormDB}, mock, mockDB
}

func TestNewGormConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg := newGormConfig(nil)
		assert.True(t, cfg.SkipDefaultTransaction)
		assert.True(t, cfg.PrepareStmt)
		assert.True(t, cfg.TranslateError)
	})

	t.Run("options apply in order", func(t *testing.T) {
		cfg := newGormConfig([]Option{WithoutPreparedStatements()})
		assert.False(t, cfg.PrepareStmt)
	})
}

func TestDatabase_Stats(t *testing.T) {
	db, _, mockDB := newMockDatabase(t)
	defer mockDB.Close()

	stats, err := db.Stats()

	require.NoError(t, err)
	assert.Equal(t, stats.OpenConnections, stats.InUse+stats.Idle)
	assert.Equal(t, time.Duration(0), stats.WaitDuration)
}

// newPingMonitoredDatabase skips gorm's ping on open so ExpectPing only sees Database.Ping
func newPingMonitoredDatabase(t *testing.T) (*Database, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: mockDB, DriverName: "postgres"}), &gorm.Config{
		SkipDefaultTransaction: true,
		DisableAutomaticPing:   true,
	})
	require.NoError(t, err)
	return &Database{DB: gormDB}, mock, mockDB
}

func TestDatabase_Ping(t *testing.T) {
	t.Run("successful ping", func(t *testing.T) {
		db, mock, mockDB := newPingMonitoredDatabase(t)
		defer mockDB.Close()

		mock.ExpectPing()

		assert.NoError(t, db.Ping())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ping error surfaces", func(t *testing.T) {
		db, mock, mockDB := newPingMonitoredDatabase(t)
		defer mockDB.Close()

		mock.ExpectPing().WillReturnError(fmt.Errorf("connection refused"))

		assert.EqualError(t, db.Ping(), "connection refused")
	})
}

func TestDatabase_Close(t *testing.T) {
	db, mock, _ := newMockDatabase(t)

	mock.ExpectClose()

	assert.NoError(t, db.Close())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDatabase_Transaction(t *testing.T) {
	t.Run("commits on success", func(t *testing.T) {
		db, mock, mockDB := newMockDatabase(t)
		defer mockDB.Close()

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "stocks" SET "quantity"=\$1 WHERE tenant_id = \$2`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := db.Transaction(func(tx *gorm.DB) error {
			return tx.Model(&models.StockModel{}).
				Where("tenant_id = ?", uuid.New()).
				UpdateColumn("quantity", 0).Error
		})

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back on error", func(t *testing.T) {
		db, mock, mockDB := newMockDatabase(t)
		defer mockDB.Close()

		mock.ExpectBegin()
		mock.ExpectRollback()

		err := db.Transaction(func(tx *gorm.DB) error {
			return assert.AnError
		})

		assert.ErrorIs(t, err, assert.AnError)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestNewSQLiteDatabase(t *testing.T) {
	database, err := NewSQLiteDatabase("file::memory:")
	require.NoError(t, err)
	defer database.Close()

	for _, m := range models.All() {
		assert.True(t, database.DB.Migrator().HasTable(m), "missing table for %T", m)
	}

	stats, err := database.Stats()
	require.NoError(t, err)
	assert.Equal(t, 1, stats.MaxOpenConnections)
}

func TestNextDocumentNumber(t *testing.T) {
	db := newSQLiteDB(t)
	ctx := context.Background()
	tenantID := uuid.New()
	year := time.Now().Year()

	first, err := nextDocumentNumber(ctx, db, &models.PurchaseOrderModel{}, tenantID, "PO")
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("PO-%d-00001", year), first)

	seed := func(tenant uuid.UUID, number string) {
		require.NoError(t, db.Exec(
			`INSERT INTO purchase_orders (id, created_at, updated_at, version, tenant_id, number, supplier_id, order_date, status, total)
			 VALUES (?, ?, ?, 1, ?, ?, ?, ?, 'draft', 0)`,
			uuid.New(), time.Now(), time.Now(), tenant, number, uuid.New(), time.Now(),
		).Error)
	}
	seed(tenantID, fmt.Sprintf("PO-%d-00007", year))
	seed(tenantID, fmt.Sprintf("PO-%d-00012", year))
	seed(tenantID, fmt.Sprintf("PO-%d-00099", year-1))
	seed(uuid.New(), fmt.Sprintf("PO-%d-00500", year))

	next, err := nextDocumentNumber(ctx, db, &models.PurchaseOrderModel{}, tenantID, "PO")
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("PO-%d-00013", year), next)

	// six digits sort below five as text
	seed(tenantID, fmt.Sprintf("PO-%d-99999", year))
	seed(tenantID, fmt.Sprintf("PO-%d-100000", year))
	next, err = nextDocumentNumber(ctx, db, &models.PurchaseOrderModel{}, tenantID, "PO")
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("PO-%d-100001", year), next)
}

func TestGormStockRepository_FindByKey(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewGormStockRepository(db)
	ctx := context.Background()

	tenantID := uuid.New()
	productID := uuid.New()
	warehouseID := uuid.New()
	locationID := uuid.New()

	plain, err := inventory.NewStock(tenantID, productID, warehouseID, nil)
	require.NoError(t, err)
	require.NoError(t, plain.Receive(decimal.NewFromInt(5)))
	require.NoError(t, repo.Save(ctx, plain))

	binned, err := inventory.NewStock(tenantID, productID, warehouseID, &locationID)
	require.NoError(t, err)
	require.NoError(t, binned.Receive(decimal.NewFromInt(2)))
	require.NoError(t, repo.Save(ctx, binned))

	found, err := repo.FindByKey(ctx, tenantID, productID, warehouseID, nil)
	require.NoError(t, err)
	assert.Equal(t, plain.ID, found.ID)
	assert.True(t, found.Quantity.Equal(decimal.NewFromInt(5)))

	found, err = repo.FindByKey(ctx, tenantID, productID, warehouseID, &locationID)
	require.NoError(t, err)
	assert.Equal(t, binned.ID, found.ID)

	_, err = repo.FindByKey(ctx, uuid.New(), productID, warehouseID, nil)
	assert.EqualError(t, err, "stock not found")
}
