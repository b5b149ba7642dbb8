package persistence

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/erpsuite/backend/internal/domain/inventory"
	"github.com/erpsuite/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockGormDB opens GORM on a mocked postgres connection
func newMockGormDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return gormDB, mock, mockDB
}

func newMockWarehouseRepository(t *testing.T) (*GormWarehouseRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, mockDB := newMockGormDB(t)
	return NewGormWarehouseRepository(db), mock, mockDB
}

var warehouseColumns = []string{"id", "created_at", "updated_at", "version", "tenant_id", "created_by", "code", "name", "address", "is_active"}

func TestGormWarehouseRepository_FindByIDForTenant(t *testing.T) {
	t.Run("finds warehouse within tenant", func(t *testing.T) {
		repo, mock, mockDB := newMockWarehouseRepository(t)
		defer mockDB.Close()

		warehouseID := uuid.New()
		tenantID := uuid.New()
		now := time.Now()

		rows := sqlmock.NewRows(warehouseColumns).
			AddRow(warehouseID, now, now, 2, tenantID, nil, "WH001", "Main Warehouse", "Dock 4", true)

		mock.ExpectQuery(`SELECT \* FROM "warehouses" WHERE tenant_id = \$1 AND id = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(tenantID, warehouseID, 1).
			WillReturnRows(rows)

		warehouse, err := repo.FindByIDForTenant(context.Background(), tenantID, warehouseID)

		require.NoError(t, err)
		assert.Equal(t, warehouseID, warehouse.ID)
		assert.Equal(t, tenantID, warehouse.TenantID)
		assert.Equal(t, "WH001", warehouse.Code)
		assert.Equal(t, "Dock 4", warehouse.Address)
		assert.Equal(t, 2, warehouse.Version)
		assert.True(t, warehouse.IsActive)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps missing rows to not found", func(t *testing.T) {
		repo, mock, mockDB := newMockWarehouseRepository(t)
		defer mockDB.Close()

		warehouseID := uuid.New()
		tenantID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "warehouses" WHERE tenant_id = \$1 AND id = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(tenantID, warehouseID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		warehouse, err := repo.FindByIDForTenant(context.Background(), tenantID, warehouseID)

		assert.Nil(t, warehouse)
		assert.True(t, errors.Is(err, shared.ErrNotFound))
		assert.Equal(t, "warehouse not found", err.Error())
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormWarehouseRepository_FindAllForTenant(t *testing.T) {
	t.Run("orders by whitelisted field and paginates", func(t *testing.T) {
		repo, mock, mockDB := newMockWarehouseRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()
		now := time.Now()

		mock.ExpectQuery(`SELECT \* FROM "warehouses" WHERE tenant_id = \$1 AND is_active = \$2 ORDER BY name ASC LIMIT \$3 OFFSET \$4`).
			WithArgs(tenantID, true, 10, 10).
			WillReturnRows(sqlmock.NewRows(warehouseColumns).
				AddRow(uuid.New(), now, now, 1, tenantID, nil, "WH002", "Annex", "", true))

		list, err := repo.FindAllForTenant(context.Background(), tenantID, shared.Filter{
			Page:     2,
			PageSize: 10,
			OrderBy:  "name",
			OrderDir: "asc",
			Filters:  map[string]any{"is_active": true},
		})

		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "WH002", list[0].Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("falls back to code for unknown sort fields", func(t *testing.T) {
		repo, mock, mockDB := newMockWarehouseRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "warehouses" WHERE tenant_id = \$1 ORDER BY code DESC`).
			WithArgs(tenantID).
			WillReturnRows(sqlmock.NewRows(warehouseColumns))

		list, err := repo.FindAllForTenant(context.Background(), tenantID, shared.Filter{OrderBy: "name; DROP TABLE warehouses"})

		require.NoError(t, err)
		assert.Empty(t, list)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormWarehouseRepository_CountForTenant(t *testing.T) {
	t.Run("counts warehouses for tenant", func(t *testing.T) {
		repo, mock, mockDB := newMockWarehouseRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "warehouses" WHERE tenant_id = \$1`).
			WithArgs(tenantID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

		count, err := repo.CountForTenant(context.Background(), tenantID, shared.Filter{})

		assert.NoError(t, err)
		assert.Equal(t, int64(3), count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("applies search across code name and address", func(t *testing.T) {
		repo, mock, mockDB := newMockWarehouseRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "warehouses" WHERE tenant_id = \$1 AND \(LOWER\(code\) LIKE \$2 OR LOWER\(name\) LIKE \$3 OR LOWER\(address\) LIKE \$4\)`).
			WithArgs(tenantID, "%main%", "%main%", "%main%").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		count, err := repo.CountForTenant(context.Background(), tenantID, shared.Filter{Search: "  Main "})

		assert.NoError(t, err)
		assert.Equal(t, int64(1), count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormWarehouseRepository_ExistsByCode(t *testing.T) {
	t.Run("returns true when warehouse exists", func(t *testing.T) {
		repo, mock, mockDB := newMockWarehouseRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "warehouses" WHERE tenant_id = \$1 AND code = \$2`).
			WithArgs(tenantID, "WH001").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		exists, err := repo.ExistsByCode(context.Background(), tenantID, " wh001 ")

		assert.NoError(t, err)
		assert.True(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns false when warehouse does not exist", func(t *testing.T) {
		repo, mock, mockDB := newMockWarehouseRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "warehouses" WHERE tenant_id = \$1 AND code = \$2`).
			WithArgs(tenantID, "NONEXISTENT").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		exists, err := repo.ExistsByCode(context.Background(), tenantID, "nonexistent")

		assert.NoError(t, err)
		assert.False(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormLocationRepository_ScopesToWarehouse(t *testing.T) {
	db, mock, mockDB := newMockGormDB(t)
	defer mockDB.Close()
	repo := NewGormLocationRepository(db)

	tenantID := uuid.New()
	warehouseID := uuid.New()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "warehouse_locations" WHERE tenant_id = \$1 AND warehouse_id = \$2`).
		WithArgs(tenantID, warehouseID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "warehouse_locations" WHERE tenant_id = \$1 AND warehouse_id = \$2 AND code = \$3`).
		WithArgs(tenantID, warehouseID, "A-01").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	count, err := repo.CountByWarehouse(context.Background(), tenantID, warehouseID, shared.Filter{})
	require.NoError(t, err)
	assert.Equal(t, int64(4), count)

	exists, err := repo.ExistsByCode(context.Background(), tenantID, warehouseID, "a-01")
	require.NoError(t, err)
	assert.False(t, exists)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormWarehouseRepository_SQLite(t *testing.T) {
	db := newSQLiteDB(t)
	warehouses := NewGormWarehouseRepository(db)
	locations := NewGormLocationRepository(db)
	ctx := context.Background()

	tenantA := uuid.New()
	tenantB := uuid.New()

	wh, err := inventory.NewWarehouse(tenantA, "wh-main", "Main")
	require.NoError(t, err)
	require.NoError(t, warehouses.Save(ctx, wh))

	t.Run("round trips through save", func(t *testing.T) {
		found, err := warehouses.FindByIDForTenant(ctx, tenantA, wh.ID)
		require.NoError(t, err)
		assert.Equal(t, "WH-MAIN", found.Code)
		assert.Equal(t, "Main", found.Name)
	})

	t.Run("hides rows of other tenants", func(t *testing.T) {
		_, err := warehouses.FindByIDForTenant(ctx, tenantB, wh.ID)
		assert.True(t, errors.Is(err, shared.ErrNotFound))

		count, err := warehouses.CountForTenant(ctx, tenantB, shared.Filter{})
		require.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("updates in place", func(t *testing.T) {
		require.NoError(t, wh.Update("Main Site", "Dock 1"))
		wh.SetActive(false)
		require.NoError(t, warehouses.Save(ctx, wh))

		found, err := warehouses.FindByIDForTenant(ctx, tenantA, wh.ID)
		require.NoError(t, err)
		assert.Equal(t, "Main Site", found.Name)
		assert.False(t, found.IsActive)

		count, err := warehouses.CountForTenant(ctx, tenantA, shared.Filter{})
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("lists locations of one warehouse", func(t *testing.T) {
		for _, code := range []string{"b-02", "a-01"} {
			loc, err := inventory.NewWarehouseLocation(tenantA, wh.ID, code, "Bin "+code)
			require.NoError(t, err)
			require.NoError(t, locations.Save(ctx, loc))
		}

		list, err := locations.FindByWarehouse(ctx, tenantA, wh.ID, shared.Filter{OrderBy: "code", OrderDir: "asc"})
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "A-01", list[0].Code)
		assert.Equal(t, "B-02", list[1].Code)

		other, err := locations.FindByWarehouse(ctx, tenantA, uuid.New(), shared.Filter{})
		require.NoError(t, err)
		assert.Empty(t, other)
	})
}

func newSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()
	database, err := NewSQLiteDatabase("file::memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	return database.DB
}
