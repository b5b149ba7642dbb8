package inventory

import (
	"context"

	"github.com/erpsuite/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CategoryRepository persists categories
type CategoryRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Category, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Category, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
	ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error)
	Save(ctx context.Context, category *Category) error
}

// BrandRepository persists brands
type BrandRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Brand, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Brand, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
	ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error)
	Save(ctx context.Context, brand *Brand) error
}

// ProductRepository persists products
type ProductRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Product, error)
	FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]Product, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Product, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
	ExistsBySKU(ctx context.Context, tenantID uuid.UUID, sku string) (bool, error)
	Save(ctx context.Context, product *Product) error
}

// WarehouseRepository persists warehouses
type WarehouseRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Warehouse, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Warehouse, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
	ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error)
	Save(ctx context.Context, warehouse *Warehouse) error
}

// LocationRepository persists warehouse locations
type LocationRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*WarehouseLocation, error)
	FindByWarehouse(ctx context.Context, tenantID, warehouseID uuid.UUID, filter shared.Filter) ([]WarehouseLocation, error)
	CountByWarehouse(ctx context.Context, tenantID, warehouseID uuid.UUID, filter shared.Filter) (int64, error)
	ExistsByCode(ctx context.Context, tenantID, warehouseID uuid.UUID, code string) (bool, error)
	Save(ctx context.Context, location *WarehouseLocation) error
}

// StockRepository persists stock rows.
// Filters: product_id, warehouse_id, location_id (uuid.UUID), low_stock (bool).
type StockRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Stock, error)
	// FindByKey returns shared.ErrNotFound when no row exists for the key
	FindByKey(ctx context.Context, tenantID, productID, warehouseID uuid.UUID, locationID *uuid.UUID) (*Stock, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Stock, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
	Save(ctx context.Context, stock *Stock) error
}

// TransactionRepository is the append-only store of stock movements.
// Filters: product_id, warehouse_id (uuid.UUID), type (string), reference (string).
type TransactionRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*InventoryTransaction, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]InventoryTransaction, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
	Create(ctx context.Context, tx *InventoryTransaction) error
}
