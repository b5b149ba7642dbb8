package persistence

import (
	"context"

	"github.com/erpsuite/backend/internal/domain/inventory"
	"github.com/erpsuite/backend/internal/domain/shared"
	"github.com/erpsuite/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStockRepository implements inventory.StockRepository using GORM
type GormStockRepository struct {
	db *gorm.DB
}

// NewGormStockRepository creates a new GormStockRepository
func NewGormStockRepository(db *gorm.DB) *GormStockRepository {
	return &GormStockRepository{db: db}
}

// FindByIDForTenant finds a stock row by ID within a tenant
func (r *GormStockRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*inventory.Stock, error) {
	var model models.StockModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		return nil, translateError(err, "stock")
	}
	return model.ToDomain(), nil
}

// FindByKey finds the stock row of a product at a warehouse location.
// Inside a transaction the row stays locked until commit; sqlite ignores
// the lock clause.
func (r *GormStockRepository) FindByKey(ctx context.Context, tenantID, productID, warehouseID uuid.UUID, locationID *uuid.UUID) (*inventory.Stock, error) {
	var model models.StockModel
	query := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("tenant_id = ? AND product_id = ? AND warehouse_id = ?", tenantID, productID, warehouseID)
	if locationID == nil {
		query = query.Where("location_id IS NULL")
	} else {
		query = query.Where("location_id = ?", *locationID)
	}
	if err := query.First(&model).Error; err != nil {
		return nil, translateError(err, "stock")
	}
	return model.ToDomain(), nil
}

// FindAllForTenant lists stock rows
func (r *GormStockRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]inventory.Stock, error) {
	var rows []models.StockModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.StockModel{}), tenantID, filter)
	query = applyOrder(query, filter, StockSortFields, "created_at")
	if err := applyPagination(query, filter).Find(&rows).Error; err != nil {
		return nil, err
	}
	result := make([]inventory.Stock, len(rows))
	for i := range rows {
		result[i] = *rows[i].ToDomain()
	}
	return result, nil
}

// CountForTenant counts stock rows matching the filter
func (r *GormStockRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	err := r.applyFilter(r.db.WithContext(ctx).Model(&models.StockModel{}), tenantID, filter).Count(&count).Error
	return count, err
}

// Save creates or updates a stock row
func (r *GormStockRepository) Save(ctx context.Context, stock *inventory.Stock) error {
	return translateError(r.db.WithContext(ctx).Save(models.StockModelFromDomain(stock)).Error, "stock")
}

func (r *GormStockRepository) applyFilter(query *gorm.DB, tenantID uuid.UUID, filter shared.Filter) *gorm.DB {
	query = query.Where("stocks.tenant_id = ?", tenantID)
	for key, value := range filter.Filters {
		switch key {
		case "product_id":
			query = query.Where("stocks.product_id = ?", value)
		case "warehouse_id":
			query = query.Where("stocks.warehouse_id = ?", value)
		case "location_id":
			query = query.Where("stocks.location_id = ?", value)
		case "low_stock":
			if value == true {
				query = query.Where("stocks.quantity <= (SELECT p.min_stock FROM products p WHERE p.id = stocks.product_id)")
			}
		}
	}
	return query
}

var _ inventory.StockRepository = (*GormStockRepository)(nil)
