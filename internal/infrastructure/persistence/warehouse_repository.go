package persistence

import (
	"context"
	"strings"

	"github.com/erpsuite/backend/internal/domain/inventory"
	"github.com/erpsuite/backend/internal/domain/shared"
	"github.com/erpsuite/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormWarehouseRepository implements inventory.WarehouseRepository using GORM
type GormWarehouseRepository struct {
	db *gorm.DB
}

// NewGormWarehouseRepository creates a new GormWarehouseRepository
func NewGormWarehouseRepository(db *gorm.DB) *GormWarehouseRepository {
	return &GormWarehouseRepository{db: db}
}

// FindByIDForTenant finds a warehouse by ID within a tenant
func (r *GormWarehouseRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*inventory.Warehouse, error) {
	var model models.WarehouseModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		return nil, translateError(err, "warehouse")
	}
	return model.ToDomain(), nil
}

// FindAllForTenant lists warehouses. Filters: is_active (bool).
func (r *GormWarehouseRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]inventory.Warehouse, error) {
	var rows []models.WarehouseModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.WarehouseModel{}), tenantID, filter)
	query = applyOrder(query, filter, WarehouseSortFields, "code")
	if err := applyPagination(query, filter).Find(&rows).Error; err != nil {
		return nil, err
	}
	result := make([]inventory.Warehouse, len(rows))
	for i := range rows {
		result[i] = *rows[i].ToDomain()
	}
	return result, nil
}

// CountForTenant counts warehouses matching the filter
func (r *GormWarehouseRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	err := r.applyFilter(r.db.WithContext(ctx).Model(&models.WarehouseModel{}), tenantID, filter).Count(&count).Error
	return count, err
}

// ExistsByCode checks if a warehouse code is taken within a tenant
func (r *GormWarehouseRepository) ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.WarehouseModel{}).
		Where("tenant_id = ? AND code = ?", tenantID, strings.ToUpper(strings.TrimSpace(code))).
		Count(&count).Error
	return count > 0, err
}

// Save creates or updates a warehouse
func (r *GormWarehouseRepository) Save(ctx context.Context, warehouse *inventory.Warehouse) error {
	return translateError(r.db.WithContext(ctx).Save(models.WarehouseModelFromDomain(warehouse)).Error, "warehouse")
}

// applyFilter applies tenant scope, search and field filters
func (r *GormWarehouseRepository) applyFilter(query *gorm.DB, tenantID uuid.UUID, filter shared.Filter) *gorm.DB {
	query = query.Where("tenant_id = ?", tenantID)
	query = applySearch(query, filter.Search, "code", "name", "address")
	if v, ok := filter.Filters["is_active"]; ok {
		query = query.Where("is_active = ?", v)
	}
	return query
}

// GormLocationRepository implements inventory.LocationRepository using GORM
type GormLocationRepository struct {
	db *gorm.DB
}

// NewGormLocationRepository creates a new GormLocationRepository
func NewGormLocationRepository(db *gorm.DB) *GormLocationRepository {
	return &GormLocationRepository{db: db}
}

// FindByIDForTenant finds a location by ID within a tenant
func (r *GormLocationRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*inventory.WarehouseLocation, error) {
	var model models.WarehouseLocationModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		return nil, translateError(err, "warehouse location")
	}
	return model.ToDomain(), nil
}

// FindByWarehouse lists the locations of one warehouse. Filters: is_active (bool).
func (r *GormLocationRepository) FindByWarehouse(ctx context.Context, tenantID, warehouseID uuid.UUID, filter shared.Filter) ([]inventory.WarehouseLocation, error) {
	var rows []models.WarehouseLocationModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.WarehouseLocationModel{}), tenantID, warehouseID, filter)
	query = applyOrder(query, filter, LocationSortFields, "code")
	if err := applyPagination(query, filter).Find(&rows).Error; err != nil {
		return nil, err
	}
	result := make([]inventory.WarehouseLocation, len(rows))
	for i := range rows {
		result[i] = *rows[i].ToDomain()
	}
	return result, nil
}

// CountByWarehouse counts the locations of one warehouse
func (r *GormLocationRepository) CountByWarehouse(ctx context.Context, tenantID, warehouseID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	err := r.applyFilter(r.db.WithContext(ctx).Model(&models.WarehouseLocationModel{}), tenantID, warehouseID, filter).
		Count(&count).Error
	return count, err
}

// ExistsByCode checks if a location code is taken inside a warehouse
func (r *GormLocationRepository) ExistsByCode(ctx context.Context, tenantID, warehouseID uuid.UUID, code string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.WarehouseLocationModel{}).
		Where("tenant_id = ? AND warehouse_id = ? AND code = ?", tenantID, warehouseID, strings.ToUpper(strings.TrimSpace(code))).
		Count(&count).Error
	return count > 0, err
}

// Save creates or updates a location
func (r *GormLocationRepository) Save(ctx context.Context, location *inventory.WarehouseLocation) error {
	return translateError(r.db.WithContext(ctx).Save(models.WarehouseLocationModelFromDomain(location)).Error, "warehouse location")
}

func (r *GormLocationRepository) applyFilter(query *gorm.DB, tenantID, warehouseID uuid.UUID, filter shared.Filter) *gorm.DB {
	query = query.Where("tenant_id = ? AND warehouse_id = ?", tenantID, warehouseID)
	query = applySearch(query, filter.Search, "code", "name")
	if v, ok := filter.Filters["is_active"]; ok {
		query = query.Where("is_active = ?", v)
	}
	return query
}

var (
	_ inventory.WarehouseRepository = (*GormWarehouseRepository)(nil)
	_ inventory.LocationRepository  = (*GormLocationRepository)(nil)
)
