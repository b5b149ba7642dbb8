package persistence

import (
	"context"
	"strings"

	"github.com/erpsuite/backend/internal/domain/purchasing"
	"github.com/erpsuite/backend/internal/domain/shared"
	"github.com/erpsuite/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormSupplierCategoryRepository implements purchasing.SupplierCategoryRepository using GORM
type GormSupplierCategoryRepository struct {
	db *gorm.DB
}

// NewGormSupplierCategoryRepository creates a new GormSupplierCategoryRepository
func NewGormSupplierCategoryRepository(db *gorm.DB) *GormSupplierCategoryRepository {
	return &GormSupplierCategoryRepository{db: db}
}

// FindByIDForTenant finds a supplier category by ID within a tenant
func (r *GormSupplierCategoryRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*purchasing.SupplierCategory, error) {
	var model models.SupplierCategoryModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		return nil, translateError(err, "supplier category")
	}
	return model.ToDomain(), nil
}

// FindAllForTenant lists supplier categories. Filters: is_active (bool).
func (r *GormSupplierCategoryRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]purchasing.SupplierCategory, error) {
	var rows []models.SupplierCategoryModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.SupplierCategoryModel{}), tenantID, filter)
	query = applyOrder(query, filter, SupplierCategorySortFields, "code")
	if err := applyPagination(query, filter).Find(&rows).Error; err != nil {
		return nil, err
	}
	result := make([]purchasing.SupplierCategory, len(rows))
	for i := range rows {
		result[i] = *rows[i].ToDomain()
	}
	return result, nil
}

// CountForTenant counts supplier categories matching the filter
func (r *GormSupplierCategoryRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	err := r.applyFilter(r.db.WithContext(ctx).Model(&models.SupplierCategoryModel{}), tenantID, filter).Count(&count).Error
	return count, err
}

// ExistsByCode checks if a supplier category code is taken within a tenant
func (r *GormSupplierCategoryRepository) ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.SupplierCategoryModel{}).
		Where("tenant_id = ? AND code = ?", tenantID, strings.ToUpper(strings.TrimSpace(code))).
		Count(&count).Error
	return count > 0, err
}

// Save creates or updates a supplier category
func (r *GormSupplierCategoryRepository) Save(ctx context.Context, category *purchasing.SupplierCategory) error {
	return translateError(r.db.WithContext(ctx).Save(models.SupplierCategoryModelFromDomain(category)).Error, "supplier category")
}

func (r *GormSupplierCategoryRepository) applyFilter(query *gorm.DB, tenantID uuid.UUID, filter shared.Filter) *gorm.DB {
	query = query.Where("tenant_id = ?", tenantID)
	query = applySearch(query, filter.Search, "code", "name")
	if v, ok := filter.Filters["is_active"]; ok {
		query = query.Where("is_active = ?", v)
	}
	return query
}

// GormSupplierRepository implements purchasing.SupplierRepository using GORM
type GormSupplierRepository struct {
	db *gorm.DB
}

// NewGormSupplierRepository creates a new GormSupplierRepository
func NewGormSupplierRepository(db *gorm.DB) *GormSupplierRepository {
	return &GormSupplierRepository{db: db}
}

// FindByIDForTenant finds a supplier by ID within a tenant
func (r *GormSupplierRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*purchasing.Supplier, error) {
	var model models.SupplierModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		return nil, translateError(err, "supplier")
	}
	return model.ToDomain(), nil
}

// FindAllForTenant lists suppliers
func (r *GormSupplierRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]purchasing.Supplier, error) {
	var rows []models.SupplierModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.SupplierModel{}), tenantID, filter)
	query = applyOrder(query, filter, SupplierSortFields, "code")
	if err := applyPagination(query, filter).Find(&rows).Error; err != nil {
		return nil, err
	}
	result := make([]purchasing.Supplier, len(rows))
	for i := range rows {
		result[i] = *rows[i].ToDomain()
	}
	return result, nil
}

// CountForTenant counts suppliers matching the filter
func (r *GormSupplierRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	err := r.applyFilter(r.db.WithContext(ctx).Model(&models.SupplierModel{}), tenantID, filter).Count(&count).Error
	return count, err
}

// ExistsByCode checks if a supplier code is taken within a tenant
func (r *GormSupplierRepository) ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.SupplierModel{}).
		Where("tenant_id = ? AND code = ?", tenantID, strings.ToUpper(strings.TrimSpace(code))).
		Count(&count).Error
	return count > 0, err
}

// Save creates or updates a supplier
func (r *GormSupplierRepository) Save(ctx context.Context, supplier *purchasing.Supplier) error {
	return translateError(r.db.WithContext(ctx).Save(models.SupplierModelFromDomain(supplier)).Error, "supplier")
}

func (r *GormSupplierRepository) applyFilter(query *gorm.DB, tenantID uuid.UUID, filter shared.Filter) *gorm.DB {
	query = query.Where("tenant_id = ?", tenantID)
	query = applySearch(query, filter.Search, "code", "name", "tax_id", "contact_name", "email")
	for key, value := range filter.Filters {
		switch key {
		case "category_id":
			query = query.Where("category_id = ?", value)
		case "is_active":
			query = query.Where("is_active = ?", value)
		}
	}
	return query
}

var (
	_ purchasing.SupplierCategoryRepository = (*GormSupplierCategoryRepository)(nil)
	_ purchasing.SupplierRepository         = (*GormSupplierRepository)(nil)
)
