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

// GormCategoryRepository implements inventory.CategoryRepository using GORM
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewGormCategoryRepository creates a new GormCategoryRepository
func NewGormCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

// FindByIDForTenant finds a category by ID within a tenant
func (r *GormCategoryRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*inventory.Category, error) {
	var model models.CategoryModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		return nil, translateError(err, "category")
	}
	return model.ToDomain(), nil
}

// FindAllForTenant lists categories. Filters: parent_id (uuid.UUID), is_active (bool).
func (r *GormCategoryRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]inventory.Category, error) {
	var rows []models.CategoryModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.CategoryModel{}), tenantID, filter)
	query = applyOrder(query, filter, CategorySortFields, "code")
	if err := applyPagination(query, filter).Find(&rows).Error; err != nil {
		return nil, err
	}
	result := make([]inventory.Category, len(rows))
	for i := range rows {
		result[i] = *rows[i].ToDomain()
	}
	return result, nil
}

// CountForTenant counts categories matching the filter
func (r *GormCategoryRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	err := r.applyFilter(r.db.WithContext(ctx).Model(&models.CategoryModel{}), tenantID, filter).Count(&count).Error
	return count, err
}

// ExistsByCode checks if a category code is taken within a tenant
func (r *GormCategoryRepository) ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.CategoryModel{}).
		Where("tenant_id = ? AND code = ?", tenantID, strings.ToUpper(strings.TrimSpace(code))).
		Count(&count).Error
	return count > 0, err
}

// Save creates or updates a category
func (r *GormCategoryRepository) Save(ctx context.Context, category *inventory.Category) error {
	return translateError(r.db.WithContext(ctx).Save(models.CategoryModelFromDomain(category)).Error, "category")
}

func (r *GormCategoryRepository) applyFilter(query *gorm.DB, tenantID uuid.UUID, filter shared.Filter) *gorm.DB {
	query = query.Where("tenant_id = ?", tenantID)
	query = applySearch(query, filter.Search, "code", "name", "description")
	for key, value := range filter.Filters {
		switch key {
		case "parent_id":
			query = query.Where("parent_id = ?", value)
		case "is_active":
			query = query.Where("is_active = ?", value)
		}
	}
	return query
}

// GormBrandRepository implements inventory.BrandRepository using GORM
type GormBrandRepository struct {
	db *gorm.DB
}

// NewGormBrandRepository creates a new GormBrandRepository
func NewGormBrandRepository(db *gorm.DB) *GormBrandRepository {
	return &GormBrandRepository{db: db}
}

// FindByIDForTenant finds a brand by ID within a tenant
func (r *GormBrandRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*inventory.Brand, error) {
	var model models.BrandModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		return nil, translateError(err, "brand")
	}
	return model.ToDomain(), nil
}

// FindAllForTenant lists brands. Filters: is_active (bool).
func (r *GormBrandRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]inventory.Brand, error) {
	var rows []models.BrandModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.BrandModel{}), tenantID, filter)
	query = applyOrder(query, filter, BrandSortFields, "code")
	if err := applyPagination(query, filter).Find(&rows).Error; err != nil {
		return nil, err
	}
	result := make([]inventory.Brand, len(rows))
	for i := range rows {
		result[i] = *rows[i].ToDomain()
	}
	return result, nil
}

// CountForTenant counts brands matching the filter
func (r *GormBrandRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	err := r.applyFilter(r.db.WithContext(ctx).Model(&models.BrandModel{}), tenantID, filter).Count(&count).Error
	return count, err
}

// ExistsByCode checks if a brand code is taken within a tenant
func (r *GormBrandRepository) ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.BrandModel{}).
		Where("tenant_id = ? AND code = ?", tenantID, strings.ToUpper(strings.TrimSpace(code))).
		Count(&count).Error
	return count > 0, err
}

// Save creates or updates a brand
func (r *GormBrandRepository) Save(ctx context.Context, brand *inventory.Brand) error {
	return translateError(r.db.WithContext(ctx).Save(models.BrandModelFromDomain(brand)).Error, "brand")
}

func (r *GormBrandRepository) applyFilter(query *gorm.DB, tenantID uuid.UUID, filter shared.Filter) *gorm.DB {
	query = query.Where("tenant_id = ?", tenantID)
	query = applySearch(query, filter.Search, "code", "name")
	if v, ok := filter.Filters["is_active"]; ok {
		query = query.Where("is_active = ?", v)
	}
	return query
}

var (
	_ inventory.CategoryRepository = (*GormCategoryRepository)(nil)
	_ inventory.BrandRepository    = (*GormBrandRepository)(nil)
)
