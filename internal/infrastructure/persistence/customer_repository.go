package persistence

import (
	"context"
	"strings"

	"github.com/erpsuite/backend/internal/domain/sales"
	"github.com/erpsuite/backend/internal/domain/shared"
	"github.com/erpsuite/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCustomerGroupRepository implements sales.CustomerGroupRepository using GORM
type GormCustomerGroupRepository struct {
	db *gorm.DB
}

// NewGormCustomerGroupRepository creates a new GormCustomerGroupRepository
func NewGormCustomerGroupRepository(db *gorm.DB) *GormCustomerGroupRepository {
	return &GormCustomerGroupRepository{db: db}
}

// FindByIDForTenant finds a customer group by ID within a tenant
func (r *GormCustomerGroupRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*sales.CustomerGroup, error) {
	var model models.CustomerGroupModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		return nil, translateError(err, "customer group")
	}
	return model.ToDomain(), nil
}

// FindAllForTenant lists customer groups. Filters: is_active (bool).
func (r *GormCustomerGroupRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]sales.CustomerGroup, error) {
	var rows []models.CustomerGroupModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.CustomerGroupModel{}), tenantID, filter)
	query = applyOrder(query, filter, CustomerGroupSortFields, "code")
	if err := applyPagination(query, filter).Find(&rows).Error; err != nil {
		return nil, err
	}
	result := make([]sales.CustomerGroup, len(rows))
	for i := range rows {
		result[i] = *rows[i].ToDomain()
	}
	return result, nil
}

// CountForTenant counts customer groups matching the filter
func (r *GormCustomerGroupRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	err := r.applyFilter(r.db.WithContext(ctx).Model(&models.CustomerGroupModel{}), tenantID, filter).Count(&count).Error
	return count, err
}

// ExistsByCode checks if a group code is taken within a tenant
func (r *GormCustomerGroupRepository) ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.CustomerGroupModel{}).
		Where("tenant_id = ? AND code = ?", tenantID, strings.ToUpper(strings.TrimSpace(code))).
		Count(&count).Error
	return count > 0, err
}

// Save creates or updates a customer group
func (r *GormCustomerGroupRepository) Save(ctx context.Context, group *sales.CustomerGroup) error {
	return translateError(r.db.WithContext(ctx).Save(models.CustomerGroupModelFromDomain(group)).Error, "customer group")
}

func (r *GormCustomerGroupRepository) applyFilter(query *gorm.DB, tenantID uuid.UUID, filter shared.Filter) *gorm.DB {
	query = query.Where("tenant_id = ?", tenantID)
	query = applySearch(query, filter.Search, "code", "name")
	if v, ok := filter.Filters["is_active"]; ok {
		query = query.Where("is_active = ?", v)
	}
	return query
}

// GormCustomerRepository implements sales.CustomerRepository using GORM
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewGormCustomerRepository creates a new GormCustomerRepository
func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// FindByIDForTenant finds a customer by ID within a tenant
func (r *GormCustomerRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*sales.Customer, error) {
	var model models.CustomerModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		return nil, translateError(err, "customer")
	}
	return model.ToDomain(), nil
}

// FindAllForTenant lists customers
func (r *GormCustomerRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]sales.Customer, error) {
	var rows []models.CustomerModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.CustomerModel{}), tenantID, filter)
	query = applyOrder(query, filter, CustomerSortFields, "code")
	if err := applyPagination(query, filter).Find(&rows).Error; err != nil {
		return nil, err
	}
	result := make([]sales.Customer, len(rows))
	for i := range rows {
		result[i] = *rows[i].ToDomain()
	}
	return result, nil
}

// CountForTenant counts customers matching the filter
func (r *GormCustomerRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	err := r.applyFilter(r.db.WithContext(ctx).Model(&models.CustomerModel{}), tenantID, filter).Count(&count).Error
	return count, err
}

// ExistsByCode checks if a customer code is taken within a tenant
func (r *GormCustomerRepository) ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.CustomerModel{}).
		Where("tenant_id = ? AND code = ?", tenantID, strings.ToUpper(strings.TrimSpace(code))).
		Count(&count).Error
	return count > 0, err
}

// Save creates or updates a customer
func (r *GormCustomerRepository) Save(ctx context.Context, customer *sales.Customer) error {
	return translateError(r.db.WithContext(ctx).Save(models.CustomerModelFromDomain(customer)).Error, "customer")
}

func (r *GormCustomerRepository) applyFilter(query *gorm.DB, tenantID uuid.UUID, filter shared.Filter) *gorm.DB {
	query = query.Where("tenant_id = ?", tenantID)
	query = applySearch(query, filter.Search, "code", "name", "tax_id", "email")
	for key, value := range filter.Filters {
		switch key {
		case "group_id":
			query = query.Where("group_id = ?", value)
		case "is_active":
			query = query.Where("is_active = ?", value)
		}
	}
	return query
}

var (
	_ sales.CustomerGroupRepository = (*GormCustomerGroupRepository)(nil)
	_ sales.CustomerRepository      = (*GormCustomerRepository)(nil)
)
