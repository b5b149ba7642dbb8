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

// GormInventoryTransactionRepository implements inventory.TransactionRepository
// using GORM. Rows are only ever inserted.
type GormInventoryTransactionRepository struct {
	db *gorm.DB
}

// NewGormInventoryTransactionRepository creates a new GormInventoryTransactionRepository
func NewGormInventoryTransactionRepository(db *gorm.DB) *GormInventoryTransactionRepository {
	return &GormInventoryTransactionRepository{db: db}
}

// FindByIDForTenant finds a transaction by ID within a tenant
func (r *GormInventoryTransactionRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*inventory.InventoryTransaction, error) {
	var model models.InventoryTransactionModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		return nil, translateError(err, "inventory transaction")
	}
	return model.ToDomain(), nil
}

// FindAllForTenant lists transactions, newest first by default
func (r *GormInventoryTransactionRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]inventory.InventoryTransaction, error) {
	var rows []models.InventoryTransactionModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.InventoryTransactionModel{}), tenantID, filter)
	query = applyOrder(query, filter, InventoryTransactionSortFields, "created_at")
	if err := applyPagination(query, filter).Find(&rows).Error; err != nil {
		return nil, err
	}
	result := make([]inventory.InventoryTransaction, len(rows))
	for i := range rows {
		result[i] = *rows[i].ToDomain()
	}
	return result, nil
}

// CountForTenant counts transactions matching the filter
func (r *GormInventoryTransactionRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	err := r.applyFilter(r.db.WithContext(ctx).Model(&models.InventoryTransactionModel{}), tenantID, filter).Count(&count).Error
	return count, err
}

// Create appends a transaction
func (r *GormInventoryTransactionRepository) Create(ctx context.Context, tx *inventory.InventoryTransaction) error {
	return translateError(r.db.WithContext(ctx).Create(models.InventoryTransactionModelFromDomain(tx)).Error, "inventory transaction")
}

func (r *GormInventoryTransactionRepository) applyFilter(query *gorm.DB, tenantID uuid.UUID, filter shared.Filter) *gorm.DB {
	query = query.Where("tenant_id = ?", tenantID)
	query = applySearch(query, filter.Search, "reference", "notes")
	for key, value := range filter.Filters {
		switch key {
		case "product_id":
			query = query.Where("product_id = ?", value)
		case "warehouse_id":
			query = query.Where("warehouse_id = ?", value)
		case "type":
			if s, ok := value.(string); ok {
				value = strings.ToUpper(s)
			}
			query = query.Where("type = ?", value)
		case "reference":
			query = query.Where("reference = ?", value)
		}
	}
	return query
}

var _ inventory.TransactionRepository = (*GormInventoryTransactionRepository)(nil)
