package persistence

import (
	"context"

	"github.com/erpsuite/backend/internal/domain/purchasing"
	"github.com/erpsuite/backend/internal/domain/shared"
	"github.com/erpsuite/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func orderLines(db *gorm.DB) *gorm.DB {
	return db.Order("line_number ASC")
}

// GormPurchaseOrderRepository implements purchasing.PurchaseOrderRepository using GORM
type GormPurchaseOrderRepository struct {
	db *gorm.DB
}

// NewGormPurchaseOrderRepository creates a new GormPurchaseOrderRepository
func NewGormPurchaseOrderRepository(db *gorm.DB) *GormPurchaseOrderRepository {
	return &GormPurchaseOrderRepository{db: db}
}

// FindByIDForTenant finds a purchase order with its lines
func (r *GormPurchaseOrderRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*purchasing.PurchaseOrder, error) {
	return r.find(r.db.WithContext(ctx), tenantID, id)
}

// FindByIDForUpdate finds a purchase order and locks its header row until
// the surrounding transaction ends
func (r *GormPurchaseOrderRepository) FindByIDForUpdate(ctx context.Context, tenantID, id uuid.UUID) (*purchasing.PurchaseOrder, error) {
	return r.find(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), tenantID, id)
}

func (r *GormPurchaseOrderRepository) find(db *gorm.DB, tenantID, id uuid.UUID) (*purchasing.PurchaseOrder, error) {
	var model models.PurchaseOrderModel
	if err := db.
		Preload("Lines", orderLines).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		return nil, translateError(err, "purchase order")
	}
	return model.ToDomain(), nil
}

// FindAllForTenant lists purchase orders with their lines
func (r *GormPurchaseOrderRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]purchasing.PurchaseOrder, error) {
	var rows []models.PurchaseOrderModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.PurchaseOrderModel{}), tenantID, filter)
	query = applyOrder(query, filter, PurchaseOrderSortFields, "created_at")
	if err := applyPagination(query, filter).Preload("Lines", orderLines).Find(&rows).Error; err != nil {
		return nil, err
	}
	result := make([]purchasing.PurchaseOrder, len(rows))
	for i := range rows {
		result[i] = *rows[i].ToDomain()
	}
	return result, nil
}

// CountForTenant counts purchase orders matching the filter
func (r *GormPurchaseOrderRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	err := r.applyFilter(r.db.WithContext(ctx).Model(&models.PurchaseOrderModel{}), tenantID, filter).Count(&count).Error
	return count, err
}

// ExistsByNumber checks if an order number is taken within a tenant
func (r *GormPurchaseOrderRepository) ExistsByNumber(ctx context.Context, tenantID uuid.UUID, number string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.PurchaseOrderModel{}).
		Where("tenant_id = ? AND number = ?", tenantID, number).
		Count(&count).Error
	return count > 0, err
}

// GenerateNumber returns the next PO-YYYY-NNNNN number of a tenant
func (r *GormPurchaseOrderRepository) GenerateNumber(ctx context.Context, tenantID uuid.UUID) (string, error) {
	return nextDocumentNumber(ctx, r.db, &models.PurchaseOrderModel{}, tenantID, "PO")
}

// Save upserts the order header, deletes lines no longer present and
// upserts the remaining ones
func (r *GormPurchaseOrderRepository) Save(ctx context.Context, order *purchasing.PurchaseOrder) error {
	model := models.PurchaseOrderModelFromDomain(order)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Lines").Save(model).Error; err != nil {
			return err
		}

		keep := make([]uuid.UUID, len(model.Lines))
		for i := range model.Lines {
			keep[i] = model.Lines[i].ID
		}
		del := tx.Where("order_id = ?", order.ID)
		if len(keep) > 0 {
			del = del.Where("id NOT IN ?", keep)
		}
		if err := del.Delete(&models.PurchaseOrderLineModel{}).Error; err != nil {
			return err
		}

		for i := range model.Lines {
			if err := tx.Save(&model.Lines[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	return translateError(err, "purchase order")
}

func (r *GormPurchaseOrderRepository) applyFilter(query *gorm.DB, tenantID uuid.UUID, filter shared.Filter) *gorm.DB {
	query = query.Where("tenant_id = ?", tenantID)
	query = applySearch(query, filter.Search, "number", "notes")
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "supplier_id":
			query = query.Where("supplier_id = ?", value)
		case "warehouse_id":
			query = query.Where("warehouse_id = ?", value)
		}
	}
	return query
}

// GormGoodsReceiptRepository implements purchasing.GoodsReceiptRepository using GORM
type GormGoodsReceiptRepository struct {
	db *gorm.DB
}

// NewGormGoodsReceiptRepository creates a new GormGoodsReceiptRepository
func NewGormGoodsReceiptRepository(db *gorm.DB) *GormGoodsReceiptRepository {
	return &GormGoodsReceiptRepository{db: db}
}

// FindByIDForTenant finds a goods receipt with its lines
func (r *GormGoodsReceiptRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*purchasing.GoodsReceipt, error) {
	return r.find(r.db.WithContext(ctx), tenantID, id)
}

// FindByIDForUpdate finds a goods receipt and locks its row until the
// surrounding transaction ends, so a concurrent completion waits and then
// sees the committed status
func (r *GormGoodsReceiptRepository) FindByIDForUpdate(ctx context.Context, tenantID, id uuid.UUID) (*purchasing.GoodsReceipt, error) {
	return r.find(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), tenantID, id)
}

func (r *GormGoodsReceiptRepository) find(db *gorm.DB, tenantID, id uuid.UUID) (*purchasing.GoodsReceipt, error) {
	var model models.GoodsReceiptModel
	if err := db.
		Preload("Lines").
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		return nil, translateError(err, "goods receipt")
	}
	return model.ToDomain(), nil
}

// FindAllForTenant lists goods receipts with their lines
func (r *GormGoodsReceiptRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]purchasing.GoodsReceipt, error) {
	var rows []models.GoodsReceiptModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.GoodsReceiptModel{}), tenantID, filter)
	query = applyOrder(query, filter, GoodsReceiptSortFields, "created_at")
	if err := applyPagination(query, filter).Preload("Lines").Find(&rows).Error; err != nil {
		return nil, err
	}
	result := make([]purchasing.GoodsReceipt, len(rows))
	for i := range rows {
		result[i] = *rows[i].ToDomain()
	}
	return result, nil
}

// CountForTenant counts goods receipts matching the filter
func (r *GormGoodsReceiptRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	err := r.applyFilter(r.db.WithContext(ctx).Model(&models.GoodsReceiptModel{}), tenantID, filter).Count(&count).Error
	return count, err
}

// GenerateNumber returns the next GR-YYYY-NNNNN number of a tenant
func (r *GormGoodsReceiptRepository) GenerateNumber(ctx context.Context, tenantID uuid.UUID) (string, error) {
	return nextDocumentNumber(ctx, r.db, &models.GoodsReceiptModel{}, tenantID, "GR")
}

// Save upserts the receipt and its lines. Receipt lines never change
// after creation, so existing lines are only rewritten in place.
func (r *GormGoodsReceiptRepository) Save(ctx context.Context, receipt *purchasing.GoodsReceipt) error {
	model := models.GoodsReceiptModelFromDomain(receipt)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Lines").Save(model).Error; err != nil {
			return err
		}
		for i := range model.Lines {
			if err := tx.Save(&model.Lines[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	return translateError(err, "goods receipt")
}

func (r *GormGoodsReceiptRepository) applyFilter(query *gorm.DB, tenantID uuid.UUID, filter shared.Filter) *gorm.DB {
	query = query.Where("tenant_id = ?", tenantID)
	query = applySearch(query, filter.Search, "number", "notes")
	for key, value := range filter.Filters {
		switch key {
		case "purchase_order_id":
			query = query.Where("purchase_order_id = ?", value)
		case "status":
			query = query.Where("status = ?", value)
		}
	}
	return query
}

var (
	_ purchasing.PurchaseOrderRepository = (*GormPurchaseOrderRepository)(nil)
	_ purchasing.GoodsReceiptRepository  = (*GormGoodsReceiptRepository)(nil)
)
