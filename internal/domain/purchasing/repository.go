package purchasing

import (
	"context"

	"github.com/erpsuite/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// SupplierCategoryRepository persists supplier categories
type SupplierCategoryRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*SupplierCategory, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]SupplierCategory, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
	ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error)
	Save(ctx context.Context, category *SupplierCategory) error
}

// SupplierRepository persists suppliers.
// Filters: category_id (uuid.UUID), is_active (bool).
type SupplierRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Supplier, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Supplier, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
	ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error)
	Save(ctx context.Context, supplier *Supplier) error
}

// PurchaseOrderRepository persists purchase orders with their lines.
// Filters: status (string), supplier_id (uuid.UUID).
type PurchaseOrderRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*PurchaseOrder, error)
	// FindByIDForUpdate also row-locks the order inside a transaction
	FindByIDForUpdate(ctx context.Context, tenantID, id uuid.UUID) (*PurchaseOrder, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]PurchaseOrder, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
	ExistsByNumber(ctx context.Context, tenantID uuid.UUID, number string) (bool, error)
	GenerateNumber(ctx context.Context, tenantID uuid.UUID) (string, error)
	// Save upserts the header and replaces the lines
	Save(ctx context.Context, order *PurchaseOrder) error
}

// GoodsReceiptRepository persists goods receipts with their lines.
// Filters: purchase_order_id (uuid.UUID), status (string).
type GoodsReceiptRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*GoodsReceipt, error)
	// FindByIDForUpdate also row-locks the receipt inside a transaction
	FindByIDForUpdate(ctx context.Context, tenantID, id uuid.UUID) (*GoodsReceipt, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]GoodsReceipt, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
	GenerateNumber(ctx context.Context, tenantID uuid.UUID) (string, error)
	Save(ctx context.Context, receipt *GoodsReceipt) error
}
