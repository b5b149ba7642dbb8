package finance

import (
	"context"

	"github.com/erpsuite/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// InvoiceRepository persists invoices with their lines.
// Filters: status (string), customer_id, sales_order_id (uuid.UUID).
type InvoiceRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Invoice, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Invoice, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
	GenerateNumber(ctx context.Context, tenantID uuid.UUID) (string, error)
	Save(ctx context.Context, invoice *Invoice) error
}
