package inventory

import (
	"strings"

	"github.com/erpsuite/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType is the direction of a stock movement
type TransactionType string

const (
	TransactionTypeIn  TransactionType = "IN"
	TransactionTypeOut TransactionType = "OUT"
)

// IsValid reports whether t is a known movement direction
func (t TransactionType) IsValid() bool {
	return t == TransactionTypeIn || t == TransactionTypeOut
}

// InventoryTransaction is an append-only record of a stock movement
type InventoryTransaction struct {
	shared.TenantAggregateRoot
	ProductID   uuid.UUID
	WarehouseID uuid.UUID
	LocationID  *uuid.UUID
	Type        TransactionType
	Quantity    decimal.Decimal
	Reference   string
	Notes       string
}

// NewInventoryTransaction creates a movement record
func NewInventoryTransaction(
	tenantID, productID, warehouseID uuid.UUID,
	locationID *uuid.UUID,
	txType TransactionType,
	quantity decimal.Decimal,
	reference string,
) (*InventoryTransaction, error) {
	if productID == uuid.Nil || warehouseID == uuid.Nil {
		return nil, shared.Errorf(shared.ErrValidation, "product_id and warehouse_id are required")
	}
	txType = TransactionType(strings.ToUpper(string(txType)))
	if !txType.IsValid() {
		return nil, shared.Errorf(shared.ErrValidation, "transaction type must be IN or OUT")
	}
	if err := shared.RequirePositive("quantity", quantity); err != nil {
		return nil, err
	}
	return &InventoryTransaction{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		ProductID:           productID,
		WarehouseID:         warehouseID,
		LocationID:          locationID,
		Type:                txType,
		Quantity:            quantity,
		Reference:           strings.TrimSpace(reference),
	}, nil
}

// ApplyTo posts the movement against the matching stock row
func (t *InventoryTransaction) ApplyTo(s *Stock) error {
	if s.ProductID != t.ProductID || s.WarehouseID != t.WarehouseID {
		return shared.Errorf(shared.ErrInvalidInput, "stock row does not match transaction")
	}
	if t.Type == TransactionTypeIn {
		return s.Receive(t.Quantity)
	}
	return s.Issue(t.Quantity)
}
