package inventory

import (
	"github.com/erpsuite/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Stock is the quantity of one product held at one warehouse location.
// At most one row exists per (product, warehouse, location).
type Stock struct {
	shared.TenantAggregateRoot
	ProductID        uuid.UUID
	WarehouseID      uuid.UUID
	LocationID       *uuid.UUID
	Quantity         decimal.Decimal
	ReservedQuantity decimal.Decimal
}

// NewStock creates an empty stock row
func NewStock(tenantID, productID, warehouseID uuid.UUID, locationID *uuid.UUID) (*Stock, error) {
	if productID == uuid.Nil || warehouseID == uuid.Nil {
		return nil, shared.Errorf(shared.ErrValidation, "product_id and warehouse_id are required")
	}
	return &Stock{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		ProductID:           productID,
		WarehouseID:         warehouseID,
		LocationID:          locationID,
		Quantity:            decimal.Zero,
		ReservedQuantity:    decimal.Zero,
	}, nil
}

// AvailableQuantity is quantity not held by reservations
func (s *Stock) AvailableQuantity() decimal.Decimal {
	return s.Quantity.Sub(s.ReservedQuantity)
}

// IsLowStock reports whether quantity has fallen to or below minStock
func (s *Stock) IsLowStock(minStock decimal.Decimal) bool {
	return s.Quantity.LessThanOrEqual(minStock)
}

// SetQuantities overwrites on-hand and reserved quantities, as done by a
// stock count or manual correction
func (s *Stock) SetQuantities(quantity, reserved decimal.Decimal) error {
	if err := shared.RequireNonNegative("quantity", quantity); err != nil {
		return err
	}
	if err := shared.RequireNonNegative("reserved_quantity", reserved); err != nil {
		return err
	}
	if reserved.GreaterThan(quantity) {
		return shared.Errorf(shared.ErrValidation, "reserved_quantity cannot exceed quantity")
	}
	s.Quantity = quantity
	s.ReservedQuantity = reserved
	s.IncrementVersion()
	return nil
}

// Receive adds quantity on hand
func (s *Stock) Receive(quantity decimal.Decimal) error {
	if err := shared.RequirePositive("quantity", quantity); err != nil {
		return err
	}
	s.Quantity = s.Quantity.Add(quantity)
	s.IncrementVersion()
	return nil
}

// Issue removes quantity on hand; reserved units cannot be issued
func (s *Stock) Issue(quantity decimal.Decimal) error {
	if err := shared.RequirePositive("quantity", quantity); err != nil {
		return err
	}
	if s.AvailableQuantity().LessThan(quantity) {
		return shared.Errorf(shared.ErrInsufficientStock,
			"insufficient stock: available %s, requested %s",
			s.AvailableQuantity().String(), quantity.String())
	}
	s.Quantity = s.Quantity.Sub(quantity)
	s.IncrementVersion()
	return nil
}

// Reserve earmarks available quantity
func (s *Stock) Reserve(quantity decimal.Decimal) error {
	if err := shared.RequirePositive("quantity", quantity); err != nil {
		return err
	}
	if s.AvailableQuantity().LessThan(quantity) {
		return shared.Errorf(shared.ErrInsufficientStock, "cannot reserve more than the available quantity")
	}
	s.ReservedQuantity = s.ReservedQuantity.Add(quantity)
	s.IncrementVersion()
	return nil
}

// Release returns reserved quantity to available
func (s *Stock) Release(quantity decimal.Decimal) error {
	if err := shared.RequirePositive("quantity", quantity); err != nil {
		return err
	}
	if s.ReservedQuantity.LessThan(quantity) {
		return shared.Errorf(shared.ErrValidation, "cannot release more than the reserved quantity")
	}
	s.ReservedQuantity = s.ReservedQuantity.Sub(quantity)
	s.IncrementVersion()
	return nil
}
