package inventory

import (
	"strings"

	"github.com/erpsuite/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Warehouse is a physical site that holds stock
type Warehouse struct {
	shared.TenantAggregateRoot
	Code     string
	Name     string
	Address  string
	IsActive bool
}

// NewWarehouse creates an active warehouse
func NewWarehouse(tenantID uuid.UUID, code, name string) (*Warehouse, error) {
	code, err := normalizeCode(code)
	if err != nil {
		return nil, err
	}
	w := &Warehouse{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Code:                code,
		IsActive:            true,
	}
	if err := w.Update(name, ""); err != nil {
		return nil, err
	}
	return w, nil
}

// Update changes name and address
func (w *Warehouse) Update(name, address string) error {
	name, err := requireName(name)
	if err != nil {
		return err
	}
	w.Name = name
	w.Address = strings.TrimSpace(address)
	w.IncrementVersion()
	return nil
}

// SetActive toggles the soft-active flag
func (w *Warehouse) SetActive(active bool) {
	w.IsActive = active
	w.IncrementVersion()
}

// WarehouseLocation is a bin, aisle or zone inside a warehouse
type WarehouseLocation struct {
	shared.TenantAggregateRoot
	WarehouseID uuid.UUID
	Code        string
	Name        string
	IsActive    bool
}

// NewWarehouseLocation creates an active location inside warehouseID
func NewWarehouseLocation(tenantID, warehouseID uuid.UUID, code, name string) (*WarehouseLocation, error) {
	if warehouseID == uuid.Nil {
		return nil, shared.Errorf(shared.ErrValidation, "warehouse_id is required")
	}
	code, err := normalizeCode(code)
	if err != nil {
		return nil, err
	}
	name, err = requireName(name)
	if err != nil {
		return nil, err
	}
	return &WarehouseLocation{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		WarehouseID:         warehouseID,
		Code:                code,
		Name:                name,
		IsActive:            true,
	}, nil
}

// Rename changes the location name
func (l *WarehouseLocation) Rename(name string) error {
	name, err := requireName(name)
	if err != nil {
		return err
	}
	l.Name = name
	l.IncrementVersion()
	return nil
}

// SetActive toggles the soft-active flag
func (l *WarehouseLocation) SetActive(active bool) {
	l.IsActive = active
	l.IncrementVersion()
}
