package inventory

import (
	"context"
	"strings"

	"github.com/erpsuite/backend/internal/domain/inventory"
	"github.com/erpsuite/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// WarehouseService manages warehouses and their locations
type WarehouseService struct {
	warehouses inventory.WarehouseRepository
	locations  inventory.LocationRepository
}

// NewWarehouseService creates a new WarehouseService
func NewWarehouseService(warehouses inventory.WarehouseRepository, locations inventory.LocationRepository) *WarehouseService {
	return &WarehouseService{warehouses: warehouses, locations: locations}
}

// Create creates a warehouse with a unique code
func (s *WarehouseService) Create(ctx context.Context, tenantID, userID uuid.UUID, req CreateWarehouseRequest) (*WarehouseResponse, error) {
	exists, err := s.warehouses.ExistsByCode(ctx, tenantID, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.Errorf(shared.ErrAlreadyExists, "warehouse with code %s already exists", strings.ToUpper(req.Code))
	}

	warehouse, err := inventory.NewWarehouse(tenantID, req.Code, req.Name)
	if err != nil {
		return nil, err
	}
	if err := warehouse.Update(req.Name, req.Address); err != nil {
		return nil, err
	}
	warehouse.SetCreatedBy(userID)

	if err := s.warehouses.Save(ctx, warehouse); err != nil {
		return nil, err
	}
	resp := ToWarehouseResponse(warehouse)
	return &resp, nil
}

// GetByID returns one warehouse
func (s *WarehouseService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*WarehouseResponse, error) {
	warehouse, err := s.warehouses.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	resp := ToWarehouseResponse(warehouse)
	return &resp, nil
}

// Update applies the non-nil fields of req
func (s *WarehouseService) Update(ctx context.Context, tenantID, id uuid.UUID, req UpdateWarehouseRequest) (*WarehouseResponse, error) {
	warehouse, err := s.warehouses.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil || req.Address != nil {
		name, address := warehouse.Name, warehouse.Address
		if req.Name != nil {
			name = *req.Name
		}
		if req.Address != nil {
			address = *req.Address
		}
		if err := warehouse.Update(name, address); err != nil {
			return nil, err
		}
	}
	if req.IsActive != nil {
		warehouse.SetActive(*req.IsActive)
	}
	if err := s.warehouses.Save(ctx, warehouse); err != nil {
		return nil, err
	}
	resp := ToWarehouseResponse(warehouse)
	return &resp, nil
}

// List returns a page of warehouses and the total count
func (s *WarehouseService) List(ctx context.Context, tenantID uuid.UUID, filter WarehouseListFilter) ([]WarehouseResponse, int64, error) {
	f := filter.Filter()
	if filter.IsActive != nil {
		f.Filters["is_active"] = *filter.IsActive
	}
	warehouses, err := s.warehouses.FindAllForTenant(ctx, tenantID, f)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.warehouses.CountForTenant(ctx, tenantID, f)
	if err != nil {
		return nil, 0, err
	}
	out := make([]WarehouseResponse, len(warehouses))
	for i := range warehouses {
		out[i] = ToWarehouseResponse(&warehouses[i])
	}
	return out, total, nil
}

// CreateLocation adds a location with a code unique inside the warehouse
func (s *WarehouseService) CreateLocation(ctx context.Context, tenantID, userID, warehouseID uuid.UUID, req CreateLocationRequest) (*LocationResponse, error) {
	if _, err := s.warehouses.FindByIDForTenant(ctx, tenantID, warehouseID); err != nil {
		return nil, err
	}
	exists, err := s.locations.ExistsByCode(ctx, tenantID, warehouseID, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.Errorf(shared.ErrAlreadyExists, "location %s already exists in this warehouse", strings.ToUpper(req.Code))
	}

	location, err := inventory.NewWarehouseLocation(tenantID, warehouseID, req.Code, req.Name)
	if err != nil {
		return nil, err
	}
	location.SetCreatedBy(userID)
	if err := s.locations.Save(ctx, location); err != nil {
		return nil, err
	}
	resp := ToLocationResponse(location)
	return &resp, nil
}

// GetLocation returns one location of a warehouse
func (s *WarehouseService) GetLocation(ctx context.Context, tenantID, warehouseID, id uuid.UUID) (*LocationResponse, error) {
	location, err := s.findLocation(ctx, tenantID, warehouseID, id)
	if err != nil {
		return nil, err
	}
	resp := ToLocationResponse(location)
	return &resp, nil
}

// UpdateLocation applies the non-nil fields of req
func (s *WarehouseService) UpdateLocation(ctx context.Context, tenantID, warehouseID, id uuid.UUID, req UpdateLocationRequest) (*LocationResponse, error) {
	location, err := s.findLocation(ctx, tenantID, warehouseID, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		if err := location.Rename(*req.Name); err != nil {
			return nil, err
		}
	}
	if req.IsActive != nil {
		location.SetActive(*req.IsActive)
	}
	if err := s.locations.Save(ctx, location); err != nil {
		return nil, err
	}
	resp := ToLocationResponse(location)
	return &resp, nil
}

// ListLocations returns a page of the locations of a warehouse
func (s *WarehouseService) ListLocations(ctx context.Context, tenantID, warehouseID uuid.UUID, filter WarehouseListFilter) ([]LocationResponse, int64, error) {
	if _, err := s.warehouses.FindByIDForTenant(ctx, tenantID, warehouseID); err != nil {
		return nil, 0, err
	}
	f := filter.Filter()
	if filter.IsActive != nil {
		f.Filters["is_active"] = *filter.IsActive
	}
	locations, err := s.locations.FindByWarehouse(ctx, tenantID, warehouseID, f)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.locations.CountByWarehouse(ctx, tenantID, warehouseID, f)
	if err != nil {
		return nil, 0, err
	}
	out := make([]LocationResponse, len(locations))
	for i := range locations {
		out[i] = ToLocationResponse(&locations[i])
	}
	return out, total, nil
}

func (s *WarehouseService) findLocation(ctx context.Context, tenantID, warehouseID, id uuid.UUID) (*inventory.WarehouseLocation, error) {
	location, err := s.locations.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if location.WarehouseID != warehouseID {
		return nil, shared.Errorf(shared.ErrNotFound, "location not found in this warehouse")
	}
	return location, nil
}
