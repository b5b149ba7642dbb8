package purchasing

import (
	"context"
	"errors"
	"strings"

	"github.com/erpsuite/backend/internal/domain/purchasing"
	"github.com/erpsuite/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// SupplierService manages supplier categories and suppliers
type SupplierService struct {
	categories purchasing.SupplierCategoryRepository
	suppliers  purchasing.SupplierRepository
}

// NewSupplierService creates a new SupplierService
func NewSupplierService(categories purchasing.SupplierCategoryRepository, suppliers purchasing.SupplierRepository) *SupplierService {
	return &SupplierService{categories: categories, suppliers: suppliers}
}

// CreateCategory creates a supplier category with a unique code
func (s *SupplierService) CreateCategory(ctx context.Context, tenantID, userID uuid.UUID, req CreateSupplierCategoryRequest) (*SupplierCategoryResponse, error) {
	exists, err := s.categories.ExistsByCode(ctx, tenantID, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.Errorf(shared.ErrAlreadyExists, "supplier category with code %s already exists", strings.ToUpper(req.Code))
	}
	category, err := purchasing.NewSupplierCategory(tenantID, req.Code, req.Name)
	if err != nil {
		return nil, err
	}
	if err := category.Update(req.Name, req.Description); err != nil {
		return nil, err
	}
	category.SetCreatedBy(userID)
	if err := s.categories.Save(ctx, category); err != nil {
		return nil, err
	}
	resp := ToSupplierCategoryResponse(category)
	return &resp, nil
}

// GetCategory returns one supplier category
func (s *SupplierService) GetCategory(ctx context.Context, tenantID, id uuid.UUID) (*SupplierCategoryResponse, error) {
	category, err := s.categories.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	resp := ToSupplierCategoryResponse(category)
	return &resp, nil
}

// UpdateCategory applies the non-nil fields of req
func (s *SupplierService) UpdateCategory(ctx context.Context, tenantID, id uuid.UUID, req UpdateSupplierCategoryRequest) (*SupplierCategoryResponse, error) {
	category, err := s.categories.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil || req.Description != nil {
		name, desc := category.Name, category.Description
		if req.Name != nil {
			name = *req.Name
		}
		if req.Description != nil {
			desc = *req.Description
		}
		if err := category.Update(name, desc); err != nil {
			return nil, err
		}
	}
	if req.IsActive != nil {
		category.SetActive(*req.IsActive)
	}
	if err := s.categories.Save(ctx, category); err != nil {
		return nil, err
	}
	resp := ToSupplierCategoryResponse(category)
	return &resp, nil
}

// ListCategories returns a page of supplier categories
func (s *SupplierService) ListCategories(ctx context.Context, tenantID uuid.UUID, filter SupplierCategoryListFilter) ([]SupplierCategoryResponse, int64, error) {
	f := filter.Filter()
	if filter.IsActive != nil {
		f.Filters["is_active"] = *filter.IsActive
	}
	categories, err := s.categories.FindAllForTenant(ctx, tenantID, f)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.categories.CountForTenant(ctx, tenantID, f)
	if err != nil {
		return nil, 0, err
	}
	out := make([]SupplierCategoryResponse, len(categories))
	for i := range categories {
		out[i] = ToSupplierCategoryResponse(&categories[i])
	}
	return out, total, nil
}

// Create creates a supplier with a unique code
func (s *SupplierService) Create(ctx context.Context, tenantID, userID uuid.UUID, req CreateSupplierRequest) (*SupplierResponse, error) {
	exists, err := s.suppliers.ExistsByCode(ctx, tenantID, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.Errorf(shared.ErrAlreadyExists, "supplier with code %s already exists", strings.ToUpper(req.Code))
	}

	supplier, err := purchasing.NewSupplier(tenantID, req.Code, req.Name)
	if err != nil {
		return nil, err
	}
	supplier.SetTaxID(req.TaxID)
	if err := supplier.SetContact(purchasing.SupplierContact{
		ContactName: req.ContactName,
		Email:       req.Email,
		Phone:       req.Phone,
		Address:     req.Address,
	}); err != nil {
		return nil, err
	}
	if err := supplier.SetPaymentTerms(req.PaymentTermsDays); err != nil {
		return nil, err
	}
	if err := s.setCategory(ctx, supplier, req.CategoryID); err != nil {
		return nil, err
	}
	supplier.SetCreatedBy(userID)

	if err := s.suppliers.Save(ctx, supplier); err != nil {
		return nil, err
	}
	resp := ToSupplierResponse(supplier)
	return &resp, nil
}

// GetByID returns one supplier
func (s *SupplierService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*SupplierResponse, error) {
	supplier, err := s.suppliers.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	resp := ToSupplierResponse(supplier)
	return &resp, nil
}

// Update applies the non-nil fields of req
func (s *SupplierService) Update(ctx context.Context, tenantID, id uuid.UUID, req UpdateSupplierRequest) (*SupplierResponse, error) {
	supplier, err := s.suppliers.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		if err := supplier.Rename(*req.Name); err != nil {
			return nil, err
		}
	}
	if req.TaxID != nil {
		supplier.SetTaxID(*req.TaxID)
	}
	if req.ContactName != nil || req.Email != nil || req.Phone != nil || req.Address != nil {
		contact := purchasing.SupplierContact{
			ContactName: supplier.ContactName,
			Email:       supplier.Email,
			Phone:       supplier.Phone,
			Address:     supplier.Address,
		}
		if req.ContactName != nil {
			contact.ContactName = *req.ContactName
		}
		if req.Email != nil {
			contact.Email = *req.Email
		}
		if req.Phone != nil {
			contact.Phone = *req.Phone
		}
		if req.Address != nil {
			contact.Address = *req.Address
		}
		if err := supplier.SetContact(contact); err != nil {
			return nil, err
		}
	}
	if req.PaymentTermsDays != nil {
		if err := supplier.SetPaymentTerms(*req.PaymentTermsDays); err != nil {
			return nil, err
		}
	}
	if req.CategoryID != nil {
		if err := s.setCategory(ctx, supplier, req.CategoryID); err != nil {
			return nil, err
		}
	}
	if req.IsActive != nil {
		supplier.SetActive(*req.IsActive)
	}

	if err := s.suppliers.Save(ctx, supplier); err != nil {
		return nil, err
	}
	resp := ToSupplierResponse(supplier)
	return &resp, nil
}

// List returns a page of suppliers
func (s *SupplierService) List(ctx context.Context, tenantID uuid.UUID, filter SupplierListFilter) ([]SupplierResponse, int64, error) {
	f := filter.Filter()
	if filter.CategoryID != nil {
		f.Filters["category_id"] = *filter.CategoryID
	}
	if filter.IsActive != nil {
		f.Filters["is_active"] = *filter.IsActive
	}
	suppliers, err := s.suppliers.FindAllForTenant(ctx, tenantID, f)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.suppliers.CountForTenant(ctx, tenantID, f)
	if err != nil {
		return nil, 0, err
	}
	out := make([]SupplierResponse, len(suppliers))
	for i := range suppliers {
		out[i] = ToSupplierResponse(&suppliers[i])
	}
	return out, total, nil
}

// setCategory assigns categoryID after checking it exists; nil or the nil
// uuid clears it
func (s *SupplierService) setCategory(ctx context.Context, supplier *purchasing.Supplier, categoryID *uuid.UUID) error {
	if categoryID == nil || *categoryID == uuid.Nil {
		supplier.SetCategory(nil)
		return nil
	}
	if _, err := s.categories.FindByIDForTenant(ctx, supplier.TenantID, *categoryID); err != nil {
		return reference(err, "category_id", *categoryID)
	}
	id := *categoryID
	supplier.SetCategory(&id)
	return nil
}

// reference turns a missing referenced record into a validation error
func reference(err error, field string, id uuid.UUID) error {
	if errors.Is(err, shared.ErrNotFound) {
		return shared.Errorf(shared.ErrValidation, "%s %s does not exist", field, id)
	}
	return err
}
