// Package inventory implements the catalog, warehouse and stock use cases.
package inventory

import (
	"context"
	"errors"
	"strings"

	"github.com/erpsuite/backend/internal/domain/inventory"
	"github.com/erpsuite/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CatalogService manages categories and brands
type CatalogService struct {
	categories inventory.CategoryRepository
	brands     inventory.BrandRepository
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(categories inventory.CategoryRepository, brands inventory.BrandRepository) *CatalogService {
	return &CatalogService{categories: categories, brands: brands}
}

// CreateCategory creates a category with a unique code
func (s *CatalogService) CreateCategory(ctx context.Context, tenantID, userID uuid.UUID, req CreateCategoryRequest) (*CategoryResponse, error) {
	exists, err := s.categories.ExistsByCode(ctx, tenantID, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.Errorf(shared.ErrAlreadyExists, "category with code %s already exists", strings.ToUpper(req.Code))
	}

	category, err := inventory.NewCategory(tenantID, req.Code, req.Name)
	if err != nil {
		return nil, err
	}
	if err := category.Update(req.Name, req.Description); err != nil {
		return nil, err
	}
	if req.ParentID != nil {
		if err := s.setParent(ctx, category, req.ParentID); err != nil {
			return nil, err
		}
	}
	category.SetCreatedBy(userID)

	if err := s.categories.Save(ctx, category); err != nil {
		return nil, err
	}
	resp := ToCategoryResponse(category)
	return &resp, nil
}

// GetCategory returns one category
func (s *CatalogService) GetCategory(ctx context.Context, tenantID, id uuid.UUID) (*CategoryResponse, error) {
	category, err := s.categories.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	resp := ToCategoryResponse(category)
	return &resp, nil
}

// UpdateCategory applies the non-nil fields of req
func (s *CatalogService) UpdateCategory(ctx context.Context, tenantID, id uuid.UUID, req UpdateCategoryRequest) (*CategoryResponse, error) {
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
	if req.ParentID != nil {
		if err := s.setParent(ctx, category, req.ParentID); err != nil {
			return nil, err
		}
	}
	if req.IsActive != nil {
		category.SetActive(*req.IsActive)
	}
	if err := s.categories.Save(ctx, category); err != nil {
		return nil, err
	}
	resp := ToCategoryResponse(category)
	return &resp, nil
}

// ListCategories returns a page of categories and the total count
func (s *CatalogService) ListCategories(ctx context.Context, tenantID uuid.UUID, filter CatalogListFilter) ([]CategoryResponse, int64, error) {
	f := filter.Filter()
	if filter.IsActive != nil {
		f.Filters["is_active"] = *filter.IsActive
	}
	if filter.ParentID != nil {
		f.Filters["parent_id"] = *filter.ParentID
	}

	categories, err := s.categories.FindAllForTenant(ctx, tenantID, f)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.categories.CountForTenant(ctx, tenantID, f)
	if err != nil {
		return nil, 0, err
	}
	out := make([]CategoryResponse, len(categories))
	for i := range categories {
		out[i] = ToCategoryResponse(&categories[i])
	}
	return out, total, nil
}

// setParent validates and assigns the parent; the nil uuid detaches it.
// Cycles are rejected by walking up from the new parent.
func (s *CatalogService) setParent(ctx context.Context, category *inventory.Category, parentID *uuid.UUID) error {
	if *parentID == uuid.Nil {
		return category.SetParent(nil)
	}
	next := *parentID
	for depth := 0; next != uuid.Nil; depth++ {
		if next == category.ID || depth > 64 {
			return shared.Errorf(shared.ErrValidation, "parent_id would create a category cycle")
		}
		parent, err := s.categories.FindByIDForTenant(ctx, category.TenantID, next)
		if err != nil {
			return reference(err, "parent_id", next)
		}
		if parent.ParentID == nil {
			break
		}
		next = *parent.ParentID
	}
	id := *parentID
	return category.SetParent(&id)
}

// CreateBrand creates a brand with a unique code
func (s *CatalogService) CreateBrand(ctx context.Context, tenantID, userID uuid.UUID, req CreateBrandRequest) (*BrandResponse, error) {
	exists, err := s.brands.ExistsByCode(ctx, tenantID, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.Errorf(shared.ErrAlreadyExists, "brand with code %s already exists", strings.ToUpper(req.Code))
	}

	brand, err := inventory.NewBrand(tenantID, req.Code, req.Name)
	if err != nil {
		return nil, err
	}
	if err := brand.Update(req.Name, req.Description); err != nil {
		return nil, err
	}
	brand.SetCreatedBy(userID)

	if err := s.brands.Save(ctx, brand); err != nil {
		return nil, err
	}
	resp := ToBrandResponse(brand)
	return &resp, nil
}

// GetBrand returns one brand
func (s *CatalogService) GetBrand(ctx context.Context, tenantID, id uuid.UUID) (*BrandResponse, error) {
	brand, err := s.brands.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	resp := ToBrandResponse(brand)
	return &resp, nil
}

// UpdateBrand applies the non-nil fields of req
func (s *CatalogService) UpdateBrand(ctx context.Context, tenantID, id uuid.UUID, req UpdateBrandRequest) (*BrandResponse, error) {
	brand, err := s.brands.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil || req.Description != nil {
		name, desc := brand.Name, brand.Description
		if req.Name != nil {
			name = *req.Name
		}
		if req.Description != nil {
			desc = *req.Description
		}
		if err := brand.Update(name, desc); err != nil {
			return nil, err
		}
	}
	if req.IsActive != nil {
		brand.SetActive(*req.IsActive)
	}
	if err := s.brands.Save(ctx, brand); err != nil {
		return nil, err
	}
	resp := ToBrandResponse(brand)
	return &resp, nil
}

// ListBrands returns a page of brands and the total count
func (s *CatalogService) ListBrands(ctx context.Context, tenantID uuid.UUID, filter CatalogListFilter) ([]BrandResponse, int64, error) {
	f := filter.Filter()
	if filter.IsActive != nil {
		f.Filters["is_active"] = *filter.IsActive
	}

	brands, err := s.brands.FindAllForTenant(ctx, tenantID, f)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.brands.CountForTenant(ctx, tenantID, f)
	if err != nil {
		return nil, 0, err
	}
	out := make([]BrandResponse, len(brands))
	for i := range brands {
		out[i] = ToBrandResponse(&brands[i])
	}
	return out, total, nil
}

// reference turns a missing referenced record into a validation error
func reference(err error, field string, id uuid.UUID) error {
	if errors.Is(err, shared.ErrNotFound) {
		return shared.Errorf(shared.ErrValidation, "%s %s does not exist", field, id)
	}
	return err
}
