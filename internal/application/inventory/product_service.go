package inventory

import (
	"context"
	"strings"

	"github.com/erpsuite/backend/internal/domain/inventory"
	"github.com/erpsuite/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductService manages the product catalog
type ProductService struct {
	products   inventory.ProductRepository
	categories inventory.CategoryRepository
	brands     inventory.BrandRepository
}

// NewProductService creates a new ProductService
func NewProductService(
	products inventory.ProductRepository,
	categories inventory.CategoryRepository,
	brands inventory.BrandRepository,
) *ProductService {
	return &ProductService{products: products, categories: categories, brands: brands}
}

// Create creates a product with a unique SKU
func (s *ProductService) Create(ctx context.Context, tenantID, userID uuid.UUID, req CreateProductRequest) (*ProductResponse, error) {
	exists, err := s.products.ExistsBySKU(ctx, tenantID, req.SKU)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.Errorf(shared.ErrAlreadyExists, "product with SKU %s already exists", strings.ToUpper(req.SKU))
	}

	product, err := inventory.NewProduct(tenantID, req.SKU, req.Name, req.SalePrice, req.CostPrice)
	if err != nil {
		return nil, err
	}
	product.SetDetails(req.Description, req.Unit, req.Barcode)
	if err := s.classify(ctx, product, req.CategoryID, req.BrandID); err != nil {
		return nil, err
	}
	if req.MinStock != nil {
		if err := product.SetMinStock(*req.MinStock); err != nil {
			return nil, err
		}
	}
	product.SetCreatedBy(userID)

	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}
	resp := ToProductResponse(product)
	return &resp, nil
}

// GetByID returns one product
func (s *ProductService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.products.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	resp := ToProductResponse(product)
	return &resp, nil
}

// Update applies the non-nil fields of req. A nil uuid clears the
// category or brand.
func (s *ProductService) Update(ctx context.Context, tenantID, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.products.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if err := product.Rename(*req.Name); err != nil {
			return nil, err
		}
	}
	if req.Description != nil || req.Unit != nil || req.Barcode != nil {
		desc, unit, barcode := product.Description, product.Unit, product.Barcode
		if req.Description != nil {
			desc = *req.Description
		}
		if req.Unit != nil {
			unit = *req.Unit
		}
		if req.Barcode != nil {
			barcode = *req.Barcode
		}
		product.SetDetails(desc, unit, barcode)
	}
	if req.CategoryID != nil || req.BrandID != nil {
		categoryID, brandID := product.CategoryID, product.BrandID
		if req.CategoryID != nil {
			categoryID = nilIfZero(*req.CategoryID)
		}
		if req.BrandID != nil {
			brandID = nilIfZero(*req.BrandID)
		}
		if err := s.classify(ctx, product, categoryID, brandID); err != nil {
			return nil, err
		}
	}
	if req.SalePrice != nil || req.CostPrice != nil {
		sale, cost := product.SalePrice, product.CostPrice
		if req.SalePrice != nil {
			sale = *req.SalePrice
		}
		if req.CostPrice != nil {
			cost = *req.CostPrice
		}
		if err := product.SetPrices(sale, cost); err != nil {
			return nil, err
		}
	}
	if req.MinStock != nil {
		if err := product.SetMinStock(*req.MinStock); err != nil {
			return nil, err
		}
	}
	if req.IsActive != nil {
		product.SetActive(*req.IsActive)
	}

	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}
	resp := ToProductResponse(product)
	return &resp, nil
}

// List returns a page of products and the total count
func (s *ProductService) List(ctx context.Context, tenantID uuid.UUID, filter ProductListFilter) ([]ProductResponse, int64, error) {
	f := filter.Filter()
	if filter.CategoryID != nil {
		f.Filters["category_id"] = *filter.CategoryID
	}
	if filter.BrandID != nil {
		f.Filters["brand_id"] = *filter.BrandID
	}
	if filter.IsActive != nil {
		f.Filters["is_active"] = *filter.IsActive
	}

	products, err := s.products.FindAllForTenant(ctx, tenantID, f)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.products.CountForTenant(ctx, tenantID, f)
	if err != nil {
		return nil, 0, err
	}
	out := make([]ProductResponse, len(products))
	for i := range products {
		out[i] = ToProductResponse(&products[i])
	}
	return out, total, nil
}

// classify checks that category and brand exist in the tenant before
// assigning them
func (s *ProductService) classify(ctx context.Context, product *inventory.Product, categoryID, brandID *uuid.UUID) error {
	if categoryID != nil {
		if _, err := s.categories.FindByIDForTenant(ctx, product.TenantID, *categoryID); err != nil {
			return reference(err, "category_id", *categoryID)
		}
	}
	if brandID != nil {
		if _, err := s.brands.FindByIDForTenant(ctx, product.TenantID, *brandID); err != nil {
			return reference(err, "brand_id", *brandID)
		}
	}
	product.SetClassification(categoryID, brandID)
	return nil
}

func nilIfZero(id uuid.UUID) *uuid.UUID {
	if id == uuid.Nil {
		return nil
	}
	return &id
}

// zeroIfNil returns d or zero
func zeroIfNil(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}
