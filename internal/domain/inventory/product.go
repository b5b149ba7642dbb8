package inventory

import (
	"strings"

	"github.com/erpsuite/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultUnit is assigned when a product is created without a unit of measure
const DefaultUnit = "pcs"

// Product is a sellable, stockable catalog item identified by SKU
type Product struct {
	shared.TenantAggregateRoot
	SKU         string
	Name        string
	Description string
	CategoryID  *uuid.UUID
	BrandID     *uuid.UUID
	Unit        string
	Barcode     string
	SalePrice   decimal.Decimal
	CostPrice   decimal.Decimal
	MinStock    decimal.Decimal
	IsActive    bool
}

// NewProduct creates an active product
func NewProduct(tenantID uuid.UUID, sku, name string, salePrice, costPrice decimal.Decimal) (*Product, error) {
	sku, err := normalizeCode(sku)
	if err != nil {
		return nil, err
	}
	p := &Product{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		SKU:                 sku,
		Unit:                DefaultUnit,
		MinStock:            decimal.Zero,
		IsActive:            true,
	}
	if err := p.Rename(name); err != nil {
		return nil, err
	}
	if err := p.SetPrices(salePrice, costPrice); err != nil {
		return nil, err
	}
	return p, nil
}

// Rename changes the product name
func (p *Product) Rename(name string) error {
	name, err := requireName(name)
	if err != nil {
		return err
	}
	p.Name = name
	p.IncrementVersion()
	return nil
}

// SetDetails sets the free-form descriptive fields
func (p *Product) SetDetails(description, unit, barcode string) {
	p.Description = strings.TrimSpace(description)
	if unit = strings.TrimSpace(unit); unit != "" {
		p.Unit = unit
	}
	p.Barcode = strings.TrimSpace(barcode)
	p.IncrementVersion()
}

// SetClassification assigns category and brand; nil clears either
func (p *Product) SetClassification(categoryID, brandID *uuid.UUID) {
	p.CategoryID = categoryID
	p.BrandID = brandID
	p.IncrementVersion()
}

// SetPrices sets sale and cost price
func (p *Product) SetPrices(salePrice, costPrice decimal.Decimal) error {
	if err := shared.RequireNonNegative("sale_price", salePrice); err != nil {
		return err
	}
	if err := shared.RequireNonNegative("cost_price", costPrice); err != nil {
		return err
	}
	p.SalePrice = salePrice
	p.CostPrice = costPrice
	p.IncrementVersion()
	return nil
}

// SetMinStock sets the reorder threshold used for the low-stock flag
func (p *Product) SetMinStock(minStock decimal.Decimal) error {
	if err := shared.RequireNonNegative("min_stock", minStock); err != nil {
		return err
	}
	p.MinStock = minStock
	p.IncrementVersion()
	return nil
}

// SetActive toggles the soft-active flag
func (p *Product) SetActive(active bool) {
	p.IsActive = active
	p.IncrementVersion()
}

// ProfitMargin returns (sale - cost) / cost * 100 rounded to two places.
// The second return value is false when cost is zero and no margin exists.
func (p *Product) ProfitMargin() (decimal.Decimal, bool) {
	if p.CostPrice.IsZero() {
		return decimal.Zero, false
	}
	margin := p.SalePrice.Sub(p.CostPrice).
		Div(p.CostPrice).
		Mul(decimal.NewFromInt(100)).
		Round(2)
	return margin, true
}
