// Package inventory models the product catalog, warehouses and the stock
// held in them.
package inventory

import (
	"strings"

	"github.com/erpsuite/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Category groups products and may nest under a parent category
type Category struct {
	shared.TenantAggregateRoot
	Code        string
	Name        string
	Description string
	ParentID    *uuid.UUID
	IsActive    bool
}

// NewCategory creates an active category
func NewCategory(tenantID uuid.UUID, code, name string) (*Category, error) {
	code, err := normalizeCode(code)
	if err != nil {
		return nil, err
	}
	c := &Category{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Code:                code,
		IsActive:            true,
	}
	if err := c.Update(name, ""); err != nil {
		return nil, err
	}
	return c, nil
}

// Update changes name and description
func (c *Category) Update(name, description string) error {
	name, err := requireName(name)
	if err != nil {
		return err
	}
	c.Name = name
	c.Description = strings.TrimSpace(description)
	c.IncrementVersion()
	return nil
}

// SetParent moves the category under another one; nil makes it a root
func (c *Category) SetParent(parentID *uuid.UUID) error {
	if parentID != nil && *parentID == c.ID {
		return shared.Errorf(shared.ErrValidation, "category cannot be its own parent")
	}
	c.ParentID = parentID
	c.IncrementVersion()
	return nil
}

// SetActive toggles the soft-active flag
func (c *Category) SetActive(active bool) {
	c.IsActive = active
	c.IncrementVersion()
}

// Brand is the manufacturer or label of a product
type Brand struct {
	shared.TenantAggregateRoot
	Code        string
	Name        string
	Description string
	IsActive    bool
}

// NewBrand creates an active brand
func NewBrand(tenantID uuid.UUID, code, name string) (*Brand, error) {
	code, err := normalizeCode(code)
	if err != nil {
		return nil, err
	}
	b := &Brand{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Code:                code,
		IsActive:            true,
	}
	if err := b.Update(name, ""); err != nil {
		return nil, err
	}
	return b, nil
}

// Update changes name and description
func (b *Brand) Update(name, description string) error {
	name, err := requireName(name)
	if err != nil {
		return err
	}
	b.Name = name
	b.Description = strings.TrimSpace(description)
	b.IncrementVersion()
	return nil
}

// SetActive toggles the soft-active flag
func (b *Brand) SetActive(active bool) {
	b.IsActive = active
	b.IncrementVersion()
}

func normalizeCode(code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" || len(code) > 50 {
		return "", shared.Errorf(shared.ErrValidation, "code must be 1-50 characters")
	}
	return code, nil
}

func requireName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > 200 {
		return "", shared.Errorf(shared.ErrValidation, "name must be 1-200 characters")
	}
	return name, nil
}
