// Package purchasing covers suppliers, purchase orders and the goods
// receipts recorded against them.
package purchasing

import (
	"net/mail"
	"strings"

	"github.com/erpsuite/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// SupplierCategory classifies suppliers
type SupplierCategory struct {
	shared.TenantAggregateRoot
	Code        string
	Name        string
	Description string
	IsActive    bool
}

// NewSupplierCategory creates an active supplier category
func NewSupplierCategory(tenantID uuid.UUID, code, name string) (*SupplierCategory, error) {
	code, err := normalizeCode(code)
	if err != nil {
		return nil, err
	}
	c := &SupplierCategory{
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
func (c *SupplierCategory) Update(name, description string) error {
	name, err := requireName(name)
	if err != nil {
		return err
	}
	c.Name = name
	c.Description = strings.TrimSpace(description)
	c.IncrementVersion()
	return nil
}

// SetActive toggles the soft-active flag
func (c *SupplierCategory) SetActive(active bool) {
	c.IsActive = active
	c.IncrementVersion()
}

// Supplier is a vendor goods are purchased from
type Supplier struct {
	shared.TenantAggregateRoot
	Code             string
	Name             string
	TaxID            string
	ContactName      string
	Email            string
	Phone            string
	Address          string
	CategoryID       *uuid.UUID
	PaymentTermsDays int
	IsActive         bool
}

// SupplierContact groups the optional contact fields of a supplier
type SupplierContact struct {
	ContactName string
	Email       string
	Phone       string
	Address     string
}

// NewSupplier creates an active supplier
func NewSupplier(tenantID uuid.UUID, code, name string) (*Supplier, error) {
	code, err := normalizeCode(code)
	if err != nil {
		return nil, err
	}
	s := &Supplier{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Code:                code,
		IsActive:            true,
	}
	if err := s.Rename(name); err != nil {
		return nil, err
	}
	return s, nil
}

// Rename changes the supplier name
func (s *Supplier) Rename(name string) error {
	name, err := requireName(name)
	if err != nil {
		return err
	}
	s.Name = name
	s.IncrementVersion()
	return nil
}

// SetTaxID sets the fiscal identifier
func (s *Supplier) SetTaxID(taxID string) {
	s.TaxID = strings.TrimSpace(taxID)
	s.IncrementVersion()
}

// SetContact replaces the contact fields; an empty email is allowed
func (s *Supplier) SetContact(c SupplierContact) error {
	email := strings.ToLower(strings.TrimSpace(c.Email))
	if email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			return shared.Errorf(shared.ErrValidation, "invalid email address")
		}
	}
	s.ContactName = strings.TrimSpace(c.ContactName)
	s.Email = email
	s.Phone = strings.TrimSpace(c.Phone)
	s.Address = strings.TrimSpace(c.Address)
	s.IncrementVersion()
	return nil
}

// SetCategory assigns the supplier category; nil clears it
func (s *Supplier) SetCategory(categoryID *uuid.UUID) {
	s.CategoryID = categoryID
	s.IncrementVersion()
}

// SetPaymentTerms sets the number of days the supplier allows for payment
func (s *Supplier) SetPaymentTerms(days int) error {
	if days < 0 {
		return shared.Errorf(shared.ErrValidation, "payment_terms_days cannot be negative")
	}
	s.PaymentTermsDays = days
	s.IncrementVersion()
	return nil
}

// SetActive toggles the soft-active flag
func (s *Supplier) SetActive(active bool) {
	s.IsActive = active
	s.IncrementVersion()
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
