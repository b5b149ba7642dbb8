// Package company holds the tenant root record every business entity
// belongs to.
package company

import (
	"regexp"
	"strings"

	"github.com/erpsuite/backend/internal/domain/shared"
	"github.com/google/uuid"
)

var currencyPattern = regexp.MustCompile(`^[A-Z]{3}$`)

// Company is the tenant root. Its ID is the tenant ID carried by every
// other aggregate and by the JWT claims of its users.
type Company struct {
	shared.BaseAggregateRoot
	Code     string
	Name     string
	TaxID    string
	Currency string
	IsActive bool
}

// NewCompany creates an active company
func NewCompany(code, name, currency string) (*Company, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" || len(code) > 50 {
		return nil, shared.Errorf(shared.ErrValidation, "company code must be 1-50 characters")
	}
	c := &Company{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              code,
		IsActive:          true,
	}
	if err := c.Rename(name); err != nil {
		return nil, err
	}
	if err := c.SetCurrency(currency); err != nil {
		return nil, err
	}
	return c, nil
}

// TenantID returns the tenant identifier this company defines
func (c *Company) TenantID() uuid.UUID {
	return c.ID
}

// Rename changes the display name
func (c *Company) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > 200 {
		return shared.Errorf(shared.ErrValidation, "company name must be 1-200 characters")
	}
	c.Name = name
	c.IncrementVersion()
	return nil
}

// SetTaxID sets the fiscal identifier
func (c *Company) SetTaxID(taxID string) {
	c.TaxID = strings.ToUpper(strings.TrimSpace(taxID))
	c.IncrementVersion()
}

// SetCurrency sets the ISO 4217 currency code the company invoices in
func (c *Company) SetCurrency(currency string) error {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if !currencyPattern.MatchString(currency) {
		return shared.Errorf(shared.ErrValidation, "currency must be a 3-letter ISO code, got %q", currency)
	}
	c.Currency = currency
	c.IncrementVersion()
	return nil
}

// SetActive toggles the soft-active flag
func (c *Company) SetActive(active bool) {
	c.IsActive = active
	c.IncrementVersion()
}
