// Package sales covers customers and the orders they place.
package sales

import (
	"net/mail"
	"strings"

	"github.com/erpsuite/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CustomerGroup carries pricing and payment defaults shared by its customers
type CustomerGroup struct {
	shared.TenantAggregateRoot
	Code             string
	Name             string
	DiscountRate     decimal.Decimal
	PaymentTermsDays int
	IsActive         bool
}

// NewCustomerGroup creates an active group without discount
func NewCustomerGroup(tenantID uuid.UUID, code, name string) (*CustomerGroup, error) {
	code, err := normalizeCode(code)
	if err != nil {
		return nil, err
	}
	g := &CustomerGroup{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Code:                code,
		DiscountRate:        decimal.Zero,
		IsActive:            true,
	}
	if err := g.Rename(name); err != nil {
		return nil, err
	}
	return g, nil
}

// Rename changes the group name
func (g *CustomerGroup) Rename(name string) error {
	name, err := requireName(name)
	if err != nil {
		return err
	}
	g.Name = name
	g.IncrementVersion()
	return nil
}

// SetTerms sets the default discount percentage and payment terms
func (g *CustomerGroup) SetTerms(discountRate decimal.Decimal, paymentTermsDays int) error {
	if err := requireRate("discount_rate", discountRate); err != nil {
		return err
	}
	if paymentTermsDays < 0 {
		return shared.Errorf(shared.ErrValidation, "payment_terms_days cannot be negative")
	}
	g.DiscountRate = discountRate
	g.PaymentTermsDays = paymentTermsDays
	g.IncrementVersion()
	return nil
}

// SetActive toggles the soft-active flag
func (g *CustomerGroup) SetActive(active bool) {
	g.IsActive = active
	g.IncrementVersion()
}

// Customer is a counterparty goods are sold to
type Customer struct {
	shared.TenantAggregateRoot
	Code        string
	Name        string
	TaxID       string
	Email       string
	Phone       string
	Address     string
	GroupID     *uuid.UUID
	CreditLimit decimal.Decimal
	CreditUsed  decimal.Decimal
	IsActive    bool
}

// NewCustomer creates an active customer with no credit
func NewCustomer(tenantID uuid.UUID, code, name string) (*Customer, error) {
	code, err := normalizeCode(code)
	if err != nil {
		return nil, err
	}
	c := &Customer{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Code:                code,
		CreditLimit:         decimal.Zero,
		CreditUsed:          decimal.Zero,
		IsActive:            true,
	}
	if err := c.Rename(name); err != nil {
		return nil, err
	}
	return c, nil
}

// Rename changes the customer name
func (c *Customer) Rename(name string) error {
	name, err := requireName(name)
	if err != nil {
		return err
	}
	c.Name = name
	c.IncrementVersion()
	return nil
}

// SetContact sets tax id and contact fields; an empty email is allowed
func (c *Customer) SetContact(taxID, email, phone, address string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			return shared.Errorf(shared.ErrValidation, "invalid email address")
		}
	}
	c.TaxID = strings.TrimSpace(taxID)
	c.Email = email
	c.Phone = strings.TrimSpace(phone)
	c.Address = strings.TrimSpace(address)
	c.IncrementVersion()
	return nil
}

// SetGroup assigns the customer group; nil clears it
func (c *Customer) SetGroup(groupID *uuid.UUID) {
	c.GroupID = groupID
	c.IncrementVersion()
}

// SetCredit sets limit and used credit. Used credit may exceed the limit,
// in which case available credit is negative.
func (c *Customer) SetCredit(limit, used decimal.Decimal) error {
	if err := shared.RequireNonNegative("credit_limit", limit); err != nil {
		return err
	}
	if err := shared.RequireNonNegative("credit_used", used); err != nil {
		return err
	}
	c.CreditLimit = limit
	c.CreditUsed = used
	c.IncrementVersion()
	return nil
}

// AvailableCredit is credit_limit - credit_used
func (c *Customer) AvailableCredit() decimal.Decimal {
	return c.CreditLimit.Sub(c.CreditUsed)
}

// SetActive toggles the soft-active flag
func (c *Customer) SetActive(active bool) {
	c.IsActive = active
	c.IncrementVersion()
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

var maxRate = decimal.NewFromInt(100)

func requireRate(field string, rate decimal.Decimal) error {
	if rate.IsNegative() || rate.GreaterThan(maxRate) {
		return shared.Errorf(shared.ErrValidation, "%s must be between 0 and 100", field)
	}
	return shared.RequireScale(field, rate)
}
