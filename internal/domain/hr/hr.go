// Package hr models departments and the employees assigned to them.
package hr

import (
	"net/mail"
	"strings"
	"time"

	"github.com/erpsuite/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Department is an organizational unit
type Department struct {
	shared.TenantAggregateRoot
	Code        string
	Name        string
	Description string
	ManagerID   *uuid.UUID
	IsActive    bool
}

// NewDepartment creates an active department
func NewDepartment(tenantID uuid.UUID, code, name string) (*Department, error) {
	code, err := normalizeCode(code)
	if err != nil {
		return nil, err
	}
	d := &Department{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Code:                code,
		IsActive:            true,
	}
	if err := d.Update(name, ""); err != nil {
		return nil, err
	}
	return d, nil
}

// Update changes name and description
func (d *Department) Update(name, description string) error {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > 200 {
		return shared.Errorf(shared.ErrValidation, "name must be 1-200 characters")
	}
	d.Name = name
	d.Description = strings.TrimSpace(description)
	d.IncrementVersion()
	return nil
}

// SetManager assigns the employee heading the department; nil clears it
func (d *Department) SetManager(employeeID *uuid.UUID) {
	d.ManagerID = employeeID
	d.IncrementVersion()
}

// SetActive toggles the soft-active flag
func (d *Department) SetActive(active bool) {
	d.IsActive = active
	d.IncrementVersion()
}

// Employee is a person on the company payroll, optionally linked to a user login
type Employee struct {
	shared.TenantAggregateRoot
	Code         string
	FirstName    string
	LastName     string
	Email        string
	Phone        string
	DepartmentID *uuid.UUID
	Position     string
	HireDate     time.Time
	Salary       decimal.Decimal
	UserID       *uuid.UUID
	IsActive     bool
}

// NewEmployee creates an active employee
func NewEmployee(tenantID uuid.UUID, code, firstName, lastName string, hireDate time.Time) (*Employee, error) {
	code, err := normalizeCode(code)
	if err != nil {
		return nil, err
	}
	e := &Employee{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Code:                code,
		Salary:              decimal.Zero,
		IsActive:            true,
	}
	if err := e.SetName(firstName, lastName); err != nil {
		return nil, err
	}
	if hireDate.IsZero() {
		hireDate = time.Now()
	}
	e.HireDate = hireDate
	return e, nil
}

// FullName returns "first last"
func (e *Employee) FullName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

// SetName sets first and last name; the first name is required
func (e *Employee) SetName(firstName, lastName string) error {
	firstName = strings.TrimSpace(firstName)
	if firstName == "" || len(firstName) > 100 || len(lastName) > 100 {
		return shared.Errorf(shared.ErrValidation, "first_name is required and names are limited to 100 characters")
	}
	e.FirstName = firstName
	e.LastName = strings.TrimSpace(lastName)
	e.IncrementVersion()
	return nil
}

// SetContact sets email and phone; an empty email is allowed
func (e *Employee) SetContact(email, phone string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			return shared.Errorf(shared.ErrValidation, "invalid email address")
		}
	}
	e.Email = email
	e.Phone = strings.TrimSpace(phone)
	e.IncrementVersion()
	return nil
}

// Assign places the employee in a department with a position and salary
func (e *Employee) Assign(departmentID *uuid.UUID, position string, salary decimal.Decimal) error {
	if err := shared.RequireNonNegative("salary", salary); err != nil {
		return err
	}
	e.DepartmentID = departmentID
	e.Position = strings.TrimSpace(position)
	e.Salary = salary
	e.IncrementVersion()
	return nil
}

// SetHireDate changes the hire date
func (e *Employee) SetHireDate(hireDate time.Time) {
	if hireDate.IsZero() {
		return
	}
	e.HireDate = hireDate
	e.IncrementVersion()
}

// LinkUser associates the employee with a login; nil unlinks it
func (e *Employee) LinkUser(userID *uuid.UUID) {
	e.UserID = userID
	e.IncrementVersion()
}

// SetActive toggles the soft-active flag
func (e *Employee) SetActive(active bool) {
	e.IsActive = active
	e.IncrementVersion()
}

func normalizeCode(code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" || len(code) > 50 {
		return "", shared.Errorf(shared.ErrValidation, "code must be 1-50 characters")
	}
	return code, nil
}
