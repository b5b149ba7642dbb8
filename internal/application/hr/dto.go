package hr

import (
	"time"

	"github.com/erpsuite/backend/internal/application/common"
	"github.com/erpsuite/backend/internal/domain/hr"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateDepartmentRequest is the payload for creating a department
type CreateDepartmentRequest struct {
	Code        string     `json:"code" binding:"required,min=1,max=50"`
	Name        string     `json:"name" binding:"required,min=1,max=200"`
	Description string     `json:"description" binding:"max=1000"`
	ManagerID   *uuid.UUID `json:"manager_id"`
}

// UpdateDepartmentRequest changes a department; a nil uuid manager_id clears it
type UpdateDepartmentRequest struct {
	Name        *string    `json:"name" binding:"omitempty,min=1,max=200"`
	Description *string    `json:"description" binding:"omitempty,max=1000"`
	ManagerID   *uuid.UUID `json:"manager_id"`
	IsActive    *bool      `json:"is_active"`
}

// DepartmentResponse is the API representation of a department
type DepartmentResponse struct {
	ID          uuid.UUID  `json:"id"`
	Code        string     `json:"code"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	ManagerID   *uuid.UUID `json:"manager_id,omitempty"`
	IsActive    bool       `json:"is_active"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// DepartmentListFilter lists departments
type DepartmentListFilter struct {
	common.PageQuery
	IsActive *bool `form:"is_active"`
}

// CreateEmployeeRequest is the payload for creating an employee
type CreateEmployeeRequest struct {
	Code         string          `json:"code" binding:"required,min=1,max=50"`
	FirstName    string          `json:"first_name" binding:"required,min=1,max=100"`
	LastName     string          `json:"last_name" binding:"max=100"`
	Email        string          `json:"email" binding:"omitempty,email"`
	Phone        string          `json:"phone" binding:"max=50"`
	DepartmentID *uuid.UUID      `json:"department_id"`
	Position     string          `json:"position" binding:"max=100"`
	HireDate     *time.Time      `json:"hire_date"`
	Salary       decimal.Decimal `json:"salary"`
	UserID       *uuid.UUID      `json:"user_id"`
}

// UpdateEmployeeRequest changes an employee. A nil uuid clears
// department_id or user_id.
type UpdateEmployeeRequest struct {
	FirstName    *string          `json:"first_name" binding:"omitempty,min=1,max=100"`
	LastName     *string          `json:"last_name" binding:"omitempty,max=100"`
	Email        *string          `json:"email" binding:"omitempty,email"`
	Phone        *string          `json:"phone" binding:"omitempty,max=50"`
	DepartmentID *uuid.UUID       `json:"department_id"`
	Position     *string          `json:"position" binding:"omitempty,max=100"`
	HireDate     *time.Time       `json:"hire_date"`
	Salary       *decimal.Decimal `json:"salary"`
	UserID       *uuid.UUID       `json:"user_id"`
	IsActive     *bool            `json:"is_active"`
}

// EmployeeResponse is the API representation of an employee
type EmployeeResponse struct {
	ID           uuid.UUID       `json:"id"`
	Code         string          `json:"code"`
	FirstName    string          `json:"first_name"`
	LastName     string          `json:"last_name"`
	FullName     string          `json:"full_name"`
	Email        string          `json:"email"`
	Phone        string          `json:"phone"`
	DepartmentID *uuid.UUID      `json:"department_id,omitempty"`
	Position     string          `json:"position"`
	HireDate     time.Time       `json:"hire_date"`
	Salary       decimal.Decimal `json:"salary"`
	UserID       *uuid.UUID      `json:"user_id,omitempty"`
	IsActive     bool            `json:"is_active"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// EmployeeListFilter lists employees
type EmployeeListFilter struct {
	common.PageQuery
	DepartmentID *uuid.UUID `form:"-" query:"department_id"`
	IsActive     *bool      `form:"is_active"`
}

// ToDepartmentResponse converts a domain department
func ToDepartmentResponse(d *hr.Department) DepartmentResponse {
	return DepartmentResponse{
		ID:          d.ID,
		Code:        d.Code,
		Name:        d.Name,
		Description: d.Description,
		ManagerID:   d.ManagerID,
		IsActive:    d.IsActive,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

// ToEmployeeResponse converts a domain employee
func ToEmployeeResponse(e *hr.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:           e.ID,
		Code:         e.Code,
		FirstName:    e.FirstName,
		LastName:     e.LastName,
		FullName:     e.FullName(),
		Email:        e.Email,
		Phone:        e.Phone,
		DepartmentID: e.DepartmentID,
		Position:     e.Position,
		HireDate:     e.HireDate,
		Salary:       e.Salary,
		UserID:       e.UserID,
		IsActive:     e.IsActive,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}
