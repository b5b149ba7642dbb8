// Package hr implements the department and employee use cases.
package hr

import (
	"context"
	"errors"
	"strings"

	"github.com/erpsuite/backend/internal/domain/hr"
	"github.com/erpsuite/backend/internal/domain/identity"
	"github.com/erpsuite/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Service manages departments and employees
type Service struct {
	departments hr.DepartmentRepository
	employees   hr.EmployeeRepository
	users       identity.UserRepository
}

// NewService creates a new HR service. users is used to check logins
// linked to employees.
func NewService(departments hr.DepartmentRepository, employees hr.EmployeeRepository, users identity.UserRepository) *Service {
	return &Service{departments: departments, employees: employees, users: users}
}

// CreateDepartment creates a department with a unique code
func (s *Service) CreateDepartment(ctx context.Context, tenantID, userID uuid.UUID, req CreateDepartmentRequest) (*DepartmentResponse, error) {
	exists, err := s.departments.ExistsByCode(ctx, tenantID, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.Errorf(shared.ErrAlreadyExists, "department with code %s already exists", strings.ToUpper(req.Code))
	}
	dept, err := hr.NewDepartment(tenantID, req.Code, req.Name)
	if err != nil {
		return nil, err
	}
	if err := dept.Update(req.Name, req.Description); err != nil {
		return nil, err
	}
	if err := s.setManager(ctx, dept, req.ManagerID); err != nil {
		return nil, err
	}
	dept.SetCreatedBy(userID)
	if err := s.departments.Save(ctx, dept); err != nil {
		return nil, err
	}
	resp := ToDepartmentResponse(dept)
	return &resp, nil
}

// GetDepartment returns one department
func (s *Service) GetDepartment(ctx context.Context, tenantID, id uuid.UUID) (*DepartmentResponse, error) {
	dept, err := s.departments.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	resp := ToDepartmentResponse(dept)
	return &resp, nil
}

// UpdateDepartment applies the non-nil fields of req
func (s *Service) UpdateDepartment(ctx context.Context, tenantID, id uuid.UUID, req UpdateDepartmentRequest) (*DepartmentResponse, error) {
	dept, err := s.departments.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil || req.Description != nil {
		name, desc := dept.Name, dept.Description
		if req.Name != nil {
			name = *req.Name
		}
		if req.Description != nil {
			desc = *req.Description
		}
		if err := dept.Update(name, desc); err != nil {
			return nil, err
		}
	}
	if req.ManagerID != nil {
		if err := s.setManager(ctx, dept, req.ManagerID); err != nil {
			return nil, err
		}
	}
	if req.IsActive != nil {
		dept.SetActive(*req.IsActive)
	}
	if err := s.departments.Save(ctx, dept); err != nil {
		return nil, err
	}
	resp := ToDepartmentResponse(dept)
	return &resp, nil
}

// ListDepartments returns a page of departments
func (s *Service) ListDepartments(ctx context.Context, tenantID uuid.UUID, filter DepartmentListFilter) ([]DepartmentResponse, int64, error) {
	f := filter.Filter()
	if filter.IsActive != nil {
		f.Filters["is_active"] = *filter.IsActive
	}
	depts, err := s.departments.FindAllForTenant(ctx, tenantID, f)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.departments.CountForTenant(ctx, tenantID, f)
	if err != nil {
		return nil, 0, err
	}
	out := make([]DepartmentResponse, len(depts))
	for i := range depts {
		out[i] = ToDepartmentResponse(&depts[i])
	}
	return out, total, nil
}

// CreateEmployee creates an employee with a unique code
func (s *Service) CreateEmployee(ctx context.Context, tenantID, userID uuid.UUID, req CreateEmployeeRequest) (*EmployeeResponse, error) {
	exists, err := s.employees.ExistsByCode(ctx, tenantID, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.Errorf(shared.ErrAlreadyExists, "employee with code %s already exists", strings.ToUpper(req.Code))
	}

	emp, err := hr.NewEmployee(tenantID, req.Code, req.FirstName, req.LastName, deref(req.HireDate))
	if err != nil {
		return nil, err
	}
	if err := emp.SetContact(req.Email, req.Phone); err != nil {
		return nil, err
	}
	departmentID, err := s.department(ctx, tenantID, req.DepartmentID)
	if err != nil {
		return nil, err
	}
	if err := emp.Assign(departmentID, req.Position, req.Salary); err != nil {
		return nil, err
	}
	if err := s.linkUser(ctx, emp, req.UserID); err != nil {
		return nil, err
	}
	emp.SetCreatedBy(userID)
	if err := s.employees.Save(ctx, emp); err != nil {
		return nil, err
	}
	resp := ToEmployeeResponse(emp)
	return &resp, nil
}

// GetEmployee returns one employee
func (s *Service) GetEmployee(ctx context.Context, tenantID, id uuid.UUID) (*EmployeeResponse, error) {
	emp, err := s.employees.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	resp := ToEmployeeResponse(emp)
	return &resp, nil
}

// UpdateEmployee applies the non-nil fields of req
func (s *Service) UpdateEmployee(ctx context.Context, tenantID, id uuid.UUID, req UpdateEmployeeRequest) (*EmployeeResponse, error) {
	emp, err := s.employees.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if req.FirstName != nil || req.LastName != nil {
		first, last := emp.FirstName, emp.LastName
		if req.FirstName != nil {
			first = *req.FirstName
		}
		if req.LastName != nil {
			last = *req.LastName
		}
		if err := emp.SetName(first, last); err != nil {
			return nil, err
		}
	}
	if req.Email != nil || req.Phone != nil {
		email, phone := emp.Email, emp.Phone
		if req.Email != nil {
			email = *req.Email
		}
		if req.Phone != nil {
			phone = *req.Phone
		}
		if err := emp.SetContact(email, phone); err != nil {
			return nil, err
		}
	}
	if req.DepartmentID != nil || req.Position != nil || req.Salary != nil {
		departmentID, position, salary := emp.DepartmentID, emp.Position, emp.Salary
		if req.DepartmentID != nil {
			if departmentID, err = s.department(ctx, tenantID, req.DepartmentID); err != nil {
				return nil, err
			}
		}
		if req.Position != nil {
			position = *req.Position
		}
		if req.Salary != nil {
			salary = *req.Salary
		}
		if err := emp.Assign(departmentID, position, salary); err != nil {
			return nil, err
		}
	}
	if req.HireDate != nil {
		emp.SetHireDate(*req.HireDate)
	}
	if req.UserID != nil {
		if err := s.linkUser(ctx, emp, req.UserID); err != nil {
			return nil, err
		}
	}
	if req.IsActive != nil {
		emp.SetActive(*req.IsActive)
	}
	if err := s.employees.Save(ctx, emp); err != nil {
		return nil, err
	}
	resp := ToEmployeeResponse(emp)
	return &resp, nil
}

// ListEmployees returns a page of employees
func (s *Service) ListEmployees(ctx context.Context, tenantID uuid.UUID, filter EmployeeListFilter) ([]EmployeeResponse, int64, error) {
	f := filter.Filter()
	if filter.DepartmentID != nil {
		f.Filters["department_id"] = *filter.DepartmentID
	}
	if filter.IsActive != nil {
		f.Filters["is_active"] = *filter.IsActive
	}
	emps, err := s.employees.FindAllForTenant(ctx, tenantID, f)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.employees.CountForTenant(ctx, tenantID, f)
	if err != nil {
		return nil, 0, err
	}
	out := make([]EmployeeResponse, len(emps))
	for i := range emps {
		out[i] = ToEmployeeResponse(&emps[i])
	}
	return out, total, nil
}

func (s *Service) setManager(ctx context.Context, dept *hr.Department, managerID *uuid.UUID) error {
	if managerID == nil || *managerID == uuid.Nil {
		dept.SetManager(nil)
		return nil
	}
	if _, err := s.employees.FindByIDForTenant(ctx, dept.TenantID, *managerID); err != nil {
		return reference(err, "manager_id", *managerID)
	}
	id := *managerID
	dept.SetManager(&id)
	return nil
}

// department resolves an optional department reference; nil or the nil
// uuid yields no department
func (s *Service) department(ctx context.Context, tenantID uuid.UUID, id *uuid.UUID) (*uuid.UUID, error) {
	if id == nil || *id == uuid.Nil {
		return nil, nil
	}
	if _, err := s.departments.FindByIDForTenant(ctx, tenantID, *id); err != nil {
		return nil, reference(err, "department_id", *id)
	}
	v := *id
	return &v, nil
}

// linkUser links a login of the same company
func (s *Service) linkUser(ctx context.Context, emp *hr.Employee, userID *uuid.UUID) error {
	if userID == nil || *userID == uuid.Nil {
		emp.LinkUser(nil)
		return nil
	}
	user, err := s.users.FindByID(ctx, *userID)
	if err != nil {
		return reference(err, "user_id", *userID)
	}
	if user.TenantID != emp.TenantID {
		return shared.Errorf(shared.ErrValidation, "user_id %s does not exist", *userID)
	}
	id := *userID
	emp.LinkUser(&id)
	return nil
}

func reference(err error, field string, id uuid.UUID) error {
	if errors.Is(err, shared.ErrNotFound) {
		return shared.Errorf(shared.ErrValidation, "%s %s does not exist", field, id)
	}
	return err
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
