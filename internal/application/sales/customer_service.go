// Package sales implements the customer and sales order use cases.
package sales

import (
	"context"
	"errors"
	"strings"

	"github.com/erpsuite/backend/internal/domain/sales"
	"github.com/erpsuite/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CustomerService manages customer groups and customers
type CustomerService struct {
	groups    sales.CustomerGroupRepository
	customers sales.CustomerRepository
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(groups sales.CustomerGroupRepository, customers sales.CustomerRepository) *CustomerService {
	return &CustomerService{groups: groups, customers: customers}
}

// CreateGroup creates a customer group with a unique code
func (s *CustomerService) CreateGroup(ctx context.Context, tenantID, userID uuid.UUID, req CreateCustomerGroupRequest) (*CustomerGroupResponse, error) {
	exists, err := s.groups.ExistsByCode(ctx, tenantID, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.Errorf(shared.ErrAlreadyExists, "customer group with code %s already exists", strings.ToUpper(req.Code))
	}
	group, err := sales.NewCustomerGroup(tenantID, req.Code, req.Name)
	if err != nil {
		return nil, err
	}
	if err := group.SetTerms(req.DiscountRate, req.PaymentTermsDays); err != nil {
		return nil, err
	}
	group.SetCreatedBy(userID)
	if err := s.groups.Save(ctx, group); err != nil {
		return nil, err
	}
	resp := ToCustomerGroupResponse(group)
	return &resp, nil
}

// GetGroup returns one customer group
func (s *CustomerService) GetGroup(ctx context.Context, tenantID, id uuid.UUID) (*CustomerGroupResponse, error) {
	group, err := s.groups.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	resp := ToCustomerGroupResponse(group)
	return &resp, nil
}

// UpdateGroup applies the non-nil fields of req
func (s *CustomerService) UpdateGroup(ctx context.Context, tenantID, id uuid.UUID, req UpdateCustomerGroupRequest) (*CustomerGroupResponse, error) {
	group, err := s.groups.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		if err := group.Rename(*req.Name); err != nil {
			return nil, err
		}
	}
	if req.DiscountRate != nil || req.PaymentTermsDays != nil {
		rate, days := group.DiscountRate, group.PaymentTermsDays
		if req.DiscountRate != nil {
			rate = *req.DiscountRate
		}
		if req.PaymentTermsDays != nil {
			days = *req.PaymentTermsDays
		}
		if err := group.SetTerms(rate, days); err != nil {
			return nil, err
		}
	}
	if req.IsActive != nil {
		group.SetActive(*req.IsActive)
	}
	if err := s.groups.Save(ctx, group); err != nil {
		return nil, err
	}
	resp := ToCustomerGroupResponse(group)
	return &resp, nil
}

// ListGroups returns a page of customer groups
func (s *CustomerService) ListGroups(ctx context.Context, tenantID uuid.UUID, filter CustomerGroupListFilter) ([]CustomerGroupResponse, int64, error) {
	f := filter.Filter()
	if filter.IsActive != nil {
		f.Filters["is_active"] = *filter.IsActive
	}
	groups, err := s.groups.FindAllForTenant(ctx, tenantID, f)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.groups.CountForTenant(ctx, tenantID, f)
	if err != nil {
		return nil, 0, err
	}
	out := make([]CustomerGroupResponse, len(groups))
	for i := range groups {
		out[i] = ToCustomerGroupResponse(&groups[i])
	}
	return out, total, nil
}

// Create creates a customer with a unique code
func (s *CustomerService) Create(ctx context.Context, tenantID, userID uuid.UUID, req CreateCustomerRequest) (*CustomerResponse, error) {
	exists, err := s.customers.ExistsByCode(ctx, tenantID, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.Errorf(shared.ErrAlreadyExists, "customer with code %s already exists", strings.ToUpper(req.Code))
	}

	customer, err := sales.NewCustomer(tenantID, req.Code, req.Name)
	if err != nil {
		return nil, err
	}
	if err := customer.SetContact(req.TaxID, req.Email, req.Phone, req.Address); err != nil {
		return nil, err
	}
	if err := customer.SetCredit(req.CreditLimit, req.CreditUsed); err != nil {
		return nil, err
	}
	if err := s.setGroup(ctx, customer, req.GroupID); err != nil {
		return nil, err
	}
	customer.SetCreatedBy(userID)
	if err := s.customers.Save(ctx, customer); err != nil {
		return nil, err
	}
	resp := ToCustomerResponse(customer)
	return &resp, nil
}

// GetByID returns one customer
func (s *CustomerService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*CustomerResponse, error) {
	customer, err := s.customers.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	resp := ToCustomerResponse(customer)
	return &resp, nil
}

// Update applies the non-nil fields of req
func (s *CustomerService) Update(ctx context.Context, tenantID, id uuid.UUID, req UpdateCustomerRequest) (*CustomerResponse, error) {
	customer, err := s.customers.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		if err := customer.Rename(*req.Name); err != nil {
			return nil, err
		}
	}
	if req.TaxID != nil || req.Email != nil || req.Phone != nil || req.Address != nil {
		taxID, email, phone, address := customer.TaxID, customer.Email, customer.Phone, customer.Address
		if req.TaxID != nil {
			taxID = *req.TaxID
		}
		if req.Email != nil {
			email = *req.Email
		}
		if req.Phone != nil {
			phone = *req.Phone
		}
		if req.Address != nil {
			address = *req.Address
		}
		if err := customer.SetContact(taxID, email, phone, address); err != nil {
			return nil, err
		}
	}
	if req.CreditLimit != nil || req.CreditUsed != nil {
		limit, used := customer.CreditLimit, customer.CreditUsed
		if req.CreditLimit != nil {
			limit = *req.CreditLimit
		}
		if req.CreditUsed != nil {
			used = *req.CreditUsed
		}
		if err := customer.SetCredit(limit, used); err != nil {
			return nil, err
		}
	}
	if req.GroupID != nil {
		if err := s.setGroup(ctx, customer, req.GroupID); err != nil {
			return nil, err
		}
	}
	if req.IsActive != nil {
		customer.SetActive(*req.IsActive)
	}
	if err := s.customers.Save(ctx, customer); err != nil {
		return nil, err
	}
	resp := ToCustomerResponse(customer)
	return &resp, nil
}

// List returns a page of customers
func (s *CustomerService) List(ctx context.Context, tenantID uuid.UUID, filter CustomerListFilter) ([]CustomerResponse, int64, error) {
	f := filter.Filter()
	if filter.GroupID != nil {
		f.Filters["group_id"] = *filter.GroupID
	}
	if filter.IsActive != nil {
		f.Filters["is_active"] = *filter.IsActive
	}
	customers, err := s.customers.FindAllForTenant(ctx, tenantID, f)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.customers.CountForTenant(ctx, tenantID, f)
	if err != nil {
		return nil, 0, err
	}
	out := make([]CustomerResponse, len(customers))
	for i := range customers {
		out[i] = ToCustomerResponse(&customers[i])
	}
	return out, total, nil
}

func (s *CustomerService) setGroup(ctx context.Context, customer *sales.Customer, groupID *uuid.UUID) error {
	if groupID == nil || *groupID == uuid.Nil {
		customer.SetGroup(nil)
		return nil
	}
	if _, err := s.groups.FindByIDForTenant(ctx, customer.TenantID, *groupID); err != nil {
		return reference(err, "group_id", *groupID)
	}
	id := *groupID
	customer.SetGroup(&id)
	return nil
}

func reference(err error, field string, id uuid.UUID) error {
	if errors.Is(err, shared.ErrNotFound) {
		return shared.Errorf(shared.ErrValidation, "%s %s does not exist", field, id)
	}
	return err
}
