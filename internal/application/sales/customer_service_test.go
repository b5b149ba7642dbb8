package sales

import (
	"context"
	"testing"

	"github.com/erpsuite/backend/internal/domain/sales"
	"github.com/erpsuite/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockGroupRepository struct {
	mock.Mock
}

func (m *mockGroupRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*sales.CustomerGroup, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.CustomerGroup), args.Error(1)
}

func (m *mockGroupRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]sales.CustomerGroup, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]sales.CustomerGroup), args.Error(1)
}

func (m *mockGroupRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockGroupRepository) ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error) {
	args := m.Called(ctx, tenantID, code)
	return args.Bool(0), args.Error(1)
}

func (m *mockGroupRepository) Save(ctx context.Context, group *sales.CustomerGroup) error {
	return m.Called(ctx, group).Error(0)
}

type mockCustomerRepository struct {
	mock.Mock
}

func (m *mockCustomerRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*sales.Customer, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.Customer), args.Error(1)
}

func (m *mockCustomerRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]sales.Customer, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]sales.Customer), args.Error(1)
}

func (m *mockCustomerRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockCustomerRepository) ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error) {
	args := m.Called(ctx, tenantID, code)
	return args.Bool(0), args.Error(1)
}

func (m *mockCustomerRepository) Save(ctx context.Context, customer *sales.Customer) error {
	return m.Called(ctx, customer).Error(0)
}

func TestCustomerService_CreateGroup(t *testing.T) {
	ctx := context.Background()
	tenantID, userID := uuid.New(), uuid.New()

	t.Run("creates with terms", func(t *testing.T) {
		groups := new(mockGroupRepository)
		svc := NewCustomerService(groups, new(mockCustomerRepository))
		groups.On("ExistsByCode", ctx, tenantID, "vip").Return(false, nil)
		groups.On("Save", ctx, mock.AnythingOfType("*sales.CustomerGroup")).Return(nil)

		resp, err := svc.CreateGroup(ctx, tenantID, userID, CreateCustomerGroupRequest{
			Code: "vip", Name: "VIP", DiscountRate: decimal.NewFromInt(10), PaymentTermsDays: 45,
		})
		require.NoError(t, err)
		assert.Equal(t, "VIP", resp.Code)
		assert.Equal(t, 45, resp.PaymentTermsDays)
		groups.AssertExpectations(t)
	})

	t.Run("duplicate code", func(t *testing.T) {
		groups := new(mockGroupRepository)
		svc := NewCustomerService(groups, new(mockCustomerRepository))
		groups.On("ExistsByCode", ctx, tenantID, "VIP").Return(true, nil)

		_, err := svc.CreateGroup(ctx, tenantID, userID, CreateCustomerGroupRequest{Code: "VIP", Name: "VIP"})
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
		groups.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("discount above 100 is rejected", func(t *testing.T) {
		groups := new(mockGroupRepository)
		svc := NewCustomerService(groups, new(mockCustomerRepository))
		groups.On("ExistsByCode", ctx, tenantID, "X").Return(false, nil)

		_, err := svc.CreateGroup(ctx, tenantID, userID, CreateCustomerGroupRequest{Code: "X", Name: "X", DiscountRate: decimal.NewFromInt(101)})
		assert.ErrorIs(t, err, shared.ErrValidation)
	})
}

func TestCustomerService_Create(t *testing.T) {
	ctx := context.Background()
	tenantID, userID := uuid.New(), uuid.New()

	t.Run("unknown group is a validation error", func(t *testing.T) {
		groups, customers := new(mockGroupRepository), new(mockCustomerRepository)
		svc := NewCustomerService(groups, customers)
		groupID := uuid.New()
		customers.On("ExistsByCode", ctx, tenantID, "C1").Return(false, nil)
		groups.On("FindByIDForTenant", ctx, tenantID, groupID).Return(nil, shared.ErrNotFound)

		_, err := svc.Create(ctx, tenantID, userID, CreateCustomerRequest{Code: "C1", Name: "Customer", GroupID: &groupID})
		assert.ErrorIs(t, err, shared.ErrValidation)
		customers.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("available credit is derived", func(t *testing.T) {
		groups, customers := new(mockGroupRepository), new(mockCustomerRepository)
		svc := NewCustomerService(groups, customers)
		customers.On("ExistsByCode", ctx, tenantID, "C2").Return(false, nil)
		customers.On("Save", ctx, mock.AnythingOfType("*sales.Customer")).Return(nil)

		resp, err := svc.Create(ctx, tenantID, userID, CreateCustomerRequest{
			Code: "C2", Name: "Customer", Email: "Buyer@Example.com",
			CreditLimit: decimal.NewFromInt(1000), CreditUsed: decimal.NewFromInt(1250),
		})
		require.NoError(t, err)
		assert.Equal(t, "buyer@example.com", resp.Email)
		assert.True(t, decimal.NewFromInt(-250).Equal(resp.AvailableCredit))
	})
}

func TestCustomerService_UpdateClearsGroup(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	groups, customers := new(mockGroupRepository), new(mockCustomerRepository)
	svc := NewCustomerService(groups, customers)

	existing, err := sales.NewCustomer(tenantID, "C1", "Customer")
	require.NoError(t, err)
	groupID := uuid.New()
	existing.SetGroup(&groupID)
	customers.On("FindByIDForTenant", ctx, tenantID, existing.ID).Return(existing, nil)
	customers.On("Save", ctx, existing).Return(nil)

	nilID := uuid.Nil
	resp, err := svc.Update(ctx, tenantID, existing.ID, UpdateCustomerRequest{GroupID: &nilID})
	require.NoError(t, err)
	assert.Nil(t, resp.GroupID)
}

func TestCustomerService_List(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	groups, customers := new(mockGroupRepository), new(mockCustomerRepository)
	svc := NewCustomerService(groups, customers)

	active := true
	c, err := sales.NewCustomer(tenantID, "C1", "Customer")
	require.NoError(t, err)
	matchFilter := mock.MatchedBy(func(f shared.Filter) bool {
		return f.Filters["is_active"] == true && f.PageSize == shared.DefaultPageSize
	})
	customers.On("FindAllForTenant", ctx, tenantID, matchFilter).Return([]sales.Customer{*c}, nil)
	customers.On("CountForTenant", ctx, tenantID, matchFilter).Return(int64(1), nil)

	items, total, err := svc.List(ctx, tenantID, CustomerListFilter{IsActive: &active})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "C1", items[0].Code)
}
