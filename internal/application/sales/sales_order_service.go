package sales

import (
	"context"
	"errors"
	"time"

	"github.com/erpsuite/backend/internal/application/common"
	"github.com/erpsuite/backend/internal/domain/inventory"
	"github.com/erpsuite/backend/internal/domain/sales"
	"github.com/erpsuite/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SalesOrderService handles sales order business operations
type SalesOrderService struct {
	orders     sales.SalesOrderRepository
	customers  sales.CustomerRepository
	groups     sales.CustomerGroupRepository
	products   inventory.ProductRepository
	warehouses inventory.WarehouseRepository
}

// NewSalesOrderService creates a new SalesOrderService
func NewSalesOrderService(
	orders sales.SalesOrderRepository,
	customers sales.CustomerRepository,
	groups sales.CustomerGroupRepository,
	products inventory.ProductRepository,
	warehouses inventory.WarehouseRepository,
) *SalesOrderService {
	return &SalesOrderService{
		orders:     orders,
		customers:  customers,
		groups:     groups,
		products:   products,
		warehouses: warehouses,
	}
}

// Create creates a draft sales order numbered SO-YYYY-NNNNN
func (s *SalesOrderService) Create(ctx context.Context, tenantID, userID uuid.UUID, req CreateSalesOrderRequest) (*SalesOrderResponse, error) {
	customer, err := s.customer(ctx, tenantID, req.CustomerID)
	if err != nil {
		return nil, err
	}
	if err := s.checkWarehouse(ctx, tenantID, req.WarehouseID); err != nil {
		return nil, err
	}
	lines, err := s.lineInputs(ctx, tenantID, customer, req.Lines)
	if err != nil {
		return nil, err
	}
	var orderDate time.Time
	if req.OrderDate != nil {
		orderDate = *req.OrderDate
	}

	var order *sales.SalesOrder
	err = common.SaveNumbered(ctx,
		func(ctx context.Context) (string, error) { return s.orders.GenerateNumber(ctx, tenantID) },
		func(number string) error {
			if order == nil {
				o, err := sales.NewSalesOrder(tenantID, number, customer.ID, orderDate, lines)
				if err != nil {
					return err
				}
				if err := o.SetHeader(customer.ID, req.WarehouseID, o.OrderDate, req.Notes); err != nil {
					return err
				}
				o.SetCreatedBy(userID)
				order = o
			}
			order.Number = number
			return s.orders.Save(ctx, order)
		})
	if err != nil {
		return nil, err
	}
	resp := ToSalesOrderResponse(order)
	return &resp, nil
}

// GetByID returns one sales order with its lines
func (s *SalesOrderService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*SalesOrderResponse, error) {
	order, err := s.orders.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	resp := ToSalesOrderResponse(order)
	return &resp, nil
}

// Update changes the header and optionally replaces the lines
func (s *SalesOrderService) Update(ctx context.Context, tenantID, id uuid.UUID, req UpdateSalesOrderRequest) (*SalesOrderResponse, error) {
	order, err := s.orders.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	customerID := order.CustomerID
	if req.CustomerID != nil {
		customerID = *req.CustomerID
	}
	customer, err := s.customer(ctx, tenantID, customerID)
	if err != nil {
		return nil, err
	}
	warehouseID := order.WarehouseID
	if req.WarehouseID != nil {
		if *req.WarehouseID == uuid.Nil {
			warehouseID = nil
		} else {
			if err := s.checkWarehouse(ctx, tenantID, req.WarehouseID); err != nil {
				return nil, err
			}
			warehouseID = req.WarehouseID
		}
	}
	orderDate, notes := order.OrderDate, order.Notes
	if req.OrderDate != nil {
		orderDate = *req.OrderDate
	}
	if req.Notes != nil {
		notes = *req.Notes
	}
	if err := order.SetHeader(customer.ID, warehouseID, orderDate, notes); err != nil {
		return nil, err
	}

	if len(req.Lines) > 0 {
		lines, err := s.lineInputs(ctx, tenantID, customer, req.Lines)
		if err != nil {
			return nil, err
		}
		if err := order.SetLines(lines); err != nil {
			return nil, err
		}
	}

	if err := s.orders.Save(ctx, order); err != nil {
		return nil, err
	}
	resp := ToSalesOrderResponse(order)
	return &resp, nil
}

// SetStatus assigns any known status
func (s *SalesOrderService) SetStatus(ctx context.Context, tenantID, id uuid.UUID, req SetStatusRequest) (*SalesOrderResponse, error) {
	order, err := s.orders.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := order.SetStatus(sales.SalesOrderStatus(req.Status)); err != nil {
		return nil, err
	}
	if err := s.orders.Save(ctx, order); err != nil {
		return nil, err
	}
	resp := ToSalesOrderResponse(order)
	return &resp, nil
}

// List returns a page of sales orders
func (s *SalesOrderService) List(ctx context.Context, tenantID uuid.UUID, filter SalesOrderListFilter) ([]SalesOrderResponse, int64, error) {
	f := filter.Filter()
	if filter.Status != "" {
		f.Filters["status"] = filter.Status
	}
	if filter.CustomerID != nil {
		f.Filters["customer_id"] = *filter.CustomerID
	}
	orders, err := s.orders.FindAllForTenant(ctx, tenantID, f)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.orders.CountForTenant(ctx, tenantID, f)
	if err != nil {
		return nil, 0, err
	}
	out := make([]SalesOrderResponse, len(orders))
	for i := range orders {
		out[i] = ToSalesOrderResponse(&orders[i])
	}
	return out, total, nil
}

func (s *SalesOrderService) customer(ctx context.Context, tenantID, id uuid.UUID) (*sales.Customer, error) {
	customer, err := s.customers.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, reference(err, "customer_id", id)
	}
	return customer, nil
}

func (s *SalesOrderService) checkWarehouse(ctx context.Context, tenantID uuid.UUID, warehouseID *uuid.UUID) error {
	if warehouseID == nil {
		return nil
	}
	if _, err := s.warehouses.FindByIDForTenant(ctx, tenantID, *warehouseID); err != nil {
		return reference(err, "warehouse_id", *warehouseID)
	}
	return nil
}

// lineInputs snapshots product sku and name. A missing unit price falls
// back to the product's sale price and a missing discount rate to the
// customer's group discount.
func (s *SalesOrderService) lineInputs(ctx context.Context, tenantID uuid.UUID, customer *sales.Customer, reqs []OrderLineRequest) ([]sales.LineInput, error) {
	ids := make([]uuid.UUID, len(reqs))
	for i, r := range reqs {
		ids[i] = r.ProductID
	}
	products, err := s.products.FindByIDs(ctx, tenantID, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*inventory.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	groupDiscount := decimal.Zero
	if customer.GroupID != nil {
		group, err := s.groups.FindByIDForTenant(ctx, tenantID, *customer.GroupID)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		if group != nil {
			groupDiscount = group.DiscountRate
		}
	}

	out := make([]sales.LineInput, len(reqs))
	for i, r := range reqs {
		p, ok := byID[r.ProductID]
		if !ok {
			return nil, shared.Errorf(shared.ErrValidation, "lines[%d]: product_id %s does not exist", i, r.ProductID)
		}
		price := p.SalePrice
		if r.UnitPrice != nil {
			price = *r.UnitPrice
		}
		discount := groupDiscount
		if r.DiscountRate != nil {
			discount = *r.DiscountRate
		}
		out[i] = sales.LineInput{
			ProductID:    p.ID,
			ProductCode:  p.SKU,
			ProductName:  p.Name,
			Quantity:     r.Quantity,
			UnitPrice:    price,
			DiscountRate: discount,
			TaxRate:      r.TaxRate,
		}
	}
	return out, nil
}
