package purchasing

import (
	"context"
	"time"

	"github.com/erpsuite/backend/internal/application/common"
	"github.com/erpsuite/backend/internal/domain/inventory"
	"github.com/erpsuite/backend/internal/domain/purchasing"
	"github.com/erpsuite/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// PurchaseOrderService handles purchase order business operations
type PurchaseOrderService struct {
	orders     purchasing.PurchaseOrderRepository
	suppliers  purchasing.SupplierRepository
	products   inventory.ProductRepository
	warehouses inventory.WarehouseRepository
}

// NewPurchaseOrderService creates a new PurchaseOrderService
func NewPurchaseOrderService(
	orders purchasing.PurchaseOrderRepository,
	suppliers purchasing.SupplierRepository,
	products inventory.ProductRepository,
	warehouses inventory.WarehouseRepository,
) *PurchaseOrderService {
	return &PurchaseOrderService{orders: orders, suppliers: suppliers, products: products, warehouses: warehouses}
}

// Create creates a draft purchase order numbered PO-YYYY-NNNNN
func (s *PurchaseOrderService) Create(ctx context.Context, tenantID, userID uuid.UUID, req CreatePurchaseOrderRequest) (*PurchaseOrderResponse, error) {
	if err := s.checkSupplier(ctx, tenantID, req.SupplierID); err != nil {
		return nil, err
	}
	if err := s.checkWarehouse(ctx, tenantID, req.WarehouseID); err != nil {
		return nil, err
	}
	lines, err := s.lineInputs(ctx, tenantID, req.Lines)
	if err != nil {
		return nil, err
	}

	var orderDate time.Time
	if req.OrderDate != nil {
		orderDate = *req.OrderDate
	}

	var order *purchasing.PurchaseOrder
	err = common.SaveNumbered(ctx,
		func(ctx context.Context) (string, error) { return s.orders.GenerateNumber(ctx, tenantID) },
		func(number string) error {
			if order == nil {
				o, err := purchasing.NewPurchaseOrder(tenantID, number, req.SupplierID, orderDate, lines)
				if err != nil {
					return err
				}
				if err := o.SetHeader(req.SupplierID, req.WarehouseID, o.OrderDate, req.ExpectedDate, req.Notes); err != nil {
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
	resp := ToPurchaseOrderResponse(order)
	return &resp, nil
}

// GetByID returns one purchase order with its lines
func (s *PurchaseOrderService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*PurchaseOrderResponse, error) {
	order, err := s.orders.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	resp := ToPurchaseOrderResponse(order)
	return &resp, nil
}

// Update changes the header and optionally replaces the lines. Lines of an
// order that already received goods cannot be replaced.
func (s *PurchaseOrderService) Update(ctx context.Context, tenantID, id uuid.UUID, req UpdatePurchaseOrderRequest) (*PurchaseOrderResponse, error) {
	order, err := s.orders.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	supplierID, warehouseID := order.SupplierID, order.WarehouseID
	orderDate, expectedDate, notes := order.OrderDate, order.ExpectedDate, order.Notes
	if req.SupplierID != nil {
		if err := s.checkSupplier(ctx, tenantID, *req.SupplierID); err != nil {
			return nil, err
		}
		supplierID = *req.SupplierID
	}
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
	if req.OrderDate != nil {
		orderDate = *req.OrderDate
	}
	if req.ExpectedDate != nil {
		expectedDate = req.ExpectedDate
	}
	if req.Notes != nil {
		notes = *req.Notes
	}
	if err := order.SetHeader(supplierID, warehouseID, orderDate, expectedDate, notes); err != nil {
		return nil, err
	}

	if len(req.Lines) > 0 {
		lines, err := s.lineInputs(ctx, tenantID, req.Lines)
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
	resp := ToPurchaseOrderResponse(order)
	return &resp, nil
}

// SetStatus assigns any known status
func (s *PurchaseOrderService) SetStatus(ctx context.Context, tenantID, id uuid.UUID, req SetStatusRequest) (*PurchaseOrderResponse, error) {
	order, err := s.orders.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := order.SetStatus(purchasing.PurchaseOrderStatus(req.Status)); err != nil {
		return nil, err
	}
	if err := s.orders.Save(ctx, order); err != nil {
		return nil, err
	}
	resp := ToPurchaseOrderResponse(order)
	return &resp, nil
}

// List returns a page of purchase orders
func (s *PurchaseOrderService) List(ctx context.Context, tenantID uuid.UUID, filter PurchaseOrderListFilter) ([]PurchaseOrderResponse, int64, error) {
	f := filter.Filter()
	if filter.Status != "" {
		f.Filters["status"] = filter.Status
	}
	if filter.SupplierID != nil {
		f.Filters["supplier_id"] = *filter.SupplierID
	}
	orders, err := s.orders.FindAllForTenant(ctx, tenantID, f)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.orders.CountForTenant(ctx, tenantID, f)
	if err != nil {
		return nil, 0, err
	}
	out := make([]PurchaseOrderResponse, len(orders))
	for i := range orders {
		out[i] = ToPurchaseOrderResponse(&orders[i])
	}
	return out, total, nil
}

func (s *PurchaseOrderService) checkSupplier(ctx context.Context, tenantID, supplierID uuid.UUID) error {
	if _, err := s.suppliers.FindByIDForTenant(ctx, tenantID, supplierID); err != nil {
		return reference(err, "supplier_id", supplierID)
	}
	return nil
}

func (s *PurchaseOrderService) checkWarehouse(ctx context.Context, tenantID uuid.UUID, warehouseID *uuid.UUID) error {
	if warehouseID == nil {
		return nil
	}
	if _, err := s.warehouses.FindByIDForTenant(ctx, tenantID, *warehouseID); err != nil {
		return reference(err, "warehouse_id", *warehouseID)
	}
	return nil
}

// lineInputs resolves the products of reqs and snapshots their sku and name
func (s *PurchaseOrderService) lineInputs(ctx context.Context, tenantID uuid.UUID, reqs []OrderLineRequest) ([]purchasing.LineInput, error) {
	products, err := productsByID(ctx, s.products, tenantID, productIDs(reqs))
	if err != nil {
		return nil, err
	}
	out := make([]purchasing.LineInput, len(reqs))
	for i, r := range reqs {
		p, ok := products[r.ProductID]
		if !ok {
			return nil, shared.Errorf(shared.ErrValidation, "lines[%d]: product_id %s does not exist", i, r.ProductID)
		}
		out[i] = purchasing.LineInput{
			ProductID:   p.ID,
			ProductCode: p.SKU,
			ProductName: p.Name,
			Quantity:    r.Quantity,
			UnitPrice:   r.UnitPrice,
			TaxRate:     r.TaxRate,
		}
	}
	return out, nil
}

func productIDs(reqs []OrderLineRequest) []uuid.UUID {
	ids := make([]uuid.UUID, len(reqs))
	for i, r := range reqs {
		ids[i] = r.ProductID
	}
	return ids
}

func productsByID(ctx context.Context, repo inventory.ProductRepository, tenantID uuid.UUID, ids []uuid.UUID) (map[uuid.UUID]*inventory.Product, error) {
	products, err := repo.FindByIDs(ctx, tenantID, ids)
	if err != nil {
		return nil, err
	}
	out := make(map[uuid.UUID]*inventory.Product, len(products))
	for i := range products {
		out[products[i].ID] = &products[i]
	}
	return out, nil
}
