package purchasing

import (
	"context"
	"errors"
	"time"

	"github.com/erpsuite/backend/internal/application/common"
	appinv "github.com/erpsuite/backend/internal/application/inventory"
	"github.com/erpsuite/backend/internal/domain/inventory"
	"github.com/erpsuite/backend/internal/domain/purchasing"
	"github.com/erpsuite/backend/internal/domain/shared"
	"github.com/erpsuite/backend/internal/infrastructure/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// GoodsReceiptService records goods arriving against purchase orders and
// posts them to stock
type GoodsReceiptService struct {
	receipts   purchasing.GoodsReceiptRepository
	orders     purchasing.PurchaseOrderRepository
	warehouses inventory.WarehouseRepository
	scope      TransactionScope
	events     shared.EventPublisher
	logger     *zap.Logger
}

// NewGoodsReceiptService creates a new GoodsReceiptService
func NewGoodsReceiptService(
	receipts purchasing.GoodsReceiptRepository,
	orders purchasing.PurchaseOrderRepository,
	warehouses inventory.WarehouseRepository,
	scope TransactionScope,
	events shared.EventPublisher,
	log *zap.Logger,
) *GoodsReceiptService {
	if log == nil {
		log = zap.NewNop()
	}
	return &GoodsReceiptService{
		receipts:   receipts,
		orders:     orders,
		warehouses: warehouses,
		scope:      scope,
		events:     events,
		logger:     log,
	}
}

// Create records a pending receipt numbered GR-YYYY-NNNNN. Quantities must
// not exceed what is pending on each order line.
func (s *GoodsReceiptService) Create(ctx context.Context, tenantID, userID uuid.UUID, req CreateGoodsReceiptRequest) (*GoodsReceiptResponse, error) {
	order, err := s.orders.FindByIDForTenant(ctx, tenantID, req.PurchaseOrderID)
	if err != nil {
		return nil, reference(err, "purchase_order_id", req.PurchaseOrderID)
	}

	warehouseID := req.WarehouseID
	if warehouseID == nil || *warehouseID == uuid.Nil {
		warehouseID = order.WarehouseID
	}
	if warehouseID == nil {
		return nil, shared.Errorf(shared.ErrValidation, "warehouse_id is required when the order has no warehouse")
	}
	if _, err := s.warehouses.FindByIDForTenant(ctx, tenantID, *warehouseID); err != nil {
		return nil, reference(err, "warehouse_id", *warehouseID)
	}

	var receiptDate time.Time
	if req.ReceiptDate != nil {
		receiptDate = *req.ReceiptDate
	}
	inputs := make([]purchasing.ReceiptLineInput, len(req.Lines))
	for i, l := range req.Lines {
		inputs[i] = purchasing.ReceiptLineInput{PurchaseOrderLineID: l.PurchaseOrderLineID, Quantity: l.Quantity}
	}

	var receipt *purchasing.GoodsReceipt
	err = common.SaveNumbered(ctx,
		func(ctx context.Context) (string, error) { return s.receipts.GenerateNumber(ctx, tenantID) },
		func(number string) error {
			if receipt == nil {
				r, err := purchasing.NewGoodsReceipt(tenantID, number, order, *warehouseID, receiptDate, inputs)
				if err != nil {
					return err
				}
				r.SetNotes(req.Notes)
				r.SetCreatedBy(userID)
				receipt = r
			}
			receipt.Number = number
			return s.receipts.Save(ctx, receipt)
		})
	if err != nil {
		return nil, err
	}
	resp := ToGoodsReceiptResponse(receipt)
	return &resp, nil
}

// GetByID returns one goods receipt with its lines
func (s *GoodsReceiptService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*GoodsReceiptResponse, error) {
	receipt, err := s.receipts.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	resp := ToGoodsReceiptResponse(receipt)
	return &resp, nil
}

// List returns a page of goods receipts
func (s *GoodsReceiptService) List(ctx context.Context, tenantID uuid.UUID, filter GoodsReceiptListFilter) ([]GoodsReceiptResponse, int64, error) {
	f := filter.Filter()
	if filter.PurchaseOrderID != nil {
		f.Filters["purchase_order_id"] = *filter.PurchaseOrderID
	}
	if filter.Status != "" {
		f.Filters["status"] = filter.Status
	}
	receipts, err := s.receipts.FindAllForTenant(ctx, tenantID, f)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.receipts.CountForTenant(ctx, tenantID, f)
	if err != nil {
		return nil, 0, err
	}
	out := make([]GoodsReceiptResponse, len(receipts))
	for i := range receipts {
		out[i] = ToGoodsReceiptResponse(&receipts[i])
	}
	return out, total, nil
}

// Complete posts a pending receipt in one transaction: the receipt is
// marked completed, received quantities are added to the order lines, the
// order status is refreshed and one IN movement per receipt line is
// applied to stock. A completed receipt cannot be completed again.
func (s *GoodsReceiptService) Complete(ctx context.Context, tenantID, userID, id uuid.UUID) (*GoodsReceiptResponse, error) {
	var (
		receipt *purchasing.GoodsReceipt
		err     error
	)
	for attempt := 1; ; attempt++ {
		receipt, err = s.complete(ctx, tenantID, userID, id)
		if err == nil || !errors.Is(err, shared.ErrAlreadyExists) || attempt >= appinv.PostAttempts {
			break
		}
	}
	if err != nil {
		return nil, err
	}

	logger.FromContextOr(ctx, s.logger).Info("goods receipt completed",
		zap.String("receipt_id", receipt.ID.String()),
		zap.String("receipt_number", receipt.Number),
		zap.String("purchase_order_id", receipt.PurchaseOrderID.String()),
		zap.Int("lines", len(receipt.Lines)))

	events := receipt.GetDomainEvents()
	receipt.ClearDomainEvents()
	if s.events != nil && len(events) > 0 {
		if err := s.events.Publish(ctx, events...); err != nil {
			logger.FromContextOr(ctx, s.logger).Error("failed to publish domain events", zap.Error(err))
		}
	}

	resp := ToGoodsReceiptResponse(receipt)
	return &resp, nil
}

// complete runs one completion attempt in a single transaction. The receipt
// row is locked first and then its order, so concurrent completions of one
// receipt serialize and the later one sees the completed status.
func (s *GoodsReceiptService) complete(ctx context.Context, tenantID, userID, id uuid.UUID) (*purchasing.GoodsReceipt, error) {
	var receipt *purchasing.GoodsReceipt
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		receipt, err = repos.GoodsReceipts().FindByIDForUpdate(ctx, tenantID, id)
		if err != nil {
			return err
		}
		order, err := repos.PurchaseOrders().FindByIDForUpdate(ctx, tenantID, receipt.PurchaseOrderID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.Errorf(shared.ErrInvalidState, "purchase order of receipt %s no longer exists", receipt.Number)
			}
			return err
		}

		if err := receipt.Complete(order); err != nil {
			return err
		}
		if err := repos.PurchaseOrders().Save(ctx, order); err != nil {
			return err
		}
		if err := repos.GoodsReceipts().Save(ctx, receipt); err != nil {
			return err
		}

		for _, line := range receipt.Lines {
			txn, err := inventory.NewInventoryTransaction(tenantID, line.ProductID, receipt.WarehouseID, nil,
				inventory.TransactionTypeIn, line.Quantity, receipt.Number)
			if err != nil {
				return err
			}
			txn.Notes = "goods receipt " + receipt.Number + " for " + order.Number
			txn.SetCreatedBy(userID)
			if _, err := appinv.Post(ctx, repos, txn); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return receipt, nil
}
