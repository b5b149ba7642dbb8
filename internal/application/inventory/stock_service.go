package inventory

import (
	"context"
	"errors"
	"strings"

	"github.com/erpsuite/backend/internal/domain/inventory"
	"github.com/erpsuite/backend/internal/domain/shared"
	"github.com/erpsuite/backend/internal/infrastructure/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PostAttempts bounds retries when two first movements race to open the
// same stock row
const PostAttempts = 2

// StockService manages stock rows and the movements posted against them
type StockService struct {
	products     inventory.ProductRepository
	warehouses   inventory.WarehouseRepository
	locations    inventory.LocationRepository
	stocks       inventory.StockRepository
	transactions inventory.TransactionRepository
	scope        TransactionScope
	events       shared.EventPublisher
	logger       *zap.Logger
}

// StockServiceDeps groups the collaborators of StockService
type StockServiceDeps struct {
	Products     inventory.ProductRepository
	Warehouses   inventory.WarehouseRepository
	Locations    inventory.LocationRepository
	Stocks       inventory.StockRepository
	Transactions inventory.TransactionRepository
	Scope        TransactionScope
	Events       shared.EventPublisher
	Logger       *zap.Logger
}

// NewStockService creates a new StockService
func NewStockService(deps StockServiceDeps) *StockService {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &StockService{
		products:     deps.Products,
		warehouses:   deps.Warehouses,
		locations:    deps.Locations,
		stocks:       deps.Stocks,
		transactions: deps.Transactions,
		scope:        deps.Scope,
		events:       deps.Events,
		logger:       log,
	}
}

// CreateStock opens the stock row of a (product, warehouse, location) key
func (s *StockService) CreateStock(ctx context.Context, tenantID, userID uuid.UUID, req CreateStockRequest) (*StockResponse, error) {
	product, err := s.checkKey(ctx, tenantID, req.ProductID, req.WarehouseID, req.LocationID)
	if err != nil {
		return nil, err
	}
	_, err = s.stocks.FindByKey(ctx, tenantID, req.ProductID, req.WarehouseID, req.LocationID)
	if err == nil {
		return nil, shared.Errorf(shared.ErrAlreadyExists, "stock row already exists for this product and location")
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	stock, err := inventory.NewStock(tenantID, req.ProductID, req.WarehouseID, req.LocationID)
	if err != nil {
		return nil, err
	}
	if err := stock.SetQuantities(req.Quantity, zeroIfNil(req.ReservedQuantity)); err != nil {
		return nil, err
	}
	stock.SetCreatedBy(userID)
	if err := s.stocks.Save(ctx, stock); err != nil {
		return nil, err
	}
	resp := ToStockResponse(stock, product)
	return &resp, nil
}

// GetStock returns one stock row with its derived quantities
func (s *StockService) GetStock(ctx context.Context, tenantID, id uuid.UUID) (*StockResponse, error) {
	stock, err := s.stocks.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	product, err := s.products.FindByIDForTenant(ctx, tenantID, stock.ProductID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	resp := ToStockResponse(stock, product)
	return &resp, nil
}

// UpdateStock overwrites the on-hand and reserved quantities, as after a
// physical count
func (s *StockService) UpdateStock(ctx context.Context, tenantID, id uuid.UUID, req UpdateStockRequest) (*StockResponse, error) {
	stock, err := s.stocks.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	qty, reserved := stock.Quantity, stock.ReservedQuantity
	if req.Quantity != nil {
		qty = *req.Quantity
	}
	if req.ReservedQuantity != nil {
		reserved = *req.ReservedQuantity
	}
	if err := stock.SetQuantities(qty, reserved); err != nil {
		return nil, err
	}
	if err := s.stocks.Save(ctx, stock); err != nil {
		return nil, err
	}
	product, err := s.products.FindByIDForTenant(ctx, tenantID, stock.ProductID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	resp := ToStockResponse(stock, product)
	return &resp, nil
}

// ListStocks returns a page of stock rows. low_stock=true keeps rows at or
// below their product's minimum stock.
func (s *StockService) ListStocks(ctx context.Context, tenantID uuid.UUID, filter StockListFilter) ([]StockResponse, int64, error) {
	f := filter.Filter()
	if filter.ProductID != nil {
		f.Filters["product_id"] = *filter.ProductID
	}
	if filter.WarehouseID != nil {
		f.Filters["warehouse_id"] = *filter.WarehouseID
	}
	if filter.LocationID != nil {
		f.Filters["location_id"] = *filter.LocationID
	}
	if filter.LowStock != nil {
		f.Filters["low_stock"] = *filter.LowStock
	}

	stocks, err := s.stocks.FindAllForTenant(ctx, tenantID, f)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.stocks.CountForTenant(ctx, tenantID, f)
	if err != nil {
		return nil, 0, err
	}

	ids := make([]uuid.UUID, 0, len(stocks))
	for i := range stocks {
		ids = append(ids, stocks[i].ProductID)
	}
	products, err := s.products.FindByIDs(ctx, tenantID, ids)
	if err != nil {
		return nil, 0, err
	}
	byID := make(map[uuid.UUID]*inventory.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	out := make([]StockResponse, len(stocks))
	for i := range stocks {
		out[i] = ToStockResponse(&stocks[i], byID[stocks[i].ProductID])
	}
	return out, total, nil
}

// CreateTransaction records a movement and applies it to the matching
// stock row atomically. An OUT that leaves the row at or below the
// product's minimum stock publishes StockBelowThreshold after commit.
func (s *StockService) CreateTransaction(ctx context.Context, tenantID, userID uuid.UUID, req CreateTransactionRequest) (*TransactionResponse, error) {
	product, err := s.checkKey(ctx, tenantID, req.ProductID, req.WarehouseID, req.LocationID)
	if err != nil {
		return nil, err
	}
	txType := inventory.TransactionType(strings.ToUpper(req.Type))

	var (
		txn   *inventory.InventoryTransaction
		stock *inventory.Stock
	)
	for attempt := 1; ; attempt++ {
		txn, err = inventory.NewInventoryTransaction(tenantID, req.ProductID, req.WarehouseID, req.LocationID, txType, req.Quantity, req.Reference)
		if err != nil {
			return nil, err
		}
		txn.Notes = strings.TrimSpace(req.Notes)
		txn.SetCreatedBy(userID)

		err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
			var postErr error
			stock, postErr = Post(ctx, repos, txn)
			return postErr
		})
		if err == nil || !errors.Is(err, shared.ErrAlreadyExists) || attempt >= PostAttempts {
			break
		}
	}
	if err != nil {
		return nil, err
	}

	log := logger.FromContextOr(ctx, s.logger)
	log.Info("inventory transaction posted",
		zap.String("transaction_id", txn.ID.String()),
		zap.String("type", string(txn.Type)),
		zap.String("product_id", txn.ProductID.String()),
		zap.String("quantity", txn.Quantity.String()),
		zap.String("stock_quantity", stock.Quantity.String()))

	if txn.Type == inventory.TransactionTypeOut && stock.IsLowStock(product.MinStock) {
		s.publish(ctx, inventory.NewStockBelowThresholdEvent(stock, product))
	}

	resp := ToTransactionResponse(txn)
	return &resp, nil
}

// GetTransaction returns one movement
func (s *StockService) GetTransaction(ctx context.Context, tenantID, id uuid.UUID) (*TransactionResponse, error) {
	txn, err := s.transactions.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	resp := ToTransactionResponse(txn)
	return &resp, nil
}

// ListTransactions returns a page of movements, newest first by default
func (s *StockService) ListTransactions(ctx context.Context, tenantID uuid.UUID, filter TransactionListFilter) ([]TransactionResponse, int64, error) {
	f := filter.Filter()
	if filter.ProductID != nil {
		f.Filters["product_id"] = *filter.ProductID
	}
	if filter.WarehouseID != nil {
		f.Filters["warehouse_id"] = *filter.WarehouseID
	}
	if filter.Type != "" {
		f.Filters["type"] = filter.Type
	}
	if filter.Reference != "" {
		f.Filters["reference"] = filter.Reference
	}

	txns, err := s.transactions.FindAllForTenant(ctx, tenantID, f)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.transactions.CountForTenant(ctx, tenantID, f)
	if err != nil {
		return nil, 0, err
	}
	out := make([]TransactionResponse, len(txns))
	for i := range txns {
		out[i] = ToTransactionResponse(&txns[i])
	}
	return out, total, nil
}

// checkKey verifies product, warehouse and location of a stock key and
// returns the product
func (s *StockService) checkKey(ctx context.Context, tenantID, productID, warehouseID uuid.UUID, locationID *uuid.UUID) (*inventory.Product, error) {
	product, err := s.products.FindByIDForTenant(ctx, tenantID, productID)
	if err != nil {
		return nil, reference(err, "product_id", productID)
	}
	if _, err := s.warehouses.FindByIDForTenant(ctx, tenantID, warehouseID); err != nil {
		return nil, reference(err, "warehouse_id", warehouseID)
	}
	if locationID != nil {
		location, err := s.locations.FindByIDForTenant(ctx, tenantID, *locationID)
		if err != nil {
			return nil, reference(err, "location_id", *locationID)
		}
		if location.WarehouseID != warehouseID {
			return nil, shared.Errorf(shared.ErrValidation, "location %s does not belong to warehouse %s", location.Code, warehouseID)
		}
	}
	return product, nil
}

func (s *StockService) publish(ctx context.Context, events ...shared.DomainEvent) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, events...); err != nil {
		logger.FromContextOr(ctx, s.logger).Error("failed to publish domain events", zap.Error(err))
	}
}
