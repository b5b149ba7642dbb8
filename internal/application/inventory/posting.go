package inventory

import (
	"context"
	"errors"

	"github.com/erpsuite/backend/internal/domain/inventory"
	"github.com/erpsuite/backend/internal/domain/shared"
)

// Post applies txn to the stock row of its (product, warehouse, location)
// key and appends txn to the movement ledger. An IN opens the row when it
// does not exist yet; an OUT against a missing row is insufficient stock.
// Post must run inside a TransactionScope so the row lock taken by
// FindByKey covers both writes.
func Post(ctx context.Context, ledger StockLedger, txn *inventory.InventoryTransaction) (*inventory.Stock, error) {
	stock, err := ledger.Stocks().FindByKey(ctx, txn.TenantID, txn.ProductID, txn.WarehouseID, txn.LocationID)
	switch {
	case err == nil:
	case errors.Is(err, shared.ErrNotFound) && txn.Type == inventory.TransactionTypeIn:
		stock, err = inventory.NewStock(txn.TenantID, txn.ProductID, txn.WarehouseID, txn.LocationID)
		if err != nil {
			return nil, err
		}
	case errors.Is(err, shared.ErrNotFound):
		return nil, shared.Errorf(shared.ErrInsufficientStock,
			"insufficient stock: available 0, requested %s", txn.Quantity.String())
	default:
		return nil, err
	}

	if err := txn.ApplyTo(stock); err != nil {
		return nil, err
	}
	if err := ledger.Stocks().Save(ctx, stock); err != nil {
		return nil, err
	}
	if err := ledger.Transactions().Create(ctx, txn); err != nil {
		return nil, err
	}
	return stock, nil
}
