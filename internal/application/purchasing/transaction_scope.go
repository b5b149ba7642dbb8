// Package purchasing implements the supplier, purchase order and goods
// receipt use cases.
package purchasing

import (
	"context"

	appinv "github.com/erpsuite/backend/internal/application/inventory"
	"github.com/erpsuite/backend/internal/domain/inventory"
	"github.com/erpsuite/backend/internal/domain/purchasing"
)

// TransactionScope runs goods receipt completion as one unit of work
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories are the repositories completion touches, bound
// to the current transaction
type TransactionalRepositories interface {
	appinv.StockLedger
	PurchaseOrders() purchasing.PurchaseOrderRepository
	GoodsReceipts() purchasing.GoodsReceiptRepository
}

// NoOpTransactionScope runs fn directly against the given repositories
type NoOpTransactionScope struct {
	orders       purchasing.PurchaseOrderRepository
	receipts     purchasing.GoodsReceiptRepository
	stocks       inventory.StockRepository
	transactions inventory.TransactionRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope
func NewNoOpTransactionScope(
	orders purchasing.PurchaseOrderRepository,
	receipts purchasing.GoodsReceiptRepository,
	stocks inventory.StockRepository,
	transactions inventory.TransactionRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{orders: orders, receipts: receipts, stocks: stocks, transactions: transactions}
}

// Execute calls fn without opening a transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

func (s *NoOpTransactionScope) PurchaseOrders() purchasing.PurchaseOrderRepository { return s.orders }
func (s *NoOpTransactionScope) GoodsReceipts() purchasing.GoodsReceiptRepository   { return s.receipts }
func (s *NoOpTransactionScope) Stocks() inventory.StockRepository                 { return s.stocks }
func (s *NoOpTransactionScope) Transactions() inventory.TransactionRepository     { return s.transactions }

var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
