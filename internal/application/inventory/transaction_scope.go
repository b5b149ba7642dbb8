package inventory

import (
	"context"

	"github.com/erpsuite/backend/internal/domain/inventory"
)

// TransactionScope runs a unit of work whose repository calls share one
// database transaction. An error returned by fn rolls the transaction back.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// StockLedger is the pair of repositories a stock movement touches
type StockLedger interface {
	Stocks() inventory.StockRepository
	Transactions() inventory.TransactionRepository
}

// TransactionalRepositories are the inventory repositories bound to the
// current transaction
type TransactionalRepositories interface {
	StockLedger
	Products() inventory.ProductRepository
}

// NoOpTransactionScope runs fn directly against the given repositories.
// Tests use it where atomicity is not under test.
type NoOpTransactionScope struct {
	products     inventory.ProductRepository
	stocks       inventory.StockRepository
	transactions inventory.TransactionRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope
func NewNoOpTransactionScope(
	products inventory.ProductRepository,
	stocks inventory.StockRepository,
	transactions inventory.TransactionRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{products: products, stocks: stocks, transactions: transactions}
}

// Execute calls fn without opening a transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

func (s *NoOpTransactionScope) Products() inventory.ProductRepository         { return s.products }
func (s *NoOpTransactionScope) Stocks() inventory.StockRepository             { return s.stocks }
func (s *NoOpTransactionScope) Transactions() inventory.TransactionRepository { return s.transactions }

var (
	_ TransactionScope          = (*NoOpTransactionScope)(nil)
	_ TransactionalRepositories = (*NoOpTransactionScope)(nil)
)
