package persistence

import (
	"context"

	appinv "github.com/erpsuite/backend/internal/application/inventory"
	apppur "github.com/erpsuite/backend/internal/application/purchasing"
	"github.com/erpsuite/backend/internal/domain/inventory"
	"github.com/erpsuite/backend/internal/domain/purchasing"
	"gorm.io/gorm"
)

// GormInventoryScope runs stock postings inside one GORM transaction
type GormInventoryScope struct {
	db *gorm.DB
}

// NewGormInventoryScope creates a new GormInventoryScope
func NewGormInventoryScope(db *gorm.DB) *GormInventoryScope {
	return &GormInventoryScope{db: db}
}

// Execute runs fn within a database transaction. If fn returns an error,
// the transaction is rolled back.
func (s *GormInventoryScope) Execute(ctx context.Context, fn func(repos appinv.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

// GormPurchasingScope runs goods receipt completion inside one GORM
// transaction
type GormPurchasingScope struct {
	db *gorm.DB
}

// NewGormPurchasingScope creates a new GormPurchasingScope
func NewGormPurchasingScope(db *gorm.DB) *GormPurchasingScope {
	return &GormPurchasingScope{db: db}
}

// Execute runs fn within a database transaction
func (s *GormPurchasingScope) Execute(ctx context.Context, fn func(repos apppur.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

// gormTransactionalRepositories hands out repositories bound to tx
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

func (r *gormTransactionalRepositories) Products() inventory.ProductRepository {
	return NewGormProductRepository(r.tx)
}

func (r *gormTransactionalRepositories) Stocks() inventory.StockRepository {
	return NewGormStockRepository(r.tx)
}

func (r *gormTransactionalRepositories) Transactions() inventory.TransactionRepository {
	return NewGormInventoryTransactionRepository(r.tx)
}

func (r *gormTransactionalRepositories) PurchaseOrders() purchasing.PurchaseOrderRepository {
	return NewGormPurchaseOrderRepository(r.tx)
}

func (r *gormTransactionalRepositories) GoodsReceipts() purchasing.GoodsReceiptRepository {
	return NewGormGoodsReceiptRepository(r.tx)
}

var (
	_ appinv.TransactionScope          = (*GormInventoryScope)(nil)
	_ apppur.TransactionScope          = (*GormPurchasingScope)(nil)
	_ appinv.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
	_ apppur.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
)
