package persistence

import (
	"context"

	apprecon "github.com/opticore/backend/internal/application/reconciliation"
	"github.com/opticore/backend/internal/domain/ledger"
	"github.com/opticore/backend/internal/domain/reconciliation"
	"gorm.io/gorm"
)

// GormTransactionScope implements the approval's TransactionScope using
// GORM transactions: the adjustment batch, the status flip and the
// snapshot replacement commit or roll back together.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos apprecon.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

// gormTransactionalRepositories provides repositories bound to one transaction
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

// InventoryRepo returns the inventory repository scoped to the current transaction
func (r *gormTransactionalRepositories) InventoryRepo() reconciliation.InventoryRepository {
	return NewGormInventoryRepository(r.tx)
}

// MovementRepo returns the stock movement repository scoped to the current transaction
func (r *gormTransactionalRepositories) MovementRepo() ledger.StockMovementRepository {
	return NewGormStockMovementRepository(r.tx)
}

// SnapshotRepo returns the stock snapshot repository scoped to the current transaction
func (r *gormTransactionalRepositories) SnapshotRepo() reconciliation.StockSnapshotRepository {
	return NewGormStockSnapshotRepository(r.tx)
}

var (
	_ apprecon.TransactionScope          = (*GormTransactionScope)(nil)
	_ apprecon.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
)
