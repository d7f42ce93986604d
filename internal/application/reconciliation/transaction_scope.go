package reconciliation

import (
	"context"

	"github.com/opticore/backend/internal/domain/ledger"
	"github.com/opticore/backend/internal/domain/reconciliation"
)

// TransactionScope provides transactional access to the repositories an
// approval touches. Everything executed inside Execute shares one database
// transaction: the adjustment batch, the status flip and the snapshot
// replacement commit or roll back as a unit.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the approval-side
// repositories within a transaction.
type TransactionalRepositories interface {
	// InventoryRepo returns the inventory repository scoped to the current transaction
	InventoryRepo() reconciliation.InventoryRepository
	// MovementRepo returns the stock movement repository scoped to the current transaction
	MovementRepo() ledger.StockMovementRepository
	// SnapshotRepo returns the stock snapshot repository scoped to the current transaction
	SnapshotRepo() reconciliation.StockSnapshotRepository
}

// NoOpTransactionScope runs the function without a real transaction.
// Useful in tests where the fakes are already atomic.
type NoOpTransactionScope struct {
	inventoryRepo reconciliation.InventoryRepository
	movementRepo  ledger.StockMovementRepository
	snapshotRepo  reconciliation.StockSnapshotRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories
func NewNoOpTransactionScope(
	inventoryRepo reconciliation.InventoryRepository,
	movementRepo ledger.StockMovementRepository,
	snapshotRepo reconciliation.StockSnapshotRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		inventoryRepo: inventoryRepo,
		movementRepo:  movementRepo,
		snapshotRepo:  snapshotRepo,
	}
}

// Execute runs the function without a transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// InventoryRepo returns the inventory repository
func (s *NoOpTransactionScope) InventoryRepo() reconciliation.InventoryRepository {
	return s.inventoryRepo
}

// MovementRepo returns the stock movement repository
func (s *NoOpTransactionScope) MovementRepo() ledger.StockMovementRepository {
	return s.movementRepo
}

// SnapshotRepo returns the stock snapshot repository
func (s *NoOpTransactionScope) SnapshotRepo() reconciliation.StockSnapshotRepository {
	return s.snapshotRepo
}

var (
	_ TransactionScope          = (*NoOpTransactionScope)(nil)
	_ TransactionalRepositories = (*NoOpTransactionScope)(nil)
)
