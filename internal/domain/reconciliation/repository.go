package reconciliation

import (
	"context"

	"github.com/google/uuid"
)

// InventoryRepository defines persistence operations for inventory submissions
type InventoryRepository interface {
	// FindByID loads an inventory with its counted items
	FindByID(ctx context.Context, id uuid.UUID) (*Inventory, error)
	// Save creates or updates an inventory with its items
	Save(ctx context.Context, inv *Inventory) error
	// UpdateStatusGuarded performs a conditional status update: the row is
	// updated only if its current status is one of the allowed set. It
	// returns false when zero rows were affected, which is the signal that
	// a concurrent caller won the transition (or the state was stale).
	UpdateStatusGuarded(ctx context.Context, id uuid.UUID, allowed []InventoryStatus, target InventoryStatus, managerNotes string, approvedBy string) (bool, error)
}

// StockSnapshotRepository defines persistence operations for the real-stock table
type StockSnapshotRepository interface {
	// ReplaceForSeller deletes every snapshot row of the seller and inserts
	// the given rows, all within the ambient transaction.
	ReplaceForSeller(ctx context.Context, sellerCode string, rows []StockSnapshot) error
	// ListBySeller returns the seller's current snapshot rows
	ListBySeller(ctx context.Context, sellerCode string) ([]StockSnapshot, error)
}
