package ledger

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// OrderLine is the read model the aggregator folds: one order item joined
// to its parent order's movement kind.
type OrderLine struct {
	SellerCode    string
	AuxiliaryCode string
	MovementKind  EntryKind
	Quantity      decimal.Decimal
}

// SignedQuantity returns the line's contribution to theoretical stock
func (l OrderLine) SignedQuantity() decimal.Decimal {
	return SignedQuantity(l.MovementKind, l.Quantity)
}

// OrderRepository defines persistence operations for orders
type OrderRepository interface {
	// Insert persists the order row only; items are inserted separately so
	// the import commit can chunk them.
	Insert(ctx context.Context, order *Order) error
	// InsertItems persists line items for an already inserted order
	InsertItems(ctx context.Context, order *Order, items []OrderItem) error
	// FindExistingKeys returns the (order_number, movement_kind) pairs that
	// already exist for any of the given order numbers. Callers chunk the
	// number list to respect the store's row-fetch ceiling.
	FindExistingKeys(ctx context.Context, orderNumbers []string) ([]OrderKey, error)
	// ExistsByKey reports whether an order with the given business key exists
	ExistsByKey(ctx context.Context, key OrderKey) (bool, error)
	// ListLines streams order items joined to their order's movement kind
	// for one seller (or all sellers when sellerCode is empty), optionally
	// bounded by an issue-date cutoff.
	ListLines(ctx context.Context, sellerCode string, cutoff *time.Time) ([]OrderLine, error)
}

// StockMovementRepository defines persistence operations for stock movements
type StockMovementRepository interface {
	// Insert persists a single movement
	Insert(ctx context.Context, movement *StockMovement) error
	// InsertBatch persists movements in one chunked batch call
	InsertBatch(ctx context.Context, movements []*StockMovement) error
	// ListBySeller returns movements for one seller (or all sellers when
	// sellerCode is empty), optionally bounded by an occurred-at cutoff.
	ListBySeller(ctx context.Context, sellerCode string, cutoff *time.Time) ([]StockMovement, error)
}
