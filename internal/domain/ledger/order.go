package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/opticore/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// OrderKey is the business identity of an order. Two orders may share an
// order number as long as their movement kinds differ (the same number is
// reused for a shipment and its later return note).
type OrderKey struct {
	OrderNumber  string
	MovementKind EntryKind
}

// String returns the key in "number/kind" form for error messages
func (k OrderKey) String() string {
	return fmt.Sprintf("%s/%s", k.OrderNumber, k.MovementKind)
}

// OrderItem represents a line item of an order
type OrderItem struct {
	ID            uuid.UUID
	OrderID       uuid.UUID
	AuxiliaryCode string
	Quantity      decimal.Decimal
	UnitValue     decimal.Decimal
	CreatedAt     time.Time
}

// TotalValue returns the line total
func (i *OrderItem) TotalValue() decimal.Decimal {
	return i.Quantity.Mul(i.UnitValue)
}

// Order represents a commercial document moving stock to or from a seller.
// Orders are created once, by import or by the return-note generator, and
// are immutable afterwards; corrections happen through new documents or
// stock movements, never edits.
type Order struct {
	shared.BaseAggregateRoot
	OrderNumber  string
	IssueDate    time.Time
	SellerCode   string
	MovementKind EntryKind
	TotalValue   decimal.Decimal
	Items        []OrderItem
}

// NewOrder creates a new order
func NewOrder(orderNumber, sellerCode string, movementKind EntryKind, issueDate time.Time) (*Order, error) {
	orderNumber = strings.TrimSpace(orderNumber)
	sellerCode = strings.TrimSpace(sellerCode)
	if orderNumber == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if sellerCode == "" {
		return nil, shared.NewDomainError("INVALID_SELLER_CODE", "Seller code cannot be empty")
	}
	if !movementKind.IsOrderKind() {
		return nil, shared.NewDomainError("INVALID_MOVEMENT_KIND",
			fmt.Sprintf("Movement kind %s is not valid for orders", movementKind))
	}

	return &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderNumber:       orderNumber,
		IssueDate:         issueDate,
		SellerCode:        sellerCode,
		MovementKind:      movementKind,
		TotalValue:        decimal.Zero,
		Items:             make([]OrderItem, 0),
	}, nil
}

// NewReturnOrder creates a return note order. The return-note generator in
// the host application uses this to register company or client returns with
// the same invariants as imported orders.
func NewReturnOrder(orderNumber, sellerCode string, kind EntryKind, issueDate time.Time) (*Order, error) {
	if kind != EntryKindClientReturn && kind != EntryKindCompanyReturn {
		return nil, shared.NewDomainError("INVALID_MOVEMENT_KIND",
			fmt.Sprintf("Return orders must be %s or %s, got %s", EntryKindClientReturn, EntryKindCompanyReturn, kind))
	}
	return NewOrder(orderNumber, sellerCode, kind, issueDate)
}

// AddItem adds a line item to the order
func (o *Order) AddItem(auxiliaryCode string, quantity, unitValue decimal.Decimal) error {
	auxiliaryCode = strings.TrimSpace(auxiliaryCode)
	if auxiliaryCode == "" {
		return shared.NewDomainError("INVALID_AUXILIARY_CODE", "Auxiliary code cannot be empty")
	}
	if quantity.IsNegative() || quantity.IsZero() {
		return shared.NewDomainError("INVALID_QUANTITY", "Item quantity must be positive")
	}
	if unitValue.IsNegative() {
		return shared.NewDomainError("INVALID_UNIT_VALUE", "Unit value cannot be negative")
	}

	item := OrderItem{
		ID:            uuid.New(),
		OrderID:       o.ID,
		AuxiliaryCode: auxiliaryCode,
		Quantity:      quantity,
		UnitValue:     unitValue,
		CreatedAt:     time.Now(),
	}
	o.Items = append(o.Items, item)
	o.TotalValue = o.TotalValue.Add(item.TotalValue())
	return nil
}

// Key returns the order's business identity used for duplicate detection
func (o *Order) Key() OrderKey {
	return OrderKey{OrderNumber: o.OrderNumber, MovementKind: o.MovementKind}
}

// SignedItemQuantity returns the signed stock contribution of one item,
// derived from the order's movement kind.
func (o *Order) SignedItemQuantity(item OrderItem) decimal.Decimal {
	return SignedQuantity(o.MovementKind, item.Quantity)
}
