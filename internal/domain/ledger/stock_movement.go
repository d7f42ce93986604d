package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/opticore/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// MotiveInventoryApproval is the fixed motive recorded on adjustment
// movements synthesized when an inventory is approved.
const MotiveInventoryApproval = "Ajuste automático de aprovação de inventário"

// StockMovement is an ad-hoc ledger entry outside the order flow: client
// returns, company returns, losses and manual adjustments. Once created a
// movement is immutable; corrections are new offsetting entries, never edits.
type StockMovement struct {
	shared.BaseEntity
	SellerCode    string
	AuxiliaryCode string
	Kind          EntryKind
	// Quantity is stored signed; the sign encodes direction. Fixed-sign
	// kinds always carry the kind's direction, ADJUSTMENT carries the
	// caller's sign.
	Quantity        decimal.Decimal
	Motive          string
	OriginReference *uuid.UUID
	OccurredAt      time.Time
}

// NewStockMovement creates a movement for a fixed-sign kind. The caller
// passes the magnitude; the kind determines the stored sign.
func NewStockMovement(sellerCode, auxiliaryCode string, kind EntryKind, quantity decimal.Decimal, motive string) (*StockMovement, error) {
	sellerCode = strings.TrimSpace(sellerCode)
	auxiliaryCode = strings.TrimSpace(auxiliaryCode)
	if sellerCode == "" {
		return nil, shared.NewDomainError("INVALID_SELLER_CODE", "Seller code cannot be empty")
	}
	if auxiliaryCode == "" {
		return nil, shared.NewDomainError("INVALID_AUXILIARY_CODE", "Auxiliary code cannot be empty")
	}
	if !kind.IsMovementKind() {
		return nil, shared.NewDomainError("INVALID_MOVEMENT_KIND",
			fmt.Sprintf("Kind %s is not valid for stock movements", kind))
	}
	if kind == EntryKindAdjustment {
		return nil, shared.NewDomainError("INVALID_MOVEMENT_KIND",
			"Adjustments must be created with NewAdjustmentMovement")
	}
	if quantity.IsZero() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Movement quantity cannot be zero")
	}
	// A signed quantity handed in for a fixed-sign kind must not contradict
	// the kind's direction.
	if quantity.Sign() == -kind.Sign() {
		return nil, shared.NewDomainError("INVALID_QUANTITY",
			fmt.Sprintf("Quantity sign contradicts movement kind %s", kind))
	}

	return &StockMovement{
		BaseEntity:    shared.NewBaseEntity(),
		SellerCode:    sellerCode,
		AuxiliaryCode: auxiliaryCode,
		Kind:          kind,
		Quantity:      SignedQuantity(kind, quantity),
		Motive:        strings.TrimSpace(motive),
		OccurredAt:    time.Now(),
	}, nil
}

// NewAdjustmentMovement creates a manual adjustment. The quantity is taken
// as-is, sign included; a positive divergence becomes a positive adjustment.
func NewAdjustmentMovement(sellerCode, auxiliaryCode string, quantity decimal.Decimal, motive string, originReference *uuid.UUID) (*StockMovement, error) {
	sellerCode = strings.TrimSpace(sellerCode)
	auxiliaryCode = strings.TrimSpace(auxiliaryCode)
	if sellerCode == "" {
		return nil, shared.NewDomainError("INVALID_SELLER_CODE", "Seller code cannot be empty")
	}
	if auxiliaryCode == "" {
		return nil, shared.NewDomainError("INVALID_AUXILIARY_CODE", "Auxiliary code cannot be empty")
	}
	if quantity.IsZero() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Adjustment quantity cannot be zero")
	}

	return &StockMovement{
		BaseEntity:      shared.NewBaseEntity(),
		SellerCode:      sellerCode,
		AuxiliaryCode:   auxiliaryCode,
		Kind:            EntryKindAdjustment,
		Quantity:        quantity,
		Motive:          strings.TrimSpace(motive),
		OriginReference: originReference,
		OccurredAt:      time.Now(),
	}, nil
}

// SignedQuantity returns the movement's contribution to theoretical stock
func (m *StockMovement) SignedQuantity() decimal.Decimal {
	return m.Quantity
}

// IsEntry returns true if the movement increases theoretical stock
func (m *StockMovement) IsEntry() bool {
	return m.Quantity.Sign() > 0
}
