package reconciliation

import (
	"time"

	"github.com/google/uuid"
	"github.com/opticore/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// StockSnapshot is one row of the seller's "real stock" table: the last
// approved physical count for one product. The table holds the last known
// truth only; each approval fully replaces the seller's rows. History is
// derived externally by grouping on AsOfDate.
type StockSnapshot struct {
	shared.BaseEntity
	SellerCode    string
	AuxiliaryCode string
	RealQuantity  decimal.Decimal
	AsOfDate      time.Time
	InventoryID   uuid.UUID
}

// NewStockSnapshot creates a snapshot row from an approved counted item
func NewStockSnapshot(sellerCode, auxiliaryCode string, realQuantity decimal.Decimal, asOfDate time.Time, inventoryID uuid.UUID) *StockSnapshot {
	return &StockSnapshot{
		BaseEntity:    shared.NewBaseEntity(),
		SellerCode:    sellerCode,
		AuxiliaryCode: auxiliaryCode,
		RealQuantity:  realQuantity,
		AsOfDate:      asOfDate,
		InventoryID:   inventoryID,
	}
}
