package stock

import (
	"time"

	"github.com/shopspring/decimal"
)

// AggregateOptions controls one aggregation run
type AggregateOptions struct {
	// Cutoff bounds the scan to events at or before this instant. Nil means
	// the whole ledger.
	Cutoff *time.Time
	// IncludeZero keeps products whose theoretical stock nets to zero with
	// no movement history. The dashboard leaves it false to hide non-moving
	// codes; the approval path must set it true, because a zero theoretical
	// against a nonzero physical count is itself a divergence.
	IncludeZero bool
}

// ProductTotals is one product's aggregated ledger position for a seller
type ProductTotals struct {
	AuxiliaryCode  string          `json:"auxiliary_code"`
	ShippedQty     decimal.Decimal `json:"shipped_qty"`
	SoldQty        decimal.Decimal `json:"sold_qty"`
	MovementQty    decimal.Decimal `json:"movement_qty"`
	TheoreticalQty decimal.Decimal `json:"theoretical_qty"`
}
