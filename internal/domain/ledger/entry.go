package ledger

import (
	"github.com/shopspring/decimal"
)

// EntryKind identifies the commercial event behind a ledger entry. Order
// line items and ad-hoc stock movements both project into this one kind set
// so the quantity sign convention lives in exactly one place.
type EntryKind string

const (
	// EntryKindShipment is stock shipped to a seller (entry)
	EntryKindShipment EntryKind = "SHIPMENT"
	// EntryKindSale is stock sold by a seller (exit)
	EntryKindSale EntryKind = "SALE"
	// EntryKindClientReturn is stock returned by an end client to the seller (entry)
	EntryKindClientReturn EntryKind = "CLIENT_RETURN"
	// EntryKindCompanyReturn is stock returned by the seller to the company (exit)
	EntryKindCompanyReturn EntryKind = "COMPANY_RETURN"
	// EntryKindLoss is stock lost or damaged at the seller (exit)
	EntryKindLoss EntryKind = "LOSS"
	// EntryKindAdjustment is a manual correction; the quantity carries its own sign
	EntryKindAdjustment EntryKind = "ADJUSTMENT"
)

// String returns the string representation of EntryKind
func (k EntryKind) String() string {
	return string(k)
}

// IsValid returns true if the entry kind is valid
func (k EntryKind) IsValid() bool {
	switch k {
	case EntryKindShipment, EntryKindSale, EntryKindClientReturn,
		EntryKindCompanyReturn, EntryKindLoss, EntryKindAdjustment:
		return true
	}
	return false
}

// IsOrderKind returns true if the kind may appear as an order's movement kind
func (k EntryKind) IsOrderKind() bool {
	switch k {
	case EntryKindShipment, EntryKindSale, EntryKindClientReturn, EntryKindCompanyReturn:
		return true
	}
	return false
}

// IsMovementKind returns true if the kind may appear on an ad-hoc stock movement
func (k EntryKind) IsMovementKind() bool {
	switch k {
	case EntryKindClientReturn, EntryKindCompanyReturn, EntryKindLoss, EntryKindAdjustment:
		return true
	}
	return false
}

// Sign returns the fixed direction of the kind: +1 for entries, -1 for
// exits, 0 for ADJUSTMENT whose quantity carries an explicit sign.
func (k EntryKind) Sign() int {
	switch k {
	case EntryKindShipment, EntryKindClientReturn:
		return 1
	case EntryKindSale, EntryKindCompanyReturn, EntryKindLoss:
		return -1
	}
	return 0
}

// SignedQuantity maps a kind and a raw quantity to the signed contribution
// the entry makes to theoretical stock. Fixed-sign kinds use the quantity's
// magnitude with the kind's direction; ADJUSTMENT passes the caller's sign
// through untouched.
func SignedQuantity(kind EntryKind, quantity decimal.Decimal) decimal.Decimal {
	switch kind.Sign() {
	case 1:
		return quantity.Abs()
	case -1:
		return quantity.Abs().Neg()
	}
	return quantity
}
