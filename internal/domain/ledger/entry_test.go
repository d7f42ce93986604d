package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestEntryKind_Sign(t *testing.T) {
	tests := []struct {
		kind EntryKind
		sign int
	}{
		{EntryKindShipment, 1},
		{EntryKindClientReturn, 1},
		{EntryKindSale, -1},
		{EntryKindCompanyReturn, -1},
		{EntryKindLoss, -1},
		{EntryKindAdjustment, 0},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			assert.Equal(t, tt.sign, tt.kind.Sign())
		})
	}
}

func TestSignedQuantity(t *testing.T) {
	ten := decimal.NewFromInt(10)

	t.Run("entry kinds yield positive contribution", func(t *testing.T) {
		assert.True(t, SignedQuantity(EntryKindShipment, ten).Equal(ten))
		assert.True(t, SignedQuantity(EntryKindClientReturn, ten.Neg()).Equal(ten))
	})

	t.Run("exit kinds yield negative contribution", func(t *testing.T) {
		assert.True(t, SignedQuantity(EntryKindSale, ten).Equal(ten.Neg()))
		assert.True(t, SignedQuantity(EntryKindLoss, ten).Equal(ten.Neg()))
		assert.True(t, SignedQuantity(EntryKindCompanyReturn, ten.Neg()).Equal(ten.Neg()))
	})

	t.Run("adjustment keeps the caller's sign", func(t *testing.T) {
		assert.True(t, SignedQuantity(EntryKindAdjustment, ten).Equal(ten))
		assert.True(t, SignedQuantity(EntryKindAdjustment, ten.Neg()).Equal(ten.Neg()))
	})
}

func TestEntryKind_Subsets(t *testing.T) {
	t.Run("order kinds", func(t *testing.T) {
		assert.True(t, EntryKindShipment.IsOrderKind())
		assert.True(t, EntryKindSale.IsOrderKind())
		assert.True(t, EntryKindClientReturn.IsOrderKind())
		assert.True(t, EntryKindCompanyReturn.IsOrderKind())
		assert.False(t, EntryKindLoss.IsOrderKind())
		assert.False(t, EntryKindAdjustment.IsOrderKind())
	})

	t.Run("movement kinds", func(t *testing.T) {
		assert.True(t, EntryKindClientReturn.IsMovementKind())
		assert.True(t, EntryKindCompanyReturn.IsMovementKind())
		assert.True(t, EntryKindLoss.IsMovementKind())
		assert.True(t, EntryKindAdjustment.IsMovementKind())
		assert.False(t, EntryKindShipment.IsMovementKind())
		assert.False(t, EntryKindSale.IsMovementKind())
	})

	t.Run("unknown kind is invalid with zero sign", func(t *testing.T) {
		k := EntryKind("TRANSFER")
		assert.False(t, k.IsValid())
		assert.Equal(t, 0, k.Sign())
	})
}
