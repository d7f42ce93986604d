package stock

import (
	"context"
	"errors"
	"testing"

	"github.com/opticore/backend/internal/domain/ledger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMovementService_RecordMovement(t *testing.T) {
	t.Run("stores a fixed-sign kind with the kind's direction", func(t *testing.T) {
		movementRepo := new(MockStockMovementRepository)
		service := NewMovementService(movementRepo, zap.NewNop())

		movementRepo.On("Insert", mock.Anything, mock.MatchedBy(func(m *ledger.StockMovement) bool {
			return m.Kind == ledger.EntryKindLoss && m.Quantity.Equal(decimal.NewFromInt(-2))
		})).Return(nil)

		movement, err := service.RecordMovement(context.Background(), RecordMovementInput{
			SellerCode:    "11",
			AuxiliaryCode: "OB1215 Q01",
			Kind:          ledger.EntryKindLoss,
			Quantity:      decimal.NewFromInt(2),
			Motive:        "Quebra em transporte",
		})

		require.NoError(t, err)
		assert.True(t, movement.Quantity.Equal(decimal.NewFromInt(-2)))
		movementRepo.AssertExpectations(t)
	})

	t.Run("keeps the caller's sign on an adjustment", func(t *testing.T) {
		movementRepo := new(MockStockMovementRepository)
		service := NewMovementService(movementRepo, zap.NewNop())

		movementRepo.On("Insert", mock.Anything, mock.Anything).Return(nil)

		movement, err := service.RecordMovement(context.Background(), RecordMovementInput{
			SellerCode:    "11",
			AuxiliaryCode: "OB1215 Q01",
			Kind:          ledger.EntryKindAdjustment,
			Quantity:      decimal.NewFromInt(-3),
			Motive:        "Acerto manual",
		})

		require.NoError(t, err)
		assert.True(t, movement.Quantity.Equal(decimal.NewFromInt(-3)))
		assert.Nil(t, movement.OriginReference)
	})

	t.Run("rejects an order kind without touching the store", func(t *testing.T) {
		movementRepo := new(MockStockMovementRepository)
		service := NewMovementService(movementRepo, zap.NewNop())

		_, err := service.RecordMovement(context.Background(), RecordMovementInput{
			SellerCode:    "11",
			AuxiliaryCode: "OB1215 Q01",
			Kind:          ledger.EntryKindSale,
			Quantity:      decimal.NewFromInt(1),
		})

		require.Error(t, err)
		movementRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	})

	t.Run("propagates an insert failure", func(t *testing.T) {
		movementRepo := new(MockStockMovementRepository)
		service := NewMovementService(movementRepo, zap.NewNop())

		movementRepo.On("Insert", mock.Anything, mock.Anything).Return(errors.New("connection reset"))

		_, err := service.RecordMovement(context.Background(), RecordMovementInput{
			SellerCode:    "11",
			AuxiliaryCode: "OB1215 Q01",
			Kind:          ledger.EntryKindClientReturn,
			Quantity:      decimal.NewFromInt(1),
		})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "record movement")
	})
}
