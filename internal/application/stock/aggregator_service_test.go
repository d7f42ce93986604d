package stock

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/opticore/backend/internal/domain/ledger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockOrderRepository is a mock implementation of ledger.OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Insert(ctx context.Context, order *ledger.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) InsertItems(ctx context.Context, order *ledger.Order, items []ledger.OrderItem) error {
	args := m.Called(ctx, order, items)
	return args.Error(0)
}

func (m *MockOrderRepository) FindExistingKeys(ctx context.Context, orderNumbers []string) ([]ledger.OrderKey, error) {
	args := m.Called(ctx, orderNumbers)
	return args.Get(0).([]ledger.OrderKey), args.Error(1)
}

func (m *MockOrderRepository) ExistsByKey(ctx context.Context, key ledger.OrderKey) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) ListLines(ctx context.Context, sellerCode string, cutoff *time.Time) ([]ledger.OrderLine, error) {
	args := m.Called(ctx, sellerCode, cutoff)
	return args.Get(0).([]ledger.OrderLine), args.Error(1)
}

// MockStockMovementRepository is a mock implementation of ledger.StockMovementRepository
type MockStockMovementRepository struct {
	mock.Mock
}

func (m *MockStockMovementRepository) Insert(ctx context.Context, movement *ledger.StockMovement) error {
	args := m.Called(ctx, movement)
	return args.Error(0)
}

func (m *MockStockMovementRepository) InsertBatch(ctx context.Context, movements []*ledger.StockMovement) error {
	args := m.Called(ctx, movements)
	return args.Error(0)
}

func (m *MockStockMovementRepository) ListBySeller(ctx context.Context, sellerCode string, cutoff *time.Time) ([]ledger.StockMovement, error) {
	args := m.Called(ctx, sellerCode, cutoff)
	return args.Get(0).([]ledger.StockMovement), args.Error(1)
}

func line(seller, code string, kind ledger.EntryKind, qty int64) ledger.OrderLine {
	return ledger.OrderLine{
		SellerCode:    seller,
		AuxiliaryCode: code,
		MovementKind:  kind,
		Quantity:      decimal.NewFromInt(qty),
	}
}

func movement(t *testing.T, seller, code string, kind ledger.EntryKind, qty int64) ledger.StockMovement {
	t.Helper()
	m, err := ledger.NewStockMovement(seller, code, kind, decimal.NewFromInt(qty), "teste")
	require.NoError(t, err)
	return *m
}

func TestAggregatorService_AggregateTheoreticalStock(t *testing.T) {
	ctx := context.Background()

	newService := func(lines []ledger.OrderLine, movements []ledger.StockMovement) *AggregatorService {
		orderRepo := new(MockOrderRepository)
		movementRepo := new(MockStockMovementRepository)
		orderRepo.On("ListLines", ctx, mock.Anything, mock.Anything).Return(lines, nil)
		movementRepo.On("ListBySeller", ctx, mock.Anything, mock.Anything).Return(movements, nil)
		return NewAggregatorService(orderRepo, movementRepo, zap.NewNop())
	}

	t.Run("theoretical is shipped minus sold plus movements", func(t *testing.T) {
		service := newService(
			[]ledger.OrderLine{
				line("11", "OB1215 Q01", ledger.EntryKindShipment, 10),
				line("11", "OB1215 Q01", ledger.EntryKindSale, 3),
			},
			[]ledger.StockMovement{
				movement(t, "11", "OB1215 Q01", ledger.EntryKindLoss, 1),
			},
		)

		totals, err := service.AggregateTheoreticalStock(ctx, "11", AggregateOptions{IncludeZero: true})

		require.NoError(t, err)
		require.Contains(t, totals, "OB1215 Q01")
		got := totals["OB1215 Q01"]
		assert.True(t, got.ShippedQty.Equal(decimal.NewFromInt(10)))
		assert.True(t, got.SoldQty.Equal(decimal.NewFromInt(3)))
		assert.True(t, got.MovementQty.Equal(decimal.NewFromInt(-1)))
		assert.True(t, got.TheoreticalQty.Equal(decimal.NewFromInt(6)))
	})

	t.Run("client returns count as entries, company returns as exits", func(t *testing.T) {
		service := newService(
			[]ledger.OrderLine{
				line("11", "AAA", ledger.EntryKindShipment, 5),
				line("11", "AAA", ledger.EntryKindClientReturn, 2),
				line("11", "AAA", ledger.EntryKindCompanyReturn, 1),
			},
			[]ledger.StockMovement{},
		)

		totals, err := service.AggregateTheoreticalStock(ctx, "11", AggregateOptions{IncludeZero: true})

		require.NoError(t, err)
		got := totals["AAA"]
		assert.True(t, got.ShippedQty.Equal(decimal.NewFromInt(7)), "shipment plus client return, got %s", got.ShippedQty)
		assert.True(t, got.SoldQty.Equal(decimal.NewFromInt(1)), "company return counts against, got %s", got.SoldQty)
		assert.True(t, got.TheoreticalQty.Equal(decimal.NewFromInt(6)))
	})

	t.Run("excludes zero theoretical without movements unless asked", func(t *testing.T) {
		lines := []ledger.OrderLine{
			line("11", "AAA", ledger.EntryKindShipment, 4),
			line("11", "AAA", ledger.EntryKindSale, 4),
			line("11", "BBB", ledger.EntryKindShipment, 2),
		}

		totals, err := newService(lines, nil).AggregateTheoreticalStock(ctx, "11", AggregateOptions{})
		require.NoError(t, err)
		assert.NotContains(t, totals, "AAA")
		assert.Contains(t, totals, "BBB")

		totals, err = newService(lines, nil).AggregateTheoreticalStock(ctx, "11", AggregateOptions{IncludeZero: true})
		require.NoError(t, err)
		assert.Contains(t, totals, "AAA")
	})

	t.Run("zero theoretical with movement history is kept", func(t *testing.T) {
		service := newService(
			[]ledger.OrderLine{
				line("11", "AAA", ledger.EntryKindShipment, 1),
			},
			[]ledger.StockMovement{
				movement(t, "11", "AAA", ledger.EntryKindLoss, 1),
			},
		)

		totals, err := service.AggregateTheoreticalStock(ctx, "11", AggregateOptions{})

		require.NoError(t, err)
		require.Contains(t, totals, "AAA")
		assert.True(t, totals["AAA"].TheoreticalQty.IsZero())
	})

	t.Run("negative theoretical is reported, not clamped", func(t *testing.T) {
		service := newService(
			[]ledger.OrderLine{
				line("11", "AAA", ledger.EntryKindShipment, 2),
				line("11", "AAA", ledger.EntryKindSale, 5),
			},
			[]ledger.StockMovement{},
		)

		totals, err := service.AggregateTheoreticalStock(ctx, "11", AggregateOptions{IncludeZero: true})

		require.NoError(t, err)
		assert.True(t, totals["AAA"].TheoreticalQty.Equal(decimal.NewFromInt(-3)))
	})

	t.Run("order scan failure aborts the aggregation", func(t *testing.T) {
		orderRepo := new(MockOrderRepository)
		movementRepo := new(MockStockMovementRepository)
		orderRepo.On("ListLines", ctx, "11", mock.Anything).Return([]ledger.OrderLine{}, errors.New("timeout"))
		service := NewAggregatorService(orderRepo, movementRepo, zap.NewNop())

		totals, err := service.AggregateTheoreticalStock(ctx, "11", AggregateOptions{})

		require.Error(t, err)
		assert.Nil(t, totals)
		movementRepo.AssertNotCalled(t, "ListBySeller", mock.Anything, mock.Anything, mock.Anything)
	})
}
