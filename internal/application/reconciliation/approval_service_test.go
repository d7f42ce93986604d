package reconciliation

import (
	"context"
	"errors"
	"testing"

	"github.com/opticore/backend/internal/application/stock"
	"github.com/opticore/backend/internal/domain/catalog"
	"github.com/opticore/backend/internal/domain/ledger"
	domain "github.com/opticore/backend/internal/domain/reconciliation"
	"github.com/opticore/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type approvalFixture struct {
	service       *ApprovalService
	inventoryRepo *MockInventoryRepository
	productRepo   *MockProductRepository
	orderRepo     *MockOrderRepository
	movementRepo  *MockStockMovementRepository
	snapshotRepo  *MockStockSnapshotRepository
	publisher     *MockEventPublisher
}

func newApprovalFixture(t *testing.T) *approvalFixture {
	t.Helper()
	f := &approvalFixture{
		inventoryRepo: new(MockInventoryRepository),
		productRepo:   new(MockProductRepository),
		orderRepo:     new(MockOrderRepository),
		movementRepo:  new(MockStockMovementRepository),
		snapshotRepo:  new(MockStockSnapshotRepository),
		publisher:     NewMockEventPublisher(),
	}
	aggregator := stock.NewAggregatorService(f.orderRepo, f.movementRepo, zap.NewNop())
	comparator := NewComparatorService(f.inventoryRepo, f.productRepo, aggregator, zap.NewNop())
	scope := NewNoOpTransactionScope(f.inventoryRepo, f.movementRepo, f.snapshotRepo)
	f.service = NewApprovalService(f.inventoryRepo, comparator, scope, f.publisher, zap.NewNop())
	return f
}

func (f *approvalFixture) stubLedger(sellerCode string, lines []ledger.OrderLine) {
	f.orderRepo.On("ListLines", mock.Anything, sellerCode, mock.Anything).Return(lines, nil)
	f.movementRepo.On("ListBySeller", mock.Anything, sellerCode, mock.Anything).Return([]ledger.StockMovement{}, nil)
	f.productRepo.On("FindByAuxiliaryCodes", mock.Anything, mock.Anything).Return([]catalog.Product{}, nil)
}

func TestApprovalService_Approve(t *testing.T) {
	ctx := context.Background()

	t.Run("writes adjustments, status and snapshot", func(t *testing.T) {
		f := newApprovalFixture(t)

		inv := submittedInventory(t, "11", map[string]int64{"OB1215 Q01": 8, "AAA": 5})
		f.inventoryRepo.On("FindByID", ctx, inv.ID).Return(inv, nil)
		f.stubLedger("11", []ledger.OrderLine{
			// OB1215 Q01 theoretical 6 against counted 8: +2 adjustment.
			// AAA theoretical 5 against counted 5: no adjustment.
			{SellerCode: "11", AuxiliaryCode: "OB1215 Q01", MovementKind: ledger.EntryKindShipment, Quantity: decimal.NewFromInt(10)},
			{SellerCode: "11", AuxiliaryCode: "OB1215 Q01", MovementKind: ledger.EntryKindSale, Quantity: decimal.NewFromInt(4)},
			{SellerCode: "11", AuxiliaryCode: "AAA", MovementKind: ledger.EntryKindShipment, Quantity: decimal.NewFromInt(5)},
		})

		f.movementRepo.On("InsertBatch", ctx, mock.MatchedBy(func(movements []*ledger.StockMovement) bool {
			if len(movements) != 1 {
				return false
			}
			m := movements[0]
			return m.Kind == ledger.EntryKindAdjustment &&
				m.AuxiliaryCode == "OB1215 Q01" &&
				m.Quantity.Equal(decimal.NewFromInt(2)) &&
				m.Motive == ledger.MotiveInventoryApproval &&
				m.OriginReference != nil && *m.OriginReference == inv.ID
		})).Return(nil)
		f.inventoryRepo.On("UpdateStatusGuarded", ctx, inv.ID,
			[]domain.InventoryStatus{domain.InventoryStatusPending, domain.InventoryStatusInReview},
			domain.InventoryStatusApproved, mock.Anything, "gerente").Return(true, nil)
		f.snapshotRepo.On("ReplaceForSeller", ctx, "11", mock.MatchedBy(func(rows []domain.StockSnapshot) bool {
			return len(rows) == 2
		})).Return(nil)

		result, err := f.service.Approve(ctx, inv.ID, "gerente")

		require.NoError(t, err)
		assert.Equal(t, 1, result.AdjustmentsCreated)
		assert.Equal(t, 2, result.SnapshotRows)
		assert.Equal(t, "11", result.SellerCode)
		assert.Len(t, f.publisher.GetEventsByType(domain.EventTypeInventoryApproved), 1)
		f.movementRepo.AssertExpectations(t)
		f.snapshotRepo.AssertExpectations(t)
	})

	t.Run("zero divergence approves without adjustments", func(t *testing.T) {
		f := newApprovalFixture(t)

		inv := submittedInventory(t, "11", map[string]int64{"AAA": 5})
		f.inventoryRepo.On("FindByID", ctx, inv.ID).Return(inv, nil)
		f.stubLedger("11", []ledger.OrderLine{
			{SellerCode: "11", AuxiliaryCode: "AAA", MovementKind: ledger.EntryKindShipment, Quantity: decimal.NewFromInt(5)},
		})
		f.inventoryRepo.On("UpdateStatusGuarded", ctx, inv.ID, mock.Anything,
			domain.InventoryStatusApproved, mock.Anything, "gerente").Return(true, nil)
		f.snapshotRepo.On("ReplaceForSeller", ctx, "11", mock.Anything).Return(nil)

		result, err := f.service.Approve(ctx, inv.ID, "gerente")

		require.NoError(t, err)
		assert.Equal(t, 0, result.AdjustmentsCreated)
		f.movementRepo.AssertNotCalled(t, "InsertBatch", mock.Anything, mock.Anything)
	})

	t.Run("rejects an empty inventory before any write", func(t *testing.T) {
		f := newApprovalFixture(t)

		inv := submittedInventory(t, "11", nil)
		f.inventoryRepo.On("FindByID", ctx, inv.ID).Return(inv, nil)

		result, err := f.service.Approve(ctx, inv.ID, "gerente")

		require.Error(t, err)
		assert.Nil(t, result)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "EMPTY_INVENTORY", domainErr.Code)
		f.movementRepo.AssertNotCalled(t, "InsertBatch", mock.Anything, mock.Anything)
		f.snapshotRepo.AssertNotCalled(t, "ReplaceForSeller", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("rejects an already approved inventory", func(t *testing.T) {
		f := newApprovalFixture(t)

		inv := submittedInventory(t, "11", map[string]int64{"AAA": 1})
		require.NoError(t, inv.Approve("primeira"))
		inv.ClearDomainEvents()
		f.inventoryRepo.On("FindByID", ctx, inv.ID).Return(inv, nil)

		result, err := f.service.Approve(ctx, inv.ID, "segunda")

		require.Error(t, err)
		assert.Nil(t, result)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_TRANSITION", domainErr.Code)
	})

	t.Run("lost status race surfaces invalid state and keeps the snapshot untouched", func(t *testing.T) {
		f := newApprovalFixture(t)

		inv := submittedInventory(t, "11", map[string]int64{"AAA": 2})
		f.inventoryRepo.On("FindByID", ctx, inv.ID).Return(inv, nil)
		f.stubLedger("11", []ledger.OrderLine{})
		f.movementRepo.On("InsertBatch", ctx, mock.Anything).Return(nil)
		f.inventoryRepo.On("UpdateStatusGuarded", ctx, inv.ID, mock.Anything,
			domain.InventoryStatusApproved, mock.Anything, "gerente").Return(false, nil)

		result, err := f.service.Approve(ctx, inv.ID, "gerente")

		require.Error(t, err)
		assert.Nil(t, result)
		assert.ErrorIs(t, err, shared.ErrInvalidState)
		f.snapshotRepo.AssertNotCalled(t, "ReplaceForSeller", mock.Anything, mock.Anything, mock.Anything)
		assert.Empty(t, f.publisher.GetEventsByType(domain.EventTypeInventoryApproved))
	})

	t.Run("snapshot failure aborts the approval", func(t *testing.T) {
		f := newApprovalFixture(t)

		inv := submittedInventory(t, "11", map[string]int64{"AAA": 2})
		f.inventoryRepo.On("FindByID", ctx, inv.ID).Return(inv, nil)
		f.stubLedger("11", []ledger.OrderLine{})
		f.movementRepo.On("InsertBatch", ctx, mock.Anything).Return(nil)
		f.inventoryRepo.On("UpdateStatusGuarded", ctx, inv.ID, mock.Anything,
			domain.InventoryStatusApproved, mock.Anything, "gerente").Return(true, nil)
		f.snapshotRepo.On("ReplaceForSeller", ctx, "11", mock.Anything).Return(errors.New("disk full"))

		result, err := f.service.Approve(ctx, inv.ID, "gerente")

		require.Error(t, err)
		assert.Nil(t, result)
		assert.Contains(t, err.Error(), "replace stock snapshots")
		assert.Empty(t, f.publisher.GetEventsByType(domain.EventTypeInventoryApproved))
	})
}

func TestApprovalService_RequestRevision(t *testing.T) {
	ctx := context.Background()

	t.Run("sends the submission back with the manager note", func(t *testing.T) {
		f := newApprovalFixture(t)

		inv := submittedInventory(t, "11", map[string]int64{"AAA": 2})
		f.inventoryRepo.On("FindByID", ctx, inv.ID).Return(inv, nil)
		f.inventoryRepo.On("UpdateStatusGuarded", ctx, inv.ID,
			[]domain.InventoryStatus{domain.InventoryStatusPending, domain.InventoryStatusInReview},
			domain.InventoryStatusInReview, "Reconte a gaveta 3", "").Return(true, nil)

		err := f.service.RequestRevision(ctx, inv.ID, "gerente", "Reconte a gaveta 3")

		require.NoError(t, err)
		assert.Len(t, f.publisher.GetEventsByType(domain.EventTypeInventoryRevisionRequested), 1)
	})

	t.Run("requires a manager note", func(t *testing.T) {
		f := newApprovalFixture(t)

		inv := submittedInventory(t, "11", map[string]int64{"AAA": 2})
		f.inventoryRepo.On("FindByID", ctx, inv.ID).Return(inv, nil)

		err := f.service.RequestRevision(ctx, inv.ID, "gerente", "   ")

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "EMPTY_MANAGER_NOTE", domainErr.Code)
		f.inventoryRepo.AssertNotCalled(t, "UpdateStatusGuarded",
			mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("rejects revision on an approved inventory", func(t *testing.T) {
		f := newApprovalFixture(t)

		inv := submittedInventory(t, "11", map[string]int64{"AAA": 2})
		require.NoError(t, inv.Approve("gerente"))
		inv.ClearDomainEvents()
		f.inventoryRepo.On("FindByID", ctx, inv.ID).Return(inv, nil)

		err := f.service.RequestRevision(ctx, inv.ID, "gerente", "tarde demais")

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_TRANSITION", domainErr.Code)
	})
}
