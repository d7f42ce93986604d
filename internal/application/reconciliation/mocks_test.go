package reconciliation

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/opticore/backend/internal/domain/catalog"
	"github.com/opticore/backend/internal/domain/ledger"
	domain "github.com/opticore/backend/internal/domain/reconciliation"
	"github.com/opticore/backend/internal/domain/shared"
	"github.com/stretchr/testify/mock"
)

// MockEventPublisher is a mock implementation of shared.EventPublisher
type MockEventPublisher struct {
	mu     sync.Mutex
	events []shared.DomainEvent
}

func NewMockEventPublisher() *MockEventPublisher {
	return &MockEventPublisher{
		events: make([]shared.DomainEvent, 0),
	}
}

func (m *MockEventPublisher) Publish(_ context.Context, events ...shared.DomainEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, events...)
	return nil
}

func (m *MockEventPublisher) GetEventsByType(eventType string) []shared.DomainEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]shared.DomainEvent, 0)
	for _, e := range m.events {
		if e.EventType() == eventType {
			result = append(result, e)
		}
	}
	return result
}

// MockInventoryRepository is a mock implementation of reconciliation.InventoryRepository
type MockInventoryRepository struct {
	mock.Mock
}

func (m *MockInventoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Inventory, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Inventory), args.Error(1)
}

func (m *MockInventoryRepository) Save(ctx context.Context, inv *domain.Inventory) error {
	args := m.Called(ctx, inv)
	return args.Error(0)
}

func (m *MockInventoryRepository) UpdateStatusGuarded(ctx context.Context, id uuid.UUID, allowed []domain.InventoryStatus, target domain.InventoryStatus, managerNotes string, approvedBy string) (bool, error) {
	args := m.Called(ctx, id, allowed, target, managerNotes, approvedBy)
	return args.Bool(0), args.Error(1)
}

// MockStockSnapshotRepository is a mock implementation of reconciliation.StockSnapshotRepository
type MockStockSnapshotRepository struct {
	mock.Mock
}

func (m *MockStockSnapshotRepository) ReplaceForSeller(ctx context.Context, sellerCode string, rows []domain.StockSnapshot) error {
	args := m.Called(ctx, sellerCode, rows)
	return args.Error(0)
}

func (m *MockStockSnapshotRepository) ListBySeller(ctx context.Context, sellerCode string) ([]domain.StockSnapshot, error) {
	args := m.Called(ctx, sellerCode)
	return args.Get(0).([]domain.StockSnapshot), args.Error(1)
}

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

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByAuxiliaryCode(ctx context.Context, auxiliaryCode string) (*catalog.Product, error) {
	args := m.Called(ctx, auxiliaryCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByAuxiliaryCodes(ctx context.Context, auxiliaryCodes []string) ([]catalog.Product, error) {
	args := m.Called(ctx, auxiliaryCodes)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) UpsertBatch(ctx context.Context, products []catalog.Product) error {
	args := m.Called(ctx, products)
	return args.Error(0)
}
