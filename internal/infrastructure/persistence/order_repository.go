package persistence

import (
	"context"
	"time"

	"github.com/opticore/backend/internal/domain/ledger"
	"github.com/opticore/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormOrderRepository implements ledger.OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Insert persists the order row only; items go through InsertItems
func (r *GormOrderRepository) Insert(ctx context.Context, order *ledger.Order) error {
	model := models.OrderModelFromDomain(order)
	return r.db.WithContext(ctx).Create(model).Error
}

// InsertItems persists line items for an already inserted order
func (r *GormOrderRepository) InsertItems(ctx context.Context, order *ledger.Order, items []ledger.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	rows := make([]models.OrderItemModel, len(items))
	for i, item := range items {
		row := models.OrderItemModelFromDomain(item)
		row.OrderID = order.ID
		if row.CreatedAt.IsZero() {
			row.CreatedAt = time.Now()
		}
		rows[i] = *row
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}

// FindExistingKeys returns the (order_number, movement_kind) pairs that
// already exist for any of the given order numbers
func (r *GormOrderRepository) FindExistingKeys(ctx context.Context, orderNumbers []string) ([]ledger.OrderKey, error) {
	if len(orderNumbers) == 0 {
		return []ledger.OrderKey{}, nil
	}
	var rows []struct {
		OrderNumber  string
		MovementKind string
	}
	if err := r.db.WithContext(ctx).
		Model(&models.OrderModel{}).
		Select("order_number, movement_kind").
		Where("order_number IN ?", orderNumbers).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	keys := make([]ledger.OrderKey, len(rows))
	for i, row := range rows {
		keys[i] = ledger.OrderKey{
			OrderNumber:  row.OrderNumber,
			MovementKind: ledger.EntryKind(row.MovementKind),
		}
	}
	return keys, nil
}

// ExistsByKey reports whether an order with the given business key exists
func (r *GormOrderRepository) ExistsByKey(ctx context.Context, key ledger.OrderKey) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.OrderModel{}).
		Where("order_number = ? AND movement_kind = ?", key.OrderNumber, string(key.MovementKind)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListLines streams order items joined to their order's movement kind.
// An empty sellerCode spans all sellers; a non-nil cutoff bounds the
// order's issue date.
func (r *GormOrderRepository) ListLines(ctx context.Context, sellerCode string, cutoff *time.Time) ([]ledger.OrderLine, error) {
	query := r.db.WithContext(ctx).
		Table("order_items").
		Select("orders.seller_code, order_items.auxiliary_code, orders.movement_kind, order_items.quantity").
		Joins("JOIN orders ON orders.id = order_items.order_id")
	if sellerCode != "" {
		query = query.Where("orders.seller_code = ?", sellerCode)
	}
	if cutoff != nil {
		query = query.Where("orders.issue_date <= ?", *cutoff)
	}

	var rows []struct {
		SellerCode    string
		AuxiliaryCode string
		MovementKind  string
		Quantity      decimal.Decimal
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	lines := make([]ledger.OrderLine, len(rows))
	for i, row := range rows {
		lines[i] = ledger.OrderLine{
			SellerCode:    row.SellerCode,
			AuxiliaryCode: row.AuxiliaryCode,
			MovementKind:  ledger.EntryKind(row.MovementKind),
			Quantity:      row.Quantity,
		}
	}
	return lines, nil
}

var _ ledger.OrderRepository = (*GormOrderRepository)(nil)
