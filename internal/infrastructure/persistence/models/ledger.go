package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/opticore/backend/internal/domain/ledger"
	"github.com/shopspring/decimal"
)

// OrderModel is the persistence model for the Order aggregate. The
// (order_number, movement_kind) pair carries the business identity; the
// unique index is the last line of defense behind the import's duplicate
// probe.
type OrderModel struct {
	AggregateModel
	OrderNumber  string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_orders_number_kind,priority:1"`
	MovementKind string          `gorm:"type:varchar(20);not null;uniqueIndex:idx_orders_number_kind,priority:2"`
	IssueDate    time.Time       `gorm:"not null;index"`
	SellerCode   string          `gorm:"type:varchar(20);not null;index"`
	TotalValue   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// ToDomain converts the persistence model to a domain Order, without items
func (m *OrderModel) ToDomain() *ledger.Order {
	return &ledger.Order{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		OrderNumber:       m.OrderNumber,
		IssueDate:         m.IssueDate,
		SellerCode:        m.SellerCode,
		MovementKind:      ledger.EntryKind(m.MovementKind),
		TotalValue:        m.TotalValue,
		Items:             make([]ledger.OrderItem, 0),
	}
}

// FromDomain populates the persistence model from a domain Order
func (m *OrderModel) FromDomain(o *ledger.Order) {
	m.FromDomainAggregateRoot(o.BaseAggregateRoot)
	m.OrderNumber = o.OrderNumber
	m.MovementKind = string(o.MovementKind)
	m.IssueDate = o.IssueDate
	m.SellerCode = o.SellerCode
	m.TotalValue = o.TotalValue
}

// OrderModelFromDomain creates a new persistence model from a domain Order
func OrderModelFromDomain(o *ledger.Order) *OrderModel {
	m := &OrderModel{}
	m.FromDomain(o)
	return m
}

// OrderItemModel is the persistence model for an order line item
type OrderItemModel struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key"`
	OrderID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	AuxiliaryCode string          `gorm:"type:varchar(50);not null;index"`
	Quantity      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitValue     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	CreatedAt     time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (OrderItemModel) TableName() string {
	return "order_items"
}

// ToDomain converts the persistence model to a domain OrderItem
func (m *OrderItemModel) ToDomain() ledger.OrderItem {
	return ledger.OrderItem{
		ID:            m.ID,
		OrderID:       m.OrderID,
		AuxiliaryCode: m.AuxiliaryCode,
		Quantity:      m.Quantity,
		UnitValue:     m.UnitValue,
		CreatedAt:     m.CreatedAt,
	}
}

// OrderItemModelFromDomain creates a new persistence model from a domain OrderItem
func OrderItemModelFromDomain(item ledger.OrderItem) *OrderItemModel {
	return &OrderItemModel{
		ID:            item.ID,
		OrderID:       item.OrderID,
		AuxiliaryCode: item.AuxiliaryCode,
		Quantity:      item.Quantity,
		UnitValue:     item.UnitValue,
		CreatedAt:     item.CreatedAt,
	}
}

// StockMovementModel is the persistence model for a stock movement. The
// quantity column is stored signed, exactly as the domain carries it.
type StockMovementModel struct {
	BaseModel
	SellerCode      string          `gorm:"type:varchar(20);not null;index:idx_movements_seller_occurred,priority:1"`
	AuxiliaryCode   string          `gorm:"type:varchar(50);not null;index"`
	Kind            string          `gorm:"type:varchar(20);not null"`
	Quantity        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Motive          string          `gorm:"type:varchar(255)"`
	OriginReference *uuid.UUID      `gorm:"type:uuid;index"`
	OccurredAt      time.Time       `gorm:"not null;index:idx_movements_seller_occurred,priority:2"`
}

// TableName returns the table name for GORM
func (StockMovementModel) TableName() string {
	return "stock_movements"
}

// ToDomain converts the persistence model to a domain StockMovement
func (m *StockMovementModel) ToDomain() *ledger.StockMovement {
	return &ledger.StockMovement{
		BaseEntity:      m.BaseModel.ToDomain(),
		SellerCode:      m.SellerCode,
		AuxiliaryCode:   m.AuxiliaryCode,
		Kind:            ledger.EntryKind(m.Kind),
		Quantity:        m.Quantity,
		Motive:          m.Motive,
		OriginReference: m.OriginReference,
		OccurredAt:      m.OccurredAt,
	}
}

// StockMovementModelFromDomain creates a new persistence model from a domain StockMovement
func StockMovementModelFromDomain(movement *ledger.StockMovement) *StockMovementModel {
	m := &StockMovementModel{
		SellerCode:      movement.SellerCode,
		AuxiliaryCode:   movement.AuxiliaryCode,
		Kind:            string(movement.Kind),
		Quantity:        movement.Quantity,
		Motive:          movement.Motive,
		OriginReference: movement.OriginReference,
		OccurredAt:      movement.OccurredAt,
	}
	m.FromDomainBaseEntity(movement.BaseEntity)
	return m
}
