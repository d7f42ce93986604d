package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/opticore/backend/internal/domain/reconciliation"
	"github.com/shopspring/decimal"
)

// InventoryModel is the persistence model for the Inventory aggregate
type InventoryModel struct {
	AggregateModel
	SellerCode   string     `gorm:"type:varchar(20);not null;index"`
	SubmittedAt  time.Time  `gorm:"not null"`
	Status       string     `gorm:"type:varchar(20);not null;index"`
	ManagerNotes string     `gorm:"type:text"`
	ApprovedAt   *time.Time `gorm:""`
	ApprovedBy   string     `gorm:"type:varchar(100)"`
}

// TableName returns the table name for GORM
func (InventoryModel) TableName() string {
	return "inventories"
}

// ToDomain converts the persistence model to a domain Inventory, without items
func (m *InventoryModel) ToDomain() *reconciliation.Inventory {
	return &reconciliation.Inventory{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		SellerCode:        m.SellerCode,
		SubmittedAt:       m.SubmittedAt,
		Status:            reconciliation.InventoryStatus(m.Status),
		ManagerNotes:      m.ManagerNotes,
		ApprovedAt:        m.ApprovedAt,
		ApprovedBy:        m.ApprovedBy,
		Items:             make([]reconciliation.InventoryItem, 0),
	}
}

// FromDomain populates the persistence model from a domain Inventory
func (m *InventoryModel) FromDomain(inv *reconciliation.Inventory) {
	m.FromDomainAggregateRoot(inv.BaseAggregateRoot)
	m.SellerCode = inv.SellerCode
	m.SubmittedAt = inv.SubmittedAt
	m.Status = string(inv.Status)
	m.ManagerNotes = inv.ManagerNotes
	m.ApprovedAt = inv.ApprovedAt
	m.ApprovedBy = inv.ApprovedBy
}

// InventoryModelFromDomain creates a new persistence model from a domain Inventory
func InventoryModelFromDomain(inv *reconciliation.Inventory) *InventoryModel {
	m := &InventoryModel{}
	m.FromDomain(inv)
	return m
}

// InventoryItemModel is the persistence model for one counted product.
// The (inventory_id, auxiliary_code) pair is unique: a product is counted
// once per submission.
type InventoryItemModel struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key"`
	InventoryID     uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_inventory_items_inv_code,priority:1"`
	AuxiliaryCode   string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_inventory_items_inv_code,priority:2"`
	CountedQuantity decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CreatedAt       time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (InventoryItemModel) TableName() string {
	return "inventory_items"
}

// ToDomain converts the persistence model to a domain InventoryItem
func (m *InventoryItemModel) ToDomain() reconciliation.InventoryItem {
	return reconciliation.InventoryItem{
		ID:              m.ID,
		InventoryID:     m.InventoryID,
		AuxiliaryCode:   m.AuxiliaryCode,
		CountedQuantity: m.CountedQuantity,
		CreatedAt:       m.CreatedAt,
	}
}

// InventoryItemModelFromDomain creates a new persistence model from a domain InventoryItem
func InventoryItemModelFromDomain(item reconciliation.InventoryItem) *InventoryItemModel {
	return &InventoryItemModel{
		ID:              item.ID,
		InventoryID:     item.InventoryID,
		AuxiliaryCode:   item.AuxiliaryCode,
		CountedQuantity: item.CountedQuantity,
		CreatedAt:       item.CreatedAt,
	}
}

// StockSnapshotModel is the persistence model for the real-stock table.
// One row per (seller, product); each approval replaces the seller's rows.
type StockSnapshotModel struct {
	BaseModel
	SellerCode    string          `gorm:"type:varchar(20);not null;uniqueIndex:idx_snapshots_seller_code,priority:1"`
	AuxiliaryCode string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_snapshots_seller_code,priority:2"`
	RealQuantity  decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	AsOfDate      time.Time       `gorm:"not null"`
	InventoryID   uuid.UUID       `gorm:"type:uuid;not null;index"`
}

// TableName returns the table name for GORM
func (StockSnapshotModel) TableName() string {
	return "stock_snapshots"
}

// ToDomain converts the persistence model to a domain StockSnapshot
func (m *StockSnapshotModel) ToDomain() reconciliation.StockSnapshot {
	return reconciliation.StockSnapshot{
		BaseEntity:    m.BaseModel.ToDomain(),
		SellerCode:    m.SellerCode,
		AuxiliaryCode: m.AuxiliaryCode,
		RealQuantity:  m.RealQuantity,
		AsOfDate:      m.AsOfDate,
		InventoryID:   m.InventoryID,
	}
}

// StockSnapshotModelFromDomain creates a new persistence model from a domain StockSnapshot
func StockSnapshotModelFromDomain(s reconciliation.StockSnapshot) *StockSnapshotModel {
	m := &StockSnapshotModel{
		SellerCode:    s.SellerCode,
		AuxiliaryCode: s.AuxiliaryCode,
		RealQuantity:  s.RealQuantity,
		AsOfDate:      s.AsOfDate,
		InventoryID:   s.InventoryID,
	}
	m.FromDomainBaseEntity(s.BaseEntity)
	return m
}
