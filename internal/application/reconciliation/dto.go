package reconciliation

import (
	"time"

	"github.com/google/uuid"
	domain "github.com/opticore/backend/internal/domain/reconciliation"
	"github.com/shopspring/decimal"
)

// ApprovalResult reports what an approval wrote
type ApprovalResult struct {
	InventoryID        uuid.UUID `json:"inventory_id"`
	SellerCode         string    `json:"seller_code"`
	AdjustmentsCreated int       `json:"adjustments_created"`
	SnapshotRows       int       `json:"snapshot_rows"`
}

// SnapshotRow is one row of a seller's current real-stock view
type SnapshotRow struct {
	AuxiliaryCode string          `json:"auxiliary_code"`
	RealQuantity  decimal.Decimal `json:"real_quantity"`
	AsOfDate      time.Time       `json:"as_of_date"`
	InventoryID   uuid.UUID       `json:"inventory_id"`
}

// ToSnapshotRows maps snapshot entities to their read DTO
func ToSnapshotRows(snapshots []domain.StockSnapshot) []SnapshotRow {
	rows := make([]SnapshotRow, len(snapshots))
	for i, s := range snapshots {
		rows[i] = SnapshotRow{
			AuxiliaryCode: s.AuxiliaryCode,
			RealQuantity:  s.RealQuantity,
			AsOfDate:      s.AsOfDate,
			InventoryID:   s.InventoryID,
		}
	}
	return rows
}
