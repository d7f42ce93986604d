package persistence

import (
	"context"

	"github.com/opticore/backend/internal/domain/reconciliation"
	"github.com/opticore/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormStockSnapshotRepository implements reconciliation.StockSnapshotRepository using GORM
type GormStockSnapshotRepository struct {
	db *gorm.DB
}

// NewGormStockSnapshotRepository creates a new GormStockSnapshotRepository
func NewGormStockSnapshotRepository(db *gorm.DB) *GormStockSnapshotRepository {
	return &GormStockSnapshotRepository{db: db}
}

// ReplaceForSeller deletes every snapshot row of the seller and inserts the
// given rows. Runs inside whatever transaction the caller's db handle
// carries; the approval scope wraps it with the status flip.
func (r *GormStockSnapshotRepository) ReplaceForSeller(ctx context.Context, sellerCode string, rows []reconciliation.StockSnapshot) error {
	if err := r.db.WithContext(ctx).
		Where("seller_code = ?", sellerCode).
		Delete(&models.StockSnapshotModel{}).Error; err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	modelsRows := make([]models.StockSnapshotModel, len(rows))
	for i, row := range rows {
		modelsRows[i] = *models.StockSnapshotModelFromDomain(row)
	}
	return r.db.WithContext(ctx).Create(&modelsRows).Error
}

// ListBySeller returns the seller's current snapshot rows
func (r *GormStockSnapshotRepository) ListBySeller(ctx context.Context, sellerCode string) ([]reconciliation.StockSnapshot, error) {
	var rows []models.StockSnapshotModel
	if err := r.db.WithContext(ctx).
		Where("seller_code = ?", sellerCode).
		Order("auxiliary_code").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	snapshots := make([]reconciliation.StockSnapshot, len(rows))
	for i := range rows {
		snapshots[i] = rows[i].ToDomain()
	}
	return snapshots, nil
}

var _ reconciliation.StockSnapshotRepository = (*GormStockSnapshotRepository)(nil)
