package persistence

import (
	"context"
	"time"

	"github.com/opticore/backend/internal/domain/ledger"
	"github.com/opticore/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormStockMovementRepository implements ledger.StockMovementRepository using GORM
type GormStockMovementRepository struct {
	db *gorm.DB
}

// NewGormStockMovementRepository creates a new GormStockMovementRepository
func NewGormStockMovementRepository(db *gorm.DB) *GormStockMovementRepository {
	return &GormStockMovementRepository{db: db}
}

// Insert persists a single movement
func (r *GormStockMovementRepository) Insert(ctx context.Context, movement *ledger.StockMovement) error {
	model := models.StockMovementModelFromDomain(movement)
	return r.db.WithContext(ctx).Create(model).Error
}

// InsertBatch persists movements in one batch call
func (r *GormStockMovementRepository) InsertBatch(ctx context.Context, movements []*ledger.StockMovement) error {
	if len(movements) == 0 {
		return nil
	}
	rows := make([]models.StockMovementModel, len(movements))
	for i, movement := range movements {
		rows[i] = *models.StockMovementModelFromDomain(movement)
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}

// ListBySeller returns movements for one seller (or all sellers when
// sellerCode is empty), optionally bounded by an occurred-at cutoff
func (r *GormStockMovementRepository) ListBySeller(ctx context.Context, sellerCode string, cutoff *time.Time) ([]ledger.StockMovement, error) {
	query := r.db.WithContext(ctx).Model(&models.StockMovementModel{})
	if sellerCode != "" {
		query = query.Where("seller_code = ?", sellerCode)
	}
	if cutoff != nil {
		query = query.Where("occurred_at <= ?", *cutoff)
	}

	var rows []models.StockMovementModel
	if err := query.Order("occurred_at").Find(&rows).Error; err != nil {
		return nil, err
	}
	movements := make([]ledger.StockMovement, len(rows))
	for i := range rows {
		movements[i] = *rows[i].ToDomain()
	}
	return movements, nil
}

var _ ledger.StockMovementRepository = (*GormStockMovementRepository)(nil)
