package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/opticore/backend/internal/domain/reconciliation"
	"github.com/opticore/backend/internal/domain/shared"
	"github.com/opticore/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormInventoryRepository implements reconciliation.InventoryRepository using GORM
type GormInventoryRepository struct {
	db *gorm.DB
}

// NewGormInventoryRepository creates a new GormInventoryRepository
func NewGormInventoryRepository(db *gorm.DB) *GormInventoryRepository {
	return &GormInventoryRepository{db: db}
}

// FindByID loads an inventory with its counted items
func (r *GormInventoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*reconciliation.Inventory, error) {
	var model models.InventoryModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}

	var itemRows []models.InventoryItemModel
	if err := r.db.WithContext(ctx).
		Where("inventory_id = ?", id).
		Order("auxiliary_code").
		Find(&itemRows).Error; err != nil {
		return nil, err
	}

	inv := model.ToDomain()
	for _, row := range itemRows {
		inv.Items = append(inv.Items, row.ToDomain())
	}
	return inv, nil
}

// Save creates or updates an inventory with its items. A resubmission
// replaces the item set wholesale.
func (r *GormInventoryRepository) Save(ctx context.Context, inv *reconciliation.Inventory) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model := models.InventoryModelFromDomain(inv)
		if err := tx.Save(model).Error; err != nil {
			return err
		}
		if err := tx.Where("inventory_id = ?", inv.ID).
			Delete(&models.InventoryItemModel{}).Error; err != nil {
			return err
		}
		if len(inv.Items) == 0 {
			return nil
		}
		rows := make([]models.InventoryItemModel, len(inv.Items))
		for i, item := range inv.Items {
			rows[i] = *models.InventoryItemModelFromDomain(item)
		}
		return tx.Create(&rows).Error
	})
}

// UpdateStatusGuarded performs the conditional status update serializing
// concurrent transitions. Zero affected rows means a concurrent caller won
// or the state was stale; the caller maps that to InvalidState.
func (r *GormInventoryRepository) UpdateStatusGuarded(ctx context.Context, id uuid.UUID, allowed []reconciliation.InventoryStatus, target reconciliation.InventoryStatus, managerNotes string, approvedBy string) (bool, error) {
	allowedValues := make([]string, len(allowed))
	for i, status := range allowed {
		allowedValues[i] = string(status)
	}

	now := time.Now()
	updates := map[string]any{
		"status":        string(target),
		"manager_notes": managerNotes,
		"updated_at":    now,
	}
	if target == reconciliation.InventoryStatusApproved {
		updates["approved_at"] = now
		updates["approved_by"] = approvedBy
	}

	result := r.db.WithContext(ctx).
		Model(&models.InventoryModel{}).
		Where("id = ? AND status IN ?", id, allowedValues).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

var _ reconciliation.InventoryRepository = (*GormInventoryRepository)(nil)
