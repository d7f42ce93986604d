package persistence

import (
	"context"
	"errors"

	"github.com/opticore/backend/internal/domain/catalog"
	"github.com/opticore/backend/internal/domain/shared"
	"github.com/opticore/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormProductRepository implements catalog.ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByAuxiliaryCode finds a product by its auxiliary code
func (r *GormProductRepository) FindByAuxiliaryCode(ctx context.Context, auxiliaryCode string) (*catalog.Product, error) {
	var model models.ProductModel
	if err := r.db.WithContext(ctx).
		Where("auxiliary_code = ?", auxiliaryCode).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByAuxiliaryCodes finds products for a set of auxiliary codes. Codes
// without a product are simply absent from the result.
func (r *GormProductRepository) FindByAuxiliaryCodes(ctx context.Context, auxiliaryCodes []string) ([]catalog.Product, error) {
	if len(auxiliaryCodes) == 0 {
		return []catalog.Product{}, nil
	}
	var rows []models.ProductModel
	if err := r.db.WithContext(ctx).
		Where("auxiliary_code IN ?", auxiliaryCodes).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	products := make([]catalog.Product, len(rows))
	for i := range rows {
		products[i] = *rows[i].ToDomain()
	}
	return products, nil
}

// Save creates or updates a product
func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	model := models.ProductModelFromDomain(product)
	return r.db.WithContext(ctx).Save(model).Error
}

// UpsertBatch inserts or updates products keyed by auxiliary code. The
// conflict target is the unique index; name and unit value are refreshed,
// the original id and created_at stay.
func (r *GormProductRepository) UpsertBatch(ctx context.Context, products []catalog.Product) error {
	if len(products) == 0 {
		return nil
	}
	rows := make([]models.ProductModel, len(products))
	for i := range products {
		rows[i] = *models.ProductModelFromDomain(&products[i])
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "auxiliary_code"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "unit_value", "updated_at"}),
		}).
		Create(&rows).Error
}

var _ catalog.ProductRepository = (*GormProductRepository)(nil)
