package catalog

import (
	"context"
)

// ProductRepository defines persistence operations for products
type ProductRepository interface {
	// FindByAuxiliaryCode finds a product by its auxiliary code
	FindByAuxiliaryCode(ctx context.Context, auxiliaryCode string) (*Product, error)
	// FindByAuxiliaryCodes finds products for a set of auxiliary codes
	FindByAuxiliaryCodes(ctx context.Context, auxiliaryCodes []string) ([]Product, error)
	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error
	// UpsertBatch inserts or updates products keyed by auxiliary code.
	// The operation is idempotent: re-running it with the same set is a no-op
	// beyond refreshing name and unit value.
	UpsertBatch(ctx context.Context, products []Product) error
}
