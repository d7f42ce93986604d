package catalog

import (
	"strings"

	"github.com/opticore/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Product represents an eyewear model in the catalog, keyed by its
// auxiliary code (the code printed on the product tag and used on order
// spreadsheets). Products are upserted by catalog maintenance and by the
// bulk import; the reconciliation engine never deletes them.
type Product struct {
	shared.BaseAggregateRoot
	AuxiliaryCode string
	Name          string
	UnitValue     decimal.Decimal
}

// NewProduct creates a new product
func NewProduct(auxiliaryCode, name string, unitValue decimal.Decimal) (*Product, error) {
	auxiliaryCode = strings.TrimSpace(auxiliaryCode)
	if auxiliaryCode == "" {
		return nil, shared.NewDomainError("INVALID_AUXILIARY_CODE", "Auxiliary code cannot be empty")
	}
	if unitValue.IsNegative() {
		return nil, shared.NewDomainError("INVALID_UNIT_VALUE", "Unit value cannot be negative")
	}

	return &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		AuxiliaryCode:     auxiliaryCode,
		Name:              strings.TrimSpace(name),
		UnitValue:         unitValue,
	}, nil
}

// Update updates the product metadata
func (p *Product) Update(name string, unitValue decimal.Decimal) error {
	if unitValue.IsNegative() {
		return shared.NewDomainError("INVALID_UNIT_VALUE", "Unit value cannot be negative")
	}
	p.Name = strings.TrimSpace(name)
	p.UnitValue = unitValue
	p.IncrementVersion()
	return nil
}
