package models

import (
	"github.com/opticore/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// ProductModel is the persistence model for the Product domain entity.
type ProductModel struct {
	AggregateModel
	AuxiliaryCode string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_products_auxiliary_code"`
	Name          string          `gorm:"type:varchar(200);not null"`
	UnitValue     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product entity.
func (m *ProductModel) ToDomain() *catalog.Product {
	return &catalog.Product{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		AuxiliaryCode:     m.AuxiliaryCode,
		Name:              m.Name,
		UnitValue:         m.UnitValue,
	}
}

// FromDomain populates the persistence model from a domain Product entity.
func (m *ProductModel) FromDomain(p *catalog.Product) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.AuxiliaryCode = p.AuxiliaryCode
	m.Name = p.Name
	m.UnitValue = p.UnitValue
}

// ProductModelFromDomain creates a new persistence model from a domain Product entity.
func ProductModelFromDomain(p *catalog.Product) *ProductModel {
	m := &ProductModel{}
	m.FromDomain(p)
	return m
}
