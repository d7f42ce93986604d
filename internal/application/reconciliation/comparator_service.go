package reconciliation

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/opticore/backend/internal/application/stock"
	"github.com/opticore/backend/internal/domain/catalog"
	domain "github.com/opticore/backend/internal/domain/reconciliation"
	"go.uber.org/zap"
)

// ComparatorService joins a physical count against the ledger-derived
// theoretical stock and produces the divergence report managers review
// before approving.
type ComparatorService struct {
	inventoryRepo domain.InventoryRepository
	productRepo   catalog.ProductRepository
	aggregator    *stock.AggregatorService
	logger        *zap.Logger
}

// NewComparatorService creates a new ComparatorService
func NewComparatorService(
	inventoryRepo domain.InventoryRepository,
	productRepo catalog.ProductRepository,
	aggregator *stock.AggregatorService,
	logger *zap.Logger,
) *ComparatorService {
	return &ComparatorService{
		inventoryRepo: inventoryRepo,
		productRepo:   productRepo,
		aggregator:    aggregator,
		logger:        logger,
	}
}

// CompareInventory builds the divergence report for one submission. The
// aggregation is cut off at the submission instant so ledger rows imported
// after the seller counted do not shift the comparison, and zero-theoretical
// products are kept because a count against zero is itself a divergence.
func (s *ComparatorService) CompareInventory(ctx context.Context, inventoryID uuid.UUID) (*domain.DivergenceReport, error) {
	inv, err := s.inventoryRepo.FindByID(ctx, inventoryID)
	if err != nil {
		return nil, fmt.Errorf("compare inventory: load inventory: %w", err)
	}

	theoretical, err := s.theoreticalFor(ctx, inv)
	if err != nil {
		return nil, err
	}

	report := domain.BuildDivergenceReport(inv, theoretical)

	s.logger.Debug("compared inventory",
		zap.String("inventory_id", inv.ID.String()),
		zap.String("seller_code", inv.SellerCode),
		zap.Int("lines", len(report.Lines)),
		zap.Int("uncounted", len(report.Uncounted)),
	)

	return report, nil
}

// theoreticalFor aggregates the seller's ledger as of the submission and
// decorates the totals with product names for display.
func (s *ComparatorService) theoreticalFor(ctx context.Context, inv *domain.Inventory) (map[string]domain.TheoreticalItem, error) {
	cutoff := inv.SubmittedAt
	totals, err := s.aggregator.AggregateTheoreticalStock(ctx, inv.SellerCode, stock.AggregateOptions{
		Cutoff:      &cutoff,
		IncludeZero: true,
	})
	if err != nil {
		return nil, fmt.Errorf("compare inventory: %w", err)
	}

	codes := make([]string, 0, len(totals))
	for code := range totals {
		codes = append(codes, code)
	}
	names := make(map[string]string, len(codes))
	if len(codes) > 0 {
		products, err := s.productRepo.FindByAuxiliaryCodes(ctx, codes)
		if err != nil {
			return nil, fmt.Errorf("compare inventory: load product names: %w", err)
		}
		for _, p := range products {
			names[p.AuxiliaryCode] = p.Name
		}
	}

	theoretical := make(map[string]domain.TheoreticalItem, len(totals))
	for code, t := range totals {
		theoretical[code] = domain.TheoreticalItem{
			AuxiliaryCode:  code,
			ProductName:    names[code],
			ShippedQty:     t.ShippedQty,
			SoldQty:        t.SoldQty,
			TheoreticalQty: t.TheoreticalQty,
		}
	}
	return theoretical, nil
}
