package stock

import (
	"context"
	"fmt"

	"github.com/opticore/backend/internal/domain/ledger"
	"go.uber.org/zap"
)

// AggregatorService derives theoretical stock from the ledger: order line
// items and ad-hoc stock movements folded per auxiliary code. Every call
// re-derives the totals from the store; there is no ambient cache.
type AggregatorService struct {
	orderRepo    ledger.OrderRepository
	movementRepo ledger.StockMovementRepository
	logger       *zap.Logger
}

// NewAggregatorService creates a new AggregatorService
func NewAggregatorService(
	orderRepo ledger.OrderRepository,
	movementRepo ledger.StockMovementRepository,
	logger *zap.Logger,
) *AggregatorService {
	return &AggregatorService{
		orderRepo:    orderRepo,
		movementRepo: movementRepo,
		logger:       logger,
	}
}

type accumulator struct {
	totals       ProductTotals
	hasMovements bool
}

// AggregateTheoreticalStock folds the seller's ledger into per-product
// totals. An empty sellerCode aggregates across all sellers. The two scans
// are independent and all-or-nothing: a persistence error on either aborts
// the whole call with no partial result.
func (s *AggregatorService) AggregateTheoreticalStock(ctx context.Context, sellerCode string, opts AggregateOptions) (map[string]ProductTotals, error) {
	lines, err := s.orderRepo.ListLines(ctx, sellerCode, opts.Cutoff)
	if err != nil {
		return nil, fmt.Errorf("aggregate theoretical stock: scan order lines: %w", err)
	}

	movements, err := s.movementRepo.ListBySeller(ctx, sellerCode, opts.Cutoff)
	if err != nil {
		return nil, fmt.Errorf("aggregate theoretical stock: scan stock movements: %w", err)
	}

	acc := make(map[string]*accumulator)
	get := func(code string) *accumulator {
		a, ok := acc[code]
		if !ok {
			a = &accumulator{totals: ProductTotals{AuxiliaryCode: code}}
			acc[code] = a
		}
		return a
	}

	for _, line := range lines {
		a := get(line.AuxiliaryCode)
		signed := line.SignedQuantity()
		if signed.Sign() >= 0 {
			a.totals.ShippedQty = a.totals.ShippedQty.Add(signed)
		} else {
			a.totals.SoldQty = a.totals.SoldQty.Add(signed.Neg())
		}
	}

	for _, m := range movements {
		a := get(m.AuxiliaryCode)
		a.totals.MovementQty = a.totals.MovementQty.Add(m.SignedQuantity())
		a.hasMovements = true
	}

	result := make(map[string]ProductTotals, len(acc))
	for code, a := range acc {
		a.totals.TheoreticalQty = a.totals.ShippedQty.Sub(a.totals.SoldQty).Add(a.totals.MovementQty)
		if !opts.IncludeZero && a.totals.TheoreticalQty.IsZero() && !a.hasMovements {
			continue
		}
		result[code] = a.totals
	}

	s.logger.Debug("aggregated theoretical stock",
		zap.String("seller_code", sellerCode),
		zap.Int("order_lines", len(lines)),
		zap.Int("movements", len(movements)),
		zap.Int("products", len(result)),
	)

	return result, nil
}
