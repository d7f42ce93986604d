package stock

import (
	"context"
	"fmt"

	"github.com/opticore/backend/internal/domain/ledger"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// RecordMovementInput carries a manual ledger entry. For fixed-sign kinds
// Quantity is a magnitude; for ADJUSTMENT it is signed and taken as-is.
type RecordMovementInput struct {
	SellerCode    string
	AuxiliaryCode string
	Kind          ledger.EntryKind
	Quantity      decimal.Decimal
	Motive        string
}

// MovementService records ad-hoc stock movements outside the order flow
type MovementService struct {
	movementRepo ledger.StockMovementRepository
	logger       *zap.Logger
}

// NewMovementService creates a new MovementService
func NewMovementService(movementRepo ledger.StockMovementRepository, logger *zap.Logger) *MovementService {
	return &MovementService{
		movementRepo: movementRepo,
		logger:       logger,
	}
}

// RecordMovement validates and persists one manual movement. Sign handling
// lives in the constructors: a contradicting sign on a fixed-sign kind is
// rejected, an adjustment keeps the caller's sign.
func (s *MovementService) RecordMovement(ctx context.Context, input RecordMovementInput) (*ledger.StockMovement, error) {
	var movement *ledger.StockMovement
	var err error
	if input.Kind == ledger.EntryKindAdjustment {
		movement, err = ledger.NewAdjustmentMovement(input.SellerCode, input.AuxiliaryCode, input.Quantity, input.Motive, nil)
	} else {
		movement, err = ledger.NewStockMovement(input.SellerCode, input.AuxiliaryCode, input.Kind, input.Quantity, input.Motive)
	}
	if err != nil {
		return nil, err
	}

	if err := s.movementRepo.Insert(ctx, movement); err != nil {
		return nil, fmt.Errorf("record movement: %w", err)
	}

	s.logger.Info("recorded stock movement",
		zap.String("seller_code", movement.SellerCode),
		zap.String("auxiliary_code", movement.AuxiliaryCode),
		zap.String("kind", string(movement.Kind)),
		zap.String("quantity", movement.Quantity.String()),
	)

	return movement, nil
}
