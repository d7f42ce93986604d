package reconciliation

import (
	"context"
	"fmt"

	domain "github.com/opticore/backend/internal/domain/reconciliation"
	"go.uber.org/zap"
)

// SnapshotService reads the real-stock snapshot left behind by the last
// approved inventory of a seller.
type SnapshotService struct {
	snapshotRepo domain.StockSnapshotRepository
	logger       *zap.Logger
}

// NewSnapshotService creates a new SnapshotService
func NewSnapshotService(snapshotRepo domain.StockSnapshotRepository, logger *zap.Logger) *SnapshotService {
	return &SnapshotService{
		snapshotRepo: snapshotRepo,
		logger:       logger,
	}
}

// ListSellerSnapshot returns the seller's current snapshot rows ordered by
// auxiliary code. An empty result means no inventory was ever approved.
func (s *SnapshotService) ListSellerSnapshot(ctx context.Context, sellerCode string) ([]domain.StockSnapshot, error) {
	rows, err := s.snapshotRepo.ListBySeller(ctx, sellerCode)
	if err != nil {
		return nil, fmt.Errorf("list seller snapshot: %w", err)
	}
	return rows, nil
}
