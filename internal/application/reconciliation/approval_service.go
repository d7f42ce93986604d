package reconciliation

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/opticore/backend/internal/domain/ledger"
	domain "github.com/opticore/backend/internal/domain/reconciliation"
	"github.com/opticore/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ApprovalService drives the manager side of the inventory workflow:
// approving a submission or sending it back for revision.
//
// Approval is the only write path that turns a count into stock. Three
// writes happen inside one transaction: the synthesized adjustment
// movements, the guarded status flip and the snapshot replacement. If any
// of them fails, none of them happened.
type ApprovalService struct {
	inventoryRepo  domain.InventoryRepository
	comparator     *ComparatorService
	scope          TransactionScope
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewApprovalService creates a new ApprovalService
func NewApprovalService(
	inventoryRepo domain.InventoryRepository,
	comparator *ComparatorService,
	scope TransactionScope,
	eventPublisher shared.EventPublisher,
	logger *zap.Logger,
) *ApprovalService {
	return &ApprovalService{
		inventoryRepo:  inventoryRepo,
		comparator:     comparator,
		scope:          scope,
		eventPublisher: eventPublisher,
		logger:         logger,
	}
}

// Approve turns an inventory into the seller's real stock. The divergence
// report is recomputed at approval time rather than trusted from an earlier
// comparison, so the adjustments always reflect the ledger as it stands.
func (s *ApprovalService) Approve(ctx context.Context, inventoryID uuid.UUID, approvedBy string) (*ApprovalResult, error) {
	inv, err := s.inventoryRepo.FindByID(ctx, inventoryID)
	if err != nil {
		return nil, fmt.Errorf("approve inventory: load inventory: %w", err)
	}

	// Validate the transition on the aggregate before touching the store.
	// The guarded update below re-checks under the transaction; this check
	// just fails fast with the precise domain error.
	if err := inv.Approve(approvedBy); err != nil {
		return nil, err
	}

	report, err := s.comparator.CompareInventory(ctx, inventoryID)
	if err != nil {
		return nil, fmt.Errorf("approve inventory: %w", err)
	}

	adjustments, err := s.buildAdjustments(inv, report)
	if err != nil {
		return nil, err
	}
	snapshots := s.buildSnapshots(inv)

	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		if len(adjustments) > 0 {
			if err := repos.MovementRepo().InsertBatch(ctx, adjustments); err != nil {
				return fmt.Errorf("insert adjustment movements: %w", err)
			}
		}

		updated, err := repos.InventoryRepo().UpdateStatusGuarded(ctx, inv.ID,
			[]domain.InventoryStatus{domain.InventoryStatusPending, domain.InventoryStatusInReview},
			domain.InventoryStatusApproved, inv.ManagerNotes, approvedBy)
		if err != nil {
			return fmt.Errorf("update inventory status: %w", err)
		}
		if !updated {
			// Someone else flipped the status between our read and this
			// update. Rolling back discards the adjustments too.
			return shared.ErrInvalidState
		}

		if err := repos.SnapshotRepo().ReplaceForSeller(ctx, inv.SellerCode, snapshots); err != nil {
			return fmt.Errorf("replace stock snapshots: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("approve inventory: %w", err)
	}

	if err := s.eventPublisher.Publish(ctx, inv.GetDomainEvents()...); err != nil {
		// The approval committed; a publish failure must not undo it.
		s.logger.Error("failed to publish inventory approved event",
			zap.String("inventory_id", inv.ID.String()),
			zap.Error(err),
		)
	}
	inv.ClearDomainEvents()

	s.logger.Info("inventory approved",
		zap.String("inventory_id", inv.ID.String()),
		zap.String("seller_code", inv.SellerCode),
		zap.String("approved_by", approvedBy),
		zap.Int("adjustments", len(adjustments)),
		zap.Int("snapshot_rows", len(snapshots)),
	)

	return &ApprovalResult{
		InventoryID:        inv.ID,
		SellerCode:         inv.SellerCode,
		AdjustmentsCreated: len(adjustments),
		SnapshotRows:       len(snapshots),
	}, nil
}

// RequestRevision sends a submission back to the seller with a manager note
func (s *ApprovalService) RequestRevision(ctx context.Context, inventoryID uuid.UUID, requestedBy, note string) error {
	inv, err := s.inventoryRepo.FindByID(ctx, inventoryID)
	if err != nil {
		return fmt.Errorf("request revision: load inventory: %w", err)
	}

	if err := inv.RequestRevision(requestedBy, note); err != nil {
		return err
	}

	updated, err := s.inventoryRepo.UpdateStatusGuarded(ctx, inv.ID,
		[]domain.InventoryStatus{domain.InventoryStatusPending, domain.InventoryStatusInReview},
		domain.InventoryStatusInReview, inv.ManagerNotes, "")
	if err != nil {
		return fmt.Errorf("request revision: update inventory status: %w", err)
	}
	if !updated {
		return shared.ErrInvalidState
	}

	if err := s.eventPublisher.Publish(ctx, inv.GetDomainEvents()...); err != nil {
		s.logger.Error("failed to publish revision requested event",
			zap.String("inventory_id", inv.ID.String()),
			zap.Error(err),
		)
	}
	inv.ClearDomainEvents()

	s.logger.Info("inventory revision requested",
		zap.String("inventory_id", inv.ID.String()),
		zap.String("seller_code", inv.SellerCode),
		zap.String("requested_by", requestedBy),
	)

	return nil
}

// buildAdjustments synthesizes one adjustment movement per nonzero
// divergence line, carrying the divergence sign as-is and referencing the
// inventory as origin.
func (s *ApprovalService) buildAdjustments(inv *domain.Inventory, report *domain.DivergenceReport) ([]*ledger.StockMovement, error) {
	lines := report.NonzeroLines()
	adjustments := make([]*ledger.StockMovement, 0, len(lines))
	for _, line := range lines {
		origin := inv.ID
		movement, err := ledger.NewAdjustmentMovement(inv.SellerCode, line.AuxiliaryCode,
			line.Divergence, ledger.MotiveInventoryApproval, &origin)
		if err != nil {
			return nil, fmt.Errorf("approve inventory: build adjustment for %s: %w", line.AuxiliaryCode, err)
		}
		adjustments = append(adjustments, movement)
	}
	return adjustments, nil
}

// buildSnapshots converts the counted items into the seller's replacement
// snapshot rows, dated at the submission instant.
func (s *ApprovalService) buildSnapshots(inv *domain.Inventory) []domain.StockSnapshot {
	snapshots := make([]domain.StockSnapshot, 0, len(inv.Items))
	for _, item := range inv.Items {
		snapshots = append(snapshots, *domain.NewStockSnapshot(
			inv.SellerCode, item.AuxiliaryCode, item.CountedQuantity, inv.SubmittedAt, inv.ID))
	}
	return snapshots
}
