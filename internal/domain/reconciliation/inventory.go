package reconciliation

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/opticore/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// InventoryStatus represents the lifecycle state of a physical count submission
type InventoryStatus string

const (
	// InventoryStatusPending is a submission awaiting manager review
	InventoryStatusPending InventoryStatus = "PENDING"
	// InventoryStatusInReview is a submission sent back to the seller for correction
	InventoryStatusInReview InventoryStatus = "IN_REVIEW"
	// InventoryStatusApproved is the terminal state; the count became the stock snapshot
	InventoryStatusApproved InventoryStatus = "APPROVED"
)

// String returns the string representation of InventoryStatus
func (s InventoryStatus) String() string {
	return string(s)
}

// IsValid checks if the status is a valid InventoryStatus
func (s InventoryStatus) IsValid() bool {
	switch s {
	case InventoryStatusPending, InventoryStatusInReview, InventoryStatusApproved:
		return true
	}
	return false
}

// CanTransitionTo checks if the status can transition to the target status.
// PENDING and IN_REVIEW may cycle; APPROVED is terminal.
func (s InventoryStatus) CanTransitionTo(target InventoryStatus) bool {
	switch s {
	case InventoryStatusPending:
		return target == InventoryStatusInReview || target == InventoryStatusApproved
	case InventoryStatusInReview:
		return target == InventoryStatusPending || target == InventoryStatusInReview || target == InventoryStatusApproved
	case InventoryStatusApproved:
		return false
	}
	return false
}

// IsEditable reports whether the seller may still change the counted items
func (s InventoryStatus) IsEditable() bool {
	return s == InventoryStatusPending || s == InventoryStatusInReview
}

// InventoryItem is one counted product inside a submission: what the seller
// physically found on the shelf for that auxiliary code.
type InventoryItem struct {
	ID              uuid.UUID
	InventoryID     uuid.UUID
	AuxiliaryCode   string
	CountedQuantity decimal.Decimal
	CreatedAt       time.Time
}

// Inventory is a seller's physical count submission, the aggregate root of
// the approval workflow. Items are immutable after submission except by a
// seller-initiated resubmission while the status is still editable.
type Inventory struct {
	shared.BaseAggregateRoot
	SellerCode   string
	SubmittedAt  time.Time
	Status       InventoryStatus
	ManagerNotes string
	ApprovedAt   *time.Time
	ApprovedBy   string
	Items        []InventoryItem
}

// NewInventory creates a new pending inventory submission
func NewInventory(sellerCode string, submittedAt time.Time) (*Inventory, error) {
	sellerCode = strings.TrimSpace(sellerCode)
	if sellerCode == "" {
		return nil, shared.NewDomainError("INVALID_SELLER_CODE", "Seller code cannot be empty")
	}

	return &Inventory{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SellerCode:        sellerCode,
		SubmittedAt:       submittedAt,
		Status:            InventoryStatusPending,
		Items:             make([]InventoryItem, 0),
	}, nil
}

// AddItem records a counted product. Counting zero is meaningful (the
// seller looked and found none) and is distinct from not counting at all.
func (inv *Inventory) AddItem(auxiliaryCode string, countedQuantity decimal.Decimal) error {
	if !inv.Status.IsEditable() {
		return shared.NewDomainError("INVALID_STATUS", "Items can only change while the inventory is editable")
	}
	auxiliaryCode = strings.TrimSpace(auxiliaryCode)
	if auxiliaryCode == "" {
		return shared.NewDomainError("INVALID_AUXILIARY_CODE", "Auxiliary code cannot be empty")
	}
	if countedQuantity.IsNegative() {
		return shared.NewDomainError("INVALID_QUANTITY", "Counted quantity cannot be negative")
	}
	for _, item := range inv.Items {
		if item.AuxiliaryCode == auxiliaryCode {
			return shared.NewDomainError("DUPLICATE_PRODUCT", "Product already counted in this inventory")
		}
	}

	inv.Items = append(inv.Items, InventoryItem{
		ID:              uuid.New(),
		InventoryID:     inv.ID,
		AuxiliaryCode:   auxiliaryCode,
		CountedQuantity: countedQuantity,
		CreatedAt:       time.Now(),
	})
	inv.UpdatedAt = time.Now()
	return nil
}

// Approve transitions the inventory to its terminal state
func (inv *Inventory) Approve(approvedBy string) error {
	if !inv.Status.CanTransitionTo(InventoryStatusApproved) {
		return shared.NewDomainError("INVALID_TRANSITION",
			fmt.Sprintf("Cannot transition from %s to APPROVED", inv.Status))
	}
	if len(inv.Items) == 0 {
		return shared.NewDomainError("EMPTY_INVENTORY", "Cannot approve an inventory with no counted items")
	}

	now := time.Now()
	inv.Status = InventoryStatusApproved
	inv.ApprovedAt = &now
	inv.ApprovedBy = approvedBy
	inv.UpdatedAt = now
	inv.IncrementVersion()

	inv.AddDomainEvent(NewInventoryApprovedEvent(inv))

	return nil
}

// RequestRevision sends the submission back to the seller with a note.
// The note is a hard business requirement, not a formality.
func (inv *Inventory) RequestRevision(requestedBy, note string) error {
	if !inv.Status.CanTransitionTo(InventoryStatusInReview) {
		return shared.NewDomainError("INVALID_TRANSITION",
			fmt.Sprintf("Cannot transition from %s to IN_REVIEW", inv.Status))
	}
	note = strings.TrimSpace(note)
	if note == "" {
		return shared.NewDomainError("EMPTY_MANAGER_NOTE", "A revision request requires a manager note")
	}

	inv.Status = InventoryStatusInReview
	inv.ManagerNotes = note
	inv.UpdatedAt = time.Now()
	inv.IncrementVersion()

	inv.AddDomainEvent(NewInventoryRevisionRequestedEvent(inv, requestedBy))

	return nil
}

// CountedCodes returns the set of auxiliary codes present in the submission
func (inv *Inventory) CountedCodes() map[string]struct{} {
	codes := make(map[string]struct{}, len(inv.Items))
	for _, item := range inv.Items {
		codes[item.AuxiliaryCode] = struct{}{}
	}
	return codes
}
