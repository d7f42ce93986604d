package reconciliation

import (
	"github.com/opticore/backend/internal/domain/shared"
)

// Event types for the reconciliation domain
const (
	EventTypeInventoryApproved          = "reconciliation.inventory.approved"
	EventTypeInventoryRevisionRequested = "reconciliation.inventory.revision_requested"
)

// InventoryApprovedEvent is raised when a physical count becomes the
// seller's stock snapshot.
type InventoryApprovedEvent struct {
	shared.BaseDomainEvent
	SellerCode string `json:"seller_code"`
	ItemCount  int    `json:"item_count"`
	ApprovedBy string `json:"approved_by"`
}

// NewInventoryApprovedEvent creates a new InventoryApprovedEvent
func NewInventoryApprovedEvent(inv *Inventory) *InventoryApprovedEvent {
	return &InventoryApprovedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInventoryApproved, "Inventory", inv.ID),
		SellerCode:      inv.SellerCode,
		ItemCount:       len(inv.Items),
		ApprovedBy:      inv.ApprovedBy,
	}
}

// InventoryRevisionRequestedEvent is raised when a manager sends a
// submission back to the seller.
type InventoryRevisionRequestedEvent struct {
	shared.BaseDomainEvent
	SellerCode  string `json:"seller_code"`
	RequestedBy string `json:"requested_by"`
	Note        string `json:"note"`
}

// NewInventoryRevisionRequestedEvent creates a new InventoryRevisionRequestedEvent
func NewInventoryRevisionRequestedEvent(inv *Inventory, requestedBy string) *InventoryRevisionRequestedEvent {
	return &InventoryRevisionRequestedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInventoryRevisionRequested, "Inventory", inv.ID),
		SellerCode:      inv.SellerCode,
		RequestedBy:     requestedBy,
		Note:            inv.ManagerNotes,
	}
}
