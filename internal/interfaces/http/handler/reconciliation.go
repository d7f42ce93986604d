package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	reconapp "github.com/opticore/backend/internal/application/reconciliation"
)

// ReconciliationHandler exposes the divergence comparison and the approval
// workflow over HTTP. The services own the semantics; this layer only binds
// and translates errors.
type ReconciliationHandler struct {
	BaseHandler
	comparator      *reconapp.ComparatorService
	approvalService *reconapp.ApprovalService
}

// NewReconciliationHandler creates a new ReconciliationHandler
func NewReconciliationHandler(
	comparator *reconapp.ComparatorService,
	approvalService *reconapp.ApprovalService,
) *ReconciliationHandler {
	return &ReconciliationHandler{
		comparator:      comparator,
		approvalService: approvalService,
	}
}

// ApproveRequest binds an approval call
type ApproveRequest struct {
	ApprovedBy string `json:"approved_by" binding:"required"`
}

// RequestRevisionRequest binds a revision request
type RequestRevisionRequest struct {
	RequestedBy string `json:"requested_by" binding:"required"`
	Note        string `json:"note"`
}

// inventoryID binds and parses the :id path parameter
func (h *ReconciliationHandler) inventoryID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid inventory ID")
		return uuid.Nil, false
	}
	return id, true
}

// GetDivergences handles GET /inventories/:id/divergences
func (h *ReconciliationHandler) GetDivergences(c *gin.Context) {
	id, ok := h.inventoryID(c)
	if !ok {
		return
	}

	report, err := h.comparator.CompareInventory(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, report)
}

// Approve handles POST /inventories/:id/approve
func (h *ReconciliationHandler) Approve(c *gin.Context) {
	id, ok := h.inventoryID(c)
	if !ok {
		return
	}

	var req ApproveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.approvalService.Approve(c.Request.Context(), id, req.ApprovedBy)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// RequestRevision handles POST /inventories/:id/request-revision
func (h *ReconciliationHandler) RequestRevision(c *gin.Context) {
	id, ok := h.inventoryID(c)
	if !ok {
		return
	}

	var req RequestRevisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	if err := h.approvalService.RequestRevision(c.Request.Context(), id, req.RequestedBy, req.Note); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"inventory_id": id, "status": "IN_REVIEW"})
}

// RegisterRoutes registers reconciliation routes
func (h *ReconciliationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	inventories := rg.Group("/inventories")
	{
		inventories.GET(":id/divergences", h.GetDivergences)
		inventories.POST(":id/approve", h.Approve)
		inventories.POST(":id/request-revision", h.RequestRevision)
	}
}
