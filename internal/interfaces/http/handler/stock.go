package handler

import (
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/opticore/backend/internal/domain/ledger"
	"github.com/shopspring/decimal"

	reconapp "github.com/opticore/backend/internal/application/reconciliation"
	stockapp "github.com/opticore/backend/internal/application/stock"
)

// StockHandler exposes the theoretical-stock dashboard, the real-stock
// snapshot view and manual movement entry.
type StockHandler struct {
	BaseHandler
	aggregator      *stockapp.AggregatorService
	movementService *stockapp.MovementService
	snapshotService *reconapp.SnapshotService
}

// NewStockHandler creates a new StockHandler
func NewStockHandler(
	aggregator *stockapp.AggregatorService,
	movementService *stockapp.MovementService,
	snapshotService *reconapp.SnapshotService,
) *StockHandler {
	return &StockHandler{
		aggregator:      aggregator,
		movementService: movementService,
		snapshotService: snapshotService,
	}
}

// TheoreticalStockQuery binds the dashboard query string
type TheoreticalStockQuery struct {
	SellerCode  string `form:"seller_code"`
	Cutoff      string `form:"cutoff"`
	IncludeZero bool   `form:"include_zero"`
}

// RecordMovementRequest binds a manual ledger entry
type RecordMovementRequest struct {
	SellerCode    string          `json:"seller_code" binding:"required"`
	AuxiliaryCode string          `json:"auxiliary_code" binding:"required"`
	Kind          string          `json:"kind" binding:"required,oneof=CLIENT_RETURN COMPANY_RETURN LOSS ADJUSTMENT"`
	Quantity      decimal.Decimal `json:"quantity" binding:"required"`
	Motive        string          `json:"motive"`
}

// MovementResponse is the created movement echoed back to the caller
type MovementResponse struct {
	ID            string          `json:"id"`
	SellerCode    string          `json:"seller_code"`
	AuxiliaryCode string          `json:"auxiliary_code"`
	Kind          string          `json:"kind"`
	Quantity      decimal.Decimal `json:"quantity"`
	Motive        string          `json:"motive,omitempty"`
	OccurredAt    time.Time       `json:"occurred_at"`
}

// GetTheoreticalStock handles GET /stock/theoretical. Non-moving codes are
// hidden unless include_zero=true; the totals map is flattened into a slice
// ordered by auxiliary code for stable output.
func (h *StockHandler) GetTheoreticalStock(c *gin.Context) {
	var query TheoreticalStockQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	opts := stockapp.AggregateOptions{IncludeZero: query.IncludeZero}
	if query.Cutoff != "" {
		cutoff, err := parseDateTime(query.Cutoff)
		if err != nil {
			h.BadRequest(c, "Invalid cutoff: "+query.Cutoff)
			return
		}
		opts.Cutoff = &cutoff
	}

	totals, err := h.aggregator.AggregateTheoreticalStock(c.Request.Context(), query.SellerCode, opts)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	rows := make([]stockapp.ProductTotals, 0, len(totals))
	for _, t := range totals {
		rows = append(rows, t)
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].AuxiliaryCode < rows[j].AuxiliaryCode
	})

	h.Success(c, gin.H{
		"seller_code": query.SellerCode,
		"products":    rows,
	})
}

// GetSellerSnapshot handles GET /stock/snapshots/:seller_code, the
// "estoque real" view left by the seller's last approved inventory
func (h *StockHandler) GetSellerSnapshot(c *gin.Context) {
	sellerCode := c.Param("seller_code")
	if sellerCode == "" {
		h.BadRequest(c, "Seller code is required")
		return
	}

	snapshots, err := h.snapshotService.ListSellerSnapshot(c.Request.Context(), sellerCode)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{
		"seller_code": sellerCode,
		"items":       reconapp.ToSnapshotRows(snapshots),
	})
}

// RecordMovement handles POST /stock/movements
func (h *StockHandler) RecordMovement(c *gin.Context) {
	var req RecordMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	movement, err := h.movementService.RecordMovement(c.Request.Context(), stockapp.RecordMovementInput{
		SellerCode:    req.SellerCode,
		AuxiliaryCode: req.AuxiliaryCode,
		Kind:          ledger.EntryKind(req.Kind),
		Quantity:      req.Quantity,
		Motive:        req.Motive,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, MovementResponse{
		ID:            movement.ID.String(),
		SellerCode:    movement.SellerCode,
		AuxiliaryCode: movement.AuxiliaryCode,
		Kind:          movement.Kind.String(),
		Quantity:      movement.Quantity,
		Motive:        movement.Motive,
		OccurredAt:    movement.OccurredAt,
	})
}

// RegisterRoutes registers stock routes
func (h *StockHandler) RegisterRoutes(rg *gin.RouterGroup) {
	stock := rg.Group("/stock")
	{
		stock.GET("/theoretical", h.GetTheoreticalStock)
		stock.GET("/snapshots/:seller_code", h.GetSellerSnapshot)
		stock.POST("/movements", h.RecordMovement)
	}
}

// parseDateTime parses a datetime string in the accepted formats
func parseDateTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", s)
}
