package importer

import (
	"time"

	"github.com/opticore/backend/internal/domain/catalog"
	"github.com/opticore/backend/internal/domain/ledger"
	"github.com/opticore/backend/internal/infrastructure/spreadsheet"
	"github.com/shopspring/decimal"
)

// Spreadsheet column headers. The files come from the billing system of a
// Brazilian distributor; the headers are its export names and are part of
// the interchange contract.
const (
	ColAuxiliaryCode = "codigo_auxiliar"
	ColProductCode   = "codigo_produto"
	ColOrderNumber   = "numero_pedido"
	ColSellerCode    = "codigo_vendedor"
	ColMovementKind  = "tipo_movimento"
	ColQuantity      = "quantidade"
	ColUnitValue     = "valor_unitario"
	ColProductName   = "descricao_produto"
	ColIssueDate     = "data_emissao"
)

// ItemLine is one accepted spreadsheet row reduced to its order-item fields
type ItemLine struct {
	LineNumber    int             `json:"line_number"`
	AuxiliaryCode string          `json:"auxiliary_code"`
	Quantity      decimal.Decimal `json:"quantity"`
	UnitValue     decimal.Decimal `json:"unit_value"`
}

// OrderGroup is the rows of one (order_number, movement_kind) pair folded
// into a single order-to-be. Seller and issue date come from the group's
// first row.
type OrderGroup struct {
	Key        ledger.OrderKey `json:"key"`
	SellerCode string          `json:"seller_code"`
	IssueDate  time.Time       `json:"issue_date"`
	Lines      []ItemLine      `json:"lines"`
}

// ValidationResult is the outcome of ValidateBatch. Field errors and
// duplicates are classifications carried in the result, not Go errors; only
// a result with IsValid true may be handed to CommitBatch.
type ValidationResult struct {
	IsValid            bool                   `json:"is_valid"`
	FieldErrors        []spreadsheet.RowError `json:"field_errors,omitempty"`
	TotalFieldErrors   int                    `json:"total_field_errors"`
	ErrorsTruncated    bool                   `json:"errors_truncated,omitempty"`
	DuplicateKeys      []ledger.OrderKey      `json:"duplicate_keys,omitempty"`
	AcceptedOrderCount int                    `json:"accepted_order_count"`
	ProductsSeenCount  int                    `json:"products_seen_count"`
	GroupedOrders      []OrderGroup           `json:"grouped_orders"`
	GroupedProducts    []catalog.Product      `json:"grouped_products"`
}

// AllDuplicates reports the "nothing new to import" state: every group in
// the batch already exists. Callers must present this differently from a
// batch with field errors.
func (r *ValidationResult) AllDuplicates() bool {
	return r.TotalFieldErrors == 0 && r.AcceptedOrderCount == 0 && len(r.DuplicateKeys) > 0
}

// Commit failure stages
const (
	FailureStageProducts = "products"
	FailureStageOrder    = "order"
	FailureStageItems    = "items"
)

// FailureRef identifies where a commit stopped: the stage, the identifier
// of the failing unit (order key or product chunk) and the store's message.
type FailureRef struct {
	Stage      string `json:"stage"`
	Identifier string `json:"identifier"`
	Message    string `json:"message"`
}

// CommitResult reports how far a commit got. FirstFailure nil means the
// whole batch went in; non-nil means everything counted here is committed
// and stays committed, and the rest of the batch was not attempted.
type CommitResult struct {
	CommittedOrders   int         `json:"committed_orders"`
	CommittedProducts int         `json:"committed_products"`
	FirstFailure      *FailureRef `json:"first_failure,omitempty"`
}
