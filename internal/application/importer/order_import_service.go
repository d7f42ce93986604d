package importer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/opticore/backend/internal/domain/catalog"
	"github.com/opticore/backend/internal/domain/ledger"
	"github.com/opticore/backend/internal/domain/shared"
	"github.com/opticore/backend/internal/infrastructure/spreadsheet"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// DefaultChunkSize bounds batched store operations: duplicate probes,
// product upserts and item inserts all run in chunks of at most this many
// rows.
const DefaultChunkSize = 500

const maxKeptFieldErrors = 100

// Issue-date layouts accepted on import, tried in order
var issueDateLayouts = []string{"2006-01-02", "02/01/2006"}

// OrderImportService validates and commits spreadsheet batches of orders.
//
// Validation never writes; it classifies rows into accepted groups, field
// errors and duplicates. Commit is sequential and fail-fast with no
// compensating rollback: a failure leaves prior inserts in place and the
// result reports exactly how far it got. Later orders are independent of
// earlier ones once products exist, so partial progress is usable, not
// corrupt.
type OrderImportService struct {
	orderRepo   ledger.OrderRepository
	productRepo catalog.ProductRepository
	chunkSize   int
	logger      *zap.Logger
}

// NewOrderImportService creates a new OrderImportService
func NewOrderImportService(
	orderRepo ledger.OrderRepository,
	productRepo catalog.ProductRepository,
	chunkSize int,
	logger *zap.Logger,
) *OrderImportService {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &OrderImportService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		chunkSize:   chunkSize,
		logger:      logger,
	}
}

// ValidateBatch classifies the raw rows of one spreadsheet. A malformed row
// is excluded and recorded, never fatal; a persistence error during the
// duplicate probe is fatal. IsValid requires zero field errors and at least
// one accepted order group.
func (s *OrderImportService) ValidateBatch(ctx context.Context, rows []spreadsheet.Row) (*ValidationResult, error) {
	errors := spreadsheet.NewErrorCollection(maxKeptFieldErrors)

	groups := make(map[ledger.OrderKey]*OrderGroup)
	groupOrder := make([]ledger.OrderKey, 0)
	products := make(map[string]catalog.Product)
	productOrder := make([]string, 0)

	for i := range rows {
		row := &rows[i]
		if row.IsEmpty() {
			continue
		}
		parsed, ok := s.parseRow(row, errors)
		if !ok {
			continue
		}

		key := ledger.OrderKey{OrderNumber: parsed.orderNumber, MovementKind: parsed.kind}
		group, exists := groups[key]
		if !exists {
			group = &OrderGroup{
				Key:        key,
				SellerCode: parsed.sellerCode,
				IssueDate:  parsed.issueDate,
				Lines:      make([]ItemLine, 0, 4),
			}
			groups[key] = group
			groupOrder = append(groupOrder, key)
		}
		group.Lines = append(group.Lines, ItemLine{
			LineNumber:    row.LineNumber,
			AuxiliaryCode: parsed.auxiliaryCode,
			Quantity:      parsed.quantity,
			UnitValue:     parsed.unitValue,
		})

		// First-seen name and value win for the catalog upsert.
		if _, seen := products[parsed.auxiliaryCode]; !seen {
			product, err := catalog.NewProduct(parsed.auxiliaryCode, parsed.productName, parsed.unitValue)
			if err != nil {
				errors.AddValueError(row.LineNumber, ColAuxiliaryCode, err.Error(), parsed.auxiliaryCode)
				continue
			}
			products[parsed.auxiliaryCode] = *product
			productOrder = append(productOrder, parsed.auxiliaryCode)
		}
	}

	accepted, duplicates, err := s.probeDuplicates(ctx, groups, groupOrder)
	if err != nil {
		return nil, err
	}

	result := &ValidationResult{
		FieldErrors:        errors.Errors(),
		TotalFieldErrors:   errors.TotalCount(),
		ErrorsTruncated:    errors.IsTruncated(),
		DuplicateKeys:      duplicates,
		AcceptedOrderCount: len(accepted),
		ProductsSeenCount:  len(products),
		GroupedOrders:      accepted,
		GroupedProducts:    make([]catalog.Product, 0, len(products)),
	}
	for _, code := range productOrder {
		result.GroupedProducts = append(result.GroupedProducts, products[code])
	}
	result.IsValid = !errors.HasErrors() && result.AcceptedOrderCount > 0

	s.logger.Info("import batch validated",
		zap.Int("rows", len(rows)),
		zap.Int("accepted_orders", result.AcceptedOrderCount),
		zap.Int("duplicates", len(duplicates)),
		zap.Int("field_errors", result.TotalFieldErrors),
		zap.Bool("is_valid", result.IsValid),
	)

	return result, nil
}

type parsedRow struct {
	auxiliaryCode string
	productName   string
	orderNumber   string
	sellerCode    string
	kind          ledger.EntryKind
	quantity      decimal.Decimal
	unitValue     decimal.Decimal
	issueDate     time.Time
}

// parseRow checks required fields and typed columns. All problems found on
// one row are recorded before it is discarded, so the seller fixes the file
// in one pass.
func (s *OrderImportService) parseRow(row *spreadsheet.Row, errors *spreadsheet.ErrorCollection) (parsedRow, bool) {
	ok := true
	parsed := parsedRow{
		auxiliaryCode: strings.TrimSpace(row.Get(ColAuxiliaryCode)),
		productName:   strings.TrimSpace(row.Get(ColProductName)),
		orderNumber:   strings.TrimSpace(row.Get(ColOrderNumber)),
		sellerCode:    strings.TrimSpace(row.Get(ColSellerCode)),
	}

	for _, required := range []struct {
		column string
		value  string
	}{
		{ColAuxiliaryCode, parsed.auxiliaryCode},
		{ColProductCode, strings.TrimSpace(row.Get(ColProductCode))},
		{ColOrderNumber, parsed.orderNumber},
		{ColSellerCode, parsed.sellerCode},
	} {
		if required.value == "" {
			errors.AddRequiredError(row.LineNumber, required.column)
			ok = false
		}
	}

	kind, kindOK := parseMovementKind(row.Get(ColMovementKind))
	if !kindOK {
		errors.AddValueError(row.LineNumber, ColMovementKind, "unknown movement kind", row.Get(ColMovementKind))
		ok = false
	}
	parsed.kind = kind

	quantity, err := decimal.NewFromString(row.GetOrDefault(ColQuantity, "1"))
	if err != nil {
		errors.AddTypeError(row.LineNumber, ColQuantity, "a number", row.Get(ColQuantity))
		ok = false
	} else if !quantity.IsPositive() {
		errors.AddValueError(row.LineNumber, ColQuantity, "quantity must be positive", row.Get(ColQuantity))
		ok = false
	}
	parsed.quantity = quantity

	unitValue, err := decimal.NewFromString(row.GetOrDefault(ColUnitValue, "0"))
	if err != nil {
		errors.AddTypeError(row.LineNumber, ColUnitValue, "a number", row.Get(ColUnitValue))
		ok = false
	} else if unitValue.IsNegative() {
		errors.AddValueError(row.LineNumber, ColUnitValue, "unit value cannot be negative", row.Get(ColUnitValue))
		ok = false
	}
	parsed.unitValue = unitValue

	issueDate, err := parseIssueDate(row.Get(ColIssueDate))
	if err != nil {
		errors.AddTypeError(row.LineNumber, ColIssueDate, "a date (2006-01-02 or 02/01/2006)", row.Get(ColIssueDate))
		ok = false
	}
	parsed.issueDate = issueDate

	return parsed, ok
}

// probeDuplicates queries existing orders by number in chunks and drops
// every group whose full (order_number, movement_kind) pair already exists.
// Matching on the pair, not the number alone, lets a return note reuse the
// number of the shipment it undoes.
func (s *OrderImportService) probeDuplicates(ctx context.Context, groups map[ledger.OrderKey]*OrderGroup, order []ledger.OrderKey) ([]OrderGroup, []ledger.OrderKey, error) {
	numberSet := make(map[string]struct{}, len(order))
	numbers := make([]string, 0, len(order))
	for _, key := range order {
		if _, seen := numberSet[key.OrderNumber]; !seen {
			numberSet[key.OrderNumber] = struct{}{}
			numbers = append(numbers, key.OrderNumber)
		}
	}

	existing := make(map[ledger.OrderKey]struct{})
	for start := 0; start < len(numbers); start += s.chunkSize {
		end := start + s.chunkSize
		if end > len(numbers) {
			end = len(numbers)
		}
		keys, err := s.orderRepo.FindExistingKeys(ctx, numbers[start:end])
		if err != nil {
			return nil, nil, fmt.Errorf("validate import batch: probe existing orders: %w", err)
		}
		for _, key := range keys {
			existing[key] = struct{}{}
		}
	}

	accepted := make([]OrderGroup, 0, len(order))
	duplicates := make([]ledger.OrderKey, 0)
	for _, key := range order {
		if _, dup := existing[key]; dup {
			duplicates = append(duplicates, key)
			continue
		}
		accepted = append(accepted, *groups[key])
	}
	return accepted, duplicates, nil
}

// CommitBatch persists a valid batch: product upserts first, in chunks,
// then orders one at a time with their items chunked. The first store
// failure stops the commit; everything already written stays written and
// the result points at the failing unit. A nil FirstFailure means the full
// batch committed.
func (s *OrderImportService) CommitBatch(ctx context.Context, validation *ValidationResult) (*CommitResult, error) {
	if validation == nil || !validation.IsValid {
		return nil, shared.NewDomainError("VALIDATION_ERRORS", "Only a valid batch can be committed")
	}

	result := &CommitResult{}

	for start := 0; start < len(validation.GroupedProducts); start += s.chunkSize {
		end := start + s.chunkSize
		if end > len(validation.GroupedProducts) {
			end = len(validation.GroupedProducts)
		}
		chunk := validation.GroupedProducts[start:end]
		if err := s.productRepo.UpsertBatch(ctx, chunk); err != nil {
			result.FirstFailure = &FailureRef{
				Stage:      FailureStageProducts,
				Identifier: fmt.Sprintf("products[%d:%d]", start, end),
				Message:    err.Error(),
			}
			s.logWithFailure(result)
			return result, nil
		}
		result.CommittedProducts += len(chunk)
	}

	for i := range validation.GroupedOrders {
		group := &validation.GroupedOrders[i]
		failure := s.commitOrder(ctx, group)
		if failure != nil {
			result.FirstFailure = failure
			s.logWithFailure(result)
			return result, nil
		}
		result.CommittedOrders++
	}

	s.logger.Info("import batch committed",
		zap.Int("orders", result.CommittedOrders),
		zap.Int("products", result.CommittedProducts),
	)
	return result, nil
}

func (s *OrderImportService) commitOrder(ctx context.Context, group *OrderGroup) *FailureRef {
	order, err := ledger.NewOrder(group.Key.OrderNumber, group.SellerCode, group.Key.MovementKind, group.IssueDate)
	if err != nil {
		return &FailureRef{Stage: FailureStageOrder, Identifier: group.Key.String(), Message: err.Error()}
	}
	for _, line := range group.Lines {
		if err := order.AddItem(line.AuxiliaryCode, line.Quantity, line.UnitValue); err != nil {
			return &FailureRef{Stage: FailureStageOrder, Identifier: group.Key.String(), Message: err.Error()}
		}
	}

	if err := s.orderRepo.Insert(ctx, order); err != nil {
		return &FailureRef{Stage: FailureStageOrder, Identifier: group.Key.String(), Message: err.Error()}
	}

	for start := 0; start < len(order.Items); start += s.chunkSize {
		end := start + s.chunkSize
		if end > len(order.Items) {
			end = len(order.Items)
		}
		if err := s.orderRepo.InsertItems(ctx, order, order.Items[start:end]); err != nil {
			return &FailureRef{Stage: FailureStageItems, Identifier: group.Key.String(), Message: err.Error()}
		}
	}
	return nil
}

func (s *OrderImportService) logWithFailure(result *CommitResult) {
	s.logger.Warn("import batch commit stopped",
		zap.Int("orders_committed", result.CommittedOrders),
		zap.Int("products_committed", result.CommittedProducts),
		zap.String("stage", result.FirstFailure.Stage),
		zap.String("identifier", result.FirstFailure.Identifier),
		zap.String("message", result.FirstFailure.Message),
	)
}

// parseMovementKind maps the spreadsheet's tipo_movimento tokens onto
// ledger kinds. The billing system emits Portuguese tokens; the canonical
// kind names are accepted too. An empty column is a plain shipment, the
// overwhelmingly common case.
func parseMovementKind(value string) (ledger.EntryKind, bool) {
	token := strings.ToUpper(strings.TrimSpace(value))
	switch token {
	case "":
		return ledger.EntryKindShipment, true
	case "REMESSA":
		return ledger.EntryKindShipment, true
	case "VENDA":
		return ledger.EntryKindSale, true
	case "RETORNO":
		return ledger.EntryKindClientReturn, true
	case "DEVOLUCAO", "DEVOLUÇÃO":
		return ledger.EntryKindCompanyReturn, true
	}
	kind := ledger.EntryKind(token)
	if kind.IsOrderKind() {
		return kind, true
	}
	return "", false
}

func parseIssueDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Now(), nil
	}
	for _, layout := range issueDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", value)
}
