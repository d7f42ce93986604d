package reconciliation

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TheoreticalItem is one product's ledger-derived stock position, as
// produced by the aggregator for the inventory's seller.
type TheoreticalItem struct {
	AuxiliaryCode  string
	ProductName    string
	ShippedQty     decimal.Decimal
	SoldQty        decimal.Decimal
	TheoreticalQty decimal.Decimal
}

// DivergenceLine is one product's gap between the physical count and the
// theoretical stock. Divergence is signed: counted minus theoretical.
type DivergenceLine struct {
	AuxiliaryCode  string          `json:"auxiliary_code"`
	ProductName    string          `json:"product_name"`
	TheoreticalQty decimal.Decimal `json:"theoretical_qty"`
	CountedQty     decimal.Decimal `json:"counted_qty"`
	Divergence     decimal.Decimal `json:"divergence"`
	DivergencePct  decimal.Decimal `json:"divergence_pct"`
}

// UncountedItem is a product the ledger says the seller holds but whose
// code never appeared in the submission. Distinct from "counted as zero",
// which shows up as a DivergenceLine.
type UncountedItem struct {
	AuxiliaryCode  string          `json:"auxiliary_code"`
	ProductName    string          `json:"product_name"`
	TheoreticalQty decimal.Decimal `json:"theoretical_qty"`
}

// DivergenceReport is the comparator's read-only output for one inventory
type DivergenceReport struct {
	InventoryID uuid.UUID        `json:"inventory_id"`
	SellerCode  string           `json:"seller_code"`
	Lines       []DivergenceLine `json:"lines"`
	Uncounted   []UncountedItem  `json:"uncounted"`
}

var oneHundred = decimal.NewFromInt(100)

// DivergencePercent computes divergence / theoretical * 100. When the
// theoretical quantity is zero the source convention is kept: 100 when
// anything was counted, 0 otherwise. The asymmetry is a display convention,
// not a mathematical requirement.
func DivergencePercent(divergence, theoretical decimal.Decimal) decimal.Decimal {
	if theoretical.IsZero() {
		if !divergence.IsZero() {
			return oneHundred
		}
		return decimal.Zero
	}
	return divergence.Div(theoretical).Mul(oneHundred).Round(2)
}

// BuildDivergenceReport joins an inventory's counted items against the
// theoretical stock map. Every counted item produces a line, zero
// divergence included; products with positive theoretical stock missing
// from the count are listed separately as uncounted. Lines are ordered by
// descending absolute divergence so the largest gaps surface first, ties
// broken by auxiliary code.
func BuildDivergenceReport(inv *Inventory, theoretical map[string]TheoreticalItem) *DivergenceReport {
	report := &DivergenceReport{
		InventoryID: inv.ID,
		SellerCode:  inv.SellerCode,
		Lines:       make([]DivergenceLine, 0, len(inv.Items)),
		Uncounted:   make([]UncountedItem, 0),
	}

	for _, item := range inv.Items {
		theo, ok := theoretical[item.AuxiliaryCode]
		if !ok {
			theo = TheoreticalItem{AuxiliaryCode: item.AuxiliaryCode}
		}
		divergence := item.CountedQuantity.Sub(theo.TheoreticalQty)
		report.Lines = append(report.Lines, DivergenceLine{
			AuxiliaryCode:  item.AuxiliaryCode,
			ProductName:    theo.ProductName,
			TheoreticalQty: theo.TheoreticalQty,
			CountedQty:     item.CountedQuantity,
			Divergence:     divergence,
			DivergencePct:  DivergencePercent(divergence, theo.TheoreticalQty),
		})
	}

	sort.SliceStable(report.Lines, func(i, j int) bool {
		a := report.Lines[i].Divergence.Abs()
		b := report.Lines[j].Divergence.Abs()
		if !a.Equal(b) {
			return a.GreaterThan(b)
		}
		return report.Lines[i].AuxiliaryCode < report.Lines[j].AuxiliaryCode
	})

	counted := inv.CountedCodes()
	for _, theo := range theoretical {
		if _, ok := counted[theo.AuxiliaryCode]; ok {
			continue
		}
		if theo.TheoreticalQty.IsPositive() {
			report.Uncounted = append(report.Uncounted, UncountedItem{
				AuxiliaryCode:  theo.AuxiliaryCode,
				ProductName:    theo.ProductName,
				TheoreticalQty: theo.TheoreticalQty,
			})
		}
	}
	sort.Slice(report.Uncounted, func(i, j int) bool {
		return report.Uncounted[i].AuxiliaryCode < report.Uncounted[j].AuxiliaryCode
	})

	return report
}

// NonzeroLines returns the lines whose divergence is not zero, in report order
func (r *DivergenceReport) NonzeroLines() []DivergenceLine {
	lines := make([]DivergenceLine, 0, len(r.Lines))
	for _, line := range r.Lines {
		if !line.Divergence.IsZero() {
			lines = append(lines, line)
		}
	}
	return lines
}
