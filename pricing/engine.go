package pricing

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"shopcart/domain"
)

// Tier is one row of the tiered subtotal discount table: carts whose
// post-item-discount subtotal reaches Threshold get Percent off.
type Tier struct {
	Threshold decimal.Decimal
	Percent   decimal.Decimal // fraction in [0,1]
}

// Detail annotates one cart line with the discount that fired on it.
type Detail struct {
	ProductID int    `json:"product_id"`
	Note      string `json:"note"`
}

// Breakdown is the full price decomposition for a cart. It is derived
// on demand and never stored; all amounts are exact decimals, rounded
// only when formatted for display.
type Breakdown struct {
	Subtotal      decimal.Decimal `json:"subtotal"`
	ItemDiscount  decimal.Decimal `json:"item_discount"`
	TierPercent   decimal.Decimal `json:"tier_percent"`
	TierDiscount  decimal.Decimal `json:"tier_discount"`
	TotalDiscount decimal.Decimal `json:"total_discount"`
	Total         decimal.Decimal `json:"total"`
	Details       []Detail        `json:"details,omitempty"`
}

// Engine computes price breakdowns from static promotion configuration:
// the BOGO-eligible id set, the flash sale registry and the tier table.
type Engine struct {
	bogo  map[int]struct{}
	reg   *Registry
	tiers []Tier
}

// NewEngine validates the promotion configuration. The tier table must
// be strictly descending by threshold so that the first qualifying row
// is the highest one.
func NewEngine(bogo []int, reg *Registry, tiers []Tier) (*Engine, error) {
	one := decimal.NewFromInt(1)
	for i, t := range tiers {
		if t.Threshold.IsNegative() {
			return nil, domain.NewInvalidConfigError("tiers", fmt.Sprintf("tier %d: threshold must be non-negative", i))
		}
		if t.Percent.IsNegative() || t.Percent.GreaterThan(one) {
			return nil, domain.NewInvalidConfigError("tiers", fmt.Sprintf("tier %d: percent must be within [0,1]", i))
		}
		if i > 0 && !tiers[i-1].Threshold.GreaterThan(t.Threshold) {
			return nil, domain.NewInvalidConfigError("tiers", fmt.Sprintf("tier %d: thresholds must be strictly descending", i))
		}
	}
	eligible := make(map[int]struct{}, len(bogo))
	for _, id := range bogo {
		if id <= 0 {
			return nil, domain.NewInvalidConfigError("bogo", fmt.Sprintf("product id must be positive, got %d", id))
		}
		eligible[id] = struct{}{}
	}
	if reg == nil {
		reg = &Registry{}
	}
	return &Engine{bogo: eligible, reg: reg, tiers: append([]Tier(nil), tiers...)}, nil
}

// Price computes the breakdown for the cart lines at the given instant.
// It is a pure function: identical inputs always produce an identical
// breakdown, and nothing is mutated. Quantities are assumed positive
// and every id present in lookup; the cart boundary validates both.
//
// Per line, the better of BOGO (every second unit free) and the active
// flash sale applies, never both; BOGO wins exact ties. After all
// lines, the single highest qualifying tier discounts the remaining
// subtotal. Details are ordered by ascending product id.
func (e *Engine) Price(lines map[int]int, lookup map[int]domain.Product, now time.Time) Breakdown {
	if len(lines) == 0 {
		return Breakdown{}
	}

	ids := make([]int, 0, len(lines))
	for id := range lines {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	var b Breakdown
	for _, id := range ids {
		qty := lines[id]
		product := lookup[id]
		lineTotal := product.Price.Mul(decimal.NewFromInt(int64(qty)))
		b.Subtotal = b.Subtotal.Add(lineTotal)

		bogoAmount := decimal.Zero
		if _, ok := e.bogo[id]; ok {
			bogoAmount = product.Price.Mul(decimal.NewFromInt(int64(qty / 2)))
		}

		flashAmount := decimal.Zero
		if sale, ok := e.reg.ActiveSale(id, now); ok {
			switch sale.Kind {
			case SalePercent:
				flashAmount = lineTotal.Mul(sale.Value)
			case SaleFixed:
				flashAmount = sale.Value.Mul(decimal.NewFromInt(int64(qty)))
				if flashAmount.GreaterThan(lineTotal) {
					flashAmount = lineTotal
				}
			}
		}

		switch {
		case bogoAmount.IsPositive() && bogoAmount.GreaterThanOrEqual(flashAmount):
			b.ItemDiscount = b.ItemDiscount.Add(bogoAmount)
			b.Details = append(b.Details, Detail{
				ProductID: id,
				Note:      fmt.Sprintf("(-$%s BOGO)", bogoAmount.StringFixed(2)),
			})
		case flashAmount.IsPositive():
			b.ItemDiscount = b.ItemDiscount.Add(flashAmount)
			b.Details = append(b.Details, Detail{
				ProductID: id,
				Note:      fmt.Sprintf("(-$%s flash sale)", flashAmount.StringFixed(2)),
			})
		}
	}

	afterItems := b.Subtotal.Sub(b.ItemDiscount)
	for _, t := range e.tiers {
		if afterItems.GreaterThanOrEqual(t.Threshold) {
			b.TierPercent = t.Percent
			b.TierDiscount = afterItems.Mul(t.Percent)
			break
		}
	}

	b.Total = afterItems.Sub(b.TierDiscount)
	b.TotalDiscount = b.ItemDiscount.Add(b.TierDiscount)
	return b
}
