// Package pricing implements the layered discount engine: per-line
// BOGO and flash-sale promotions plus a tiered subtotal discount.
package pricing

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"shopcart/domain"
)

// SaleKind selects how a flash sale discounts a cart line.
type SaleKind string

const (
	// SalePercent discounts the line total by a fraction in [0,1].
	SalePercent SaleKind = "percent"
	// SaleFixed discounts a fixed amount per unit, capped at the line total.
	SaleFixed SaleKind = "fixed"
)

// FlashSale is a time-windowed promotion for one product. The window is
// inclusive at both ends.
type FlashSale struct {
	ProductID int
	Start     time.Time
	End       time.Time
	Kind      SaleKind
	Value     decimal.Decimal
}

// Registry holds the configured flash sales in registration order.
// Lookups are read-only against configuration supplied at startup.
type Registry struct {
	sales []FlashSale
}

// NewRegistry validates and stores the configured sales. Overlapping
// sales for the same product are not deduplicated; registration order
// decides which one ActiveSale reports.
func NewRegistry(sales []FlashSale) (*Registry, error) {
	one := decimal.NewFromInt(1)
	for i, s := range sales {
		if s.ProductID <= 0 {
			return nil, domain.NewInvalidConfigError("flash_sales", fmt.Sprintf("sale %d: product id must be positive, got %d", i, s.ProductID))
		}
		if s.End.Before(s.Start) {
			return nil, domain.NewInvalidConfigError("flash_sales", fmt.Sprintf("sale %d: window ends before it starts", i))
		}
		if s.Value.IsNegative() {
			return nil, domain.NewInvalidConfigError("flash_sales", fmt.Sprintf("sale %d: value must be non-negative", i))
		}
		switch s.Kind {
		case SalePercent:
			if s.Value.GreaterThan(one) {
				return nil, domain.NewInvalidConfigError("flash_sales", fmt.Sprintf("sale %d: percent value must be at most 1", i))
			}
		case SaleFixed:
		default:
			return nil, domain.NewInvalidConfigError("flash_sales", fmt.Sprintf("sale %d: unknown kind %q", i, s.Kind))
		}
	}
	return &Registry{sales: append([]FlashSale(nil), sales...)}, nil
}

// ActiveSale returns the first registered sale for the product whose
// window contains now. Both window bounds count as active.
func (r *Registry) ActiveSale(productID int, now time.Time) (FlashSale, bool) {
	for _, s := range r.sales {
		if s.ProductID != productID {
			continue
		}
		if now.Before(s.Start) || now.After(s.End) {
			continue
		}
		return s, true
	}
	return FlashSale{}, false
}
