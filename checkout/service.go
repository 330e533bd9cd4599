// Package checkout orchestrates pricing, co-purchase recording and
// recommendation generation for a completed purchase.
package checkout

import (
	"context"
	"time"

	"github.com/google/uuid"

	"shopcart/domain"
	"shopcart/pricing"
	"shopcart/recommend"
)

// Receipt is the outcome of one checkout: the price breakdown plus the
// follow-up recommendations.
type Receipt struct {
	ID              uuid.UUID         `json:"id"`
	CompletedAt     time.Time         `json:"completed_at"`
	Breakdown       pricing.Breakdown `json:"breakdown"`
	Recommendations []int             `json:"recommendations,omitempty"`
}

// Service wires the discount engine and the history store behind a
// single checkout entry point.
type Service struct {
	engine  *pricing.Engine
	history *recommend.History
	limit   int
}

// NewService constructs a checkout service. A non-positive limit falls
// back to the default recommendation length.
func NewService(engine *pricing.Engine, history *recommend.History, limit int) *Service {
	if limit <= 0 {
		limit = recommend.DefaultLimit
	}
	return &Service{engine: engine, history: history, limit: limit}
}

// Checkout completes a purchase: it prices the cart, records the cart's
// distinct ids in co-purchase history, generates recommendations from
// the updated history and clears the cart, in that order. An empty cart
// short-circuits to a zero receipt and mutates nothing.
func (s *Service) Checkout(ctx context.Context, cart *domain.Cart, lookup map[int]domain.Product, now time.Time) (Receipt, error) {
	if err := ctx.Err(); err != nil {
		return Receipt{}, err
	}

	receipt := Receipt{
		ID:          uuid.New(),
		CompletedAt: now,
		Breakdown:   s.engine.Price(cart.Lines(), lookup, now),
	}
	if cart.IsEmpty() {
		return receipt, nil
	}

	ids := cart.ProductIDs()
	s.history.Record(ids)
	receipt.Recommendations = recommend.Recommend(ids, s.history, s.limit)
	cart.Clear()
	return receipt, nil
}

// Preview returns recommendations for the current cart without
// completing a checkout or touching history.
func (s *Service) Preview(cart *domain.Cart) []int {
	return recommend.Recommend(cart.ProductIDs(), s.history, s.limit)
}

// History exposes the service's history store.
func (s *Service) History() *recommend.History {
	return s.history
}
