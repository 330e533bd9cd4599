package checkout

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopcart/domain"
	"shopcart/pricing"
	"shopcart/recommend"
)

func newFixture(t *testing.T) (domain.Catalog, *Service) {
	t.Helper()
	catalog, err := domain.NewCatalog([]domain.Product{
		{ID: 1, Name: "Laptop", Price: decimal.NewFromFloat(999.99)},
		{ID: 2, Name: "Mouse", Price: decimal.NewFromFloat(25.50)},
		{ID: 3, Name: "Keyboard", Price: decimal.NewFromFloat(75.00)},
		{ID: 4, Name: "Monitor", Price: decimal.NewFromFloat(300.00)},
	})
	require.NoError(t, err)

	reg, err := pricing.NewRegistry(nil)
	require.NoError(t, err)
	engine, err := pricing.NewEngine([]int{2}, reg, []pricing.Tier{
		{Threshold: decimal.NewFromInt(200), Percent: decimal.NewFromFloat(0.15)},
		{Threshold: decimal.NewFromInt(100), Percent: decimal.NewFromFloat(0.10)},
	})
	require.NoError(t, err)

	return catalog, NewService(engine, recommend.NewHistory(), 3)
}

func TestCheckoutCompletesPurchase(t *testing.T) {
	catalog, svc := newFixture(t)
	cart := domain.NewCart()
	require.NoError(t, cart.Add(catalog, 2, 3))
	now := time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC)

	receipt, err := svc.Checkout(context.Background(), cart, catalog.Lookup(), now)

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, receipt.ID)
	assert.Equal(t, now, receipt.CompletedAt)
	assert.Equal(t, "51.00", receipt.Breakdown.Total.StringFixed(2))
	assert.True(t, cart.IsEmpty(), "cart must be cleared after checkout")
}

// Empty cart: zero breakdown, no history mutation, no recommendations,
// cart stays empty.
func TestCheckoutEmptyCart(t *testing.T) {
	catalog, svc := newFixture(t)
	cart := domain.NewCart()

	receipt, err := svc.Checkout(context.Background(), cart, catalog.Lookup(), time.Now())

	require.NoError(t, err)
	assert.True(t, receipt.Breakdown.Total.IsZero())
	assert.True(t, receipt.Breakdown.Subtotal.IsZero())
	assert.Empty(t, receipt.Recommendations)
	assert.True(t, cart.IsEmpty())
	assert.Equal(t, 0, svc.History().Score(1, 2), "history must not be touched")
}

// Checkout {1,2}, then {1,3}: the second receipt recommends 2 from the
// history updated immediately before recommendation.
func TestCheckoutRecordsHistoryThenRecommends(t *testing.T) {
	catalog, svc := newFixture(t)
	now := time.Now()

	cart := domain.NewCart()
	require.NoError(t, cart.Add(catalog, 1, 1))
	require.NoError(t, cart.Add(catalog, 2, 1))
	first, err := svc.Checkout(context.Background(), cart, catalog.Lookup(), now)
	require.NoError(t, err)
	assert.Empty(t, first.Recommendations, "nothing outside the first cart has history")

	require.NoError(t, cart.Add(catalog, 1, 1))
	require.NoError(t, cart.Add(catalog, 3, 1))
	second, err := svc.Checkout(context.Background(), cart, catalog.Lookup(), now)
	require.NoError(t, err)
	assert.Equal(t, []int{2}, second.Recommendations)

	assert.Equal(t, 1, svc.History().Score(1, 2))
	assert.Equal(t, 1, svc.History().Score(1, 3))
	assert.Equal(t, 0, svc.History().Score(2, 3))
}

func TestCheckoutTiedRecommendationsOrderByID(t *testing.T) {
	catalog, svc := newFixture(t)
	now := time.Now()

	for _, pair := range [][2]int{{1, 2}, {1, 3}} {
		cart := domain.NewCart()
		require.NoError(t, cart.Add(catalog, pair[0], 1))
		require.NoError(t, cart.Add(catalog, pair[1], 1))
		_, err := svc.Checkout(context.Background(), cart, catalog.Lookup(), now)
		require.NoError(t, err)
	}

	cart := domain.NewCart()
	require.NoError(t, cart.Add(catalog, 1, 1))
	assert.Equal(t, []int{2, 3}, svc.Preview(cart), "tied scores order by ascending id")
}

func TestPreviewDoesNotMutate(t *testing.T) {
	catalog, svc := newFixture(t)
	cart := domain.NewCart()
	require.NoError(t, cart.Add(catalog, 1, 2))

	got := svc.Preview(cart)

	assert.Empty(t, got)
	assert.False(t, cart.IsEmpty(), "preview must not clear the cart")
	assert.Equal(t, 0, svc.History().Score(1, 2), "preview must not record history")
}

func TestCheckoutCanceledContext(t *testing.T) {
	catalog, svc := newFixture(t)
	cart := domain.NewCart()
	require.NoError(t, cart.Add(catalog, 2, 1))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := svc.Checkout(ctx, cart, catalog.Lookup(), time.Now())

	require.Error(t, err)
	assert.False(t, cart.IsEmpty(), "canceled checkout must not clear the cart")
}

func TestNewServiceDefaultLimit(t *testing.T) {
	catalog, _ := newFixture(t)
	reg, err := pricing.NewRegistry(nil)
	require.NoError(t, err)
	engine, err := pricing.NewEngine(nil, reg, nil)
	require.NoError(t, err)
	svc := NewService(engine, recommend.NewHistory(), 0)

	now := time.Now()
	cart := domain.NewCart()
	for id := 1; id <= 4; id++ {
		require.NoError(t, cart.Add(catalog, id, 1))
	}
	_, err = svc.Checkout(context.Background(), cart, catalog.Lookup(), now)
	require.NoError(t, err)

	require.NoError(t, cart.Add(catalog, 1, 1))
	receipt, err := svc.Checkout(context.Background(), cart, catalog.Lookup(), now)
	require.NoError(t, err)
	assert.Len(t, receipt.Recommendations, recommend.DefaultLimit)
}
