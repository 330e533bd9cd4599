// Package domain defines core business types and interfaces.
package domain

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

// Product is a single catalog entry. Products are immutable once the
// catalog has been built.
type Product struct {
	ID    int             `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// Catalog is the ordered product list together with an id index derived
// from it. The index always has the same cardinality as the list.
type Catalog struct {
	Products []Product
	index    map[int]Product
}

// NewCatalog builds a catalog from an ordered product list. Duplicate or
// non-positive ids, empty names and negative prices are configuration
// errors and reject the whole catalog.
func NewCatalog(products []Product) (Catalog, error) {
	index := make(map[int]Product, len(products))
	for _, p := range products {
		if p.ID <= 0 {
			return Catalog{}, NewInvalidConfigError("catalog", fmt.Sprintf("product id must be positive, got %d", p.ID))
		}
		if p.Name == "" {
			return Catalog{}, NewInvalidConfigError("catalog", fmt.Sprintf("product %d has an empty name", p.ID))
		}
		if p.Price.IsNegative() {
			return Catalog{}, NewInvalidConfigError("catalog", fmt.Sprintf("product %d has a negative price", p.ID))
		}
		if _, exists := index[p.ID]; exists {
			return Catalog{}, NewInvalidConfigError("catalog", fmt.Sprintf("duplicate product id %d", p.ID))
		}
		index[p.ID] = p
	}
	return Catalog{Products: append([]Product(nil), products...), index: index}, nil
}

// Get returns the product with the given id, if present.
func (c Catalog) Get(id int) (Product, bool) {
	p, ok := c.index[id]
	return p, ok
}

// Lookup exposes the id index for the pricing engine.
func (c Catalog) Lookup() map[int]Product {
	return c.index
}

// Len reports the number of products in the catalog.
func (c Catalog) Len() int {
	return len(c.Products)
}

// ListFilter allows filtering and sorting results from List
type ListFilter struct {
	Keyword  string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	SortBy   string // "name" or "price"
	Order    string // "asc" or "desc"
}

// CatalogStore defines the read-only catalog access used by the CLI
type CatalogStore interface {
	Get(ctx context.Context, id int) (Product, error)
	List(ctx context.Context, filter ListFilter) ([]Product, error)
}
