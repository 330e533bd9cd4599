// Package store provides in-memory state for the checkout simulator.
package store

import (
	"context"
	"sort"
	"strings"

	"shopcart/domain"
)

// CatalogStore serves read-only catalog queries. The catalog is fixed at
// construction, so lookups need no locking.
type CatalogStore struct {
	catalog domain.Catalog
}

// NewCatalogStore wraps a validated catalog.
func NewCatalogStore(catalog domain.Catalog) *CatalogStore {
	return &CatalogStore{catalog: catalog}
}

// compile-time assertion that CatalogStore implements domain.CatalogStore
var _ domain.CatalogStore = (*CatalogStore)(nil)

func (s *CatalogStore) Get(ctx context.Context, id int) (domain.Product, error) {
	select {
	case <-ctx.Done():
		return domain.Product{}, ctx.Err()
	default:
	}

	p, ok := s.catalog.Get(id)
	if !ok {
		return domain.Product{}, domain.NewProductNotFoundError(id)
	}
	return p, nil
}

func (s *CatalogStore) List(ctx context.Context, filter domain.ListFilter) ([]domain.Product, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	keyword := strings.ToLower(filter.Keyword)
	out := make([]domain.Product, 0, s.catalog.Len())
	for _, p := range s.catalog.Products {
		if keyword != "" && !strings.Contains(strings.ToLower(p.Name), keyword) {
			continue
		}
		if filter.MinPrice != nil && p.Price.LessThan(*filter.MinPrice) {
			continue
		}
		if filter.MaxPrice != nil && p.Price.GreaterThan(*filter.MaxPrice) {
			continue
		}
		out = append(out, p)
	}

	switch filter.SortBy {
	case "name":
		sort.Slice(out, func(i, j int) bool {
			if filter.Order == "desc" {
				return out[i].Name > out[j].Name
			}
			return out[i].Name < out[j].Name
		})
	case "price":
		sort.Slice(out, func(i, j int) bool {
			if filter.Order == "desc" {
				return out[i].Price.GreaterThan(out[j].Price)
			}
			return out[i].Price.LessThan(out[j].Price)
		})
	}

	return out, nil
}
