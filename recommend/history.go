// Package recommend tracks co-purchase history and ranks products
// frequently bought together with the current cart.
package recommend

import "sync"

// History counts how often pairs of products were checked out together.
// Counts are symmetric by construction and only ever grow; the store
// lives for the process lifetime. It is the one piece of state shared
// across sessions, so access is guarded.
type History struct {
	mu    sync.RWMutex
	pairs map[int]map[int]int
}

// NewHistory constructs an empty history store.
func NewHistory() *History {
	return &History{pairs: make(map[int]map[int]int)}
}

// Record increments the count for every unordered pair of distinct ids
// in one checkout, in both directions. Duplicate ids collapse; fewer
// than two distinct ids is a no-op.
func (h *History) Record(ids []int) {
	seen := make(map[int]struct{}, len(ids))
	distinct := make([]int, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		distinct = append(distinct, id)
	}
	if len(distinct) < 2 {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for i := 0; i < len(distinct); i++ {
		for j := i + 1; j < len(distinct); j++ {
			h.bump(distinct[i], distinct[j])
			h.bump(distinct[j], distinct[i])
		}
	}
}

func (h *History) bump(a, b int) {
	m := h.pairs[a]
	if m == nil {
		m = make(map[int]int)
		h.pairs[a] = m
	}
	m[b]++
}

// Score reports how many checkouts contained both products, zero if the
// pair was never seen.
func (h *History) Score(a, b int) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.pairs[a][b]
}

// Partners returns a copy of the co-purchase counts recorded for id.
func (h *History) Partners(id int) map[int]int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make(map[int]int, len(h.pairs[id]))
	for other, count := range h.pairs[id] {
		out[other] = count
	}
	return out
}
