package recommend

import "sort"

// DefaultLimit caps recommendation lists when the caller does not ask
// for a specific length.
const DefaultLimit = 3

// Recommend ranks products that were historically bought together with
// the cart contents. Each candidate's score is the sum of its
// co-purchase counts across every cart id; anything already in the cart
// is excluded. Candidates sort by score descending, ties by ascending
// product id, and the result is truncated to limit. History is only
// read, never mutated.
func Recommend(cartIDs []int, history *History, limit int) []int {
	if limit <= 0 {
		limit = DefaultLimit
	}

	inCart := make(map[int]struct{}, len(cartIDs))
	for _, id := range cartIDs {
		inCart[id] = struct{}{}
	}

	scores := make(map[int]int)
	for id := range inCart {
		for partner, count := range history.Partners(id) {
			if _, ok := inCart[partner]; ok {
				continue
			}
			scores[partner] += count
		}
	}

	candidates := make([]int, 0, len(scores))
	for id := range scores {
		candidates = append(candidates, id)
	}
	sort.Slice(candidates, func(i, j int) bool {
		if scores[candidates[i]] != scores[candidates[j]] {
			return scores[candidates[i]] > scores[candidates[j]]
		}
		return candidates[i] < candidates[j]
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates
}
