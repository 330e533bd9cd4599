package domain

import "sort"

// Cart maps product ids to quantities. A key is present only while its
// quantity is positive; removal below one unit drops the line entirely.
type Cart struct {
	lines map[int]int
}

// NewCart constructs an empty cart.
func NewCart() *Cart {
	return &Cart{lines: make(map[int]int)}
}

// Add puts quantity units of a product into the cart. The product must
// exist in the catalog and the quantity must be positive; on error the
// cart is left untouched.
func (c *Cart) Add(catalog Catalog, productID, quantity int) error {
	if _, ok := catalog.Get(productID); !ok {
		return NewProductNotFoundError(productID)
	}
	if quantity <= 0 {
		return NewInvalidQuantityError(quantity)
	}
	c.lines[productID] += quantity
	return nil
}

// Remove takes quantity units of a product out of the cart. Removing at
// least the stored quantity drops the line. The product must currently
// be in the cart and the quantity must be positive.
func (c *Cart) Remove(productID, quantity int) error {
	if _, ok := c.lines[productID]; !ok {
		return NewProductNotFoundError(productID)
	}
	if quantity <= 0 {
		return NewInvalidQuantityError(quantity)
	}
	if c.lines[productID] > quantity {
		c.lines[productID] -= quantity
	} else {
		delete(c.lines, productID)
	}
	return nil
}

// Quantity reports the stored quantity for a product, zero if absent.
func (c *Cart) Quantity(productID int) int {
	return c.lines[productID]
}

// Lines returns a copy of the id to quantity mapping.
func (c *Cart) Lines() map[int]int {
	out := make(map[int]int, len(c.lines))
	for id, qty := range c.lines {
		out[id] = qty
	}
	return out
}

// ProductIDs returns the distinct product ids in the cart in ascending
// order.
func (c *Cart) ProductIDs() []int {
	ids := make([]int, 0, len(c.lines))
	for id := range c.lines {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// TotalItems reports the summed quantity across all lines.
func (c *Cart) TotalItems() int {
	total := 0
	for _, qty := range c.lines {
		total += qty
	}
	return total
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// Clear drops every line.
func (c *Cart) Clear() {
	c.lines = make(map[int]int)
}
