// Package cart models a customer's session cart.
package cart

import (
	"fmt"

	"github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/domain"
)

// MaxQuantity caps the quantity of a single line.
const MaxQuantity = 99

// Item is one cart line: a part snapshot taken when it was added.
type Item struct {
	PartID   int64
	Quantity int
	Name     string
	Brand    string
	Model    string
	Price    float64
	ImageURL string
}

// Subtotal returns price × quantity.
func (i Item) Subtotal() float64 { return i.Price * float64(i.Quantity) }

// Cart is an ordered set of lines keyed by part id.
type Cart struct {
	userID int64
	items  []Item
}

// New creates an empty cart.
func New(userID int64) Cart {
	return Cart{userID: userID}
}

// Reconstruct restores a cart from storage without validation.
func Reconstruct(userID int64, items []Item) Cart {
	c := Cart{userID: userID, items: make([]Item, len(items))}
	copy(c.items, items)
	return c
}

// UserID returns the owning customer.
func (c *Cart) UserID() int64 { return c.userID }

// Items returns a copy of the lines in insertion order.
func (c *Cart) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of distinct parts.
func (c *Cart) Len() int { return len(c.items) }

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool { return len(c.items) == 0 }

// Add puts a part in the cart. Adding a part already present increases its
// quantity and refreshes the snapshot fields.
func (c *Cart) Add(item Item) error {
	if item.PartID <= 0 {
		return domain.NewValidationError("part_id", "must be positive")
	}
	if item.Quantity < 1 || item.Quantity > MaxQuantity {
		return domain.NewValidationError("quantity", fmt.Sprintf("must be between 1 and %d", MaxQuantity))
	}

	for i := range c.items {
		if c.items[i].PartID != item.PartID {
			continue
		}
		qty := c.items[i].Quantity + item.Quantity
		if qty > MaxQuantity {
			return domain.NewValidationError("quantity", fmt.Sprintf("cart line would exceed %d", MaxQuantity))
		}
		item.Quantity = qty
		c.items[i] = item
		return nil
	}

	c.items = append(c.items, item)
	return nil
}

// Remove drops a part from the cart. Reports whether it was present.
func (c *Cart) Remove(partID int64) bool {
	for i := range c.items {
		if c.items[i].PartID == partID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return true
		}
	}
	return false
}

// Total returns Σ price × quantity.
func (c *Cart) Total() float64 {
	var t float64
	for _, it := range c.items {
		t += it.Subtotal()
	}
	return t
}

// Quantity returns the number of units across all lines.
func (c *Cart) Quantity() int {
	n := 0
	for _, it := range c.items {
		n += it.Quantity
	}
	return n
}
