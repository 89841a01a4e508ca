package structs

import (
	"time"

	"github.com/google/uuid"
)

// CartItem is one line of a shopping cart. Lines are unique per
// (ProductID, Size, Color); adding the same combination again merges
// quantities instead of appending a second line.
type CartItem struct {
	ProductID uuid.UUID `json:"product_id" validate:"required,uuid4"`
	Name      string    `json:"name"`
	Price     int64     `json:"price" validate:"gte=0"`
	Quantity  int       `json:"quantity" validate:"required,min=1"`
	Size      string    `json:"size"`
	Color     string    `json:"color"`
	Image     string    `json:"image,omitempty"`
}

// Matches reports whether the item occupies the same cart line as the
// given key.
func (ci CartItem) Matches(productID uuid.UUID, size, color string) bool {
	return ci.ProductID == productID && ci.Size == size && ci.Color == color
}

// Cart is the in-memory cart state for one cart token. All derived
// values are recomputed on read; nothing is cached.
type Cart struct {
	Token     string     `json:"token"`
	Items     []CartItem `json:"items"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Clone returns an independent copy of the cart. Callers that hand a
// cart to concurrent readers must clone first; Items is a shared slice
// otherwise.
func (c *Cart) Clone() *Cart {
	clone := *c
	clone.Items = make([]CartItem, len(c.Items))
	copy(clone.Items, c.Items)
	return &clone
}

// AddItem merges the item into an existing line when the
// (product, size, color) key matches, otherwise appends a new line.
func (c *Cart) AddItem(item CartItem) {
	if item.Quantity < 1 {
		item.Quantity = 1
	}
	for i := range c.Items {
		if c.Items[i].Matches(item.ProductID, item.Size, item.Color) {
			c.Items[i].Quantity += item.Quantity
			c.UpdatedAt = time.Now()
			return
		}
	}
	c.Items = append(c.Items, item)
	c.UpdatedAt = time.Now()
}

// RemoveItem deletes the matching line. Removing a line that does not
// exist is a no-op.
func (c *Cart) RemoveItem(productID uuid.UUID, size, color string) {
	for i := range c.Items {
		if c.Items[i].Matches(productID, size, color) {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			c.UpdatedAt = time.Now()
			return
		}
	}
}

// UpdateQuantity replaces the quantity of the matching line, clamped to
// a minimum of 1. Returns false when no line matches.
func (c *Cart) UpdateQuantity(productID uuid.UUID, size, color string, quantity int) bool {
	if quantity < 1 {
		quantity = 1
	}
	for i := range c.Items {
		if c.Items[i].Matches(productID, size, color) {
			c.Items[i].Quantity = quantity
			c.UpdatedAt = time.Now()
			return true
		}
	}
	return false
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Items = nil
	c.UpdatedAt = time.Now()
}

// TotalItems is the sum of line quantities.
func (c *Cart) TotalItems() int {
	total := 0
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}

// TotalPrice is the sum of price times quantity over all lines.
func (c *Cart) TotalPrice() int64 {
	var total int64
	for _, item := range c.Items {
		total += item.Price * int64(item.Quantity)
	}
	return total
}

// CartItemRequest is the add/update payload for the cart endpoints.
type CartItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid4"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
	Size      string `json:"size"`
	Color     string `json:"color"`
}

// CartLineKey identifies a cart line for remove/update operations.
type CartLineKey struct {
	ProductID string `json:"product_id" validate:"required,uuid4"`
	Size      string `json:"size"`
	Color     string `json:"color"`
}
