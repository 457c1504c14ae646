package state

import (
	"sync"

	"go.uber.org/zap"

	"github.com/cortexcart/storefront/internal/client/storage"
	"github.com/cortexcart/storefront/internal/models"
)

// Cart owns the cart line collection. It is purely local: nothing is
// synchronized with the server until checkout. At most one line exists
// per product id.
type Cart struct {
	store *storage.Storage
	log   *zap.Logger

	mu    sync.Mutex
	items []models.CartItem
}

// NewCart constructs a Cart backed by the given durable storage.
func NewCart(store *storage.Storage, log *zap.Logger) *Cart {
	return &Cart{store: store, log: log}
}

// Hydrate restores the persisted cart. Lines whose product identifier
// does not match the expected format are never repaired individually:
// if any line is invalid, the whole cart is cleared. Operating on stale
// or corrupt product references is worse than starting empty.
func (c *Cart) Hydrate() {
	items, err := c.store.LoadCart()
	if err != nil {
		c.log.Warn("cart storage unreadable, starting empty", zap.Error(err))
		items = nil
	}

	for _, item := range items {
		if !models.IsObjectID(item.Product.ID) {
			c.log.Warn("dropping persisted cart: malformed product id",
				zap.String("id", item.Product.ID))
			items = nil
			break
		}
	}

	c.mu.Lock()
	c.items = items
	c.mu.Unlock()
	c.persist()
}

// AddItem adds quantity units of product. A non-positive quantity is a
// no-op. If a line for the product already exists its quantity is
// incremented rather than a duplicate line appended.
func (c *Cart) AddItem(product models.Product, quantity int) {
	if quantity <= 0 {
		return
	}

	c.mu.Lock()
	found := false
	for i := range c.items {
		if c.items[i].Product.ID == product.ID {
			c.items[i].Quantity += quantity
			found = true
			break
		}
	}
	if !found {
		c.items = append(c.items, models.CartItem{Product: product, Quantity: quantity})
	}
	c.mu.Unlock()
	c.persist()
}

// RemoveItem deletes the line for productID, if present.
func (c *Cart) RemoveItem(productID string) {
	c.mu.Lock()
	kept := c.items[:0]
	for _, item := range c.items {
		if item.Product.ID != productID {
			kept = append(kept, item)
		}
	}
	c.items = kept
	c.mu.Unlock()
	c.persist()
}

// UpdateQuantity sets the line's quantity to exactly quantity. A value
// of zero or below removes the line instead; no line is ever retained
// with a non-positive quantity.
func (c *Cart) UpdateQuantity(productID string, quantity int) {
	if quantity <= 0 {
		c.RemoveItem(productID)
		return
	}

	c.mu.Lock()
	for i := range c.items {
		if c.items[i].Product.ID == productID {
			c.items[i].Quantity = quantity
			break
		}
	}
	c.mu.Unlock()
	c.persist()
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.mu.Lock()
	c.items = nil
	c.mu.Unlock()
	c.persist()
}

// Items returns a copy of the cart lines.
func (c *Cart) Items() []models.CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.CartItem, len(c.items))
	copy(out, c.items)
	return out
}

// TotalItems is the sum of quantities across all lines.
func (c *Cart) TotalItems() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := 0
	for _, item := range c.items {
		total += item.Quantity
	}
	return total
}

// TotalPrice is the sum of unit price times quantity across all lines.
func (c *Cart) TotalPrice() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := 0.0
	for _, item := range c.items {
		total += item.Subtotal()
	}
	return total
}

func (c *Cart) persist() {
	c.mu.Lock()
	items := make([]models.CartItem, len(c.items))
	copy(items, c.items)
	c.mu.Unlock()

	if err := c.store.SaveCart(items); err != nil {
		c.log.Error("failed to persist cart", zap.Error(err))
	}
}
