package inventory

import (
	"errors"
	"strconv"
)

var (
	// ErrNotFound means no item with the given product ID exists.
	ErrNotFound = errors.New("product not found")
	// ErrInsufficientStock means a removal would have driven stock negative.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// Controller owns the catalog of exactly one store account. Product IDs
// are minted from a counter that only ever goes up, so an ID is never
// reused even after its item is deleted.
type Controller struct {
	items   []*Item
	counter int
}

func NewController() *Controller {
	return &Controller{counter: 1}
}

// AddItem assigns the next product ID ("P1", "P2", ...) to the item,
// overwriting whatever ID the caller set, and appends it to the catalog.
// Duplicate names are allowed. Returns the assigned ID.
func (c *Controller) AddItem(item *Item) string {
	item.ProductID = "P" + strconv.Itoa(c.counter)
	c.counter++
	c.items = append(c.items, item)
	return item.ProductID
}

// UpdateStock adds delta units to the item's stock. A non-negative delta
// always succeeds; a negative delta removes units and fails with
// ErrInsufficientStock (leaving stock untouched) if not enough are on hand.
func (c *Controller) UpdateStock(productID string, delta int) error {
	item, ok := c.FindByID(productID)
	if !ok {
		return ErrNotFound
	}
	if delta >= 0 {
		item.AddStock(delta)
		return nil
	}
	if !item.RemoveStock(-delta) {
		return ErrInsufficientStock
	}
	return nil
}

// UpdateItem applies a partial field update to the item.
func (c *Controller) UpdateItem(productID string, patch ItemPatch) error {
	item, ok := c.FindByID(productID)
	if !ok {
		return ErrNotFound
	}
	item.Apply(patch)
	return nil
}

// DeleteItem removes the item with the given ID. The freed ID is not
// reused. Returns false if no such item exists.
func (c *Controller) DeleteItem(productID string) bool {
	for idx, item := range c.items {
		if item.ProductID == productID {
			c.items = append(c.items[:idx], c.items[idx+1:]...)
			return true
		}
	}
	return false
}

// View returns a snapshot of the catalog: the slice is independent of
// later inserts and deletes, but the entries are the live shared items.
func (c *Controller) View() []*Item {
	snapshot := make([]*Item, len(c.items))
	copy(snapshot, c.items)
	return snapshot
}

// LowStock returns every item whose stock is strictly below its threshold.
func (c *Controller) LowStock() []*Item {
	low := []*Item{}
	for _, item := range c.items {
		if item.IsLowStock() {
			low = append(low, item)
		}
	}
	return low
}

// FindByID resolves an item by its product ID.
func (c *Controller) FindByID(productID string) (*Item, bool) {
	for _, item := range c.items {
		if item.ProductID == productID {
			return item, true
		}
	}
	return nil, false
}
