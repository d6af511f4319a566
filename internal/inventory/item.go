package inventory

import (
	"time"
)

// Item - A single product in a store's catalog
type Item struct {
	ProductID         string    `json:"product_id"` // Assigned by the Controller, e.g. "P1"
	ProductName       string    `json:"product_name"`
	Stock             int       `json:"stock"`
	PurchasePrice     float64   `json:"purchase_price"` // Cost basis (what the store paid)
	Price             float64   `json:"price"`          // Selling price
	LowStockThreshold int       `json:"low_stock_threshold"`
	PurchaseDate      time.Time `json:"purchase_date"`
	Category          string    `json:"category"`
}

// AddStock increases the on-hand quantity unconditionally.
func (i *Item) AddStock(quantity int) {
	i.Stock += quantity
}

// RemoveStock decreases the on-hand quantity. It refuses to go negative:
// if there are fewer units than requested, nothing changes and it
// returns false.
func (i *Item) RemoveStock(quantity int) bool {
	if i.Stock < quantity {
		return false
	}
	i.Stock -= quantity
	return true
}

// IsLowStock reports whether stock has fallen strictly below the
// threshold. Stock exactly at the threshold is NOT low.
func (i *Item) IsLowStock() bool {
	return i.Stock < i.LowStockThreshold
}

// ItemPatch carries a partial update. Nil fields are left untouched,
// so callers only send what was edited.
type ItemPatch struct {
	ProductName       *string    `json:"product_name"`
	Stock             *int       `json:"stock"`
	Price             *float64   `json:"price"`
	PurchasePrice     *float64   `json:"purchase_price"`
	LowStockThreshold *int       `json:"low_stock_threshold"`
	PurchaseDate      *time.Time `json:"purchase_date"`
	Category          *string    `json:"category"`
}

// Apply overwrites the item's fields with the non-nil values of the patch.
func (i *Item) Apply(p ItemPatch) {
	if p.ProductName != nil {
		i.ProductName = *p.ProductName
	}
	if p.Stock != nil {
		i.Stock = *p.Stock
	}
	if p.Price != nil {
		i.Price = *p.Price
	}
	if p.PurchasePrice != nil {
		i.PurchasePrice = *p.PurchasePrice
	}
	if p.LowStockThreshold != nil {
		i.LowStockThreshold = *p.LowStockThreshold
	}
	if p.PurchaseDate != nil {
		i.PurchaseDate = *p.PurchaseDate
	}
	if p.Category != nil {
		i.Category = *p.Category
	}
}
