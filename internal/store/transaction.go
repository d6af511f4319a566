package store

import (
	"errors"
	"time"

	"go-tindahan/internal/inventory"
)

// ErrInvalidQuantity rejects sale lines with a zero or negative quantity.
var ErrInvalidQuantity = errors.New("quantity must be positive")

// TransactionItem is one line of a sale. It holds a reference to the
// shared catalog item, not a copy: a later price edit shows through here.
type TransactionItem struct {
	Item     *inventory.Item `json:"item"`
	Quantity int             `json:"quantity"`
}

// Transaction is a sale record. IDs ("T1", "T2", ...) come from a counter
// shared across every account in the process, so they are globally unique.
type Transaction struct {
	ID           string            `json:"transaction_id"`
	Date         time.Time         `json:"transaction_date"`
	CustomerName string            `json:"customer_name"` // empty = walk-in
	ItemsSold    []TransactionItem `json:"items_sold"`
	TotalAmount  float64           `json:"total_amount"`
}

// NewTransaction creates an empty transaction. A zero date means "now".
func NewTransaction(id, customerName string, date time.Time) *Transaction {
	if date.IsZero() {
		date = time.Now()
	}
	return &Transaction{
		ID:           id,
		Date:         date,
		CustomerName: customerName,
		ItemsSold:    []TransactionItem{},
	}
}

// AddItem appends a sale line and immediately decrements the item's stock.
// On insufficient stock the transaction is untouched and the caller gets
// inventory.ErrInsufficientStock so it can surface the failure.
func (t *Transaction) AddItem(item *inventory.Item, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	if !item.RemoveStock(quantity) {
		return inventory.ErrInsufficientStock
	}
	t.ItemsSold = append(t.ItemsSold, TransactionItem{Item: item, Quantity: quantity})
	return nil
}

// CalculateTotal recomputes TotalAmount from the items' *current* prices.
// Nothing keeps the stored total in sync: callers must recompute after
// every batch of AddItem calls, and a price edit after the sale changes
// the total only if someone recomputes. That staleness is part of the
// contract (revenue reporting reads the stored value as-is).
func (t *Transaction) CalculateTotal() {
	t.TotalAmount = 0
	for _, line := range t.ItemsSold {
		t.TotalAmount += line.Item.Price * float64(line.Quantity)
	}
}
