// Package sales computes read-only analytics over one account's sale
// history and catalog. Every operation takes an inclusive [start, end]
// window and never reaches across tenants.
//
// The engine reads live account state, so callers must run it inside
// store.Directory.ReadAccount, which holds the directory read lock for
// the duration of the computation.
package sales

import (
	"math"
	"sort"
	"time"

	"go-tindahan/internal/inventory"
	"go-tindahan/internal/store"
)

// Engine is stateless: it reads the account on each call. It performs
// no locking of its own.
type Engine struct {
	account *store.StoreAccount
}

func New(account *store.StoreAccount) *Engine {
	return &Engine{account: account}
}

func inWindow(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}

// tallyEntry pairs an item with the quantity sold in-window. Entries are
// kept in first-sale order so ranking ties resolve deterministically.
type tallyEntry struct {
	item *inventory.Item
	sold int
}

func (e *Engine) tallySales(start, end time.Time) []*tallyEntry {
	index := map[*inventory.Item]*tallyEntry{}
	var entries []*tallyEntry

	for _, txn := range e.account.Transactions {
		if !inWindow(txn.Date, start, end) {
			continue
		}
		for _, line := range txn.ItemsSold {
			entry, ok := index[line.Item]
			if !ok {
				entry = &tallyEntry{item: line.Item}
				index[line.Item] = entry
				entries = append(entries, entry)
			}
			entry.sold += line.Quantity
		}
	}
	return entries
}

// TopSellingProducts returns up to n distinct items ranked by quantity
// sold in-window, best sellers first. Items with no in-window sales do
// not appear at all.
func (e *Engine) TopSellingProducts(n int, start, end time.Time) []*inventory.Item {
	entries := e.tallySales(start, end)
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].sold > entries[j].sold
	})
	return firstItems(entries, n)
}

// LeastSellingProducts is the ascending counterpart of TopSellingProducts.
func (e *Engine) LeastSellingProducts(n int, start, end time.Time) []*inventory.Item {
	entries := e.tallySales(start, end)
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].sold < entries[j].sold
	})
	return firstItems(entries, n)
}

func firstItems(entries []*tallyEntry, n int) []*inventory.Item {
	if n > len(entries) {
		n = len(entries)
	}
	items := make([]*inventory.Item, 0, n)
	for _, entry := range entries[:n] {
		items = append(items, entry.item)
	}
	return items
}

// TotalRevenue sums the *stored* totals of in-window transactions. A
// transaction whose total was never recomputed after a price edit
// contributes its stale value; revenue does not re-derive from current
// prices.
func (e *Engine) TotalRevenue(start, end time.Time) float64 {
	var total float64
	for _, txn := range e.account.Transactions {
		if inWindow(txn.Date, start, end) {
			total += txn.TotalAmount
		}
	}
	return total
}

// TotalTransactions counts in-window transactions.
func (e *Engine) TotalTransactions(start, end time.Time) int {
	count := 0
	for _, txn := range e.account.Transactions {
		if inWindow(txn.Date, start, end) {
			count++
		}
	}
	return count
}

// COGS sums quantity x purchase price over the line items of in-window
// transactions, at each item's *current* purchase price rather than a
// snapshot taken at sale time.
func (e *Engine) COGS(start, end time.Time) float64 {
	var total float64
	for _, txn := range e.account.Transactions {
		if !inWindow(txn.Date, start, end) {
			continue
		}
		for _, line := range txn.ItemsSold {
			total += float64(line.Quantity) * line.Item.PurchasePrice
		}
	}
	return total
}

// COGP sums purchase price x current stock over catalog items purchased
// in-window, then adds COGS on top. Units sold in-window are therefore
// counted twice: once inside COGS and once while they were held. Whether
// that is intended ("total cost exposure") or a defect is an open
// question with the domain owner; it is reproduced here as observed.
func (e *Engine) COGP(start, end time.Time) float64 {
	var total float64
	for _, item := range e.account.Inventory.View() {
		if inWindow(item.PurchaseDate, start, end) {
			total += item.PurchasePrice * float64(item.Stock)
		}
	}
	return total + e.COGS(start, end)
}

// TotalProfit is revenue minus COGS.
func (e *Engine) TotalProfit(start, end time.Time) float64 {
	return e.TotalRevenue(start, end) - e.COGS(start, end)
}

// DailyAverageRevenue divides in-window revenue by the inclusive day
// count (a one-day window where start == end divides by 1), rounded to
// two decimals. A non-positive window yields 0. The count is taken over
// calendar days so an end bound pushed to end-of-day still spans the
// same number of days.
func (e *Engine) DailyAverageRevenue(start, end time.Time) float64 {
	startDay := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	endDay := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, end.Location())
	days := int(math.Round(endDay.Sub(startDay).Hours()/24)) + 1
	if days <= 0 {
		return 0
	}
	average := e.TotalRevenue(start, end) / float64(days)
	return math.Round(average*100) / 100
}
