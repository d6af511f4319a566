package sales

import (
	"sync"
	"testing"
	"time"

	"go-tindahan/internal/inventory"
	"go-tindahan/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	jan1  = time.Date(2023, time.January, 1, 0, 0, 0, 0, time.Local)
	jan10 = time.Date(2023, time.January, 10, 0, 0, 0, 0, time.Local)
	jan15 = time.Date(2023, time.January, 15, 0, 0, 0, 0, time.Local)
	jan31 = time.Date(2023, time.January, 31, 0, 0, 0, 0, time.Local)
)

// testAccount builds a store with two products and two January sales:
// T1 on Jan 10 sells 5 Bigas (40 each), T2 on Jan 15 sells 10 Tuyo
// (10 each). Revenue 300, COGS 5*38 + 10*9 = 280.
func testAccount(t *testing.T) (*store.StoreAccount, *inventory.Item, *inventory.Item) {
	t.Helper()

	account, err := store.NewAccount("teststore", "pw", "Test Store", "", "", store.SubscriptionActive, nil)
	require.NoError(t, err)

	bigas := &inventory.Item{ProductName: "Bigas", Stock: 100, PurchasePrice: 38, Price: 40, LowStockThreshold: 20, PurchaseDate: jan1, Category: inventory.CategoryFood}
	tuyo := &inventory.Item{ProductName: "Tuyo", Stock: 50, PurchasePrice: 9, Price: 10, LowStockThreshold: 5, PurchaseDate: jan1, Category: inventory.CategoryFood}
	account.Inventory.AddItem(bigas)
	account.Inventory.AddItem(tuyo)

	t1 := store.NewTransaction("T1", "Juan", jan10)
	require.NoError(t, t1.AddItem(bigas, 5))
	t1.CalculateTotal()
	account.AddTransaction(t1)

	t2 := store.NewTransaction("T2", "Maria", jan15)
	require.NoError(t, t2.AddItem(tuyo, 10))
	t2.CalculateTotal()
	account.AddTransaction(t2)

	return account, bigas, tuyo
}

func TestTotalRevenueAndTransactions(t *testing.T) {
	account, _, _ := testAccount(t)
	e := New(account)

	assert.InDelta(t, 300, e.TotalRevenue(jan1, jan31), 1e-9)
	assert.Equal(t, 2, e.TotalTransactions(jan1, jan31))

	// Window boundaries are inclusive on both ends.
	assert.InDelta(t, 200, e.TotalRevenue(jan10, jan10), 1e-9)
	assert.Equal(t, 1, e.TotalTransactions(jan10, jan10))

	// Outside the window nothing counts.
	feb := jan31.AddDate(0, 1, 0)
	assert.Zero(t, e.TotalRevenue(feb, feb.AddDate(0, 1, 0)))
	assert.Zero(t, e.TotalTransactions(feb, feb.AddDate(0, 1, 0)))
}

func TestTotalRevenueUsesStoredTotals(t *testing.T) {
	account, bigas, _ := testAccount(t)
	e := New(account)

	// A later price edit does not change revenue until someone recomputes
	// the transaction total.
	bigas.Price = 50
	assert.InDelta(t, 300, e.TotalRevenue(jan1, jan31), 1e-9)

	account.Transactions[0].CalculateTotal()
	assert.InDelta(t, 350, e.TotalRevenue(jan1, jan31), 1e-9)
}

func TestCOGSUsesCurrentPurchasePrice(t *testing.T) {
	account, bigas, _ := testAccount(t)
	e := New(account)

	assert.InDelta(t, 5*38+10*9, e.COGS(jan1, jan31), 1e-9)

	// COGS tracks the live cost basis, not a sale-time snapshot.
	bigas.PurchasePrice = 40
	assert.InDelta(t, 5*40+10*9, e.COGS(jan1, jan31), 1e-9)
}

func TestCOGPAddsCOGSOnTop(t *testing.T) {
	account, bigas, tuyo := testAccount(t)
	e := New(account)

	// Purchase value of in-window inventory at current stock levels
	// (95 Bigas after the sale, 40 Tuyo) plus COGS of the same window.
	held := float64(bigas.Stock)*38 + float64(tuyo.Stock)*9
	assert.InDelta(t, held+280, e.COGP(jan1, jan31), 1e-9)

	// Items purchased outside the window contribute nothing of their own.
	feb := jan31.AddDate(0, 1, 0)
	assert.InDelta(t, 0, e.COGP(feb, feb.AddDate(0, 1, 0)), 1e-9)
}

func TestTotalProfit(t *testing.T) {
	account, _, _ := testAccount(t)
	e := New(account)

	assert.InDelta(t, 300-280, e.TotalProfit(jan1, jan31), 1e-9)
}

func TestTopAndLeastSellingProducts(t *testing.T) {
	account, bigas, tuyo := testAccount(t)
	e := New(account)

	top := e.TopSellingProducts(1, jan1, jan31)
	require.Len(t, top, 1)
	assert.Same(t, tuyo, top[0], "10 Tuyo beats 5 Bigas")

	least := e.LeastSellingProducts(1, jan1, jan31)
	require.Len(t, least, 1)
	assert.Same(t, bigas, least[0])

	// Asking for more than sold distinct items returns what exists;
	// never-sold items do not appear.
	all := e.TopSellingProducts(10, jan1, jan31)
	assert.Len(t, all, 2)

	// Narrow the window and only that window's sales are tallied.
	top = e.TopSellingProducts(5, jan10, jan10)
	require.Len(t, top, 1)
	assert.Same(t, bigas, top[0])
}

func TestDailyAverageRevenue(t *testing.T) {
	account, _, _ := testAccount(t)
	e := New(account)

	// One-day window: day count is 1, not 0.
	assert.InDelta(t, 200.00, e.DailyAverageRevenue(jan10, jan10), 1e-9)

	// Jan 1-31 inclusive is 31 days: 300/31 rounded to 2 decimals.
	assert.InDelta(t, 9.68, e.DailyAverageRevenue(jan1, jan31), 1e-9)

	// Inverted window yields zero.
	assert.Zero(t, e.DailyAverageRevenue(jan31, jan1))
}

func TestEmptyWindowAnalytics(t *testing.T) {
	account, err := store.NewAccount("empty", "pw", "Empty Store", "", "", store.SubscriptionActive, nil)
	require.NoError(t, err)
	e := New(account)

	assert.Zero(t, e.TotalRevenue(jan1, jan31))
	assert.Zero(t, e.TotalTransactions(jan1, jan31))
	assert.Zero(t, e.COGS(jan1, jan31))
	assert.Zero(t, e.COGP(jan1, jan31))
	assert.Empty(t, e.TopSellingProducts(5, jan1, jan31))
	assert.Empty(t, e.LeastSellingProducts(5, jan1, jan31))
	assert.Zero(t, e.DailyAverageRevenue(jan1, jan31))
}

// The engine reads live account state, so every report must run inside
// ReadAccount to hold the directory read lock against checkouts. This
// hammers both sides; the race detector flags any path that slips out
// from under the lock.
func TestReportsDuringConcurrentCheckouts(t *testing.T) {
	d := store.NewDirectory()
	require.NoError(t, d.CreateAccount("store1", "pw", "Test Store", "", "", store.SubscriptionActive, nil))
	id, err := d.AddInventoryItem("store1", &inventory.Item{ProductName: "Bigas", Stock: 1000, PurchasePrice: 38, Price: 40})
	require.NoError(t, err)

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			_, err := d.RecordSale("store1", "", jan10, []store.SaleLine{{ProductID: id, Quantity: 1}})
			if err != nil {
				t.Error(err)
				return
			}
		}
	}()

	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			err := d.ReadAccount("store1", func(account *store.StoreAccount) {
				e := New(account)
				_ = e.TotalRevenue(jan1, jan31)
				_ = e.COGS(jan1, jan31)
				_ = e.SalesReport(jan1, jan31)
			})
			if err != nil {
				t.Error(err)
				return
			}
		}
	}()

	wg.Wait()

	var revenue float64
	require.NoError(t, d.ReadAccount("store1", func(account *store.StoreAccount) {
		revenue = New(account).TotalRevenue(jan1, jan31)
	}))
	assert.InDelta(t, 200*40, revenue, 1e-9)
}
