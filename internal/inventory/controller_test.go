package inventory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testItem(name string, stock int) *Item {
	return &Item{
		ProductName:       name,
		Stock:             stock,
		PurchasePrice:     8,
		Price:             10,
		LowStockThreshold: 5,
		PurchaseDate:      time.Date(2023, time.January, 1, 0, 0, 0, 0, time.Local),
		Category:          CategoryFood,
	}
}

func TestAddItemAssignsSequentialIDs(t *testing.T) {
	c := NewController()

	assert.Equal(t, "P1", c.AddItem(testItem("Bigas", 100)))
	assert.Equal(t, "P2", c.AddItem(testItem("Tuyo", 50)))
	// Duplicate names are allowed; only IDs are unique.
	assert.Equal(t, "P3", c.AddItem(testItem("Tuyo", 50)))
}

func TestDeletedIDsAreNeverReused(t *testing.T) {
	c := NewController()
	c.AddItem(testItem("Bigas", 100))
	c.AddItem(testItem("Tuyo", 50))

	require.True(t, c.DeleteItem("P2"))
	assert.Equal(t, "P3", c.AddItem(testItem("Sardinas", 80)))

	_, found := c.FindByID("P2")
	assert.False(t, found)
}

func TestDeleteItemUnknownID(t *testing.T) {
	c := NewController()
	c.AddItem(testItem("Bigas", 100))

	assert.False(t, c.DeleteItem("P99"))
	assert.Len(t, c.View(), 1)
}

func TestUpdateStock(t *testing.T) {
	c := NewController()
	id := c.AddItem(testItem("Bigas", 100))

	require.NoError(t, c.UpdateStock(id, 20))
	item, _ := c.FindByID(id)
	assert.Equal(t, 120, item.Stock)

	require.NoError(t, c.UpdateStock(id, -120))
	assert.Equal(t, 0, item.Stock)
}

func TestUpdateStockInsufficient(t *testing.T) {
	c := NewController()
	id := c.AddItem(testItem("Bigas", 10))

	err := c.UpdateStock(id, -11)
	assert.ErrorIs(t, err, ErrInsufficientStock)

	item, _ := c.FindByID(id)
	assert.Equal(t, 10, item.Stock, "failed removal must not mutate stock")
}

func TestUpdateStockUnknownProduct(t *testing.T) {
	c := NewController()
	assert.ErrorIs(t, c.UpdateStock("P404", 5), ErrNotFound)
}

func TestLowStockBoundary(t *testing.T) {
	item := testItem("Bigas", 100)
	item.LowStockThreshold = 20

	assert.False(t, item.IsLowStock())

	item.Stock = 20
	assert.False(t, item.IsLowStock(), "stock equal to threshold is not low")

	item.Stock = 19
	assert.True(t, item.IsLowStock())
}

func TestCheckLowStockAfterRemoval(t *testing.T) {
	c := NewController()
	item := testItem("Bigas", 100)
	item.LowStockThreshold = 20
	id := c.AddItem(item)

	assert.Empty(t, c.LowStock())

	require.NoError(t, c.UpdateStock(id, -81))
	low := c.LowStock()
	require.Len(t, low, 1)
	assert.Equal(t, id, low[0].ProductID)
}

func TestViewReturnsSnapshot(t *testing.T) {
	c := NewController()
	c.AddItem(testItem("Bigas", 100))

	snapshot := c.View()
	c.AddItem(testItem("Tuyo", 50))

	assert.Len(t, snapshot, 1, "snapshot is independent of later inserts")

	// Entries are shared, not copied: mutations show through.
	snapshot[0].Price = 42
	item, _ := c.FindByID("P1")
	assert.Equal(t, 42.0, item.Price)
}

func TestItemPatchApply(t *testing.T) {
	item := testItem("Bigas", 100)
	newPrice := 45.0
	item.Apply(ItemPatch{Price: &newPrice})

	assert.Equal(t, 45.0, item.Price)
	assert.Equal(t, "Bigas", item.ProductName, "nil fields left untouched")
	assert.Equal(t, 100, item.Stock)
}

func TestCategoryRegistry(t *testing.T) {
	r := NewCategoryRegistry()

	all := r.All()
	assert.Contains(t, all, CategoryFood)
	assert.Contains(t, all, CategoryOther)
	assert.Len(t, all, 6)

	assert.True(t, r.AddCustom("PET SUPPLIES"))
	assert.False(t, r.AddCustom("PET SUPPLIES"), "duplicate custom rejected")
	assert.False(t, r.AddCustom(CategoryFood), "built-in names rejected")

	all = r.All()
	assert.Len(t, all, 7)
	assert.Equal(t, "PET SUPPLIES", all[6], "customs come after built-ins")
}
