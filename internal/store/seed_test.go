package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreloadSeedsDirectory(t *testing.T) {
	d := NewDirectory()
	require.NoError(t, d.Preload())

	summaries := d.GetAllAccounts()
	require.Len(t, summaries, 4)
	assert.Equal(t, "admin", summaries[0].Username)
	assert.Equal(t, "store1", summaries[1].Username)
	assert.Equal(t, SubscriptionActive, summaries[1].SubscriptionStatus)
	assert.Equal(t, "store2", summaries[2].Username)
	assert.Equal(t, SubscriptionTrial, summaries[2].SubscriptionStatus)
	assert.Equal(t, "store3", summaries[3].Username)
	assert.Equal(t, SubscriptionExpired, summaries[3].SubscriptionStatus)

	admin, ok := d.FindByUsername("admin")
	require.True(t, ok)
	assert.Len(t, admin.Inventory.View(), 10)
	assert.Len(t, admin.Transactions, 3)
}

func TestPreloadIsIdempotent(t *testing.T) {
	d := NewDirectory()
	require.NoError(t, d.Preload())
	require.NoError(t, d.Preload())

	assert.Len(t, d.GetAllAccounts(), 4)
	admin, _ := d.FindByUsername("admin")
	assert.Len(t, admin.Transactions, 3)
}

func TestPreloadSkipsNonEmptyDirectory(t *testing.T) {
	d := NewDirectory()
	require.NoError(t, d.CreateAccount("solo", "pw", "Solo Store", "", "", SubscriptionActive, nil))

	require.NoError(t, d.Preload())
	assert.Len(t, d.GetAllAccounts(), 1, "preload into a non-empty directory is a no-op")
}

func TestPreloadSeedData(t *testing.T) {
	d := NewDirectory()
	require.NoError(t, d.Preload())

	admin, _ := d.FindByUsername("admin")
	items := admin.Inventory.View()
	assert.Equal(t, "P1", items[0].ProductID)
	assert.Equal(t, "Bigas", items[0].ProductName)
	assert.Equal(t, "P10", items[9].ProductID)
	assert.Equal(t, "Cooking Oil", items[9].ProductName)

	// Seed sales already deducted from seeded stock.
	assert.Equal(t, 95, items[0].Stock, "5 Bigas sold in T1")
	assert.Equal(t, 40, items[1].Stock, "10 Tuyo sold in T1")

	txns := admin.Transactions
	require.Len(t, txns, 3)
	assert.Equal(t, "T1", txns[0].ID)
	assert.Equal(t, "Juan Dela Cruz", txns[0].CustomerName)
	assert.InDelta(t, 5*40.0+10*10.0, txns[0].TotalAmount, 1e-9)
	assert.Equal(t, "T2", txns[1].ID)
	assert.Equal(t, "T3", txns[2].ID)

	// Seed logins work through the hashed credential store.
	_, err := d.Login("admin", "admin123")
	assert.NoError(t, err)
	_, err = d.Login("store1", "password123")
	assert.NoError(t, err)
	_, err = d.Login("store3", "password123")
	assert.ErrorIs(t, err, ErrSubscriptionExpired)

	// Window spanning 2023 sees all three historical transactions.
	start := time.Date(2023, time.January, 1, 0, 0, 0, 0, time.Local)
	end := time.Date(2023, time.December, 31, 23, 59, 59, 0, time.Local)
	count := 0
	for _, txn := range txns {
		if !txn.Date.Before(start) && !txn.Date.After(end) {
			count++
		}
	}
	assert.Equal(t, 3, count)
}
