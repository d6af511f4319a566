package store

import (
	"fmt"
	"time"

	"go-tindahan/internal/inventory"
)

// Preload populates an empty directory with the bootstrap data set: the
// admin account (with a stocked catalog and some 2023 sale history) plus
// three sample tenants in each subscription state. Calling it again once
// the directory holds any account is a no-op.
func (d *Directory) Preload() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if len(d.accounts) > 0 {
		return nil
	}

	admin, err := NewAccount(AdminUsername, "admin123", "Admin Store", "123 Admin St.", "123-456-7890", SubscriptionActive, nil)
	if err != nil {
		return fmt.Errorf("failed to seed admin account: %w", err)
	}

	in30Days := time.Now().AddDate(0, 0, 30)
	store1, err := NewAccount("store1", "password123", "Juan's Sari-Sari Store", "123 Main St., Manila", "0912-345-6789", SubscriptionActive, &in30Days)
	if err != nil {
		return fmt.Errorf("failed to seed store1: %w", err)
	}

	in7Days := time.Now().AddDate(0, 0, 7)
	store2, err := NewAccount("store2", "password123", "Maria's Mini Mart", "456 Second St., Cebu", "0923-456-7890", SubscriptionTrial, &in7Days)
	if err != nil {
		return fmt.Errorf("failed to seed store2: %w", err)
	}

	tenDaysAgo := time.Now().AddDate(0, 0, -10)
	store3, err := NewAccount("store3", "password123", "Pedro's Pantry", "789 Third St., Davao", "0934-567-8901", SubscriptionExpired, &tenDaysAgo)
	if err != nil {
		return fmt.Errorf("failed to seed store3: %w", err)
	}

	purchased := time.Date(2023, time.January, 1, 0, 0, 0, 0, time.Local)
	catalog := []*inventory.Item{
		{ProductName: "Bigas", Stock: 100, PurchasePrice: 38.0, Price: 40.0, LowStockThreshold: 20, PurchaseDate: purchased, Category: inventory.CategoryFood},
		{ProductName: "Tuyo", Stock: 50, PurchasePrice: 9.0, Price: 10.0, LowStockThreshold: 5, PurchaseDate: purchased, Category: inventory.CategoryFood},
		{ProductName: "Sardinas", Stock: 80, PurchasePrice: 20.0, Price: 25.0, LowStockThreshold: 10, PurchaseDate: purchased, Category: inventory.CategoryFood},
		{ProductName: "Sabon Panglaba", Stock: 60, PurchasePrice: 10.0, Price: 15.0, LowStockThreshold: 10, PurchaseDate: purchased, Category: inventory.CategoryToiletries},
		{ProductName: "Toothpaste", Stock: 40, PurchasePrice: 45.0, Price: 50.0, LowStockThreshold: 5, PurchaseDate: purchased, Category: inventory.CategoryToiletries},
		{ProductName: "Softdrinks", Stock: 100, PurchasePrice: 18.0, Price: 20.0, LowStockThreshold: 10, PurchaseDate: purchased, Category: inventory.CategoryBeverages},
		{ProductName: "Kape", Stock: 75, PurchasePrice: 10.0, Price: 12.0, LowStockThreshold: 10, PurchaseDate: purchased, Category: inventory.CategoryBeverages},
		{ProductName: "Chicharon", Stock: 30, PurchasePrice: 20.0, Price: 30.0, LowStockThreshold: 5, PurchaseDate: purchased, Category: inventory.CategorySnacks},
		{ProductName: "Yakult", Stock: 50, PurchasePrice: 6.0, Price: 8.0, LowStockThreshold: 10, PurchaseDate: purchased, Category: inventory.CategoryBeverages},
		{ProductName: "Cooking Oil", Stock: 20, PurchasePrice: 55.5, Price: 70.0, LowStockThreshold: 5, PurchaseDate: purchased, Category: inventory.CategoryHousehold},
	}
	for _, item := range catalog {
		admin.Inventory.AddItem(item)
	}

	items := admin.Inventory.View()
	seedSale := func(customer string, date time.Time, lines ...TransactionItem) {
		txn := NewTransaction(d.nextTransactionIDLocked(), customer, date)
		for _, line := range lines {
			// Seed quantities always fit the seeded stock.
			_ = txn.AddItem(line.Item, line.Quantity)
		}
		txn.CalculateTotal()
		admin.AddTransaction(txn)
	}

	seedSale("Juan Dela Cruz", time.Date(2023, time.January, 5, 0, 0, 0, 0, time.Local),
		TransactionItem{Item: items[0], Quantity: 5},  // Bigas
		TransactionItem{Item: items[1], Quantity: 10}, // Tuyo
	)
	seedSale("Maria Clara", time.Date(2023, time.March, 15, 0, 0, 0, 0, time.Local),
		TransactionItem{Item: items[2], Quantity: 3}, // Sardinas
		TransactionItem{Item: items[5], Quantity: 2}, // Softdrinks
	)
	seedSale("Jose Rizal", time.Date(2023, time.June, 10, 0, 0, 0, 0, time.Local),
		TransactionItem{Item: items[7], Quantity: 4}, // Chicharon
		TransactionItem{Item: items[9], Quantity: 1}, // Cooking Oil
	)

	d.accounts = append(d.accounts, admin, store1, store2, store3)
	return nil
}
