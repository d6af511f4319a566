package store

import (
	"errors"
	"strconv"
	"strings"
	"sync"
	"time"

	"go-tindahan/internal/inventory"
)

// AdminUsername is reserved: it bypasses subscription gating and its
// account can never be deleted.
const AdminUsername = "admin"

var (
	// ErrNotFound means no account with the given username exists.
	ErrNotFound = errors.New("account not found")
	// ErrUsernameTaken means a create or rename collided with an existing account.
	ErrUsernameTaken = errors.New("username already exists")
	// ErrInvalidCredentials means the username is unknown or the password is wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrSubscriptionExpired blocks login for non-admin accounts.
	ErrSubscriptionExpired = errors.New("subscription expired")
	// ErrAdminProtected rejects deletion of the reserved admin account.
	ErrAdminProtected = errors.New("admin account cannot be deleted")
	// ErrInvalidStatus rejects an unknown subscription status string.
	ErrInvalidStatus = errors.New("invalid subscription status")
)

// AccountSummary is the admin-listing projection of an account. It
// deliberately excludes the password hash, catalog and history.
type AccountSummary struct {
	Username           string             `json:"username"`
	StoreName          string             `json:"store_name"`
	StoreAddress       string             `json:"store_address"`
	ContactNumber      string             `json:"contact_number"`
	SubscriptionStatus SubscriptionStatus `json:"subscription_status"`
	SubscriptionExpiry *time.Time         `json:"subscription_expiry"`
}

// SaleLine is one requested line of a checkout.
type SaleLine struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

// Directory holds every account in the process, in creation order. It is
// the system's only persistence mechanism and it is volatile: state lives
// in memory and is gone on restart. One lock guards the account list and
// the shared transaction counter; every mutation funnels through here.
type Directory struct {
	mu         sync.RWMutex
	accounts   []*StoreAccount
	txnCounter int
	categories *inventory.CategoryRegistry
}

func NewDirectory() *Directory {
	return &Directory{
		txnCounter: 1,
		categories: inventory.NewCategoryRegistry(),
	}
}

// Categories exposes the process-wide category registry.
func (d *Directory) Categories() *inventory.CategoryRegistry {
	return d.categories
}

// CreateAccount registers a new tenant. Fails with ErrUsernameTaken if the
// username is already in the directory; the existing account is untouched.
// A nil expiry means "no expiry tracked" - any default belongs to the caller.
func (d *Directory) CreateAccount(username, password, storeName, storeAddress, contactNumber string, status SubscriptionStatus, expiry *time.Time) error {
	if !status.Valid() {
		return ErrInvalidStatus
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.findLocked(username) != nil {
		return ErrUsernameTaken
	}

	account, err := NewAccount(username, password, storeName, storeAddress, contactNumber, status, expiry)
	if err != nil {
		return err
	}
	d.accounts = append(d.accounts, account)
	return nil
}

// UpdateAccount overwrites an account's details. Renaming fails if the
// new username belongs to a different account. An empty newPassword keeps
// the current credential; everything else is overwritten unconditionally.
func (d *Directory) UpdateAccount(originalUsername, newUsername, newPassword, storeName, storeAddress, contactNumber string, status SubscriptionStatus, expiry *time.Time) error {
	if !status.Valid() {
		return ErrInvalidStatus
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	account := d.findLocked(originalUsername)
	if account == nil {
		return ErrNotFound
	}
	if originalUsername != newUsername && d.findLocked(newUsername) != nil {
		return ErrUsernameTaken
	}

	account.Username = newUsername
	if strings.TrimSpace(newPassword) != "" {
		if err := account.SetPassword(newPassword); err != nil {
			return err
		}
	}
	account.StoreName = storeName
	account.StoreAddress = storeAddress
	account.ContactNumber = contactNumber
	account.SetSubscription(status, expiry)
	return nil
}

// DeleteAccount removes a tenant. The reserved admin account is always refused.
func (d *Directory) DeleteAccount(username string) error {
	if username == AdminUsername {
		return ErrAdminProtected
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	for idx, account := range d.accounts {
		if account.Username == username {
			d.accounts = append(d.accounts[:idx], d.accounts[idx+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// GetAllAccounts returns the admin-listing projection for every account,
// in creation order.
func (d *Directory) GetAllAccounts() []AccountSummary {
	d.mu.RLock()
	defer d.mu.RUnlock()

	summaries := make([]AccountSummary, 0, len(d.accounts))
	for _, account := range d.accounts {
		summaries = append(summaries, AccountSummary{
			Username:           account.Username,
			StoreName:          account.StoreName,
			StoreAddress:       account.StoreAddress,
			ContactNumber:      account.ContactNumber,
			SubscriptionStatus: account.Subscription.Status,
			SubscriptionExpiry: account.Subscription.ExpiryDate,
		})
	}
	return summaries
}

// FindByUsername resolves an account. The returned pointer is live
// shared state, so concurrent request paths must use the command
// methods or ReadAccount instead.
func (d *Directory) FindByUsername(username string) (*StoreAccount, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	account := d.findLocked(username)
	return account, account != nil
}

// Login authenticates a user. Admin logs in regardless of subscription
// state; anyone else is turned away while their subscription is expired
// (trial and active both pass).
func (d *Directory) Login(username, password string) (*StoreAccount, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	account := d.findLocked(username)
	if account == nil || !account.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}
	if username != AdminUsername && account.Subscription.Status == SubscriptionExpired {
		return nil, ErrSubscriptionExpired
	}
	return account, nil
}

// ResetPassword unconditionally overwrites the account's credential.
func (d *Directory) ResetPassword(username, newPassword string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	account := d.findLocked(username)
	if account == nil {
		return ErrNotFound
	}
	return account.SetPassword(newPassword)
}

// --- Per-account commands ---
// Handlers go through these instead of grabbing the account and mutating
// it themselves, so the directory lock covers every state change.

// AddInventoryItem adds a product to the tenant's catalog and returns the
// assigned product ID.
func (d *Directory) AddInventoryItem(username string, item *inventory.Item) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	account := d.findLocked(username)
	if account == nil {
		return "", ErrNotFound
	}
	return account.Inventory.AddItem(item), nil
}

// UpdateStock adjusts a product's stock by delta (negative removes).
func (d *Directory) UpdateStock(username, productID string, delta int) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	account := d.findLocked(username)
	if account == nil {
		return ErrNotFound
	}
	return account.Inventory.UpdateStock(productID, delta)
}

// UpdateInventoryItem applies a partial field update to a product.
func (d *Directory) UpdateInventoryItem(username, productID string, patch inventory.ItemPatch) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	account := d.findLocked(username)
	if account == nil {
		return ErrNotFound
	}
	return account.Inventory.UpdateItem(productID, patch)
}

// DeleteInventoryItem removes a product from the tenant's catalog.
func (d *Directory) DeleteInventoryItem(username, productID string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	account := d.findLocked(username)
	if account == nil {
		return ErrNotFound
	}
	if !account.Inventory.DeleteItem(productID) {
		return inventory.ErrNotFound
	}
	return nil
}

// ViewInventory returns the tenant's catalog as detached value copies:
// the caller can serialize them after the lock is released without
// racing a concurrent checkout or price edit.
func (d *Directory) ViewInventory(username string) ([]inventory.Item, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	account := d.findLocked(username)
	if account == nil {
		return nil, ErrNotFound
	}
	return copyItems(account.Inventory.View()), nil
}

// CheckLowStock returns detached copies of the tenant's items below
// their thresholds.
func (d *Directory) CheckLowStock(username string) ([]inventory.Item, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	account := d.findLocked(username)
	if account == nil {
		return nil, ErrNotFound
	}
	return copyItems(account.Inventory.LowStock()), nil
}

func copyItems(items []*inventory.Item) []inventory.Item {
	copies := make([]inventory.Item, 0, len(items))
	for _, item := range items {
		copies = append(copies, *item)
	}
	return copies
}

// RecordSale runs a full checkout: every line is validated up front so a
// failed sale leaves stock, history and the transaction counter untouched.
// On success the transaction is created, stock is decremented per line,
// the total is computed and the sale is appended to the account's history.
func (d *Directory) RecordSale(username, customerName string, date time.Time, lines []SaleLine) (*Transaction, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	account := d.findLocked(username)
	if account == nil {
		return nil, ErrNotFound
	}

	// Validate before mutating anything. Quantities for the same product
	// are summed so duplicate lines can't oversell between them.
	required := map[string]int{}
	for _, line := range lines {
		if line.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
		item, ok := account.Inventory.FindByID(line.ProductID)
		if !ok {
			return nil, inventory.ErrNotFound
		}
		required[line.ProductID] += line.Quantity
		if required[line.ProductID] > item.Stock {
			return nil, inventory.ErrInsufficientStock
		}
	}

	txn := NewTransaction(d.nextTransactionIDLocked(), customerName, date)
	for _, line := range lines {
		item, _ := account.Inventory.FindByID(line.ProductID)
		if err := txn.AddItem(item, line.Quantity); err != nil {
			return nil, err
		}
	}
	txn.CalculateTotal()
	account.AddTransaction(txn)
	detached := cloneTransaction(txn)
	return &detached, nil
}

// Transactions returns the tenant's sale history, oldest first, as
// detached copies safe to read outside the directory lock.
func (d *Directory) Transactions(username string) ([]Transaction, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	account := d.findLocked(username)
	if account == nil {
		return nil, ErrNotFound
	}
	history := make([]Transaction, 0, len(account.Transactions))
	for _, txn := range account.Transactions {
		history = append(history, cloneTransaction(txn))
	}
	return history, nil
}

// cloneTransaction snapshots a transaction and the items it references,
// so handlers can serialize it after the lock is released. Caller must
// hold d.mu.
func cloneTransaction(txn *Transaction) Transaction {
	detached := *txn
	lines := make([]TransactionItem, len(txn.ItemsSold))
	for i, line := range txn.ItemsSold {
		itemCopy := *line.Item
		lines[i] = TransactionItem{Item: &itemCopy, Quantity: line.Quantity}
	}
	detached.ItemsSold = lines
	return detached
}

// ReadAccount runs fn against the account while holding the directory
// read lock, so analytics can scan history and item fields without
// racing a concurrent checkout. fn must not retain the account or
// anything reachable from it past the call.
func (d *Directory) ReadAccount(username string, fn func(*StoreAccount)) error {
	d.mu.RLock()
	defer d.mu.RUnlock()

	account := d.findLocked(username)
	if account == nil {
		return ErrNotFound
	}
	fn(account)
	return nil
}

// nextTransactionIDLocked mints the next "T"+n ID. The counter is shared
// across all accounts, so transaction IDs are globally unique. Caller
// must hold d.mu.
func (d *Directory) nextTransactionIDLocked() string {
	id := "T" + strconv.Itoa(d.txnCounter)
	d.txnCounter++
	return id
}

// findLocked resolves a username. Caller must hold d.mu (read or write).
func (d *Directory) findLocked(username string) *StoreAccount {
	for _, account := range d.accounts {
		if account.Username == username {
			return account
		}
	}
	return nil
}
