package store

import (
	"fmt"
	"time"

	"go-tindahan/internal/inventory"

	"golang.org/x/crypto/bcrypt"
)

// SubscriptionStatus gates non-admin login.
type SubscriptionStatus string

const (
	SubscriptionActive  SubscriptionStatus = "active"
	SubscriptionTrial   SubscriptionStatus = "trial"
	SubscriptionExpired SubscriptionStatus = "expired"
)

func (s SubscriptionStatus) Valid() bool {
	switch s {
	case SubscriptionActive, SubscriptionTrial, SubscriptionExpired:
		return true
	}
	return false
}

// SubscriptionInfo is never transitioned automatically: nothing flips a
// subscription to expired when ExpiryDate passes. The status field alone
// is what login checks; expiry enforcement is the admin's job.
type SubscriptionInfo struct {
	Status     SubscriptionStatus `json:"status"`
	ExpiryDate *time.Time         `json:"expiry_date"` // nil = no expiry tracked
}

// StoreAccount is one tenant: its catalog, its sale history, and its
// subscription. Passwords are stored as bcrypt hashes only.
type StoreAccount struct {
	Username      string
	passwordHash  string
	StoreName     string
	StoreAddress  string
	ContactNumber string
	Inventory     *inventory.Controller
	Transactions  []*Transaction
	Subscription  SubscriptionInfo
}

// NewAccount builds an account with an empty catalog and history.
func NewAccount(username, password, storeName, storeAddress, contactNumber string, status SubscriptionStatus, expiry *time.Time) (*StoreAccount, error) {
	account := &StoreAccount{
		Username:      username,
		StoreName:     storeName,
		StoreAddress:  storeAddress,
		ContactNumber: contactNumber,
		Inventory:     inventory.NewController(),
		Transactions:  []*Transaction{},
		Subscription:  SubscriptionInfo{Status: status, ExpiryDate: expiry},
	}
	if err := account.SetPassword(password); err != nil {
		return nil, err
	}
	return account, nil
}

// SetPassword replaces the stored credential with a bcrypt hash.
func (a *StoreAccount) SetPassword(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	a.passwordHash = string(hash)
	return nil
}

// CheckPassword compares a candidate password against the stored hash.
func (a *StoreAccount) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(a.passwordHash), []byte(password)) == nil
}

// AddTransaction appends a finalized sale to the account's history.
// Transactions are never mutated or deleted afterwards.
func (a *StoreAccount) AddTransaction(t *Transaction) {
	a.Transactions = append(a.Transactions, t)
}

// SetSubscription replaces the subscription record.
func (a *StoreAccount) SetSubscription(status SubscriptionStatus, expiry *time.Time) {
	a.Subscription = SubscriptionInfo{Status: status, ExpiryDate: expiry}
}
