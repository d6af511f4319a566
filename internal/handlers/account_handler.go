package handlers

import (
	"errors"
	"net/http"
	"time"

	"go-tindahan/internal/store"

	"github.com/gin-gonic/gin"
)

type AccountRequest struct {
	Username           string     `json:"username" binding:"required"`
	Password           string     `json:"password"`
	StoreName          string     `json:"store_name" binding:"required"`
	StoreAddress       string     `json:"store_address"`
	ContactNumber      string     `json:"contact_number"`
	SubscriptionStatus string     `json:"subscription_status"`
	SubscriptionExpiry *time.Time `json:"subscription_expiry"`
}

// ListAccounts returns the admin projection of every account. Passwords
// and per-tenant data never appear here.
func (h *Handler) ListAccounts(c *gin.Context) {
	c.JSON(http.StatusOK, h.Dir.GetAllAccounts())
}

// CreateAccount registers a tenant. The core treats a nil expiry as
// "no expiry tracked"; defaulting to 30 days out is this caller layer's
// convention, so it is applied here.
func (h *Handler) CreateAccount(c *gin.Context) {
	var req AccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	if req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Password is required"})
		return
	}

	status := store.SubscriptionStatus(req.SubscriptionStatus)
	if req.SubscriptionStatus == "" {
		status = store.SubscriptionActive
	}
	expiry := req.SubscriptionExpiry
	if expiry == nil {
		in30Days := time.Now().AddDate(0, 0, 30)
		expiry = &in30Days
	}

	err := h.Dir.CreateAccount(req.Username, req.Password, req.StoreName, req.StoreAddress, req.ContactNumber, status, expiry)
	switch {
	case errors.Is(err, store.ErrUsernameTaken):
		c.JSON(http.StatusConflict, gin.H{"error": "Username already exists"})
	case errors.Is(err, store.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid subscription status"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
	default:
		c.JSON(http.StatusCreated, gin.H{"message": "Account created successfully", "username": req.Username})
	}
}

// UpdateAccount overwrites an account's details. The URL carries the
// original username; the body may rename it. An empty password keeps the
// current one.
func (h *Handler) UpdateAccount(c *gin.Context) {
	original := c.Param("username")

	var req AccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	status := store.SubscriptionStatus(req.SubscriptionStatus)
	err := h.Dir.UpdateAccount(original, req.Username, req.Password, req.StoreName, req.StoreAddress, req.ContactNumber, status, req.SubscriptionExpiry)
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
	case errors.Is(err, store.ErrUsernameTaken):
		c.JSON(http.StatusConflict, gin.H{"error": "New username already exists"})
	case errors.Is(err, store.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid subscription status"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update account"})
	default:
		c.JSON(http.StatusOK, gin.H{"message": "Account updated successfully"})
	}
}

// DeleteAccount removes a tenant. Deleting "admin" is always refused.
func (h *Handler) DeleteAccount(c *gin.Context) {
	username := c.Param("username")

	err := h.Dir.DeleteAccount(username)
	switch {
	case errors.Is(err, store.ErrAdminProtected):
		c.JSON(http.StatusForbidden, gin.H{"error": "Cannot delete admin account"})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete account"})
	default:
		c.JSON(http.StatusOK, gin.H{"message": "Account deleted successfully"})
	}
}

type ResetPasswordRequest struct {
	NewPassword string `json:"new_password" binding:"required"`
}

// ResetPassword unconditionally overwrites a tenant's credential.
func (h *Handler) ResetPassword(c *gin.Context) {
	username := c.Param("username")

	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "New password is required"})
		return
	}

	err := h.Dir.ResetPassword(username, req.NewPassword)
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset password"})
	default:
		c.JSON(http.StatusOK, gin.H{"message": "Password reset successfully"})
	}
}
