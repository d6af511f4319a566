package handlers

import (
	"errors"
	"net/http"
	"time"

	"go-tindahan/internal/inventory"
	"go-tindahan/internal/store"

	"github.com/gin-gonic/gin"
)

// CheckoutRequest defines what the frontend sends for a sale. An empty
// customer name means a walk-in customer; an empty date means "now".
type CheckoutRequest struct {
	CustomerName string           `json:"customer_name"`
	Date         string           `json:"date"` // YYYY-MM-DD, optional
	Items        []store.SaleLine `json:"items" binding:"required,min=1,dive"`
}

// Checkout records a sale. All lines are validated before anything
// mutates, so a rejected sale leaves stock exactly as it was.
func (h *Handler) Checkout(c *gin.Context) {
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	var date time.Time
	if req.Date != "" {
		parsed, err := time.ParseInLocation(dateLayout, req.Date, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
			return
		}
		date = parsed
	}

	txn, err := h.Dir.RecordSale(tenant(c), req.CustomerName, date, req.Items)
	switch {
	case errors.Is(err, inventory.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
	case errors.Is(err, inventory.ErrInsufficientStock):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Insufficient stock"})
	case errors.Is(err, store.ErrInvalidQuantity):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Quantity must be positive"})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record sale"})
	default:
		c.JSON(http.StatusOK, gin.H{
			"message":        "Sale successful!",
			"transaction_id": txn.ID,
			"total":          txn.TotalAmount,
		})
	}
}

// ListTransactions returns the tenant's sale history, oldest first.
func (h *Handler) ListTransactions(c *gin.Context) {
	transactions, err := h.Dir.Transactions(tenant(c))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		return
	}
	c.JSON(http.StatusOK, transactions)
}
