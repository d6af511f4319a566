package handlers

import (
	"errors"
	"net/http"
	"time"

	"go-tindahan/internal/inventory"
	"go-tindahan/internal/store"

	"github.com/gin-gonic/gin"
)

// tenant resolves the account the request operates on from the token
// claims set by the auth middleware.
func tenant(c *gin.Context) string {
	return c.GetString("username")
}

const dateLayout = "2006-01-02"

type ProductRequest struct {
	ProductName       string  `json:"product_name" binding:"required"`
	Stock             int     `json:"stock" binding:"min=0"`
	PurchasePrice     float64 `json:"purchase_price" binding:"min=0"`
	Price             float64 `json:"price" binding:"min=0"`
	LowStockThreshold int     `json:"low_stock_threshold" binding:"min=0"`
	PurchaseDate      string  `json:"purchase_date"` // YYYY-MM-DD, defaults to today
	Category          string  `json:"category"`
}

// ListInventory returns the tenant's catalog.
func (h *Handler) ListInventory(c *gin.Context) {
	items, err := h.Dir.ViewInventory(tenant(c))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		return
	}
	c.JSON(http.StatusOK, items)
}

// AddProduct inserts a catalog item; the controller assigns its ID.
func (h *Handler) AddProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	purchaseDate := time.Now()
	if req.PurchaseDate != "" {
		parsed, err := time.ParseInLocation(dateLayout, req.PurchaseDate, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "purchase_date must be YYYY-MM-DD"})
			return
		}
		purchaseDate = parsed
	}
	category := req.Category
	if category == "" {
		category = inventory.CategoryOther
	}

	item := &inventory.Item{
		ProductName:       req.ProductName,
		Stock:             req.Stock,
		PurchasePrice:     req.PurchasePrice,
		Price:             req.Price,
		LowStockThreshold: req.LowStockThreshold,
		PurchaseDate:      purchaseDate,
		Category:          category,
	}

	// Copy before the item joins the shared catalog; serializing the
	// live pointer after insert would race other writers.
	created := *item
	productID, err := h.Dir.AddInventoryItem(tenant(c), item)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		return
	}
	created.ProductID = productID
	c.JSON(http.StatusCreated, gin.H{"message": "Product added successfully", "product": created, "product_id": productID})
}

// Delta is a pointer so an explicit zero survives binding; zero is a
// valid no-op restock.
type StockUpdateRequest struct {
	Delta *int `json:"delta" binding:"required"`
}

// UpdateStock adds or removes units. Removing more than is on hand is
// rejected without touching the item.
func (h *Handler) UpdateStock(c *gin.Context) {
	var req StockUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Delta == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "delta is required"})
		return
	}

	err := h.Dir.UpdateStock(tenant(c), c.Param("id"), *req.Delta)
	switch {
	case errors.Is(err, inventory.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
	case errors.Is(err, inventory.ErrInsufficientStock):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Insufficient stock"})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update stock"})
	default:
		c.JSON(http.StatusOK, gin.H{"message": "Stock updated successfully"})
	}
}

type ProductPatchRequest struct {
	ProductName       *string  `json:"product_name"`
	Stock             *int     `json:"stock" binding:"omitnil,min=0"`
	Price             *float64 `json:"price" binding:"omitnil,min=0"`
	PurchasePrice     *float64 `json:"purchase_price" binding:"omitnil,min=0"`
	LowStockThreshold *int     `json:"low_stock_threshold" binding:"omitnil,min=0"`
	PurchaseDate      *string  `json:"purchase_date"`
	Category          *string  `json:"category"`
}

// UpdateProduct applies a partial update; only the fields present in the
// body are overwritten.
func (h *Handler) UpdateProduct(c *gin.Context) {
	var req ProductPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	patch := inventory.ItemPatch{
		ProductName:       req.ProductName,
		Stock:             req.Stock,
		Price:             req.Price,
		PurchasePrice:     req.PurchasePrice,
		LowStockThreshold: req.LowStockThreshold,
		Category:          req.Category,
	}
	if req.PurchaseDate != nil {
		parsed, err := time.ParseInLocation(dateLayout, *req.PurchaseDate, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "purchase_date must be YYYY-MM-DD"})
			return
		}
		patch.PurchaseDate = &parsed
	}

	err := h.Dir.UpdateInventoryItem(tenant(c), c.Param("id"), patch)
	switch {
	case errors.Is(err, inventory.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
	default:
		c.JSON(http.StatusOK, gin.H{"message": "Product updated successfully"})
	}
}

// DeleteProduct removes a catalog item. Its ID is never reused.
func (h *Handler) DeleteProduct(c *gin.Context) {
	err := h.Dir.DeleteInventoryItem(tenant(c), c.Param("id"))
	switch {
	case errors.Is(err, inventory.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
	default:
		c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
	}
}

// LowStock lists every item strictly below its threshold.
func (h *Handler) LowStock(c *gin.Context) {
	items, err := h.Dir.CheckLowStock(tenant(c))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		return
	}
	c.JSON(http.StatusOK, items)
}

// ListCategories returns the built-in categories plus every registered custom.
func (h *Handler) ListCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": h.Dir.Categories().All()})
}

type CategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

// AddCategory registers a custom category name.
func (h *Handler) AddCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Category name is required"})
		return
	}
	if !h.Dir.Categories().AddCustom(req.Name) {
		c.JSON(http.StatusConflict, gin.H{"error": "Category already exists"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Category added successfully"})
}
