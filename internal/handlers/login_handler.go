package handlers

import (
	"errors"
	"net/http"

	"go-tindahan/internal/auth"
	"go-tindahan/internal/store"

	"github.com/gin-gonic/gin"
)

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login authenticates against the directory and hands back a JWT. Admin
// always gets through; tenants are refused while their subscription is
// expired.
func (h *Handler) Login(c *gin.Context) {
	var input LoginRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	account, err := h.Dir.Login(input.Username, input.Password)
	if err != nil {
		if errors.Is(err, store.ErrSubscriptionExpired) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Subscription expired"})
			return
		}
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	role := "store"
	if account.Username == store.AdminUsername {
		role = "admin"
	}

	token, err := auth.GenerateToken(account.Username, role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":      token,
		"role":       role,
		"username":   account.Username,
		"store_name": account.StoreName,
	})
}
