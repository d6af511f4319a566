package main

import (
	"log"
	"os"
	"strings"
	"time"

	"go-tindahan/internal/handlers"
	"go-tindahan/internal/middleware"
	"go-tindahan/internal/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: No .env file found")
	}

	// All state lives in this directory: in-memory, gone on restart.
	dir := store.NewDirectory()
	if err := dir.Preload(); err != nil {
		log.Fatal("Failed to preload accounts:", err)
	}
	log.Println("✅ Account directory seeded!")

	r := gin.Default()

	allowOrigins := []string{"http://localhost:5173"}
	if env := os.Getenv("ALLOW_ORIGINS"); env != "" {
		allowOrigins = strings.Split(env, ",")
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	h := handlers.New(dir)

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "online"}) })
	r.POST("/login", h.Login)

	// --- PROTECTED ROUTES ---
	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware())
	{
		// STORE OWNERS & ADMIN
		api.GET("/inventory", h.ListInventory)
		api.POST("/inventory", h.AddProduct)
		api.PUT("/inventory/:id", h.UpdateProduct)
		api.PUT("/inventory/:id/stock", h.UpdateStock)
		api.DELETE("/inventory/:id", h.DeleteProduct)
		api.GET("/inventory/low-stock", h.LowStock)

		api.GET("/categories", h.ListCategories)
		api.POST("/categories", h.AddCategory)

		api.POST("/checkout", h.Checkout)
		api.GET("/transactions", h.ListTransactions)

		api.GET("/reports/sales", h.GetSalesReport)
		api.GET("/reports/sales/export", h.ExportSalesReport)
		api.GET("/reports/expenses", h.GetExpensesReport)
		api.GET("/reports/expenses/export", h.ExportExpensesReport)

		// ADMIN ONLY
		admin := api.Group("/admin")
		admin.Use(middleware.RequireRole("admin"))
		{
			admin.POST("/ask", h.AskAI)

			admin.GET("/accounts", h.ListAccounts)
			admin.POST("/accounts", h.CreateAccount)
			admin.PUT("/accounts/:username", h.UpdateAccount)
			admin.DELETE("/accounts/:username", h.DeleteAccount)
			admin.POST("/accounts/:username/reset-password", h.ResetPassword)
		}
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Println("🚀 Server starting on :" + port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("Server failed to start:", err)
	}
}
