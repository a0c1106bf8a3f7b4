package main

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"onswipes/internal/ai"
	"onswipes/internal/cache"
	"onswipes/internal/config"
	"onswipes/internal/database"
	"onswipes/internal/handlers"
	"onswipes/internal/middleware"
)

func main() {
	config.Load()

	client, err := database.Connect(config.AppEnv.MongoURI)
	if err != nil {
		log.Fatal(err)
	}

	db := client.Database(config.AppEnv.DBName)

	log.Println("MongoDB connected to:", db.Name())

	if err := database.EnsureOrderIndexes(db); err != nil {
		log.Println("⚠️ order index warning:", err)
	}
	if err := database.EnsureCustomerIndexes(db); err != nil {
		log.Println("⚠️ customer index warning:", err)
	}
	if err := database.EnsureCatalogIndexes(db); err != nil {
		log.Println("⚠️ catalog index warning:", err)
	}
	if err := database.EnsureAdminIndexes(db); err != nil {
		log.Println("⚠️ admin index warning:", err)
	}
	if err := database.EnsureAdminAccount(db, config.AppEnv.AdminEmail, config.AppEnv.AdminPassword); err != nil {
		log.Fatal("admin account seed failed:", err)
	}

	reportCache := cache.New(context.Background(), config.AppEnv.RedisURL)
	aiClient := ai.NewClient(config.AppEnv.GeminiAPIKey, config.AppEnv.GeminiModel)

	r := gin.Default()

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	r.POST("/auth/login", handlers.AdminLogin(db, config.AppEnv.JWTSecret, config.AppEnv.AccessTokenTTL))

	api := r.Group("/api")
	api.Use(middleware.AdminAuth(config.AppEnv.JWTSecret))
	{
		api.GET("/me", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"ok": true})
		})

		api.POST("/orders", handlers.CreateOrder(db, reportCache))
		api.GET("/orders", handlers.GetOrders(db))
		api.GET("/orders/:id", handlers.GetOrder(db))
		api.PUT("/orders/:id/status", handlers.UpdateOrderStatus(db, reportCache))
		api.DELETE("/orders/:id", handlers.DeleteOrder(db, reportCache))
		api.POST("/orders/:id/items/:itemId/deliveries", handlers.AddOrderDelivery(db, reportCache))
		api.POST("/orders/:id/payments", handlers.AddOrderPayment(db, reportCache))
		api.PUT("/orders/:id/payments/:paymentId", handlers.EditOrderPayment(db, reportCache))
		api.DELETE("/orders/:id/payments/:paymentId", handlers.DeleteOrderPayment(db, reportCache))

		api.POST("/customers", handlers.CreateCustomer(db))
		api.GET("/customers", handlers.GetCustomers(db))
		api.GET("/customers/:id", handlers.GetCustomer(db))
		api.PUT("/customers/:id", handlers.UpdateCustomer(db))
		api.DELETE("/customers/:id", handlers.DeleteCustomer(db))
		api.GET("/customers/:id/orders", handlers.GetCustomerOrders(db))
		api.GET("/customers/:id/financials", handlers.GetCustomerFinancials(db))
		api.GET("/customers/:id/statement", handlers.GetCustomerStatement(db))

		api.POST("/catalog", handlers.CreateCatalogItem(db))
		api.GET("/catalog", handlers.GetCatalogItems(db))
		api.PUT("/catalog/:id", handlers.UpdateCatalogItem(db))
		api.DELETE("/catalog/:id", handlers.DeleteCatalogItem(db))

		api.GET("/reports/dashboard", handlers.GetDashboardReport(db, reportCache))
		api.GET("/reports/trend", handlers.GetRevenueTrendReport(db, reportCache))
		api.GET("/reports/essences", handlers.GetTopEssencesReport(db, reportCache))
		api.GET("/reports/production", handlers.GetProductionReport(db))
		api.GET("/reports/shipping", handlers.GetShippingReport(db))
		api.GET("/reports/financial", handlers.GetFinancialReport(db, reportCache))

		api.POST("/ai/suggest-specs", handlers.SuggestSpecs(aiClient))
		api.POST("/ai/analyze-order/:id", handlers.AnalyzeOrder(aiClient, db))
	}

	r.Run(":" + config.AppEnv.Port)
}
