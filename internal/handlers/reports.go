package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"onswipes/internal/cache"
	"onswipes/internal/models"
	"onswipes/internal/reports"
)

const reportCacheTTL = 60 * time.Second

func GetDashboardReport(db *mongo.Database, rc *cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var cached reports.DashboardStats
		if rc.GetJSON(ctx, cacheKeyDashboard, &cached) {
			c.JSON(http.StatusOK, cached)
			return
		}

		orders, err := allOrders(ctx, db)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		stats := reports.Dashboard(orders)
		rc.SetJSON(ctx, cacheKeyDashboard, stats, reportCacheTTL)
		c.JSON(http.StatusOK, stats)
	}
}

func GetRevenueTrendReport(db *mongo.Database, rc *cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var cached []reports.TrendPoint
		if rc.GetJSON(ctx, cacheKeyTrend, &cached) {
			c.JSON(http.StatusOK, cached)
			return
		}

		orders, err := allOrders(ctx, db)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		points := reports.RevenueTrend(orders, time.Now(), 6)
		rc.SetJSON(ctx, cacheKeyTrend, points, reportCacheTTL)
		c.JSON(http.StatusOK, points)
	}
}

func GetTopEssencesReport(db *mongo.Database, rc *cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var cached []reports.EssenceVolume
		if rc.GetJSON(ctx, cacheKeyEssences, &cached) {
			c.JSON(http.StatusOK, cached)
			return
		}

		orders, err := allOrders(ctx, db)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		top := reports.TopEssences(orders, 5)
		rc.SetJSON(ctx, cacheKeyEssences, top, reportCacheTTL)
		c.JSON(http.StatusOK, top)
	}
}

func GetProductionReport(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		orders, err := allOrders(ctx, db)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		queue := reports.ProductionQueue(orders)
		views := make([]orderView, 0, len(queue))
		for _, o := range queue {
			views = append(views, viewOf(o))
		}
		c.JSON(http.StatusOK, views)
	}
}

func GetShippingReport(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		orders, err := allOrders(ctx, db)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		list := reports.ShippingList(orders)
		views := make([]orderView, 0, len(list))
		for _, o := range list {
			views = append(views, viewOf(o))
		}
		c.JSON(http.StatusOK, views)
	}
}

func GetFinancialReport(db *mongo.Database, rc *cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		type financialReport struct {
			Rows        []reports.ReceivableRow `json:"rows"`
			Outstanding float64                 `json:"outstanding"`
		}

		var cached financialReport
		if rc.GetJSON(ctx, cacheKeyReceivables, &cached) {
			c.JSON(http.StatusOK, cached)
			return
		}

		orders, err := allOrders(ctx, db)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		rows, outstanding := reports.Receivables(orders)
		report := financialReport{Rows: rows, Outstanding: outstanding}
		rc.SetJSON(ctx, cacheKeyReceivables, report, reportCacheTTL)
		c.JSON(http.StatusOK, report)
	}
}

func allOrders(ctx context.Context, db *mongo.Database) ([]models.Order, error) {
	cursor, err := db.Collection("orders").Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}
