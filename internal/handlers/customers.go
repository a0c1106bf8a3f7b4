package handlers

import (
	"context"
	"errors"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"onswipes/internal/models"
	"onswipes/internal/statement"
)

type customerRequest struct {
	Info  models.ClientInfo `json:"info" binding:"required"`
	Notes string            `json:"notes"`
	Tags  []string          `json:"tags"`
}

func CreateCustomer(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req customerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}
		if strings.TrimSpace(req.Info.CompanyName) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "companyName is required"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		now := time.Now()
		customer := models.Customer{
			Info:      req.Info,
			Notes:     strings.TrimSpace(req.Notes),
			Tags:      models.StringList(req.Tags),
			CreatedAt: now,
			UpdatedAt: now,
		}

		res, err := db.Collection("customers").InsertOne(ctx, customer)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		if id, ok := res.InsertedID.(primitive.ObjectID); ok {
			customer.ID = id
		}
		c.JSON(http.StatusCreated, customer)
	}
}

func GetCustomers(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, limit, err := parsePaginationParams(
			c.Query("page"),
			c.Query("limit"),
		)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		filter := bson.M{}
		if search := strings.TrimSpace(c.Query("search")); search != "" {
			filter["$or"] = []bson.M{
				{"info.companyName": bson.M{"$regex": search, "$options": "i"}},
				{"info.contactPerson": bson.M{"$regex": search, "$options": "i"}},
				{"info.phone": bson.M{"$regex": search, "$options": "i"}},
			}
		}

		total, err := db.Collection("customers").CountDocuments(ctx, filter)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		totalPages := int64(0)
		if total > 0 {
			totalPages = int64(math.Ceil(float64(total) / float64(limit)))
		}

		opts := options.Find().
			SetSkip((page - 1) * limit).
			SetLimit(limit).
			SetSort(bson.D{{Key: "info.companyName", Value: 1}})

		cursor, err := db.Collection("customers").Find(ctx, filter, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		defer cursor.Close(ctx)

		var customers []models.Customer
		if err := cursor.All(ctx, &customers); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "decode error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"data": customers,
			"pagination": gin.H{
				"page":       page,
				"limit":      limit,
				"total":      total,
				"totalPages": totalPages,
			},
		})
	}
}

func GetCustomer(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		customer, status, err := findCustomer(ctx, db, c.Param("id"))
		if err != nil {
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, customer)
	}
}

func UpdateCustomer(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		customerID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		var req customerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}
		if strings.TrimSpace(req.Info.CompanyName) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "companyName is required"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		// Orders keep their own client snapshot; this touches the
		// customer record only.
		result, err := db.Collection("customers").UpdateOne(
			ctx,
			bson.M{"_id": customerID},
			bson.M{"$set": bson.M{
				"info":      req.Info,
				"notes":     strings.TrimSpace(req.Notes),
				"tags":      models.StringList(req.Tags),
				"updatedAt": time.Now(),
			}},
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		if result.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "customer not found"})
			return
		}

		customer, status, err := findCustomer(ctx, db, c.Param("id"))
		if err != nil {
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, customer)
	}
}

// DeleteCustomer removes the record. Orders referencing it keep working
// off their snapshot; only the customerId link goes stale.
func DeleteCustomer(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		customerID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		result, err := db.Collection("customers").DeleteOne(ctx, bson.M{"_id": customerID})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		if result.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "customer not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "customer deleted"})
	}
}

func GetCustomerOrders(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		customer, status, err := findCustomer(ctx, db, c.Param("id"))
		if err != nil {
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}

		orders, err := ordersOfCustomer(ctx, db, customer.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		views := make([]orderView, 0, len(orders))
		for _, o := range orders {
			views = append(views, viewOf(o))
		}
		c.JSON(http.StatusOK, views)
	}
}

func GetCustomerFinancials(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		customer, status, err := findCustomer(ctx, db, c.Param("id"))
		if err != nil {
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}

		orders, err := ordersOfCustomer(ctx, db, customer.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		f := statement.Financials(orders)
		c.JSON(http.StatusOK, gin.H{
			"totalDebt":  f.TotalDebt,
			"totalPaid":  f.TotalPaid,
			"balance":    f.Balance,
			"orderCount": len(orders),
		})
	}
}

// GetCustomerStatement returns the account statement as plain text, the
// exact block the dashboard copies to the clipboard.
func GetCustomerStatement(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		customer, status, err := findCustomer(ctx, db, c.Param("id"))
		if err != nil {
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}

		orders, err := ordersOfCustomer(ctx, db, customer.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		asOf := time.Now()
		if raw := strings.TrimSpace(c.Query("asOf")); raw != "" {
			parsed, err := time.Parse("2006-01-02", raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "asOf must be YYYY-MM-DD"})
				return
			}
			asOf = parsed
		}

		c.String(http.StatusOK, statement.Render(customer, orders, asOf))
	}
}

func findCustomer(ctx context.Context, db *mongo.Database, rawID string) (models.Customer, int, error) {
	customerID, err := primitive.ObjectIDFromHex(rawID)
	if err != nil {
		return models.Customer{}, http.StatusBadRequest, errors.New("invalid id")
	}

	var customer models.Customer
	err = db.Collection("customers").FindOne(ctx, bson.M{"_id": customerID}).Decode(&customer)
	if err == mongo.ErrNoDocuments {
		return models.Customer{}, http.StatusNotFound, errors.New("customer not found")
	}
	if err != nil {
		return models.Customer{}, http.StatusInternalServerError, errors.New("db error")
	}
	return customer, http.StatusOK, nil
}

func ordersOfCustomer(ctx context.Context, db *mongo.Database, customerID primitive.ObjectID) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "orderDate", Value: -1}})
	cursor, err := db.Collection("orders").Find(ctx, bson.M{"customerId": customerID}, opts)
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
