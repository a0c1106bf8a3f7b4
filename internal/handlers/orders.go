package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"onswipes/internal/cache"
	"onswipes/internal/ledger"
	"onswipes/internal/models"
)

/* =========================
   REQUEST DTOs
========================= */

type createOrderItemRequest struct {
	CatalogItemID string              `json:"catalogItemId"`
	Specs         models.ProductSpecs `json:"specs"`
	Quantity      int                 `json:"quantity" binding:"required"`
	UnitPrice     float64             `json:"unitPrice"`
	ImageURL      string              `json:"imageUrl"`
}

type createOrderRequest struct {
	CustomerID            string                   `json:"customerId"`
	Client                models.ClientInfo        `json:"client" binding:"required"`
	Items                 []createOrderItemRequest `json:"items" binding:"required"`
	Currency              models.Currency          `json:"currency" binding:"required"`
	VATRate               float64                  `json:"vatRate"`
	DownPayment           float64                  `json:"downPayment"`
	OrderDate             time.Time                `json:"orderDate"`
	EstimatedDeliveryDate time.Time                `json:"estimatedDeliveryDate"`
	Notes                 string                   `json:"notes"`
	Status                models.OrderStatus       `json:"status"`
}

type statusUpdateRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
}

type deliveryRequest struct {
	Date     time.Time `json:"date"`
	Quantity int       `json:"quantity" binding:"required"`
	Note     string    `json:"note"`
}

type paymentRequest struct {
	Amount float64   `json:"amount" binding:"required"`
	Date   time.Time `json:"date"`
	Note   string    `json:"note"`
}

// orderView decorates the stored order with the derived ledger figures
// the dashboard renders next to it.
type orderView struct {
	models.Order
	TotalPaid        float64 `json:"totalPaid"`
	Balance          float64 `json:"balance"`
	DeliveryProgress float64 `json:"deliveryProgress"`
}

func viewOf(o models.Order) orderView {
	return orderView{
		Order:            o,
		TotalPaid:        ledger.TotalPaid(o),
		Balance:          ledger.Balance(o),
		DeliveryProgress: ledger.DeliveryProgress(o),
	}
}

/* =========================
   CREATE ORDER
========================= */

func CreateOrder(db *mongo.Database, rc *cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/orders"
		defer handlePanic(c, route)

		if err := ensureDBConnection(c.Request.Context(), db); err != nil {
			respondWithError(c, http.StatusServiceUnavailable, route, "database unavailable")
			return
		}

		var req createOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		// Items created from a catalog template inherit its specs, image
		// and base price; request fields win where both are set.
		for i := range req.Items {
			if req.Items[i].CatalogItemID == "" {
				continue
			}
			template, err := findCatalogItem(ctx, db, req.Items[i].CatalogItemID)
			if err != nil {
				respondWithError(c, http.StatusBadRequest, route, "catalog item not found")
				return
			}
			if req.Items[i].Specs == (models.ProductSpecs{}) {
				req.Items[i].Specs = template.Specs
			}
			if req.Items[i].UnitPrice == 0 {
				req.Items[i].UnitPrice = template.BasePrice
			}
			if req.Items[i].ImageURL == "" {
				req.Items[i].ImageURL = template.ImageURL
			}
		}

		order, err := buildOrderFromRequest(req, time.Now())
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		if req.CustomerID != "" {
			customerID, err := primitive.ObjectIDFromHex(req.CustomerID)
			if err != nil {
				respondWithError(c, http.StatusBadRequest, route, "invalid customerId")
				return
			}
			if err := db.Collection("customers").FindOne(ctx, bson.M{"_id": customerID}).Err(); err != nil {
				respondWithError(c, http.StatusBadRequest, route, "customer not found")
				return
			}
			order.CustomerID = &customerID
		}

		res, err := db.Collection("orders").InsertOne(ctx, order)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if id, ok := res.InsertedID.(primitive.ObjectID); ok {
			order.ID = id
		}

		invalidateReportCaches(ctx, rc)
		log.Println("[ORDER] [INFO] order created:", order.ID.Hex())
		c.JSON(http.StatusCreated, viewOf(order))
	}
}

/* =========================
   LIST / GET
========================= */

func GetOrders(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		filter := bson.M{}
		if status := strings.TrimSpace(c.Query("status")); status != "" {
			if !models.OrderStatus(status).Valid() {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
				return
			}
			filter["status"] = status
		}

		opts := options.Find().SetSort(bson.D{{Key: "orderDate", Value: -1}})
		cursor, err := db.Collection("orders").Find(ctx, filter, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		defer cursor.Close(ctx)

		var orders []models.Order
		if err := cursor.All(ctx, &orders); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "decode error"})
			return
		}

		views := make([]orderView, 0, len(orders))
		for _, o := range orders {
			views = append(views, viewOf(o))
		}
		c.JSON(http.StatusOK, views)
	}
}

func GetOrder(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		order, status, err := findOrder(ctx, db, c.Param("id"))
		if err != nil {
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, viewOf(order))
	}
}

/* =========================
   STATUS
========================= */

func UpdateOrderStatus(db *mongo.Database, rc *cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req statusUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}
		if !req.Status.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
			return
		}

		orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		result, err := db.Collection("orders").UpdateOne(
			ctx,
			bson.M{"_id": orderID},
			bson.M{"$set": bson.M{"status": req.Status}},
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		if result.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}

		invalidateReportCaches(ctx, rc)
		c.JSON(http.StatusOK, gin.H{"message": "status updated"})
	}
}

/* =========================
   DELIVERIES
========================= */

func AddOrderDelivery(db *mongo.Database, rc *cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/orders/:id/items/:itemId/deliveries"
		defer handlePanic(c, route)

		var req deliveryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}
		if req.Date.IsZero() {
			req.Date = time.Now()
		}
		itemID := c.Param("itemId")

		mutateOrder(c, db, rc, route, func(o models.Order) (models.Order, error) {
			return ledger.AddDelivery(o, itemID, ledger.NewDelivery(req.Date, req.Quantity, req.Note))
		})
	}
}

/* =========================
   PAYMENTS
========================= */

func AddOrderPayment(db *mongo.Database, rc *cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/orders/:id/payments"
		defer handlePanic(c, route)

		var req paymentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}
		if req.Date.IsZero() {
			req.Date = time.Now()
		}

		mutateOrder(c, db, rc, route, func(o models.Order) (models.Order, error) {
			return ledger.AddPayment(o, ledger.NewPayment(req.Date, req.Amount, req.Note))
		})
	}
}

func EditOrderPayment(db *mongo.Database, rc *cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /api/orders/:id/payments/:paymentId"
		defer handlePanic(c, route)

		var req paymentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}
		if req.Date.IsZero() {
			req.Date = time.Now()
		}
		paymentID := c.Param("paymentId")

		mutateOrder(c, db, rc, route, func(o models.Order) (models.Order, error) {
			return ledger.EditPayment(o, paymentID, req.Amount, req.Date, req.Note)
		})
	}
}

func DeleteOrderPayment(db *mongo.Database, rc *cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /api/orders/:id/payments/:paymentId"
		defer handlePanic(c, route)

		paymentID := c.Param("paymentId")
		mutateOrder(c, db, rc, route, func(o models.Order) (models.Order, error) {
			return ledger.DeletePayment(o, paymentID), nil
		})
	}
}

/* =========================
   DELETE ORDER
========================= */

func DeleteOrder(db *mongo.Database, rc *cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		result, err := db.Collection("orders").DeleteOne(ctx, bson.M{"_id": orderID})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		if result.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}

		invalidateReportCaches(ctx, rc)
		c.JSON(http.StatusOK, gin.H{"message": "order deleted"})
	}
}

/* =========================
   SHARED MUTATION FLOW
========================= */

// mutateOrder is the read-modify-replace cycle every ledger mutation
// goes through: load the order, apply the pure function, persist the
// returned value whole. A single dashboard operator means no concurrent
// writers, so no transaction is needed here.
func mutateOrder(c *gin.Context, db *mongo.Database, rc *cache.Cache, route string, fn func(models.Order) (models.Order, error)) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	order, status, err := findOrder(ctx, db, c.Param("id"))
	if err != nil {
		respondWithError(c, status, route, err.Error())
		return
	}

	updated, err := fn(order)
	if err != nil {
		var exceedsErr ledger.ExceedsBalanceError
		if errors.As(err, &exceedsErr) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":     exceedsErr.Error(),
				"allowable": exceedsErr.Allowable,
				"currency":  exceedsErr.Currency,
			})
			return
		}
		switch {
		case errors.Is(err, ledger.ErrPaymentNotFound), errors.Is(err, ledger.ErrItemNotFound):
			respondWithError(c, http.StatusNotFound, route, err.Error())
		default:
			respondWithError(c, http.StatusBadRequest, route, err.Error())
		}
		return
	}

	if _, err := db.Collection("orders").ReplaceOne(ctx, bson.M{"_id": order.ID}, updated); err != nil {
		respondWithError(c, http.StatusInternalServerError, route, "db error")
		return
	}

	invalidateReportCaches(ctx, rc)
	c.JSON(http.StatusOK, viewOf(updated))
}

func findOrder(ctx context.Context, db *mongo.Database, rawID string) (models.Order, int, error) {
	orderID, err := primitive.ObjectIDFromHex(rawID)
	if err != nil {
		return models.Order{}, http.StatusBadRequest, errors.New("invalid id")
	}

	var order models.Order
	err = db.Collection("orders").FindOne(ctx, bson.M{"_id": orderID}).Decode(&order)
	if err == mongo.ErrNoDocuments {
		return models.Order{}, http.StatusNotFound, errors.New("order not found")
	}
	if err != nil {
		return models.Order{}, http.StatusInternalServerError, errors.New("db error")
	}
	return order, http.StatusOK, nil
}

/* =========================
   BUILD ORDER
========================= */

func buildOrderFromRequest(req createOrderRequest, now time.Time) (models.Order, error) {
	if len(req.Items) == 0 {
		return models.Order{}, errors.New("at least one item is required")
	}
	if strings.TrimSpace(req.Client.CompanyName) == "" {
		return models.Order{}, errors.New("companyName is required")
	}
	if !req.Currency.Valid() {
		return models.Order{}, errors.New("invalid currency")
	}
	if req.VATRate < 0 {
		return models.Order{}, errors.New("vatRate must be zero or greater")
	}
	if req.DownPayment < 0 {
		return models.Order{}, errors.New("downPayment must be zero or greater")
	}

	status := req.Status
	if status == "" {
		status = models.StatusPending
	}
	if !status.Valid() {
		return models.Order{}, errors.New("invalid status")
	}

	items := make([]models.OrderItem, 0, len(req.Items))
	var subTotal float64
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return models.Order{}, errors.New("quantity must be greater than zero")
		}
		if item.UnitPrice < 0 {
			return models.Order{}, errors.New("unitPrice must be zero or greater")
		}

		totalPrice := float64(item.Quantity) * item.UnitPrice
		items = append(items, models.OrderItem{
			ID:         primitive.NewObjectID().Hex(),
			Specs:      item.Specs,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
			TotalPrice: totalPrice,
			Deliveries: []models.Delivery{},
			ImageURL:   strings.TrimSpace(item.ImageURL),
		})
		subTotal += totalPrice
	}

	totalAmount := subTotal * (1 + req.VATRate/100)
	if req.DownPayment > totalAmount+ledger.BalanceTolerance {
		return models.Order{}, errors.New("downPayment cannot exceed the grand total")
	}

	orderDate := req.OrderDate
	if orderDate.IsZero() {
		orderDate = now
	}

	return models.Order{
		Client: req.Client,
		Items:  items,
		Financials: models.Financials{
			Currency:    req.Currency,
			SubTotal:    subTotal,
			VATRate:     req.VATRate,
			TotalAmount: totalAmount,
			DownPayment: req.DownPayment,
		},
		OrderDate:             orderDate,
		EstimatedDeliveryDate: req.EstimatedDeliveryDate,
		Notes:                 strings.TrimSpace(req.Notes),
		Status:                status,
		PaymentHistory:        []models.PaymentTransaction{},
		SchemaVersion:         models.SchemaVersion,
		CreatedAt:             now,
	}, nil
}
