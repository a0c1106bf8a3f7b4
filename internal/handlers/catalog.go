package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"onswipes/internal/models"
)

type catalogItemRequest struct {
	Title       string              `json:"title" binding:"required"`
	Description string              `json:"description"`
	ImageURL    string              `json:"imageUrl"`
	Specs       models.ProductSpecs `json:"specs"`
	BasePrice   float64             `json:"basePrice"`
}

func CreateCatalogItem(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req catalogItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}
		if req.BasePrice < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "basePrice must be zero or greater"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		item := models.CatalogItem{
			Title:       strings.TrimSpace(req.Title),
			Description: strings.TrimSpace(req.Description),
			ImageURL:    strings.TrimSpace(req.ImageURL),
			Specs:       req.Specs,
			BasePrice:   req.BasePrice,
			CreatedAt:   time.Now(),
		}

		res, err := db.Collection("catalog").InsertOne(ctx, item)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		if id, ok := res.InsertedID.(primitive.ObjectID); ok {
			item.ID = id
		}
		c.JSON(http.StatusCreated, item)
	}
}

func GetCatalogItems(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
		cursor, err := db.Collection("catalog").Find(ctx, bson.M{}, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		defer cursor.Close(ctx)

		var items []models.CatalogItem
		if err := cursor.All(ctx, &items); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "decode error"})
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

func UpdateCatalogItem(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		itemID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		var req catalogItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}
		if req.BasePrice < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "basePrice must be zero or greater"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		result, err := db.Collection("catalog").UpdateOne(
			ctx,
			bson.M{"_id": itemID},
			bson.M{"$set": bson.M{
				"title":       strings.TrimSpace(req.Title),
				"description": strings.TrimSpace(req.Description),
				"imageUrl":    strings.TrimSpace(req.ImageURL),
				"specs":       req.Specs,
				"basePrice":   req.BasePrice,
			}},
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		if result.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "catalog item not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "catalog item updated"})
	}
}

// DeleteCatalogItem removes the template. Orders created from it carry
// their own copy of the specs, so nothing dangles.
func DeleteCatalogItem(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		itemID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		result, err := db.Collection("catalog").DeleteOne(ctx, bson.M{"_id": itemID})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		if result.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "catalog item not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "catalog item deleted"})
	}
}

func findCatalogItem(ctx context.Context, db *mongo.Database, rawID string) (models.CatalogItem, error) {
	itemID, err := primitive.ObjectIDFromHex(rawID)
	if err != nil {
		return models.CatalogItem{}, errors.New("invalid catalog item id")
	}

	var item models.CatalogItem
	err = db.Collection("catalog").FindOne(ctx, bson.M{"_id": itemID}).Decode(&item)
	if err == mongo.ErrNoDocuments {
		return models.CatalogItem{}, errors.New("catalog item not found")
	}
	if err != nil {
		return models.CatalogItem{}, err
	}
	return item, nil
}
