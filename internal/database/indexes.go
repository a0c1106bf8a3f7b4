package database

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func EnsureOrderIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("orders").Indexes()

	// Order lists are always served newest first.
	orderDateIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "orderDate", Value: -1}},
		Options: options.Index().SetName("orderDate_desc"),
	}
	customerIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "customerId", Value: 1}},
		Options: options.Index().SetName("customerId_index"),
	}
	statusIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "status", Value: 1}},
		Options: options.Index().SetName("status_index"),
	}

	log.Println("EnsureOrderIndexes: creating order indexes")
	_, err := indexes.CreateMany(ctx, []mongo.IndexModel{orderDateIndex, customerIndex, statusIndex})
	if err != nil {
		log.Println("EnsureOrderIndexes: order index error:", err)
		return err
	}
	log.Println("EnsureOrderIndexes: order indexes created")
	return nil
}

func EnsureCustomerIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("customers").Indexes()

	companyIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "info.companyName", Value: 1}},
		Options: options.Index().SetName("companyName_index"),
	}

	log.Println("EnsureCustomerIndexes: creating companyName_index index")
	_, err := indexes.CreateOne(ctx, companyIndex)
	if err != nil {
		log.Println("EnsureCustomerIndexes: companyName index error:", err)
		return err
	}
	log.Println("EnsureCustomerIndexes: companyName_index index created")
	return nil
}

func EnsureCatalogIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("catalog").Indexes()

	titleIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "title", Value: 1}},
		Options: options.Index().SetName("title_index"),
	}

	log.Println("EnsureCatalogIndexes: creating title_index index")
	_, err := indexes.CreateOne(ctx, titleIndex)
	if err != nil {
		log.Println("EnsureCatalogIndexes: title index error:", err)
		return err
	}
	log.Println("EnsureCatalogIndexes: title_index index created")
	return nil
}

func EnsureAdminIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("admins").Indexes()

	emailIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "email", Value: 1}},
		Options: options.Index().
			SetName("email_unique").
			SetUnique(true),
	}

	log.Println("EnsureAdminIndexes: creating email_unique index")
	_, err := indexes.CreateOne(ctx, emailIndex)
	if err != nil {
		log.Println("EnsureAdminIndexes: email index error:", err)
		return err
	}
	log.Println("EnsureAdminIndexes: email_unique index created")
	return nil
}
