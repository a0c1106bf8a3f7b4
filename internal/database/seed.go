package database

import (
	"context"
	"errors"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"onswipes/internal/models"
)

// EnsureAdminAccount seeds the single dashboard account if it does not
// exist yet. Skipped (with a warning) when no password is configured, so
// a fresh database without env setup cannot be logged into by accident.
func EnsureAdminAccount(db *mongo.Database, email, password string) error {
	if password == "" {
		log.Println("[ADMIN] [WARN] ADMIN_PASSWORD boş, yönetici hesabı oluşturulmadı")
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	admins := db.Collection("admins")

	err := admins.FindOne(ctx, bson.M{"email": email}).Err()
	if err == nil {
		return nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	_, err = admins.InsertOne(ctx, models.Admin{
		Email:        email,
		PasswordHash: string(hash),
	})
	if err != nil {
		return err
	}
	log.Println("[ADMIN] [INFO] Yönetici hesabı oluşturuldu:", email)
	return nil
}
