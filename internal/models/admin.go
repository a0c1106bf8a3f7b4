package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Admin is the single dashboard account, seeded at startup from env.
type Admin struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"passwordHash"`
}
