package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Dimensions struct {
	Width  float64 `bson:"width" json:"width"`
	Height float64 `bson:"height" json:"height"`
}

// ProductSpecs is the immutable description of one wet-wipe variant.
// Purely descriptive; it has no behavior.
type ProductSpecs struct {
	// Outer packaging
	OuterMaterial   string     `bson:"outerMaterial" json:"outerMaterial"`
	OuterDimensions Dimensions `bson:"outerDimensions" json:"outerDimensions"`
	OuterLayerCount int        `bson:"outerLayerCount" json:"outerLayerCount"`
	PrintColors     int        `bson:"printColors" json:"printColors"`
	Lamination      string     `bson:"lamination" json:"lamination"`

	// Towel
	TowelMaterial       string     `bson:"towelMaterial" json:"towelMaterial"`
	TowelGsm            int        `bson:"towelGsm" json:"towelGsm"`
	TowelDimensionsOpen Dimensions `bson:"towelDimensionsOpen" json:"towelDimensionsOpen"`

	// Solution
	EssenceName   string  `bson:"essenceName" json:"essenceName"`
	EssenceAmount float64 `bson:"essenceAmount" json:"essenceAmount"`
	AlcoholFree   bool    `bson:"alcoholFree" json:"alcoholFree"`

	// Box
	PiecesPerBox int `bson:"piecesPerBox" json:"piecesPerBox"`
}

// CatalogItem is a reusable template for prefilling a new order item.
// It keeps no back-reference to orders created from it.
type CatalogItem struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	ImageURL    string             `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	Specs       ProductSpecs       `bson:"specs" json:"specs"`
	BasePrice   float64            `bson:"basePrice,omitempty" json:"basePrice,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}
