package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ShopType string
type ShopTemplate string

const (
	ShopTypeStandard  ShopType = "standard"
	ShopTypeFoodCourt ShopType = "food_court"

	ShopTemplateClassic ShopTemplate = "classic"
	ShopTemplateModern  ShopTemplate = "modern"
	ShopTemplateMinimal ShopTemplate = "minimal"
)

type Shop struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	OwnerID    primitive.ObjectID `json:"owner_id" bson:"owner_id"`
	Name       string             `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Username   string             `json:"username" bson:"username" validate:"required,shop_username"`
	LogoURL    string             `json:"logo_url" bson:"logo_url"`
	LogoKey    string             `json:"-" bson:"logo_key"`
	Categories []string           `json:"categories" bson:"categories"`
	Currency   string             `json:"currency" bson:"currency" validate:"required,currency_code"`
	Template   ShopTemplate       `json:"template" bson:"template"`
	Type       ShopType           `json:"type" bson:"type"`
	IsActive   bool               `json:"is_active" bson:"is_active"`
	CreatedAt  time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at" bson:"updated_at"`
}

// Store is one independently managed stall inside a food-court shop.
type Store struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	ShopID      primitive.ObjectID `json:"shop_id" bson:"shop_id"`
	Name        string             `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Description string             `json:"description" bson:"description"`
	ImageURL    string             `json:"image_url" bson:"image_url"`
	ImageKey    string             `json:"-" bson:"image_key"`
	IsActive    bool               `json:"is_active" bson:"is_active"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updated_at"`
}
