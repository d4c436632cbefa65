package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Favorite denormalizes shop and item data so the favorites page renders
// without extra lookups, at the cost of staleness after item edits.
type Favorite struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID       primitive.ObjectID `json:"user_id" bson:"user_id"`
	ShopID       primitive.ObjectID `json:"shop_id" bson:"shop_id"`
	MenuItemID   primitive.ObjectID `json:"menu_item_id" bson:"menu_item_id"`
	ShopName     string             `json:"shop_name" bson:"shop_name"`
	ShopUsername string             `json:"shop_username" bson:"shop_username"`
	ItemName     string             `json:"item_name" bson:"item_name"`
	ItemPrice    float64            `json:"item_price" bson:"item_price"`
	Currency     string             `json:"currency" bson:"currency"`
	ItemImageURL string             `json:"item_image_url" bson:"item_image_url"`
	CreatedAt    time.Time          `json:"created_at" bson:"created_at"`
}
