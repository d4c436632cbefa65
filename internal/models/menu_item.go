package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MenuItem struct {
	ID          primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	ShopID      primitive.ObjectID  `json:"shop_id" bson:"shop_id"`
	StoreID     *primitive.ObjectID `json:"store_id,omitempty" bson:"store_id,omitempty"`
	Code        string              `json:"code" bson:"code"`
	Name        string              `json:"name" bson:"name" validate:"required,min=1,max=120"`
	Description string              `json:"description" bson:"description" validate:"max=500"`
	Category    string              `json:"category" bson:"category" validate:"required"`
	Price       float64             `json:"price" bson:"price" validate:"gte=0"`
	ImageURL    string              `json:"image_url" bson:"image_url"`
	ImageKey    string              `json:"-" bson:"image_key"`
	SortOrder   int                 `json:"sort_order" bson:"sort_order"`
	IsAvailable bool                `json:"is_available" bson:"is_available"`
	CreatedAt   time.Time           `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at" bson:"updated_at"`
}
