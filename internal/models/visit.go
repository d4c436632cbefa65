package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Visit keeps the most recent visit per user and shop; repeat visits update
// the existing document rather than appending history.
type Visit struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID       primitive.ObjectID `json:"user_id" bson:"user_id"`
	ShopID       primitive.ObjectID `json:"shop_id" bson:"shop_id"`
	ShopName     string             `json:"shop_name" bson:"shop_name"`
	ShopUsername string             `json:"shop_username" bson:"shop_username"`
	ShopLogoURL  string             `json:"shop_logo_url" bson:"shop_logo_url"`
	VisitedAt    time.Time          `json:"visited_at" bson:"visited_at"`
}
