package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EarnCriteria lists the independent ways a customer can earn a stamp.
// Any one criterion suffices; enforcement of spend receipts, reviews and
// follows happens at the counter, not in code.
type EarnCriteria struct {
	MinSpendAmount  float64 `json:"min_spend_amount" bson:"min_spend_amount" validate:"gte=0"`
	GoogleReview    bool    `json:"google_review" bson:"google_review"`
	SocialFollow    bool    `json:"social_follow" bson:"social_follow"`
	SocialFollowURL string  `json:"social_follow_url,omitempty" bson:"social_follow_url,omitempty"`
}

type Reward struct {
	ID             primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	ShopID         primitive.ObjectID `json:"shop_id" bson:"shop_id"`
	Name           string             `json:"name" bson:"name" validate:"required,min=2,max=120"`
	Description    string             `json:"description" bson:"description"`
	StampsRequired int                `json:"stamps_required" bson:"stamps_required" validate:"required,min=1,max=50"`
	ExpiryDays     int                `json:"expiry_days" bson:"expiry_days" validate:"expiry_window"`
	Lifetime       bool               `json:"lifetime" bson:"lifetime"`
	Worth          float64            `json:"worth" bson:"worth" validate:"gte=0"`
	EarnCriteria   EarnCriteria       `json:"earn_criteria" bson:"earn_criteria"`
	IsActive       bool               `json:"is_active" bson:"is_active"`
	CreatedAt      time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at" bson:"updated_at"`
}

// StampExpiry computes the fixed expiry for a stamp issued at the given time.
// Lifetime rewards get a far-future date rather than a sentinel so range
// queries on expires_at stay uniform.
func (r *Reward) StampExpiry(issuedAt time.Time) time.Time {
	if r.Lifetime {
		return issuedAt.AddDate(100, 0, 0)
	}
	return issuedAt.AddDate(0, 0, r.ExpiryDays)
}
