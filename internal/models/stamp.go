package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type StampStatus string

const (
	StampStatusActive  StampStatus = "active"
	StampStatusClaimed StampStatus = "claimed"
)

type Stamp struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Code          string             `json:"code" bson:"code"`
	CustomerEmail string             `json:"customer_email" bson:"customer_email" validate:"required,email"`
	ShopID        primitive.ObjectID `json:"shop_id" bson:"shop_id"`
	RewardID      primitive.ObjectID `json:"reward_id" bson:"reward_id"`
	Status        StampStatus        `json:"status" bson:"status"`
	SpendAmount   float64            `json:"spend_amount,omitempty" bson:"spend_amount,omitempty"`
	IssuedAt      time.Time          `json:"issued_at" bson:"issued_at"`
	ExpiresAt     time.Time          `json:"expires_at" bson:"expires_at"`

	// Transfer provenance. A transferred stamp can never be re-transferred.
	IsTransferred   bool            `json:"is_transferred" bson:"is_transferred"`
	TransferredFrom string          `json:"transferred_from,omitempty" bson:"transferred_from,omitempty"`
	SourceStamps    []StampSnapshot `json:"source_stamps,omitempty" bson:"source_stamps,omitempty"`

	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// StampSnapshot is the denormalized record of a consumed stamp, embedded in
// transfer results and claims.
type StampSnapshot struct {
	Code          string    `json:"code" bson:"code"`
	CustomerEmail string    `json:"customer_email" bson:"customer_email"`
	IssuedAt      time.Time `json:"issued_at" bson:"issued_at"`
	ExpiresAt     time.Time `json:"expires_at" bson:"expires_at"`
}

func (s *Stamp) Snapshot() StampSnapshot {
	return StampSnapshot{
		Code:          s.Code,
		CustomerEmail: s.CustomerEmail,
		IssuedAt:      s.IssuedAt,
		ExpiresAt:     s.ExpiresAt,
	}
}

func (s *Stamp) IsExpired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
