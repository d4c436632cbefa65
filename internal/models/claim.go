package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ClaimStatus string

const (
	ClaimStatusPending   ClaimStatus = "pending"
	ClaimStatusApproved  ClaimStatus = "approved"
	ClaimStatusRejected  ClaimStatus = "rejected"
	ClaimStatusCompleted ClaimStatus = "completed"
)

var claimTransitions = map[ClaimStatus][]ClaimStatus{
	ClaimStatusPending:  {ClaimStatusApproved, ClaimStatusRejected},
	ClaimStatusApproved: {ClaimStatusCompleted},
}

// CanTransitionClaim reports whether a claim may move between the two
// statuses. Rejected and completed are terminal.
func CanTransitionClaim(from, to ClaimStatus) bool {
	for _, next := range claimTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type Claim struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	ShopID        primitive.ObjectID `json:"shop_id" bson:"shop_id"`
	RewardID      primitive.ObjectID `json:"reward_id" bson:"reward_id"`
	CustomerEmail string             `json:"customer_email" bson:"customer_email"`
	Status        ClaimStatus        `json:"status" bson:"status"`

	// Snapshot of the reward and stamps at claim time, so later edits to
	// the reward cannot change what was redeemed.
	RewardName     string               `json:"reward_name" bson:"reward_name"`
	StampsRequired int                  `json:"stamps_required" bson:"stamps_required"`
	Worth          float64              `json:"worth" bson:"worth"`
	StampIDs       []primitive.ObjectID `json:"stamp_ids" bson:"stamp_ids"`
	Stamps         []StampSnapshot      `json:"stamps" bson:"stamps"`

	CreatedAt   time.Time  `json:"created_at" bson:"created_at"`
	ProcessedAt *time.Time `json:"processed_at,omitempty" bson:"processed_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty" bson:"completed_at,omitempty"`
	UpdatedAt   time.Time  `json:"updated_at" bson:"updated_at"`
}
