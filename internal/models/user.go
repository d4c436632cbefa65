package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserStatus string
type AuthProvider string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusInactive  UserStatus = "inactive"
	UserStatusSuspended UserStatus = "suspended"

	AuthProviderGoogle AuthProvider = "google"
	AuthProviderEmail  AuthProvider = "email"
)

type User struct {
	ID             primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name           string             `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Email          string             `json:"email" bson:"email" validate:"required,email"`
	ProfilePicture string             `json:"profile_picture" bson:"profile_picture"`
	AuthProvider   AuthProvider       `json:"auth_provider" bson:"auth_provider"`
	SocialID       string             `json:"social_id" bson:"social_id"`
	Status         UserStatus         `json:"status" bson:"status"`
	LastLoginAt    *time.Time         `json:"last_login_at" bson:"last_login_at"`
	CreatedAt      time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at" bson:"updated_at"`
}
