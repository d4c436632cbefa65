package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type GoogleLoginRequest struct {
	Code  string `json:"code" validate:"required"`
	State string `json:"state"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type UpdateProfileRequest struct {
	Name           *string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	ProfilePicture *string `json:"profile_picture,omitempty" validate:"omitempty,url"`
}

type CreateShopRequest struct {
	Name       string       `json:"name" validate:"required,min=2,max=100"`
	Username   string       `json:"username" validate:"required,shop_username"`
	Currency   string       `json:"currency" validate:"required,currency_code"`
	Template   ShopTemplate `json:"template" validate:"omitempty,oneof=classic modern minimal"`
	Type       ShopType     `json:"type" validate:"omitempty,oneof=standard food_court"`
	Categories []string     `json:"categories" validate:"max=30,dive,min=1,max=60"`
}

type UpdateShopRequest struct {
	Name       *string       `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Username   *string       `json:"username,omitempty" validate:"omitempty,shop_username"`
	Currency   *string       `json:"currency,omitempty" validate:"omitempty,currency_code"`
	Template   *ShopTemplate `json:"template,omitempty" validate:"omitempty,oneof=classic modern minimal"`
	Categories *[]string     `json:"categories,omitempty" validate:"omitempty,max=30,dive,min=1,max=60"`
	IsActive   *bool         `json:"is_active,omitempty"`
}

type CreateStoreRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Description string `json:"description" validate:"max=500"`
}

type UpdateStoreRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=500"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

type CreateMenuItemRequest struct {
	StoreID     *primitive.ObjectID `json:"store_id,omitempty"`
	Code        string              `json:"code" validate:"omitempty,max=20"`
	Name        string              `json:"name" validate:"required,min=1,max=120"`
	Description string              `json:"description" validate:"max=500"`
	Category    string              `json:"category" validate:"required,min=1,max=60"`
	Price       float64             `json:"price" validate:"gte=0"`
	SortOrder   int                 `json:"sort_order" validate:"gte=0"`
}

type UpdateMenuItemRequest struct {
	Code        *string  `json:"code,omitempty" validate:"omitempty,max=20"`
	Name        *string  `json:"name,omitempty" validate:"omitempty,min=1,max=120"`
	Description *string  `json:"description,omitempty" validate:"omitempty,max=500"`
	Category    *string  `json:"category,omitempty" validate:"omitempty,min=1,max=60"`
	Price       *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
	SortOrder   *int     `json:"sort_order,omitempty" validate:"omitempty,gte=0"`
	IsAvailable *bool    `json:"is_available,omitempty"`
}

type CreateRewardRequest struct {
	Name           string       `json:"name" validate:"required,min=2,max=120"`
	Description    string       `json:"description" validate:"max=500"`
	StampsRequired int          `json:"stamps_required" validate:"required,min=1,max=50"`
	ExpiryDays     int          `json:"expiry_days" validate:"expiry_window"`
	Lifetime       bool         `json:"lifetime"`
	Worth          float64      `json:"worth" validate:"gte=0"`
	EarnCriteria   EarnCriteria `json:"earn_criteria"`
}

type UpdateRewardRequest struct {
	Name         *string       `json:"name,omitempty" validate:"omitempty,min=2,max=120"`
	Description  *string       `json:"description,omitempty" validate:"omitempty,max=500"`
	Worth        *float64      `json:"worth,omitempty" validate:"omitempty,gte=0"`
	EarnCriteria *EarnCriteria `json:"earn_criteria,omitempty"`
	IsActive     *bool         `json:"is_active,omitempty"`
}

// ScanStampRequest carries the raw QR text scanned at the counter.
type ScanStampRequest struct {
	QRPayload   string             `json:"qr_payload" validate:"required"`
	RewardID    primitive.ObjectID `json:"reward_id" validate:"required"`
	SpendAmount float64            `json:"spend_amount" validate:"gte=0"`
}

type TransferStampsRequest struct {
	ShopID         primitive.ObjectID `json:"shop_id" validate:"required"`
	RewardID       primitive.ObjectID `json:"reward_id" validate:"required"`
	RecipientEmail string             `json:"recipient_email" validate:"required,email"`
}

type CreateClaimRequest struct {
	ShopID   primitive.ObjectID `json:"shop_id" validate:"required"`
	RewardID primitive.ObjectID `json:"reward_id" validate:"required"`
}

type AddFavoriteRequest struct {
	MenuItemID primitive.ObjectID `json:"menu_item_id" validate:"required"`
}

type RecordVisitRequest struct {
	ShopID primitive.ObjectID `json:"shop_id" validate:"required"`
}

// PublicMenu is the assembled read model served at /:username. Stores is
// populated only for food-court shops.
type PublicMenu struct {
	Shop    *Shop       `json:"shop"`
	Stores  []*Store    `json:"stores,omitempty"`
	Items   []*MenuItem `json:"items"`
	Rewards []*Reward   `json:"rewards"`
}
