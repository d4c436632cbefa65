package utils

import "time"

// Application constants
const (
	AppName    = "MenuStamp"
	AppVersion = "1.0.0"

	// Pagination
	DefaultPageSize = 20
	MaxPageSize     = 100
	MinPageSize     = 1

	// Authentication
	JWTAccessTokenTTL  = 24 * time.Hour
	JWTRefreshTokenTTL = 7 * 24 * time.Hour

	// Shop constants
	UsernameMinLength = 4
	UsernameMaxLength = 30
	MaxCategories     = 30
	MaxStoresPerShop  = 50

	// Loyalty constants
	TransferStampCount   = 3
	DuplicateScanWindow  = 60 * time.Second
	MaxStampsPerReward   = 50
	MaxExpiryDays        = 3650
	LifetimeExpiryYears  = 100
	RecentShopsLimit     = 10

	// File upload
	MaxImageSize   = 5 * 1024 * 1024 // 5MB
	MaxImageWidth  = 1600
	MaxImageHeight = 1600

	// Rate limiting
	DefaultRateLimit = 100
	ScanRateLimit    = 30

	// Cache TTLs
	ShopCacheTTL       = 30 * time.Minute
	PublicMenuCacheTTL = 5 * time.Minute
)

// Response status values
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Common error messages
const (
	ErrValidationFailed = "Validation failed"
	ErrInternalServer   = "Internal server error"
	ErrUnauthorized     = "Unauthorized access"
	ErrForbidden        = "Access forbidden"
)

// AllowedImageTypes are the accepted upload extensions for logos and item
// images.
var AllowedImageTypes = []string{"jpg", "jpeg", "png", "webp"}
