package services

import (
	"context"
	"fmt"
	"time"

	"menustamp/pkg/cache"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CacheService is the slice of the Redis client the services depend on.
// Tests substitute an in-memory implementation.
type CacheService interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) (bool, error)
	Increment(ctx context.Context, key string) (int64, error)
	SetExpire(ctx context.Context, key string, expiration time.Duration) error
}

func NewCacheService(redis *cache.RedisCache) CacheService {
	return redis
}

func PublicMenuCacheKey(username string) string {
	return "public_menu:" + username
}

// ScanGuardKey is the duplicate-scan lock. Scoped to shop, reward and
// customer so scans for different cards never collide.
func ScanGuardKey(shopID, rewardID primitive.ObjectID, email string) string {
	return fmt.Sprintf("scan_guard:%s:%s:%s", shopID.Hex(), rewardID.Hex(), email)
}

func ScanRateKey(shopID primitive.ObjectID) string {
	return fmt.Sprintf("scan_rate:%s:%d", shopID.Hex(), time.Now().Unix()/60)
}
