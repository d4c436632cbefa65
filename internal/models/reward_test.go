package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStampExpiryFixedAtIssuance(t *testing.T) {
	issuedAt := time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)

	reward := &Reward{ExpiryDays: 365}
	assert.Equal(t, issuedAt.AddDate(0, 0, 365), reward.StampExpiry(issuedAt))

	short := &Reward{ExpiryDays: 30}
	assert.Equal(t, issuedAt.AddDate(0, 0, 30), short.StampExpiry(issuedAt))
}

func TestStampExpiryLifetime(t *testing.T) {
	issuedAt := time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)

	// A lifetime reward still gets a concrete far-future expiry so range
	// queries treat all stamps uniformly.
	reward := &Reward{Lifetime: true, ExpiryDays: 7}
	assert.Equal(t, issuedAt.AddDate(100, 0, 0), reward.StampExpiry(issuedAt))
}

func TestStampIsExpired(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)

	fresh := &Stamp{ExpiresAt: now.Add(time.Hour)}
	assert.False(t, fresh.IsExpired(now))

	stale := &Stamp{ExpiresAt: now.Add(-time.Hour)}
	assert.True(t, stale.IsExpired(now))
}
