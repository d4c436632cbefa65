package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"menustamp/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type stampFixture struct {
	svc      *stampService
	ownerID  primitive.ObjectID
	shop     *models.Shop
	reward   *models.Reward
	users    *fakeUserRepo
	stamps   *fakeStampRepo
	cache    *fakeCache
	notifier *fakeNotifier
	now      time.Time
}

func newStampFixture(t *testing.T) *stampFixture {
	t.Helper()

	ownerID := primitive.NewObjectID()
	shop := &models.Shop{OwnerID: ownerID, Name: "Brew Lab", Username: "brewlab", IsActive: true}
	shopRepo := newFakeShopRepo(shop)

	reward := &models.Reward{
		ShopID:         shop.ID,
		Name:           "Free Coffee",
		StampsRequired: 8,
		ExpiryDays:     365,
		IsActive:       true,
	}
	rewardRepo := newFakeRewardRepo(reward)

	users := newFakeUserRepo(
		&models.User{Name: "Ana", Email: "ana@example.com", Status: models.UserStatusActive},
		&models.User{Name: "Ben", Email: "ben@example.com", Status: models.UserStatusActive},
	)

	stamps := &fakeStampRepo{}
	cache := newFakeCache()
	notifier := &fakeNotifier{}

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	svc := NewStampService(passthroughTx{}, shopRepo, rewardRepo, stamps, users, cache, notifier, testLogger()).(*stampService)
	svc.now = func() time.Time { return now }

	return &stampFixture{
		svc:      svc,
		ownerID:  ownerID,
		shop:     shop,
		reward:   reward,
		users:    users,
		stamps:   stamps,
		cache:    cache,
		notifier: notifier,
		now:      now,
	}
}

func qrFor(email string) string {
	payload, _ := json.Marshal(map[string]string{"email": email})
	return string(payload)
}

func (f *stampFixture) seedStamp(email string, expiresAt time.Time, transferred bool) *models.Stamp {
	stamp := &models.Stamp{
		ID:            primitive.NewObjectID(),
		Code:          "seed",
		CustomerEmail: email,
		ShopID:        f.shop.ID,
		RewardID:      f.reward.ID,
		Status:        models.StampStatusActive,
		IssuedAt:      f.now,
		ExpiresAt:     expiresAt,
		IsTransferred: transferred,
	}
	f.stamps.stamps = append(f.stamps.stamps, stamp)
	return stamp
}

func TestIssueStampSetsExpiryFromReward(t *testing.T) {
	f := newStampFixture(t)

	stamp, err := f.svc.IssueStamp(context.Background(), f.ownerID, f.shop.ID, &models.ScanStampRequest{
		QRPayload: qrFor("ana@example.com"),
		RewardID:  f.reward.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, "ana@example.com", stamp.CustomerEmail)
	assert.Equal(t, models.StampStatusActive, stamp.Status)
	assert.False(t, stamp.IsTransferred)
	assert.Equal(t, f.now.AddDate(0, 0, 365), stamp.ExpiresAt)
	assert.NotEmpty(t, stamp.Code)
	assert.Equal(t, []string{"stamp_issued"}, f.notifier.events)
}

func TestIssueStampLifetimeReward(t *testing.T) {
	f := newStampFixture(t)
	f.reward.Lifetime = true
	f.reward.ExpiryDays = 0

	stamp, err := f.svc.IssueStamp(context.Background(), f.ownerID, f.shop.ID, &models.ScanStampRequest{
		QRPayload: qrFor("ana@example.com"),
		RewardID:  f.reward.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, f.now.AddDate(100, 0, 0), stamp.ExpiresAt)
}

func TestIssueStampRejectsUnregisteredCustomer(t *testing.T) {
	f := newStampFixture(t)

	_, err := f.svc.IssueStamp(context.Background(), f.ownerID, f.shop.ID, &models.ScanStampRequest{
		QRPayload: qrFor("stranger@example.com"),
		RewardID:  f.reward.ID,
	})

	assert.ErrorIs(t, err, ErrCustomerNotFound)
	assert.Empty(t, f.stamps.stamps)
}

func TestIssueStampRejectsBadQRPayload(t *testing.T) {
	f := newStampFixture(t)

	_, err := f.svc.IssueStamp(context.Background(), f.ownerID, f.shop.ID, &models.ScanStampRequest{
		QRPayload: "not json",
		RewardID:  f.reward.ID,
	})

	assert.Error(t, err)
	assert.Empty(t, f.stamps.stamps)
}

func TestIssueStampRequiresShopOwnership(t *testing.T) {
	f := newStampFixture(t)

	_, err := f.svc.IssueStamp(context.Background(), primitive.NewObjectID(), f.shop.ID, &models.ScanStampRequest{
		QRPayload: qrFor("ana@example.com"),
		RewardID:  f.reward.ID,
	})

	assert.ErrorIs(t, err, ErrNotShopOwner)
}

func TestIssueStampRejectsInactiveReward(t *testing.T) {
	f := newStampFixture(t)
	f.reward.IsActive = false

	_, err := f.svc.IssueStamp(context.Background(), f.ownerID, f.shop.ID, &models.ScanStampRequest{
		QRPayload: qrFor("ana@example.com"),
		RewardID:  f.reward.ID,
	})

	assert.ErrorIs(t, err, ErrRewardInactive)
}

func TestIssueStampFullCard(t *testing.T) {
	f := newStampFixture(t)
	for i := 0; i < f.reward.StampsRequired; i++ {
		f.seedStamp("ana@example.com", f.now.AddDate(0, 0, 30), false)
	}

	_, err := f.svc.IssueStamp(context.Background(), f.ownerID, f.shop.ID, &models.ScanStampRequest{
		QRPayload: qrFor("ana@example.com"),
		RewardID:  f.reward.ID,
	})

	assert.ErrorIs(t, err, ErrCardFull)
}

func TestIssueStampDuplicateScanGuard(t *testing.T) {
	f := newStampFixture(t)

	_, err := f.svc.IssueStamp(context.Background(), f.ownerID, f.shop.ID, &models.ScanStampRequest{
		QRPayload: qrFor("ana@example.com"),
		RewardID:  f.reward.ID,
	})
	require.NoError(t, err)

	// Second scan of the same customer and reward within the guard window.
	_, err = f.svc.IssueStamp(context.Background(), f.ownerID, f.shop.ID, &models.ScanStampRequest{
		QRPayload: qrFor("ana@example.com"),
		RewardID:  f.reward.ID,
	})
	assert.ErrorIs(t, err, ErrDuplicateScan)
	assert.Len(t, f.stamps.stamps, 1)

	// A different customer is unaffected by the guard.
	_, err = f.svc.IssueStamp(context.Background(), f.ownerID, f.shop.ID, &models.ScanStampRequest{
		QRPayload: qrFor("ben@example.com"),
		RewardID:  f.reward.ID,
	})
	assert.NoError(t, err)
}

func TestIssueStampExpiredStampsFreeTheCard(t *testing.T) {
	f := newStampFixture(t)
	for i := 0; i < f.reward.StampsRequired; i++ {
		f.seedStamp("ana@example.com", f.now.AddDate(0, 0, -1), false)
	}

	stamp, err := f.svc.IssueStamp(context.Background(), f.ownerID, f.shop.ID, &models.ScanStampRequest{
		QRPayload: qrFor("ana@example.com"),
		RewardID:  f.reward.ID,
	})

	require.NoError(t, err)
	assert.NotNil(t, stamp)
}

func TestTransferConsumesThreeNearestExpiry(t *testing.T) {
	f := newStampFixture(t)
	f.seedStamp("ana@example.com", f.now.AddDate(0, 0, 40), false)
	f.seedStamp("ana@example.com", f.now.AddDate(0, 0, 10), false)
	f.seedStamp("ana@example.com", f.now.AddDate(0, 0, 30), false)
	f.seedStamp("ana@example.com", f.now.AddDate(0, 0, 20), false)

	received, err := f.svc.TransferStamps(context.Background(), "ana@example.com", &models.TransferStampsRequest{
		ShopID:         f.shop.ID,
		RewardID:       f.reward.ID,
		RecipientEmail: "ben@example.com",
	})
	require.NoError(t, err)

	// The received stamp inherits the minimum expiry of the consumed three.
	assert.Equal(t, f.now.AddDate(0, 0, 10), received.ExpiresAt)
	assert.True(t, received.IsTransferred)
	assert.Equal(t, "ana@example.com", received.TransferredFrom)
	assert.Len(t, received.SourceStamps, 3)

	// The sender keeps only the farthest-expiry stamp.
	remaining, err := f.stamps.GetActiveForReward(context.Background(), "ana@example.com", f.shop.ID, f.reward.ID, f.now)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, f.now.AddDate(0, 0, 40), remaining[0].ExpiresAt)
}

func TestTransferRequiresExactlyThreeAvailable(t *testing.T) {
	f := newStampFixture(t)
	f.seedStamp("ana@example.com", f.now.AddDate(0, 0, 10), false)
	f.seedStamp("ana@example.com", f.now.AddDate(0, 0, 20), false)

	_, err := f.svc.TransferStamps(context.Background(), "ana@example.com", &models.TransferStampsRequest{
		ShopID:         f.shop.ID,
		RewardID:       f.reward.ID,
		RecipientEmail: "ben@example.com",
	})

	assert.ErrorIs(t, err, ErrNotEnoughStamps)
	assert.Len(t, f.stamps.stamps, 2)
}

func TestTransferExcludesReceivedStamps(t *testing.T) {
	f := newStampFixture(t)
	f.seedStamp("ana@example.com", f.now.AddDate(0, 0, 10), false)
	f.seedStamp("ana@example.com", f.now.AddDate(0, 0, 20), false)
	f.seedStamp("ana@example.com", f.now.AddDate(0, 0, 30), true)

	_, err := f.svc.TransferStamps(context.Background(), "ana@example.com", &models.TransferStampsRequest{
		ShopID:         f.shop.ID,
		RewardID:       f.reward.ID,
		RecipientEmail: "ben@example.com",
	})

	assert.ErrorIs(t, err, ErrNotEnoughStamps)
}

func TestTransferToSelfRejected(t *testing.T) {
	f := newStampFixture(t)

	_, err := f.svc.TransferStamps(context.Background(), "ana@example.com", &models.TransferStampsRequest{
		ShopID:         f.shop.ID,
		RewardID:       f.reward.ID,
		RecipientEmail: "Ana@Example.com",
	})

	assert.ErrorIs(t, err, ErrTransferToSelf)
}

func TestTransferToUnregisteredRecipient(t *testing.T) {
	f := newStampFixture(t)
	for i := 0; i < 3; i++ {
		f.seedStamp("ana@example.com", f.now.AddDate(0, 0, 10+i), false)
	}

	_, err := f.svc.TransferStamps(context.Background(), "ana@example.com", &models.TransferStampsRequest{
		ShopID:         f.shop.ID,
		RewardID:       f.reward.ID,
		RecipientEmail: "stranger@example.com",
	})

	assert.ErrorIs(t, err, ErrRecipientNotFound)
}

func TestTransferRejectedWhenRecipientCardFull(t *testing.T) {
	f := newStampFixture(t)
	for i := 0; i < 3; i++ {
		f.seedStamp("ana@example.com", f.now.AddDate(0, 0, 10+i), false)
	}
	for i := 0; i < f.reward.StampsRequired; i++ {
		f.seedStamp("ben@example.com", f.now.AddDate(0, 0, 30), false)
	}

	_, err := f.svc.TransferStamps(context.Background(), "ana@example.com", &models.TransferStampsRequest{
		ShopID:         f.shop.ID,
		RewardID:       f.reward.ID,
		RecipientEmail: "ben@example.com",
	})

	assert.ErrorIs(t, err, ErrCardFull)
}

func TestGetCardProgress(t *testing.T) {
	f := newStampFixture(t)
	f.seedStamp("ana@example.com", f.now.AddDate(0, 0, 10), false)
	f.seedStamp("ana@example.com", f.now.AddDate(0, 0, 20), false)
	f.seedStamp("ana@example.com", f.now.AddDate(0, 0, -5), false) // expired

	progress, err := f.svc.GetCardProgress(context.Background(), "ana@example.com", f.shop.ID, f.reward.ID)
	require.NoError(t, err)

	assert.Equal(t, 8, progress.StampsRequired)
	assert.Equal(t, 2, progress.ActiveStamps)
}
