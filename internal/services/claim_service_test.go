package services

import (
	"context"
	"testing"
	"time"

	"menustamp/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type claimFixture struct {
	svc      *claimService
	ownerID  primitive.ObjectID
	shop     *models.Shop
	reward   *models.Reward
	stamps   *fakeStampRepo
	claims   *fakeClaimRepo
	notifier *fakeNotifier
	now      time.Time
}

func newClaimFixture(t *testing.T) *claimFixture {
	t.Helper()

	ownerID := primitive.NewObjectID()
	shop := &models.Shop{OwnerID: ownerID, Name: "Brew Lab", Username: "brewlab", IsActive: true}
	shopRepo := newFakeShopRepo(shop)

	reward := &models.Reward{
		ShopID:         shop.ID,
		Name:           "Free Coffee",
		StampsRequired: 4,
		ExpiryDays:     365,
		Worth:          5.50,
		IsActive:       true,
	}
	rewardRepo := newFakeRewardRepo(reward)

	stamps := &fakeStampRepo{}
	claims := newFakeClaimRepo()
	notifier := &fakeNotifier{}

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	svc := NewClaimService(passthroughTx{}, shopRepo, rewardRepo, stamps, claims, notifier, testLogger()).(*claimService)
	svc.now = func() time.Time { return now }

	return &claimFixture{
		svc:      svc,
		ownerID:  ownerID,
		shop:     shop,
		reward:   reward,
		stamps:   stamps,
		claims:   claims,
		notifier: notifier,
		now:      now,
	}
}

func (f *claimFixture) seedStamps(email string, count int) {
	for i := 0; i < count; i++ {
		f.stamps.stamps = append(f.stamps.stamps, &models.Stamp{
			ID:            primitive.NewObjectID(),
			Code:          "seed",
			CustomerEmail: email,
			ShopID:        f.shop.ID,
			RewardID:      f.reward.ID,
			Status:        models.StampStatusActive,
			IssuedAt:      f.now,
			ExpiresAt:     f.now.AddDate(0, 0, 10+i),
		})
	}
}

func (f *claimFixture) createClaim(t *testing.T, email string) *models.Claim {
	t.Helper()
	claim, err := f.svc.CreateClaim(context.Background(), email, &models.CreateClaimRequest{
		ShopID:   f.shop.ID,
		RewardID: f.reward.ID,
	})
	require.NoError(t, err)
	return claim
}

func countByStatus(stamps []*models.Stamp, status models.StampStatus) int {
	var count int
	for _, stamp := range stamps {
		if stamp.Status == status {
			count++
		}
	}
	return count
}

func TestCreateClaimLocksRequiredStamps(t *testing.T) {
	f := newClaimFixture(t)
	f.seedStamps("ana@example.com", 5)

	claim := f.createClaim(t, "ana@example.com")

	assert.Equal(t, models.ClaimStatusPending, claim.Status)
	assert.Equal(t, "Free Coffee", claim.RewardName)
	assert.Equal(t, 4, claim.StampsRequired)
	assert.Equal(t, 5.50, claim.Worth)
	assert.Len(t, claim.StampIDs, 4)
	assert.Len(t, claim.Stamps, 4)

	// Four stamps locked, the fifth stays usable toward the next card.
	assert.Equal(t, 4, countByStatus(f.stamps.stamps, models.StampStatusClaimed))
	assert.Equal(t, 1, countByStatus(f.stamps.stamps, models.StampStatusActive))
	assert.Equal(t, []string{"claim_created"}, f.notifier.events)
}

func TestCreateClaimRequiresFullCard(t *testing.T) {
	f := newClaimFixture(t)
	f.seedStamps("ana@example.com", 3)

	_, err := f.svc.CreateClaim(context.Background(), "ana@example.com", &models.CreateClaimRequest{
		ShopID:   f.shop.ID,
		RewardID: f.reward.ID,
	})

	assert.ErrorIs(t, err, ErrNotEnoughStamps)
	assert.Equal(t, 3, countByStatus(f.stamps.stamps, models.StampStatusActive))
}

func TestCreateClaimRejectsInactiveReward(t *testing.T) {
	f := newClaimFixture(t)
	f.reward.IsActive = false
	f.seedStamps("ana@example.com", 4)

	_, err := f.svc.CreateClaim(context.Background(), "ana@example.com", &models.CreateClaimRequest{
		ShopID:   f.shop.ID,
		RewardID: f.reward.ID,
	})

	assert.ErrorIs(t, err, ErrRewardInactive)
}

func TestApproveThenCompleteKeepsStampsClaimed(t *testing.T) {
	f := newClaimFixture(t)
	f.seedStamps("ana@example.com", 4)
	claim := f.createClaim(t, "ana@example.com")

	approved, err := f.svc.ApproveClaim(context.Background(), f.ownerID, claim.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ClaimStatusApproved, approved.Status)

	completed, err := f.svc.CompleteClaim(context.Background(), f.ownerID, claim.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ClaimStatusCompleted, completed.Status)

	// Redeemed stamps are kept as records, not deleted.
	assert.Len(t, f.stamps.stamps, 4)
	assert.Equal(t, 4, countByStatus(f.stamps.stamps, models.StampStatusClaimed))
}

func TestRejectClaimReleasesStamps(t *testing.T) {
	f := newClaimFixture(t)
	f.seedStamps("ana@example.com", 4)
	claim := f.createClaim(t, "ana@example.com")

	rejected, err := f.svc.RejectClaim(context.Background(), f.ownerID, claim.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ClaimStatusRejected, rejected.Status)

	// The locked stamps return to the customer's card.
	assert.Equal(t, 4, countByStatus(f.stamps.stamps, models.StampStatusActive))
}

func TestCompleteFromPendingRejected(t *testing.T) {
	f := newClaimFixture(t)
	f.seedStamps("ana@example.com", 4)
	claim := f.createClaim(t, "ana@example.com")

	_, err := f.svc.CompleteClaim(context.Background(), f.ownerID, claim.ID)

	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestRejectedClaimIsTerminal(t *testing.T) {
	f := newClaimFixture(t)
	f.seedStamps("ana@example.com", 4)
	claim := f.createClaim(t, "ana@example.com")

	_, err := f.svc.RejectClaim(context.Background(), f.ownerID, claim.ID)
	require.NoError(t, err)

	_, err = f.svc.ApproveClaim(context.Background(), f.ownerID, claim.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestClaimTransitionsRequireShopOwnership(t *testing.T) {
	f := newClaimFixture(t)
	f.seedStamps("ana@example.com", 4)
	claim := f.createClaim(t, "ana@example.com")

	_, err := f.svc.ApproveClaim(context.Background(), primitive.NewObjectID(), claim.ID)

	assert.ErrorIs(t, err, ErrNotShopOwner)
}
