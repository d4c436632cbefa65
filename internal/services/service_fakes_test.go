package services

import (
	"context"
	"errors"
	"sort"
	"time"

	"menustamp/internal/models"
	"menustamp/internal/utils"
	"menustamp/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func testLogger() *logger.Logger {
	log, _ := logger.NewLogger(&logger.Config{Level: logger.ErrorLevel, Format: "text", Output: "stdout"})
	return log
}

// passthroughTx runs the function directly, no transaction semantics.
type passthroughTx struct{}

func (passthroughTx) RunTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeNotifier struct {
	events []string
}

func (n *fakeNotifier) NotifyShop(shopID primitive.ObjectID, eventType string, data map[string]interface{}) {
	n.events = append(n.events, eventType)
}

type fakeCache struct {
	keys map[string]struct{}
}

func newFakeCache() *fakeCache {
	return &fakeCache{keys: map[string]struct{}{}}
}

func (c *fakeCache) Get(ctx context.Context, key string, dest interface{}) error {
	return errors.New("cache miss")
}

func (c *fakeCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	c.keys[key] = struct{}{}
	return nil
}

func (c *fakeCache) Delete(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(c.keys, key)
	}
	return nil
}

func (c *fakeCache) SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) (bool, error) {
	if _, exists := c.keys[key]; exists {
		return false, nil
	}
	c.keys[key] = struct{}{}
	return true, nil
}

func (c *fakeCache) Increment(ctx context.Context, key string) (int64, error) {
	return 1, nil
}

func (c *fakeCache) SetExpire(ctx context.Context, key string, expiration time.Duration) error {
	return nil
}

type fakeUserRepo struct {
	users map[string]*models.User
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: map[string]*models.User{}}
	for _, user := range users {
		if user.ID.IsZero() {
			user.ID = primitive.NewObjectID()
		}
		repo.users[user.Email] = user
	}
	return repo
}

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	user.ID = primitive.NewObjectID()
	r.users[user.Email] = user
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	for _, user := range r.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if user, ok := r.users[utils.NormalizeEmail(email)]; ok {
		return user, nil
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeUserRepo) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	return nil
}

func (r *fakeUserRepo) UpdateLastLogin(ctx context.Context, id primitive.ObjectID) error {
	return nil
}

type fakeShopRepo struct {
	shops map[primitive.ObjectID]*models.Shop
}

func newFakeShopRepo(shops ...*models.Shop) *fakeShopRepo {
	repo := &fakeShopRepo{shops: map[primitive.ObjectID]*models.Shop{}}
	for _, shop := range shops {
		if shop.ID.IsZero() {
			shop.ID = primitive.NewObjectID()
		}
		repo.shops[shop.ID] = shop
	}
	return repo
}

func (r *fakeShopRepo) Create(ctx context.Context, shop *models.Shop) error {
	shop.ID = primitive.NewObjectID()
	r.shops[shop.ID] = shop
	return nil
}

func (r *fakeShopRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Shop, error) {
	if shop, ok := r.shops[id]; ok {
		return shop, nil
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeShopRepo) GetByUsername(ctx context.Context, username string) (*models.Shop, error) {
	for _, shop := range r.shops {
		if shop.Username == username {
			return shop, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeShopRepo) GetByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]*models.Shop, error) {
	var result []*models.Shop
	for _, shop := range r.shops {
		if shop.OwnerID == ownerID {
			result = append(result, shop)
		}
	}
	return result, nil
}

func (r *fakeShopRepo) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	return nil
}

func (r *fakeShopRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	delete(r.shops, id)
	return nil
}

func (r *fakeShopRepo) IsUsernameTaken(ctx context.Context, username string) (bool, error) {
	_, err := r.GetByUsername(ctx, username)
	return err == nil, nil
}

type fakeRewardRepo struct {
	rewards map[primitive.ObjectID]*models.Reward
}

func newFakeRewardRepo(rewards ...*models.Reward) *fakeRewardRepo {
	repo := &fakeRewardRepo{rewards: map[primitive.ObjectID]*models.Reward{}}
	for _, reward := range rewards {
		if reward.ID.IsZero() {
			reward.ID = primitive.NewObjectID()
		}
		repo.rewards[reward.ID] = reward
	}
	return repo
}

func (r *fakeRewardRepo) Create(ctx context.Context, reward *models.Reward) error {
	reward.ID = primitive.NewObjectID()
	r.rewards[reward.ID] = reward
	return nil
}

func (r *fakeRewardRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Reward, error) {
	if reward, ok := r.rewards[id]; ok {
		return reward, nil
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeRewardRepo) GetByShop(ctx context.Context, shopID primitive.ObjectID) ([]*models.Reward, error) {
	var result []*models.Reward
	for _, reward := range r.rewards {
		if reward.ShopID == shopID {
			result = append(result, reward)
		}
	}
	return result, nil
}

func (r *fakeRewardRepo) GetActiveByShop(ctx context.Context, shopID primitive.ObjectID) ([]*models.Reward, error) {
	var result []*models.Reward
	for _, reward := range r.rewards {
		if reward.ShopID == shopID && reward.IsActive {
			result = append(result, reward)
		}
	}
	return result, nil
}

func (r *fakeRewardRepo) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	return nil
}

func (r *fakeRewardRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	delete(r.rewards, id)
	return nil
}

type fakeStampRepo struct {
	stamps []*models.Stamp
}

func (r *fakeStampRepo) Create(ctx context.Context, stamp *models.Stamp) error {
	stamp.ID = primitive.NewObjectID()
	stamp.CustomerEmail = utils.NormalizeEmail(stamp.CustomerEmail)
	r.stamps = append(r.stamps, stamp)
	return nil
}

func (r *fakeStampRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Stamp, error) {
	for _, stamp := range r.stamps {
		if stamp.ID == id {
			return stamp, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeStampRepo) GetByCustomer(ctx context.Context, email string) ([]*models.Stamp, error) {
	var result []*models.Stamp
	for _, stamp := range r.stamps {
		if stamp.CustomerEmail == utils.NormalizeEmail(email) {
			result = append(result, stamp)
		}
	}
	return result, nil
}

func (r *fakeStampRepo) GetActiveForReward(ctx context.Context, email string, shopID, rewardID primitive.ObjectID, now time.Time) ([]*models.Stamp, error) {
	result := r.filterActive(email, shopID, rewardID, now, false)
	return result, nil
}

func (r *fakeStampRepo) CountActiveForReward(ctx context.Context, email string, shopID, rewardID primitive.ObjectID, now time.Time) (int64, error) {
	return int64(len(r.filterActive(email, shopID, rewardID, now, false))), nil
}

func (r *fakeStampRepo) GetTransferable(ctx context.Context, email string, shopID, rewardID primitive.ObjectID, now time.Time) ([]*models.Stamp, error) {
	return r.filterActive(email, shopID, rewardID, now, true), nil
}

func (r *fakeStampRepo) CountActiveByReward(ctx context.Context, rewardID primitive.ObjectID) (int64, error) {
	var count int64
	for _, stamp := range r.stamps {
		if stamp.RewardID == rewardID && stamp.Status == models.StampStatusActive {
			count++
		}
	}
	return count, nil
}

func (r *fakeStampRepo) DeleteMany(ctx context.Context, ids []primitive.ObjectID) error {
	wanted := map[primitive.ObjectID]struct{}{}
	for _, id := range ids {
		wanted[id] = struct{}{}
	}

	var kept []*models.Stamp
	for _, stamp := range r.stamps {
		if _, ok := wanted[stamp.ID]; !ok {
			kept = append(kept, stamp)
		}
	}
	if len(r.stamps)-len(kept) != len(ids) {
		return errors.New("missing stamps")
	}
	r.stamps = kept
	return nil
}

func (r *fakeStampRepo) UpdateStatus(ctx context.Context, ids []primitive.ObjectID, status models.StampStatus) error {
	wanted := map[primitive.ObjectID]struct{}{}
	for _, id := range ids {
		wanted[id] = struct{}{}
	}
	for _, stamp := range r.stamps {
		if _, ok := wanted[stamp.ID]; ok {
			stamp.Status = status
		}
	}
	return nil
}

func (r *fakeStampRepo) filterActive(email string, shopID, rewardID primitive.ObjectID, now time.Time, excludeTransferred bool) []*models.Stamp {
	var result []*models.Stamp
	for _, stamp := range r.stamps {
		if stamp.CustomerEmail != utils.NormalizeEmail(email) ||
			stamp.ShopID != shopID ||
			stamp.RewardID != rewardID ||
			stamp.Status != models.StampStatusActive ||
			!stamp.ExpiresAt.After(now) {
			continue
		}
		if excludeTransferred && stamp.IsTransferred {
			continue
		}
		result = append(result, stamp)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ExpiresAt.Before(result[j].ExpiresAt)
	})
	return result
}

type fakeClaimRepo struct {
	claims map[primitive.ObjectID]*models.Claim
}

func newFakeClaimRepo() *fakeClaimRepo {
	return &fakeClaimRepo{claims: map[primitive.ObjectID]*models.Claim{}}
}

func (r *fakeClaimRepo) Create(ctx context.Context, claim *models.Claim) error {
	claim.ID = primitive.NewObjectID()
	r.claims[claim.ID] = claim
	return nil
}

func (r *fakeClaimRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Claim, error) {
	if claim, ok := r.claims[id]; ok {
		return claim, nil
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeClaimRepo) GetByShop(ctx context.Context, shopID primitive.ObjectID, status models.ClaimStatus, params *utils.PaginationParams) ([]*models.Claim, int64, error) {
	var result []*models.Claim
	for _, claim := range r.claims {
		if claim.ShopID != shopID {
			continue
		}
		if status != "" && claim.Status != status {
			continue
		}
		result = append(result, claim)
	}
	return result, int64(len(result)), nil
}

func (r *fakeClaimRepo) GetByCustomer(ctx context.Context, email string) ([]*models.Claim, error) {
	var result []*models.Claim
	for _, claim := range r.claims {
		if claim.CustomerEmail == email {
			result = append(result, claim)
		}
	}
	return result, nil
}

func (r *fakeClaimRepo) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.ClaimStatus) error {
	claim, ok := r.claims[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	claim.Status = status
	return nil
}
