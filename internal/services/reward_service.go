package services

import (
	"context"
	"errors"
	"strings"

	"menustamp/internal/models"
	"menustamp/internal/repositories/interfaces"
	"menustamp/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type RewardService interface {
	CreateReward(ctx context.Context, ownerID, shopID primitive.ObjectID, req *models.CreateRewardRequest) (*models.Reward, error)
	GetRewards(ctx context.Context, ownerID, shopID primitive.ObjectID) ([]*models.Reward, error)
	UpdateReward(ctx context.Context, ownerID, shopID, rewardID primitive.ObjectID, req *models.UpdateRewardRequest) (*models.Reward, error)
	DeleteReward(ctx context.Context, ownerID, shopID, rewardID primitive.ObjectID) error
}

type rewardService struct {
	shopRepo   interfaces.ShopRepository
	rewardRepo interfaces.RewardRepository
	stampRepo  interfaces.StampRepository
	cache      CacheService
	logger     *logger.Logger
}

func NewRewardService(
	shopRepo interfaces.ShopRepository,
	rewardRepo interfaces.RewardRepository,
	stampRepo interfaces.StampRepository,
	cacheService CacheService,
	log *logger.Logger,
) RewardService {
	return &rewardService{
		shopRepo:   shopRepo,
		rewardRepo: rewardRepo,
		stampRepo:  stampRepo,
		cache:      cacheService,
		logger:     log,
	}
}

func (s *rewardService) CreateReward(ctx context.Context, ownerID, shopID primitive.ObjectID, req *models.CreateRewardRequest) (*models.Reward, error) {
	shop, err := requireShopOwner(ctx, s.shopRepo, ownerID, shopID)
	if err != nil {
		return nil, err
	}

	reward := &models.Reward{
		ShopID:         shopID,
		Name:           strings.TrimSpace(req.Name),
		Description:    strings.TrimSpace(req.Description),
		StampsRequired: req.StampsRequired,
		ExpiryDays:     req.ExpiryDays,
		Lifetime:       req.Lifetime,
		Worth:          req.Worth,
		EarnCriteria:   req.EarnCriteria,
		IsActive:       true,
	}
	if reward.Lifetime {
		reward.ExpiryDays = 0
	}

	if err := s.rewardRepo.Create(ctx, reward); err != nil {
		return nil, err
	}

	s.invalidate(ctx, shop.Username)
	s.logger.LogShopAction(shopID, "reward_created", map[string]interface{}{
		"reward_id":       reward.ID.Hex(),
		"stamps_required": reward.StampsRequired,
	})

	return reward, nil
}

func (s *rewardService) GetRewards(ctx context.Context, ownerID, shopID primitive.ObjectID) ([]*models.Reward, error) {
	if _, err := requireShopOwner(ctx, s.shopRepo, ownerID, shopID); err != nil {
		return nil, err
	}

	return s.rewardRepo.GetByShop(ctx, shopID)
}

// UpdateReward only touches presentation fields. The stamp economy of a
// reward, required count and expiry, is fixed once customers start earning
// against it; shops retire a reward and create a new one instead.
func (s *rewardService) UpdateReward(ctx context.Context, ownerID, shopID, rewardID primitive.ObjectID, req *models.UpdateRewardRequest) (*models.Reward, error) {
	shop, err := requireShopOwner(ctx, s.shopRepo, ownerID, shopID)
	if err != nil {
		return nil, err
	}

	reward, err := s.getShopReward(ctx, shopID, rewardID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		updates["description"] = strings.TrimSpace(*req.Description)
	}
	if req.Worth != nil {
		updates["worth"] = *req.Worth
	}
	if req.EarnCriteria != nil {
		updates["earn_criteria"] = *req.EarnCriteria
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if len(updates) > 0 {
		if err := s.rewardRepo.Update(ctx, reward.ID, updates); err != nil {
			return nil, err
		}
		s.invalidate(ctx, shop.Username)
	}

	return s.rewardRepo.GetByID(ctx, rewardID)
}

// DeleteReward refuses while customers still hold active stamps against the
// reward; deactivate it instead to stop new issuance.
func (s *rewardService) DeleteReward(ctx context.Context, ownerID, shopID, rewardID primitive.ObjectID) error {
	shop, err := requireShopOwner(ctx, s.shopRepo, ownerID, shopID)
	if err != nil {
		return err
	}

	if _, err := s.getShopReward(ctx, shopID, rewardID); err != nil {
		return err
	}

	count, err := s.stampRepo.CountActiveByReward(ctx, rewardID)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrRewardHasStamps
	}

	if err := s.rewardRepo.Delete(ctx, rewardID); err != nil {
		return err
	}

	s.invalidate(ctx, shop.Username)

	return nil
}

func (s *rewardService) getShopReward(ctx context.Context, shopID, rewardID primitive.ObjectID) (*models.Reward, error) {
	reward, err := s.rewardRepo.GetByID(ctx, rewardID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrRewardNotFound
		}
		return nil, err
	}
	if reward.ShopID != shopID {
		return nil, ErrRewardNotFound
	}

	return reward, nil
}

func (s *rewardService) invalidate(ctx context.Context, username string) {
	if err := s.cache.Delete(ctx, PublicMenuCacheKey(username)); err != nil {
		s.logger.WithError(err).WithField("username", username).Warn("failed to invalidate public menu cache")
	}
}
