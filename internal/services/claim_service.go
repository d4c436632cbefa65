package services

import (
	"context"
	"errors"
	"time"

	"menustamp/internal/models"
	"menustamp/internal/repositories/interfaces"
	"menustamp/internal/utils"
	"menustamp/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type ClaimService interface {
	// CreateClaim locks the required stamps and files a pending claim for
	// the shop to process at the counter.
	CreateClaim(ctx context.Context, customerEmail string, req *models.CreateClaimRequest) (*models.Claim, error)

	GetMyClaims(ctx context.Context, customerEmail string) ([]*models.Claim, error)
	GetShopClaims(ctx context.Context, ownerID, shopID primitive.ObjectID, status models.ClaimStatus, params *utils.PaginationParams) ([]*models.Claim, int64, error)

	ApproveClaim(ctx context.Context, ownerID, claimID primitive.ObjectID) (*models.Claim, error)
	RejectClaim(ctx context.Context, ownerID, claimID primitive.ObjectID) (*models.Claim, error)
	CompleteClaim(ctx context.Context, ownerID, claimID primitive.ObjectID) (*models.Claim, error)
}

type claimService struct {
	db         Transactor
	shopRepo   interfaces.ShopRepository
	rewardRepo interfaces.RewardRepository
	stampRepo  interfaces.StampRepository
	claimRepo  interfaces.ClaimRepository
	notifier   Notifier
	logger     *logger.Logger
	now        func() time.Time
}

func NewClaimService(
	db Transactor,
	shopRepo interfaces.ShopRepository,
	rewardRepo interfaces.RewardRepository,
	stampRepo interfaces.StampRepository,
	claimRepo interfaces.ClaimRepository,
	notifier Notifier,
	log *logger.Logger,
) ClaimService {
	return &claimService{
		db:         db,
		shopRepo:   shopRepo,
		rewardRepo: rewardRepo,
		stampRepo:  stampRepo,
		claimRepo:  claimRepo,
		notifier:   notifier,
		logger:     log,
		now:        time.Now,
	}
}

func (s *claimService) CreateClaim(ctx context.Context, customerEmail string, req *models.CreateClaimRequest) (*models.Claim, error) {
	customerEmail = utils.NormalizeEmail(customerEmail)

	reward, err := s.rewardRepo.GetByID(ctx, req.RewardID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrRewardNotFound
		}
		return nil, err
	}
	if reward.ShopID != req.ShopID {
		return nil, ErrRewardNotFound
	}
	if !reward.IsActive {
		return nil, ErrRewardInactive
	}

	now := s.now()

	stamps, err := s.stampRepo.GetActiveForReward(ctx, customerEmail, req.ShopID, reward.ID, now)
	if err != nil {
		return nil, err
	}
	if len(stamps) < reward.StampsRequired {
		return nil, ErrNotEnoughStamps
	}

	// Lock the stamps closest to expiring; the rest stay usable toward the
	// next card.
	locked := stamps[:reward.StampsRequired]
	ids := make([]primitive.ObjectID, 0, len(locked))
	snapshots := make([]models.StampSnapshot, 0, len(locked))
	for _, st := range locked {
		ids = append(ids, st.ID)
		snapshots = append(snapshots, st.Snapshot())
	}

	claim := &models.Claim{
		ShopID:         req.ShopID,
		RewardID:       reward.ID,
		CustomerEmail:  customerEmail,
		Status:         models.ClaimStatusPending,
		RewardName:     reward.Name,
		StampsRequired: reward.StampsRequired,
		Worth:          reward.Worth,
		StampIDs:       ids,
		Stamps:         snapshots,
	}

	err = s.db.RunTransaction(ctx, func(txCtx context.Context) error {
		if err := s.stampRepo.UpdateStatus(txCtx, ids, models.StampStatusClaimed); err != nil {
			return err
		}
		return s.claimRepo.Create(txCtx, claim)
	})
	if err != nil {
		return nil, err
	}

	s.logger.LogStampEvent(req.ShopID, "claim_created", map[string]interface{}{
		"claim_id": claim.ID.Hex(),
		"customer": customerEmail,
		"reward":   reward.Name,
	})
	s.notifier.NotifyShop(req.ShopID, "claim_created", map[string]interface{}{
		"claim_id":    claim.ID.Hex(),
		"customer":    customerEmail,
		"reward_name": reward.Name,
		"worth":       reward.Worth,
	})

	return claim, nil
}

func (s *claimService) GetMyClaims(ctx context.Context, customerEmail string) ([]*models.Claim, error) {
	return s.claimRepo.GetByCustomer(ctx, utils.NormalizeEmail(customerEmail))
}

func (s *claimService) GetShopClaims(ctx context.Context, ownerID, shopID primitive.ObjectID, status models.ClaimStatus, params *utils.PaginationParams) ([]*models.Claim, int64, error) {
	if _, err := requireShopOwner(ctx, s.shopRepo, ownerID, shopID); err != nil {
		return nil, 0, err
	}

	return s.claimRepo.GetByShop(ctx, shopID, status, params)
}

func (s *claimService) ApproveClaim(ctx context.Context, ownerID, claimID primitive.ObjectID) (*models.Claim, error) {
	return s.transition(ctx, ownerID, claimID, models.ClaimStatusApproved)
}

// RejectClaim releases the locked stamps back to the customer's card in the
// same transaction that flips the claim status.
func (s *claimService) RejectClaim(ctx context.Context, ownerID, claimID primitive.ObjectID) (*models.Claim, error) {
	return s.transition(ctx, ownerID, claimID, models.ClaimStatusRejected)
}

// CompleteClaim marks the reward as handed over. The claimed stamps stay in
// the collection as a redemption record.
func (s *claimService) CompleteClaim(ctx context.Context, ownerID, claimID primitive.ObjectID) (*models.Claim, error) {
	return s.transition(ctx, ownerID, claimID, models.ClaimStatusCompleted)
}

func (s *claimService) transition(ctx context.Context, ownerID, claimID primitive.ObjectID, target models.ClaimStatus) (*models.Claim, error) {
	claim, err := s.claimRepo.GetByID(ctx, claimID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrClaimNotFound
		}
		return nil, err
	}

	if _, err := requireShopOwner(ctx, s.shopRepo, ownerID, claim.ShopID); err != nil {
		return nil, err
	}

	if !models.CanTransitionClaim(claim.Status, target) {
		return nil, ErrInvalidTransition
	}

	if target == models.ClaimStatusRejected {
		err = s.db.RunTransaction(ctx, func(txCtx context.Context) error {
			if err := s.stampRepo.UpdateStatus(txCtx, claim.StampIDs, models.StampStatusActive); err != nil {
				return err
			}
			return s.claimRepo.UpdateStatus(txCtx, claimID, target)
		})
	} else {
		err = s.claimRepo.UpdateStatus(ctx, claimID, target)
	}
	if err != nil {
		return nil, err
	}

	s.logger.LogStampEvent(claim.ShopID, "claim_"+string(target), map[string]interface{}{
		"claim_id": claimID.Hex(),
		"customer": claim.CustomerEmail,
	})

	return s.claimRepo.GetByID(ctx, claimID)
}
