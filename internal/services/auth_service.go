package services

import (
	"context"
	"errors"
	"fmt"

	"menustamp/internal/models"
	"menustamp/internal/repositories/interfaces"
	"menustamp/internal/utils"
	"menustamp/pkg/logger"
	"menustamp/pkg/oauth"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type AuthService interface {
	GetGoogleAuthURL(state string) string
	LoginWithGoogle(ctx context.Context, code string) (*models.User, *utils.TokenPair, error)
	RefreshToken(ctx context.Context, refreshToken string) (*utils.TokenPair, error)
	GetProfile(ctx context.Context, userID primitive.ObjectID) (*models.User, error)
	UpdateProfile(ctx context.Context, userID primitive.ObjectID, req *models.UpdateProfileRequest) (*models.User, error)
}

type authService struct {
	userRepo  interfaces.UserRepository
	oauth     oauth.Provider
	jwtSecret string
	logger    *logger.Logger
}

func NewAuthService(userRepo interfaces.UserRepository, oauthProvider oauth.Provider, jwtSecret string, log *logger.Logger) AuthService {
	return &authService{
		userRepo:  userRepo,
		oauth:     oauthProvider,
		jwtSecret: jwtSecret,
		logger:    log,
	}
}

func (s *authService) GetGoogleAuthURL(state string) string {
	return s.oauth.GetAuthURL(state, []string{"openid", "email", "profile"})
}

// LoginWithGoogle exchanges the authorization code from the sign-in popup,
// upserts the user by email and issues a token pair.
func (s *authService) LoginWithGoogle(ctx context.Context, code string) (*models.User, *utils.TokenPair, error) {
	token, err := s.oauth.ExchangeCode(ctx, code)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidCredentials, err)
	}

	info, err := s.oauth.GetUserInfo(ctx, token.AccessToken)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidCredentials, err)
	}
	if info.Email == "" {
		return nil, nil, ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByEmail(ctx, info.Email)
	switch {
	case err == nil:
		if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
			s.logger.WithError(err).WithUserID(user.ID).Warn("failed to record login time")
		}
	case errors.Is(err, mongo.ErrNoDocuments):
		user = &models.User{
			Name:           info.Name,
			Email:          utils.NormalizeEmail(info.Email),
			ProfilePicture: info.Picture,
			AuthProvider:   models.AuthProviderGoogle,
			SocialID:       info.ID,
			Status:         models.UserStatusActive,
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return nil, nil, err
		}
		s.logger.WithUserID(user.ID).WithField("email", user.Email).Info("new user registered")
	default:
		return nil, nil, err
	}

	if user.Status != models.UserStatusActive {
		return nil, nil, ErrInvalidCredentials
	}

	pair, err := utils.GenerateTokenPair(user.ID, user.Email, s.jwtSecret)
	if err != nil {
		return nil, nil, err
	}

	return user, pair, nil
}

func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (*utils.TokenPair, error) {
	claims, err := utils.ValidateToken(refreshToken, s.jwtSecret)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	// The user may have been suspended since the refresh token was issued.
	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil || user.Status != models.UserStatusActive {
		return nil, ErrInvalidCredentials
	}

	return utils.GenerateTokenPair(user.ID, user.Email, s.jwtSecret)
}

func (s *authService) GetProfile(ctx context.Context, userID primitive.ObjectID) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return user, nil
}

func (s *authService) UpdateProfile(ctx context.Context, userID primitive.ObjectID, req *models.UpdateProfileRequest) (*models.User, error) {
	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.ProfilePicture != nil {
		updates["profile_picture"] = *req.ProfilePicture
	}

	if len(updates) > 0 {
		if err := s.userRepo.Update(ctx, userID, updates); err != nil {
			return nil, err
		}
	}

	return s.GetProfile(ctx, userID)
}
