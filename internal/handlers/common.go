package handlers

import (
	"errors"
	"net/http"

	"menustamp/internal/services"
	"menustamp/internal/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func currentUserID(c *gin.Context) (primitive.ObjectID, bool) {
	value, exists := c.Get("user_id")
	if !exists {
		utils.UnauthorizedResponse(c)
		return primitive.NilObjectID, false
	}

	userID, ok := value.(primitive.ObjectID)
	if !ok {
		utils.UnauthorizedResponse(c)
		return primitive.NilObjectID, false
	}

	return userID, true
}

func currentUserEmail(c *gin.Context) (string, bool) {
	email := c.GetString("user_email")
	if email == "" {
		utils.UnauthorizedResponse(c)
		return "", false
	}

	return email, true
}

func objectIDParam(c *gin.Context, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid "+name)
		return primitive.NilObjectID, false
	}

	return id, true
}

// respondServiceError translates service sentinels into API responses.
// Anything unmapped is an internal error and the message is not leaked.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		utils.NotFoundResponse(c, "User")
	case errors.Is(err, services.ErrShopNotFound):
		utils.NotFoundResponse(c, "Shop")
	case errors.Is(err, services.ErrStoreNotFound):
		utils.NotFoundResponse(c, "Store")
	case errors.Is(err, services.ErrMenuItemNotFound):
		utils.NotFoundResponse(c, "Menu item")
	case errors.Is(err, services.ErrRewardNotFound):
		utils.NotFoundResponse(c, "Reward")
	case errors.Is(err, services.ErrClaimNotFound):
		utils.NotFoundResponse(c, "Claim")
	case errors.Is(err, services.ErrFavoriteNotFound):
		utils.NotFoundResponse(c, "Favorite")
	case errors.Is(err, services.ErrCustomerNotFound):
		utils.ErrorResponse(c, http.StatusNotFound, "CUSTOMER_NOT_REGISTERED", err.Error())
	case errors.Is(err, services.ErrRecipientNotFound):
		utils.ErrorResponse(c, http.StatusNotFound, "RECIPIENT_NOT_REGISTERED", err.Error())
	case errors.Is(err, services.ErrNotShopOwner):
		utils.ForbiddenResponse(c)
	case errors.Is(err, services.ErrUsernameTaken),
		errors.Is(err, services.ErrItemCodeTaken),
		errors.Is(err, services.ErrAlreadyFavorite),
		errors.Is(err, services.ErrRewardHasStamps):
		utils.ConflictResponse(c, err.Error())
	case errors.Is(err, services.ErrCardFull):
		utils.ErrorResponse(c, http.StatusUnprocessableEntity, "CARD_FULL", err.Error())
	case errors.Is(err, services.ErrDuplicateScan):
		utils.ErrorResponse(c, http.StatusTooManyRequests, "DUPLICATE_SCAN", err.Error())
	case errors.Is(err, services.ErrNotEnoughStamps):
		utils.ErrorResponse(c, http.StatusUnprocessableEntity, "NOT_ENOUGH_STAMPS", err.Error())
	case errors.Is(err, services.ErrTransferToSelf):
		utils.ErrorResponse(c, http.StatusUnprocessableEntity, "TRANSFER_TO_SELF", err.Error())
	case errors.Is(err, services.ErrInvalidTransition):
		utils.ErrorResponse(c, http.StatusUnprocessableEntity, "INVALID_TRANSITION", err.Error())
	case errors.Is(err, services.ErrRewardInactive):
		utils.ErrorResponse(c, http.StatusUnprocessableEntity, "REWARD_INACTIVE", err.Error())
	case errors.Is(err, services.ErrNotFoodCourt):
		utils.ErrorResponse(c, http.StatusUnprocessableEntity, "NOT_FOOD_COURT", err.Error())
	case errors.Is(err, services.ErrStoreLimit):
		utils.ErrorResponse(c, http.StatusUnprocessableEntity, "STORE_LIMIT", err.Error())
	case errors.Is(err, services.ErrUnsupportedImage):
		utils.BadRequestResponse(c, err.Error())
	case errors.Is(err, utils.ErrInvalidQRPayload):
		utils.BadRequestResponse(c, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		utils.UnauthorizedResponse(c)
	default:
		utils.InternalServerErrorResponse(c)
	}
}
