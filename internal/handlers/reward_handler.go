package handlers

import (
	"menustamp/internal/models"
	"menustamp/internal/services"
	"menustamp/internal/utils"
	"menustamp/internal/validators"

	"github.com/gin-gonic/gin"
)

type RewardHandler struct {
	rewardService services.RewardService
}

func NewRewardHandler(rewardService services.RewardService) *RewardHandler {
	return &RewardHandler{
		rewardService: rewardService,
	}
}

func (h *RewardHandler) CreateReward(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	shopID, ok := objectIDParam(c, "shopId")
	if !ok {
		return
	}

	var request models.CreateRewardRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	if errs := validators.ValidateCreateReward(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.Fields())
		return
	}

	reward, err := h.rewardService.CreateReward(c.Request.Context(), userID, shopID, &request)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, "Reward created", reward)
}

func (h *RewardHandler) GetRewards(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	shopID, ok := objectIDParam(c, "shopId")
	if !ok {
		return
	}

	rewards, err := h.rewardService.GetRewards(c.Request.Context(), userID, shopID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Rewards retrieved", rewards)
}

func (h *RewardHandler) UpdateReward(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	shopID, ok := objectIDParam(c, "shopId")
	if !ok {
		return
	}
	rewardID, ok := objectIDParam(c, "rewardId")
	if !ok {
		return
	}

	var request models.UpdateRewardRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	if errs := validators.ValidateStruct(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.Fields())
		return
	}

	reward, err := h.rewardService.UpdateReward(c.Request.Context(), userID, shopID, rewardID, &request)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Reward updated", reward)
}

func (h *RewardHandler) DeleteReward(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	shopID, ok := objectIDParam(c, "shopId")
	if !ok {
		return
	}
	rewardID, ok := objectIDParam(c, "rewardId")
	if !ok {
		return
	}

	if err := h.rewardService.DeleteReward(c.Request.Context(), userID, shopID, rewardID); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Reward deleted", nil)
}
