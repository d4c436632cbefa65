package handlers

import (
	"menustamp/internal/models"
	"menustamp/internal/services"
	"menustamp/internal/utils"
	"menustamp/internal/validators"

	"github.com/gin-gonic/gin"
)

type StampHandler struct {
	stampService services.StampService
}

func NewStampHandler(stampService services.StampService) *StampHandler {
	return &StampHandler{
		stampService: stampService,
	}
}

// ScanStamp is the shop-side endpoint: the owner scans a customer QR code
// and a stamp lands on the customer's card.
func (h *StampHandler) ScanStamp(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	shopID, ok := objectIDParam(c, "shopId")
	if !ok {
		return
	}

	var request models.ScanStampRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	if errs := validators.ValidateStruct(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.Fields())
		return
	}

	stamp, err := h.stampService.IssueStamp(c.Request.Context(), userID, shopID, &request)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, "Stamp issued", stamp)
}

func (h *StampHandler) GetMyStamps(c *gin.Context) {
	email, ok := currentUserEmail(c)
	if !ok {
		return
	}

	stamps, err := h.stampService.GetMyStamps(c.Request.Context(), email)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Stamps retrieved", stamps)
}

func (h *StampHandler) GetCardProgress(c *gin.Context) {
	email, ok := currentUserEmail(c)
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

	progress, err := h.stampService.GetCardProgress(c.Request.Context(), email, shopID, rewardID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Card progress retrieved", progress)
}

func (h *StampHandler) TransferStamps(c *gin.Context) {
	email, ok := currentUserEmail(c)
	if !ok {
		return
	}

	var request models.TransferStampsRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	if errs := validators.ValidateStruct(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.Fields())
		return
	}

	stamp, err := h.stampService.TransferStamps(c.Request.Context(), email, &request)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Stamps transferred", stamp)
}
