package handlers

import (
	"menustamp/internal/models"
	"menustamp/internal/services"
	"menustamp/internal/utils"
	"menustamp/internal/validators"

	"github.com/gin-gonic/gin"
)

type VisitHandler struct {
	visitService services.VisitService
}

func NewVisitHandler(visitService services.VisitService) *VisitHandler {
	return &VisitHandler{
		visitService: visitService,
	}
}

func (h *VisitHandler) RecordVisit(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var request models.RecordVisitRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	if errs := validators.ValidateStruct(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.Fields())
		return
	}

	if err := h.visitService.RecordVisit(c.Request.Context(), userID, request.ShopID); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Visit recorded", nil)
}

func (h *VisitHandler) GetRecentShops(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	visits, err := h.visitService.GetRecentShops(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Recent shops retrieved", visits)
}
