package handlers

import (
	"menustamp/internal/models"
	"menustamp/internal/services"
	"menustamp/internal/utils"
	"menustamp/internal/validators"

	"github.com/gin-gonic/gin"
)

type ClaimHandler struct {
	claimService services.ClaimService
}

func NewClaimHandler(claimService services.ClaimService) *ClaimHandler {
	return &ClaimHandler{
		claimService: claimService,
	}
}

// CreateClaim files a redemption request for a full card.
func (h *ClaimHandler) CreateClaim(c *gin.Context) {
	email, ok := currentUserEmail(c)
	if !ok {
		return
	}

	var request models.CreateClaimRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	if errs := validators.ValidateStruct(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.Fields())
		return
	}

	claim, err := h.claimService.CreateClaim(c.Request.Context(), email, &request)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, "Claim created", claim)
}

func (h *ClaimHandler) GetMyClaims(c *gin.Context) {
	email, ok := currentUserEmail(c)
	if !ok {
		return
	}

	claims, err := h.claimService.GetMyClaims(c.Request.Context(), email)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Claims retrieved", claims)
}

// GetShopClaims lists claims for the dashboard, optionally filtered by
// status via ?status=pending.
func (h *ClaimHandler) GetShopClaims(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	shopID, ok := objectIDParam(c, "shopId")
	if !ok {
		return
	}

	status := models.ClaimStatus(c.Query("status"))
	params := utils.GetPaginationParams(c)

	claims, total, err := h.claimService.GetShopClaims(c.Request.Context(), userID, shopID, status, params)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Claims retrieved", claims, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
		Total:      total,
		Count:      len(claims),
	})
}

func (h *ClaimHandler) ApproveClaim(c *gin.Context) {
	h.transition(c, "approve")
}

func (h *ClaimHandler) RejectClaim(c *gin.Context) {
	h.transition(c, "reject")
}

func (h *ClaimHandler) CompleteClaim(c *gin.Context) {
	h.transition(c, "complete")
}

func (h *ClaimHandler) transition(c *gin.Context, action string) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	claimID, ok := objectIDParam(c, "claimId")
	if !ok {
		return
	}

	var (
		claim *models.Claim
		err   error
	)
	switch action {
	case "approve":
		claim, err = h.claimService.ApproveClaim(c.Request.Context(), userID, claimID)
	case "reject":
		claim, err = h.claimService.RejectClaim(c.Request.Context(), userID, claimID)
	default:
		claim, err = h.claimService.CompleteClaim(c.Request.Context(), userID, claimID)
	}
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Claim "+string(claim.Status), claim)
}
