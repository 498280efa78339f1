package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stampdeck/stampdeck-backend/internal/app/service"
	apperrors "github.com/stampdeck/stampdeck-backend/internal/errors"
	"github.com/stampdeck/stampdeck-backend/internal/middleware"
)

type ReferralController struct {
	referralService service.ReferralService
}

func NewReferralController(referralService service.ReferralService) *ReferralController {
	return &ReferralController{
		referralService: referralService,
	}
}

type ApplyReferralRequest struct {
	Code string `json:"code" binding:"required"`
}

// Mine returns the caller's referral record, creating it on first access
// GET /api/v1/referrals/mine
func (ctrl *ReferralController) Mine(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	referral, err := ctrl.referralService.GetOrCreateForUser(userID)
	if err != nil {
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "referral")
		return
	}

	c.JSON(http.StatusOK, gin.H{"referral": referral})
}

// Apply credits the code's owner for referring the caller
// POST /api/v1/referrals/apply
func (ctrl *ReferralController) Apply(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	var req ApplyReferralRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "code is required")
		return
	}

	referral, err := ctrl.referralService.ApplyCode(userID, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrReferralNotFound):
			apperrors.NotFound(c, apperrors.ReferralNotFound, "Referral code not found")
		case errors.Is(err, service.ErrSelfReferral):
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "You cannot apply your own referral code")
		default:
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "referral")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"referral": referral})
}
