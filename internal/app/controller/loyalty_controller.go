package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stampdeck/stampdeck-backend/internal/app/service"
	apperrors "github.com/stampdeck/stampdeck-backend/internal/errors"
	"github.com/stampdeck/stampdeck-backend/internal/middleware"
)

type LoyaltyController struct {
	loyaltyService service.LoyaltyService
}

func NewLoyaltyController(loyaltyService service.LoyaltyService) *LoyaltyController {
	return &LoyaltyController{
		loyaltyService: loyaltyService,
	}
}

type JoinCampaignRequest struct {
	CampaignID string `json:"campaign_id" binding:"required"`
}

type ScanRequest struct {
	Payload string `json:"payload" binding:"required"`
}

type AddStampRequest struct {
	CustomerID string `json:"customer_id" binding:"required"`
	CampaignID string `json:"campaign_id" binding:"required"`
	Count      int    `json:"count"`
}

type RedeemRequest struct {
	CampaignID string `json:"campaign_id" binding:"required"`
	RewardID   string `json:"reward_id" binding:"required"`
}

// ListCards returns the caller's loyalty cards with their campaigns
// GET /api/v1/loyalty/cards
func (ctrl *LoyaltyController) ListCards(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	cards, err := ctrl.loyaltyService.ListCards(userID)
	if err != nil {
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "loyalty card")
		return
	}

	c.JSON(http.StatusOK, gin.H{"cards": cards})
}

// Join adds the caller to a campaign and returns the (possibly new) card
// POST /api/v1/loyalty/join
func (ctrl *LoyaltyController) Join(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	var req JoinCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "campaign_id is required")
		return
	}

	card, err := ctrl.loyaltyService.JoinCampaign(userID, req.CampaignID)
	if err != nil {
		respondLoyaltyError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"card": card})
}

// Scan resolves a scanned QR payload, auto-joining and stamping
// POST /api/v1/loyalty/scan
func (ctrl *LoyaltyController) Scan(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	userID, _ := middleware.GetUserID(c)

	var req ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "payload is required")
		return
	}

	result, err := ctrl.loyaltyService.HandleScan(userID, req.Payload)
	if err != nil {
		if !errors.Is(err, service.ErrInvalidStampPayload) {
			log.Warn("Scan failed", map[string]interface{}{
				"user_id": userID,
				"error":   err.Error(),
			})
		}
		respondLoyaltyError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// AddStamp grants stamps manually, for the business admin counter screen
// POST /api/v1/loyalty/stamps
func (ctrl *LoyaltyController) AddStamp(c *gin.Context) {
	var req AddStampRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "customer_id and campaign_id are required")
		return
	}
	if req.Count <= 0 {
		req.Count = 1
	}

	card, err := ctrl.loyaltyService.AddStamp(req.CustomerID, req.CampaignID, req.Count)
	if err != nil {
		respondLoyaltyError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"card": card})
}

// Redeem claims a reward against the caller's card
// POST /api/v1/loyalty/redeem
func (ctrl *LoyaltyController) Redeem(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	var req RedeemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "campaign_id and reward_id are required")
		return
	}

	redemption, err := ctrl.loyaltyService.Redeem(userID, req.CampaignID, req.RewardID)
	if err != nil {
		respondLoyaltyError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"redemption": redemption})
}

// ListRedemptions returns the caller's redemption history, newest first
// GET /api/v1/loyalty/redemptions
func (ctrl *LoyaltyController) ListRedemptions(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	redemptions, err := ctrl.loyaltyService.ListRedemptions(userID)
	if err != nil {
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "redemption")
		return
	}

	c.JSON(http.StatusOK, gin.H{"redemptions": redemptions})
}

func respondLoyaltyError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCampaignNotFound):
		apperrors.NotFound(c, apperrors.CampaignNotFound, "Campaign not found")
	case errors.Is(err, service.ErrCampaignInactive):
		apperrors.BadRequest(c, apperrors.CampaignInactive, "This campaign is not active")
	case errors.Is(err, service.ErrInvalidStampPayload):
		apperrors.BadRequest(c, apperrors.QRCodeInvalidPayload, "Scanned code is not a stamp code")
	case errors.Is(err, service.ErrCardNotFound):
		apperrors.NotFound(c, apperrors.CardNotFound, "Loyalty card not found")
	case errors.Is(err, service.ErrRewardNotFound):
		apperrors.NotFound(c, apperrors.RewardNotFound, "Reward not found")
	case errors.Is(err, service.ErrNotEnoughStamps):
		apperrors.BadRequest(c, apperrors.CardNotEnoughStamps, "Not enough stamps for this reward")
	default:
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "loyalty card")
	}
}
