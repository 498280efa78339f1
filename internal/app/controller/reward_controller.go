package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stampdeck/stampdeck-backend/internal/app/model"
	"github.com/stampdeck/stampdeck-backend/internal/app/service"
	apperrors "github.com/stampdeck/stampdeck-backend/internal/errors"
)

type RewardController struct {
	rewardService service.RewardService
}

func NewRewardController(rewardService service.RewardService) *RewardController {
	return &RewardController{
		rewardService: rewardService,
	}
}

type CreateRewardRequest struct {
	CampaignID     string `json:"campaign_id"`
	Name           string `json:"name" binding:"required"`
	Description    string `json:"description"`
	StampsRequired int    `json:"stamps_required"`
}

// List returns rewards, optionally filtered by campaign
// GET /api/v1/rewards?campaign_id=...
func (ctrl *RewardController) List(c *gin.Context) {
	var (
		rewards []model.Reward
		err     error
	)
	if campaignID := c.Query("campaign_id"); campaignID != "" {
		rewards, err = ctrl.rewardService.ListByCampaign(campaignID)
	} else {
		rewards, err = ctrl.rewardService.List()
	}
	if err != nil {
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "reward")
		return
	}

	c.JSON(http.StatusOK, gin.H{"rewards": rewards})
}

// Create adds a reward
// POST /api/v1/rewards
func (ctrl *RewardController) Create(c *gin.Context) {
	var req CreateRewardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Reward name is required")
		return
	}

	reward, err := ctrl.rewardService.Create(model.Reward{
		CampaignID:     req.CampaignID,
		Name:           req.Name,
		Description:    req.Description,
		StampsRequired: req.StampsRequired,
		Active:         true,
	})
	if err != nil {
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "reward")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"reward": reward})
}

// Update edits a reward
// PUT /api/v1/rewards/:id
func (ctrl *RewardController) Update(c *gin.Context) {
	var update service.RewardUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid update data")
		return
	}

	reward, err := ctrl.rewardService.Update(c.Param("id"), update)
	if err != nil {
		if errors.Is(err, service.ErrRewardNotFound) {
			apperrors.NotFound(c, apperrors.RewardNotFound, "Reward not found")
			return
		}
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "reward")
		return
	}

	c.JSON(http.StatusOK, gin.H{"reward": reward})
}

// Delete removes a reward
// DELETE /api/v1/rewards/:id
func (ctrl *RewardController) Delete(c *gin.Context) {
	if err := ctrl.rewardService.Delete(c.Param("id")); err != nil {
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "reward")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Reward deleted"})
}
