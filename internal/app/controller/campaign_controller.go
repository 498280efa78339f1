package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stampdeck/stampdeck-backend/internal/app/model"
	"github.com/stampdeck/stampdeck-backend/internal/app/service"
	apperrors "github.com/stampdeck/stampdeck-backend/internal/errors"
	"github.com/stampdeck/stampdeck-backend/internal/middleware"
)

type CampaignController struct {
	campaignService service.CampaignService
}

func NewCampaignController(campaignService service.CampaignService) *CampaignController {
	return &CampaignController{
		campaignService: campaignService,
	}
}

type CreateCampaignRequest struct {
	BusinessID     string             `json:"business_id"`
	Name           string             `json:"name" binding:"required"`
	Description    string             `json:"description"`
	StampsRequired int                `json:"stamps_required"`
	ContactEmail   string             `json:"contact_email"`
	ContactPhone   string             `json:"contact_phone"`
	SocialLinks    *model.SocialLinks `json:"social_links"`
}

// List returns campaigns: all for super admins, own for business admins
// GET /api/v1/campaigns
func (ctrl *CampaignController) List(c *gin.Context) {
	role, _ := middleware.GetUserRole(c)
	userID, _ := middleware.GetUserID(c)

	if businessID := c.Query("business_id"); businessID != "" {
		campaigns, err := ctrl.campaignService.ListByBusiness(businessID)
		if err != nil {
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "campaign")
			return
		}
		c.JSON(http.StatusOK, gin.H{"campaigns": campaigns})
		return
	}

	var (
		campaigns []model.Campaign
		err       error
	)
	if role == model.RoleSuperAdmin {
		campaigns, err = ctrl.campaignService.List()
	} else {
		campaigns, err = ctrl.campaignService.ListByOwner(userID)
	}
	if err != nil {
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "campaign")
		return
	}

	c.JSON(http.StatusOK, gin.H{"campaigns": campaigns})
}

// Stats returns the caller's campaigns with membership counters
// GET /api/v1/campaigns/stats
func (ctrl *CampaignController) Stats(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	stats, err := ctrl.campaignService.ListByOwnerWithStats(userID)
	if err != nil {
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "campaign")
		return
	}

	c.JSON(http.StatusOK, gin.H{"campaigns": stats})
}

// GetBySlug returns one campaign by its public slug, no auth required.
// This is what the customer-facing card page loads.
// GET /api/v1/public/campaigns/:slug
func (ctrl *CampaignController) GetBySlug(c *gin.Context) {
	campaign, err := ctrl.campaignService.GetBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrCampaignNotFound) {
			apperrors.NotFound(c, apperrors.CampaignNotFound, "Campaign not found")
			return
		}
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "campaign")
		return
	}

	c.JSON(http.StatusOK, gin.H{"campaign": campaign})
}

// GetByID returns one campaign
// GET /api/v1/campaigns/:id
func (ctrl *CampaignController) GetByID(c *gin.Context) {
	campaign, err := ctrl.campaignService.GetByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrCampaignNotFound) {
			apperrors.NotFound(c, apperrors.CampaignNotFound, "Campaign not found")
			return
		}
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "campaign")
		return
	}

	c.JSON(http.StatusOK, gin.H{"campaign": campaign})
}

// Create starts a campaign owned by the caller. A name colliding with an
// existing slug returns the existing campaign instead of erroring.
// POST /api/v1/campaigns
func (ctrl *CampaignController) Create(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	userID, _ := middleware.GetUserID(c)

	var req CreateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Campaign name is required")
		return
	}

	campaign, err := ctrl.campaignService.Create(model.Campaign{
		BusinessID:     req.BusinessID,
		Name:           req.Name,
		Description:    req.Description,
		StampsRequired: req.StampsRequired,
		Active:         true,
		OwnerID:        userID,
		ContactEmail:   req.ContactEmail,
		ContactPhone:   req.ContactPhone,
		SocialLinks:    req.SocialLinks,
	})
	if err != nil {
		log.Error("Failed to create campaign", err, map[string]interface{}{
			"name": req.Name,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "campaign")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"campaign": campaign})
}

// Update edits a campaign after an ownership check
// PUT /api/v1/campaigns/:id
func (ctrl *CampaignController) Update(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	role, _ := middleware.GetUserRole(c)

	var update service.CampaignUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid update data")
		return
	}

	campaign, err := ctrl.campaignService.Update(c.Param("id"), userID, role, update)
	if err != nil {
		respondCampaignError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"campaign": campaign})
}

// Delete removes a campaign
// DELETE /api/v1/campaigns/:id
func (ctrl *CampaignController) Delete(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	role, _ := middleware.GetUserRole(c)

	if err := ctrl.campaignService.Delete(c.Param("id"), userID, role); err != nil {
		respondCampaignError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Campaign deleted"})
}

func respondCampaignError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCampaignNotFound):
		apperrors.NotFound(c, apperrors.CampaignNotFound, "Campaign not found")
	case errors.Is(err, service.ErrNotOwner):
		apperrors.Forbidden(c, "You do not own this campaign")
	default:
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "campaign")
	}
}
