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

type BrandingController struct {
	brandingService service.BrandingService
}

func NewBrandingController(brandingService service.BrandingService) *BrandingController {
	return &BrandingController{
		brandingService: brandingService,
	}
}

// GetSettings returns the caller's branding record, defaults included
// GET /api/v1/branding
func (ctrl *BrandingController) GetSettings(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	settings, err := ctrl.brandingService.GetSettings(userID)
	if err != nil {
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "branding")
		return
	}

	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

// UpdateSettings merges a partial branding update onto the caller's record
// PUT /api/v1/branding
func (ctrl *BrandingController) UpdateSettings(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	userID, _ := middleware.GetUserID(c)

	var patch model.TenantSettingsPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid branding data")
		return
	}

	settings, err := ctrl.brandingService.UpdateSettings(userID, patch)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnknownTemplate):
			apperrors.BadRequest(c, apperrors.BrandingUnknownTemplate, "Unknown card template")
		case errors.Is(err, service.ErrUnknownPalette):
			apperrors.BadRequest(c, apperrors.BrandingUnknownPalette, "Unknown color palette")
		default:
			log.Error("Failed to update branding", err, map[string]interface{}{
				"owner_user_id": userID,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "branding")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

// Templates returns the fixed card template catalog
// GET /api/v1/branding/templates
func (ctrl *BrandingController) Templates(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"templates": ctrl.brandingService.Templates()})
}

// Palettes returns the fixed color palette catalog
// GET /api/v1/branding/palettes
func (ctrl *BrandingController) Palettes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"palettes": ctrl.brandingService.Palettes()})
}
