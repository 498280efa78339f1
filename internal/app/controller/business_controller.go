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

type BusinessController struct {
	businessService service.BusinessService
}

func NewBusinessController(businessService service.BusinessService) *BusinessController {
	return &BusinessController{
		businessService: businessService,
	}
}

type CreateBusinessRequest struct {
	Name        string             `json:"name" binding:"required"`
	Description string             `json:"description"`
	Logo        string             `json:"logo"`
	Template    string             `json:"template"`
	Colors      *model.BrandColors `json:"colors"`
}

// List returns all businesses (super admin) or the caller's own
// GET /api/v1/businesses
func (ctrl *BusinessController) List(c *gin.Context) {
	role, _ := middleware.GetUserRole(c)
	userID, _ := middleware.GetUserID(c)

	var (
		businesses []model.Business
		err        error
	)
	if role == model.RoleSuperAdmin {
		businesses, err = ctrl.businessService.List()
	} else {
		businesses, err = ctrl.businessService.ListByOwner(userID)
	}
	if err != nil {
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "business")
		return
	}

	c.JSON(http.StatusOK, gin.H{"businesses": businesses})
}

// GetBySlug returns one business by its public slug, no auth required
// GET /api/v1/public/businesses/:slug
func (ctrl *BusinessController) GetBySlug(c *gin.Context) {
	business, err := ctrl.businessService.GetBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrBusinessNotFound) {
			apperrors.NotFound(c, apperrors.BusinessNotFound, "Business not found")
			return
		}
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "business")
		return
	}

	c.JSON(http.StatusOK, gin.H{"business": business})
}

// GetByID returns one business
// GET /api/v1/businesses/:id
func (ctrl *BusinessController) GetByID(c *gin.Context) {
	business, err := ctrl.businessService.GetByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrBusinessNotFound) {
			apperrors.NotFound(c, apperrors.BusinessNotFound, "Business not found")
			return
		}
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "business")
		return
	}

	c.JSON(http.StatusOK, gin.H{"business": business})
}

// Create registers a new business owned by the caller. Creating with a name
// that normalizes to an existing slug returns the existing business.
// POST /api/v1/businesses
func (ctrl *BusinessController) Create(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	userID, _ := middleware.GetUserID(c)

	var req CreateBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Business name is required")
		return
	}

	input := model.Business{
		Name:        req.Name,
		Description: req.Description,
		Logo:        req.Logo,
		Template:    req.Template,
		OwnerID:     userID,
	}
	if req.Colors != nil {
		input.Colors = *req.Colors
	}

	business, err := ctrl.businessService.Create(input)
	if err != nil {
		log.Error("Failed to create business", err, map[string]interface{}{
			"name": req.Name,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "business")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"business": business})
}

// Update edits a business after an ownership check
// PUT /api/v1/businesses/:id
func (ctrl *BusinessController) Update(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	role, _ := middleware.GetUserRole(c)

	var update service.BusinessUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid update data")
		return
	}

	business, err := ctrl.businessService.Update(c.Param("id"), userID, role, update)
	if err != nil {
		respondBusinessError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"business": business})
}

// Delete removes a business
// DELETE /api/v1/businesses/:id
func (ctrl *BusinessController) Delete(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	role, _ := middleware.GetUserRole(c)

	if err := ctrl.businessService.Delete(c.Param("id"), userID, role); err != nil {
		respondBusinessError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Business deleted"})
}

func respondBusinessError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrBusinessNotFound):
		apperrors.NotFound(c, apperrors.BusinessNotFound, "Business not found")
	case errors.Is(err, service.ErrNotOwner):
		apperrors.Forbidden(c, "You do not own this business")
	default:
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "business")
	}
}
