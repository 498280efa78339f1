package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/stampdeck/stampdeck-backend/internal/app/service"
	apperrors "github.com/stampdeck/stampdeck-backend/internal/errors"
)

type CouponController struct {
	couponService service.CouponService
}

func NewCouponController(couponService service.CouponService) *CouponController {
	return &CouponController{
		couponService: couponService,
	}
}

type CreateCouponRequest struct {
	Prefix    string     `json:"prefix"`
	Discount  int        `json:"discount" binding:"required,min=1,max=100"`
	ExpiresAt *time.Time `json:"expires_at"`
}

type ValidateCouponRequest struct {
	Code string `json:"code" binding:"required"`
}

// List returns all coupons
// GET /api/v1/coupons
func (ctrl *CouponController) List(c *gin.Context) {
	coupons, err := ctrl.couponService.List()
	if err != nil {
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "coupon")
		return
	}

	c.JSON(http.StatusOK, gin.H{"coupons": coupons})
}

// Create mints a coupon with a generated code
// POST /api/v1/coupons
func (ctrl *CouponController) Create(c *gin.Context) {
	var req CreateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Discount must be between 1 and 100")
		return
	}

	coupon, err := ctrl.couponService.Create(req.Prefix, req.Discount, req.ExpiresAt)
	if err != nil {
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "coupon")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"coupon": coupon})
}

// Validate checks a code at the counter
// POST /api/v1/coupons/validate
func (ctrl *CouponController) Validate(c *gin.Context) {
	var req ValidateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "code is required")
		return
	}

	coupon, err := ctrl.couponService.Validate(req.Code)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCouponNotFound):
			apperrors.NotFound(c, apperrors.CouponNotFound, "Coupon not found")
		case errors.Is(err, service.ErrCouponExpired):
			apperrors.BadRequest(c, apperrors.CouponExpired, "Coupon has expired")
		case errors.Is(err, service.ErrCouponInactive):
			apperrors.BadRequest(c, apperrors.CouponInactive, "Coupon is not active")
		default:
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "coupon")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"coupon": coupon})
}

// Deactivate flips a coupon inactive without deleting it
// POST /api/v1/coupons/:id/deactivate
func (ctrl *CouponController) Deactivate(c *gin.Context) {
	if err := ctrl.couponService.Deactivate(c.Param("id")); err != nil {
		if errors.Is(err, service.ErrCouponNotFound) {
			apperrors.NotFound(c, apperrors.CouponNotFound, "Coupon not found")
			return
		}
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "coupon")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Coupon deactivated"})
}

// Delete removes a coupon
// DELETE /api/v1/coupons/:id
func (ctrl *CouponController) Delete(c *gin.Context) {
	if err := ctrl.couponService.Delete(c.Param("id")); err != nil {
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "coupon")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Coupon deleted"})
}
