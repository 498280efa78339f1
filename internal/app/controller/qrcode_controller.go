package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stampdeck/stampdeck-backend/internal/app/model"
	"github.com/stampdeck/stampdeck-backend/internal/app/service"
	apperrors "github.com/stampdeck/stampdeck-backend/internal/errors"
)

type QRCodeController struct {
	qrCodeService service.QRCodeService
}

func NewQRCodeController(qrCodeService service.QRCodeService) *QRCodeController {
	return &QRCodeController{
		qrCodeService: qrCodeService,
	}
}

type CreateQRCodeRequest struct {
	CampaignID string `json:"campaign_id" binding:"required"`
	DataURL    string `json:"data_url"`
}

// List returns stored QR codes, optionally filtered by campaign
// GET /api/v1/qrcodes?campaign_id=...
func (ctrl *QRCodeController) List(c *gin.Context) {
	var (
		codes []model.QRCodeData
		err   error
	)
	if campaignID := c.Query("campaign_id"); campaignID != "" {
		codes, err = ctrl.qrCodeService.ListByCampaign(campaignID)
	} else {
		codes, err = ctrl.qrCodeService.List()
	}
	if err != nil {
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "qr code")
		return
	}

	c.JSON(http.StatusOK, gin.H{"qrcodes": codes})
}

// Create stores a stamp QR code for a campaign
// POST /api/v1/qrcodes
func (ctrl *QRCodeController) Create(c *gin.Context) {
	var req CreateQRCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "campaign_id is required")
		return
	}

	qr, err := ctrl.qrCodeService.CreateForCampaign(req.CampaignID, req.DataURL)
	if err != nil {
		if errors.Is(err, service.ErrCampaignNotFound) {
			apperrors.NotFound(c, apperrors.CampaignNotFound, "Campaign not found")
			return
		}
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "qr code")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"qrcode": qr})
}

// Deactivate retires a QR code
// POST /api/v1/qrcodes/:id/deactivate
func (ctrl *QRCodeController) Deactivate(c *gin.Context) {
	if err := ctrl.qrCodeService.Deactivate(c.Param("id")); err != nil {
		if errors.Is(err, service.ErrQRCodeNotFound) {
			apperrors.NotFound(c, apperrors.QRCodeNotFound, "QR code not found")
			return
		}
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "qr code")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "QR code deactivated"})
}

// Delete removes a QR code
// DELETE /api/v1/qrcodes/:id
func (ctrl *QRCodeController) Delete(c *gin.Context) {
	if err := ctrl.qrCodeService.Delete(c.Param("id")); err != nil {
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "qr code")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "QR code deleted"})
}
