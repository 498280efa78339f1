package controller

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/stampdeck/stampdeck-backend/internal/app/service"
	apperrors "github.com/stampdeck/stampdeck-backend/internal/errors"
	"github.com/stampdeck/stampdeck-backend/internal/middleware"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ReportController struct {
	reportService service.ReportService
}

func NewReportController(reportService service.ReportService) *ReportController {
	return &ReportController{
		reportService: reportService,
	}
}

// CampaignReport streams the caller's campaign XLSX export
// GET /api/v1/reports/campaigns
func (ctrl *ReportController) CampaignReport(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	userID, _ := middleware.GetUserID(c)

	f, err := ctrl.reportService.OwnerCampaignReport(userID)
	if err != nil {
		log.Error("Failed to build campaign report", err, map[string]interface{}{
			"owner_id": userID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "report")
		return
	}

	ctrl.stream(c, reportFilename("campaigns"), f)
}

// PlatformReport streams the super admin overview XLSX export
// GET /api/v1/reports/platform
func (ctrl *ReportController) PlatformReport(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	f, err := ctrl.reportService.PlatformReport()
	if err != nil {
		log.Error("Failed to build platform report", err, nil)
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "report")
		return
	}

	ctrl.stream(c, reportFilename("platform"), f)
}

func (ctrl *ReportController) stream(c *gin.Context, filename string, f *excelize.File) {
	c.Header("Content-Type", xlsxContentType)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	if err := f.Write(c.Writer); err != nil {
		middleware.GetLoggerFromContext(c).Error("Failed to stream report", err, nil)
	}
}

func reportFilename(kind string) string {
	return fmt.Sprintf("stampdeck-%s-%s.xlsx", kind, time.Now().Format("2006-01-02"))
}
