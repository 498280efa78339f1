package service

import (
	"github.com/xuri/excelize/v2"

	"github.com/stampdeck/stampdeck-backend/internal/app/repository"
	"github.com/stampdeck/stampdeck-backend/pkg/logger"
)

// ReportService renders XLSX exports for the admin dashboards.
type ReportService interface {
	// OwnerCampaignReport builds a per-campaign membership and stamp sheet
	// for one business admin.
	OwnerCampaignReport(ownerID string) (*excelize.File, error)
	// PlatformReport builds the super-admin overview across all businesses.
	PlatformReport() (*excelize.File, error)
}

type reportService struct {
	businessRepo repository.BusinessRepository
	campaignRepo repository.CampaignRepository
	cardRepo     repository.LoyaltyCardRepository
	joinRepo     repository.CustomerCampaignRepository
	redemptions  repository.RedemptionRepository
}

func NewReportService(
	businessRepo repository.BusinessRepository,
	campaignRepo repository.CampaignRepository,
	cardRepo repository.LoyaltyCardRepository,
	joinRepo repository.CustomerCampaignRepository,
	redemptions repository.RedemptionRepository,
) ReportService {
	return &reportService{
		businessRepo: businessRepo,
		campaignRepo: campaignRepo,
		cardRepo:     cardRepo,
		joinRepo:     joinRepo,
		redemptions:  redemptions,
	}
}

func (s *reportService) OwnerCampaignReport(ownerID string) (*excelize.File, error) {
	campaigns, err := s.campaignRepo.ByOwner(ownerID)
	if err != nil {
		return nil, err
	}
	cards, err := s.cardRepo.List()
	if err != nil {
		return nil, err
	}

	stampsByCampaign := make(map[string]int)
	for _, card := range cards {
		stampsByCampaign[card.CampaignID] += card.Stamps
	}

	f := excelize.NewFile()
	sheet := "Campaigns"
	f.SetSheetName(f.GetSheetName(0), sheet)

	headers := []string{"Campaign", "Slug", "Active", "Stamps Required", "Members", "Total Stamps"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for row, c := range campaigns {
		members, err := s.joinRepo.CountByCampaign(c.ID)
		if err != nil {
			return nil, err
		}
		values := []interface{}{c.Name, c.Slug, c.Active, c.StampsRequired, members, stampsByCampaign[c.ID]}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	logger.Info("Generated owner campaign report", map[string]interface{}{
		"owner_id":  ownerID,
		"campaigns": len(campaigns),
	})
	return f, nil
}

func (s *reportService) PlatformReport() (*excelize.File, error) {
	businesses, err := s.businessRepo.List()
	if err != nil {
		return nil, err
	}
	redemptions, err := s.redemptions.List()
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	sheet := "Businesses"
	f.SetSheetName(f.GetSheetName(0), sheet)

	headers := []string{"Business", "Slug", "Owner", "Campaigns", "Members"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for row, b := range businesses {
		campaigns, err := s.campaignRepo.ByBusiness(b.ID)
		if err != nil {
			return nil, err
		}
		members := 0
		for _, c := range campaigns {
			n, err := s.joinRepo.CountByCampaign(c.ID)
			if err != nil {
				return nil, err
			}
			members += n
		}
		values := []interface{}{b.Name, b.Slug, b.OwnerID, len(campaigns), members}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	// Redemption totals on a second sheet
	summary := "Summary"
	if _, err := f.NewSheet(summary); err != nil {
		return nil, err
	}
	f.SetCellValue(summary, "A1", "Total Businesses")
	f.SetCellValue(summary, "B1", len(businesses))
	f.SetCellValue(summary, "A2", "Total Redemptions")
	f.SetCellValue(summary, "B2", len(redemptions))

	logger.Info("Generated platform report", map[string]interface{}{
		"businesses":  len(businesses),
		"redemptions": len(redemptions),
	})
	return f, nil
}
