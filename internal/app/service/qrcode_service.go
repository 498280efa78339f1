package service

import (
	"errors"

	"github.com/stampdeck/stampdeck-backend/internal/app/model"
	"github.com/stampdeck/stampdeck-backend/internal/app/repository"
)

var ErrQRCodeNotFound = errors.New("qr code not found")

type QRCodeService interface {
	List() ([]model.QRCodeData, error)
	ListByCampaign(campaignID string) ([]model.QRCodeData, error)
	GetByID(id string) (*model.QRCodeData, error)
	// CreateForCampaign stores a stamp QR code for the campaign. The image
	// is rendered client-side; dataURL is whatever the client produced.
	CreateForCampaign(campaignID, dataURL string) (*model.QRCodeData, error)
	Deactivate(id string) error
	Delete(id string) error
}

type qrCodeService struct {
	qrRepo       repository.QRCodeRepository
	campaignRepo repository.CampaignRepository
}

func NewQRCodeService(
	qrRepo repository.QRCodeRepository,
	campaignRepo repository.CampaignRepository,
) QRCodeService {
	return &qrCodeService{
		qrRepo:       qrRepo,
		campaignRepo: campaignRepo,
	}
}

func (s *qrCodeService) List() ([]model.QRCodeData, error) {
	return s.qrRepo.List()
}

func (s *qrCodeService) ListByCampaign(campaignID string) ([]model.QRCodeData, error) {
	return s.qrRepo.ByCampaign(campaignID)
}

func (s *qrCodeService) GetByID(id string) (*model.QRCodeData, error) {
	qr, err := s.qrRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if qr == nil {
		return nil, ErrQRCodeNotFound
	}
	return qr, nil
}

func (s *qrCodeService) CreateForCampaign(campaignID, dataURL string) (*model.QRCodeData, error) {
	campaign, err := s.campaignRepo.FindByID(campaignID)
	if err != nil {
		return nil, err
	}
	if campaign == nil {
		return nil, ErrCampaignNotFound
	}

	return s.qrRepo.Add(model.QRCodeData{
		CampaignID: campaignID,
		Code:       model.StampPayload(campaign.Slug),
		DataURL:    dataURL,
		Purpose:    "stamp",
		Active:     true,
	})
}

func (s *qrCodeService) Deactivate(id string) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}
	return s.qrRepo.Update(id, func(q *model.QRCodeData) {
		q.Active = false
	})
}

func (s *qrCodeService) Delete(id string) error {
	return s.qrRepo.Remove(id)
}
