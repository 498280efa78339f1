package service

import (
	"errors"

	"github.com/stampdeck/stampdeck-backend/internal/app/model"
	"github.com/stampdeck/stampdeck-backend/internal/app/repository"
	"github.com/stampdeck/stampdeck-backend/pkg/logger"
)

var ErrCampaignNotFound = errors.New("campaign not found")

// CampaignUpdate carries the editable campaign fields. Nil fields are left
// untouched; the slug is fixed at creation.
type CampaignUpdate struct {
	Name           *string            `json:"name,omitempty"`
	Description    *string            `json:"description,omitempty"`
	StampsRequired *int               `json:"stamps_required,omitempty"`
	Active         *bool              `json:"active,omitempty"`
	ContactEmail   *string            `json:"contact_email,omitempty"`
	ContactPhone   *string            `json:"contact_phone,omitempty"`
	SocialLinks    *model.SocialLinks `json:"social_links,omitempty"`
}

// CampaignWithStats is a campaign plus the membership counters shown on the
// business dashboard.
type CampaignWithStats struct {
	model.Campaign
	MemberCount int `json:"member_count"`
}

type CampaignService interface {
	List() ([]model.Campaign, error)
	ListByOwner(ownerID string) ([]model.Campaign, error)
	ListByBusiness(businessID string) ([]model.Campaign, error)
	ListByOwnerWithStats(ownerID string) ([]CampaignWithStats, error)
	GetByID(id string) (*model.Campaign, error)
	GetBySlug(slug string) (*model.Campaign, error)
	Create(input model.Campaign) (*model.Campaign, error)
	Update(id string, actorID string, actorRole model.UserRole, update CampaignUpdate) (*model.Campaign, error)
	Delete(id string, actorID string, actorRole model.UserRole) error
}

type campaignService struct {
	campaignRepo repository.CampaignRepository
	joinRepo     repository.CustomerCampaignRepository
}

func NewCampaignService(
	campaignRepo repository.CampaignRepository,
	joinRepo repository.CustomerCampaignRepository,
) CampaignService {
	return &campaignService{
		campaignRepo: campaignRepo,
		joinRepo:     joinRepo,
	}
}

func (s *campaignService) List() ([]model.Campaign, error) {
	return s.campaignRepo.List()
}

func (s *campaignService) ListByOwner(ownerID string) ([]model.Campaign, error) {
	return s.campaignRepo.ByOwner(ownerID)
}

func (s *campaignService) ListByBusiness(businessID string) ([]model.Campaign, error) {
	return s.campaignRepo.ByBusiness(businessID)
}

func (s *campaignService) ListByOwnerWithStats(ownerID string) ([]CampaignWithStats, error) {
	campaigns, err := s.campaignRepo.ByOwner(ownerID)
	if err != nil {
		return nil, err
	}

	stats := make([]CampaignWithStats, 0, len(campaigns))
	for _, c := range campaigns {
		count, err := s.joinRepo.CountByCampaign(c.ID)
		if err != nil {
			return nil, err
		}
		stats = append(stats, CampaignWithStats{Campaign: c, MemberCount: count})
	}
	return stats, nil
}

func (s *campaignService) GetByID(id string) (*model.Campaign, error) {
	campaign, err := s.campaignRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if campaign == nil {
		return nil, ErrCampaignNotFound
	}
	return campaign, nil
}

func (s *campaignService) GetBySlug(slug string) (*model.Campaign, error) {
	campaign, err := s.campaignRepo.FindBySlug(slug)
	if err != nil {
		return nil, err
	}
	if campaign == nil {
		return nil, ErrCampaignNotFound
	}
	return campaign, nil
}

func (s *campaignService) Create(input model.Campaign) (*model.Campaign, error) {
	if input.StampsRequired <= 0 {
		input.StampsRequired = 10
	}
	return s.campaignRepo.Add(input)
}

func (s *campaignService) Update(id string, actorID string, actorRole model.UserRole, update CampaignUpdate) (*model.Campaign, error) {
	campaign, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(campaign, actorID, actorRole); err != nil {
		return nil, err
	}

	err = s.campaignRepo.Update(id, func(c *model.Campaign) {
		if update.Name != nil {
			c.Name = *update.Name
		}
		if update.Description != nil {
			c.Description = *update.Description
		}
		if update.StampsRequired != nil {
			c.StampsRequired = *update.StampsRequired
		}
		if update.Active != nil {
			c.Active = *update.Active
		}
		if update.ContactEmail != nil {
			c.ContactEmail = *update.ContactEmail
		}
		if update.ContactPhone != nil {
			c.ContactPhone = *update.ContactPhone
		}
		if update.SocialLinks != nil {
			c.SocialLinks = update.SocialLinks
		}
	})
	if err != nil {
		return nil, err
	}

	return s.GetByID(id)
}

func (s *campaignService) Delete(id string, actorID string, actorRole model.UserRole) error {
	campaign, err := s.GetByID(id)
	if err != nil {
		return err
	}
	if err := s.authorize(campaign, actorID, actorRole); err != nil {
		return err
	}

	logger.Info("Deleting campaign", map[string]interface{}{
		"campaign_id": id,
		"actor_id":    actorID,
	})
	return s.campaignRepo.Remove(id)
}

func (s *campaignService) authorize(campaign *model.Campaign, actorID string, actorRole model.UserRole) error {
	if actorRole == model.RoleSuperAdmin {
		return nil
	}
	if campaign.OwnerID != actorID {
		logger.Warn("Campaign access denied", map[string]interface{}{
			"campaign_id": campaign.ID,
			"owner_id":    campaign.OwnerID,
			"actor_id":    actorID,
		})
		return ErrNotOwner
	}
	return nil
}
