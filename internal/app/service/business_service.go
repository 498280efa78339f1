package service

import (
	"errors"

	"github.com/stampdeck/stampdeck-backend/internal/app/model"
	"github.com/stampdeck/stampdeck-backend/internal/app/repository"
	"github.com/stampdeck/stampdeck-backend/pkg/logger"
)

var (
	ErrBusinessNotFound = errors.New("business not found")
	ErrNotOwner         = errors.New("not the owner of this resource")
)

// BusinessUpdate carries the editable business fields. Nil fields are
// left untouched. Name edits never recompute the slug.
type BusinessUpdate struct {
	Name        *string            `json:"name,omitempty"`
	Description *string            `json:"description,omitempty"`
	Logo        *string            `json:"logo,omitempty"`
	Template    *string            `json:"template,omitempty"`
	Colors      *model.BrandColors `json:"colors,omitempty"`
}

type BusinessService interface {
	List() ([]model.Business, error)
	ListByOwner(ownerID string) ([]model.Business, error)
	GetByID(id string) (*model.Business, error)
	GetBySlug(slug string) (*model.Business, error)
	Create(input model.Business) (*model.Business, error)
	Update(id string, actorID string, actorRole model.UserRole, update BusinessUpdate) (*model.Business, error)
	Delete(id string, actorID string, actorRole model.UserRole) error
}

type businessService struct {
	businessRepo repository.BusinessRepository
}

func NewBusinessService(businessRepo repository.BusinessRepository) BusinessService {
	return &businessService{businessRepo: businessRepo}
}

func (s *businessService) List() ([]model.Business, error) {
	return s.businessRepo.List()
}

func (s *businessService) ListByOwner(ownerID string) ([]model.Business, error) {
	return s.businessRepo.ByOwner(ownerID)
}

func (s *businessService) GetByID(id string) (*model.Business, error) {
	business, err := s.businessRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if business == nil {
		return nil, ErrBusinessNotFound
	}
	return business, nil
}

func (s *businessService) GetBySlug(slug string) (*model.Business, error) {
	business, err := s.businessRepo.FindBySlug(slug)
	if err != nil {
		return nil, err
	}
	if business == nil {
		return nil, ErrBusinessNotFound
	}
	return business, nil
}

func (s *businessService) Create(input model.Business) (*model.Business, error) {
	return s.businessRepo.Add(input)
}

// Update applies the patch after an ownership check. Super admins can edit
// any business; business admins only their own.
func (s *businessService) Update(id string, actorID string, actorRole model.UserRole, update BusinessUpdate) (*model.Business, error) {
	business, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(business, actorID, actorRole); err != nil {
		return nil, err
	}

	err = s.businessRepo.Update(id, func(b *model.Business) {
		if update.Name != nil {
			b.Name = *update.Name
		}
		if update.Description != nil {
			b.Description = *update.Description
		}
		if update.Logo != nil {
			b.Logo = *update.Logo
		}
		if update.Template != nil {
			b.Template = *update.Template
		}
		if update.Colors != nil {
			b.Colors = *update.Colors
		}
	})
	if err != nil {
		return nil, err
	}

	return s.GetByID(id)
}

func (s *businessService) Delete(id string, actorID string, actorRole model.UserRole) error {
	business, err := s.GetByID(id)
	if err != nil {
		return err
	}
	if err := s.authorize(business, actorID, actorRole); err != nil {
		return err
	}

	logger.Info("Deleting business", map[string]interface{}{
		"business_id": id,
		"actor_id":    actorID,
	})
	return s.businessRepo.Remove(id)
}

func (s *businessService) authorize(business *model.Business, actorID string, actorRole model.UserRole) error {
	if actorRole == model.RoleSuperAdmin {
		return nil
	}
	if business.OwnerID != actorID {
		logger.Warn("Business access denied", map[string]interface{}{
			"business_id": business.ID,
			"owner_id":    business.OwnerID,
			"actor_id":    actorID,
		})
		return ErrNotOwner
	}
	return nil
}
