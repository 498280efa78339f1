package service

import (
	"errors"

	"github.com/stampdeck/stampdeck-backend/internal/app/model"
	"github.com/stampdeck/stampdeck-backend/internal/app/repository"
)

var ErrRewardNotFound = errors.New("reward not found")

// RewardUpdate carries the editable reward fields.
type RewardUpdate struct {
	Name           *string `json:"name,omitempty"`
	Description    *string `json:"description,omitempty"`
	StampsRequired *int    `json:"stamps_required,omitempty"`
	Active         *bool   `json:"active,omitempty"`
}

type RewardService interface {
	List() ([]model.Reward, error)
	ListByCampaign(campaignID string) ([]model.Reward, error)
	GetByID(id string) (*model.Reward, error)
	Create(input model.Reward) (*model.Reward, error)
	Update(id string, update RewardUpdate) (*model.Reward, error)
	Delete(id string) error
}

type rewardService struct {
	rewardRepo repository.RewardRepository
}

func NewRewardService(rewardRepo repository.RewardRepository) RewardService {
	return &rewardService{rewardRepo: rewardRepo}
}

func (s *rewardService) List() ([]model.Reward, error) {
	return s.rewardRepo.List()
}

func (s *rewardService) ListByCampaign(campaignID string) ([]model.Reward, error) {
	return s.rewardRepo.ByCampaign(campaignID)
}

func (s *rewardService) GetByID(id string) (*model.Reward, error) {
	reward, err := s.rewardRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if reward == nil {
		return nil, ErrRewardNotFound
	}
	return reward, nil
}

func (s *rewardService) Create(input model.Reward) (*model.Reward, error) {
	if input.StampsRequired <= 0 {
		input.StampsRequired = 10
	}
	return s.rewardRepo.Add(input)
}

func (s *rewardService) Update(id string, update RewardUpdate) (*model.Reward, error) {
	if _, err := s.GetByID(id); err != nil {
		return nil, err
	}

	err := s.rewardRepo.Update(id, func(r *model.Reward) {
		if update.Name != nil {
			r.Name = *update.Name
		}
		if update.Description != nil {
			r.Description = *update.Description
		}
		if update.StampsRequired != nil {
			r.StampsRequired = *update.StampsRequired
		}
		if update.Active != nil {
			r.Active = *update.Active
		}
	})
	if err != nil {
		return nil, err
	}
	return s.GetByID(id)
}

func (s *rewardService) Delete(id string) error {
	return s.rewardRepo.Remove(id)
}
