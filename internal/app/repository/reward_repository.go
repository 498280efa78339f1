package repository

import (
	"time"

	"github.com/google/uuid"

	"github.com/stampdeck/stampdeck-backend/internal/app/model"
	"github.com/stampdeck/stampdeck-backend/internal/kv"
)

type RewardRepository interface {
	List() ([]model.Reward, error)
	Add(input model.Reward) (*model.Reward, error)
	Update(id string, mutate func(*model.Reward)) error
	Remove(id string) error
	FindByID(id string) (*model.Reward, error)
	ByCampaign(campaignID string) ([]model.Reward, error)
}

type rewardRepository struct {
	store kv.Store
}

func NewRewardRepository(store kv.Store) RewardRepository {
	return &rewardRepository{store: store}
}

func (r *rewardRepository) List() ([]model.Reward, error) {
	return readCollection[model.Reward](r.store, KeyRewards)
}

func (r *rewardRepository) Add(input model.Reward) (*model.Reward, error) {
	next := input
	next.ID = uuid.New().String()
	next.CreatedAt = time.Now()

	if err := prependToCollection(r.store, KeyRewards, next); err != nil {
		return nil, err
	}
	return &next, nil
}

func (r *rewardRepository) Update(id string, mutate func(*model.Reward)) error {
	return updateCollection(r.store, KeyRewards,
		func(x *model.Reward) bool { return x.ID == id }, mutate)
}

func (r *rewardRepository) Remove(id string) error {
	return removeFromCollection(r.store, KeyRewards,
		func(x *model.Reward) bool { return x.ID == id })
}

func (r *rewardRepository) FindByID(id string) (*model.Reward, error) {
	items, err := r.List()
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID == id {
			return &items[i], nil
		}
	}
	return nil, nil
}

func (r *rewardRepository) ByCampaign(campaignID string) ([]model.Reward, error) {
	items, err := r.List()
	if err != nil {
		return nil, err
	}
	matched := make([]model.Reward, 0)
	for _, x := range items {
		if x.CampaignID == campaignID {
			matched = append(matched, x)
		}
	}
	return matched, nil
}
