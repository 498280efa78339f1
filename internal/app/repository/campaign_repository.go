package repository

import (
	"time"

	"github.com/google/uuid"

	"github.com/stampdeck/stampdeck-backend/internal/app/model"
	"github.com/stampdeck/stampdeck-backend/internal/kv"
	"github.com/stampdeck/stampdeck-backend/pkg/logger"
)

// CampaignRepository is the collection accessor for campaigns.
type CampaignRepository interface {
	List() ([]model.Campaign, error)
	Add(input model.Campaign) (*model.Campaign, error)
	Update(id string, mutate func(*model.Campaign)) error
	Remove(id string) error
	FindByID(id string) (*model.Campaign, error)
	FindBySlug(slug string) (*model.Campaign, error)
	ByBusiness(businessID string) ([]model.Campaign, error)
	ByOwner(ownerID string) ([]model.Campaign, error)
}

type campaignRepository struct {
	store kv.Store
}

func NewCampaignRepository(store kv.Store) CampaignRepository {
	return &campaignRepository{store: store}
}

func (r *campaignRepository) List() ([]model.Campaign, error) {
	return readCollection[model.Campaign](r.store, KeyCampaigns)
}

// Add applies the same slug-dedup policy as businesses: a colliding name
// returns the existing campaign unchanged.
func (r *campaignRepository) Add(input model.Campaign) (*model.Campaign, error) {
	slug := model.GenerateSlug(input.Name)

	existing, err := r.FindBySlug(slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		logger.Warn("Campaign with slug already exists, returning existing record", map[string]interface{}{
			"slug":        slug,
			"existing_id": existing.ID,
		})
		return existing, nil
	}

	next := input
	next.ID = uuid.New().String()
	next.Slug = slug
	next.CreatedAt = time.Now()

	if err := prependToCollection(r.store, KeyCampaigns, next); err != nil {
		return nil, err
	}

	logger.Debug("Campaign saved", map[string]interface{}{
		"campaign_id": next.ID,
		"slug":        next.Slug,
	})
	return &next, nil
}

func (r *campaignRepository) Update(id string, mutate func(*model.Campaign)) error {
	return updateCollection(r.store, KeyCampaigns,
		func(c *model.Campaign) bool { return c.ID == id }, mutate)
}

func (r *campaignRepository) Remove(id string) error {
	return removeFromCollection(r.store, KeyCampaigns,
		func(c *model.Campaign) bool { return c.ID == id })
}

func (r *campaignRepository) FindByID(id string) (*model.Campaign, error) {
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

func (r *campaignRepository) FindBySlug(slug string) (*model.Campaign, error) {
	items, err := r.List()
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].Slug == slug {
			return &items[i], nil
		}
	}
	return nil, nil
}

func (r *campaignRepository) ByBusiness(businessID string) ([]model.Campaign, error) {
	items, err := r.List()
	if err != nil {
		return nil, err
	}
	matched := make([]model.Campaign, 0)
	for _, c := range items {
		if c.BusinessID == businessID {
			matched = append(matched, c)
		}
	}
	return matched, nil
}

func (r *campaignRepository) ByOwner(ownerID string) ([]model.Campaign, error) {
	items, err := r.List()
	if err != nil {
		return nil, err
	}
	matched := make([]model.Campaign, 0)
	for _, c := range items {
		if c.OwnerID == ownerID {
			matched = append(matched, c)
		}
	}
	return matched, nil
}
