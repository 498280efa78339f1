package repository

import (
	"time"

	"github.com/google/uuid"

	"github.com/stampdeck/stampdeck-backend/internal/app/model"
	"github.com/stampdeck/stampdeck-backend/internal/kv"
)

// CustomerCampaignRepository is the join table between customers and the
// campaigns they participate in.
type CustomerCampaignRepository interface {
	List() ([]model.CustomerCampaign, error)
	Join(customerID, campaignID string) (*model.CustomerCampaign, error)
	HasJoined(customerID, campaignID string) (bool, error)
	ByCustomer(customerID string) ([]model.CustomerCampaign, error)
	CountByCampaign(campaignID string) (int, error)
}

type customerCampaignRepository struct {
	store kv.Store
}

func NewCustomerCampaignRepository(store kv.Store) CustomerCampaignRepository {
	return &customerCampaignRepository{store: store}
}

func (r *customerCampaignRepository) List() ([]model.CustomerCampaign, error) {
	return readCollection[model.CustomerCampaign](r.store, KeyCustomerCampaigns)
}

// Join is idempotent: joining an already-joined campaign returns the
// existing membership record.
func (r *customerCampaignRepository) Join(customerID, campaignID string) (*model.CustomerCampaign, error) {
	items, err := r.List()
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].CustomerID == customerID && items[i].CampaignID == campaignID {
			return &items[i], nil
		}
	}

	next := model.CustomerCampaign{
		ID:         uuid.New().String(),
		CustomerID: customerID,
		CampaignID: campaignID,
		DateJoined: time.Now(),
	}
	if err := writeCollection(r.store, KeyCustomerCampaigns, append([]model.CustomerCampaign{next}, items...)); err != nil {
		return nil, err
	}
	return &next, nil
}

func (r *customerCampaignRepository) HasJoined(customerID, campaignID string) (bool, error) {
	items, err := r.List()
	if err != nil {
		return false, err
	}
	for _, cc := range items {
		if cc.CustomerID == customerID && cc.CampaignID == campaignID {
			return true, nil
		}
	}
	return false, nil
}

func (r *customerCampaignRepository) ByCustomer(customerID string) ([]model.CustomerCampaign, error) {
	items, err := r.List()
	if err != nil {
		return nil, err
	}
	matched := make([]model.CustomerCampaign, 0)
	for _, cc := range items {
		if cc.CustomerID == customerID {
			matched = append(matched, cc)
		}
	}
	return matched, nil
}

func (r *customerCampaignRepository) CountByCampaign(campaignID string) (int, error) {
	items, err := r.List()
	if err != nil {
		return 0, err
	}
	count := 0
	for _, cc := range items {
		if cc.CampaignID == campaignID {
			count++
		}
	}
	return count, nil
}
