package repository

import (
	"time"

	"github.com/google/uuid"

	"github.com/stampdeck/stampdeck-backend/internal/app/model"
	"github.com/stampdeck/stampdeck-backend/internal/kv"
	"github.com/stampdeck/stampdeck-backend/pkg/logger"
)

// LoyaltyCardRepository is the accessor for stamp cards. GetOrCreate is the
// sole place enforcing the one-card-per-(customer,campaign) invariant; it is
// a read-then-write with no concurrency guard, so two racing calls from
// separate processes could still create two cards. Known limitation.
type LoyaltyCardRepository interface {
	List() ([]model.LoyaltyCard, error)
	ByCustomer(customerID string) ([]model.LoyaltyCard, error)
	FindByID(id string) (*model.LoyaltyCard, error)
	GetOrCreate(customerID, campaignID string) (*model.LoyaltyCard, error)
	AddStamp(id string, count int) error
	SetStamps(id string, stamps int) error
}

type loyaltyCardRepository struct {
	store kv.Store
}

func NewLoyaltyCardRepository(store kv.Store) LoyaltyCardRepository {
	return &loyaltyCardRepository{store: store}
}

func (r *loyaltyCardRepository) List() ([]model.LoyaltyCard, error) {
	return readCollection[model.LoyaltyCard](r.store, KeyLoyaltyCards)
}

func (r *loyaltyCardRepository) ByCustomer(customerID string) ([]model.LoyaltyCard, error) {
	items, err := r.List()
	if err != nil {
		return nil, err
	}
	matched := make([]model.LoyaltyCard, 0)
	for _, c := range items {
		if c.CustomerID == customerID {
			matched = append(matched, c)
		}
	}
	return matched, nil
}

func (r *loyaltyCardRepository) FindByID(id string) (*model.LoyaltyCard, error) {
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

func (r *loyaltyCardRepository) GetOrCreate(customerID, campaignID string) (*model.LoyaltyCard, error) {
	items, err := r.List()
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].CustomerID == customerID && items[i].CampaignID == campaignID {
			return &items[i], nil
		}
	}

	card := model.LoyaltyCard{
		ID:         uuid.New().String(),
		CustomerID: customerID,
		CampaignID: campaignID,
		Stamps:     0,
		UpdatedAt:  time.Now(),
	}
	if err := writeCollection(r.store, KeyLoyaltyCards, append([]model.LoyaltyCard{card}, items...)); err != nil {
		return nil, err
	}

	logger.Debug("Loyalty card created", map[string]interface{}{
		"card_id":     card.ID,
		"customer_id": customerID,
		"campaign_id": campaignID,
	})
	return &card, nil
}

// AddStamp increments the stamp count. There is no upper bound against the
// campaign's stamps_required; over-collection is allowed.
func (r *loyaltyCardRepository) AddStamp(id string, count int) error {
	return updateCollection(r.store, KeyLoyaltyCards,
		func(c *model.LoyaltyCard) bool { return c.ID == id },
		func(c *model.LoyaltyCard) {
			c.Stamps += count
			c.UpdatedAt = time.Now()
		})
}

func (r *loyaltyCardRepository) SetStamps(id string, stamps int) error {
	return updateCollection(r.store, KeyLoyaltyCards,
		func(c *model.LoyaltyCard) bool { return c.ID == id },
		func(c *model.LoyaltyCard) {
			c.Stamps = stamps
			c.UpdatedAt = time.Now()
		})
}
