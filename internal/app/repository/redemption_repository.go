package repository

import (
	"time"

	"github.com/google/uuid"

	"github.com/stampdeck/stampdeck-backend/internal/app/model"
	"github.com/stampdeck/stampdeck-backend/internal/kv"
)

// RedemptionRepository is an append-only log; no update or remove.
type RedemptionRepository interface {
	List() ([]model.Redemption, error)
	Add(input model.Redemption) (*model.Redemption, error)
	ByUser(userID string) ([]model.Redemption, error)
}

type redemptionRepository struct {
	store kv.Store
}

func NewRedemptionRepository(store kv.Store) RedemptionRepository {
	return &redemptionRepository{store: store}
}

func (r *redemptionRepository) List() ([]model.Redemption, error) {
	return readCollection[model.Redemption](r.store, KeyRedemptions)
}

func (r *redemptionRepository) Add(input model.Redemption) (*model.Redemption, error) {
	next := input
	next.ID = uuid.New().String()
	next.Date = time.Now()

	if err := prependToCollection(r.store, KeyRedemptions, next); err != nil {
		return nil, err
	}
	return &next, nil
}

func (r *redemptionRepository) ByUser(userID string) ([]model.Redemption, error) {
	items, err := r.List()
	if err != nil {
		return nil, err
	}
	matched := make([]model.Redemption, 0)
	for _, x := range items {
		if x.UserID == userID {
			matched = append(matched, x)
		}
	}
	return matched, nil
}
