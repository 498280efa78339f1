package repository

import (
	"time"

	"github.com/google/uuid"

	"github.com/stampdeck/stampdeck-backend/internal/app/model"
	"github.com/stampdeck/stampdeck-backend/internal/kv"
	"github.com/stampdeck/stampdeck-backend/pkg/logger"
)

// BusinessRepository is the collection accessor for businesses. Find methods
// return (nil, nil) when no record matches; errors are storage failures only.
type BusinessRepository interface {
	List() ([]model.Business, error)
	Add(input model.Business) (*model.Business, error)
	Update(id string, mutate func(*model.Business)) error
	Remove(id string) error
	FindByID(id string) (*model.Business, error)
	FindBySlug(slug string) (*model.Business, error)
	ByOwner(ownerID string) ([]model.Business, error)
}

type businessRepository struct {
	store kv.Store
}

func NewBusinessRepository(store kv.Store) BusinessRepository {
	return &businessRepository{store: store}
}

func (r *businessRepository) List() ([]model.Business, error) {
	return readCollection[model.Business](r.store, KeyBusinesses)
}

// Add assigns id, slug and timestamp and prepends the record. If a business
// with the same slug already exists the existing record is returned and the
// collection is left untouched: colliding creates are an idempotent no-op,
// not an error.
func (r *businessRepository) Add(input model.Business) (*model.Business, error) {
	slug := model.GenerateSlug(input.Name)

	existing, err := r.FindBySlug(slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		logger.Warn("Business with slug already exists, returning existing record", map[string]interface{}{
			"slug":        slug,
			"existing_id": existing.ID,
		})
		return existing, nil
	}

	next := input
	next.ID = uuid.New().String()
	next.Slug = slug
	next.CreatedAt = time.Now()

	if err := prependToCollection(r.store, KeyBusinesses, next); err != nil {
		return nil, err
	}

	logger.Debug("Business saved", map[string]interface{}{
		"business_id": next.ID,
		"slug":        next.Slug,
	})
	return &next, nil
}

func (r *businessRepository) Update(id string, mutate func(*model.Business)) error {
	return updateCollection(r.store, KeyBusinesses,
		func(b *model.Business) bool { return b.ID == id }, mutate)
}

// Remove deletes the business record only. Campaigns referencing it are left
// behind; there is no cascade.
func (r *businessRepository) Remove(id string) error {
	return removeFromCollection(r.store, KeyBusinesses,
		func(b *model.Business) bool { return b.ID == id })
}

func (r *businessRepository) FindByID(id string) (*model.Business, error) {
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

func (r *businessRepository) FindBySlug(slug string) (*model.Business, error) {
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

func (r *businessRepository) ByOwner(ownerID string) ([]model.Business, error) {
	items, err := r.List()
	if err != nil {
		return nil, err
	}
	owned := make([]model.Business, 0)
	for _, b := range items {
		if b.OwnerID == ownerID {
			owned = append(owned, b)
		}
	}
	return owned, nil
}
