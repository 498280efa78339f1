package repository

import (
	"time"

	"github.com/google/uuid"

	"github.com/stampdeck/stampdeck-backend/internal/app/model"
	"github.com/stampdeck/stampdeck-backend/internal/kv"
	"github.com/stampdeck/stampdeck-backend/pkg/util"
)

// ReferralRepository holds one referral record per owner, enforced by
// lookup-before-create in EnsureForUser.
type ReferralRepository interface {
	List() ([]model.Referral, error)
	ByOwner(ownerUserID string) (*model.Referral, error)
	EnsureForUser(ownerUserID string) (*model.Referral, error)
	Increment(id string, count int) error
}

type referralRepository struct {
	store kv.Store
}

func NewReferralRepository(store kv.Store) ReferralRepository {
	return &referralRepository{store: store}
}

func (r *referralRepository) List() ([]model.Referral, error) {
	return readCollection[model.Referral](r.store, KeyReferrals)
}

func (r *referralRepository) ByOwner(ownerUserID string) (*model.Referral, error) {
	items, err := r.List()
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].OwnerUserID == ownerUserID {
			return &items[i], nil
		}
	}
	return nil, nil
}

// EnsureForUser returns the owner's referral record, creating it on first
// use. The code is derived from the owner id, so repeated calls agree on it
// even across separate store instances.
func (r *referralRepository) EnsureForUser(ownerUserID string) (*model.Referral, error) {
	existing, err := r.ByOwner(ownerUserID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	ref := model.Referral{
		ID:            uuid.New().String(),
		OwnerUserID:   ownerUserID,
		Code:          util.ReferralCodeForOwner(ownerUserID),
		ReferredCount: 0,
		CreatedAt:     time.Now(),
	}
	if err := prependToCollection(r.store, KeyReferrals, ref); err != nil {
		return nil, err
	}
	return &ref, nil
}

func (r *referralRepository) Increment(id string, count int) error {
	return updateCollection(r.store, KeyReferrals,
		func(x *model.Referral) bool { return x.ID == id },
		func(x *model.Referral) { x.ReferredCount += count })
}
