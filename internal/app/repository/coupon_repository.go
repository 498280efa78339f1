package repository

import (
	"time"

	"github.com/google/uuid"

	"github.com/stampdeck/stampdeck-backend/internal/app/model"
	"github.com/stampdeck/stampdeck-backend/internal/kv"
	"github.com/stampdeck/stampdeck-backend/pkg/logger"
)

type CouponRepository interface {
	List() ([]model.Coupon, error)
	Add(input model.Coupon) (*model.Coupon, error)
	Update(id string, mutate func(*model.Coupon)) error
	Remove(id string) error
	FindByID(id string) (*model.Coupon, error)
	FindByCode(code string) (*model.Coupon, error)
	DeactivateExpired(now time.Time) (int, error)
}

type couponRepository struct {
	store kv.Store
}

func NewCouponRepository(store kv.Store) CouponRepository {
	return &couponRepository{store: store}
}

func (r *couponRepository) List() ([]model.Coupon, error) {
	return readCollection[model.Coupon](r.store, KeyCoupons)
}

func (r *couponRepository) Add(input model.Coupon) (*model.Coupon, error) {
	next := input
	next.ID = uuid.New().String()
	next.CreatedAt = time.Now()

	if err := prependToCollection(r.store, KeyCoupons, next); err != nil {
		return nil, err
	}
	return &next, nil
}

func (r *couponRepository) Update(id string, mutate func(*model.Coupon)) error {
	return updateCollection(r.store, KeyCoupons,
		func(x *model.Coupon) bool { return x.ID == id }, mutate)
}

func (r *couponRepository) Remove(id string) error {
	return removeFromCollection(r.store, KeyCoupons,
		func(x *model.Coupon) bool { return x.ID == id })
}

func (r *couponRepository) FindByID(id string) (*model.Coupon, error) {
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

func (r *couponRepository) FindByCode(code string) (*model.Coupon, error) {
	items, err := r.List()
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].Code == code {
			return &items[i], nil
		}
	}
	return nil, nil
}

// DeactivateExpired flips active off on every coupon whose expiry has
// passed and returns how many were touched.
func (r *couponRepository) DeactivateExpired(now time.Time) (int, error) {
	items, err := r.List()
	if err != nil {
		return 0, err
	}
	expired := 0
	for i := range items {
		if items[i].Active && items[i].Expired(now) {
			items[i].Active = false
			expired++
		}
	}
	if expired == 0 {
		return 0, nil
	}
	if err := writeCollection(r.store, KeyCoupons, items); err != nil {
		return 0, err
	}
	logger.Info("Deactivated expired coupons", map[string]interface{}{
		"count": expired,
	})
	return expired, nil
}
