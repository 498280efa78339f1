package service

import (
	"errors"
	"time"

	"github.com/stampdeck/stampdeck-backend/internal/app/model"
	"github.com/stampdeck/stampdeck-backend/internal/app/repository"
	"github.com/stampdeck/stampdeck-backend/pkg/logger"
	"github.com/stampdeck/stampdeck-backend/pkg/util"
)

var (
	ErrCouponNotFound = errors.New("coupon not found")
	ErrCouponExpired  = errors.New("coupon has expired")
	ErrCouponInactive = errors.New("coupon is not active")
)

const couponCodeLength = 8

type CouponService interface {
	List() ([]model.Coupon, error)
	GetByID(id string) (*model.Coupon, error)
	Create(prefix string, discount int, expiresAt *time.Time) (*model.Coupon, error)
	Validate(code string) (*model.Coupon, error)
	Deactivate(id string) error
	Delete(id string) error
	DeactivateExpired() (int, error)
}

type couponService struct {
	couponRepo repository.CouponRepository
}

func NewCouponService(couponRepo repository.CouponRepository) CouponService {
	return &couponService{couponRepo: couponRepo}
}

func (s *couponService) List() ([]model.Coupon, error) {
	return s.couponRepo.List()
}

func (s *couponService) GetByID(id string) (*model.Coupon, error) {
	coupon, err := s.couponRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if coupon == nil {
		return nil, ErrCouponNotFound
	}
	return coupon, nil
}

func (s *couponService) Create(prefix string, discount int, expiresAt *time.Time) (*model.Coupon, error) {
	return s.couponRepo.Add(model.Coupon{
		Code:      util.GenerateCouponCode(prefix, couponCodeLength),
		Discount:  discount,
		ExpiresAt: expiresAt,
		Active:    true,
	})
}

// Validate checks that a code exists, is active and has not expired.
func (s *couponService) Validate(code string) (*model.Coupon, error) {
	coupon, err := s.couponRepo.FindByCode(code)
	if err != nil {
		return nil, err
	}
	if coupon == nil {
		return nil, ErrCouponNotFound
	}
	if !coupon.Active {
		return nil, ErrCouponInactive
	}
	if coupon.Expired(time.Now()) {
		return nil, ErrCouponExpired
	}
	return coupon, nil
}

func (s *couponService) Deactivate(id string) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}
	return s.couponRepo.Update(id, func(c *model.Coupon) {
		c.Active = false
	})
}

func (s *couponService) Delete(id string) error {
	return s.couponRepo.Remove(id)
}

// DeactivateExpired flips expired coupons inactive. The scheduler runs this
// daily; it is also safe to call on demand.
func (s *couponService) DeactivateExpired() (int, error) {
	count, err := s.couponRepo.DeactivateExpired(time.Now())
	if err != nil {
		return 0, err
	}
	if count > 0 {
		logger.Info("Deactivated expired coupons", map[string]interface{}{
			"count": count,
		})
	}
	return count, nil
}
