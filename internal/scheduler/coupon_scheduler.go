package scheduler

import (
	"github.com/robfig/cron/v3"

	"github.com/stampdeck/stampdeck-backend/internal/app/service"
	"github.com/stampdeck/stampdeck-backend/pkg/logger"
)

// CouponScheduler deactivates expired coupons on a daily schedule so the
// validate endpoint never has to race against wall-clock expiry alone.
type CouponScheduler struct {
	cron          *cron.Cron
	couponService service.CouponService
}

func NewCouponScheduler(couponService service.CouponService) *CouponScheduler {
	return &CouponScheduler{
		cron:          cron.New(),
		couponService: couponService,
	}
}

// Start registers the daily sweep. Runs at 00:10 so coupons expiring at
// midnight are swept shortly after.
func (s *CouponScheduler) Start() error {
	_, err := s.cron.AddFunc("10 0 * * *", func() {
		logger.Info("Starting scheduled coupon expiry sweep", nil)

		count, err := s.couponService.DeactivateExpired()
		if err != nil {
			logger.Error("Failed to deactivate expired coupons", err)
			return
		}

		logger.Info("Coupon expiry sweep completed", map[string]interface{}{
			"deactivated": count,
		})
	})

	if err != nil {
		logger.Error("Failed to add cron job for coupon expiry sweep", err)
		return err
	}

	s.cron.Start()
	logger.Info("Coupon scheduler started successfully (daily at 00:10)", nil)

	return nil
}

func (s *CouponScheduler) Stop() {
	logger.Info("Stopping coupon scheduler...", nil)
	s.cron.Stop()
	logger.Info("Coupon scheduler stopped", nil)
}
