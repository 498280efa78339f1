package model

import "time"

// Coupon is a standalone discount code. Discount is a percentage in [0,100];
// the range is expected but not validated, matching the rest of the layer.
type Coupon struct {
	ID        string     `json:"id"`
	Code      string     `json:"code"`
	Discount  int        `json:"discount"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	Active    bool       `json:"active"`
	CreatedAt time.Time  `json:"created_at"`
}

// Expired reports whether the coupon's expiry has passed.
func (c *Coupon) Expired(now time.Time) bool {
	return c.ExpiresAt != nil && c.ExpiresAt.Before(now)
}
