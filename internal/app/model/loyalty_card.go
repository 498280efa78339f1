package model

import "time"

// LoyaltyCard tracks a customer's stamps for one campaign. At most one card
// should exist per (customer, campaign) pair; the repository enforces that by
// lookup-before-create, not by a storage constraint.
type LoyaltyCard struct {
	ID         string    `json:"id"`
	CustomerID string    `json:"customer_id"`
	CampaignID string    `json:"campaign_id"`
	Stamps     int       `json:"stamps"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Redemption is an append-only record of a reward being claimed.
type Redemption struct {
	ID       string    `json:"id"`
	UserID   string    `json:"user_id"`
	RewardID string    `json:"reward_id"`
	Date     time.Time `json:"date"`
}
