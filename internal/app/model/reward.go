package model

import "time"

// Reward is something a customer can redeem stamps for.
type Reward struct {
	ID             string    `json:"id"`
	CampaignID     string    `json:"campaign_id,omitempty"`
	Name           string    `json:"name"`
	Description    string    `json:"description,omitempty"`
	StampsRequired int       `json:"stamps_required"`
	Active         bool      `json:"active"`
	CreatedAt      time.Time `json:"created_at"`
}
