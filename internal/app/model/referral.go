package model

import "time"

// Referral is the one referral record each user owns. The code is derived
// from the owner id, not random, so it is stable across store instances.
type Referral struct {
	ID            string    `json:"id"`
	OwnerUserID   string    `json:"owner_user_id"`
	Code          string    `json:"code"`
	ReferredCount int       `json:"referred_count"`
	CreatedAt     time.Time `json:"created_at"`
}

// CustomerCampaign records a customer having joined a campaign.
type CustomerCampaign struct {
	ID         string    `json:"id"`
	CustomerID string    `json:"customer_id"`
	CampaignID string    `json:"campaign_id"`
	DateJoined time.Time `json:"date_joined"`
}
