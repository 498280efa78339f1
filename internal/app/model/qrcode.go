package model

import (
	"strings"
	"time"
)

// StampPayloadPrefix is the payload prefix of a stamp-granting QR code.
// Full payload format: "stamp:campaign:<slug>".
const StampPayloadPrefix = "stamp:campaign:"

// QRCodeData is a generated QR code. The image itself is produced client-side;
// the backend only stores the payload and the resulting data URL.
type QRCodeData struct {
	ID         string    `json:"id"`
	CampaignID string    `json:"campaign_id,omitempty"`
	Code       string    `json:"code"`
	DataURL    string    `json:"data_url"`
	Purpose    string    `json:"purpose,omitempty"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"created_at"`
}

// StampPayload builds the scan payload for a campaign slug.
func StampPayload(campaignSlug string) string {
	return StampPayloadPrefix + campaignSlug
}

// ParseStampPayload extracts the campaign slug from a scan payload.
func ParseStampPayload(payload string) (slug string, ok bool) {
	if !strings.HasPrefix(payload, StampPayloadPrefix) {
		return "", false
	}
	slug = strings.TrimPrefix(payload, StampPayloadPrefix)
	return slug, slug != ""
}
