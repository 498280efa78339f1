package model

import "time"

// BrandColors are the two colors a business picks for its public card page.
type BrandColors struct {
	Primary    string `json:"primary"`
	Background string `json:"background"`
}

// Business is a tenant: campaigns, branding and customers hang off its owner.
// The slug is derived from the name once at creation and never recomputed on
// rename.
type Business struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Slug        string      `json:"slug"`
	Description string      `json:"description,omitempty"`
	Logo        string      `json:"logo,omitempty"`
	Template    string      `json:"template"`
	Colors      BrandColors `json:"colors"`
	OwnerID     string      `json:"owner_id,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
}
