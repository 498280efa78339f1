package model

import "time"

// SocialLinks are the optional outbound links shown on a public campaign page.
type SocialLinks struct {
	Website   string `json:"website,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
	Instagram string `json:"instagram,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
}

// Campaign is a stamp-card program run by a business. OwnerID duplicates the
// owning business's owner; older records carried it before BusinessID existed
// and callers still read it.
type Campaign struct {
	ID             string       `json:"id"`
	BusinessID     string       `json:"business_id,omitempty"`
	Name           string       `json:"name"`
	Slug           string       `json:"slug"`
	Description    string       `json:"description,omitempty"`
	StampsRequired int          `json:"stamps_required"`
	Active         bool         `json:"active"`
	OwnerID        string       `json:"owner_id,omitempty"`
	ContactEmail   string       `json:"contact_email,omitempty"`
	ContactPhone   string       `json:"contact_phone,omitempty"`
	SocialLinks    *SocialLinks `json:"social_links,omitempty"`
	CreatedAt      time.Time    `json:"created_at"`
}
