package model

import "time"

// PaletteColors is a named three-color scheme applied to a tenant's cards.
type PaletteColors struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
	Accent    string `json:"accent"`
}

// TenantSettings is the per-owner branding record. Exactly one record exists
// per owner; its id equals the owner id. Unlike the list collections it
// supports partial upserts through TenantSettingsPatch.
type TenantSettings struct {
	ID                   string         `json:"id"`
	OwnerUserID          string         `json:"owner_user_id"`
	TemplateID           string         `json:"template_id"`
	Layout               string         `json:"layout"`
	GridSize             int            `json:"grid_size"`
	CornerRadius         int            `json:"corner_radius"`
	StampShape           string         `json:"stamp_shape"`
	PaletteName          string         `json:"palette_name,omitempty"`
	Colors               *PaletteColors `json:"colors,omitempty"`
	LogoDataURL          string         `json:"logo_data_url,omitempty"`
	BackgroundDataURL    string         `json:"background_data_url,omitempty"`
	AnimationStyle       string         `json:"animation_style"`
	TemplateStyle        string         `json:"template_style"`
	StampSound           string         `json:"stamp_sound"`
	CelebrationAnimation string         `json:"celebration_animation"`
	LinkedCampaignID     string         `json:"linked_campaign_id,omitempty"`
	UpdatedAt            time.Time      `json:"updated_at"`
}

// TenantSettingsPatch carries the fields of a partial branding update.
// Nil fields are left untouched by the merge.
type TenantSettingsPatch struct {
	TemplateID           *string        `json:"template_id,omitempty"`
	Layout               *string        `json:"layout,omitempty"`
	GridSize             *int           `json:"grid_size,omitempty"`
	CornerRadius         *int           `json:"corner_radius,omitempty"`
	StampShape           *string        `json:"stamp_shape,omitempty"`
	PaletteName          *string        `json:"palette_name,omitempty"`
	Colors               *PaletteColors `json:"colors,omitempty"`
	LogoDataURL          *string        `json:"logo_data_url,omitempty"`
	BackgroundDataURL    *string        `json:"background_data_url,omitempty"`
	AnimationStyle       *string        `json:"animation_style,omitempty"`
	TemplateStyle        *string        `json:"template_style,omitempty"`
	StampSound           *string        `json:"stamp_sound,omitempty"`
	CelebrationAnimation *string        `json:"celebration_animation,omitempty"`
	LinkedCampaignID     *string        `json:"linked_campaign_id,omitempty"`
}

// DefaultTenantSettings returns a fully-populated default record for an
// owner. Callers never need to null-check individual branding fields.
func DefaultTenantSettings(ownerUserID string) TenantSettings {
	return TenantSettings{
		ID:                   ownerUserID,
		OwnerUserID:          ownerUserID,
		TemplateID:           "grid",
		Layout:               "horizontal",
		GridSize:             10,
		CornerRadius:         12,
		StampShape:           "circle",
		AnimationStyle:       "fade",
		TemplateStyle:        "modern",
		StampSound:           "pop",
		CelebrationAnimation: "confetti",
		UpdatedAt:            time.Now(),
	}
}

// Apply merges the patch onto s, field by field.
func (p *TenantSettingsPatch) Apply(s *TenantSettings) {
	if p.TemplateID != nil {
		s.TemplateID = *p.TemplateID
	}
	if p.Layout != nil {
		s.Layout = *p.Layout
	}
	if p.GridSize != nil {
		s.GridSize = *p.GridSize
	}
	if p.CornerRadius != nil {
		s.CornerRadius = *p.CornerRadius
	}
	if p.StampShape != nil {
		s.StampShape = *p.StampShape
	}
	if p.PaletteName != nil {
		s.PaletteName = *p.PaletteName
	}
	if p.Colors != nil {
		s.Colors = p.Colors
	}
	if p.LogoDataURL != nil {
		s.LogoDataURL = *p.LogoDataURL
	}
	if p.BackgroundDataURL != nil {
		s.BackgroundDataURL = *p.BackgroundDataURL
	}
	if p.AnimationStyle != nil {
		s.AnimationStyle = *p.AnimationStyle
	}
	if p.TemplateStyle != nil {
		s.TemplateStyle = *p.TemplateStyle
	}
	if p.StampSound != nil {
		s.StampSound = *p.StampSound
	}
	if p.CelebrationAnimation != nil {
		s.CelebrationAnimation = *p.CelebrationAnimation
	}
	if p.LinkedCampaignID != nil {
		s.LinkedCampaignID = *p.LinkedCampaignID
	}
}
