package service

import (
	"errors"

	"github.com/stampdeck/stampdeck-backend/internal/app/model"
	"github.com/stampdeck/stampdeck-backend/internal/app/repository"
	"github.com/stampdeck/stampdeck-backend/pkg/logger"
)

var (
	ErrUnknownTemplate = errors.New("unknown card template")
	ErrUnknownPalette  = errors.New("unknown color palette")
)

type BrandingService interface {
	GetSettings(ownerUserID string) (model.TenantSettings, error)
	UpdateSettings(ownerUserID string, patch model.TenantSettingsPatch) (model.TenantSettings, error)
	Templates() []model.TemplateDef
	Palettes() []model.Palette
}

type brandingService struct {
	brandingRepo repository.BrandingRepository
}

func NewBrandingService(brandingRepo repository.BrandingRepository) BrandingService {
	return &brandingService{brandingRepo: brandingRepo}
}

func (s *brandingService) GetSettings(ownerUserID string) (model.TenantSettings, error) {
	return s.brandingRepo.GetForOwner(ownerUserID)
}

// UpdateSettings validates catalog references before the merge. Picking a
// known palette also copies its colors onto the record so the public card
// page needs no catalog lookup.
func (s *brandingService) UpdateSettings(ownerUserID string, patch model.TenantSettingsPatch) (model.TenantSettings, error) {
	if patch.TemplateID != nil && !model.KnownTemplate(*patch.TemplateID) {
		logger.Warn("Rejected branding update with unknown template", map[string]interface{}{
			"owner_user_id": ownerUserID,
			"template_id":   *patch.TemplateID,
		})
		return model.TenantSettings{}, ErrUnknownTemplate
	}

	if patch.PaletteName != nil {
		palette, ok := model.PaletteByName(*patch.PaletteName)
		if !ok {
			return model.TenantSettings{}, ErrUnknownPalette
		}
		if patch.Colors == nil {
			colors := palette.Colors
			patch.Colors = &colors
		}
	}

	return s.brandingRepo.SetForOwner(ownerUserID, patch)
}

func (s *brandingService) Templates() []model.TemplateDef {
	return model.TemplateCatalog
}

func (s *brandingService) Palettes() []model.Palette {
	return model.PaletteCatalog
}
