package repository

import (
	"encoding/json"
	"time"

	"github.com/stampdeck/stampdeck-backend/internal/app/model"
	"github.com/stampdeck/stampdeck-backend/internal/kv"
	"github.com/stampdeck/stampdeck-backend/pkg/logger"
)

// BrandingRepository stores one tenant-settings record per owner, as a
// map-valued entry keyed by owner id rather than a sequence. It is the only
// accessor in the layer with partial-field upsert semantics.
type BrandingRepository interface {
	GetForOwner(ownerUserID string) (model.TenantSettings, error)
	SetForOwner(ownerUserID string, patch model.TenantSettingsPatch) (model.TenantSettings, error)
}

type brandingRepository struct {
	store kv.Store
}

func NewBrandingRepository(store kv.Store) BrandingRepository {
	return &brandingRepository{store: store}
}

func (r *brandingRepository) readAll() (map[string]model.TenantSettings, error) {
	raw, ok, err := r.store.Get(KeyTenantSettings)
	if err != nil {
		logger.Error("Failed to read tenant settings from store", err, nil)
		return nil, err
	}
	if !ok || raw == "" {
		return map[string]model.TenantSettings{}, nil
	}

	var all map[string]model.TenantSettings
	if err := json.Unmarshal([]byte(raw), &all); err != nil {
		logger.Warn("Discarding corrupt tenant settings payload", map[string]interface{}{
			"error": err.Error(),
		})
		return map[string]model.TenantSettings{}, nil
	}
	return all, nil
}

func (r *brandingRepository) writeAll(all map[string]model.TenantSettings) error {
	raw, err := json.Marshal(all)
	if err != nil {
		return err
	}
	return r.store.Set(KeyTenantSettings, string(raw))
}

// GetForOwner returns the stored settings or a fully-populated default
// record. Callers never need to null-check individual branding fields.
func (r *brandingRepository) GetForOwner(ownerUserID string) (model.TenantSettings, error) {
	all, err := r.readAll()
	if err != nil {
		return model.TenantSettings{}, err
	}
	if settings, ok := all[ownerUserID]; ok {
		return settings, nil
	}
	return model.DefaultTenantSettings(ownerUserID), nil
}

// SetForOwner merges the patch onto the stored record (or onto defaults if
// none exists), stamps updated_at, persists and returns the merged result.
func (r *brandingRepository) SetForOwner(ownerUserID string, patch model.TenantSettingsPatch) (model.TenantSettings, error) {
	all, err := r.readAll()
	if err != nil {
		return model.TenantSettings{}, err
	}

	settings, ok := all[ownerUserID]
	if !ok {
		settings = model.DefaultTenantSettings(ownerUserID)
	}
	patch.Apply(&settings)
	settings.UpdatedAt = time.Now()

	all[ownerUserID] = settings
	if err := r.writeAll(all); err != nil {
		return model.TenantSettings{}, err
	}

	logger.Debug("Tenant branding updated", map[string]interface{}{
		"owner_user_id": ownerUserID,
		"template_id":   settings.TemplateID,
	})
	return settings, nil
}
