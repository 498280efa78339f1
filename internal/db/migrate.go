package db

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/stampdeck/stampdeck-backend/internal/app/model"
	"github.com/stampdeck/stampdeck-backend/internal/app/repository"
	"github.com/stampdeck/stampdeck-backend/internal/kv"
	"github.com/stampdeck/stampdeck-backend/pkg/logger"
	"github.com/stampdeck/stampdeck-backend/pkg/util"
)

// Migrate runs the startup data migration: a one-time read-through of the
// superseded campaign key, then legacy-key cleanup. Safe to run on every
// start.
func Migrate() error {
	return MigrateStore(store)
}

// MigrateStore is Migrate against an explicit store. Used by tests.
func MigrateStore(s kv.Store) error {
	logger.Info("Running store migrations...")

	if err := normalizeLegacyCampaigns(s); err != nil {
		logger.Error("Failed to normalize legacy campaigns", err)
		return err
	}
	if err := cleanupLegacyKeys(s); err != nil {
		logger.Error("Failed to clean up legacy keys", err)
		return err
	}

	logger.Info("Store migrations completed successfully")
	return nil
}

// normalizeLegacyCampaigns upgrades campaign records found under the
// superseded key into the canonical key, but only when the canonical key is
// empty: once primary data exists, superseded data is never resurrected.
// Old-shape records may be missing fields, so each one is defaulted into the
// current shape before the write-back.
func normalizeLegacyCampaigns(s kv.Store) error {
	campaignRepo := repository.NewCampaignRepository(s)
	current, err := campaignRepo.List()
	if err != nil {
		return err
	}
	if len(current) > 0 {
		return nil
	}

	raw, ok, err := s.Get(repository.LegacyKeyCampaigns)
	if err != nil {
		return err
	}
	if !ok || raw == "" {
		return nil
	}

	var legacy []map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &legacy); err != nil {
		logger.Warn("Legacy campaign payload is corrupt, skipping fallback read", map[string]interface{}{
			"error": err.Error(),
		})
		return nil
	}
	if len(legacy) == 0 {
		return nil
	}

	logger.Info("Found campaigns under legacy key, normalizing", map[string]interface{}{
		"count": len(legacy),
	})

	normalized := make([]model.Campaign, 0, len(legacy))
	for _, item := range legacy {
		c := model.Campaign{
			ID:             stringField(item, "id"),
			BusinessID:     stringField(item, "business_id"),
			Name:           stringField(item, "name"),
			Slug:           stringField(item, "slug"),
			Description:    stringField(item, "description"),
			StampsRequired: intField(item, "stamps_required", 10),
			Active:         boolField(item, "active", true),
			OwnerID:        stringField(item, "owner_id"),
			ContactEmail:   stringField(item, "contact_email"),
			ContactPhone:   stringField(item, "contact_phone"),
			CreatedAt:      timeField(item, "created_at"),
		}
		if c.ID == "" {
			c.ID = uuid.New().String()
		}
		if c.Name == "" {
			c.Name = "Untitled Campaign"
		}
		if c.Slug == "" {
			c.Slug = model.GenerateSlug(c.Name)
		}
		normalized = append(normalized, c)
	}

	data, err := json.Marshal(normalized)
	if err != nil {
		return err
	}
	if err := s.Set(repository.KeyCampaigns, string(data)); err != nil {
		return err
	}

	logger.Info("Normalized legacy campaigns into canonical key", map[string]interface{}{
		"count": len(normalized),
	})
	return nil
}

// cleanupLegacyKeys deletes superseded keys so stale duplicates can never be
// read again. Runs after the fallback pass, so anything worth keeping has
// already been carried over.
func cleanupLegacyKeys(s kv.Store) error {
	for _, key := range repository.LegacyKeys {
		_, ok, err := s.Get(key)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		if err := s.Delete(key); err != nil {
			return err
		}
		logger.Info("Removed legacy storage key", map[string]interface{}{
			"key": key,
		})
	}
	return nil
}

// Seed populates the demo dataset exactly once, gated by a persisted flag.
// Emptying the collections later does not retrigger seeding; that requires
// clearing the flag explicitly.
func Seed() error {
	return SeedStore(store)
}

// SeedStore is Seed against an explicit store. Used by tests.
func SeedStore(s kv.Store) error {
	raw, ok, err := s.Get(repository.KeyInitialized)
	if err != nil {
		return err
	}
	if ok && raw == "true" {
		logger.Debug("Store already initialized, skipping seed")
		return nil
	}

	if err := seedDemoUsers(s); err != nil {
		return err
	}
	if err := seedDemoTenant(s); err != nil {
		return err
	}

	if err := s.Set(repository.KeyInitialized, "true"); err != nil {
		return err
	}
	logger.Info("Store initialization complete")
	return nil
}

const demoOwnerID = "demo-business-admin"

func seedDemoUsers(s kv.Store) error {
	userRepo := repository.NewUserRepository(s)
	users, err := userRepo.List()
	if err != nil {
		return err
	}
	if len(users) > 0 {
		return nil
	}

	logger.Info("Seeding demo users...")

	hash, err := util.HashPassword("demo123")
	if err != nil {
		return err
	}

	demoUsers := []model.User{
		{ID: "demo-super-admin", Email: "super@demo.com", PasswordHash: hash, Name: "Super Admin Demo", Role: model.RoleSuperAdmin},
		{ID: demoOwnerID, Email: "business@demo.com", PasswordHash: hash, Name: "Business Admin Demo", Role: model.RoleBusinessAdmin},
		{ID: "demo-customer", Email: "customer@demo.com", PasswordHash: hash, Name: "Customer Demo", Role: model.RoleCustomer},
	}
	for _, u := range demoUsers {
		if _, err := userRepo.Create(u); err != nil {
			return err
		}
	}
	return nil
}

func seedDemoTenant(s kv.Store) error {
	businessRepo := repository.NewBusinessRepository(s)
	campaignRepo := repository.NewCampaignRepository(s)

	businesses, err := businessRepo.List()
	if err != nil {
		return err
	}
	if len(businesses) > 0 {
		return nil
	}

	logger.Info("First-time initialization: seeding demo business")

	demoBusiness, err := businessRepo.Add(model.Business{
		Name:        "Demo Coffee Shop",
		Description: "Your favorite local coffee spot",
		Logo:        "/placeholder.svg",
		Template:    "modern",
		Colors: model.BrandColors{
			Primary:    "#8B4513",
			Background: "#FFF8F0",
		},
		OwnerID: demoOwnerID,
	})
	if err != nil {
		return err
	}

	campaigns, err := campaignRepo.List()
	if err != nil {
		return err
	}
	if len(campaigns) > 0 {
		return nil
	}

	_, err = campaignRepo.Add(model.Campaign{
		BusinessID:     demoBusiness.ID,
		Name:           "Coffee Lovers",
		Description:    "Buy 9 get 1 free",
		StampsRequired: 10,
		Active:         true,
		OwnerID:        demoOwnerID,
		ContactEmail:   "coffee@demo.com",
		SocialLinks: &model.SocialLinks{
			Website:   "https://example.com",
			Instagram: "https://instagram.com/coffeelovers",
		},
	})
	return err
}

func stringField(m map[string]interface{}, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

func intField(m map[string]interface{}, key string, fallback int) int {
	if v, ok := m[key].(float64); ok {
		return int(v)
	}
	return fallback
}

func boolField(m map[string]interface{}, key string, fallback bool) bool {
	if v, ok := m[key].(bool); ok {
		return v
	}
	return fallback
}

// timeField carries a legacy timestamp over when it parses; records without
// one get the migration time rather than a zero time.
func timeField(m map[string]interface{}, key string) time.Time {
	if v, ok := m[key].(string); ok {
		if ts, err := time.Parse(time.RFC3339, v); err == nil {
			return ts
		}
	}
	return time.Now()
}
