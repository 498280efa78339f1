package repository

import (
	"encoding/json"

	"github.com/stampdeck/stampdeck-backend/internal/kv"
	"github.com/stampdeck/stampdeck-backend/pkg/logger"
)

// Canonical storage keys. One sequence-valued entry per collection, one
// map-valued entry for tenant settings, one boolean entry for the seed flag.
const (
	KeyBusinesses        = "businesses"
	KeyCampaigns         = "campaigns"
	KeyRewards           = "rewards"
	KeyCoupons           = "coupons"
	KeyQRCodes           = "qrcodes"
	KeyLoyaltyCards      = "loyalty_cards"
	KeyRedemptions       = "redemptions"
	KeyReferrals         = "referrals"
	KeyCustomerCampaigns = "customer_campaigns"
	KeyTenantSettings    = "tenant_settings"
	KeyUsers             = "auth_users"
	KeyInitialized       = "app_initialized"
)

// LegacyKeyCampaigns held campaign data in an earlier key layout. Reads fall
// back to it once during migration; see db.Migrate.
const LegacyKeyCampaigns = "db_campaigns"

// LegacyKeys are superseded keys cleaned up on startup once the canonical
// keys hold data.
var LegacyKeys = []string{
	LegacyKeyCampaigns,
	"db_rewards",
	"db_coupons",
	"db_loyalty_cards",
	"db_redemptions",
	"db_referrals",
	"db_customer_campaigns",
	"db_qrcodes",
}

// readCollection loads the sequence stored under key. A missing key yields an
// empty sequence. A corrupt value also yields an empty sequence: treating the
// collection as empty is preferred over a hard failure, but the condition is
// logged rather than silently swallowed. Storage failures propagate.
func readCollection[T any](store kv.Store, key string) ([]T, error) {
	raw, ok, err := store.Get(key)
	if err != nil {
		logger.Error("Failed to read collection from store", err, map[string]interface{}{
			"key": key,
		})
		return nil, err
	}
	if !ok || raw == "" {
		return []T{}, nil
	}

	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		logger.Warn("Discarding corrupt collection payload", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
		return []T{}, nil
	}
	return items, nil
}

// writeCollection serializes and stores the full sequence under key,
// unconditionally overwriting prior contents.
func writeCollection[T any](store kv.Store, key string, items []T) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}
	if err := store.Set(key, string(raw)); err != nil {
		logger.Error("Failed to write collection to store", err, map[string]interface{}{
			"key":   key,
			"count": len(items),
		})
		return err
	}
	return nil
}

// updateCollection is the shared full read-modify-write cycle behind every
// mutation: read the whole sequence, map mutate over the matching id, write
// the whole sequence back. Absent ids are a silent no-op.
func updateCollection[T any](store kv.Store, key string, match func(*T) bool, mutate func(*T)) error {
	items, err := readCollection[T](store, key)
	if err != nil {
		return err
	}
	touched := false
	for i := range items {
		if match(&items[i]) {
			mutate(&items[i])
			touched = true
		}
	}
	if !touched {
		return nil
	}
	return writeCollection(store, key, items)
}

// removeFromCollection rewrites the sequence excluding matching records.
// Absent ids are a silent no-op (the rewrite changes nothing).
func removeFromCollection[T any](store kv.Store, key string, match func(*T) bool) error {
	items, err := readCollection[T](store, key)
	if err != nil {
		return err
	}
	kept := items[:0]
	for i := range items {
		if !match(&items[i]) {
			kept = append(kept, items[i])
		}
	}
	return writeCollection(store, key, kept)
}

// prependToCollection persists a new record at the head of the sequence so
// list order is newest-first by construction.
func prependToCollection[T any](store kv.Store, key string, item T) error {
	items, err := readCollection[T](store, key)
	if err != nil {
		return err
	}
	return writeCollection(store, key, append([]T{item}, items...))
}
