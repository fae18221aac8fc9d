// Package settings persists per-user list preferences as JSON blobs behind
// the storage KV port. An absent key reads back as zero-value preferences so
// callers never branch on first use.
package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"docuflow/internal/storage"
	"docuflow/pkg/model"
)

// Preferences are the saved list-view settings restored on sign-in.
type Preferences struct {
	Search      string `json:"search,omitempty"`
	SearchField string `json:"searchField,omitempty"`
	StatusFacet string `json:"statusFacet,omitempty"`
	TypeFacet   string `json:"typeFacet,omitempty"`
	DateFrom    int64  `json:"dateFrom,omitempty"`
	DateTo      int64  `json:"dateTo,omitempty"`
	PageSize    int    `json:"pageSize,omitempty"`
	Theme       string `json:"theme,omitempty"`
}

// Store reads and writes preferences per user.
type Store struct {
	kv storage.KVStore
}

// NewStore creates a store over the given KV port.
func NewStore(kv storage.KVStore) *Store {
	return &Store{kv: kv}
}

// Get returns the user's preferences, or the zero value when none are saved.
func (s *Store) Get(ctx context.Context, userKey string) (Preferences, error) {
	var prefs Preferences

	raw, err := s.kv.Get(ctx, userKey)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return prefs, nil
		}
		return prefs, fmt.Errorf("load preferences for %s: %w", userKey, err)
	}

	if err := json.Unmarshal(raw, &prefs); err != nil {
		return Preferences{}, fmt.Errorf("decode preferences for %s: %w", userKey, err)
	}
	return prefs, nil
}

// Put saves the user's preferences.
func (s *Store) Put(ctx context.Context, userKey string, prefs Preferences) error {
	raw, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("encode preferences for %s: %w", userKey, err)
	}
	if err := s.kv.Put(ctx, userKey, raw); err != nil {
		return fmt.Errorf("save preferences for %s: %w", userKey, err)
	}
	return nil
}

// Reset removes the user's saved preferences. Resetting a user with none
// saved is a no-op.
func (s *Store) Reset(ctx context.Context, userKey string) error {
	err := s.kv.Delete(ctx, userKey)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		return fmt.Errorf("reset preferences for %s: %w", userKey, err)
	}
	return nil
}
