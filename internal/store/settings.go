package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/Rrens/docchat/internal/domain"
	"github.com/Rrens/docchat/internal/security"
)

// SecretSealer encrypts the API key before it reaches storage
type SecretSealer interface {
	SealString(plaintext string) (string, error)
	OpenString(value string) (string, error)
}

// persistedSettings mirrors domain.AppSettings with every field optional,
// so records written by older versions can be told apart.
type persistedSettings struct {
	Provider  *string `json:"provider"`
	APIKey    *string `json:"apiKey"`
	ModelName *string `json:"modelName"`
	BaseURL   *string `json:"baseUrl"`
}

// SettingsStore holds the process-wide AppSettings and persists every change
type SettingsStore struct {
	kv     domain.KeyValueStore
	key    string
	sealer SecretSealer

	mu      sync.RWMutex
	current domain.AppSettings
}

// NewSettingsStore creates a settings store over kv. sealer may be nil,
// in which case the API key is stored as plain text.
func NewSettingsStore(kv domain.KeyValueStore, key string, sealer SecretSealer) *SettingsStore {
	return &SettingsStore{
		kv:      kv,
		key:     key,
		sealer:  sealer,
		current: domain.DefaultSettings(),
	}
}

// Load reads the persisted settings. Every failure, including a missing
// record, is reported as domain.ErrPersistenceLoad; a record without a
// provider is migrated by stamping the default provider over defaults.
func (s *SettingsStore) Load(ctx context.Context) (domain.AppSettings, error) {
	data, err := s.kv.Get(ctx, s.key)
	if err != nil {
		return domain.AppSettings{}, fmt.Errorf("%w: %w", domain.ErrPersistenceLoad, err)
	}

	var p persistedSettings
	if err := json.Unmarshal(data, &p); err != nil {
		return domain.AppSettings{}, fmt.Errorf("%w: failed to parse settings: %w", domain.ErrPersistenceLoad, err)
	}

	var settings domain.AppSettings
	if p.Provider == nil || *p.Provider == "" {
		settings = domain.DefaultSettings()
		overlay(&settings.APIKey, p.APIKey)
		overlay(&settings.ModelName, p.ModelName)
		overlay(&settings.BaseURL, p.BaseURL)
		settings.Provider = domain.ProviderGemini
	} else {
		provider, err := domain.ParseProvider(*p.Provider)
		if err != nil {
			return domain.AppSettings{}, fmt.Errorf("%w: %w", domain.ErrPersistenceLoad, err)
		}
		settings.Provider = provider
		overlay(&settings.APIKey, p.APIKey)
		overlay(&settings.ModelName, p.ModelName)
		overlay(&settings.BaseURL, p.BaseURL)
	}

	if settings.APIKey, err = s.openKey(settings.APIKey); err != nil {
		return domain.AppSettings{}, fmt.Errorf("%w: %w", domain.ErrPersistenceLoad, err)
	}

	return settings, nil
}

// LoadOrDefault loads the persisted settings and makes them current.
// Load errors never propagate: defaults are used instead.
func (s *SettingsStore) LoadOrDefault(ctx context.Context) domain.AppSettings {
	settings, err := s.Load(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			log.Debug().Str("key", s.key).Msg("No persisted settings, using defaults")
		} else {
			log.Warn().Err(err).Str("key", s.key).Msg("Failed to load settings, using defaults")
		}
		settings = domain.DefaultSettings()
	}

	s.mu.Lock()
	s.current = settings
	s.mu.Unlock()

	return settings
}

// Current returns the in-memory settings
func (s *SettingsStore) Current() domain.AppSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Save makes settings current and persists them. Reachability of the
// configured endpoint is not checked.
func (s *SettingsStore) Save(ctx context.Context, settings domain.AppSettings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = settings

	stored := settings
	if s.sealer != nil {
		sealed, err := s.sealer.SealString(settings.APIKey)
		if err != nil {
			return fmt.Errorf("failed to encrypt api key: %w", err)
		}
		stored.APIKey = sealed
	}

	data, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := s.kv.Set(ctx, s.key, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

func (s *SettingsStore) openKey(value string) (string, error) {
	if s.sealer != nil {
		return s.sealer.OpenString(value)
	}
	if security.IsSealed(value) {
		return "", security.ErrSealedWithoutKey
	}
	return value, nil
}

func overlay(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
