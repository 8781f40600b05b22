package services

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/99designs/keyring"
)

const serviceName = "brandsmith"

// KeyringService keeps provider API keys in the OS keyring.
type KeyringService struct {
	ring keyring.Keyring
}

// NewKeyringService opens the platform keyring. On machines without a
// desktop keyring it falls back to an encrypted file protected by
// BRANDSMITH_KEYRING_PASSWORD.
func NewKeyringService() (*KeyringService, error) {
	dir := ""
	if configDir, err := os.UserConfigDir(); err == nil {
		dir = filepath.Join(configDir, serviceName, "keys")
	}
	ring, err := keyring.Open(keyring.Config{
		ServiceName:      serviceName,
		FileDir:          dir,
		FilePasswordFunc: keyring.FixedStringPrompt(os.Getenv("BRANDSMITH_KEYRING_PASSWORD")),
	})
	if err != nil {
		return nil, fmt.Errorf("open keyring: %w", err)
	}
	return &KeyringService{ring: ring}, nil
}

// NewKeyringServiceWith wraps an already opened keyring.
func NewKeyringServiceWith(ring keyring.Keyring) *KeyringService {
	return &KeyringService{ring: ring}
}

func (s *KeyringService) StoreApiKey(provider string, apiKey []byte) error {
	if len(apiKey) == 0 {
		return errors.New("API key is empty")
	}
	if provider == "" {
		return errors.New("provider is required")
	}

	return s.ring.Set(keyring.Item{
		Key:         provider,
		Data:        apiKey,
		Label:       provider + " API key",
		Description: "API key for " + provider + " used by Brandsmith",
	})
}

// GetApiKey returns the stored key, or "" when none is stored.
func (s *KeyringService) GetApiKey(provider string) (string, error) {
	if provider == "" {
		return "", errors.New("provider is required")
	}
	item, err := s.ring.Get(provider)
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return string(item.Data), nil
}

func (s *KeyringService) DeleteApiKey(provider string) error {
	if provider == "" {
		return errors.New("provider is required")
	}
	return s.ring.Remove(provider)
}

func (s *KeyringService) ListApiKeys() ([]map[string]string, error) {
	keys, err := s.ring.Keys()
	if err != nil {
		return nil, err
	}
	sort.Strings(keys)

	results := make([]map[string]string, 0, len(keys))
	for _, provider := range keys {
		results = append(results, map[string]string{
			"provider":    provider,
			"label":       provider + " API key",
			"description": "API key for " + provider + " used by Brandsmith",
		})
	}
	return results, nil
}
