//go:build darwin

package vault

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"

	"github.com/keybase/go-keychain"

	"github.com/marcoviana/awsvault/internal/config"
)

// LoadKey resolves the master encryption secret, in priority order:
// an explicit value (flag), the AWSVAULT_KEY environment variable,
// then the system keychain. If the keychain holds no entry yet, a new
// random key is generated and stored there. Losing the keychain entry
// (and any copy of the secret) makes the store permanently
// undecryptable; accounts must then be re-added.
func LoadKey(cfg config.Config, explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if env := os.Getenv("AWSVAULT_KEY"); env != "" {
		return env, nil
	}
	if secret, err := queryKeychain(cfg); err == nil && secret != "" {
		return secret, nil
	}
	return generateKey(cfg)
}

func generateKey(cfg config.Config) (string, error) {
	raw := make([]byte, keySize)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	secret := hex.EncodeToString(raw)
	if err := StoreKey(cfg, secret); err != nil {
		return "", err
	}
	return secret, nil
}

// StoreKey writes the secret into the system keychain, replacing any
// existing entry.
func StoreKey(cfg config.Config, secret string) error {
	item := keychain.NewItem()
	item.SetSecClass(keychain.SecClassGenericPassword)
	item.SetService(cfg.Keychain.Service)
	item.SetAccount(cfg.Keychain.Account)
	item.SetLabel("awsvault encryption key")
	item.SetData([]byte(secret))
	item.SetSynchronizable(keychain.SynchronizableNo)
	item.SetAccessible(keychain.AccessibleWhenUnlocked)

	keychain.DeleteItem(item)

	if err := keychain.AddItem(item); err != nil {
		return fmt.Errorf("failed to save key to keychain: %w", err)
	}
	return nil
}

func queryKeychain(cfg config.Config) (string, error) {
	query := keychain.NewItem()
	query.SetSecClass(keychain.SecClassGenericPassword)
	query.SetService(cfg.Keychain.Service)
	query.SetAccount(cfg.Keychain.Account)
	query.SetMatchLimit(keychain.MatchLimitOne)
	query.SetReturnData(true)

	results, err := keychain.QueryItem(query)
	if err != nil {
		return "", err
	}
	if len(results) != 1 {
		return "", fmt.Errorf("key not found in keychain")
	}
	return string(results[0].Data), nil
}
