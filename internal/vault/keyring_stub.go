//go:build !darwin

package vault

import (
	"fmt"
	"os"

	"github.com/marcoviana/awsvault/internal/config"
)

// LoadKey stub for non-macOS: explicit value or AWSVAULT_KEY only.
func LoadKey(cfg config.Config, explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if env := os.Getenv("AWSVAULT_KEY"); env != "" {
		return env, nil
	}
	return "", fmt.Errorf("no encryption key found; keychain is only supported on macOS, set AWSVAULT_KEY")
}

// StoreKey stub for non-macOS.
func StoreKey(cfg config.Config, secret string) error {
	return fmt.Errorf("keychain integration is only supported on macOS")
}
