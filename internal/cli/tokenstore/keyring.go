package tokenstore

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

const keyringService = "shopd-cli"

// Keyring is the durable backend. Credentials are stored in the OS
// keychain/credential manager and survive restarts.
type Keyring struct {
	service string
}

// NewKeyring creates a keyring backend under the shopd-cli service name.
func NewKeyring() *Keyring {
	return &Keyring{service: keyringService}
}

func (k *Keyring) Get(key string) (string, error) {
	value, err := keyring.Get(k.service, key)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read %q from keyring: %w", key, err)
	}
	return value, nil
}

func (k *Keyring) Set(key, value string) error {
	if err := keyring.Set(k.service, key, value); err != nil {
		return fmt.Errorf("failed to save %q to keyring: %w", key, err)
	}
	return nil
}

func (k *Keyring) Delete(key string) error {
	if err := keyring.Delete(k.service, key); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil // already deleted
		}
		return fmt.Errorf("failed to delete %q from keyring: %w", key, err)
	}
	return nil
}
