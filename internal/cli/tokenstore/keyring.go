package tokenstore

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

const keyringService = "martrack-cli"

// KeyringStore keeps credential slots in the OS keychain/credential manager
type KeyringStore struct{}

// NewKeyringStore returns a Store backed by the OS keyring
func NewKeyringStore() *KeyringStore {
	return &KeyringStore{}
}

// Get returns the stored value for a slot, or absent
func (s *KeyringStore) Get(slot Slot) (string, bool) {
	value, err := keyring.Get(keyringService, string(slot))
	if err != nil {
		return "", false
	}
	return value, true
}

// Set overwrites a slot
func (s *KeyringStore) Set(slot Slot, value string) error {
	if err := keyring.Set(keyringService, string(slot), value); err != nil {
		return fmt.Errorf("failed to save %s: %w", slot, err)
	}
	return nil
}

// Clear removes a slot. Clearing an absent slot is not an error.
func (s *KeyringStore) Clear(slot Slot) error {
	if err := keyring.Delete(keyringService, string(slot)); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to delete %s: %w", slot, err)
	}
	return nil
}
