package tokenstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const (
	configDirName   = "martrack"
	credentialsFile = "credentials.json"
)

// FileStore keeps credential slots in a JSON file under the user's config
// directory. Writes go straight to disk so tokens survive process restarts.
type FileStore struct {
	mu    sync.Mutex
	path  string
	slots map[Slot]string
}

// DefaultPath returns the default credentials file location
// (~/.config/martrack/credentials.json)
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", configDirName, credentialsFile), nil
}

// NewFileStore opens (or lazily creates) the credentials file at path
func NewFileStore(path string) (*FileStore, error) {
	s := &FileStore{
		path:  path,
		slots: make(map[Slot]string),
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}

	if err := json.Unmarshal(data, &s.slots); err != nil {
		return nil, fmt.Errorf("failed to parse credentials file: %w", err)
	}

	return s, nil
}

// Get returns the stored value for a slot, or absent. It has no side effects.
func (s *FileStore) Get(slot Slot) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	value, ok := s.slots[slot]
	return value, ok
}

// Set overwrites a slot and persists immediately
func (s *FileStore) Set(slot Slot, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.slots[slot] = value
	return s.persist()
}

// Clear removes a slot. Clearing an absent slot is not an error.
func (s *FileStore) Clear(slot Slot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.slots[slot]; !ok {
		return nil
	}
	delete(s.slots, slot)
	return s.persist()
}

func (s *FileStore) persist() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(s.slots, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal credentials: %w", err)
	}

	// Tokens are secrets; keep the file owner-only
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write credentials file: %w", err)
	}

	return nil
}
