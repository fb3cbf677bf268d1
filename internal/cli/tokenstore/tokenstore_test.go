package tokenstore

import (
	"os"
	"path/filepath"
	"testing"
)

func newTestFileStore(t *testing.T) *FileStore {
	t.Helper()

	path := filepath.Join(t.TempDir(), "credentials.json")
	s, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("failed to create file store: %v", err)
	}
	return s
}

func TestFileStoreRoundTrip(t *testing.T) {
	s := newTestFileStore(t)

	if _, ok := s.Get(SlotToken); ok {
		t.Error("expected empty store to report token absent")
	}

	if err := s.Set(SlotToken, "abc123"); err != nil {
		t.Fatalf("failed to set token: %v", err)
	}

	value, ok := s.Get(SlotToken)
	if !ok {
		t.Fatal("expected token to be present after Set")
	}
	if value != "abc123" {
		t.Errorf("expected 'abc123', got %q", value)
	}

	if err := s.Clear(SlotToken); err != nil {
		t.Fatalf("failed to clear token: %v", err)
	}
	if _, ok := s.Get(SlotToken); ok {
		t.Error("expected token to be absent after Clear")
	}
}

func TestFileStoreSlotsAreIndependent(t *testing.T) {
	s := newTestFileStore(t)

	if err := s.Set(SlotToken, "user-token"); err != nil {
		t.Fatalf("failed to set user token: %v", err)
	}
	if err := s.Set(SlotAdminToken, "admin-token"); err != nil {
		t.Fatalf("failed to set admin token: %v", err)
	}
	if err := s.Set(SlotTheme, "dark"); err != nil {
		t.Fatalf("failed to set theme: %v", err)
	}

	if err := s.Clear(SlotToken); err != nil {
		t.Fatalf("failed to clear user token: %v", err)
	}

	if _, ok := s.Get(SlotToken); ok {
		t.Error("user token should be gone")
	}
	if value, ok := s.Get(SlotAdminToken); !ok || value != "admin-token" {
		t.Errorf("admin token should be untouched, got %q (present=%v)", value, ok)
	}
	if value, ok := s.Get(SlotTheme); !ok || value != "dark" {
		t.Errorf("theme should be untouched, got %q (present=%v)", value, ok)
	}
}

func TestFileStoreSetOverwrites(t *testing.T) {
	s := newTestFileStore(t)

	if err := s.Set(SlotToken, "first"); err != nil {
		t.Fatalf("failed to set token: %v", err)
	}
	if err := s.Set(SlotToken, "second"); err != nil {
		t.Fatalf("failed to overwrite token: %v", err)
	}

	value, _ := s.Get(SlotToken)
	if value != "second" {
		t.Errorf("expected overwritten value 'second', got %q", value)
	}
}

func TestFileStoreClearAbsentSlot(t *testing.T) {
	s := newTestFileStore(t)

	if err := s.Clear(SlotAdminToken); err != nil {
		t.Errorf("clearing an absent slot should not fail: %v", err)
	}
}

func TestFileStorePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")

	s1, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("failed to create file store: %v", err)
	}
	if err := s1.Set(SlotToken, "persisted"); err != nil {
		t.Fatalf("failed to set token: %v", err)
	}
	if err := s1.Set(SlotLegacyToken, "persisted"); err != nil {
		t.Fatalf("failed to set legacy token: %v", err)
	}

	s2, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("failed to reopen file store: %v", err)
	}

	if value, ok := s2.Get(SlotToken); !ok || value != "persisted" {
		t.Errorf("expected persisted token after reopen, got %q (present=%v)", value, ok)
	}
	if value, ok := s2.Get(SlotLegacyToken); !ok || value != "persisted" {
		t.Errorf("expected persisted legacy token after reopen, got %q (present=%v)", value, ok)
	}
}

func TestFileStoreFilePermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")

	s, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("failed to create file store: %v", err)
	}
	if err := s.Set(SlotToken, "secret"); err != nil {
		t.Fatalf("failed to set token: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("failed to stat credentials file: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("expected credentials file mode 0600, got %o", perm)
	}
}

func TestFileStoreRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	if err := os.WriteFile(path, []byte("not json"), 0600); err != nil {
		t.Fatalf("failed to write corrupt file: %v", err)
	}

	if _, err := NewFileStore(path); err == nil {
		t.Error("expected an error opening a corrupt credentials file")
	}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	s := NewMemoryStore()

	if err := s.Set(SlotToken, "value"); err != nil {
		t.Fatalf("failed to set: %v", err)
	}
	if value, ok := s.Get(SlotToken); !ok || value != "value" {
		t.Errorf("expected 'value', got %q (present=%v)", value, ok)
	}
	if err := s.Clear(SlotToken); err != nil {
		t.Fatalf("failed to clear: %v", err)
	}
	if _, ok := s.Get(SlotToken); ok {
		t.Error("expected slot to be absent after Clear")
	}
}
