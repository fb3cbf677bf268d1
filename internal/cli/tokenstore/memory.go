package tokenstore

import "sync"

// MemoryStore is an in-memory Store used in tests and non-persistent runs
type MemoryStore struct {
	mu    sync.Mutex
	slots map[Slot]string
}

// NewMemoryStore returns an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{slots: make(map[Slot]string)}
}

func (s *MemoryStore) Get(slot Slot) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	value, ok := s.slots[slot]
	return value, ok
}

func (s *MemoryStore) Set(slot Slot, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.slots[slot] = value
	return nil
}

func (s *MemoryStore) Clear(slot Slot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.slots, slot)
	return nil
}
