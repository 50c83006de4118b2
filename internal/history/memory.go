package history

import (
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/youmna-rabie/uid2gateway/internal/types"
)

var (
	ErrNotFound        = errors.New("lookup entry not found")
	ErrInvalidCapacity = errors.New("capacity must be greater than zero")
)

// MemoryStore is a fixed-size ring of lookup entries, safe for concurrent use.
type MemoryStore struct {
	mu    sync.RWMutex
	ring  []types.LookupEntry
	byID  map[uuid.UUID]int
	size  int
	next  int // slot the next Save writes to
	count int
}

// NewMemoryStore creates a MemoryStore holding at most capacity entries.
func NewMemoryStore(capacity int) (*MemoryStore, error) {
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	return &MemoryStore{
		ring: make([]types.LookupEntry, capacity),
		byID: make(map[uuid.UUID]int, capacity),
		size: capacity,
	}, nil
}

// Save stores entry. An entry with a nil ID is assigned a fresh one.
func (s *MemoryStore) Save(entry types.LookupEntry) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.count == s.size {
		delete(s.byID, s.ring[s.next].ID)
	} else {
		s.count++
	}
	s.ring[s.next] = entry
	s.byID[entry.ID] = s.next
	s.next = (s.next + 1) % s.size
	return nil
}

// Get returns the entry with the given ID.
func (s *MemoryStore) Get(id uuid.UUID) (types.LookupEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pos, ok := s.byID[id]
	if !ok {
		return types.LookupEntry{}, ErrNotFound
	}
	return s.ring[pos], nil
}

// List returns up to limit entries ordered newest-first, skipping the first offset.
func (s *MemoryStore) List(limit, offset int) ([]types.LookupEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 || offset >= s.count {
		return nil, nil
	}
	offset = max(offset, 0)

	n := min(limit, s.count-offset)
	out := make([]types.LookupEntry, 0, n)
	for i := offset; i < offset+n; i++ {
		out = append(out, s.ring[(s.next-1-i+s.size)%s.size])
	}
	return out, nil
}

// Count returns the number of entries currently held.
func (s *MemoryStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.count
}
