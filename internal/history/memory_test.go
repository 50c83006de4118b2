package history

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/youmna-rabie/uid2gateway/internal/types"
)

func makeEntry(phone string) types.LookupEntry {
	return types.LookupEntry{
		ID:          uuid.New(),
		PhoneNumber: phone,
		GatewayID:   "GW1",
		Status:      types.StatusFound,
		Timestamp:   time.Now(),
	}
}

func saveN(t *testing.T, s *MemoryStore, n int) []types.LookupEntry {
	t.Helper()
	entries := make([]types.LookupEntry, n)
	for i := range entries {
		entries[i] = makeEntry("555")
		require.NoError(t, s.Save(entries[i]))
	}
	return entries
}

func ids(entries []types.LookupEntry) []uuid.UUID {
	out := make([]uuid.UUID, len(entries))
	for i, e := range entries {
		out[i] = e.ID
	}
	return out
}

func TestNewMemoryStore_InvalidCapacity(t *testing.T) {
	for _, c := range []int{0, -1, -100} {
		_, err := NewMemoryStore(c)
		assert.ErrorIs(t, err, ErrInvalidCapacity, "capacity %d", c)
	}
}

func TestSaveAndGet(t *testing.T) {
	s, err := NewMemoryStore(10)
	require.NoError(t, err)

	e := makeEntry("5551234")
	require.NoError(t, s.Save(e))

	got, err := s.Get(e.ID)
	require.NoError(t, err)
	assert.Equal(t, e.PhoneNumber, got.PhoneNumber)
	assert.Equal(t, e.GatewayID, got.GatewayID)
	assert.Equal(t, e.Status, got.Status)
}

func TestSaveAssignsID(t *testing.T) {
	s, _ := NewMemoryStore(2)
	require.NoError(t, s.Save(types.LookupEntry{PhoneNumber: "555"}))

	listed, _ := s.List(1, 0)
	require.Len(t, listed, 1)
	assert.NotEqual(t, uuid.Nil, listed[0].ID)

	_, err := s.Get(listed[0].ID)
	assert.NoError(t, err)
}

func TestGetNotFound(t *testing.T) {
	s, _ := NewMemoryStore(10)
	_, err := s.Get(uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEvictionAtCapacity(t *testing.T) {
	s, _ := NewMemoryStore(3)
	entries := saveN(t, s, 5)

	assert.Equal(t, 3, s.Count())
	for _, e := range entries[:2] {
		_, err := s.Get(e.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	}
	for _, e := range entries[2:] {
		_, err := s.Get(e.ID)
		assert.NoError(t, err)
	}
}

func TestListNewestFirst(t *testing.T) {
	s, _ := NewMemoryStore(10)
	e := saveN(t, s, 5)

	listed, err := s.List(10, 0)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{e[4].ID, e[3].ID, e[2].ID, e[1].ID, e[0].ID}, ids(listed))
}

func TestListPagination(t *testing.T) {
	s, _ := NewMemoryStore(10)
	e := saveN(t, s, 5)

	tests := []struct {
		name          string
		limit, offset int
		want          []uuid.UUID
	}{
		{"first page", 2, 0, []uuid.UUID{e[4].ID, e[3].ID}},
		{"second page", 2, 2, []uuid.UUID{e[2].ID, e[1].ID}},
		{"partial page", 2, 4, []uuid.UUID{e[0].ID}},
		{"past end", 2, 10, []uuid.UUID{}},
		{"negative offset", 1, -3, []uuid.UUID{e[4].ID}},
		{"zero limit", 0, 0, []uuid.UUID{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			listed, err := s.List(tt.limit, tt.offset)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(listed))
		})
	}
}

func TestListWithEviction(t *testing.T) {
	s, _ := NewMemoryStore(3)
	e := saveN(t, s, 5)

	listed, _ := s.List(10, 0)
	assert.Equal(t, []uuid.UUID{e[4].ID, e[3].ID, e[2].ID}, ids(listed))
}

func TestConcurrentAccess(t *testing.T) {
	s, _ := NewMemoryStore(100)

	var wg sync.WaitGroup
	for g := 0; g < 10; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				e := makeEntry("concurrent")
				_ = s.Save(e)
				_, _ = s.Get(e.ID)
				_, _ = s.List(5, 0)
				s.Count()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, s.Count())
}

func TestStoreInterface(t *testing.T) {
	var _ Store = (*MemoryStore)(nil)
}
