package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/lonsystemskt/evento-card-gestor-92/internal/repository"
	"github.com/lonsystemskt/evento-card-gestor-92/internal/utils"
	"github.com/stretchr/testify/require"
)

var errStoreDown = errors.New("store unavailable")

// flakyStore wraps a MemoryStore and fails on demand.
type flakyStore struct {
	*repository.MemoryStore

	mu      sync.Mutex
	failGet bool
	failSet bool
	sets    map[string]int
}

func newFlakyStore() *flakyStore {
	return &flakyStore{MemoryStore: repository.NewMemoryStore(), sets: map[string]int{}}
}

func (s *flakyStore) Get(ctx context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	fail := s.failGet
	s.mu.Unlock()
	if fail {
		return "", false, errStoreDown
	}
	return s.MemoryStore.Get(ctx, key)
}

func (s *flakyStore) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	s.sets[key]++
	fail := s.failSet
	s.mu.Unlock()
	if fail {
		return errStoreDown
	}
	return s.MemoryStore.Set(ctx, key, value)
}

func (s *flakyStore) setFailures(get, set bool) {
	s.mu.Lock()
	s.failGet, s.failSet = get, set
	s.mu.Unlock()
}

func (s *flakyStore) writes(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sets[key]
}

func (s *flakyStore) raw(t *testing.T, key string) string {
	t.Helper()
	v, _, err := s.MemoryStore.Get(context.Background(), key)
	require.NoError(t, err)
	return v
}

func testLocation(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)
	return loc
}

// testCalendar is pinned to 2024-06-05 15:00 in São Paulo.
func testCalendar(t *testing.T) *utils.Calendar {
	t.Helper()
	loc := testLocation(t)
	now := time.Date(2024, 6, 5, 15, 0, 0, 0, loc)
	return utils.NewCalendar(loc).WithClock(func() time.Time { return now })
}

func day(t *testing.T, y int, m time.Month, d int) time.Time {
	t.Helper()
	return time.Date(y, m, d, 0, 0, 0, 0, testLocation(t))
}

func ptr[T any](v T) *T {
	return &v
}
