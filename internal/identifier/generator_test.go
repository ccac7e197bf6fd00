package identifier

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	mu     sync.Mutex
	ids    map[string]bool
	counts map[string]int64
	err    error
}

func newMemStore(ids ...string) *memStore {
	s := &memStore{ids: map[string]bool{}, counts: map[string]int64{}}
	for _, id := range ids {
		s.ids[id] = true
	}
	return s
}

func (s *memStore) Exists(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return false, s.err
	}
	return s.ids[id], nil
}

func (s *memStore) CountMatching(_ context.Context, hotelID, role string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counts[hotelID+"|"+role], s.err
}

func (s *memStore) add(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids[id] = true
}

func TestNextHotelID(t *testing.T) {
	ctx := context.Background()

	id, err := NewGenerator(newMemStore()).NextHotelID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "1000000001", id)

	id, err = NewGenerator(newMemStore("1000000001", "1000000002", "1000000004")).NextHotelID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "1000000003", id)
}

func TestNextHotelIDIsIdempotentWithoutInsert(t *testing.T) {
	ctx := context.Background()
	store := newMemStore("1000000001")
	g := NewGenerator(store)

	first, err := g.NextHotelID(ctx)
	require.NoError(t, err)
	second, err := g.NextHotelID(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	store.add(first)
	third, err := g.NextHotelID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "1000000003", third)
}

func TestNextVendorID(t *testing.T) {
	id, err := NewGenerator(newMemStore("2000000001")).NextVendorID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2000000002", id)
}

func TestNextHotelUserID(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		taken   []string
		hotelID string
		role    string
		want    string
	}{
		{"first hotel admin", nil, "1000000001", "Hotel Admin", "100000000130001"},
		{"fills gap", []string{"100000000130001", "100000000130003"}, "1000000001", "Hotel Admin", "100000000130002"},
		{"sequence scoped per role", []string{"100000000130001"}, "1000000001", "Manager", "100000000140001"},
		{"two digit role code", nil, "1000000001", "Kitchen", "1000000001130001"},
		{"legacy hotel id widened", nil, "10000005", "Hotel Admin", "100000000530001"},
		{"system tenant", nil, SystemHotelID, "GOD Admin", "000000000010001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewGenerator(newMemStore(tt.taken...)).NextHotelUserID(ctx, tt.hotelID, tt.role)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNextHotelUserIDUnknownRole(t *testing.T) {
	_, err := NewGenerator(newMemStore()).NextHotelUserID(context.Background(), "1000000001", "Night Auditor")

	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "Night Auditor", cfgErr.Role)

	// Staff is a tier, not a coded role.
	_, err = NewGenerator(newMemStore()).NextHotelUserID(context.Background(), "1000000001", "Staff")
	assert.ErrorAs(t, err, &cfgErr)
}

func TestNextHotelUserIDExhausted(t *testing.T) {
	store := newMemStore()
	for seq := 1; seq <= MaxSequence; seq++ {
		store.add(FormatUserID("1000000001", 4, seq))
	}

	_, err := NewGenerator(store).NextHotelUserID(context.Background(), "1000000001", "Manager")
	assert.ErrorIs(t, err, ErrSequenceExhausted)
}

func TestNextHotelUserIDStoreError(t *testing.T) {
	store := newMemStore()
	store.err = errors.New("connection reset")

	_, err := NewGenerator(store).NextHotelUserID(context.Background(), "1000000001", "Manager")
	assert.EqualError(t, err, "connection reset")
}

// Unserialized probes against the same store may propose the same identifier;
// the caller has to hold a lock across probe and insert.
func TestConcurrentProbesCanCollide(t *testing.T) {
	ctx := context.Background()
	store := newMemStore("100000000160001")
	g := NewGenerator(store)

	const workers = 8
	results := make([]string, workers)
	var start, done sync.WaitGroup
	start.Add(1)
	for i := 0; i < workers; i++ {
		done.Add(1)
		go func(i int) {
			defer done.Done()
			start.Wait()
			id, err := g.NextHotelUserID(ctx, "1000000001", "Front Desk")
			assert.NoError(t, err)
			results[i] = id
		}(i)
	}
	start.Done()
	done.Wait()

	for _, id := range results {
		assert.Equal(t, "100000000160002", id)
	}
}

func TestNextLegacyUserID(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	store.counts["1000000001|Manager"] = 6

	id, err := NewGenerator(store).NextLegacyUserID(ctx, "1000000001", "Manager")
	require.NoError(t, err)
	assert.Equal(t, "100000000140007", id)

	// the count does not fill gaps: a deleted row makes the next number collide
	store.counts["1000000001|Manager"] = 5
	id, err = NewGenerator(store).NextLegacyUserID(ctx, "1000000001", "Manager")
	require.NoError(t, err)
	assert.Equal(t, "100000000140006", id)

	store.counts["1000000001|Manager"] = MaxSequence
	_, err = NewGenerator(store).NextLegacyUserID(ctx, "1000000001", "Manager")
	assert.ErrorIs(t, err, ErrSequenceExhausted)
}

func TestUserAllocator(t *testing.T) {
	ctx := context.Background()
	store := newMemStore("100000000140001")
	store.counts["1000000001|Manager"] = 3
	g := NewGenerator(store)

	long := g.UserAllocator(FormatLong)
	assert.Equal(t, FormatLong, long.Format())
	id, err := long.NextUserID(ctx, "1000000001", "Manager")
	require.NoError(t, err)
	assert.Equal(t, "100000000140002", id)

	legacy := g.UserAllocator(FormatLegacy)
	assert.Equal(t, FormatLegacy, legacy.Format())
	id, err = legacy.NextUserID(ctx, "1000000001", "Manager")
	require.NoError(t, err)
	assert.Equal(t, "100000000140004", id)
}

func TestParseFormatVersion(t *testing.T) {
	for in, want := range map[string]FormatVersion{"": FormatLong, "long": FormatLong, "legacy": FormatLegacy} {
		got, err := ParseFormatVersion(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	_, err := ParseFormatVersion("short")
	assert.Error(t, err)
}

func BenchmarkNextHotelUserID(b *testing.B) {
	store := newMemStore()
	for seq := 1; seq <= 500; seq++ {
		store.add(FormatUserID("1000000001", 6, seq))
	}
	g := NewGenerator(store)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = g.NextHotelUserID(ctx, "1000000001", "Front Desk")
	}
}
