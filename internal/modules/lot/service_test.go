package lot

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"parkgrid/internal/config"
)

func newTestService(store Store, cache ViewCache) *Service {
	cfg := config.LotConfig{MinGridArea: 4, DefaultEntryPoints: 3, MapCacheTTLSeconds: 30}
	return NewService(store, cache, cfg, zap.NewNop())
}

// seqRand returns the given values in order; the test fails if it runs dry.
func seqRand(t *testing.T, vals []int) func(int) int {
	i := 0
	return func(n int) int {
		if i >= len(vals) {
			t.Fatal("rand sequence exhausted")
		}
		v := vals[i]
		i++
		return v % n
	}
}

func TestResetMap_InvalidGridSpec(t *testing.T) {
	store := new(MockLotStore)
	cache := new(MockViewCache)
	svc := newTestService(store, cache)

	tests := []struct {
		name       string
		rows, cols int
	}{
		{"zero rows", 0, 5},
		{"negative cols", 3, -1},
		{"area below floor", 1, 3},
		{"no room left after entry points", 3, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ResetMap(context.Background(), tt.rows, tt.cols)
			assert.ErrorIs(t, err, ErrInvalidGridSpec)
		})
	}
	store.AssertNotCalled(t, "Reset", mock.Anything, mock.Anything, mock.Anything)
}

func TestResetMap_SeedsSlotsAndEntryPoints(t *testing.T) {
	store := new(MockLotStore)
	cache := new(MockViewCache)
	svc := newTestService(store, cache)

	// Entry point draws: (0,0), (0,1), (0,0) again forcing a retry, (1,2).
	// Remaining draws are slot sizes.
	svc.randInt = seqRand(t, []int{0, 0, 0, 1, 0, 0, 1, 2, 0, 1, 2})

	store.On("Reset", mock.Anything, mock.MatchedBy(func(slots []Slot) bool {
		if len(slots) != 3 {
			return false
		}
		for _, s := range slots {
			for _, ep := range [][2]int{{0, 0}, {0, 1}, {1, 2}} {
				if s.Row == ep[0] && s.Col == ep[1] {
					return false
				}
			}
		}
		return true
	}), mock.MatchedBy(func(eps []EntryPoint) bool {
		seen := map[[2]int]bool{}
		for _, ep := range eps {
			seen[[2]int{ep.Row, ep.Col}] = true
		}
		return len(eps) == 3 && len(seen) == 3
	})).Return(nil)
	cache.On("Invalidate", mock.Anything).Return(nil)
	cache.On("Get", mock.Anything).Return(nil, false, nil)
	store.On("Map", mock.Anything).Return(&Map{Rows: 2, Cols: 3}, nil)
	cache.On("Set", mock.Anything, mock.Anything).Return(nil)

	m, err := svc.ResetMap(context.Background(), 2, 3)

	require.NoError(t, err)
	assert.Equal(t, 2, m.Rows)
	store.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestAddEntryPoint_Duplicate(t *testing.T) {
	store := new(MockLotStore)
	cache := new(MockViewCache)
	svc := newTestService(store, cache)

	store.On("HasEntryPointAt", mock.Anything, 1, 2).Return(true, nil)

	_, err := svc.AddEntryPoint(context.Background(), 1, 2)

	assert.ErrorIs(t, err, ErrDuplicateEntryPoint)
	store.AssertNotCalled(t, "AddEntryPoint", mock.Anything, mock.Anything, mock.Anything)
}

func TestAddEntryPoint_InvalidatesCache(t *testing.T) {
	store := new(MockLotStore)
	cache := new(MockViewCache)
	svc := newTestService(store, cache)

	store.On("HasEntryPointAt", mock.Anything, 1, 2).Return(false, nil)
	store.On("AddEntryPoint", mock.Anything, 1, 2).Return(EntryPoint{ID: 4, Row: 1, Col: 2}, nil)
	cache.On("Invalidate", mock.Anything).Return(nil)
	cache.On("Get", mock.Anything).Return(nil, false, nil)
	store.On("Map", mock.Anything).Return(&Map{Rows: 3, Cols: 3}, nil)
	cache.On("Set", mock.Anything, mock.Anything).Return(nil)

	m, err := svc.AddEntryPoint(context.Background(), 1, 2)

	require.NoError(t, err)
	assert.Equal(t, 3, m.Rows)
	cache.AssertExpectations(t)
}

func TestMap_CacheHitSkipsStore(t *testing.T) {
	store := new(MockLotStore)
	cache := new(MockViewCache)
	svc := newTestService(store, cache)

	cached := &Map{Rows: 5, Cols: 5}
	cache.On("Get", mock.Anything).Return(cached, true, nil)

	m, err := svc.Map(context.Background())

	require.NoError(t, err)
	assert.Same(t, cached, m)
	store.AssertNotCalled(t, "Map", mock.Anything)
}

type MockLotStore struct {
	mock.Mock
}

func (m *MockLotStore) Reset(ctx context.Context, slots []Slot, entryPoints []EntryPoint) error {
	args := m.Called(ctx, slots, entryPoints)
	return args.Error(0)
}

func (m *MockLotStore) AddEntryPoint(ctx context.Context, row, col int) (EntryPoint, error) {
	args := m.Called(ctx, row, col)
	return args.Get(0).(EntryPoint), args.Error(1)
}

func (m *MockLotStore) HasEntryPointAt(ctx context.Context, row, col int) (bool, error) {
	args := m.Called(ctx, row, col)
	return args.Bool(0), args.Error(1)
}

func (m *MockLotStore) EntryPoints(ctx context.Context) ([]EntryPoint, error) {
	args := m.Called(ctx)
	eps, _ := args.Get(0).([]EntryPoint)
	return eps, args.Error(1)
}

func (m *MockLotStore) Map(ctx context.Context) (*Map, error) {
	args := m.Called(ctx)
	mp, _ := args.Get(0).(*Map)
	return mp, args.Error(1)
}

type MockViewCache struct {
	mock.Mock
}

func (m *MockViewCache) Get(ctx context.Context) (*Map, bool, error) {
	args := m.Called(ctx)
	mp, _ := args.Get(0).(*Map)
	return mp, args.Bool(1), args.Error(2)
}

func (m *MockViewCache) Set(ctx context.Context, mp *Map) error {
	args := m.Called(ctx, mp)
	return args.Error(0)
}

func (m *MockViewCache) Invalidate(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
