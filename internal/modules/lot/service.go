// README: Grid lifecycle service: map reset, entry points, cached map view.
package lot

import (
	"context"
	"errors"
	"math/rand"

	"go.uber.org/zap"

	"parkgrid/internal/config"
	"parkgrid/internal/types"
)

var (
	ErrInvalidGridSpec     = errors.New("grid dimensions below minimum area")
	ErrDuplicateEntryPoint = errors.New("entry point already exists at requested coordinates")
)

type Store interface {
	Reset(ctx context.Context, slots []Slot, entryPoints []EntryPoint) error
	AddEntryPoint(ctx context.Context, row, col int) (EntryPoint, error)
	HasEntryPointAt(ctx context.Context, row, col int) (bool, error)
	EntryPoints(ctx context.Context) ([]EntryPoint, error)
	Map(ctx context.Context) (*Map, error)
}

type ViewCache interface {
	Get(ctx context.Context) (*Map, bool, error)
	Set(ctx context.Context, m *Map) error
	Invalidate(ctx context.Context) error
}

type Service struct {
	store Store
	cache ViewCache
	cfg   config.LotConfig
	log   *zap.Logger

	randInt func(n int) int
}

func NewService(store Store, cache ViewCache, cfg config.LotConfig, log *zap.Logger) *Service {
	return &Service{
		store:   store,
		cache:   cache,
		cfg:     cfg,
		log:     log,
		randInt: rand.Intn,
	}
}

// ResetMap destroys the whole lot and seeds a rows x cols grid of
// random-size slots plus the configured number of random unique entry
// points. Cells taken by an entry point hold no slot.
func (s *Service) ResetMap(ctx context.Context, rows, cols int) (*Map, error) {
	if rows <= 0 || cols <= 0 || rows*cols < s.cfg.MinGridArea || rows*cols <= s.cfg.DefaultEntryPoints {
		return nil, ErrInvalidGridSpec
	}

	entryCells := make(map[[2]int]struct{}, s.cfg.DefaultEntryPoints)
	entryPoints := make([]EntryPoint, 0, s.cfg.DefaultEntryPoints)
	for len(entryPoints) < s.cfg.DefaultEntryPoints {
		cell := [2]int{s.randInt(rows), s.randInt(cols)}
		if _, taken := entryCells[cell]; taken {
			continue
		}
		entryCells[cell] = struct{}{}
		entryPoints = append(entryPoints, EntryPoint{Row: cell[0], Col: cell[1]})
	}

	slots := make([]Slot, 0, rows*cols-len(entryPoints))
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if _, taken := entryCells[[2]int{r, c}]; taken {
				continue
			}
			slots = append(slots, Slot{
				Row:  r,
				Col:  c,
				Size: types.Size(s.randInt(3)),
			})
		}
	}

	if err := s.store.Reset(ctx, slots, entryPoints); err != nil {
		return nil, err
	}
	s.invalidate(ctx)

	s.log.Info("parking map reset",
		zap.Int("rows", rows),
		zap.Int("cols", cols),
		zap.Int("slots", len(slots)),
		zap.Int("entry_points", len(entryPoints)),
	)
	return s.Map(ctx)
}

// AddEntryPoint places a new entry point, destroying any coincident slot and
// recomputing distances to every remaining slot.
func (s *Service) AddEntryPoint(ctx context.Context, row, col int) (*Map, error) {
	exists, err := s.store.HasEntryPointAt(ctx, row, col)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateEntryPoint
	}

	ep, err := s.store.AddEntryPoint(ctx, row, col)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)

	s.log.Info("entry point added",
		zap.Int64("entry_point_id", ep.ID),
		zap.Int("row", row),
		zap.Int("col", col),
	)
	return s.Map(ctx)
}

func (s *Service) Map(ctx context.Context) (*Map, error) {
	if m, ok, err := s.cache.Get(ctx); err != nil {
		s.log.Warn("map cache read failed", zap.Error(err))
	} else if ok {
		return m, nil
	}

	m, err := s.store.Map(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, m); err != nil {
		s.log.Warn("map cache write failed", zap.Error(err))
	}
	return m, nil
}

func (s *Service) EntryPoints(ctx context.Context) ([]EntryPoint, error) {
	return s.store.EntryPoints(ctx)
}

func (s *Service) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.Warn("map cache invalidate failed", zap.Error(err))
	}
}
