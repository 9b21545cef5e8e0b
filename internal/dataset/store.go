package dataset

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Store caches the loaded dataset for the lifetime of the process. The first
// Get triggers the load; concurrent first callers coalesce on a single load
// via singleflight and observe the same table. A failed load is recovered
// locally by caching an empty table, so requests keep working on zero rows
// instead of crashing the process.
type Store struct {
	loader Loader
	logger *slog.Logger

	group singleflight.Group
	mu    sync.RWMutex
	table *Table
}

// NewStore creates a store around the given loader. The dataset is not loaded
// until the first Get call.
func NewStore(loader Loader, logger *slog.Logger) *Store {
	return &Store{
		loader: loader,
		logger: logger.With(slog.String("component", "dataset_store")),
	}
}

// Get returns the cached table, loading it on first call. Never returns nil.
func (s *Store) Get(ctx context.Context) *Table {
	s.mu.RLock()
	t := s.table
	s.mu.RUnlock()
	if t != nil {
		return t
	}

	v, _, _ := s.group.Do("load", func() (interface{}, error) {
		s.mu.RLock()
		cached := s.table
		s.mu.RUnlock()
		if cached != nil {
			return cached, nil
		}

		table, err := s.loader.Load(ctx)
		if err != nil {
			s.logger.ErrorContext(ctx, "dataset load failed, serving empty table",
				slog.String("error", err.Error()))
			table = &Table{}
		}

		s.mu.Lock()
		s.table = table
		s.mu.Unlock()
		return table, nil
	})
	return v.(*Table)
}

// Loaded reports whether the dataset has been loaded (successfully or not).
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.table != nil
}
