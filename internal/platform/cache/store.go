package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/riskibarqy/live-corners/internal/platform/resilience"
)

type entry[T any] struct {
	value    T
	storedAt time.Time
}

// Store is an in-process keyed cache with an optional TTL measured from the
// last write. Expired entries are dropped lazily on read; there is no sweeper.
type Store[T any] struct {
	mu      sync.RWMutex
	entries map[string]entry[T]
	ttl     time.Duration
	flight  resilience.SingleFlight[T]
	now     func() time.Time
}

func NewStore[T any](ttl time.Duration) *Store[T] {
	return &Store[T]{
		entries: make(map[string]entry[T]),
		ttl:     ttl,
		now:     time.Now,
	}
}

// WithClock replaces the clock used for expiry, for tests.
func (s *Store[T]) WithClock(now func() time.Time) *Store[T] {
	if now != nil {
		s.now = now
	}
	return s
}

func (s *Store[T]) TTL() time.Duration {
	return s.ttl
}

func (s *Store[T]) Get(ctx context.Context, key string) (T, bool) {
	value, _, ok := s.GetWithAge(ctx, key)
	return value, ok
}

// GetWithAge returns the value and how long ago it was written.
func (s *Store[T]) GetWithAge(_ context.Context, key string) (T, time.Duration, bool) {
	var zero T
	if key == "" {
		return zero, 0, false
	}

	now := s.now()
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return zero, 0, false
	}

	age := now.Sub(e.storedAt)
	if s.ttl > 0 && age >= s.ttl {
		s.mu.Lock()
		if current, still := s.entries[key]; still && current.storedAt.Equal(e.storedAt) {
			delete(s.entries, key)
		}
		s.mu.Unlock()
		return zero, 0, false
	}

	return e.value, age, true
}

func (s *Store[T]) Set(_ context.Context, key string, value T) {
	if key == "" {
		return
	}

	s.mu.Lock()
	s.entries[key] = entry[T]{
		value:    value,
		storedAt: s.now(),
	}
	s.mu.Unlock()
}

func (s *Store[T]) Delete(_ context.Context, key string) {
	if key == "" {
		return
	}

	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
}

// Retain drops every key not present in keep.
func (s *Store[T]) Retain(_ context.Context, keep []string) {
	allowed := make(map[string]struct{}, len(keep))
	for _, key := range keep {
		allowed[key] = struct{}{}
	}

	s.mu.Lock()
	for key := range s.entries {
		if _, ok := allowed[key]; !ok {
			delete(s.entries, key)
		}
	}
	s.mu.Unlock()
}

func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// GetOrLoad returns the cached value for key or runs loader once across
// concurrent callers. The loaded value is always stored, so loaders that want
// failures cached should encode them in T and return a nil error.
func (s *Store[T]) GetOrLoad(ctx context.Context, key string, loader func(context.Context) (T, error)) (T, bool, error) {
	var zero T
	if loader == nil {
		return zero, false, fmt.Errorf("loader is required")
	}
	if key == "" {
		value, err := loader(ctx)
		return value, false, err
	}

	if value, ok := s.Get(ctx, key); ok {
		return value, true, nil
	}

	value, err, _ := s.flight.Do(key, func() (T, error) {
		if cached, ok := s.Get(ctx, key); ok {
			return cached, nil
		}

		loaded, loadErr := loader(ctx)
		if loadErr != nil {
			return zero, loadErr
		}
		s.Set(ctx, key, loaded)
		return loaded, nil
	})
	if err != nil {
		return zero, false, err
	}

	return value, false, nil
}
