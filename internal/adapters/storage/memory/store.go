// Package memory provides an in-process key-value store.
// It backs the session store when no Redis is configured and stands in for
// durable storage in tests.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/jsamuelsen/quotebox/internal/ports"
)

// Store is a map-backed ports.KeyValueStore. It is safe for concurrent use.
// Values are copied on the way in and out.
//
// With a TTL every Set starts a new expiry. Expired keys read as missing and
// are removed on access or by Sweep.
type Store struct {
	mu      sync.Mutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time
}

type entry struct {
	value []byte

	// expires is zero for keys that never expire.
	expires time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithTTL expires every key ttl after it was last set. Zero keeps keys forever.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// New creates an empty store.
func New(opts ...Option) *Store {
	s := &Store{
		entries: make(map[string]entry),
		now:     time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Get returns the value stored under key.
func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return nil, ports.ErrKeyNotFound
	}

	if e.expired(s.now()) {
		delete(s.entries, key)
		return nil, ports.ErrKeyNotFound
	}

	return clone(e.value), nil
}

// Set overwrites the value stored under key.
func (s *Store) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := entry{value: clone(value)}
	if s.ttl > 0 {
		e.expires = s.now().Add(s.ttl)
	}

	s.entries[key] = e

	return nil
}

// Delete removes key.
func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, key)

	return nil
}

// Len returns the number of stored keys, including expired keys not yet swept.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.entries)
}

// Sweep removes expired keys and returns how many were removed.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0

	for key, e := range s.entries {
		if e.expired(now) {
			delete(s.entries, key)
			removed++
		}
	}

	return removed
}

// RunSweeper calls Sweep every interval until ctx is done.
func (s *Store) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}

func (e entry) expired(now time.Time) bool {
	return !e.expires.IsZero() && !now.Before(e.expires)
}

func clone(b []byte) []byte {
	return append([]byte{}, b...)
}

var _ ports.KeyValueStore = (*Store)(nil)
