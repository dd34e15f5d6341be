// Package cache provides an in-memory TTL cache with namespaced keys.
// Report responses are cached under a namespace per report family so a
// write to one entity invalidates exactly the reports derived from it.
package cache

import (
	"sync"
	"time"
)

type entry struct {
	value     any
	expiresAt time.Time
}

// Store is a thread-safe TTL cache keyed by (namespace, key).
// InvalidateNamespace drops a whole namespace in one map operation,
// without scanning every key in the cache.
type Store struct {
	mu         sync.RWMutex
	namespaces map[string]map[string]entry
	ttl        time.Duration
	lastSweep  time.Time
	now        func() time.Time
}

// NewStore creates a cache whose entries live for ttl.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		namespaces: make(map[string]map[string]entry),
		ttl:        ttl,
		now:        time.Now,
	}
}

// Get returns the cached value for (namespace, key), or false when the
// entry is missing or expired.
func (s *Store) Get(namespace, key string) (any, bool) {
	s.mu.RLock()
	ns, ok := s.namespaces[namespace]
	if !ok {
		s.mu.RUnlock()
		return nil, false
	}
	e, ok := ns[key]
	s.mu.RUnlock()

	if !ok || s.now().After(e.expiresAt) {
		return nil, false
	}
	return e.value, true
}

// Set stores value under (namespace, key).
func (s *Store) Set(namespace, key string, value any) {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	ns, ok := s.namespaces[namespace]
	if !ok {
		ns = make(map[string]entry)
		s.namespaces[namespace] = ns
	}
	ns[key] = entry{value: value, expiresAt: now.Add(s.ttl)}

	if now.Sub(s.lastSweep) > s.ttl {
		s.lastSweep = now
		s.sweepLocked(now)
	}
}

// InvalidateNamespace drops every entry in the namespace.
func (s *Store) InvalidateNamespace(namespace string) {
	s.mu.Lock()
	delete(s.namespaces, namespace)
	s.mu.Unlock()
}

// InvalidateAll drops everything.
func (s *Store) InvalidateAll() {
	s.mu.Lock()
	s.namespaces = make(map[string]map[string]entry)
	s.mu.Unlock()
}

// Len reports the number of live entries across all namespaces.
func (s *Store) Len() int {
	now := s.now()

	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, ns := range s.namespaces {
		for _, e := range ns {
			if !now.After(e.expiresAt) {
				n++
			}
		}
	}
	return n
}

func (s *Store) sweepLocked(now time.Time) {
	for name, ns := range s.namespaces {
		for key, e := range ns {
			if now.After(e.expiresAt) {
				delete(ns, key)
			}
		}
		if len(ns) == 0 {
			delete(s.namespaces, name)
		}
	}
}
