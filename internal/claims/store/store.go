// Package store is the console's claim cache.
//
// The cache only ever holds one complete server snapshot. It is replaced as a
// whole after a successful read and is never patched record by record; the
// verification workflow relies on this to guarantee that a failed cycle leaves
// every cached status exactly as the server last reported it.
package store

import (
	"errors"
	"sync"
	"time"

	"claimguard/internal/claims/models"
)

// ErrNotFound is returned when a claim is not in the current snapshot.
var ErrNotFound = errors.New("claim not found")

// Store is an in-memory, ordered claim snapshot keyed by claim ID.
type Store struct {
	mu       sync.RWMutex
	claims   []models.Claim
	index    map[models.ClaimID]int
	version  uint64
	loadedAt time.Time
	now      func() time.Time
}

// New creates an empty store. Until the first Replace, Loaded reports false.
func New() *Store {
	return &Store{
		index: make(map[models.ClaimID]int),
		now:   time.Now,
	}
}

// Replace swaps in a complete server snapshot, preserving server order.
// When the server repeats an ID, the first occurrence wins.
func (s *Store) Replace(claims []models.Claim) {
	next := make([]models.Claim, 0, len(claims))
	index := make(map[models.ClaimID]int, len(claims))
	for _, c := range claims {
		if _, dup := index[c.ID]; dup {
			continue
		}
		index[c.ID] = len(next)
		next = append(next, c)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.claims = next
	s.index = index
	s.version++
	s.loadedAt = s.now()
}

// Snapshot returns a copy of the cached claims in server order.
func (s *Store) Snapshot() []models.Claim {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Claim, len(s.claims))
	copy(out, s.claims)
	return out
}

// Get returns a copy of one cached claim.
func (s *Store) Get(id models.ClaimID) (models.Claim, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.index[id]
	if !ok {
		return models.Claim{}, ErrNotFound
	}
	return s.claims[i], nil
}

// Len returns the number of cached claims.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.claims)
}

// Version increases by one on every Replace.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Loaded reports whether any snapshot was stored yet, and when the latest was.
func (s *Store) Loaded() (time.Time, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadedAt, s.version > 0
}
