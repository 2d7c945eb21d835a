// Package store is the admin console's account cache.
//
// Unlike the claim cache, this store accepts single-record patches: a toggle
// acknowledged by the server is merged into the one affected account instead
// of re-reading the whole list. A concurrent change made by another admin is
// therefore only visible after the next full Replace.
package store

import (
	"errors"
	"sync"

	"claimguard/internal/accounts/models"
)

// ErrNotFound is returned when an account is not in the cache.
var ErrNotFound = errors.New("account not found")

// Store is an in-memory, ordered account collection keyed by account ID.
type Store struct {
	mu       sync.RWMutex
	accounts []models.Account
	index    map[models.AccountID]int
	version  uint64
}

// New creates an empty store.
func New() *Store {
	return &Store{index: make(map[models.AccountID]int)}
}

// Replace swaps in a complete list in the given order. When an ID repeats,
// the first occurrence wins.
func (s *Store) Replace(accounts []models.Account) {
	next := make([]models.Account, 0, len(accounts))
	index := make(map[models.AccountID]int, len(accounts))
	for _, a := range accounts {
		if _, dup := index[a.ID]; dup {
			continue
		}
		index[a.ID] = len(next)
		next = append(next, a)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts = next
	s.index = index
	s.version++
}

// Patch applies fn to one cached account under the write lock. The ID cannot
// be changed by fn.
func (s *Store) Patch(id models.AccountID, fn func(*models.Account)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.index[id]
	if !ok {
		return ErrNotFound
	}
	a := s.accounts[i]
	fn(&a)
	a.ID = id
	s.accounts[i] = a
	s.version++
	return nil
}

// Snapshot returns a copy of the cached accounts in order.
func (s *Store) Snapshot() []models.Account {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Account, len(s.accounts))
	copy(out, s.accounts)
	return out
}

// Get returns a copy of one cached account.
func (s *Store) Get(id models.AccountID) (models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.index[id]
	if !ok {
		return models.Account{}, ErrNotFound
	}
	return s.accounts[i], nil
}

// Len returns the number of cached accounts.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.accounts)
}

// Version increases on every Replace and Patch.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}
