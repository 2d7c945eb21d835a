// Package inflight guards against overlapping work on the same record.
package inflight

import "sync"

// Guard hands out at most one token per key. A second TryAcquire for a key
// that is still held fails instead of waiting.
type Guard struct {
	mu   sync.Mutex
	held map[string]struct{}
}

// New creates an empty guard.
func New() *Guard {
	return &Guard{held: make(map[string]struct{})}
}

// TryAcquire marks key as busy. It returns false if key is already held.
func (g *Guard) TryAcquire(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, busy := g.held[key]; busy {
		return false
	}
	g.held[key] = struct{}{}
	return true
}

// Release frees key. Releasing a key that is not held is a no-op.
func (g *Guard) Release(key string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.held, key)
}

// Held reports whether key is currently busy.
func (g *Guard) Held(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, busy := g.held[key]
	return busy
}

// Len returns the number of keys currently held.
func (g *Guard) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.held)
}
