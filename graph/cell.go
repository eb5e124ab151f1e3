package graph

import "sync"

// Cell is a shared slot holding one payload and the number of times it has
// been broadcast. Every handle of a node points at the same Cell. Reads take
// a read lock and never block each other; writes are serialized.
type Cell[T any] struct {
	mu      sync.RWMutex
	value   T
	version uint64
}

// NewCell creates a cell at version 0.
func NewCell[T any](value T) *Cell[T] {
	return &Cell[T]{value: value}
}

// Load returns the current payload.
func (c *Cell[T]) Load() T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.value
}

// Version returns the current version.
func (c *Cell[T]) Version() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.version
}

// Snapshot returns payload and version read under the same lock.
func (c *Cell[T]) Snapshot() (T, uint64) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.value, c.version
}

// Store replaces the payload without touching the version.
func (c *Cell[T]) Store(value T) {
	c.mu.Lock()
	c.value = value
	c.mu.Unlock()
}

// Bump advances the version by one and returns the new version.
func (c *Cell[T]) Bump() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.version++
	return c.version
}

// Mutate runs fn with exclusive access to the payload and returns its result.
// fn must not call back into the cell.
func (c *Cell[T]) Mutate(fn func(value *T) bool) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return fn(&c.value)
}
