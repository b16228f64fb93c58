package embedflate

import "sync"

// Cell holds a value that is computed on first access and shared afterwards.
//
// A Cell moves from uninitialized to initialized exactly once. Concurrent callers of Get during
// initialization block until the single initializer run completes and then observe the same
// value. If the initializer panics, every call to Get panics with the same value; a Cell never
// hands out a zero value in place of a failed initialization.
//
// Cells must be created with NewCell or one of the Deflate*, Zstd* and Raw* constructors.
type Cell[T any] struct {
	get func() T
}

// NewCell returns a Cell that runs init on first access.
func NewCell[T any](init func() T) *Cell[T] {
	return &Cell[T]{get: sync.OnceValue(init)}
}

// Get returns the cell's value, running the initializer if this is the first access.
//
// Values of reference types ([]byte) are shared between all callers and must be treated as
// read-only.
func (c *Cell[T]) Get() T {
	return c.get()
}
