// Package replay implements the fixed-capacity circular experience buffer
// used for off-policy training: entries overwrite the oldest once the
// buffer is full, and training samples uniformly without replacement.
// Entries are opaque to the buffer; the training loop decides what a
// transition is.
package replay

import (
	"encoding/gob"
	"errors"
	"fmt"
	"io"
	"math/rand"
)

// Sentinel errors returned by Memory operations. Match with errors.Is.
var (
	// ErrBadCapacity is returned by New for a non-positive capacity.
	ErrBadCapacity = errors.New("replay: capacity must be positive")

	// ErrSampleTooLarge is returned when a sample is requested that
	// exceeds the number of stored entries.
	ErrSampleTooLarge = errors.New("replay: sample larger than stored entries")
)

// Memory is a fixed-capacity circular buffer. While filling it appends;
// once full, each Add overwrites the oldest entry at the write cursor and
// the cursor advances modulo capacity. The zero value is not usable; use
// New.
//
// Memory is not safe for concurrent use.
type Memory[T any] struct {
	capacity int
	entries  []T
	cursor   int
}

// New returns an empty Memory holding at most capacity entries.
func New[T any](capacity int) (*Memory[T], error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrBadCapacity, capacity)
	}

	return &Memory[T]{
		capacity: capacity,
		entries:  make([]T, 0, capacity),
	}, nil
}

// Add stores entry, overwriting the oldest entry once the buffer is full.
func (m *Memory[T]) Add(entry T) {
	if len(m.entries) < m.capacity {
		m.entries = append(m.entries, entry)
		m.cursor = len(m.entries) % m.capacity
		return
	}

	m.entries[m.cursor] = entry
	m.cursor = (m.cursor + 1) % m.capacity
}

// Sample returns batchSize entries drawn uniformly at random without
// replacement. The order of the returned entries is not significant.
// Returns ErrSampleTooLarge if fewer entries are stored.
func (m *Memory[T]) Sample(rng *rand.Rand, batchSize int) ([]T, error) {
	if batchSize > len(m.entries) {
		return nil, fmt.Errorf("%w: want %d, have %d", ErrSampleTooLarge, batchSize, len(m.entries))
	}

	out := make([]T, batchSize)
	for i, idx := range rng.Perm(len(m.entries))[:batchSize] {
		out[i] = m.entries[idx]
	}

	return out, nil
}

// Len returns the number of stored entries.
func (m *Memory[T]) Len() int {
	return len(m.entries)
}

// Capacity returns the fixed capacity.
func (m *Memory[T]) Capacity() int {
	return m.capacity
}

// Entries returns a copy of the stored entries in storage (circular
// write) order.
func (m *Memory[T]) Entries() []T {
	out := make([]T, len(m.entries))
	copy(out, m.entries)

	return out
}

// Iter returns a fresh iterator over the stored entries in storage order.
func (m *Memory[T]) Iter() *Iterator[T] {
	return &Iterator[T]{memory: m}
}

// String renders the stored entries in storage order.
func (m *Memory[T]) String() string {
	return fmt.Sprint(m.entries)
}

// Equal reports whether a and b hold equal entries in the same storage
// order. Capacity and cursor position are not compared, matching the
// debugging semantics of buffer equality: same contents, same layout.
func Equal[T comparable](a, b *Memory[T]) bool {
	if a == nil || b == nil {
		return a == b
	}
	if len(a.entries) != len(b.entries) {
		return false
	}
	for i := range a.entries {
		if a.entries[i] != b.entries[i] {
			return false
		}
	}

	return true
}

// Iterator walks a Memory's entries in storage order.
type Iterator[T any] struct {
	memory *Memory[T]
	i      int
}

// Next returns the next entry, or ok=false when exhausted.
func (it *Iterator[T]) Next() (entry T, ok bool) {
	if it.i >= len(it.memory.entries) {
		var zero T
		return zero, false
	}
	entry = it.memory.entries[it.i]
	it.i++

	return entry, true
}

// memoryState is the serializable snapshot of a Memory.
type memoryState[T any] struct {
	Version  int
	Capacity int
	Cursor   int
	Entries  []T
}

const stateVersion = 1

// Save writes a gob snapshot of the buffer. The entry type must be
// gob-encodable.
func (m *Memory[T]) Save(w io.Writer) error {
	state := memoryState[T]{
		Version:  stateVersion,
		Capacity: m.capacity,
		Cursor:   m.cursor,
		Entries:  m.Entries(),
	}

	return gob.NewEncoder(w).Encode(state)
}

// Load restores a Memory from a gob snapshot written by Save.
func Load[T any](r io.Reader) (*Memory[T], error) {
	var state memoryState[T]
	if err := gob.NewDecoder(r).Decode(&state); err != nil {
		return nil, err
	}
	if state.Version != stateVersion {
		return nil, fmt.Errorf("replay: unsupported snapshot version %d", state.Version)
	}
	if len(state.Entries) > state.Capacity {
		return nil, fmt.Errorf("replay: snapshot holds %d entries for capacity %d", len(state.Entries), state.Capacity)
	}

	m, err := New[T](state.Capacity)
	if err != nil {
		return nil, err
	}
	m.entries = append(m.entries, state.Entries...)
	m.cursor = state.Cursor

	return m, nil
}
