// SPDX-License-Identifier: MIT
// Dense is a growable square int64 matrix stored row-major in one flat slice.
// Capacity is always a power of two; growth doubles it and copies the live
// block into the top-left corner of the new buffer (allocate-copy-swap).
package matrix

import (
	"fmt"
	"math"
)

// MinCapacity is the smallest capacity a Dense is allocated with.
const MinCapacity = 4

// denseErrorf wraps an underlying error with Dense method context.
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// Dense is a square matrix with n live rows/cols inside a capacity×capacity buffer.
type Dense struct {
	n        int     // live dimension
	capacity int     // allocated dimension, power of two
	data     []int64 // flat backing storage, length == capacity*capacity
	growths  int     // number of reallocations performed
}

// NewDense creates an empty Dense able to hold hint rows without reallocating.
// Stage 1 (Validate): hint must be >= 0.
// Stage 2 (Prepare): round hint up to a power of two, at least MinCapacity.
// Stage 3 (Finalize): allocate the zeroed flat buffer.
// Complexity: O(capacity²) time and memory.
func NewDense(hint int) (*Dense, error) {
	if hint < 0 {
		return nil, fmt.Errorf("NewDense(%d): %w", hint, ErrBadShape)
	}
	capacity, err := nextCapacity(MinCapacity, hint)
	if err != nil {
		return nil, err
	}

	return &Dense{capacity: capacity, data: make([]int64, capacity*capacity)}, nil
}

// Size returns the live dimension n.
func (m *Dense) Size() int { return m.n }

// Capacity returns the allocated dimension.
func (m *Dense) Capacity() int { return m.capacity }

// Growths returns how many times the buffer was reallocated.
func (m *Dense) Growths() int { return m.growths }

// Extend grows the live dimension by one and returns the new row/col index.
// Capacity doubles when the live block is full; existing entries are preserved.
// Complexity: O(1) amortized per call, O(n²) on a growth event.
func (m *Dense) Extend() (int, error) {
	if m.n == m.capacity {
		if err := m.grow(m.n + 1); err != nil {
			return 0, err
		}
	}
	idx := m.n
	m.n++

	return idx, nil
}

// At retrieves the element at (row, col).
// Complexity: O(1).
func (m *Dense) At(row, col int) (int64, error) {
	if !m.inRange(row, col) {
		return 0, denseErrorf("At", row, col, ErrOutOfRange)
	}

	return m.data[row*m.capacity+col], nil
}

// Set assigns v at (row, col).
// Complexity: O(1).
func (m *Dense) Set(row, col int, v int64) error {
	if !m.inRange(row, col) {
		return denseErrorf("Set", row, col, ErrOutOfRange)
	}
	m.data[row*m.capacity+col] = v

	return nil
}

// Add increments (row, col) by delta and returns the new value.
// Complexity: O(1).
func (m *Dense) Add(row, col int, delta int64) (int64, error) {
	if !m.inRange(row, col) {
		return 0, denseErrorf("Add", row, col, ErrOutOfRange)
	}
	off := row*m.capacity + col
	m.data[off] += delta

	return m.data[off], nil
}

// Row returns the live part of row i without copying. Callers must not retain it
// across a growth event.
func (m *Dense) Row(i int) []int64 {
	off := i * m.capacity
	return m.data[off : off+m.n]
}

func (m *Dense) inRange(row, col int) bool {
	return row >= 0 && row < m.n && col >= 0 && col < m.n
}

// grow reallocates to the smallest doubled capacity >= need and copies the live block.
func (m *Dense) grow(need int) error {
	capacity, err := nextCapacity(m.capacity, need)
	if err != nil {
		return err
	}
	next := make([]int64, capacity*capacity)
	var i int
	for i = 0; i < m.n; i++ { // rows beyond n are all zero; skip them
		copy(next[i*capacity:i*capacity+m.n], m.data[i*m.capacity:i*m.capacity+m.n])
	}
	m.data = next
	m.capacity = capacity
	m.growths++

	return nil
}

// nextCapacity doubles from until it is >= need.
func nextCapacity(from, need int) (int, error) {
	capacity := from
	if capacity < MinCapacity {
		capacity = MinCapacity
	}
	limit := int(math.Sqrt(float64(math.MaxInt)))
	for capacity < need {
		if capacity > limit/2 {
			return 0, fmt.Errorf("grow to %d: %w", need, ErrCapacityOverflow)
		}
		capacity *= 2
	}

	return capacity, nil
}
