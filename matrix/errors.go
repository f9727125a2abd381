// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// Contract violations shared with the list backend (unknown node, bad weight,
// self-loop) are reported with the core sentinels so callers match them with
// errors.Is independently of the representation. Only storage-level conditions
// live here.

package matrix

import "errors"

var (
	// ErrOutOfRange indicates that a row or column index is outside the live square.
	// Public indexers (At/Set/Add) MUST return this, not panic.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrCapacityOverflow indicates the doubled capacity would overflow the
	// addressable buffer length (capacity² > max int).
	ErrCapacityOverflow = errors.New("matrix: capacity overflow")

	// ErrBadShape is returned when a requested size is negative.
	ErrBadShape = errors.New("matrix: invalid shape")
)
