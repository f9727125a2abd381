// SPDX-License-Identifier: MIT
//
// File: types.go
// Role: Shared value types, options and sentinel errors of the graph contract.
// Policy:
//   - Every representation (list, matrix) returns these sentinels and nothing else
//     for contract violations, so callers can match with errors.Is regardless of backend.
//   - Options are applied left-to-right; the last write wins.

package core

import (
	"errors"
	"fmt"
)

// Sentinel errors for graph contract operations.
var (
	// ErrEmptyNodeID indicates that an operation received an empty node identifier.
	ErrEmptyNodeID = errors.New("core: node ID is empty")

	// ErrNodeNotFound indicates a lookup referenced a node that was never registered.
	ErrNodeNotFound = errors.New("core: node not found")

	// ErrEdgeNotFound indicates a lookup referenced an ordered pair without an edge.
	ErrEdgeNotFound = errors.New("core: edge not found")

	// ErrBadWeight indicates a non-positive weight. Zero is reserved for "no edge".
	ErrBadWeight = errors.New("core: edge weight must be positive")

	// ErrLoopNotAllowed indicates a self-loop; collaboration graphs are simple.
	ErrLoopNotAllowed = errors.New("core: self-loop not allowed")

	// ErrUnknownRepresentation indicates a representation name outside {list, matrix}.
	ErrUnknownRepresentation = errors.New("core: unknown representation")
)

// Representation names the storage strategy backing a Graph.
type Representation string

const (
	// RepresentationList is the sparse adjacency-list backend, O(V+E) space.
	RepresentationList Representation = "list"

	// RepresentationMatrix is the dense adjacency-matrix backend, O(V²) space.
	RepresentationMatrix Representation = "matrix"
)

// ParseRepresentation maps a configuration string onto a Representation.
func ParseRepresentation(s string) (Representation, error) {
	switch Representation(s) {
	case RepresentationList, RepresentationMatrix:
		return Representation(s), nil
	default:
		return "", fmt.Errorf("ParseRepresentation(%q): %w", s, ErrUnknownRepresentation)
	}
}

// Category is the logical role of a graph within one run.
type Category string

// Logical categories produced by a run.
const (
	CategoryComments   Category = "comments"
	CategoryClosures   Category = "closures"
	CategoryReviews    Category = "reviews"
	CategoryIntegrated Category = "integrated"
)

// Edge is a read-only snapshot of one directed, weighted relation.
//
// Type carries the canonical tag set of the interaction kinds that contributed
// to the edge (see MergeTags); it is empty when no tag was ever supplied.
type Edge struct {
	// Source is the node the interaction originates from.
	Source string

	// Target is the node the interaction points at.
	Target string

	// Weight is the aggregated, strictly positive edge weight.
	Weight int64

	// Type is the canonical "|"-joined tag set, e.g. "comment|review".
	Type string
}

// Neighbor is one outgoing (target, weight) pair of a node.
type Neighbor struct {
	ID     string
	Weight int64
}

// GraphConfig holds construction-time settings shared by every representation.
type GraphConfig struct {
	// Category tags the graph with its logical role.
	Category Category

	// Capacity is an optional node-count hint; backends may round it up.
	Capacity int
}

// GraphOption configures a graph before creation.
type GraphOption func(*GraphConfig)

// WithCategory tags the graph with its logical category.
func WithCategory(c Category) GraphOption {
	return func(cfg *GraphConfig) { cfg.Category = c }
}

// WithCapacity hints the expected number of nodes. Negative hints are ignored.
func WithCapacity(n int) GraphOption {
	return func(cfg *GraphConfig) {
		if n > 0 {
			cfg.Capacity = n
		}
	}
}

// GatherOptions applies opts over the zero GraphConfig.
func GatherOptions(opts ...GraphOption) GraphConfig {
	var cfg GraphConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// EdgeConfig holds per-insertion edge settings.
type EdgeConfig struct {
	// Type is the tag contributed by this insertion; merged into the stored tag set.
	Type string
}

// EdgeOption configures a single AddEdge call.
type EdgeOption func(*EdgeConfig)

// WithEdgeType contributes tag to the edge's tag set.
func WithEdgeType(tag string) EdgeOption {
	return func(cfg *EdgeConfig) { cfg.Type = tag }
}

// GatherEdgeOptions applies opts over the zero EdgeConfig.
func GatherEdgeOptions(opts ...EdgeOption) EdgeConfig {
	var cfg EdgeConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// ValidateEdge checks AddEdge inputs in the documented priority order:
// empty id -> weight -> self-loop.
// Complexity: O(1).
func ValidateEdge(source, target string, weight int64) error {
	if source == "" || target == "" {
		return ErrEmptyNodeID
	}
	if weight <= 0 {
		return ErrBadWeight
	}
	if source == target {
		return ErrLoopNotAllowed
	}

	return nil
}
