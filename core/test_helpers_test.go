// SPDX-License-Identifier: MIT
// Package core_test contains shared fixtures for the graph contract tests.
//
// Purpose:
//   - Run every contract test against both representations.
//   - Keep user IDs and weights out of test bodies as named constants.

package core_test

import (
	"testing"

	"github.com/katalvlaran/collabgraph/core"
	"github.com/katalvlaran/collabgraph/matrix"
)

// Common user IDs used across core tests.
const (
	UserAlice = "alice"
	UserBob   = "bob"
	UserCarol = "carol"
	UserDave  = "dave"
	UserGhost = "ghost"
)

// Common weights used across core tests.
const (
	Weight1 int64 = 1
	Weight2 int64 = 2
	Weight3 int64 = 3
	Weight5 int64 = 5
)

// backends lists every Graph constructor under test.
var backends = []struct {
	name string
	new  core.Factory
}{
	{"list", core.ListFactory},
	{"matrix", matrix.Factory},
}

// forEachBackend runs fn as a subtest per representation.
func forEachBackend(t *testing.T, fn func(t *testing.T, newGraph core.Factory)) {
	t.Helper()
	for _, b := range backends {
		t.Run(b.name, func(t *testing.T) { fn(t, b.new) })
	}
}

// mustAddEdge adds an edge and fails the test on error.
func mustAddEdge(t *testing.T, g core.Graph, source, target string, weight int64, tag string) int64 {
	t.Helper()
	w, err := g.AddEdge(source, target, weight, core.WithEdgeType(tag))
	if err != nil {
		t.Fatalf("AddEdge(%q,%q,%d): %v", source, target, weight, err)
	}

	return w
}

// triangle builds alice→bob (3), bob→carol (1), carol→alice (2), bob→alice (5).
func triangle(t *testing.T, newGraph core.Factory) core.Graph {
	t.Helper()
	g := newGraph(core.WithCategory(core.CategoryComments))
	mustAddEdge(t, g, UserAlice, UserBob, Weight3, "comment")
	mustAddEdge(t, g, UserBob, UserCarol, Weight1, "comment")
	mustAddEdge(t, g, UserCarol, UserAlice, Weight2, "comment")
	mustAddEdge(t, g, UserBob, UserAlice, Weight5, "comment")

	return g
}
