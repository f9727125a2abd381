package core_test

import (
	"fmt"

	"github.com/katalvlaran/collabgraph/core"
)

// ExampleAdjacencyList shows weight aggregation and tag merging.
func ExampleAdjacencyList() {
	g := core.NewAdjacencyList(core.WithCategory(core.CategoryComments))

	// Two comments and one review from alice on bob's work.
	_, _ = g.AddEdge("alice", "bob", 1, core.WithEdgeType("comment"))
	_, _ = g.AddEdge("alice", "bob", 1, core.WithEdgeType("comment"))
	w, _ := g.AddEdge("alice", "bob", 1, core.WithEdgeType("review"))
	fmt.Println("weight:", w)

	// A self-interaction is rejected and counted.
	_, err := g.AddEdge("bob", "bob", 1)
	fmt.Println("loop:", err)

	for _, e := range g.Edges() {
		fmt.Printf("%s -> %s %d %s\n", e.Source, e.Target, e.Weight, e.Type)
	}
	fmt.Println("dropped:", g.Stats().DroppedSelfLoops)

	// Output:
	// weight: 3
	// loop: core: self-loop not allowed
	// alice -> bob 3 comment|review
	// dropped: 1
}
