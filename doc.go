// SPDX-License-Identifier: MIT

// Package collabgraph builds directed, weighted collaboration graphs from
// repository interaction records and exports them for Gephi and spreadsheets.
//
// An edge u → v means user u acted on something user v authored: a comment on
// v's issue or pull request, the closure of v's issue, a review or merge of v's
// pull request. Repeated interactions accumulate into the edge weight.
//
// Layout:
//
//	core/      Graph contract, adjacency-list representation, tag sets, cloning
//	matrix/    adjacency-matrix representation over a doubling Dense buffer
//	aggregate/ interaction records, validation, CSV/JSON readers, aggregation
//	merge/     weighted composition of per-kind graphs (integrated graph)
//	bfs/       reachability and strong connectivity
//	export/    GEXF 1.3, node/edge/matrix CSV, metadata JSON, atomic writes
//	pipeline/  end-to-end run with bounded concurrency and Prometheus metrics
//	config/    defaults, YAML, .env and environment configuration
//	cmd/       the collabgraph command (build, inspect)
//
// Both representations produce identical node order, edge order and exported
// bytes for the same input, so the choice is purely a space/time trade-off.
//
//	collabgraph build -i interactions.csv -o output -r matrix
package collabgraph
