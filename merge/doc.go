// Package merge combines per-kind interaction graphs into one weighted graph.
//
// For every ordered pair (u, v) present in any source, the merged weight is
//
//	Σ_k count_k(u→v) × weight_k
//
// over the kinds k whose source graph holds u→v. With the default table
// (comment=2, issue_opened=3, review=4, merge=5) two comments and one review
// from A to B give 2×2 + 1×4 = 8. Contributions are added, so the merge is
// commutative and associative; Merge also fixes the processing order itself,
// which makes the result identical for any argument order.
//
// A table missing a required multiplier fails with *ConfigurationError, which
// only blocks the merged graph, never the category graphs it is built from.
package merge
