// Package aggregate turns interaction records into category graphs.
//
// A Record says "Source acted on Target" with a Kind (comment, closure, review,
// merge). The Aggregator registers both endpoints and adds a unit-weight edge
// per record, so the core.Graph aggregation rule leaves one edge per ordered
// pair whose weight is the interaction count. Invalid records and
// self-interactions are the only inputs dropped silently, and both are counted
// in the Report.
//
// The Aggregator only talks to core.Graph; pass core.ListFactory or
// matrix.Factory in Config to choose the representation.
package aggregate
