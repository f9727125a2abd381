// Package pipeline runs the whole collaboration-graph build.
//
// One Run takes interaction records and produces:
//   - a graph per kind (comment, issue_opened, closure, review, merge);
//   - the category graphs comments, closures and reviews, where reviews adds
//     review and merge counts per ordered pair;
//   - the integrated graph, merged with the configured weight table.
//
// Export then writes every category graph in the configured formats under
// graph_1_comments, graph_2_closures, graph_3_reviews and graph_4_integrated.
// The backend is chosen once per Pipeline through NewFactory; nothing else
// depends on it.
package pipeline
