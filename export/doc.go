// Package export serializes graphs for external tools.
//
// Formats:
//   - GEXF 1.3 (directed, edge weight and type attributes) for Gephi;
//   - node and edge CSV tables;
//   - a labelled dense adjacency-matrix CSV and a JSON metadata summary.
//
// Every writer enumerates the graph through Nodes() and Edges() only, so a
// graph yields the same GEXF and CSV bytes under either representation. ReadGEXF plus
// Document.Build reverse the GEXF export.
//
// Exporter writes each file with WriteFileAtomic: a failed export leaves any
// previous file at the destination untouched.
package export
