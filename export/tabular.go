// SPDX-License-Identifier: MIT

package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/katalvlaran/collabgraph/core"
)

// CSV headers.
var (
	NodesHeader = []string{"node_id"}
	EdgesHeader = []string{"source", "target", "weight", "type"}
)

// WriteNodesCSV writes one node_id row per node in g.Nodes() order.
func WriteNodesCSV(w io.Writer, g core.Graph) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(NodesHeader); err != nil {
		return fmt.Errorf("WriteNodesCSV: %w", err)
	}
	for _, id := range g.Nodes() {
		if err := cw.Write([]string{id}); err != nil {
			return fmt.Errorf("WriteNodesCSV: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("WriteNodesCSV: %w", err)
	}

	return nil
}

// WriteEdgesCSV writes source,target,weight,type rows in g.Edges() order.
func WriteEdgesCSV(w io.Writer, g core.Graph) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(EdgesHeader); err != nil {
		return fmt.Errorf("WriteEdgesCSV: %w", err)
	}
	for _, e := range g.Edges() {
		row := []string{e.Source, e.Target, strconv.FormatInt(e.Weight, 10), e.Type}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("WriteEdgesCSV: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("WriteEdgesCSV: %w", err)
	}

	return nil
}

// WriteMatrixCSV writes the labelled dense adjacency matrix: a header row of
// node ids (first cell empty), then one row per node with its outgoing weights.
// Absent edges are 0. Row and column order is g.Nodes().
// Complexity: O(V² + E).
func WriteMatrixCSV(w io.Writer, g core.Graph) error {
	ids := g.Nodes()
	index := make(map[string]int, len(ids))
	for i, id := range ids {
		index[id] = i
	}

	cw := csv.NewWriter(w)
	header := make([]string, 0, len(ids)+1)
	header = append(header, "")
	header = append(header, ids...)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("WriteMatrixCSV: %w", err)
	}

	edges := g.Edges()
	row := make([]string, len(ids)+1)
	next := 0
	for i, id := range ids {
		row[0] = id
		for j := 1; j < len(row); j++ {
			row[j] = "0"
		}
		// Edges() is grouped by source in node order.
		for ; next < len(edges) && index[edges[next].Source] == i; next++ {
			row[index[edges[next].Target]+1] = strconv.FormatInt(edges[next].Weight, 10)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("WriteMatrixCSV: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("WriteMatrixCSV: %w", err)
	}

	return nil
}

// Metadata summarizes an exported graph.
type Metadata struct {
	GraphName        string         `json:"graph_name"`
	Category         core.Category  `json:"category,omitempty"`
	Representation   string         `json:"representation"`
	NumVertices      int            `json:"num_vertices"`
	NumEdges         int            `json:"num_edges"`
	Density          float64        `json:"density"`
	IsDirected       bool           `json:"is_directed"`
	HasWeights       bool           `json:"has_weights"`
	IndexToUser      map[int]string `json:"index_to_user"`
	MatrixShape      [2]int         `json:"matrix_shape"`
	MatrixSum        int64          `json:"matrix_sum"`
	MatrixMax        int64          `json:"matrix_max"`
	MatrixMin        int64          `json:"matrix_min"`
	NonZeroCount     int            `json:"non_zero_count"`
	DroppedSelfLoops int            `json:"dropped_self_loops"`
}

// NewMetadata computes the metadata of g under name.
// MatrixMin is always 0: the diagonal never holds an edge.
func NewMetadata(name string, g core.Graph) Metadata {
	st := g.Stats()
	ids := g.Nodes()
	md := Metadata{
		GraphName:        name,
		Category:         st.Category,
		Representation:   string(st.Representation),
		NumVertices:      st.NodeCount,
		NumEdges:         st.EdgeCount,
		Density:          st.Density,
		IsDirected:       true,
		HasWeights:       true,
		IndexToUser:      make(map[int]string, len(ids)),
		MatrixShape:      [2]int{len(ids), len(ids)},
		MatrixSum:        st.TotalWeight,
		NonZeroCount:     st.EdgeCount,
		DroppedSelfLoops: st.DroppedSelfLoops,
	}
	for i, id := range ids {
		md.IndexToUser[i] = id
	}
	for _, e := range g.Edges() {
		if e.Weight > md.MatrixMax {
			md.MatrixMax = e.Weight
		}
	}

	return md
}

// WriteMetadataJSON writes NewMetadata(name, g) as indented JSON.
func WriteMetadataJSON(w io.Writer, name string, g core.Graph) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(NewMetadata(name, g)); err != nil {
		return fmt.Errorf("WriteMetadataJSON: %w", err)
	}

	return nil
}
