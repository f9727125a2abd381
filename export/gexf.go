// SPDX-License-Identifier: MIT
//
// File: gexf.go
// Role: GEXF 1.3 document model, writer and reader.
// Determinism:
//   - Nodes follow g.Nodes(), edges follow g.Edges(); edge ids are "e0", "e1", ...
//   - No timestamp unless WithLastModified is given, so repeated exports of the same
//     graph are byte-identical.

package export

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"time"

	"github.com/katalvlaran/collabgraph/core"
)

// GEXF constants.
const (
	GEXFNamespace = "http://www.gexf.net/1.3"
	GEXFVersion   = "1.3"

	edgeTypeDirected = "directed"
	graphModeStatic  = "static"
	classEdge        = "edge"

	// Edge attribute ids declared in every document.
	AttrWeight = "0"
	AttrType   = "1"
)

var (
	// ErrUndirectedDocument indicates a GEXF graph that is not directed.
	ErrUndirectedDocument = errors.New("export: gexf graph is not directed")

	// ErrBadEdgeWeight indicates an edge weight that is not a positive integer.
	ErrBadEdgeWeight = errors.New("export: gexf edge weight is not a positive integer")
)

// Document is the GEXF 1.3 root element.
type Document struct {
	XMLName xml.Name `xml:"gexf"`
	XMLNS   string   `xml:"xmlns,attr"`
	Version string   `xml:"version,attr"`
	Meta    *Meta    `xml:"meta,omitempty"`
	Graph   Graph    `xml:"graph"`
}

// Meta carries optional document metadata.
type Meta struct {
	LastModified string `xml:"lastmodifieddate,attr,omitempty"`
	Creator      string `xml:"creator,omitempty"`
	Description  string `xml:"description,omitempty"`
}

// Graph is the <graph> element.
type Graph struct {
	DefaultEdgeType string       `xml:"defaultedgetype,attr"`
	Mode            string       `xml:"mode,attr"`
	Attributes      []Attributes `xml:"attributes"`
	Nodes           Nodes        `xml:"nodes"`
	Edges           Edges        `xml:"edges"`
}

// Attributes declares the attribute columns of one element class.
type Attributes struct {
	Class      string      `xml:"class,attr"`
	Attributes []Attribute `xml:"attribute"`
}

// Attribute is one attribute declaration.
type Attribute struct {
	ID    string `xml:"id,attr"`
	Title string `xml:"title,attr"`
	Type  string `xml:"type,attr"`
}

// Nodes wraps the node list so an empty graph still emits <nodes/>.
type Nodes struct {
	Node []Node `xml:"node"`
}

// Node is a GEXF node; id and label are both the user id.
type Node struct {
	ID    string `xml:"id,attr"`
	Label string `xml:"label,attr,omitempty"`
}

// Edges wraps the edge list.
type Edges struct {
	Edge []Edge `xml:"edge"`
}

// Edge is a GEXF edge.
type Edge struct {
	ID        string     `xml:"id,attr"`
	Source    string     `xml:"source,attr"`
	Target    string     `xml:"target,attr"`
	Weight    string     `xml:"weight,attr,omitempty"`
	AttValues []AttValue `xml:"attvalues>attvalue"`
}

// AttValue is one attribute value of an edge.
type AttValue struct {
	For   string `xml:"for,attr"`
	Value string `xml:"value,attr"`
}

// attValue returns the value for attribute id, if present.
func (e Edge) attValue(id string) (string, bool) {
	for _, av := range e.AttValues {
		if av.For == id {
			return av.Value, true
		}
	}

	return "", false
}

// GEXFOption customizes document metadata.
type GEXFOption func(*Meta)

// WithCreator sets <meta><creator>.
func WithCreator(creator string) GEXFOption {
	return func(m *Meta) { m.Creator = creator }
}

// WithDescription sets <meta><description>.
func WithDescription(description string) GEXFOption {
	return func(m *Meta) { m.Description = description }
}

// WithLastModified stamps lastmodifieddate (YYYY-MM-DD). Output then varies by day.
func WithLastModified(t time.Time) GEXFOption {
	return func(m *Meta) { m.LastModified = t.Format("2006-01-02") }
}

// NewDocument converts g into a GEXF document.
// Complexity: O(V + E).
func NewDocument(g core.Graph, opts ...GEXFOption) *Document {
	doc := &Document{
		XMLNS:   GEXFNamespace,
		Version: GEXFVersion,
		Graph: Graph{
			DefaultEdgeType: edgeTypeDirected,
			Mode:            graphModeStatic,
			Attributes: []Attributes{{
				Class: classEdge,
				Attributes: []Attribute{
					{ID: AttrWeight, Title: "weight", Type: "float"},
					{ID: AttrType, Title: "type", Type: "string"},
				},
			}},
		},
	}

	var meta Meta
	for _, opt := range opts {
		opt(&meta)
	}
	if meta != (Meta{}) {
		doc.Meta = &meta
	}

	ids := g.Nodes()
	doc.Graph.Nodes.Node = make([]Node, len(ids))
	for i, id := range ids {
		doc.Graph.Nodes.Node[i] = Node{ID: id, Label: id}
	}

	edges := g.Edges()
	doc.Graph.Edges.Edge = make([]Edge, len(edges))
	for i, e := range edges {
		w := strconv.FormatInt(e.Weight, 10)
		xe := Edge{
			ID:        "e" + strconv.Itoa(i),
			Source:    e.Source,
			Target:    e.Target,
			Weight:    w,
			AttValues: []AttValue{{For: AttrWeight, Value: w}},
		}
		if e.Type != "" {
			xe.AttValues = append(xe.AttValues, AttValue{For: AttrType, Value: e.Type})
		}
		doc.Graph.Edges.Edge[i] = xe
	}

	return doc
}

// WriteGEXF writes g as an indented GEXF 1.3 document.
func WriteGEXF(w io.Writer, g core.Graph, opts ...GEXFOption) error {
	return NewDocument(g, opts...).Encode(w)
}

// Encode writes the document with an XML header and two-space indentation.
func (d *Document) Encode(w io.Writer) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("WriteGEXF: %w", err)
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("WriteGEXF: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("WriteGEXF: %w", err)
	}
	_, err := io.WriteString(w, "\n")

	return err
}

// ReadGEXF decodes a GEXF document. Any GEXF namespace version is accepted.
func ReadGEXF(r io.Reader) (*Document, error) {
	var doc Document
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("ReadGEXF: %w", err)
	}

	return &doc, nil
}

// Build reconstructs a graph from the document through newGraph.
//
// Nodes are added in document order, then edges. The weight comes from the
// edge's weight attribute, falling back to attribute value AttrWeight, then 1.
// The type attribute value becomes the edge tag.
// Errors: ErrUndirectedDocument, ErrBadEdgeWeight, or a wrapped graph error.
func (d *Document) Build(newGraph core.Factory, opts ...core.GraphOption) (core.Graph, error) {
	if t := d.Graph.DefaultEdgeType; t != "" && t != edgeTypeDirected {
		return nil, fmt.Errorf("Build: defaultedgetype %q: %w", t, ErrUndirectedDocument)
	}

	if len(d.Graph.Nodes.Node) > 0 {
		opts = append(opts, core.WithCapacity(len(d.Graph.Nodes.Node)))
	}
	g := newGraph(opts...)
	var err error
	for _, n := range d.Graph.Nodes.Node {
		if err = g.AddNode(n.ID); err != nil {
			return nil, fmt.Errorf("Build: node %q: %w", n.ID, err)
		}
	}
	for _, e := range d.Graph.Edges.Edge {
		raw := e.Weight
		if raw == "" {
			raw, _ = e.attValue(AttrWeight)
		}
		w, werr := parseWeight(raw)
		if werr != nil {
			return nil, fmt.Errorf("Build: edge %q: %w", e.ID, werr)
		}
		tag, _ := e.attValue(AttrType)
		if _, err = g.AddEdge(e.Source, e.Target, w, core.WithEdgeType(tag)); err != nil {
			return nil, fmt.Errorf("Build: edge %q: %w", e.ID, err)
		}
	}

	return g, nil
}

// parseWeight accepts integers and integral floats ("3", "3.0"); empty means 1.
func parseWeight(s string) (int64, error) {
	if s == "" {
		return 1, nil
	}
	if w, err := strconv.ParseInt(s, 10, 64); err == nil {
		if w <= 0 {
			return 0, fmt.Errorf("%q: %w", s, ErrBadEdgeWeight)
		}
		return w, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f <= 0 || f != math.Trunc(f) || f > math.MaxInt64 {
		return 0, fmt.Errorf("%q: %w", s, ErrBadEdgeWeight)
	}

	return int64(f), nil
}
