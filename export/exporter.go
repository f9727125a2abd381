// SPDX-License-Identifier: MIT

package export

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/katalvlaran/collabgraph/core"
)

// Format names one export artifact.
type Format string

// Supported formats.
const (
	FormatGEXF      Format = "gexf"
	FormatNodesCSV  Format = "nodes_csv"
	FormatEdgesCSV  Format = "edges_csv"
	FormatMatrixCSV Format = "matrix_csv"
	FormatMetadata  Format = "metadata"
)

// ErrUnknownFormat indicates an unsupported format name.
var ErrUnknownFormat = errors.New("export: unknown format")

// AllFormats lists every format in write order.
func AllFormats() []Format {
	return []Format{FormatGEXF, FormatNodesCSV, FormatEdgesCSV, FormatMatrixCSV, FormatMetadata}
}

// DefaultFormats is the structural export: GEXF plus node and edge tables.
func DefaultFormats() []Format {
	return []Format{FormatGEXF, FormatNodesCSV, FormatEdgesCSV}
}

// ParseFormat maps a case-insensitive name to a Format.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range AllFormats() {
		if f == known {
			return f, nil
		}
	}

	return "", fmt.Errorf("%q: %w", s, ErrUnknownFormat)
}

// FileName returns the file name of format f for a graph called name.
func (f Format) FileName(name string) string {
	switch f {
	case FormatGEXF:
		return name + ".gexf"
	case FormatNodesCSV:
		return name + "_nodes.csv"
	case FormatEdgesCSV:
		return name + "_edges.csv"
	case FormatMatrixCSV:
		return name + "_matrix.csv"
	case FormatMetadata:
		return name + "_metadata.json"
	default:
		return name + "." + string(f)
	}
}

// File is one written artifact.
type File struct {
	Format Format
	Path   string
}

// Files lists the artifacts of one Export call in format order.
type Files []File

// Paths returns the file paths in order.
func (fs Files) Paths() []string {
	out := make([]string, len(fs))
	for i, f := range fs {
		out[i] = f.Path
	}

	return out
}

// Exporter writes graphs into Dir, each file atomically.
type Exporter struct {
	Dir string

	// GEXF options applied to every GEXF document.
	GEXF []GEXFOption

	// Logger defaults to zap.NewNop().
	Logger *zap.Logger
}

// Export writes g under name in each of formats (DefaultFormats when none are given).
// The first failing format stops the call; files already written stay in place.
// Errors: ErrUnknownFormat, or the underlying I/O error wrapped with its path.
func (e *Exporter) Export(name string, g core.Graph, formats ...Format) (Files, error) {
	log := e.Logger
	if log == nil {
		log = zap.NewNop()
	}
	if len(formats) == 0 {
		formats = DefaultFormats()
	}

	out := make(Files, 0, len(formats))
	for _, f := range formats {
		render, err := e.renderer(f, name, g)
		if err != nil {
			return out, err
		}
		path := filepath.Join(e.Dir, f.FileName(name))
		if err = WriteFileAtomic(path, render); err != nil {
			log.Error("export failed",
				zap.String("graph", name),
				zap.String("format", string(f)),
				zap.String("path", path),
				zap.Error(err))
			return out, err
		}
		out = append(out, File{Format: f, Path: path})
		log.Debug("exported",
			zap.String("graph", name),
			zap.String("format", string(f)),
			zap.String("path", path))
	}
	log.Info("graph exported",
		zap.String("graph", name),
		zap.Int("nodes", g.NodeCount()),
		zap.Int("edges", g.EdgeCount()),
		zap.Int("files", len(out)))

	return out, nil
}

func (e *Exporter) renderer(f Format, name string, g core.Graph) (func(io.Writer) error, error) {
	switch f {
	case FormatGEXF:
		return func(w io.Writer) error { return WriteGEXF(w, g, e.GEXF...) }, nil
	case FormatNodesCSV:
		return func(w io.Writer) error { return WriteNodesCSV(w, g) }, nil
	case FormatEdgesCSV:
		return func(w io.Writer) error { return WriteEdgesCSV(w, g) }, nil
	case FormatMatrixCSV:
		return func(w io.Writer) error { return WriteMatrixCSV(w, g) }, nil
	case FormatMetadata:
		return func(w io.Writer) error { return WriteMetadataJSON(w, name, g) }, nil
	default:
		return nil, fmt.Errorf("Export(%s): %q: %w", name, f, ErrUnknownFormat)
	}
}
