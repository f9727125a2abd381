// SPDX-License-Identifier: MIT

package pipeline

import (
	"fmt"

	"github.com/katalvlaran/collabgraph/core"
	"github.com/katalvlaran/collabgraph/matrix"
)

// NewFactory returns the graph constructor of rep.
// Errors: core.ErrUnknownRepresentation.
func NewFactory(rep core.Representation) (core.Factory, error) {
	switch rep {
	case core.RepresentationList:
		return core.ListFactory, nil
	case core.RepresentationMatrix:
		return matrix.Factory, nil
	default:
		return nil, fmt.Errorf("NewFactory(%q): %w", rep, core.ErrUnknownRepresentation)
	}
}
