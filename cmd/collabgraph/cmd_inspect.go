// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/collabgraph/bfs"
	"github.com/katalvlaran/collabgraph/core"
	"github.com/katalvlaran/collabgraph/export"
)

func runInspect(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	doc, err := export.ReadGEXF(f)
	if err != nil {
		return err
	}
	g, err := doc.Build(core.ListFactory)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	st := g.Stats()
	if doc.Meta != nil && doc.Meta.Description != "" {
		fmt.Fprintln(w, doc.Meta.Description)
	}
	connected, err := bfs.IsStronglyConnected(cmd.Context(), g)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "nodes=%d edges=%d weight=%d density=%.4f strongly_connected=%t\n",
		st.NodeCount, st.EdgeCount, st.TotalWeight, st.Density, connected)

	if fromUser == "" {
		return nil
	}
	for _, d := range []struct {
		label string
		dir   bfs.Direction
	}{{"reaches", bfs.Forward}, {"reached by", bfs.Backward}} {
		res, err := bfs.BFS(g, fromUser,
			bfs.WithContext(cmd.Context()), bfs.WithDirection(d.dir), bfs.WithMaxDepth(maxDepth))
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s %s %d users (max %d hops)\n", fromUser, d.label, len(res.Order)-1, res.MaxDepth())
	}

	return nil
}
