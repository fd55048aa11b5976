// Package export renders loaded graphs for inspection.
//
// [ToDOT] produces Graphviz DOT text; [RenderSVG] lays it out with the
// embedded Graphviz from go-graphviz, so no system installation is needed.
package export

import (
	"bytes"
	"context"
	"fmt"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/graphload/pkg/graph"
)

// Options configures DOT output.
type Options struct {
	// Detailed adds node weights and properties to labels.
	Detailed bool

	// Weights labels relationships with their weight.
	Weights bool

	// Direction selects the adjacency to draw. When the graph lacks it, the
	// other loaded direction is used with arrows reversed.
	Direction graph.Direction

	// MaxNodes truncates large graphs; <= 0 draws every node.
	MaxNodes int
}

// ToDOT converts a graph to Graphviz DOT format. Nodes are named by their
// original IDs and relationships always point from start to end node.
func ToDOT(g *graph.Graph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=12];\n")
	buf.WriteString("  edge [fontsize=10];\n")
	buf.WriteString("\n")

	n := g.NodeCount()
	if opts.MaxNodes > 0 && n > opts.MaxNodes {
		n = opts.MaxNodes
	}

	for i := 0; i < n; i++ {
		fmt.Fprintf(&buf, "  %d [label=%q];\n", g.ToOriginal(i), nodeLabel(g, i, opts.Detailed))
	}

	d, reversed, ok := pickDirection(g, opts.Direction)
	if ok {
		buf.WriteString("\n")
		for i := 0; i < n; i++ {
			g.ForEachRelationship(i, d, func(t int, w float64) bool {
				if t >= n {
					return true
				}
				from, to := g.ToOriginal(i), g.ToOriginal(t)
				if reversed {
					from, to = to, from
				}
				if opts.Weights {
					fmt.Fprintf(&buf, "  %d -> %d [label=%q];\n", from, to, fmtFloat(w))
				} else {
					fmt.Fprintf(&buf, "  %d -> %d;\n", from, to)
				}
				return true
			})
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func pickDirection(g *graph.Graph, want graph.Direction) (graph.Direction, bool, bool) {
	if g.HasDirection(want) {
		return want, want == graph.Incoming, true
	}
	if ds := g.Directions(); len(ds) > 0 {
		return ds[0], ds[0] == graph.Incoming, true
	}
	return 0, false, false
}

func nodeLabel(g *graph.Graph, i int, detailed bool) string {
	id := strconv.FormatInt(g.ToOriginal(i), 10)
	if !detailed {
		return id
	}
	return fmt.Sprintf("%s\nw: %s\np: %s", id, fmtFloat(g.NodeWeight(i)), fmtFloat(g.NodeProperty(i)))
}

func fmtFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', 6, 64)
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
